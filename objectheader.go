// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import "strings"

// ComponentHeader is a Component object-header variant.
type ComponentHeader struct {
	TypePath        string          `json:"type_path"`
	Ref             ObjectReference `json:"ref"`
	ParentActorName string          `json:"parent_actor_name"`
}

// ActorHeader is an Actor object-header variant.
type ActorHeader struct {
	TypePath         string          `json:"type_path"`
	Ref              ObjectReference `json:"ref"`
	NeedsTransform   int32           `json:"needs_transform"`
	Rotation         QuatF32         `json:"rotation"`
	Position         Vector3F32      `json:"position"`
	Scale            Vector3F32      `json:"scale"`
	WasPlacedInLevel int32           `json:"was_placed_in_level"`
}

// ObjectHeader is the {Actor, Component} tagged union read by C4.
type ObjectHeader struct {
	Actor     *ActorHeader     `json:"actor,omitempty"`
	Component *ComponentHeader `json:"component,omitempty"`
}

// TypePath returns the header's type path regardless of variant.
func (h *ObjectHeader) TypePath() string {
	if h.Actor != nil {
		return h.Actor.TypePath
	}
	if h.Component != nil {
		return h.Component.TypePath
	}
	return ""
}

// decodeObjectHeader implements C4: a 32-bit discriminator (0 Component,
// 1 Actor) followed by the variant's fixed-shape record.
func decodeObjectHeader(c *decodeCtx) (ObjectHeader, error) {
	var out ObjectHeader
	r := c.r

	kind, err := r.i32()
	if err != nil {
		return out, err
	}

	switch kind {
	case 0:
		ch := &ComponentHeader{}
		if ch.TypePath, err = r.lengthPrefixedString(); err != nil {
			return out, err
		}
		if ch.Ref, err = c.readObjectReference(); err != nil {
			return out, err
		}
		if ch.ParentActorName, err = r.lengthPrefixedString(); err != nil {
			return out, err
		}
		out.Component = ch
	case 1:
		ah := &ActorHeader{}
		if ah.TypePath, err = r.lengthPrefixedString(); err != nil {
			return out, err
		}
		if ah.Ref, err = c.readObjectReference(); err != nil {
			return out, err
		}
		if ah.NeedsTransform, err = r.i32(); err != nil {
			return out, err
		}
		if ah.Rotation.X, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Rotation.Y, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Rotation.Z, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Rotation.W, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Position.X, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Position.Y, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Position.Z, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Scale.X, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Scale.Y, err = r.f32(); err != nil {
			return out, err
		}
		if ah.Scale.Z, err = r.f32(); err != nil {
			return out, err
		}
		if ah.WasPlacedInLevel, err = r.i32(); err != nil {
			return out, err
		}
		out.Actor = ah
	default:
		return out, &UnknownObjectTypeError{Type: kind}
	}

	return out, nil
}

// ObjectHeaderKind classifies an object header by its type path against the
// subsystem path tables carried (but never exercised at the byte level) by
// the implementation this format was distilled from. This is pure
// post-decode metadata: it changes no offset, no invariant, and no error
// path in the core decoder.
type ObjectHeaderKind string

// Recognized subsystem classifications. "" (ObjectHeaderKindUnclassified)
// means the type path matched none of the known tables.
const (
	ObjectHeaderKindUnclassified  ObjectHeaderKind = ""
	ObjectHeaderKindGame          ObjectHeaderKind = "Game"
	ObjectHeaderKindPlayerState   ObjectHeaderKind = "PlayerState"
	ObjectHeaderKindConveyor      ObjectHeaderKind = "Conveyor"
	ObjectHeaderKindPowerLine     ObjectHeaderKind = "PowerLine"
	ObjectHeaderKindDroneTransport ObjectHeaderKind = "DroneTransport"
	ObjectHeaderKindCircuit       ObjectHeaderKind = "Circuit"
	ObjectHeaderKindVehicle       ObjectHeaderKind = "Vehicle"
	ObjectHeaderKindLocomotive    ObjectHeaderKind = "Locomotive"
	ObjectHeaderKindFreightWagon  ObjectHeaderKind = "FreightWagon"
)

// classificationPaths mirrors original_source/src/save.rs's GAME_PATHS,
// PLAYER_STATE_PATHS, CONVEYOR_PATHS, POWER_LINE_PATHS,
// DRONE_TRANSPORT_PATHS, CIRCUIT_PATHS, VEHICLE_PATHS, LOCOMOTIVE_PATHS,
// and FREIGHT_WAGON_PATHS tables. Checked in order; first match wins, so the
// FreightWagon and Locomotive tables come before the Vehicle table, whose
// prefix also covers their paths.
var classificationPaths = []struct {
	kind     ObjectHeaderKind
	prefixes []string
}{
	{ObjectHeaderKindGame, []string{
		"/Game/FactoryGame/-Shared/Blueprint/BP_GameState",
		"/Game/FactoryGame/-Shared/Blueprint/BP_CircuitSubsystem",
	}},
	{ObjectHeaderKindPlayerState, []string{
		"/Game/FactoryGame/Character/Player/BP_PlayerState",
	}},
	{ObjectHeaderKindConveyor, []string{
		"/Game/FactoryGame/Buildable/Factory/ConveyorBelt",
		"/Game/FactoryGame/Buildable/Factory/ConveyorLift",
	}},
	{ObjectHeaderKindPowerLine, []string{
		"/Game/FactoryGame/Buildable/Factory/PowerLine/Build_PowerLine",
	}},
	{ObjectHeaderKindDroneTransport, []string{
		"/Game/FactoryGame/Buildable/Factory/DroneStation/BP_DroneTransport",
	}},
	{ObjectHeaderKindCircuit, []string{
		"/Script/FactoryGame.FGPowerCircuit",
	}},
	{ObjectHeaderKindFreightWagon, []string{
		"/Game/FactoryGame/Buildable/Vehicle/Train/Wagon/BP_FreightWagon",
	}},
	{ObjectHeaderKindLocomotive, []string{
		"/Game/FactoryGame/Buildable/Vehicle/Train/Locomotive/BP_Locomotive",
	}},
	{ObjectHeaderKindVehicle, []string{
		"/Game/FactoryGame/Buildable/Vehicle",
	}},
}

// Classify reports which subsystem a header's type path belongs to, or
// ObjectHeaderKindUnclassified if it matches none of the known tables.
func (h *ObjectHeader) Classify() ObjectHeaderKind {
	tp := h.TypePath()
	for _, group := range classificationPaths {
		for _, prefix := range group.prefixes {
			if strings.HasPrefix(tp, prefix) {
				return group.kind
			}
		}
	}
	return ObjectHeaderKindUnclassified
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// structSpawnData is the one struct sub-type name that changes the shape of
// a nested Vector/Rotator from 3×f32 to 3×f64 (§4.6).
const structSpawnData = "SpawnData"

// structPreambleSkip is the fixed number of opaque bytes between a struct
// sub-type tag and its payload (§4.5.5).
const structPreambleSkip = 17

// StructPropertyValue is the tagged union of every Struct sub-schema value
// (§4.6), plus the fallback recursive property list.
type StructPropertyValue interface {
	structPropertyValue()
}

func (ColorU8) structPropertyValue()         {}
func (LinearColorF32) structPropertyValue()  {}
func (Vector3F32) structPropertyValue()      {}
func (Vector3F64) structPropertyValue()      {}
func (Vector2F64) structPropertyValue()      {}
func (Vector4I32) structPropertyValue()      {}
func (QuatF64) structPropertyValue()         {}
func (Vector4F64) structPropertyValue()      {}
func (Vector2I32) structPropertyValue()      {}
func (FINNetworkTrace) structPropertyValue()              {}
func (*FINLuaProcessorStateStorage) structPropertyValue() {}

// BoxValue is the Box struct sub-type.
type BoxValue struct {
	Min   Vector3F64 `json:"min"`
	Max   Vector3F64 `json:"max"`
	Valid uint8      `json:"valid"`
}

func (BoxValue) structPropertyValue() {}

// RailroadTrackPositionValue is the RailroadTrackPosition struct sub-type.
type RailroadTrackPositionValue struct {
	Object  ObjectReference `json:"object"`
	Offset  float32         `json:"offset"`
	Forward float32         `json:"forward"`
}

func (RailroadTrackPositionValue) structPropertyValue() {}

// TimerHandleValue is the TimerHandle struct sub-type.
type TimerHandleValue string

func (TimerHandleValue) structPropertyValue() {}

// GUIDValue is the Guid struct sub-type.
type GUIDValue string

func (GUIDValue) structPropertyValue() {}

// InventoryItemValue is the InventoryItem struct sub-type.
type InventoryItemValue struct {
	Index    int32           `json:"index"`
	ItemName string          `json:"item_name"`
	Object   ObjectReference `json:"object"`
	Property *Property       `json:"property"`
}

func (InventoryItemValue) structPropertyValue() {}

// FluidBoxValue is the FluidBox struct sub-type.
type FluidBoxValue float32

func (FluidBoxValue) structPropertyValue() {}

// SlateBrushValue is the SlateBrush struct sub-type.
type SlateBrushValue string

func (SlateBrushValue) structPropertyValue() {}

// DateTimeValue is the DateTime struct sub-type.
type DateTimeValue int64

func (DateTimeValue) structPropertyValue() {}

// FICFrameRangeValue is the FICFrameRange struct sub-type.
type FICFrameRangeValue struct {
	Begin int64 `json:"begin"`
	End   int64 `json:"end"`
}

func (FICFrameRangeValue) structPropertyValue() {}

// PropertyListValue is the fallback struct sub-type: a recursive property
// list terminated by the "None" sentinel.
type PropertyListValue []Property

func (PropertyListValue) structPropertyValue() {}

// readStructPropertySubschema implements §4.5.5/§4.6: read the struct
// sub-type tag, skip the 17 opaque bytes, then dispatch.
//
// parentType here is inherited from the enclosing property list (ultimately
// the owning object's type path, per spec.md §9's context-threading note).
// When this function falls through to the default (recursive property
// list) arm, the nested list is given the struct's OWN sub-type tag as its
// parentType, since spec.md's "parent-type == SpawnData" rule for nested
// Vector/Rotator fields can only be read as referring to the immediately
// enclosing struct, not the outer object.
func readStructPropertySubschema(c *decodeCtx, propName, parentType string, depth int) (string, StructPropertyValue, error) {
	r := c.r

	structType, err := r.lengthPrefixedString()
	if err != nil {
		return "", nil, err
	}
	if _, err := r.bytes(structPreambleSkip); err != nil {
		return "", nil, err
	}

	switch structType {
	case "Color":
		v := ColorU8{}
		if vb, err := r.u8(); err != nil {
			return "", nil, err
		} else {
			v.R = vb
		}
		if vb, err := r.u8(); err != nil {
			return "", nil, err
		} else {
			v.G = vb
		}
		if vb, err := r.u8(); err != nil {
			return "", nil, err
		} else {
			v.B = vb
		}
		if vb, err := r.u8(); err != nil {
			return "", nil, err
		} else {
			v.A = vb
		}
		return structType, v, nil

	case "LinearColor":
		v := LinearColorF32{}
		var e error
		if v.R, e = r.f32(); e != nil {
			return "", nil, e
		}
		if v.G, e = r.f32(); e != nil {
			return "", nil, e
		}
		if v.B, e = r.f32(); e != nil {
			return "", nil, e
		}
		if v.A, e = r.f32(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "Vector", "Rotator":
		if parentType == structSpawnData {
			v := Vector3F64{}
			var e error
			if v.X, e = r.f64(); e != nil {
				return "", nil, e
			}
			if v.Y, e = r.f64(); e != nil {
				return "", nil, e
			}
			if v.Z, e = r.f64(); e != nil {
				return "", nil, e
			}
			return structType, v, nil
		}
		v := Vector3F32{}
		var e error
		if v.X, e = r.f32(); e != nil {
			return "", nil, e
		}
		if v.Y, e = r.f32(); e != nil {
			return "", nil, e
		}
		if v.Z, e = r.f32(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "Vector2D":
		v := Vector2F64{}
		var e error
		if v.X, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Y, e = r.f64(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "IntVector4":
		v := Vector4I32{}
		var e error
		if v.A, e = r.i32(); e != nil {
			return "", nil, e
		}
		if v.B, e = r.i32(); e != nil {
			return "", nil, e
		}
		if v.C, e = r.i32(); e != nil {
			return "", nil, e
		}
		if v.D, e = r.i32(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "Quat":
		v := QuatF64{}
		var e error
		if v.X, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Y, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Z, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.W, e = r.f64(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "Vector4":
		v := Vector4F64{}
		var e error
		if v.A, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.B, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.C, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.D, e = r.f64(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "Box":
		v := BoxValue{}
		var e error
		if v.Min.X, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Min.Y, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Min.Z, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Max.X, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Max.Y, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Max.Z, e = r.f64(); e != nil {
			return "", nil, e
		}
		if v.Valid, e = r.u8(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "RailroadTrackPosition":
		v := RailroadTrackPositionValue{}
		var e error
		if v.Object, e = c.readObjectReference(); e != nil {
			return "", nil, e
		}
		if v.Offset, e = r.f32(); e != nil {
			return "", nil, e
		}
		if v.Forward, e = r.f32(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "TimerHandle":
		s, err := r.lengthPrefixedString()
		if err != nil {
			return "", nil, err
		}
		return structType, TimerHandleValue(s), nil

	case "Guid":
		s, err := r.utf16Units(16)
		if err != nil {
			return "", nil, err
		}
		return structType, GUIDValue(s), nil

	case "InventoryItem":
		v := InventoryItemValue{}
		var e error
		if v.Index, e = r.i32(); e != nil {
			return "", nil, e
		}
		if v.ItemName, e = r.lengthPrefixedString(); e != nil {
			return "", nil, e
		}
		if v.Object, e = c.readObjectReference(); e != nil {
			return "", nil, e
		}
		prop, e := readProperty(c, structType, depth+1)
		if e != nil {
			return "", nil, e
		}
		if prop == nil {
			return "", nil, &MissingInventoryItemPropertyError{ItemName: v.ItemName}
		}
		v.Property = prop
		return structType, v, nil

	case "FluidBox":
		f, err := r.f32()
		if err != nil {
			return "", nil, err
		}
		return structType, FluidBoxValue(f), nil

	case "SlateBrush":
		s, err := r.lengthPrefixedString()
		if err != nil {
			return "", nil, err
		}
		return structType, SlateBrushValue(s), nil

	case "DateTime":
		v, err := r.i64()
		if err != nil {
			return "", nil, err
		}
		return structType, DateTimeValue(v), nil

	case "FINNetworkTrace":
		v, err := readFINNetworkTrace(c, depth)
		if err != nil {
			return "", nil, err
		}
		return structType, v, nil

	case "FINLuaProcessorStateStorage":
		v, err := readFINLuaProcessorStateStorage(c, depth)
		if err != nil {
			return "", nil, err
		}
		return structType, v, nil

	case "FICFrameRange":
		v := FICFrameRangeValue{}
		var e error
		if v.Begin, e = r.i64(); e != nil {
			return "", nil, e
		}
		if v.End, e = r.i64(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	case "IntPoint":
		v := Vector2I32{}
		var e error
		if v.X, e = r.i32(); e != nil {
			return "", nil, e
		}
		if v.Y, e = r.i32(); e != nil {
			return "", nil, e
		}
		return structType, v, nil

	default:
		props, err := readPropertyList(c, structType, depth+1)
		if err != nil {
			return "", nil, err
		}
		return structType, PropertyListValue(props), nil
	}
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// maxNetworkTraceDepth guards FINNetworkTrace's self-referential Previous
// chain the same way maxPropertyDepth guards property-list recursion.
const maxNetworkTraceDepth = 4096

// FINNetworkTrace records one hop of a FicsIt-Networks component path: the
// object it names, an optional previous hop, and an optional step label
// describing how the hop was reached (§4.6).
type FINNetworkTrace struct {
	ObjectReference
	Previous *FINNetworkTrace `json:"previous,omitempty"`
	Step     string           `json:"step,omitempty"`
}

func readFINNetworkTrace(c *decodeCtx, depth int) (FINNetworkTrace, error) {
	if depth > maxNetworkTraceDepth {
		c.logger.Warnf("network trace nesting exceeded %d, truncating", maxNetworkTraceDepth)
		return FINNetworkTrace{}, nil
	}

	r := c.r
	ref, err := c.readObjectReference()
	if err != nil {
		return FINNetworkTrace{}, err
	}
	trace := FINNetworkTrace{ObjectReference: ref}

	hasPrevious, err := r.i32()
	if err != nil {
		return FINNetworkTrace{}, err
	}
	if hasPrevious != 0 {
		prev, err := readFINNetworkTrace(c, depth+1)
		if err != nil {
			return FINNetworkTrace{}, err
		}
		trace.Previous = &prev
	}

	hasStep, err := r.i32()
	if err != nil {
		return FINNetworkTrace{}, err
	}
	if hasStep != 0 {
		step, err := r.lengthPrefixedString()
		if err != nil {
			return FINNetworkTrace{}, err
		}
		trace.Step = step
	}

	return trace, nil
}

// finGPUT1BufferPixelCharWidth is the fixed number of UTF-16 code units a
// screen pixel's displayed character occupies on the wire.
const finGPUT1BufferPixelCharWidth = 2

// finGPUT1BufferTrailerWidth is the fixed number of opaque UTF-16 code units
// following a buffer's pixel grid.
const finGPUT1BufferTrailerWidth = 45

// FINGPUT1BufferPixel is one character cell of a GPU text buffer: the
// displayed character plus its foreground and background color.
type FINGPUT1BufferPixel struct {
	Character  string         `json:"character"`
	Foreground LinearColorF32 `json:"foreground"`
	Background LinearColorF32 `json:"background"`
}

func readFINGPUT1BufferPixel(c *decodeCtx) (FINGPUT1BufferPixel, error) {
	r := c.r
	px := FINGPUT1BufferPixel{}

	ch, err := r.utf16Units(finGPUT1BufferPixelCharWidth)
	if err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	px.Character = ch

	if px.Foreground.R, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	if px.Foreground.G, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	if px.Foreground.B, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	if px.Foreground.A, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}

	if px.Background.R, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	if px.Background.G, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	if px.Background.B, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}
	if px.Background.A, err = r.f32(); err != nil {
		return FINGPUT1BufferPixel{}, err
	}

	return px, nil
}

// FINGPUT1Buffer is a full GPU text-mode screen buffer: its declared size,
// four undocumented scratch scalars retained verbatim, its pixel grid, and
// an opaque trailer.
type FINGPUT1Buffer struct {
	Width    float32                `json:"width"`
	Height   float32                `json:"height"`
	Scratch1 float32                `json:"scratch_1"`
	Scratch2 float32                `json:"scratch_2"`
	Scratch3 float32                `json:"scratch_3"`
	Scratch4 float32                `json:"scratch_4"`
	Pixels   []FINGPUT1BufferPixel  `json:"pixels"`
	Trailer  string                 `json:"trailer"`
}

func readFINGPUT1Buffer(c *decodeCtx) (FINGPUT1Buffer, error) {
	r := c.r
	buf := FINGPUT1Buffer{}

	var err error
	if buf.Width, err = r.f32(); err != nil {
		return FINGPUT1Buffer{}, err
	}
	if buf.Height, err = r.f32(); err != nil {
		return FINGPUT1Buffer{}, err
	}
	if buf.Scratch1, err = r.f32(); err != nil {
		return FINGPUT1Buffer{}, err
	}
	if buf.Scratch2, err = r.f32(); err != nil {
		return FINGPUT1Buffer{}, err
	}
	if buf.Scratch3, err = r.f32(); err != nil {
		return FINGPUT1Buffer{}, err
	}
	if buf.Scratch4, err = r.f32(); err != nil {
		return FINGPUT1Buffer{}, err
	}

	n, err := r.i32()
	if err != nil {
		return FINGPUT1Buffer{}, err
	}
	buf.Pixels = make([]FINGPUT1BufferPixel, 0, n)
	for i := int32(0); i < n; i++ {
		px, err := readFINGPUT1BufferPixel(c)
		if err != nil {
			return FINGPUT1Buffer{}, err
		}
		buf.Pixels = append(buf.Pixels, px)
	}

	if buf.Trailer, err = r.utf16Units(finGPUT1BufferTrailerWidth); err != nil {
		return FINGPUT1Buffer{}, err
	}

	return buf, nil
}

// Class names whose FINLuaProcessorStateStorage struct entries this decoder
// recognizes but deliberately discards: their payload is either redundant
// with data recovered elsewhere or not interesting to a save-file reader.
const (
	luaStructClassPrefabSignData          = "/Script/FactoryGame.FGPrefabSignData"
	luaStructClassInternetCardHTTPRequest = "/Script/FicsItNetworks.FINInternetCardHttpRequestFuture"
	luaStructClassInventoryItem           = "/Script/FactoryGame.InventoryItem"

	luaStructClassVector         = "/Script/CoreUObject.Vector"
	luaStructClassLinearColor    = "/Script/CoreUObject.LinearColor"
	luaStructClassInventoryStack = "/Script/FactoryGame.InventoryStack"
	luaStructClassItemAmount     = "/Script/FactoryGame.ItemAmount"
	luaStructClassFINTrackGraph  = "/Script/FicsItNetworks.FINTrackGraph"
	luaStructClassFINGPUT1Buffer = "/Script/FicsItNetworks.FINGPUT1Buffer"
)

// FINLuaProcessorStateStorageStructValue is the tagged union of the six
// recognized FINLuaProcessorStateStorage struct-list entry shapes (§4.6).
type FINLuaProcessorStateStorageStructValue interface {
	luaProcessorStructValue()
}

func (Vector3F32) luaProcessorStructValue()             {}
func (LinearColorF32) luaProcessorStructValue()         {}
func (InventoryStackLuaValue) luaProcessorStructValue() {}
func (ItemAmountLuaValue) luaProcessorStructValue()     {}
func (FINTrackGraphLuaValue) luaProcessorStructValue()  {}
func (FINGPUT1Buffer) luaProcessorStructValue()         {}

// InventoryStackLuaValue is the InventoryStack class shape: two scratch
// strings, two scratch ints, a nested Struct property, and a trailing
// scratch string.
type InventoryStackLuaValue struct {
	Str1       string              `json:"str_1"`
	Str2       string              `json:"str_2"`
	Int1       int32               `json:"int_1"`
	Int2       int32               `json:"int_2"`
	StructType string              `json:"struct_type"`
	Struct     StructPropertyValue `json:"struct"`
	Str3       string              `json:"str_3"`
}

// ItemAmountLuaValue is the ItemAmount class shape.
type ItemAmountLuaValue struct {
	Int1 int32  `json:"int_1"`
	Str1 string `json:"str_1"`
	Int2 int32  `json:"int_2"`
}

// FINTrackGraphLuaValue is the FINTrackGraph class shape: a network trace
// plus a trailing opaque i32.
type FINTrackGraphLuaValue struct {
	Trace FINNetworkTrace `json:"trace"`
	Int1  int32           `json:"int_1"`
}

// FINLuaProcessorStateStorageStruct is one entry of a Lua processor's
// persisted struct list, keyed by its owning class.
type FINLuaProcessorStateStorageStruct struct {
	Scratch   int32                                  `json:"scratch"`
	ClassName string                                  `json:"class_name"`
	Value     FINLuaProcessorStateStorageStructValue `json:"value,omitempty"`
}

// FINLuaProcessorStateStorage is the serialized state of a FicsIt-Networks
// Lua processor: its network traces, object references, thread and globals
// blobs, and its struct list.
type FINLuaProcessorStateStorage struct {
	Traces  []FINNetworkTrace                   `json:"traces"`
	Refs    []ObjectReference                   `json:"refs"`
	Thread  string                               `json:"thread"`
	Globals string                               `json:"globals"`
	Structs []FINLuaProcessorStateStorageStruct `json:"structs"`
}

func readFINLuaProcessorStateStorage(c *decodeCtx, depth int) (*FINLuaProcessorStateStorage, error) {
	r := c.r
	s := &FINLuaProcessorStateStorage{}

	nTraces, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nTraces; i++ {
		t, err := readFINNetworkTrace(c, depth+1)
		if err != nil {
			return nil, err
		}
		s.Traces = append(s.Traces, t)
	}

	nRefs, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nRefs; i++ {
		ref, err := c.readObjectReference()
		if err != nil {
			return nil, err
		}
		s.Refs = append(s.Refs, ref)
	}

	if s.Thread, err = r.lengthPrefixedString(); err != nil {
		return nil, err
	}
	if s.Globals, err = r.lengthPrefixedString(); err != nil {
		return nil, err
	}

	nStructs, err := r.i32()
	if err != nil {
		return nil, err
	}
	for i := int32(0); i < nStructs; i++ {
		scratch, err := r.i32()
		if err != nil {
			return nil, err
		}

		className, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}

		switch className {
		case luaStructClassPrefabSignData, luaStructClassInternetCardHTTPRequest, luaStructClassInventoryItem:
			c.logger.Debugf("lua processor state storage: discarding struct of class %q", className)
			continue
		}

		var value FINLuaProcessorStateStorageStructValue
		switch className {
		case luaStructClassVector:
			v := Vector3F32{}
			if v.X, err = r.f32(); err != nil {
				return nil, err
			}
			if v.Y, err = r.f32(); err != nil {
				return nil, err
			}
			if v.Z, err = r.f32(); err != nil {
				return nil, err
			}
			value = v

		case luaStructClassLinearColor:
			v := LinearColorF32{}
			if v.R, err = r.f32(); err != nil {
				return nil, err
			}
			if v.G, err = r.f32(); err != nil {
				return nil, err
			}
			if v.B, err = r.f32(); err != nil {
				return nil, err
			}
			if v.A, err = r.f32(); err != nil {
				return nil, err
			}
			value = v

		case luaStructClassInventoryStack:
			v := InventoryStackLuaValue{}
			if v.Str1, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			if v.Str2, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			if v.Int1, err = r.i32(); err != nil {
				return nil, err
			}
			if v.Int2, err = r.i32(); err != nil {
				return nil, err
			}
			v.StructType, v.Struct, err = readStructPropertySubschema(c, className, className, depth+1)
			if err != nil {
				return nil, err
			}
			if v.Str3, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			value = v

		case luaStructClassItemAmount:
			v := ItemAmountLuaValue{}
			if v.Int1, err = r.i32(); err != nil {
				return nil, err
			}
			if v.Str1, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			if v.Int2, err = r.i32(); err != nil {
				return nil, err
			}
			value = v

		case luaStructClassFINTrackGraph:
			v := FINTrackGraphLuaValue{}
			if v.Trace, err = readFINNetworkTrace(c, depth+1); err != nil {
				return nil, err
			}
			if v.Int1, err = r.i32(); err != nil {
				return nil, err
			}
			value = v

		case luaStructClassFINGPUT1Buffer:
			buf, err := readFINGPUT1Buffer(c)
			if err != nil {
				return nil, err
			}
			value = buf

		default:
			return nil, &UnknownLuaProcessorStateStorageStructTypeError{ClassName: className}
		}

		s.Structs = append(s.Structs, FINLuaProcessorStateStorageStruct{
			Scratch:   scratch,
			ClassName: className,
			Value:     value,
		})
	}

	return s, nil
}

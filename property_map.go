// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// Parent-type / property-name constants driving the context-sensitive Map
// special cases (§4.5.3). Transcribed from
// original_source/src/lib.rs's read_map_property.
const (
	parentTypeBGUSubsystem = "/BuildGunUtilities/BGU_Subsystem.BGU_Subsystem_C"
	parentTypeLBBalancer   = "LBBalancerData"
	parentTypeSubStorageSR = "/StorageStatsRoom/Sub_SR.Sub_SR_C"

	propNameDestroyedFoliageTransform = "Destroyed_Foliage_Transform"
	propNameSaveData                  = "mSaveData"
	propNameUnresolvedSaveData        = "mUnresolvedSaveData"
)

// MapEntryKey is the tagged union of MapProperty key variants.
type MapEntryKey interface {
	mapEntryKey()
}

type (
	IntMapKey    int32
	Int64MapKey  int64
	NameMapKey   string
	StrMapKey    string
	EnumMapKey   string
	ObjectMapKey ObjectReference
)

// Vector3F64MapKey, Vector3F32MapKey and Vector3I32MapKey are the three
// context-sensitive Struct key shapes.
type (
	Vector3F64MapKey Vector3F64
	Vector3F32MapKey Vector3F32
	Vector3I32MapKey Vector3I32
)

// PropertyListMapKey is the fallback Struct key: a recursive property list.
type PropertyListMapKey []Property

func (IntMapKey) mapEntryKey()          {}
func (Int64MapKey) mapEntryKey()        {}
func (NameMapKey) mapEntryKey()         {}
func (StrMapKey) mapEntryKey()          {}
func (EnumMapKey) mapEntryKey()         {}
func (ObjectMapKey) mapEntryKey()       {}
func (Vector3F64MapKey) mapEntryKey()   {}
func (Vector3F32MapKey) mapEntryKey()   {}
func (Vector3I32MapKey) mapEntryKey()   {}
func (PropertyListMapKey) mapEntryKey() {}

// MapEntryValue is the tagged union of MapProperty value variants.
type MapEntryValue interface {
	mapEntryValue()
}

type (
	BoolMapValue   bool
	IntMapValue    int32
	Int64MapValue  int64
	FloatMapValue  float32
	DoubleMapValue float64
)

// ByteMapValue is the Byte value variant. String is set instead of Byte
// when the map's key type is Str.
type ByteMapValue struct {
	Byte   *uint8  `json:"byte,omitempty"`
	String *string `json:"string,omitempty"`
}

// StrMapValue is the Str value variant; the three scratch floats precede
// the string on the wire and their meaning is undocumented (§9 open
// question), retained verbatim.
type StrMapValue struct {
	Scratch1 float32 `json:"scratch_1"`
	Scratch2 float32 `json:"scratch_2"`
	Scratch3 float32 `json:"scratch_3"`
	Value    string  `json:"value"`
}

// ObjectMapValue is the default Object value variant: a plain object
// reference.
type ObjectMapValue ObjectReference

// ObjectBGUSubsystemMapValue is the BGU_Subsystem Object special case; the
// map holds at most one such pair.
type ObjectBGUSubsystemMapValue struct {
	F1  float32 `json:"f1"`
	F2  float32 `json:"f2"`
	F3  float32 `json:"f3"`
	F4  float32 `json:"f4"`
	Str string  `json:"str"`
}

// StructLBBalancerMapValue is the LBBalancerData Struct special case; the
// map holds at most one such pair.
type StructLBBalancerMapValue struct {
	Index1 int32 `json:"index_1"`
	Index2 int32 `json:"index_2"`
	Index3 int32 `json:"index_3"`
}

// StructSubSRMapValue is the Sub_SR.Sub_SR_C Struct special case; the map
// holds at most one such pair.
type StructSubSRMapValue struct {
	F1 float64 `json:"f1"`
	F2 float64 `json:"f2"`
	F3 float64 `json:"f3"`
}

// StructPropertyListMapValue is the fallback Struct value: a recursive
// property list.
type StructPropertyListMapValue []Property

func (BoolMapValue) mapEntryValue()               {}
func (IntMapValue) mapEntryValue()                {}
func (Int64MapValue) mapEntryValue()              {}
func (FloatMapValue) mapEntryValue()              {}
func (DoubleMapValue) mapEntryValue()             {}
func (ByteMapValue) mapEntryValue()               {}
func (StrMapValue) mapEntryValue()                {}
func (ObjectMapValue) mapEntryValue()             {}
func (ObjectBGUSubsystemMapValue) mapEntryValue() {}
func (StructLBBalancerMapValue) mapEntryValue()   {}
func (StructSubSRMapValue) mapEntryValue()        {}
func (StructPropertyListMapValue) mapEntryValue() {}

// MapEntry is one (key, value) pair of a MapProperty.
type MapEntry struct {
	Key   MapEntryKey   `json:"key"`
	Value MapEntryValue `json:"value"`
}

// MapModePreambleMode2 is the mode-2 preamble: two strings.
type MapModePreambleMode2 struct {
	Str1 string `json:"str_1"`
	Str2 string `json:"str_2"`
}

// MapModePreambleMode3 is the mode-3 preamble: a 9-code-unit UTF-16 token
// plus two strings.
type MapModePreambleMode3 struct {
	Token string `json:"token"`
	Str1  string `json:"str_1"`
	Str2  string `json:"str_2"`
}

// MapValue is the Map property kind.
type MapValue struct {
	KeyType   string                `json:"key_type"`
	ValueType string                `json:"value_type"`
	ModeType  int32                 `json:"mode_type"`
	Mode2     *MapModePreambleMode2 `json:"mode_2,omitempty"`
	Mode3     *MapModePreambleMode3 `json:"mode_3,omitempty"`
	Entries   []MapEntry            `json:"entries"`
}

// readMapProperty implements §4.5.3.
func readMapProperty(c *decodeCtx, propName, parentType string, depth int) (*MapValue, error) {
	r := c.r

	rawKeyType, err := r.lengthPrefixedString()
	if err != nil {
		return nil, err
	}
	rawValueType, err := r.lengthPrefixedString()
	if err != nil {
		return nil, err
	}
	if _, err := r.u8(); err != nil { // padding byte
		return nil, err
	}

	mv := &MapValue{
		KeyType:   stripPropertySuffix(rawKeyType),
		ValueType: stripPropertySuffix(rawValueType),
	}

	if mv.ModeType, err = r.i32(); err != nil {
		return nil, err
	}

	switch mv.ModeType {
	case 2:
		m := &MapModePreambleMode2{}
		if m.Str1, err = r.lengthPrefixedString(); err != nil {
			return nil, err
		}
		if m.Str2, err = r.lengthPrefixedString(); err != nil {
			return nil, err
		}
		mv.Mode2 = m
	case 3:
		m := &MapModePreambleMode3{}
		if m.Token, err = r.utf16Units(9); err != nil {
			return nil, err
		}
		if m.Str1, err = r.lengthPrefixedString(); err != nil {
			return nil, err
		}
		if m.Str2, err = r.lengthPrefixedString(); err != nil {
			return nil, err
		}
		mv.Mode3 = m
	}

	n, err := r.i32()
	if err != nil {
		return nil, err
	}

	for i := int32(0); i < n; i++ {
		key, err := readMapKey(c, mv.KeyType, propName, parentType, depth)
		if err != nil {
			return nil, err
		}
		value, terminate, err := readMapValue(c, mv.KeyType, mv.ValueType, parentType, depth)
		if err != nil {
			return nil, err
		}
		mv.Entries = append(mv.Entries, MapEntry{Key: key, Value: value})
		if terminate {
			break
		}
	}

	return mv, nil
}

func readMapKey(c *decodeCtx, keyType, propName, parentType string, depth int) (MapEntryKey, error) {
	r := c.r

	switch keyType {
	case "Int":
		v, err := r.i32()
		if err != nil {
			return nil, err
		}
		return IntMapKey(v), nil

	case "Int64":
		v, err := r.i64()
		if err != nil {
			return nil, err
		}
		return Int64MapKey(v), nil

	case "Name":
		s, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		return NameMapKey(s), nil

	case "Str":
		s, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		return StrMapKey(s), nil

	case "Enum":
		s, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		return EnumMapKey(s), nil

	case "Object":
		ref, err := c.readObjectReference()
		if err != nil {
			return nil, err
		}
		return ObjectMapKey(ref), nil

	case "Struct":
		return readMapStructKey(c, propName, parentType, depth)

	default:
		return nil, &UnknownMapKeyTypeError{Type: keyType}
	}
}

func readMapStructKey(c *decodeCtx, propName, parentType string, depth int) (MapEntryKey, error) {
	r := c.r

	switch {
	case propName == propNameDestroyedFoliageTransform:
		v := Vector3F64{}
		var err error
		if v.X, err = r.f64(); err != nil {
			return nil, err
		}
		if v.Y, err = r.f64(); err != nil {
			return nil, err
		}
		if v.Z, err = r.f64(); err != nil {
			return nil, err
		}
		return Vector3F64MapKey(v), nil

	case parentType == parentTypeBGUSubsystem:
		v := Vector3F32{}
		var err error
		if v.X, err = r.f32(); err != nil {
			return nil, err
		}
		if v.Y, err = r.f32(); err != nil {
			return nil, err
		}
		if v.Z, err = r.f32(); err != nil {
			return nil, err
		}
		return Vector3F32MapKey(v), nil

	case propName == propNameSaveData || propName == propNameUnresolvedSaveData:
		v := Vector3I32{}
		var err error
		if v.X, err = r.i32(); err != nil {
			return nil, err
		}
		if v.Y, err = r.i32(); err != nil {
			return nil, err
		}
		if v.Z, err = r.i32(); err != nil {
			return nil, err
		}
		return Vector3I32MapKey(v), nil

	default:
		props, err := readPropertyList(c, parentType, depth+1)
		if err != nil {
			return nil, err
		}
		return PropertyListMapKey(props), nil
	}
}

// readMapValue returns the decoded value and whether the pair loop must
// terminate immediately after it (the BGU_Subsystem / LBBalancerData /
// Sub_SR special cases each hold at most one pair).
func readMapValue(c *decodeCtx, keyType, valueType, parentType string, depth int) (MapEntryValue, bool, error) {
	r := c.r

	switch valueType {
	case "Byte":
		if keyType == "Str" {
			s, err := r.lengthPrefixedString()
			if err != nil {
				return nil, false, err
			}
			return ByteMapValue{String: &s}, false, nil
		}
		b, err := r.u8()
		if err != nil {
			return nil, false, err
		}
		return ByteMapValue{Byte: &b}, false, nil

	case "Bool":
		b, err := r.u8()
		if err != nil {
			return nil, false, err
		}
		return BoolMapValue(b != 0), false, nil

	case "Int":
		v, err := r.i32()
		if err != nil {
			return nil, false, err
		}
		return IntMapValue(v), false, nil

	case "Int64":
		v, err := r.i64()
		if err != nil {
			return nil, false, err
		}
		return Int64MapValue(v), false, nil

	case "Float":
		v, err := r.f32()
		if err != nil {
			return nil, false, err
		}
		return FloatMapValue(v), false, nil

	case "Double":
		v, err := r.f64()
		if err != nil {
			return nil, false, err
		}
		return DoubleMapValue(v), false, nil

	case "Str":
		v := StrMapValue{}
		var err error
		if v.Scratch1, err = r.f32(); err != nil {
			return nil, false, err
		}
		if v.Scratch2, err = r.f32(); err != nil {
			return nil, false, err
		}
		if v.Scratch3, err = r.f32(); err != nil {
			return nil, false, err
		}
		if v.Value, err = r.lengthPrefixedString(); err != nil {
			return nil, false, err
		}
		return v, false, nil

	case "Object":
		if parentType == parentTypeBGUSubsystem {
			v := ObjectBGUSubsystemMapValue{}
			var err error
			if v.F1, err = r.f32(); err != nil {
				return nil, false, err
			}
			if v.F2, err = r.f32(); err != nil {
				return nil, false, err
			}
			if v.F3, err = r.f32(); err != nil {
				return nil, false, err
			}
			if v.F4, err = r.f32(); err != nil {
				return nil, false, err
			}
			if v.Str, err = r.lengthPrefixedString(); err != nil {
				return nil, false, err
			}
			return v, true, nil
		}
		ref, err := c.readObjectReference()
		if err != nil {
			return nil, false, err
		}
		return ObjectMapValue(ref), false, nil

	case "Struct":
		switch parentType {
		case parentTypeLBBalancer:
			v := StructLBBalancerMapValue{}
			var err error
			if v.Index1, err = r.i32(); err != nil {
				return nil, false, err
			}
			if v.Index2, err = r.i32(); err != nil {
				return nil, false, err
			}
			if v.Index3, err = r.i32(); err != nil {
				return nil, false, err
			}
			return v, true, nil
		case parentTypeSubStorageSR:
			v := StructSubSRMapValue{}
			var err error
			if v.F1, err = r.f64(); err != nil {
				return nil, false, err
			}
			if v.F2, err = r.f64(); err != nil {
				return nil, false, err
			}
			if v.F3, err = r.f64(); err != nil {
				return nil, false, err
			}
			return v, true, nil
		default:
			props, err := readPropertyList(c, parentType, depth+1)
			if err != nil {
				return nil, false, err
			}
			return StructPropertyListMapValue(props), false, nil
		}

	default:
		return nil, false, &UnknownMapValueTypeError{Type: valueType}
	}
}

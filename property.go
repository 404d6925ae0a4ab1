// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import "strings"

// maxPropertyDepth guards the property/struct mutual recursion against a
// corrupt or adversarial stream that never emits a "None" sentinel. Mirrors
// resource.go's maxAllowedEntries guard on resource-directory recursion:
// past this depth the list is not read; a warning is logged and an empty
// list is returned without error, rather than exhausting the stack.
const maxPropertyDepth = 4096

// PropertyValue is the tagged union of everything a Property can hold.
// Every implementation is an exported struct or defined scalar type so
// that encoding/json marshals the whole recursive tree with no custom
// MarshalJSON required anywhere in this package.
type PropertyValue interface {
	propertyValue()
}

// BoolValue is the Bool property kind.
type BoolValue bool

// Int8Value is the Int8 property kind.
type Int8Value int8

// IntValue is the Int property kind.
type IntValue int32

// Int64Value is the Int64 property kind.
type Int64Value int64

// UInt32Value is the UInt32 property kind.
type UInt32Value uint32

// UInt64Value is the UInt64 property kind.
type UInt64Value uint64

// FloatValue is the Float property kind.
type FloatValue float32

// DoubleValue is the Double property kind.
type DoubleValue float64

// StringValue is the Str/Name property kind.
type StringValue string

// ObjectValue is the Object/Interface property kind.
type ObjectValue ObjectReference

// EnumValue is the Enum property kind.
type EnumValue struct {
	EnumType string `json:"enum_type"`
	Value    string `json:"value"`
}

// ByteValue is the Byte property kind. Exactly one of Byte or String is set,
// depending on whether the inner type name was the literal "None".
type ByteValue struct {
	InnerType string  `json:"inner_type"`
	Byte      *uint8  `json:"byte,omitempty"`
	String    *string `json:"string,omitempty"`
}

func (BoolValue) propertyValue()    {}
func (Int8Value) propertyValue()    {}
func (IntValue) propertyValue()     {}
func (Int64Value) propertyValue()   {}
func (UInt32Value) propertyValue()  {}
func (UInt64Value) propertyValue()  {}
func (FloatValue) propertyValue()   {}
func (DoubleValue) propertyValue()  {}
func (StringValue) propertyValue()  {}
func (ObjectValue) propertyValue()  {}
func (EnumValue) propertyValue()    {}
func (ByteValue) propertyValue()    {}
func (TextValue) propertyValue()    {}
func (*ArrayValue) propertyValue()  {}
func (*MapValue) propertyValue()    {}
func (*SetValue) propertyValue()    {}
func (StructValue) propertyValue()  {}

// TextValue wraps a TextProperty (§4.5.1).
type TextValue struct {
	Text TextProperty `json:"text"`
}

// StructValue is the Struct property kind: a struct-type tag plus the
// decoded StructPropertyValue (§4.6).
type StructValue struct {
	StructType string             `json:"struct_type"`
	Value      StructPropertyValue `json:"value"`
}

// Property is a single named, typed, self-delimited entry in a property
// list.
type Property struct {
	Name  string        `json:"name"`
	Type  string        `json:"type"`
	Size  int32         `json:"size"`
	Index int32         `json:"index"`
	GUID  *string       `json:"guid,omitempty"`
	Value PropertyValue `json:"value"`
}

// propertyNone is the sentinel name terminating every property list.
const propertyNone = "None"

// stripPropertySuffix removes the trailing literal "Property" a type tag
// carries on the wire.
func stripPropertySuffix(tag string) string {
	return strings.TrimSuffix(tag, "Property")
}

// readPropertyGUID reads the single-byte guid-present flag and, if set, the
// 16-code-unit UTF-16 GUID that follows.
func readPropertyGUID(r *reader) (*string, error) {
	flag, err := r.u8()
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		return nil, nil
	}
	guid, err := r.utf16Units(16)
	if err != nil {
		return nil, err
	}
	return &guid, nil
}

// readPropertyList reads properties until the "None" sentinel, which is
// consumed but not included in the result. parentType is threaded through
// for the context-sensitive Map/Struct special cases documented in
// spec.md §4.5.3/§4.6.
func readPropertyList(c *decodeCtx, parentType string, depth int) ([]Property, error) {
	if depth > maxPropertyDepth {
		c.logger.Warnf("property list nesting exceeded %d, truncating", maxPropertyDepth)
		return nil, nil
	}

	var props []Property
	for {
		p, err := readProperty(c, parentType, depth+1)
		if err != nil {
			return props, err
		}
		if p == nil {
			return props, nil
		}
		props = append(props, *p)
	}
}

// readProperty implements C5's entry point. It returns (nil, nil) on the
// "None" sentinel.
func readProperty(c *decodeCtx, parentType string, depth int) (*Property, error) {
	r := c.r

	name, err := r.lengthPrefixedString()
	if err != nil {
		return nil, err
	}
	if name == propertyNone {
		return nil, nil
	}

	// The stream occasionally inserts a single zero byte between the name
	// and the type tag. A nonzero byte means it was not inserted, so it is
	// the first byte of the type tag's length prefix and must be put back.
	sep, err := r.u8()
	if err != nil {
		return nil, err
	}
	if sep != 0 {
		if err := r.seek(-1); err != nil {
			return nil, err
		}
	}

	rawTag, err := r.lengthPrefixedString()
	if err != nil {
		return nil, err
	}
	tag := stripPropertySuffix(rawTag)

	size, err := r.i32()
	if err != nil {
		return nil, err
	}
	index, err := r.i32()
	if err != nil {
		return nil, err
	}

	p := &Property{Name: name, Type: tag, Size: size, Index: index}

	switch tag {
	case "Bool":
		b, err := r.u8()
		if err != nil {
			return nil, err
		}
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		p.Value = BoolValue(b != 0)

	case "Int8":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.i8()
		if err != nil {
			return nil, err
		}
		p.Value = Int8Value(v)

	case "Int":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.i32()
		if err != nil {
			return nil, err
		}
		p.Value = IntValue(v)

	case "Int64":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.i64()
		if err != nil {
			return nil, err
		}
		p.Value = Int64Value(v)

	case "UInt32":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		p.Value = UInt32Value(v)

	case "UInt64":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.u64()
		if err != nil {
			return nil, err
		}
		p.Value = UInt64Value(v)

	case "Float":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.f32()
		if err != nil {
			return nil, err
		}
		p.Value = FloatValue(v)

	case "Double":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		v, err := r.f64()
		if err != nil {
			return nil, err
		}
		p.Value = DoubleValue(v)

	case "Str", "Name":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		s, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		p.Value = StringValue(s)

	case "Object", "Interface":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		ref, err := c.readObjectReference()
		if err != nil {
			return nil, err
		}
		p.Value = ObjectValue(ref)

	case "Enum":
		enumType, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		value, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		p.Value = EnumValue{EnumType: enumType, Value: value}

	case "Byte":
		innerType, err := r.lengthPrefixedString()
		if err != nil {
			return nil, err
		}
		bv := ByteValue{InnerType: innerType}
		if innerType == propertyNone {
			b, err := r.u8()
			if err != nil {
				return nil, err
			}
			bv.Byte = &b
		} else {
			s, err := r.lengthPrefixedString()
			if err != nil {
				return nil, err
			}
			bv.String = &s
		}
		p.Value = bv

	case "Text":
		if p.GUID, err = readPropertyGUID(r); err != nil {
			return nil, err
		}
		tv, err := readTextProperty(c, depth)
		if err != nil {
			return nil, err
		}
		p.Value = TextValue{Text: tv}

	case "Array":
		av, err := readArrayProperty(c, name, parentType, depth)
		if err != nil {
			return nil, err
		}
		p.Value = av

	case "Map":
		mv, err := readMapProperty(c, name, parentType, depth)
		if err != nil {
			return nil, err
		}
		p.Value = mv

	case "Set":
		sv, err := readSetProperty(c, parentType, depth)
		if err != nil {
			return nil, err
		}
		p.Value = sv

	case "Struct":
		structType, value, err := readStructPropertySubschema(c, name, parentType, depth)
		if err != nil {
			return nil, err
		}
		p.Value = StructValue{StructType: structType, Value: value}

	default:
		return nil, &UnknownPropertyTypeError{Tag: tag}
	}

	return p, nil
}

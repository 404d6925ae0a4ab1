// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// parentTypeFGFoilageRemoval selects the f32-vector Struct element shape in
// a SetProperty; every other parent type uses the FINNetworkTrace shape.
const parentTypeFGFoilageRemoval = "/Script/FactoryGame.FGFoilageRemoval"

// SetElement is the tagged union of SetProperty element kinds (§4.5.4).
type SetElement interface {
	setElement()
}

type (
	IntSetElement    int32
	UInt32SetElement uint32
	NameSetElement   string
	ObjectSetElement ObjectReference
)

// Vector3F32SetElement is the FGFoilageRemoval Struct element shape.
type Vector3F32SetElement Vector3F32

// FINNetworkTraceSetElement is the default Struct element shape.
type FINNetworkTraceSetElement FINNetworkTrace

func (IntSetElement) setElement()            {}
func (UInt32SetElement) setElement()         {}
func (NameSetElement) setElement()           {}
func (ObjectSetElement) setElement()         {}
func (Vector3F32SetElement) setElement()     {}
func (FINNetworkTraceSetElement) setElement() {}

// SetValue is the Set property kind.
type SetValue struct {
	ElementType string       `json:"element_type"`
	Elements    []SetElement `json:"elements"`
}

// readSetProperty implements §4.5.4.
func readSetProperty(c *decodeCtx, parentType string, depth int) (*SetValue, error) {
	r := c.r

	rawElemType, err := r.lengthPrefixedString()
	if err != nil {
		return nil, err
	}
	elemType := stripPropertySuffix(rawElemType)

	if _, err := r.bytes(5); err != nil { // padding
		return nil, err
	}

	n, err := r.i32()
	if err != nil {
		return nil, err
	}

	sv := &SetValue{ElementType: elemType}

	for i := int32(0); i < n; i++ {
		switch elemType {
		case "Int":
			v, err := r.i32()
			if err != nil {
				return nil, err
			}
			sv.Elements = append(sv.Elements, IntSetElement(v))

		case "UInt32":
			v, err := r.u32()
			if err != nil {
				return nil, err
			}
			sv.Elements = append(sv.Elements, UInt32SetElement(v))

		case "Name", "String":
			s, err := r.lengthPrefixedString()
			if err != nil {
				return nil, err
			}
			sv.Elements = append(sv.Elements, NameSetElement(s))

		case "Object":
			ref, err := c.readObjectReference()
			if err != nil {
				return nil, err
			}
			sv.Elements = append(sv.Elements, ObjectSetElement(ref))

		case "Struct":
			if parentType == parentTypeFGFoilageRemoval {
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
				sv.Elements = append(sv.Elements, Vector3F32SetElement(v))
			} else {
				t, err := readFINNetworkTrace(c, depth)
				if err != nil {
					return nil, err
				}
				sv.Elements = append(sv.Elements, FINNetworkTraceSetElement(t))
			}

		default:
			return nil, &UnknownSetTypeError{Type: elemType}
		}
	}

	return sv, nil
}

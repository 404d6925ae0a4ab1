// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// ArrayElement is the tagged union of everything an ArrayValue element can
// hold.
type ArrayElement interface {
	arrayElement()
}

// BoolElement, ByteElement, ... are the primitive ArrayProperty element
// kinds (§4.5.2).
type (
	BoolElement   bool
	ByteElement   uint8
	IntElement    int32
	LongElement   int64
	FloatElement  float32
	EnumElement   string
	StrElement    string
	ObjectElement ObjectReference
)

// TextElement wraps a nested Text value.
type TextElement struct {
	Text TextProperty `json:"text"`
}

// SoftObjectElement is a soft-object-reference array element: three strings
// whose exact semantics are not interpreted by this decoder, retained
// verbatim.
type SoftObjectElement struct {
	AssetPathName string `json:"asset_path_name"`
	SubPathString string `json:"sub_path_string"`
	Extra         string `json:"extra"`
}

func (BoolElement) arrayElement()       {}
func (ByteElement) arrayElement()       {}
func (IntElement) arrayElement()        {}
func (LongElement) arrayElement()       {}
func (FloatElement) arrayElement()      {}
func (EnumElement) arrayElement()       {}
func (StrElement) arrayElement()        {}
func (ObjectElement) arrayElement()     {}
func (TextElement) arrayElement()       {}
func (SoftObjectElement) arrayElement() {}
func (StructArrayElement) arrayElement() {}

// ArrayStructElement is the tagged union of Struct-typed ArrayProperty
// elements (§4.5.2's nested struct-array dispatch).
type ArrayStructElement interface {
	arrayStructElement()
}

// ArrayInventoryItemElement is the InventoryItem struct-array sub-type.
type ArrayInventoryItemElement struct {
	Index     int32  `json:"index"`
	ItemName  string `json:"item_name"`
	LevelName string `json:"level_name"`
	PathName  string `json:"path_name"`
}

// ArrayGUIDElement is the Guid struct-array sub-type.
type ArrayGUIDElement string

// ArrayFINNetworkTraceElement is the FINNetworkTrace struct-array sub-type.
type ArrayFINNetworkTraceElement FINNetworkTrace

// ArrayVectorF64Element is the Vector struct-array sub-type (read as f64).
type ArrayVectorF64Element Vector3F64

// ArrayLinearColorElement is the LinearColor struct-array sub-type.
type ArrayLinearColorElement LinearColorF32

// ArrayFINGPUT1BufferPixelElement is the FINGPUT1BufferPixel struct-array
// sub-type.
type ArrayFINGPUT1BufferPixelElement FINGPUT1BufferPixel

// ArrayPropertyListElement is the fallback struct-array sub-type: a
// sentinel-terminated property list.
type ArrayPropertyListElement []Property

func (ArrayInventoryItemElement) arrayStructElement()       {}
func (ArrayGUIDElement) arrayStructElement()                {}
func (ArrayFINNetworkTraceElement) arrayStructElement()     {}
func (ArrayVectorF64Element) arrayStructElement()           {}
func (ArrayLinearColorElement) arrayStructElement()         {}
func (ArrayFINGPUT1BufferPixelElement) arrayStructElement() {}
func (ArrayPropertyListElement) arrayStructElement()         {}

// StructArrayElement is the ArrayElement wrapper around an
// ArrayStructElement, carrying the element's own sub-type tag.
type StructArrayElement struct {
	SubType string             `json:"sub_type"`
	Value   ArrayStructElement `json:"value"`
}

// ArrayStructMeta is the nested struct-array header read once per
// ArrayProperty of element-type Struct.
type ArrayStructMeta struct {
	PropertyName string `json:"property_name"`
	DeclaredSize int32  `json:"declared_size"`
	SubType      string `json:"sub_type"`
	GUID1        int32  `json:"guid_1"`
	GUID2        int32  `json:"guid_2"`
	GUID3        int32  `json:"guid_3"`
	GUID4        int32  `json:"guid_4"`
}

// ArrayValue is the Array property kind.
type ArrayValue struct {
	ElementType string            `json:"element_type"`
	StructMeta  *ArrayStructMeta  `json:"struct_meta,omitempty"`
	Elements    []ArrayElement    `json:"elements"`
}

const fogOfWarRawDataProperty = "mFogOfWarRawData"

// readArrayProperty implements §4.5.2.
func readArrayProperty(c *decodeCtx, propName, parentType string, depth int) (*ArrayValue, error) {
	r := c.r

	rawElemType, err := r.lengthPrefixedString()
	if err != nil {
		return nil, err
	}
	elemType := stripPropertySuffix(rawElemType)

	if _, err := r.u8(); err != nil { // padding byte
		return nil, err
	}

	n, err := r.i32()
	if err != nil {
		return nil, err
	}

	av := &ArrayValue{ElementType: elemType}

	if propName == fogOfWarRawDataProperty && elemType == "Byte" {
		groups := n / 4
		av.Elements = make([]ArrayElement, 0, groups)
		for i := int32(0); i < groups; i++ {
			group, err := r.bytes(4)
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, ByteElement(group[2]))
		}
		return av, nil
	}

	switch elemType {
	case "Bool":
		for i := int32(0); i < n; i++ {
			b, err := r.u8()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, BoolElement(b != 0))
		}

	case "Byte":
		for i := int32(0); i < n; i++ {
			b, err := r.u8()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, ByteElement(b))
		}

	case "Int":
		for i := int32(0); i < n; i++ {
			v, err := r.i32()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, IntElement(v))
		}

	case "Int64":
		for i := int32(0); i < n; i++ {
			v, err := r.i64()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, LongElement(v))
		}

	case "Float":
		for i := int32(0); i < n; i++ {
			v, err := r.f32()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, FloatElement(v))
		}

	case "Enum":
		for i := int32(0); i < n; i++ {
			s, err := r.lengthPrefixedString()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, EnumElement(s))
		}

	case "Str":
		for i := int32(0); i < n; i++ {
			s, err := r.lengthPrefixedString()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, StrElement(s))
		}

	case "Text":
		for i := int32(0); i < n; i++ {
			t, err := readTextProperty(c, depth+1)
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, TextElement{Text: t})
		}

	case "Object", "Interface":
		for i := int32(0); i < n; i++ {
			ref, err := c.readObjectReference()
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, ObjectElement(ref))
		}

	case "SoftObject":
		for i := int32(0); i < n; i++ {
			var e SoftObjectElement
			if e.AssetPathName, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			if e.SubPathString, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			if e.Extra, err = r.lengthPrefixedString(); err != nil {
				return nil, err
			}
			c.logger.Debugf("array %q: discarding soft object reference %s/%s/%s", propName, e.AssetPathName, e.SubPathString, e.Extra)
			av.Elements = append(av.Elements, e)
		}

	case "Struct":
		meta := &ArrayStructMeta{}
		if meta.PropertyName, err = r.lengthPrefixedString(); err != nil {
			return nil, err
		}
		if _, err := r.lengthPrefixedString(); err != nil { // literal "StructProperty" tag
			return nil, err
		}
		if meta.DeclaredSize, err = r.i32(); err != nil {
			return nil, err
		}
		if _, err := r.bytes(4); err != nil { // opaque
			return nil, err
		}
		if meta.SubType, err = r.lengthPrefixedString(); err != nil {
			return nil, err
		}
		if meta.GUID1, err = r.i32(); err != nil {
			return nil, err
		}
		if meta.GUID2, err = r.i32(); err != nil {
			return nil, err
		}
		if meta.GUID3, err = r.i32(); err != nil {
			return nil, err
		}
		if meta.GUID4, err = r.i32(); err != nil {
			return nil, err
		}
		if _, err := r.u8(); err != nil { // padding byte
			return nil, err
		}
		av.StructMeta = meta

		for i := int32(0); i < n; i++ {
			el, err := readArrayStructElement(c, meta.SubType, depth)
			if err != nil {
				return nil, err
			}
			av.Elements = append(av.Elements, StructArrayElement{SubType: meta.SubType, Value: el})
		}

	default:
		return nil, &UnknownArrayElementTypeError{Type: elemType}
	}

	return av, nil
}

// readArrayStructElement dispatches a single Struct-typed array element by
// its declared sub-type. The fallback (recursive property list) arm is
// given the element's own sub-type as its parentType, mirroring
// readStructPropertySubschema's rule that a nested property list's context
// is the struct immediately enclosing it, not whatever enclosed that.
func readArrayStructElement(c *decodeCtx, subType string, depth int) (ArrayStructElement, error) {
	r := c.r

	switch subType {
	case "InventoryItem":
		e := ArrayInventoryItemElement{}
		idx, err := r.i32()
		if err != nil {
			return nil, err
		}
		e.Index = idx
		var err2 error
		if e.ItemName, err2 = r.lengthPrefixedString(); err2 != nil {
			return nil, err2
		}
		if e.LevelName, err2 = r.lengthPrefixedString(); err2 != nil {
			return nil, err2
		}
		if e.PathName, err2 = r.lengthPrefixedString(); err2 != nil {
			return nil, err2
		}
		return e, nil

	case "Guid":
		s, err := r.utf16Units(16)
		if err != nil {
			return nil, err
		}
		return ArrayGUIDElement(s), nil

	case "FINNetworkTrace":
		t, err := readFINNetworkTrace(c, depth)
		if err != nil {
			return nil, err
		}
		return ArrayFINNetworkTraceElement(t), nil

	case "Vector":
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
		return ArrayVectorF64Element(v), nil

	case "LinearColor":
		lc := LinearColorF32{}
		var err error
		if lc.R, err = r.f32(); err != nil {
			return nil, err
		}
		if lc.G, err = r.f32(); err != nil {
			return nil, err
		}
		if lc.B, err = r.f32(); err != nil {
			return nil, err
		}
		if lc.A, err = r.f32(); err != nil {
			return nil, err
		}
		return ArrayLinearColorElement(lc), nil

	case "FINGPUT1BufferPixel":
		px, err := readFINGPUT1BufferPixel(c)
		if err != nil {
			return nil, err
		}
		return ArrayFINGPUT1BufferPixelElement(px), nil

	default:
		props, err := readPropertyList(c, subType, depth+1)
		if err != nil {
			return nil, err
		}
		return ArrayPropertyListElement(props), nil
	}
}

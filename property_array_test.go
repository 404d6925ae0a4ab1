// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"bytes"
	"testing"
)

func TestReadArrayPropertyInts(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf8String("IntProperty"))
	buf.WriteByte(0) // padding
	buf.Write(i32le(3))
	buf.Write(i32le(1))
	buf.Write(i32le(2))
	buf.Write(i32le(3))

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	av, err := readArrayProperty(c, "mValues", "", 0)
	if err != nil {
		t.Fatalf("readArrayProperty() err = %v", err)
	}
	if len(av.Elements) != 3 {
		t.Fatalf("Elements = %v, want 3", av.Elements)
	}
	if av.Elements[1].(IntElement) != 2 {
		t.Fatalf("Elements[1] = %v, want 2", av.Elements[1])
	}
}

func TestReadArrayPropertyFogOfWarSpecialCase(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf8String("ByteProperty"))
	buf.WriteByte(0)
	buf.Write(i32le(8)) // 8 raw bytes -> 2 groups of 4
	buf.Write([]byte{0, 0, 0xAA, 0})
	buf.Write([]byte{0, 0, 0xBB, 0})

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	av, err := readArrayProperty(c, fogOfWarRawDataProperty, "", 0)
	if err != nil {
		t.Fatalf("readArrayProperty() err = %v", err)
	}
	if len(av.Elements) != 2 {
		t.Fatalf("Elements = %v, want 2 groups", av.Elements)
	}
	if av.Elements[0].(ByteElement) != 0xAA || av.Elements[1].(ByteElement) != 0xBB {
		t.Fatalf("Elements = %v, want third byte of each 4-byte group", av.Elements)
	}
}

func TestReadArrayPropertyUnknownElementType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf8String("FrobnicateProperty"))
	buf.WriteByte(0)
	buf.Write(i32le(0))

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	_, err := readArrayProperty(c, "mWeird", "", 0)
	ae, ok := err.(*UnknownArrayElementTypeError)
	if !ok || ae.Type != "Frobnicate" {
		t.Fatalf("readArrayProperty() err = %v, want UnknownArrayElementTypeError{Type: Frobnicate}", err)
	}
}

func TestReadArrayPropertyStructGuidElements(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf8String("StructProperty"))
	buf.WriteByte(0)
	buf.Write(i32le(2)) // n elements

	buf.Write(utf8String("mItems"))         // meta.PropertyName
	buf.Write(utf8String("StructProperty")) // literal tag, discarded
	buf.Write(i32le(0))                     // DeclaredSize
	buf.Write(make([]byte, 4))              // opaque
	buf.Write(utf8String("Guid"))           // SubType
	buf.Write(i32le(0))
	buf.Write(i32le(0))
	buf.Write(i32le(0))
	buf.Write(i32le(0))
	buf.WriteByte(0) // padding

	buf.Write(fixedUTF16(16, "guid-aaaaaaaaaaaa"))
	buf.Write(fixedUTF16(16, "guid-bbbbbbbbbbbb"))

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	av, err := readArrayProperty(c, "mItems", "", 0)
	if err != nil {
		t.Fatalf("readArrayProperty() err = %v", err)
	}
	if av.StructMeta == nil || av.StructMeta.SubType != "Guid" {
		t.Fatalf("StructMeta = %+v", av.StructMeta)
	}
	if len(av.Elements) != 2 {
		t.Fatalf("Elements = %v, want 2", av.Elements)
	}
	se, ok := av.Elements[0].(StructArrayElement)
	if !ok || se.SubType != "Guid" {
		t.Fatalf("Elements[0] = %+v", av.Elements[0])
	}
	if _, ok := se.Value.(ArrayGUIDElement); !ok {
		t.Fatalf("Elements[0].Value = %#v, want ArrayGUIDElement", se.Value)
	}
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"bytes"
	"testing"
)

func buildStructHeader(structType string) []byte {
	var buf bytes.Buffer
	buf.Write(utf8String(structType))
	buf.Write(make([]byte, structPreambleSkip))
	return buf.Bytes()
}

func TestReadStructPropertySubschemaColor(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildStructHeader("Color"))
	buf.Write([]byte{10, 20, 30, 40})

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	structType, v, err := readStructPropertySubschema(c, "mColor", "", 0)
	if err != nil {
		t.Fatalf("readStructPropertySubschema() err = %v", err)
	}
	if structType != "Color" {
		t.Fatalf("structType = %q", structType)
	}
	cv, ok := v.(ColorU8)
	if !ok || cv.R != 10 || cv.A != 40 {
		t.Fatalf("Value = %#v", v)
	}
}

func TestReadStructPropertySubschemaVectorF32ByDefault(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildStructHeader("Vector"))
	buf.Write(i32le(0)) // X bits
	buf.Write(i32le(0)) // Y bits
	buf.Write(i32le(0)) // Z bits

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	_, v, err := readStructPropertySubschema(c, "mPosition", "SomeOtherStruct", 0)
	if err != nil {
		t.Fatalf("readStructPropertySubschema() err = %v", err)
	}
	if _, ok := v.(Vector3F32); !ok {
		t.Fatalf("Value = %#v, want Vector3F32 when parent type isn't SpawnData", v)
	}
}

func TestReadStructPropertySubschemaVectorF64UnderSpawnData(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildStructHeader("Vector"))
	buf.Write(make([]byte, 8)) // X f64 bits
	buf.Write(make([]byte, 8)) // Y f64 bits
	buf.Write(make([]byte, 8)) // Z f64 bits

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	_, v, err := readStructPropertySubschema(c, "mPosition", structSpawnData, 0)
	if err != nil {
		t.Fatalf("readStructPropertySubschema() err = %v", err)
	}
	if _, ok := v.(Vector3F64); !ok {
		t.Fatalf("Value = %#v, want Vector3F64 under SpawnData parent type", v)
	}
}

func TestReadStructPropertySubschemaInventoryItem(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildStructHeader("InventoryItem"))
	buf.Write(i32le(3)) // Index
	buf.Write(utf8String("Desc_IronPlate_C"))
	buf.Write(buildObjectRef("Persistent_Level", "Path"))
	buf.Write(buildProperty("mNumItems", "IntProperty", 4, 0, append(noGUID(), i32le(5)...)))

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	_, v, err := readStructPropertySubschema(c, "mItem", "", 0)
	if err != nil {
		t.Fatalf("readStructPropertySubschema() err = %v", err)
	}
	iv, ok := v.(InventoryItemValue)
	if !ok || iv.ItemName != "Desc_IronPlate_C" || iv.Property == nil {
		t.Fatalf("Value = %+v", v)
	}
}

func TestReadStructPropertySubschemaInventoryItemMissingProperty(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildStructHeader("InventoryItem"))
	buf.Write(i32le(3))
	buf.Write(utf8String("Desc_IronPlate_C"))
	buf.Write(buildObjectRef("Persistent_Level", "Path"))
	buf.Write(utf8String(propertyNone)) // immediate sentinel: no property

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	_, _, err := readStructPropertySubschema(c, "mItem", "", 0)
	me, ok := err.(*MissingInventoryItemPropertyError)
	if !ok || me.ItemName != "Desc_IronPlate_C" {
		t.Fatalf("err = %v, want MissingInventoryItemPropertyError{ItemName: Desc_IronPlate_C}", err)
	}
}

func TestReadStructPropertySubschemaFallbackPropertyList(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildStructHeader("SomeCustomStruct"))
	buf.Write(buildProperty("mField", "IntProperty", 4, 0, append(noGUID(), i32le(1)...)))
	buf.Write(utf8String(propertyNone))

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	structType, v, err := readStructPropertySubschema(c, "mCustom", "", 0)
	if err != nil {
		t.Fatalf("readStructPropertySubschema() err = %v", err)
	}
	if structType != "SomeCustomStruct" {
		t.Fatalf("structType = %q", structType)
	}
	pl, ok := v.(PropertyListValue)
	if !ok || len(pl) != 1 || pl[0].Name != "mField" {
		t.Fatalf("Value = %#v", v)
	}
}

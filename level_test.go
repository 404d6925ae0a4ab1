// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"bytes"
	"testing"
)

func buildComponentHeaderBytes(typePath string) []byte {
	var buf bytes.Buffer
	buf.Write(i32le(0)) // Component discriminator
	buf.Write(utf8String(typePath))
	buf.Write(buildObjectRef("Persistent_Level", "Path"))
	buf.Write(utf8String("Parent"))
	return buf.Bytes()
}

// noneSentinel is the wire encoding of an empty property list: just the
// "None" sentinel name, nothing else.
func noneSentinel() []byte { return utf8String(propertyNone) }

// buildObjectBody assembles one object body's bytes: save-version, 4 opaque
// bytes, declared size, then an empty property list followed by
// trailingGap raw bytes representing the unaccounted tail.
func buildObjectBody(declaredSize int32, trailingGap []byte) []byte {
	var buf bytes.Buffer
	buf.Write(i32le(1))        // save version
	buf.Write(make([]byte, 4)) // opaque
	buf.Write(i32le(declaredSize))
	buf.Write(noneSentinel())
	buf.Write(trailingGap)
	return buf.Bytes()
}

// buildSingleObjectLevel assembles one level's bytes: one Component header,
// no header collectables (exact-alignment case), one body with the given
// declaredSize (set by each caller relative to the actual empty property
// list payload), followed by trailingGap raw bytes, then no body
// collectables.
func buildSingleObjectLevel(typePath string, declaredSize int32, trailingGap []byte) []byte {
	var headerRegion bytes.Buffer
	headerRegion.Write(i32le(1)) // header count
	headerRegion.Write(buildComponentHeaderBytes(typePath))

	var buf bytes.Buffer
	buf.Write(i64le(int64(headerRegion.Len() + 4)))
	buf.Write(headerRegion.Bytes())
	buf.Write(make([]byte, 4)) // header-collectables padding (exact alignment)

	buf.Write(make([]byte, 8)) // object-bytes region size, opaque
	buf.Write(i32le(1))        // body count
	buf.Write(buildObjectBody(declaredSize, trailingGap))

	buf.Write(i32le(0)) // body collectables count
	return buf.Bytes()
}

func TestDecodeObjectBodyComponentExactFit(t *testing.T) {
	header := ObjectHeader{Component: &ComponentHeader{TypePath: "/Game/Foo"}}
	size := int32(len(noneSentinel()))
	c := newTestCtx(buildObjectBody(size, nil), "Persistent_Level")
	obj, err := decodeObjectBody(c, header)
	if err != nil {
		t.Fatalf("decodeObjectBody() err = %v", err)
	}
	if obj.SaveVersion != 1 || obj.ShouldBeNulled || obj.ParentReference != nil {
		t.Fatalf("decodeObjectBody() = %+v", obj)
	}
}

func TestDecodeObjectBodyActorReadsParentAndComponents(t *testing.T) {
	header := ObjectHeader{Actor: &ActorHeader{TypePath: "/Game/Bar"}}

	var body bytes.Buffer
	body.Write(buildObjectRef("Persistent_Level", "Parent"))
	body.Write(i32le(1)) // 1 component
	body.Write(buildObjectRef("Persistent_Level", "Comp0"))
	body.Write(noneSentinel())

	var buf bytes.Buffer
	buf.Write(i32le(1))
	buf.Write(make([]byte, 4))
	buf.Write(i32le(int32(body.Len())))
	buf.Write(body.Bytes())

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	obj, err := decodeObjectBody(c, header)
	if err != nil {
		t.Fatalf("decodeObjectBody() err = %v", err)
	}
	if obj.ParentReference == nil || obj.ParentReference.PathName != "Parent" {
		t.Fatalf("ParentReference = %+v", obj.ParentReference)
	}
	if len(obj.Components) != 1 || obj.Components[0].PathName != "Comp0" {
		t.Fatalf("Components = %+v", obj.Components)
	}
}

func TestDecodeObjectBodyShouldBeNulled(t *testing.T) {
	header := ObjectHeader{Component: &ComponentHeader{TypePath: "/Game/Null"}}

	var buf bytes.Buffer
	buf.Write(i32le(0))        // save version
	buf.Write(make([]byte, 4)) // opaque
	buf.Write(i32le(0))        // declared size: stream already sits at start+0

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	obj, err := decodeObjectBody(c, header)
	if err != nil {
		t.Fatalf("decodeObjectBody() err = %v", err)
	}
	if !obj.ShouldBeNulled || obj.Properties != nil {
		t.Fatalf("decodeObjectBody() = %+v, want ShouldBeNulled with no properties read", obj)
	}
}

func TestDecodeLevelExactFit(t *testing.T) {
	consumed := int32(len(noneSentinel()))
	c := newTestCtx(buildSingleObjectLevel("/Game/Foo", consumed, nil), "Persistent_Level")
	lvl, err := decodeLevel(c, "TestLevel")
	if err != nil {
		t.Fatalf("decodeLevel() err = %v", err)
	}
	if len(lvl.Objects) != 1 || lvl.Objects[0].Header.TypePath() != "/Game/Foo" {
		t.Fatalf("decodeLevel() = %+v", lvl)
	}
}

func TestDecodeLevelSmallGapSkipsFour(t *testing.T) {
	consumed := int32(len(noneSentinel()))
	c := newTestCtx(buildSingleObjectLevel("/Game/Foo", consumed+3, []byte{1, 2, 3, 4}), "Persistent_Level")
	lvl, err := decodeLevel(c, "TestLevel")
	if err != nil {
		t.Fatalf("decodeLevel() err = %v", err)
	}
	if len(lvl.Objects) != 1 {
		t.Fatalf("decodeLevel() = %+v", lvl)
	}
}

func TestDecodeLevelFactoryGamePrefixSkipsEight(t *testing.T) {
	consumed := int32(len(noneSentinel()))
	c := newTestCtx(buildSingleObjectLevel(levelFactoryGamePrefix+"Foo", consumed+20, make([]byte, 8)), "Persistent_Level")
	lvl, err := decodeLevel(c, "TestLevel")
	if err != nil {
		t.Fatalf("decodeLevel() err = %v", err)
	}
	if len(lvl.Objects) != 1 {
		t.Fatalf("decodeLevel() = %+v", lvl)
	}
}

func TestDecodeLevelEvenGapDecodedAsOpaqueString(t *testing.T) {
	consumed := int32(len(noneSentinel()))
	c := newTestCtx(buildSingleObjectLevel("/Game/Foo", consumed+6, fixedUTF16(3, "xy")), "Persistent_Level")
	lvl, err := decodeLevel(c, "TestLevel")
	if err != nil {
		t.Fatalf("decodeLevel() err = %v", err)
	}
	if len(lvl.Objects) != 1 {
		t.Fatalf("decodeLevel() = %+v", lvl)
	}
}

func TestDecodeLevelOddGapSkippedRaw(t *testing.T) {
	consumed := int32(len(noneSentinel()))
	c := newTestCtx(buildSingleObjectLevel("/Game/Foo", consumed+5, []byte{1, 2, 3, 4, 5}), "Persistent_Level")
	lvl, err := decodeLevel(c, "TestLevel")
	if err != nil {
		t.Fatalf("decodeLevel() err = %v", err)
	}
	if len(lvl.Objects) != 1 {
		t.Fatalf("decodeLevel() = %+v", lvl)
	}
}

func TestDecodeLevelOverrunIsObjectLengthError(t *testing.T) {
	consumed := int32(len(noneSentinel()))
	c := newTestCtx(buildSingleObjectLevel("/Game/Foo", consumed-1, nil), "Persistent_Level")
	_, err := decodeLevel(c, "TestLevel")
	oe, ok := err.(*ObjectLengthError)
	if !ok || oe.TypePath != "/Game/Foo" {
		t.Fatalf("decodeLevel() err = %v, want ObjectLengthError{TypePath: /Game/Foo}", err)
	}
}

func TestDecodeLevelMissingObjectHeader(t *testing.T) {
	var headerRegion bytes.Buffer
	headerRegion.Write(i32le(0)) // no headers

	var buf bytes.Buffer
	buf.Write(i64le(int64(headerRegion.Len() + 4)))
	buf.Write(headerRegion.Bytes())
	buf.Write(make([]byte, 4)) // header-collectables padding
	buf.Write(make([]byte, 8)) // object-bytes region size, opaque
	buf.Write(i32le(1))        // body count claims 1, but no headers exist

	c := newTestCtx(buf.Bytes(), "Persistent_Level")
	_, err := decodeLevel(c, "TestLevel")
	me, ok := err.(*MissingObjectHeaderError)
	if !ok || me.Level != "TestLevel" || me.Index != 0 {
		t.Fatalf("decodeLevel() err = %v, want MissingObjectHeaderError{Level: TestLevel, Index: 0}", err)
	}
}

func buildEmptyLevel() []byte {
	var headerRegion bytes.Buffer
	headerRegion.Write(i32le(0)) // no headers

	var buf bytes.Buffer
	buf.Write(i64le(int64(headerRegion.Len() + 4)))
	buf.Write(headerRegion.Bytes())
	buf.Write(make([]byte, 4)) // header-collectables padding
	buf.Write(make([]byte, 8)) // object-bytes region size, opaque
	buf.Write(i32le(0))        // body count
	buf.Write(i32le(0))        // body collectables count
	return buf.Bytes()
}

func TestDecodeLevelsLastLevelIsUnnamedPersistent(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utf8String("GridLevel0")) // name of the first (non-last) level
	buf.Write(buildEmptyLevel())
	buf.Write(buildEmptyLevel()) // second level: last, no name string precedes it

	c := newTestCtx(buf.Bytes(), "AwesomeSink")
	levels, err := decodeLevels(c, 2)
	if err != nil {
		t.Fatalf("decodeLevels() err = %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("decodeLevels() = %v, want 2 levels", levels)
	}
	if levels[0].Name != "GridLevel0" {
		t.Fatalf("levels[0].Name = %q", levels[0].Name)
	}
	if want := "Level AwesomeSink"; levels[1].Name != want {
		t.Fatalf("levels[1].Name = %q, want %q (synthesized persistent level name)", levels[1].Name, want)
	}
}

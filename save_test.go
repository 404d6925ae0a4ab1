// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"bytes"
	"testing"
)

func buildMinimalPartitions() []byte {
	var buf bytes.Buffer
	buf.Write(i32le(1)) // N=1: preamble only, no partition records
	buf.Write(emptyString())
	buf.Write(make([]byte, 8))
	buf.Write(i32le(0))
	buf.Write(emptyString())
	buf.Write(i32le(0))
	return buf.Bytes()
}

func buildMinimalLevel() []byte {
	var headerRegion bytes.Buffer
	headerRegion.Write(i32le(0)) // no headers

	var buf bytes.Buffer
	buf.Write(i64le(int64(headerRegion.Len() + 4)))
	buf.Write(headerRegion.Bytes())
	buf.Write(make([]byte, 4)) // header-collectables padding (exact alignment)
	buf.Write(make([]byte, 8)) // object-bytes region size, opaque
	buf.Write(i32le(0))        // body count
	buf.Write(i32le(0))        // body collectables
	return buf.Bytes()
}

func buildMinimalSaveBody() []byte {
	var buf bytes.Buffer
	buf.Write(buildMinimalPartitions())
	buf.Write(i32le(1)) // numLevels: just the trailing persistent level
	buf.Write(buildMinimalLevel())
	return buf.Bytes()
}

func buildMinimalSaveBytes() []byte {
	var buf bytes.Buffer
	buf.Write(buildHeader(minSaveFileVersion))
	buf.Write(buildChunk(buildMinimalSaveBody()))
	return buf.Bytes()
}

func TestOpenBytesDecodeMinimalSave(t *testing.T) {
	s, err := OpenBytes(buildMinimalSaveBytes(), nil)
	if err != nil {
		t.Fatalf("OpenBytes() err = %v", err)
	}
	if err := s.Decode(); err != nil {
		t.Fatalf("Decode() err = %v", err)
	}
	if want := "Level Persistent"; len(s.Levels) != 1 || s.Levels[0].Name != want {
		t.Fatalf("Decode() Levels = %+v, want single level named %q", s.Levels, want)
	}
	if s.Header.MapName != "Persistent" {
		t.Fatalf("Decode() Header = %+v", s.Header)
	}
}

func TestDecodeTooSmall(t *testing.T) {
	s, err := OpenBytes([]byte{1, 2, 3}, nil)
	if err != nil {
		t.Fatalf("OpenBytes() err = %v", err)
	}
	if err := s.Decode(); err != ErrTooSmall {
		t.Fatalf("Decode() err = %v, want ErrTooSmall", err)
	}
}

func buildSaveBytesWithTrailingBody(trailer []byte) []byte {
	body := append(buildMinimalSaveBody(), trailer...)
	var buf bytes.Buffer
	buf.Write(buildHeader(minSaveFileVersion))
	buf.Write(buildChunk(body))
	return buf.Bytes()
}

func TestDecodeStrictTrailerBytesRejectsTrailingData(t *testing.T) {
	s, err := OpenBytes(buildSaveBytesWithTrailingBody([]byte{0xDE, 0xAD}), &Options{StrictTrailerBytes: true})
	if err != nil {
		t.Fatalf("OpenBytes() err = %v", err)
	}
	if err := s.Decode(); err == nil {
		t.Fatalf("Decode() err = nil, want error for trailing bytes under StrictTrailerBytes")
	}
}

func TestDecodeNonStrictTrailerBytesWarnsOnly(t *testing.T) {
	s, err := OpenBytes(buildSaveBytesWithTrailingBody([]byte{0xDE, 0xAD}), nil)
	if err != nil {
		t.Fatalf("OpenBytes() err = %v", err)
	}
	if err := s.Decode(); err != nil {
		t.Fatalf("Decode() err = %v, want nil (non-strict trailer bytes only warn)", err)
	}
}

func TestFuzzAcceptsMinimalSave(t *testing.T) {
	if got := Fuzz(buildMinimalSaveBytes()); got != 1 {
		t.Fatalf("Fuzz() = %d, want 1", got)
	}
}

func TestFuzzRejectsGarbage(t *testing.T) {
	if got := Fuzz([]byte{0, 1, 2}); got != 0 {
		t.Fatalf("Fuzz() = %d, want 0", got)
	}
}

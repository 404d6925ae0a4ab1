// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"bytes"
	"testing"
)

func buildPartitions() []byte {
	var buf bytes.Buffer
	buf.Write(i32le(2)) // N: preamble + 1 partition record
	buf.Write(utf8String("opaque1"))
	buf.Write(make([]byte, 8)) // Opaque2 int64
	buf.Write(i32le(7))        // Opaque3
	buf.Write(utf8String("opaque4"))
	buf.Write(i32le(9)) // Opaque5

	buf.Write(utf8String("Persistent_Level")) // partition key
	buf.Write(i32le(1))                       // Opaque1
	buf.Write(i32le(2))                       // Opaque2
	buf.Write(i32le(1))                       // level count
	buf.Write(utf8String("Persistent_Level"))
	buf.Write(i32le(42))
	return buf.Bytes()
}

func TestDecodePartitionsStoresDecodedRecord(t *testing.T) {
	r := newReader(buildPartitions())
	out, err := decodePartitions(r)
	if err != nil {
		t.Fatalf("decodePartitions() err = %v", err)
	}
	if out.Preamble.Opaque1 != "opaque1" || out.Preamble.Opaque3 != 7 {
		t.Fatalf("decodePartitions() preamble = %+v", out.Preamble)
	}
	p, ok := out.Partitions["Persistent_Level"]
	if !ok {
		t.Fatalf("decodePartitions() missing partition key")
	}
	if p.Opaque1 != 1 || p.Opaque2 != 2 {
		t.Fatalf("decodePartitions() partition = %+v, want non-zero decoded record", p)
	}
	if p.Levels["Persistent_Level"] != 42 {
		t.Fatalf("decodePartitions() levels = %+v", p.Levels)
	}
}

func TestDecodePartitionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(i32le(1)) // N=1: preamble only, zero partition records
	buf.Write(emptyString())
	buf.Write(make([]byte, 8))
	buf.Write(i32le(0))
	buf.Write(emptyString())
	buf.Write(i32le(0))

	r := newReader(buf.Bytes())
	out, err := decodePartitions(r)
	if err != nil {
		t.Fatalf("decodePartitions() err = %v", err)
	}
	if len(out.Partitions) != 0 {
		t.Fatalf("decodePartitions() partitions = %v, want empty", out.Partitions)
	}
}

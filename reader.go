// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// reader is a positional little-endian cursor over an in-memory byte slice.
// Unlike the teacher's offset-addressed pe.File reads (every call takes an
// explicit offset), the save-file grammar is a strict sequential stream, so
// reader tracks its own position the way a bufio.Reader or bytes.Reader
// would, and every decoder in this package takes one by pointer.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) tell() int { return r.pos }

// seek advances the cursor by delta bytes, which may be negative.
func (r *reader) seek(delta int) error {
	next := r.pos + delta
	if next < 0 || next > len(r.data) {
		return ErrOutsideBoundary
	}
	r.pos = next
	return nil
}

func (r *reader) seekTo(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return ErrOutsideBoundary
	}
	r.pos = pos
	return nil
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, ErrOutsideBoundary
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) i8() (int8, error) {
	v, err := r.u8()
	return int8(v), err
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) i64() (int64, error) {
	v, err := r.u64()
	return int64(v), err
}

func (r *reader) f32() (float32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) f64() (float64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// utf16Units decodes exactly n little-endian UTF-16 code units (2n bytes),
// dropping a single trailing NUL code unit if present. Used for fixed-width
// opaque tokens: GUIDs (16 units), the save hash (10 units), and the
// GPU-terminal trailer (45 units).
func (r *reader) utf16Units(n int) (string, error) {
	b, err := r.bytes(n * 2)
	if err != nil {
		return "", err
	}
	if n > 0 {
		last := b[len(b)-2:]
		if last[0] == 0 && last[1] == 0 {
			b = b[:len(b)-2]
		}
	}
	return decodeUTF16(b)
}

func decodeUTF16(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return string(s), nil
}

// lengthPrefixedString reads a signed 32-bit length n, then:
//   - n == 0: empty string.
//   - n > 0: n bytes of UTF-8, trailing NUL dropped.
//   - n < 0: |n| UTF-16 code units, trailing NUL dropped.
func (r *reader) lengthPrefixedString() (string, error) {
	n, err := r.i32()
	if err != nil {
		return "", err
	}
	switch {
	case n == 0:
		return "", nil
	case n > 0:
		b, err := r.bytes(int(n))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", ErrInvalidEncoding
		}
		if len(b) > 0 && b[len(b)-1] == 0 {
			b = b[:len(b)-1]
		}
		return string(b), nil
	default:
		return r.utf16Units(int(-n))
	}
}

// skipString reads the length prefix and advances past the payload without
// decoding it.
func (r *reader) skipString() error {
	n, err := r.i32()
	if err != nil {
		return err
	}
	switch {
	case n == 0:
		return nil
	case n > 0:
		return r.seek(int(n))
	default:
		return r.seek(int(-n) * 2)
	}
}

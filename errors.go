// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"errors"
	"fmt"
)

// Sentinel errors for kinds that carry no payload.
var (
	// ErrTooSmall is returned by Decode when the input is shorter than one
	// chunk preamble (41 bytes). Longer inputs that are still too short for a
	// header fail on their first out-of-bounds read with ErrOutsideBoundary.
	ErrTooSmall = errors.New("not a save file, smaller than the smallest valid header")

	// ErrInvalidSignature describes a chunk package signature that does not
	// match the expected constant. decodeChunks does not return it: a
	// mismatching signature is logged as a warning and decoding continues.
	ErrInvalidSignature = errors.New("chunk package signature mismatch")

	// ErrOutsideBoundary is returned when a read would run past the end of
	// the buffer backing the reader.
	ErrOutsideBoundary = errors.New("read outside buffer boundary")

	// ErrInvalidEncoding is returned when a length-prefixed string's bytes
	// cannot be decoded as UTF-8 or UTF-16.
	ErrInvalidEncoding = errors.New("invalid string encoding")
)

// UnsupportedVersionError is returned when the header's save_file_version is
// below the minimum this decoder supports.
type UnsupportedVersionError struct {
	Found int32
	Min   int32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported save file version %d, minimum supported is %d", e.Found, e.Min)
}

// UnknownObjectTypeError is returned when an object-header discriminator is
// neither 0 (Component) nor 1 (Actor).
type UnknownObjectTypeError struct {
	Type int32
}

func (e *UnknownObjectTypeError) Error() string {
	return fmt.Sprintf("unknown object header type %d", e.Type)
}

// MissingObjectHeaderError is returned when a level's object-body list runs
// past its object-header list.
type MissingObjectHeaderError struct {
	Level string
	Index int
}

func (e *MissingObjectHeaderError) Error() string {
	return fmt.Sprintf("level %q: missing object header for body at index %d", e.Level, e.Index)
}

// ObjectLengthError is returned when an object's body overran its declared
// size. Decode also returns it, with the synthesized last level's name as
// TypePath, when Options.StrictTrailerBytes is set and bytes remain in the
// decompressed body after the last level.
type ObjectLengthError struct {
	TypePath string
}

func (e *ObjectLengthError) Error() string {
	return fmt.Sprintf("object %q: body overran its declared length", e.TypePath)
}

// UnknownPropertyTypeError is returned when a property's type tag is not a
// recognized primitive, container, or Struct kind.
type UnknownPropertyTypeError struct {
	Tag string
}

func (e *UnknownPropertyTypeError) Error() string {
	return fmt.Sprintf("unknown property type %q", e.Tag)
}

// UnknownArrayElementTypeError is returned for an unrecognized ArrayProperty
// element type.
type UnknownArrayElementTypeError struct {
	Type string
}

func (e *UnknownArrayElementTypeError) Error() string {
	return fmt.Sprintf("unknown array element type %q", e.Type)
}

// UnknownMapKeyTypeError is returned for an unrecognized MapProperty key type.
type UnknownMapKeyTypeError struct {
	Type string
}

func (e *UnknownMapKeyTypeError) Error() string {
	return fmt.Sprintf("unknown map key type %q", e.Type)
}

// UnknownMapValueTypeError is returned for an unrecognized MapProperty value type.
type UnknownMapValueTypeError struct {
	Type string
}

func (e *UnknownMapValueTypeError) Error() string {
	return fmt.Sprintf("unknown map value type %q", e.Type)
}

// UnknownSetTypeError is returned for an unrecognized SetProperty element type.
type UnknownSetTypeError struct {
	Type string
}

func (e *UnknownSetTypeError) Error() string {
	return fmt.Sprintf("unknown set element type %q", e.Type)
}

// UnknownTextArgumentValueTypeError is returned for an unrecognized Text
// Argument value-type discriminator.
type UnknownTextArgumentValueTypeError struct {
	Value uint8
}

func (e *UnknownTextArgumentValueTypeError) Error() string {
	return fmt.Sprintf("unknown text argument value type %d", e.Value)
}

// UnknownTextHistoryTypeError is returned for an unrecognized TextProperty
// history-type discriminator.
type UnknownTextHistoryTypeError struct {
	Value uint8
}

func (e *UnknownTextHistoryTypeError) Error() string {
	return fmt.Sprintf("unknown text history type %d", e.Value)
}

// UnknownLuaProcessorStateStorageStructTypeError is returned for a
// FINLuaProcessorStateStorage struct entry whose class name is not recognized.
type UnknownLuaProcessorStateStorageStructTypeError struct {
	ClassName string
}

func (e *UnknownLuaProcessorStateStorageStructTypeError) Error() string {
	return fmt.Sprintf("unknown lua processor state storage struct type %q", e.ClassName)
}

// MissingInventoryItemPropertyError is returned when an InventoryItem struct's
// property list yields the "None" sentinel before any property.
type MissingInventoryItemPropertyError struct {
	ItemName string
}

func (e *MissingInventoryItemPropertyError) Error() string {
	return fmt.Sprintf("inventory item %q: missing required property", e.ItemName)
}

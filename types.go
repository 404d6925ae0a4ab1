// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// Small fixed-shape numeric aggregates shared by object headers and struct
// sub-schemas. Kept as plain non-generic structs, matching the teacher's
// own pre-generics (go 1.15) code style rather than reaching for Go
// generics the format's own variety (f32 vs f64 vectors of the same
// arity, used in different contexts) would otherwise invite.

// Vector2I32 is a pair of 32-bit integers (IntPoint).
type Vector2I32 struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Vector2F64 is a pair of 64-bit floats (Vector2D).
type Vector2F64 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector3F32 is a triple of 32-bit floats (Vector/Rotator, object headers).
type Vector3F32 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Vector3F64 is a triple of 64-bit floats (Vector/Rotator under SpawnData,
// Vector struct-array elements, Box corners, and the
// Destroyed_Foliage_Transform map-property struct-key special case).
type Vector3F64 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector3I32 is a triple of 32-bit integers (mSaveData map-key special case).
type Vector3I32 struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

// Vector4I32 is a quadruple of 32-bit integers (IntVector4).
type Vector4I32 struct {
	A int32 `json:"a"`
	B int32 `json:"b"`
	C int32 `json:"c"`
	D int32 `json:"d"`
}

// Vector4F64 is a quadruple of 64-bit floats (Vector4).
type Vector4F64 struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
}

// QuatF32 is a 32-bit-float quaternion (Actor header rotation).
type QuatF32 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// QuatF64 is a 64-bit-float quaternion (Quat struct sub-type).
type QuatF64 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// ColorU8 is a byte-channel RGBA color (Color struct sub-type).
type ColorU8 struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// LinearColorF32 is a float-channel RGBA color (LinearColor struct sub-type).
type LinearColorF32 struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// ObjectReference is a (level_name, path_name) cross-object identifier. If
// the decoded level name equals the save's map name it is stored empty by
// convention ("current map"); callers never re-check this, the elision is
// performed once, at decode time.
type ObjectReference struct {
	LevelName string `json:"level_name"`
	PathName  string `json:"path_name"`
}

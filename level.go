// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import "strings"

// persistentLevelNamePrefix prefixes the save's map name to synthesize the
// final level entry's name, which (unlike every grid sub-level before it)
// carries no name string of its own on the wire.
const persistentLevelNamePrefix = "Level "

// levelFactoryGamePrefix selects the 8-byte trailing-gap skip in the object
// body size reconciliation below (§4.7).
const levelFactoryGamePrefix = "/Script/FactoryGame.FG"

// LevelObject is one decoded object body paired with the header C4 already
// read for it.
type LevelObject struct {
	Header          ObjectHeader      `json:"header"`
	SaveVersion     int32             `json:"save_version"`
	ParentReference *ObjectReference  `json:"parent_reference,omitempty"`
	Components      []ObjectReference `json:"components,omitempty"`
	ShouldBeNulled  bool              `json:"should_be_nulled,omitempty"`
	Properties      []Property        `json:"properties,omitempty"`
}

// Level is one named region of the world: its object headers (C4) and
// object bodies (C5), aligned 1:1 by index, plus the two collectable-object
// reference lists bracketing them.
type Level struct {
	Name               string            `json:"name"`
	Objects            []LevelObject     `json:"objects"`
	HeaderCollectables []ObjectReference `json:"header_collectables"`
	BodyCollectables   []ObjectReference `json:"body_collectables"`
}

// decodeLevels implements §4.7's level loop: numLevels entries, the last of
// which is the unnamed persistent level.
//
// The reference implementation this format was distilled from computes
// is_last_level by comparing the loop index against num_levels inside a
// 0..num_levels (exclusive) loop, which can never be true — spec.md
// documents this as a bug and directs the comparison be against
// num_levels-1, which is what this implementation does.
func decodeLevels(c *decodeCtx, numLevels int32) ([]Level, error) {
	levels := make([]Level, 0, numLevels)

	for i := int32(0); i < numLevels; i++ {
		isLast := i == numLevels-1

		name := persistentLevelNamePrefix + c.mapName
		if !isLast {
			var err error
			name, err = c.r.lengthPrefixedString()
			if err != nil {
				return nil, err
			}
		}

		lvl, err := decodeLevel(c, name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}

	return levels, nil
}

func decodeObjectReferenceList(c *decodeCtx) ([]ObjectReference, error) {
	n, err := c.r.i32()
	if err != nil {
		return nil, err
	}
	refs := make([]ObjectReference, 0, n)
	for i := int32(0); i < n; i++ {
		ref, err := c.readObjectReference()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// decodeLevel reads one level's object-header pass, then its object-body
// pass, reconciling each body's declared size against what C5 actually
// consumed per §4.7.
func decodeLevel(c *decodeCtx, name string) (Level, error) {
	r := c.r
	lvl := Level{Name: name}

	headerRegionSize, err := r.i64()
	if err != nil {
		return Level{}, err
	}
	headerRegionStart := r.tell()

	headerCount, err := r.i32()
	if err != nil {
		return Level{}, err
	}
	headers := make([]ObjectHeader, 0, headerCount)
	for i := int32(0); i < headerCount; i++ {
		h, err := decodeObjectHeader(c)
		if err != nil {
			return Level{}, err
		}
		headers = append(headers, h)
	}

	stopByte := headerRegionStart + int(headerRegionSize) - 4
	switch {
	case r.tell() < stopByte:
		if lvl.HeaderCollectables, err = decodeObjectReferenceList(c); err != nil {
			return Level{}, err
		}
	case r.tell() == stopByte:
		if err := r.seek(4); err != nil {
			return Level{}, err
		}
	}

	if err := r.seek(8); err != nil { // object-bytes region size, opaque
		return Level{}, err
	}

	bodyCount, err := r.i32()
	if err != nil {
		return Level{}, err
	}

	lvl.Objects = make([]LevelObject, 0, bodyCount)
	for i := int32(0); i < bodyCount; i++ {
		if int(i) >= len(headers) {
			return Level{}, &MissingObjectHeaderError{Level: name, Index: int(i)}
		}
		obj, err := decodeObjectBody(c, headers[i])
		if err != nil {
			return Level{}, err
		}
		lvl.Objects = append(lvl.Objects, obj)
	}

	if lvl.BodyCollectables, err = decodeObjectReferenceList(c); err != nil {
		return Level{}, err
	}

	return lvl, nil
}

// decodeObjectBody implements §4.7's object-body protocol: a save-version, 4
// opaque bytes, the declared body size, and (for an Actor header) its parent
// reference and component list, followed by a should_be_nulled short-circuit
// or a sentinel-terminated property list reconciled against the declared
// size.
func decodeObjectBody(c *decodeCtx, header ObjectHeader) (LevelObject, error) {
	r := c.r
	typePath := header.TypePath()
	obj := LevelObject{Header: header}

	saveVersion, err := r.i32()
	if err != nil {
		return LevelObject{}, err
	}
	obj.SaveVersion = saveVersion

	if err := r.seek(4); err != nil { // opaque
		return LevelObject{}, err
	}

	size, err := r.i32()
	if err != nil {
		return LevelObject{}, err
	}
	start := r.tell()

	if header.Actor != nil {
		parent, err := c.readObjectReference()
		if err != nil {
			return LevelObject{}, err
		}
		obj.ParentReference = &parent

		numComponents, err := r.i32()
		if err != nil {
			return LevelObject{}, err
		}
		obj.Components = make([]ObjectReference, 0, numComponents)
		for i := int32(0); i < numComponents; i++ {
			ref, err := c.readObjectReference()
			if err != nil {
				return LevelObject{}, err
			}
			obj.Components = append(obj.Components, ref)
		}
	}

	if r.tell() == start+int(size) {
		obj.ShouldBeNulled = true
		return obj, nil
	}

	props, err := readPropertyList(c, typePath, 0)
	if err != nil {
		return LevelObject{}, err
	}
	obj.Properties = props

	consumed := r.tell() - start
	gap := int(size) - consumed

	switch {
	case gap < 0:
		return LevelObject{}, &ObjectLengthError{TypePath: typePath}
	case gap == 0:
		// exact fit, nothing to do
	case gap <= 4:
		if err := r.seek(4); err != nil {
			return LevelObject{}, err
		}
	case strings.HasPrefix(typePath, levelFactoryGamePrefix):
		if err := r.seek(8); err != nil {
			return LevelObject{}, err
		}
	case gap%2 == 0:
		opaque, err := r.utf16Units(gap / 2)
		if err != nil {
			return LevelObject{}, err
		}
		c.logger.Warnf("object %q: %d-byte unaccounted trailing gap decoded as opaque string %q", typePath, gap, opaque)
	default:
		if _, err := r.bytes(gap); err != nil {
			return LevelObject{}, err
		}
		c.logger.Warnf("object %q: %d-byte unaccounted trailing gap skipped raw", typePath, gap)
	}

	return obj, nil
}

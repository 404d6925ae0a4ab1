// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import "github.com/ficsit-tools/ficsave/log"

// decodeCtx carries the state threaded through every decode call below the
// envelope layer: the cursor, the save's map name (needed to elide
// redundant level-name strings in object references), and the logger.
//
// Per spec.md §9, decisions that depend on (property_name, parent_type) are
// passed explicitly as function arguments rather than folded into this
// struct, keeping the property/struct decoders reentrant.
type decodeCtx struct {
	r       *reader
	mapName string
	logger  *log.Helper
	opts    *Options
}

// readObjectReference reads a (level_name, path_name) pair and elides the
// level name when it equals the save's map name.
func (c *decodeCtx) readObjectReference() (ObjectReference, error) {
	levelName, err := c.r.lengthPrefixedString()
	if err != nil {
		return ObjectReference{}, err
	}
	pathName, err := c.r.lengthPrefixedString()
	if err != nil {
		return ObjectReference{}, err
	}
	if levelName == c.mapName {
		levelName = ""
	}
	return ObjectReference{LevelName: levelName, PathName: pathName}, nil
}

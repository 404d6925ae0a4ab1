// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/ficsit-tools/ficsave/log"
)

const (
	// chunkSignature is the historical package signature stamped at the
	// start of every chunk preamble.
	chunkSignature = 0x9E2A83C1

	// chunkMaxSize is the expected max-chunk-size field value.
	chunkMaxSize = 131072

	// chunkPreambleSize is the fixed size of a chunk's preamble, signature
	// through the opaque trailer that follows the current-chunk-size field.
	chunkPreambleSize = 41

	// minSaveFileVersion is the build-time minimum supported save_file_version.
	// Not runtime-configurable, per spec.
	minSaveFileVersion = 42
)

// Header is the save file's fixed-shape leading record.
type Header struct {
	SaveHeaderVersion     int32  `json:"save_header_version"`
	SaveFileVersion       int32  `json:"save_file_version"`
	BuildVersion          int32  `json:"build_version"`
	MapName               string `json:"map_name"`
	MapOptions            string `json:"map_options"`
	SessionName           string `json:"session_name"`
	PlayedSeconds         int32  `json:"played_seconds"`
	SaveTimestamp         int64  `json:"save_timestamp"`
	SessionVisibility     int8   `json:"session_visibility"`
	EditorObjectVersion   int32  `json:"editor_object_version"`
	ModMetadata           string `json:"mod_metadata"`
	ModFlags              int32  `json:"mod_flags"`
	SaveIdentifier        string `json:"save_identifier"`
	IsPartitionedWorld    int32  `json:"is_partitioned_world"`
	SavedDataHash         string `json:"saved_data_hash"`
	IsCreativeModeEnabled int32  `json:"is_creative_mode_enabled"`
}

func decodeHeader(r *reader) (Header, error) {
	var h Header
	var err error

	if h.SaveHeaderVersion, err = r.i32(); err != nil {
		return h, err
	}
	if h.SaveFileVersion, err = r.i32(); err != nil {
		return h, err
	}
	if h.SaveFileVersion < minSaveFileVersion {
		return h, &UnsupportedVersionError{Found: h.SaveFileVersion, Min: minSaveFileVersion}
	}
	if h.BuildVersion, err = r.i32(); err != nil {
		return h, err
	}
	if h.MapName, err = r.lengthPrefixedString(); err != nil {
		return h, err
	}
	if h.MapOptions, err = r.lengthPrefixedString(); err != nil {
		return h, err
	}
	if h.SessionName, err = r.lengthPrefixedString(); err != nil {
		return h, err
	}
	if h.PlayedSeconds, err = r.i32(); err != nil {
		return h, err
	}
	if h.SaveTimestamp, err = r.i64(); err != nil {
		return h, err
	}
	if h.SessionVisibility, err = r.i8(); err != nil {
		return h, err
	}
	if h.EditorObjectVersion, err = r.i32(); err != nil {
		return h, err
	}
	if h.ModMetadata, err = r.lengthPrefixedString(); err != nil {
		return h, err
	}
	if h.ModFlags, err = r.i32(); err != nil {
		return h, err
	}
	if h.SaveIdentifier, err = r.lengthPrefixedString(); err != nil {
		return h, err
	}
	if h.IsPartitionedWorld, err = r.i32(); err != nil {
		return h, err
	}
	if h.SavedDataHash, err = r.utf16Units(10); err != nil {
		return h, err
	}
	if h.IsCreativeModeEnabled, err = r.i32(); err != nil {
		return h, err
	}
	return h, nil
}

// decodeChunks reads zero or more compressed chunks until the underlying
// reader is exhausted and returns their concatenated decompressed body.
//
// Each chunk's 41-byte preamble holds, at fixed absolute offsets from the
// start of the preamble: a 4-byte package signature at 0, a 4-byte
// max-chunk-size at 8, and a 4-byte current-chunk-size at 17. The signature
// and max-chunk-size are checked against their known constants when present
// but are not load-bearing; every other preamble byte is opaque and only
// its count matters, so the decoder seeks straight to the known offsets
// rather than accumulating relative seeks the way the reference
// implementation happens to.
func decodeChunks(r *reader, logger *log.Helper) ([]byte, error) {
	var body bytes.Buffer

	for r.remaining() > 0 {
		start := r.tell()

		if err := r.seekTo(start); err != nil {
			return nil, err
		}
		sig, err := r.u32()
		if err != nil {
			return nil, err
		}
		if sig != chunkSignature {
			logger.Warnf("chunk at offset %d: signature %#x does not match expected %#x", start, sig, uint32(chunkSignature))
		}

		if err := r.seekTo(start + 8); err != nil {
			return nil, err
		}
		maxSize, err := r.u32()
		if err != nil {
			return nil, err
		}
		if maxSize != chunkMaxSize {
			logger.Warnf("chunk at offset %d: max chunk size %d does not match expected %d", start, maxSize, chunkMaxSize)
		}

		if err := r.seekTo(start + 17); err != nil {
			return nil, err
		}
		curSize, err := r.u32()
		if err != nil {
			return nil, err
		}

		if err := r.seekTo(start + chunkPreambleSize); err != nil {
			return nil, err
		}

		compressed, err := r.bytes(int(curSize))
		if err != nil {
			return nil, err
		}

		zr, err := zlib.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", start, err)
		}
		if _, err := io.Copy(&body, zr); err != nil {
			zr.Close()
			return nil, fmt.Errorf("chunk at offset %d: %w", start, err)
		}
		if err := zr.Close(); err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", start, err)
		}
	}

	return body.Bytes(), nil
}

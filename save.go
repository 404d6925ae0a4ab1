// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/ficsit-tools/ficsave/log"
)

// defaultMaxObjectScratchBytes is the value withDefaults gives
// Options.MaxObjectScratchBytes when it is left at zero.
const defaultMaxObjectScratchBytes = 64 << 20

// Options configures a Save's decoding.
type Options struct {
	// Logger receives structured decode progress and warnings. Defaults to
	// an error-level stderr logger, mirroring file.go's default.
	Logger log.Logger

	// MaxObjectScratchBytes is a cap on speculative slice pre-allocation.
	// Zero selects the package default. No decoder consults it: slices are
	// pre-allocated from declared count fields as read, without a bound.
	MaxObjectScratchBytes uint32

	// StrictTrailerBytes rejects any save whose decoded body leaves trailing
	// bytes unconsumed after the last level, instead of merely logging them.
	StrictTrailerBytes bool
}

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.MaxObjectScratchBytes == 0 {
		out.MaxObjectScratchBytes = defaultMaxObjectScratchBytes
	}
	return &out
}

// Save is a fully decoded save file.
type Save struct {
	Header     Header     `json:"header"`
	Partitions Partitions `json:"partitions"`
	Levels     []Level    `json:"levels"`

	data   mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

func newSave(opts *Options) *Save {
	s := &Save{opts: opts.withDefaults()}

	var logger log.Logger
	if s.opts.Logger == nil {
		logger = log.NewStdLogger(os.Stderr)
		s.logger = log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))
	} else {
		s.logger = log.NewHelper(s.opts.Logger)
	}

	return s
}

// Open maps a save file from disk and returns an undecoded Save; call
// Decode to parse it, and Close to release the mapping.
func Open(name string, opts *Options) (*Save, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	s := newSave(opts)
	s.data = data
	s.f = f
	return s, nil
}

// OpenBytes wraps an in-memory buffer as an undecoded Save.
func OpenBytes(data []byte, opts *Options) (*Save, error) {
	s := newSave(opts)
	s.data = data
	return s, nil
}

// Close releases the Save's underlying file mapping, if any.
func (s *Save) Close() error {
	if s.f != nil {
		_ = s.data.Unmap()
		return s.f.Close()
	}
	return nil
}

// Decode runs the full pipeline: the envelope (C2), the partition directory
// and level count (C3), and every level's objects (C4/C5/C6/C7).
func (s *Save) Decode() error {
	if len(s.data) < chunkPreambleSize {
		return ErrTooSmall
	}

	outer := newReader(s.data)
	header, err := decodeHeader(outer)
	if err != nil {
		return err
	}
	s.Header = header

	body, err := decodeChunks(outer, s.logger)
	if err != nil {
		return err
	}

	r := newReader(body)

	partitions, err := decodePartitions(r)
	if err != nil {
		return err
	}
	s.Partitions = partitions

	numLevels, err := r.i32()
	if err != nil {
		return err
	}

	c := &decodeCtx{r: r, mapName: header.MapName, logger: s.logger, opts: s.opts}

	levels, err := decodeLevels(c, numLevels)
	if err != nil {
		return err
	}
	s.Levels = levels

	if remaining := r.remaining(); remaining > 0 {
		if s.opts.StrictTrailerBytes {
			return &ObjectLengthError{TypePath: persistentLevelNamePrefix + header.MapName}
		}
		s.logger.Warnf("decode finished with %d unconsumed trailing bytes", remaining)
	}

	return nil
}

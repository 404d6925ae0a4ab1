// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// Fuzz is the go-fuzz entry point: decode an untrusted buffer and report
// whether it was accepted.
func Fuzz(data []byte) int {
	s, err := OpenBytes(data, &Options{StrictTrailerBytes: true})
	if err != nil {
		return 0
	}
	if err := s.Decode(); err != nil {
		return 0
	}
	return 1
}

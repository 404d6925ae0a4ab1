// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// PartitionPreamble is an opaque scalar block preserved verbatim ahead of
// the partition directory. None of its fields are interpreted by the
// decoder; they are retained so a future re-encoder would not need to
// re-derive them.
type PartitionPreamble struct {
	Opaque1 string `json:"opaque_1"`
	Opaque2 int64  `json:"opaque_2"`
	Opaque3 int32  `json:"opaque_3"`
	Opaque4 string `json:"opaque_4"`
	Opaque5 int32  `json:"opaque_5"`
}

// Partition is a named partition's level-version directory: two opaque
// 32-bit integers plus a mapping from level key to a 32-bit version number.
type Partition struct {
	Opaque1 int32            `json:"opaque_1"`
	Opaque2 int32            `json:"opaque_2"`
	Levels  map[string]int32 `json:"levels"`
}

// Partitions is the full partition directory read from the body preamble.
type Partitions struct {
	Preamble   PartitionPreamble    `json:"preamble"`
	Partitions map[string]Partition `json:"partitions"`
}

// decodePartitions implements C3. It reads a partition count N, an opaque
// preamble block, and then N-1 partition records.
//
// The reference implementation this format was distilled from stores a
// zero-value Partition under each key, discarding the partition it just
// decoded — spec.md documents this as a latent bug and directs the decoded
// record be stored instead, which is what this implementation does.
func decodePartitions(r *reader) (Partitions, error) {
	var out Partitions

	n, err := r.i32()
	if err != nil {
		return out, err
	}

	if out.Preamble.Opaque1, err = r.lengthPrefixedString(); err != nil {
		return out, err
	}
	if out.Preamble.Opaque2, err = r.i64(); err != nil {
		return out, err
	}
	if out.Preamble.Opaque3, err = r.i32(); err != nil {
		return out, err
	}
	if out.Preamble.Opaque4, err = r.lengthPrefixedString(); err != nil {
		return out, err
	}
	if out.Preamble.Opaque5, err = r.i32(); err != nil {
		return out, err
	}

	count := n - 1
	if count < 0 {
		count = 0
	}

	out.Partitions = make(map[string]Partition, count)
	for i := int32(0); i < count; i++ {
		key, err := r.lengthPrefixedString()
		if err != nil {
			return out, err
		}

		var p Partition
		if p.Opaque1, err = r.i32(); err != nil {
			return out, err
		}
		if p.Opaque2, err = r.i32(); err != nil {
			return out, err
		}

		m, err := r.i32()
		if err != nil {
			return out, err
		}
		p.Levels = make(map[string]int32, m)
		for j := int32(0); j < m; j++ {
			lvlKey, err := r.lengthPrefixedString()
			if err != nil {
				return out, err
			}
			lvlVal, err := r.i32()
			if err != nil {
				return out, err
			}
			p.Levels[lvlKey] = lvlVal
		}

		out.Partitions[key] = p
	}

	return out, nil
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package save

// Text history-type discriminators (§4.5.1).
const (
	textHistoryBase             = 0
	textHistoryArgumentFormat   = 1
	textHistoryArgumentFormat3  = 3
	textHistoryTransform        = 10
	textHistoryStringTableEntry = 11
	textHistoryNone             = 255
)

// textArgumentValueTypeText is the only recognized Argument value-type
// discriminator: a nested Text.
const textArgumentValueTypeText = 4

// TextHistoryBase is history-type 0.
type TextHistoryBase struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// TextHistoryArgumentEntry is one entry in a TextHistoryArgument's argument
// list.
type TextHistoryArgumentEntry struct {
	Name      string        `json:"name"`
	ValueType uint8         `json:"value_type"`
	Value     *TextProperty `json:"value,omitempty"`
}

// TextHistoryArgument is history-type 1 or 3.
type TextHistoryArgument struct {
	SourceFormat *TextProperty              `json:"source_format"`
	Arguments    []TextHistoryArgumentEntry `json:"arguments"`
}

// TextHistoryTransform is history-type 10.
type TextHistoryTransform struct {
	SourceText    *TextProperty `json:"source_text"`
	TransformType uint8         `json:"transform_type"`
}

// TextHistoryStringTableEntry is history-type 11.
type TextHistoryStringTableEntry struct {
	TableID string `json:"table_id"`
	TextKey string `json:"text_key"`
}

// TextHistoryNone is history-type 255.
type TextHistoryNone struct {
	HasCultureInvariantString int32  `json:"has_culture_invariant_string"`
	Value                     string `json:"value"`
}

// TextProperty is the Text sub-schema (§4.5.1). Exactly one of the variant
// pointers is non-nil, selected by HistoryType.
type TextProperty struct {
	Flags            int32                         `json:"flags"`
	HistoryType      uint8                          `json:"history_type"`
	Base             *TextHistoryBase               `json:"base,omitempty"`
	Argument         *TextHistoryArgument            `json:"argument,omitempty"`
	Transform        *TextHistoryTransform            `json:"transform,omitempty"`
	StringTableEntry *TextHistoryStringTableEntry     `json:"string_table_entry,omitempty"`
	None             *TextHistoryNone                 `json:"none,omitempty"`
}

func readTextProperty(c *decodeCtx, depth int) (TextProperty, error) {
	if depth > maxPropertyDepth {
		c.logger.Warnf("text property nesting exceeded %d, truncating", maxPropertyDepth)
		return TextProperty{}, nil
	}

	r := c.r
	var t TextProperty
	var err error

	if t.Flags, err = r.i32(); err != nil {
		return t, err
	}
	historyType, err := r.u8()
	if err != nil {
		return t, err
	}
	t.HistoryType = historyType

	switch historyType {
	case textHistoryBase:
		b := &TextHistoryBase{}
		if b.Namespace, err = r.lengthPrefixedString(); err != nil {
			return t, err
		}
		if b.Key, err = r.lengthPrefixedString(); err != nil {
			return t, err
		}
		if b.Value, err = r.lengthPrefixedString(); err != nil {
			return t, err
		}
		t.Base = b

	case textHistoryArgumentFormat, textHistoryArgumentFormat3:
		a := &TextHistoryArgument{}
		src, err := readTextProperty(c, depth+1)
		if err != nil {
			return t, err
		}
		a.SourceFormat = &src

		n, err := r.i32()
		if err != nil {
			return t, err
		}
		a.Arguments = make([]TextHistoryArgumentEntry, 0, n)
		for i := int32(0); i < n; i++ {
			var e TextHistoryArgumentEntry
			if e.Name, err = r.lengthPrefixedString(); err != nil {
				return t, err
			}
			if e.ValueType, err = r.u8(); err != nil {
				return t, err
			}
			switch e.ValueType {
			case textArgumentValueTypeText:
				v, err := readTextProperty(c, depth+1)
				if err != nil {
					return t, err
				}
				e.Value = &v
			default:
				return t, &UnknownTextArgumentValueTypeError{Value: e.ValueType}
			}
			a.Arguments = append(a.Arguments, e)
		}
		t.Argument = a

	case textHistoryTransform:
		tr := &TextHistoryTransform{}
		src, err := readTextProperty(c, depth+1)
		if err != nil {
			return t, err
		}
		tr.SourceText = &src
		if tr.TransformType, err = r.u8(); err != nil {
			return t, err
		}
		t.Transform = tr

	case textHistoryStringTableEntry:
		s := &TextHistoryStringTableEntry{}
		if s.TableID, err = r.lengthPrefixedString(); err != nil {
			return t, err
		}
		if s.TextKey, err = r.lengthPrefixedString(); err != nil {
			return t, err
		}
		t.StringTableEntry = s

	case textHistoryNone:
		n := &TextHistoryNone{}
		if n.HasCultureInvariantString, err = r.i32(); err != nil {
			return t, err
		}
		if n.Value, err = r.lengthPrefixedString(); err != nil {
			return t, err
		}
		t.None = n

	default:
		return t, &UnknownTextHistoryTypeError{Value: historyType}
	}

	return t, nil
}

/*
Copyright 2022 Hiroki Shirokura.
Copyright 2022 Keio University.
Copyright 2022 Wide Project.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package literal parses sized Verilog number literals such as 4'h3 or 'b101.
package literal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FormatError reports a literal that cannot be turned into an integer.
type FormatError struct {
	Literal string
	Tag     string
	Err     error
}

func (e *FormatError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("invalid verilog literal %q: %v", e.Literal, e.Err)
	case e.Tag != "":
		return fmt.Sprintf("unsupported format %q in verilog literal %q",
			e.Tag, e.Literal)
	default:
		return fmt.Sprintf("invalid verilog literal %q", e.Literal)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

var radixes = map[byte]int{
	'b': 2,
	'd': 10,
	'h': 16,
}

// Parse converts a literal of the form [<width>']<tag><digits> into an
// integer. The width is informational only and never checked against the
// value.
func Parse(s string) (int, error) {
	body := s
	if idx := strings.LastIndexByte(s, '\''); idx >= 0 {
		body = s[idx+1:]
	}
	if body == "" {
		return 0, &FormatError{Literal: s, Err: errors.New("empty literal")}
	}

	tag, digits := body[0], body[1:]
	base, ok := radixes[tag]
	if !ok {
		return 0, &FormatError{Literal: s, Tag: string(tag)}
	}
	digits = strings.ReplaceAll(digits, "_", "")
	if digits == "" {
		return 0, &FormatError{Literal: s, Tag: string(tag),
			Err: errors.New("no digits")}
	}

	val, err := strconv.ParseInt(digits, base, strconv.IntSize)
	if err != nil {
		return 0, &FormatError{Literal: s, Tag: string(tag),
			Err: errors.Wrapf(err, "digits %q in radix %d", digits, base)}
	}
	return int(val), nil
}

// ParseValue parses v when it is a literal string. Integers decoded directly
// from YAML are returned unchanged.
func ParseValue(v interface{}) (int, error) {
	switch val := v.(type) {
	case string:
		return Parse(val)
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	default:
		return 0, &FormatError{Literal: fmt.Sprint(v)}
	}
}

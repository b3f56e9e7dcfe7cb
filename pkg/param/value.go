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

package param

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindScalar Kind = iota
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a configuration value. Array-like hardware parameters are
// Sequences; everything else, strings included, is a Scalar.
type Value struct {
	kind   Kind
	scalar interface{}
	items  []interface{}
}

func Scalar(v interface{}) Value {
	return Value{kind: KindScalar, scalar: v}
}

func Sequence(items ...interface{}) Value {
	copied := make([]interface{}, len(items))
	copy(copied, items)
	return Value{kind: KindSequence, items: copied}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsSequence() bool {
	return v.kind == KindSequence
}

// Raw returns the scalar payload, or nil for a sequence.
func (v Value) Raw() interface{} {
	return v.scalar
}

// Items returns a copy of the sequence elements, or nil for a scalar.
func (v Value) Items() []interface{} {
	if v.kind != KindSequence {
		return nil
	}
	items := make([]interface{}, len(v.items))
	copy(items, v.items)
	return items
}

// Int converts a scalar to an int. Decimal strings are accepted the same
// way integer conversion of a YAML string would.
func (v Value) Int() (int, error) {
	if v.kind != KindScalar {
		return 0, fmt.Errorf("expected integer, got %s", v.kind)
	}
	switch val := v.scalar.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v.scalar)
	}
}

func (v Value) String() string {
	if v.kind == KindSequence {
		strs := make([]string, len(v.items))
		for idx, item := range v.items {
			strs[idx] = fmt.Sprint(item)
		}
		return "[" + strings.Join(strs, " ") + "]"
	}
	return fmt.Sprint(v.scalar)
}

func (v Value) MarshalYAML() (interface{}, error) {
	if v.kind == KindSequence {
		return v.items, nil
	}
	return v.scalar, nil
}

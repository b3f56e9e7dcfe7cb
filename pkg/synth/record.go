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

package synth

import (
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/slankdev/tlconfig/pkg/param"
)

type Field struct {
	Name  string
	Value param.Value
}

// Record holds the resolved parameters of one host or device.
type Record struct {
	fields []Field
}

func newRecord(fields ...Field) Record {
	return Record{fields: fields}
}

func (r Record) Get(name string) (param.Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return param.Value{}, false
}

// Fields returns the fields in the order they were resolved.
func (r Record) Fields() []Field {
	fields := make([]Field, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// IDRange returns the FirstID and LastID fields.
func (r Record) IDRange() (int, int) {
	first, _ := r.Get("FirstID")
	last, _ := r.Get("LastID")
	f, _ := first.Int()
	l, _ := last.Int()
	return f, l
}

// MarshalYAML emits the fields sorted by name so output does not depend on
// resolution order.
func (r Record) MarshalYAML() (interface{}, error) {
	fields := r.Fields()
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	ms := make(yaml.MapSlice, len(fields))
	for idx, f := range fields {
		ms[idx] = yaml.MapItem{Key: f.Name, Value: f.Value}
	}
	return ms, nil
}

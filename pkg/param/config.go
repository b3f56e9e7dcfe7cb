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
	"sort"

	"gopkg.in/yaml.v2"
)

// ConfigError reports a malformed or incomplete configuration.
type ConfigError struct {
	Key string
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s", e.Key, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config is one flat named configuration. Keys are either generic, like
// "DataWidth", or qualified by an endpoint type, like "HostDataWidth".
type Config map[string]Value

func (c Config) Lookup(key string) (Value, bool) {
	v, ok := c[key]
	return v, ok
}

func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Int returns the integer stored at key.
func (c Config) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, &ConfigError{Key: key, Msg: "required parameter is missing"}
	}
	n, err := v.Int()
	if err != nil {
		return 0, &ConfigError{Key: key, Msg: "invalid value", Err: err}
	}
	return n, nil
}

// Resolve returns the most specific value available for name: first
// prefix+name, then name, then def.
func Resolve(c Config, name, prefix string, def Value) Value {
	if v, ok := c[prefix+name]; ok {
		return v
	}
	if v, ok := c[name]; ok {
		return v
	}
	return def
}

// ResolveInt is Resolve for integer parameters.
func ResolveInt(c Config, name, prefix string, def int) (int, error) {
	key := prefix + name
	if _, ok := c[key]; !ok {
		key = name
	}
	n, err := Resolve(c, name, prefix, Scalar(def)).Int()
	if err != nil {
		return 0, &ConfigError{Key: key, Msg: "invalid value", Err: err}
	}
	return n, nil
}

// FromMapSlice converts one decoded named configuration. YAML sequences
// become Sequences and every other leaf becomes a Scalar.
func FromMapSlice(ms yaml.MapSlice) (Config, error) {
	c := Config{}
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return nil, &ConfigError{Key: fmt.Sprint(item.Key),
				Msg: "parameter name must be a string"}
		}
		v, err := fromYAML(key, item.Value)
		if err != nil {
			return nil, err
		}
		c[key] = v
	}
	return c, nil
}

// FromMap is FromMapSlice for a configuration decoded into a plain map, as
// yaml.v2 produces when it resolves merge keys.
func FromMap(m map[interface{}]interface{}) (Config, error) {
	c := Config{}
	for k, raw := range m {
		key, ok := k.(string)
		if !ok {
			return nil, &ConfigError{Key: fmt.Sprint(k),
				Msg: "parameter name must be a string"}
		}
		v, err := fromYAML(key, raw)
		if err != nil {
			return nil, err
		}
		c[key] = v
	}
	return c, nil
}

func fromYAML(key string, raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case []interface{}:
		for _, item := range val {
			switch item.(type) {
			case []interface{}, yaml.MapSlice, map[interface{}]interface{}:
				return Value{}, &ConfigError{Key: key,
					Msg: "nested sequences are not supported"}
			}
		}
		return Sequence(val...), nil
	case yaml.MapSlice, map[interface{}]interface{}:
		return Value{}, &ConfigError{Key: key,
			Msg: "nested mappings are not supported"}
	default:
		return Scalar(val), nil
	}
}

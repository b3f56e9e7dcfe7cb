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

package master

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/slankdev/tlconfig/pkg/param"
	"github.com/slankdev/tlconfig/pkg/util"
)

// DefaultName is the configuration other entries are expected to build on.
// It is never listed.
const DefaultName = "default"

// File is a master configuration file: a set of named configurations plus
// the parameters that go to the Verilog side.
type File struct {
	Configs           yaml.MapSlice `yaml:"configs"`
	VerilogParameters []string      `yaml:"verilog_parameters"`

	// merged holds each configuration with its "<<" merge keys resolved.
	merged map[interface{}]interface{}
}

// UnmarshalYAML decodes the configurations twice. The MapSlice pass keeps
// file order and only the keys written out in each configuration; the map
// pass resolves merge keys such as "<<: *default".
func (f *File) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain File
	if err := unmarshal((*plain)(f)); err != nil {
		return err
	}
	merged := struct {
		Configs map[interface{}]interface{} `yaml:"configs"`
	}{}
	if err := unmarshal(&merged); err != nil {
		return err
	}
	f.merged = merged.Configs
	return nil
}

func Load(path string) (*File, error) {
	f := &File{}
	if err := util.FileUnmarshalAsYaml(path, f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return f, nil
}

func Parse(bdata []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(bdata, f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	for _, item := range f.Configs {
		if _, ok := item.Key.(string); !ok {
			return &param.ConfigError{Key: fmt.Sprint(item.Key),
				Msg: "configuration name must be a string"}
		}
	}
	return nil
}

// Names returns the configuration names in file order, without the default.
func (f *File) Names() []string {
	names := []string{}
	for _, item := range f.Configs {
		name := item.Key.(string)
		if name == DefaultName {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Config returns the named configuration. Keys written in the configuration
// itself take precedence over keys it merges in, wherever the "<<" appears.
func (f *File) Config(name string) (param.Config, error) {
	for _, item := range f.Configs {
		if item.Key.(string) != name {
			continue
		}
		ms, ok := item.Value.(yaml.MapSlice)
		if !ok {
			if item.Value == nil {
				return param.Config{}, nil
			}
			return nil, &param.ConfigError{Key: name,
				Msg: "configuration must be a mapping"}
		}
		c, err := param.FromMapSlice(ms)
		if err != nil {
			return nil, errors.Wrapf(err, "configuration %s", name)
		}
		if err := f.inherit(name, c); err != nil {
			return nil, errors.Wrapf(err, "configuration %s", name)
		}
		return c, nil
	}
	return nil, &param.ConfigError{Key: name, Msg: "no such configuration"}
}

// inherit fills c with the merged keys it does not set itself.
func (f *File) inherit(name string, c param.Config) error {
	m, ok := f.merged[name].(map[interface{}]interface{})
	if !ok {
		return nil
	}
	base, err := param.FromMap(m)
	if err != nil {
		return err
	}
	for key, v := range base {
		if _, ok := c[key]; !ok {
			c[key] = v
		}
	}
	return nil
}

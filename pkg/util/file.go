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

package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

func FileUnmarshalAsYaml(in string, v interface{}) error {
	yamlFile, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(yamlFile, v); err != nil {
		return errors.Wrapf(err, "parse %s", in)
	}
	return nil
}

// WriteFileWith creates path, including missing parent directories, and
// hands it to fn. The file is closed on every path out.
func WriteFileWith(path string, fn func(w io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := fn(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

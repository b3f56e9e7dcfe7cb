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

package emit

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/slankdev/tlconfig/pkg/synth"
)

// WriteSimulator writes the simulator configuration. path only appears in
// the usage hint of the header.
func WriteSimulator(w io.Writer, r *synth.Result, path string,
	fp Fingerprint) error {
	body, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	buf := bytes.Buffer{}
	buf.WriteString("# Generated by tlconfig\n")
	fmt.Fprintf(&buf, "# Configure a simulation by using e.g. tl.sim --config %s\n", path)
	fmt.Fprintf(&buf, "# %s %s\n", fingerprintLabel, fp)
	buf.Write(body)
	_, err = w.Write(buf.Bytes())
	return err
}

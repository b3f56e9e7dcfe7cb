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
	"fmt"
	"io"
	"strings"

	"github.com/slankdev/tlconfig/pkg/param"
)

// WriteVerilog writes one `define per name in params, in order.
func WriteVerilog(w io.Writer, params []string, c param.Config,
	fp Fingerprint) error {
	sb := strings.Builder{}
	sb.WriteString("// Generated by tlconfig\n")
	sb.WriteString("// Include this from an appropriate SystemVerilog file.\n")
	fmt.Fprintf(&sb, "// %s %s\n", fingerprintLabel, fp)
	for _, name := range params {
		v, ok := c.Lookup(name)
		if !ok {
			return &param.ConfigError{Key: name,
				Msg: "could not find parameter in configuration"}
		}
		fmt.Fprintf(&sb, "`define %s %s\n", name, VerilogValue(v))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// VerilogValue renders sequences as Verilog array literals.
func VerilogValue(v param.Value) string {
	if !v.IsSequence() {
		return verilogScalar(v.Raw())
	}
	items := v.Items()
	strs := make([]string, len(items))
	for idx, item := range items {
		strs[idx] = verilogScalar(item)
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

func verilogScalar(v interface{}) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "1"
		}
		return "0"
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

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

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slankdev/tlconfig/pkg/param"
	"github.com/slankdev/tlconfig/pkg/synth"
)

func testResult(t *testing.T) *synth.Result {
	res, err := synth.Synthesize(param.Config{
		"hosts":       param.Scalar(2),
		"devices":     param.Scalar(1),
		"SourceWidth": param.Scalar(2),
		"SourceBase":  param.Sequence("d0", "d2"),
		"SourceMask":  param.Sequence("d1", "d1"),
		"SourceLink":  param.Sequence("d0", "d1"),
		"SinkWidth":   param.Scalar(3),
	})
	require.NoError(t, err)
	return res
}

func TestCollect(t *testing.T) {
	reg, err := Collect(testResult(t))
	require.NoError(t, err)

	expected := `
# HELP tlconfig_endpoints Number of endpoint records generated.
# TYPE tlconfig_endpoints gauge
tlconfig_endpoints{kind="device"} 1
tlconfig_endpoints{kind="host"} 2
# HELP tlconfig_routing_entries Number of explicit entries in a routing table.
# TYPE tlconfig_routing_entries gauge
tlconfig_routing_entries{table="device-sink"} 0
tlconfig_routing_entries{table="device-source"} 2
tlconfig_routing_entries{table="host-sink"} 0
tlconfig_routing_entries{table="host-source"} 2
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"tlconfig_endpoints", "tlconfig_routing_entries")
	assert.NoError(t, err)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tlconfig.prom")
	require.NoError(t, Export(path, testResult(t)))

	bdata, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bdata), `tlconfig_id_space{table="host-sink"} 8`)
}

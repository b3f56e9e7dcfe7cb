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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/slankdev/tlconfig/pkg/synth"
)

const namespace = "tlconfig"

// Collect registers gauges describing r in a fresh registry.
func Collect(r *synth.Result) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	endpoints := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "endpoints",
		Help:      "Number of endpoint records generated.",
	}, []string{"kind"})
	entries := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "routing_entries",
		Help:      "Number of explicit entries in a routing table.",
	}, []string{"table"})
	idSpace := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "id_space",
		Help:      "Number of IDs addressed by a routing table.",
	}, []string{"table"})
	for _, c := range []prometheus.Collector{endpoints, entries, idSpace} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	endpoints.WithLabelValues("host").Set(float64(len(r.Hosts)))
	endpoints.WithLabelValues("device").Set(float64(len(r.Devices)))
	for _, name := range synth.TableNames {
		t, ok := r.Tables[name]
		if !ok {
			continue
		}
		entries.WithLabelValues(name).Set(float64(len(t.Entries)))
		idSpace.WithLabelValues(name).Set(float64(t.NumIDs))
	}
	return reg, nil
}

// Export writes the metrics of r in the text exposition format, for
// node_exporter's textfile collector.
func Export(path string, r *synth.Result) error {
	reg, err := Collect(r)
	if err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}

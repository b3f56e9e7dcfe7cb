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

// Package synth resolves the per-endpoint parameter records of a fabric
// configuration.
package synth

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/slankdev/tlconfig/pkg/param"
	"github.com/slankdev/tlconfig/pkg/routing"
)

const (
	PrefixHost   = "Host"
	PrefixDevice = "Device"

	TableHostSource   = "host-source"
	TableHostSink     = "host-sink"
	TableDeviceSource = "device-source"
	TableDeviceSink   = "device-sink"
)

// TableNames lists the routing tables in synthesis order.
var TableNames = []string{
	TableHostSource,
	TableHostSink,
	TableDeviceSource,
	TableDeviceSink,
}

// Result is what the emitters consume. Devices come first so the YAML keys
// are sorted.
type Result struct {
	Devices []Record `yaml:"devices"`
	Hosts   []Record `yaml:"hosts"`

	// Tables is keyed by TableNames.
	Tables map[string]*routing.Table `yaml:"-"`
}

type options struct {
	log logr.Logger
}

type Option func(*options)

func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

type scalarDefault struct {
	name string
	def  interface{}
}

var scalarDefaults = []scalarDefault{
	{"Protocol", "TL-C"},
	{"DataWidth", 64},
	{"MaxSize", 6},
	{"Fifo", 0},
	{"CanDeny", 1},
}

// endpointSide describes how the records of one side of the fabric are built.
type endpointSide struct {
	prefix string
	count  int
	// own assigns each endpoint its ID range.
	own *routing.Table
	// route is attached when the far side has more than one endpoint.
	route       *routing.Table
	routePrefix string
	farCount    int
}

// Synthesize builds the host and device records for c. c is not modified.
func Synthesize(c param.Config, opts ...Option) (*Result, error) {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log

	numHosts, err := c.Int("hosts")
	if err != nil {
		return nil, err
	}
	numDevices, err := c.Int("devices")
	if err != nil {
		return nil, err
	}
	if numHosts < 0 {
		return nil, &param.ConfigError{Key: "hosts", Msg: "must not be negative"}
	}
	if numDevices < 0 {
		return nil, &param.ConfigError{Key: "devices", Msg: "must not be negative"}
	}

	// IDs may be remapped inside the fabric, so hosts and devices each get
	// their own view of both ID spaces.
	tables := map[string]*routing.Table{}
	builds := []struct {
		name, idName, prefix string
	}{
		{TableHostSource, "Source", PrefixHost},
		{TableHostSink, "Sink", PrefixHost},
		{TableDeviceSource, "Source", PrefixDevice},
		{TableDeviceSink, "Sink", PrefixDevice},
	}
	for _, b := range builds {
		t, err := routing.Build(c, b.idName, b.prefix)
		if err != nil {
			return nil, errors.Wrapf(err, "build %s table", b.name)
		}
		log.V(1).Info("routing table built", "table", b.name,
			"ids", t.NumIDs, "entries", len(t.Entries))
		tables[b.name] = t
	}

	hosts, err := buildSide(c, log, endpointSide{
		prefix:      PrefixHost,
		count:       numHosts,
		own:         tables[TableHostSource],
		route:       tables[TableHostSink],
		routePrefix: "Sink",
		farCount:    numDevices,
	})
	if err != nil {
		return nil, err
	}
	devices, err := buildSide(c, log, endpointSide{
		prefix:      PrefixDevice,
		count:       numDevices,
		own:         tables[TableDeviceSink],
		route:       tables[TableDeviceSource],
		routePrefix: "Source",
		farCount:    numHosts,
	})
	if err != nil {
		return nil, err
	}

	log.Info("configuration synthesized", "hosts", len(hosts),
		"devices", len(devices))
	return &Result{Hosts: hosts, Devices: devices, Tables: tables}, nil
}

func buildSide(c param.Config, log logr.Logger, side endpointSide) ([]Record, error) {
	records := make([]Record, 0, side.count)
	for idx := 0; idx < side.count; idx++ {
		fields := make([]Field, 0, len(scalarDefaults)+5)
		for _, sd := range scalarDefaults {
			fields = append(fields, Field{
				Name:  sd.name,
				Value: param.Resolve(c, sd.name, side.prefix, param.Scalar(sd.def)),
			})
		}

		// Without explicit entries every endpoint shares the whole space.
		link := idx
		if !side.own.Explicit() {
			link = routing.DefaultLink
		}
		first, last, err := side.own.IDRange(link)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %d", side.prefix, idx)
		}
		fields = append(fields,
			Field{Name: "FirstID", Value: param.Scalar(first)},
			Field{Name: "LastID", Value: param.Scalar(last)},
		)

		if side.farCount > 1 {
			s := side.route.Serialize()
			fields = append(fields,
				Field{Name: side.routePrefix + "Base", Value: param.Scalar(s.Bases)},
				Field{Name: side.routePrefix + "Mask", Value: param.Scalar(s.Masks)},
				Field{Name: side.routePrefix + "Target", Value: param.Scalar(s.Links)},
			)
		}

		log.V(1).Info("endpoint resolved", "type", side.prefix, "index", idx,
			"firstID", first, "lastID", last)
		records = append(records, newRecord(fields...))
	}
	return records, nil
}

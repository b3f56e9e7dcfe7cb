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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v2"

	"github.com/slankdev/tlconfig/pkg/literal"
	"github.com/slankdev/tlconfig/pkg/param"
)

func intField(r Record, name string) int {
	v, ok := r.Get(name)
	ExpectWithOffset(1, ok).To(BeTrue(), "field %s missing", name)
	n, err := v.Int()
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return n
}

func rawField(r Record, name string) interface{} {
	v, ok := r.Get(name)
	ExpectWithOffset(1, ok).To(BeTrue(), "field %s missing", name)
	return v.Raw()
}

var _ = Describe("Synthesize", func() {
	Context("with default routing tables", func() {
		var config param.Config

		BeforeEach(func() {
			config = param.Config{
				"hosts":       param.Scalar(2),
				"devices":     param.Scalar(1),
				"SourceWidth": param.Scalar(2),
				"SinkWidth":   param.Scalar(1),
			}
		})

		It("gives every host the defaults and the full ID space", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Hosts).To(HaveLen(2))
			Expect(res.Devices).To(HaveLen(1))

			for _, host := range res.Hosts {
				Expect(rawField(host, "Protocol")).To(Equal("TL-C"))
				Expect(intField(host, "DataWidth")).To(Equal(64))
				Expect(intField(host, "MaxSize")).To(Equal(6))
				Expect(intField(host, "Fifo")).To(Equal(0))
				Expect(intField(host, "CanDeny")).To(Equal(1))
				first, last := host.IDRange()
				Expect([]int{first, last}).To(Equal([]int{0, 3}))
			}

			first, last := res.Devices[0].IDRange()
			Expect([]int{first, last}).To(Equal([]int{0, 1}))
		})

		It("attaches the source table to devices only when there are several hosts", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())

			_, ok := res.Devices[0].Get("SourceBase")
			Expect(ok).To(BeTrue())
			Expect(rawField(res.Devices[0], "SourceTarget")).To(Equal(""))

			_, ok = res.Hosts[0].Get("SinkBase")
			Expect(ok).To(BeFalse())
		})

		It("does not modify its input", func() {
			before := len(config)
			_, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			Expect(config).To(HaveLen(before))
		})

		It("is deterministic", func() {
			a, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			b, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))

			outA, err := yaml.Marshal(a)
			Expect(err).NotTo(HaveOccurred())
			outB, err := yaml.Marshal(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(outA).To(Equal(outB))
		})
	})

	Context("with explicit routing tables and overrides", func() {
		config := param.Config{
			"hosts":          param.Scalar(2),
			"devices":        param.Scalar(2),
			"Protocol":       param.Scalar("TL-UL"),
			"DeviceProtocol": param.Scalar("TL-UH"),
			"DataWidth":      param.Scalar(32),
			"HostMaxSize":    param.Scalar(8),
			"SourceWidth":    param.Scalar(2),
			"SourceBase":     param.Sequence("2'd0", "2'd2"),
			"SourceMask":     param.Sequence("2'd0", "2'd1"),
			"SourceLink":     param.Sequence("'d0", "'d1"),
			"SinkWidth":      param.Scalar(1),
			"SinkBase":       param.Sequence("1'b0", "1'b1"),
			"SinkMask":       param.Sequence("1'b0", "1'b0"),
			"SinkLink":       param.Sequence("d0", "d1"),
		}

		It("resolves type-qualified parameters first", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			Expect(rawField(res.Hosts[0], "Protocol")).To(Equal("TL-UL"))
			Expect(rawField(res.Devices[0], "Protocol")).To(Equal("TL-UH"))
			Expect(intField(res.Hosts[1], "MaxSize")).To(Equal(8))
			Expect(intField(res.Devices[1], "MaxSize")).To(Equal(6))
			Expect(intField(res.Devices[1], "DataWidth")).To(Equal(32))
		})

		It("assigns each endpoint the range its link owns", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())

			first, last := res.Hosts[0].IDRange()
			Expect([]int{first, last}).To(Equal([]int{0, 1}))
			first, last = res.Hosts[1].IDRange()
			Expect([]int{first, last}).To(Equal([]int{2, 3}))
			first, last = res.Devices[0].IDRange()
			Expect([]int{first, last}).To(Equal([]int{0, 0}))
			first, last = res.Devices[1].IDRange()
			Expect([]int{first, last}).To(Equal([]int{1, 1}))
		})

		It("serializes the far side routing tables", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			host := res.Hosts[1]
			Expect(rawField(host, "SinkBase")).To(Equal("0 1"))
			Expect(rawField(host, "SinkMask")).To(Equal("0 0"))
			Expect(rawField(host, "SinkTarget")).To(Equal("0 1"))
			device := res.Devices[0]
			Expect(rawField(device, "SourceBase")).To(Equal("0 2"))
			Expect(rawField(device, "SourceMask")).To(Equal("0 1"))
			Expect(rawField(device, "SourceTarget")).To(Equal("0 1"))
		})

		It("exposes all four tables", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			for _, name := range TableNames {
				Expect(res.Tables).To(HaveKey(name))
			}
			Expect(res.Tables[TableHostSink].NumIDs).To(Equal(2))
		})

		It("emits sorted YAML", func() {
			res, err := Synthesize(config)
			Expect(err).NotTo(HaveOccurred())
			out, err := yaml.Marshal(res.Devices[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`CanDeny: 1
DataWidth: 32
Fifo: 0
FirstID: 0
LastID: 0
MaxSize: 6
Protocol: TL-UH
SourceBase: 0 2
SourceMask: 0 1
SourceTarget: 0 1
`))
		})
	})

	Context("with invalid configurations", func() {
		base := func() param.Config {
			return param.Config{
				"hosts":       param.Scalar(1),
				"devices":     param.Scalar(1),
				"SourceWidth": param.Scalar(1),
				"SinkWidth":   param.Scalar(1),
			}
		}

		DescribeTable("reports a ConfigError",
			func(mutate func(param.Config)) {
				config := base()
				mutate(config)
				_, err := Synthesize(config)
				var ce *param.ConfigError
				Expect(errors.As(err, &ce)).To(BeTrue(), "got %v", err)
			},
			Entry("without hosts", func(c param.Config) { delete(c, "hosts") }),
			Entry("with negative devices", func(c param.Config) { c["devices"] = param.Scalar(-1) }),
			Entry("without a sink width", func(c param.Config) { delete(c, "SinkWidth") }),
			Entry("with a host that owns no IDs", func(c param.Config) {
				c["hosts"] = param.Scalar(3)
				c["SourceBase"] = param.Sequence("d0", "d1")
				c["SourceMask"] = param.Sequence("d0", "d0")
				c["SourceLink"] = param.Sequence("d0", "d1")
			}),
		)

		It("reports a FormatError for a bad literal", func() {
			config := base()
			config["SinkBase"] = param.Sequence("1'x0")
			config["SinkMask"] = param.Sequence("1'd0")
			config["SinkLink"] = param.Sequence("1'd0")
			_, err := Synthesize(config)
			var fe *literal.FormatError
			Expect(errors.As(err, &fe)).To(BeTrue(), "got %v", err)
			Expect(fe.Tag).To(Equal("x"))
		})
	})
})

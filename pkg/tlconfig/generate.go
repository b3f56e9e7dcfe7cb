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

package tlconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/slankdev/tlconfig/pkg/emit"
	"github.com/slankdev/tlconfig/pkg/metrics"
	"github.com/slankdev/tlconfig/pkg/synth"
	"github.com/slankdev/tlconfig/pkg/util"
)

func NewCommandGenerate() *cobra.Command {
	var clioptInput inputFlags
	var clioptVerilog string
	var clioptCpp string
	var clioptMetricsFile string
	var clioptDump bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the Verilog parameters and the simulator configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			file, log, sync, err := clioptInput.load()
			defer sync()
			if err != nil {
				return err
			}

			name := clioptInput.config
			if name == "" {
				fmt.Fprintln(out, "No configuration specified. "+
					"Use list to see available options.")
				return nil
			}
			config, err := file.Config(name)
			if err != nil {
				return err
			}

			// Nothing is written until both artifacts render.
			res, err := synth.Synthesize(config,
				synth.WithLogger(log.WithValues("config", name)))
			if err != nil {
				return errors.Wrapf(err, "configuration %s", name)
			}
			fp := emit.NewFingerprint(name, config)
			if err := emit.WriteVerilog(io.Discard, file.VerilogParameters,
				config, fp); err != nil {
				return err
			}

			if clioptDump {
				pp.Fprintln(out, res.Hosts)
				pp.Fprintln(out, res.Devices)
			}

			if err := util.WriteFileWith(clioptVerilog, func(w io.Writer) error {
				return emit.WriteVerilog(w, file.VerilogParameters, config, fp)
			}); err != nil {
				return err
			}
			util.ReportSuccess(out, "Wrote Verilog config to %s", clioptVerilog)

			if err := util.WriteFileWith(clioptCpp, func(w io.Writer) error {
				return emit.WriteSimulator(w, res, clioptCpp, fp)
			}); err != nil {
				return err
			}
			util.ReportSuccess(out, "Wrote C++ config to %s", clioptCpp)

			if clioptMetricsFile != "" {
				if err := metrics.Export(clioptMetricsFile, res); err != nil {
					return err
				}
				log.Info("metrics written", "path", clioptMetricsFile)
			}
			return nil
		},
	}
	clioptInput.register(cmd, true)
	cmd.Flags().StringVar(&clioptVerilog, "verilog", "parameters.svh",
		"Filename for output Verilog configuration")
	cmd.Flags().StringVar(&clioptCpp, "cpp", "config.yaml",
		"Filename for output C++ configuration")
	cmd.Flags().StringVar(&clioptMetricsFile, "metrics-file", "",
		"Write generation metrics in Prometheus text format")
	cmd.Flags().BoolVar(&clioptDump, "dump", false,
		"Print the resolved endpoint records")
	return cmd
}

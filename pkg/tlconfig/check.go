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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/slankdev/tlconfig/pkg/emit"
	"github.com/slankdev/tlconfig/pkg/util"
)

func readFingerprint(path string) (emit.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fp, err := emit.ReadFingerprint(f)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", path)
	}
	return fp, nil
}

func NewCommandCheck() *cobra.Command {
	var clioptVerilog string
	var clioptCpp string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify both artifacts were generated from the same configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			verilogFp, err := readFingerprint(clioptVerilog)
			if err != nil {
				return err
			}
			cppFp, err := readFingerprint(clioptCpp)
			if err != nil {
				return err
			}
			if verilogFp != cppFp {
				util.ReportFailure(out, "%s (%s) and %s (%s) disagree",
					clioptVerilog, verilogFp, clioptCpp, cppFp)
				return errors.New("configurations out of sync")
			}
			util.ReportSuccess(out, "%s and %s share fingerprint %s",
				clioptVerilog, clioptCpp, verilogFp)
			return nil
		},
	}
	cmd.Flags().StringVar(&clioptVerilog, "verilog", "parameters.svh",
		"Generated Verilog configuration")
	cmd.Flags().StringVar(&clioptCpp, "cpp", "config.yaml",
		"Generated C++ configuration")
	return cmd
}

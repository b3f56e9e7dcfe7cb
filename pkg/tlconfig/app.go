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
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/slankdev/tlconfig/pkg/master"
	"github.com/slankdev/tlconfig/pkg/util"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use: "tlconfig",
		Short: "Generate matching Verilog and simulator configurations " +
			"for a TileLink fabric",
		SilenceUsage: true,
	}
	cmd.AddCommand(NewCommandGenerate())
	cmd.AddCommand(NewCommandList())
	cmd.AddCommand(NewCommandRoutes())
	cmd.AddCommand(NewCommandCheck())
	cmd.AddCommand(util.NewCommandVersion())
	cmd.AddCommand(util.NewCmdCompletion(cmd))
	return cmd
}

// inputFlags are shared by every command reading a master configuration.
type inputFlags struct {
	input    string
	config   string
	loglevel int
}

func (f *inputFlags) register(cmd *cobra.Command, withConfig bool) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "",
		"YAML master configuration file")
	_ = cmd.MarkFlagRequired("input")
	if withConfig {
		cmd.Flags().StringVarP(&f.config, "config", "c", "",
			"Name of configuration from input file to use")
	}
	cmd.Flags().IntVarP(&f.loglevel, "log", "l", int(zapcore.WarnLevel),
		util.LogLevelUsage)
}

func (f *inputFlags) load() (*master.File, logr.Logger, func(), error) {
	log, sync, err := util.NewLogger(f.loglevel)
	if err != nil {
		return nil, log, sync, err
	}
	file, err := master.Load(f.input)
	if err != nil {
		return nil, log, sync, err
	}
	log.V(1).Info("master configuration loaded", "path", f.input,
		"configs", len(file.Configs))
	return file, log, sync, nil
}

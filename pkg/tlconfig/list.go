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
	"strings"

	"github.com/spf13/cobra"

	"github.com/slankdev/tlconfig/pkg/util"
)

func NewCommandList() *cobra.Command {
	var clioptInput inputFlags
	var clioptNames bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available configurations from the input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			file, _, sync, err := clioptInput.load()
			defer sync()
			if err != nil {
				return err
			}

			names := file.Names()
			if clioptNames {
				fmt.Fprintln(out, strings.Join(names, " "))
				return nil
			}

			rows := [][]string{}
			for _, name := range names {
				config, err := file.Config(name)
				if err != nil {
					return err
				}
				params := []string{}
				for _, key := range config.Keys() {
					params = append(params, fmt.Sprintf("%s=%s", key, config[key]))
				}
				rows = append(rows, []string{name, strings.Join(params, " ")})
			}
			util.RenderTable(out, []string{"name", "parameters"}, rows)
			return nil
		},
	}
	clioptInput.register(cmd, false)
	cmd.Flags().BoolVar(&clioptNames, "names", false,
		"List only configuration names")
	return cmd
}

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
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/slankdev/tlconfig/pkg/synth"
	"github.com/slankdev/tlconfig/pkg/util"
)

func NewCommandRoutes() *cobra.Command {
	var clioptInput inputFlags
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Show ID ownership of each routing table and endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			file, log, sync, err := clioptInput.load()
			defer sync()
			if err != nil {
				return err
			}
			if clioptInput.config == "" {
				return errors.New("no configuration specified")
			}
			config, err := file.Config(clioptInput.config)
			if err != nil {
				return err
			}
			res, err := synth.Synthesize(config, synth.WithLogger(log))
			if err != nil {
				return errors.Wrapf(err, "configuration %s", clioptInput.config)
			}

			rows := [][]string{}
			for _, name := range synth.TableNames {
				t := res.Tables[name]
				for _, b := range t.Ownership() {
					rows = append(rows, []string{
						name,
						strconv.Itoa(t.NumIDs),
						strconv.Itoa(b.Link),
						strconv.Itoa(b.First),
						strconv.Itoa(b.Last),
					})
				}
			}
			util.RenderTable(out, []string{"table", "ids", "link", "first", "last"}, rows)
			fmt.Fprintln(out)

			rows = [][]string{}
			appendEndpoints := func(kind string, records []synth.Record) {
				for idx, r := range records {
					first, last := r.IDRange()
					rows = append(rows, []string{
						fmt.Sprintf("%s%d", kind, idx),
						strconv.Itoa(first),
						strconv.Itoa(last),
					})
				}
			}
			appendEndpoints("host", res.Hosts)
			appendEndpoints("device", res.Devices)
			util.RenderTable(out, []string{"endpoint", "first", "last"}, rows)
			return nil
		},
	}
	clioptInput.register(cmd, true)
	return cmd
}

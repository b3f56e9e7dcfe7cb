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

package util

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ReportSuccess prints a green status line to w.
func ReportSuccess(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("OK"), fmt.Sprintf(format, a...))
}

// ReportFailure prints a red status line to w.
func ReportFailure(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("FAILED"), fmt.Sprintf(format, a...))
}

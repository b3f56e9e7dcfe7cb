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

package emit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dchest/siphash"
	"github.com/pkg/errors"

	"github.com/slankdev/tlconfig/pkg/param"
)

const (
	fingerprintSeed0 uint64 = 0xdeadbabe
	fingerprintSeed1 uint64 = 0xdeadbeef

	fingerprintLabel = "Fingerprint:"
)

// Fingerprint identifies the configuration both artifacts were generated
// from.
type Fingerprint uint64

func (fp Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(fp))
}

// NewFingerprint hashes the configuration name and its parameters in key
// order.
func NewFingerprint(name string, c param.Config) Fingerprint {
	sb := strings.Builder{}
	sb.WriteString(name)
	sb.WriteByte('\n')
	for _, key := range c.Keys() {
		v := c[key]
		fmt.Fprintf(&sb, "%s %s=%s\n", key, v.Kind(), v.String())
	}
	return Fingerprint(siphash.Hash(fingerprintSeed0, fingerprintSeed1,
		[]byte(sb.String())))
}

// ReadFingerprint finds the fingerprint in the comment header of either
// artifact.
func ReadFingerprint(r io.Reader) (Fingerprint, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var body string
		switch {
		case strings.HasPrefix(line, "//"):
			body = strings.TrimSpace(strings.TrimPrefix(line, "//"))
		case strings.HasPrefix(line, "#"):
			body = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		default:
			continue
		}
		if !strings.HasPrefix(body, fingerprintLabel) {
			continue
		}
		hex := strings.TrimSpace(strings.TrimPrefix(body, fingerprintLabel))
		val, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid fingerprint %q", hex)
		}
		return Fingerprint(val), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("no fingerprint found")
}

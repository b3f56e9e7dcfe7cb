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

package routing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/slankdev/tlconfig/pkg/literal"
	"github.com/slankdev/tlconfig/pkg/param"
)

// DefaultLink owns every ID that no entry claims.
const DefaultLink = 0

// maxWidth bounds the linear ID scans.
const maxWidth = 24

// Entry routes every ID matching Base, ignoring the bits set in Mask, to
// Link.
type Entry struct {
	Base int
	Mask int
	Link int
}

func (e Entry) Matches(id int) bool {
	return id&^e.Mask == e.Base
}

// Table maps each ID in [0, NumIDs) to the link that owns it. Entries are
// ordered and the last match wins, so a coarse range may be declared first
// and narrower exceptions after it.
type Table struct {
	NumIDs  int
	Entries []Entry
}

// Block is a run of consecutive IDs owned by one link.
type Block struct {
	First int
	Last  int
	Link  int
}

// Serialized is the space separated form handed to the simulator.
type Serialized struct {
	Bases string
	Masks string
	Links string
}

func New(width int, entries ...Entry) (*Table, error) {
	if width <= 0 {
		return nil, &param.ConfigError{
			Msg: fmt.Sprintf("ID width must be positive, got %d", width)}
	}
	if width > maxWidth {
		return nil, &param.ConfigError{
			Msg: fmt.Sprintf("ID width %d exceeds the supported maximum %d",
				width, maxWidth)}
	}
	t := &Table{NumIDs: 1 << width}
	if len(entries) > 0 {
		t.Entries = make([]Entry, len(entries))
		copy(t.Entries, entries)
	}
	return t, nil
}

// Build constructs the table for one ID space (idName is "Source" or "Sink")
// as seen by one endpoint type ("Host" or "Device").
func Build(c param.Config, idName, endpointType string) (*Table, error) {
	widthKey := idName + "Width"
	width, err := param.ResolveInt(c, widthKey, endpointType, 0)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, &param.ConfigError{Key: widthKey,
			Msg: fmt.Sprintf("no positive %s found for %s", widthKey,
				endpointType)}
	}

	if _, ok := c.Lookup(idName + "Link"); !ok {
		return New(width)
	}

	bases, err := parseColumn(c, idName+"Base")
	if err != nil {
		return nil, err
	}
	masks, err := parseColumn(c, idName+"Mask")
	if err != nil {
		return nil, err
	}
	links, err := parseColumn(c, idName+"Link")
	if err != nil {
		return nil, err
	}
	if len(bases) != len(links) || len(masks) != len(links) {
		return nil, &param.ConfigError{Key: idName + "Link",
			Msg: fmt.Sprintf("routing table columns differ in length "+
				"(base=%d mask=%d link=%d)", len(bases), len(masks), len(links))}
	}

	entries := make([]Entry, len(links))
	for idx := range links {
		entries[idx] = Entry{Base: bases[idx], Mask: masks[idx], Link: links[idx]}
	}
	t, err := New(width, entries...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", widthKey)
	}
	return t, nil
}

func parseColumn(c param.Config, key string) ([]int, error) {
	v, ok := c.Lookup(key)
	if !ok {
		return nil, &param.ConfigError{Key: key,
			Msg: "routing table column is missing"}
	}
	if !v.IsSequence() {
		return nil, &param.ConfigError{Key: key,
			Msg: "routing table column must be a sequence"}
	}
	items := v.Items()
	ret := make([]int, len(items))
	for idx, item := range items {
		n, err := literal.ParseValue(item)
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", key, idx)
		}
		ret[idx] = n
	}
	return ret, nil
}

// Explicit reports whether the table was declared with entries.
func (t *Table) Explicit() bool {
	return len(t.Entries) > 0
}

// rules prepends the catch-all entry owned by DefaultLink.
func (t *Table) rules() []Entry {
	rules := make([]Entry, 0, len(t.Entries)+1)
	rules = append(rules, Entry{Base: 0, Mask: t.NumIDs - 1, Link: DefaultLink})
	return append(rules, t.Entries...)
}

// Owner returns the link that owns id.
func (t *Table) Owner(id int) int {
	return ownerOf(t.rules(), id)
}

func ownerOf(rules []Entry, id int) int {
	link := DefaultLink
	for _, e := range rules {
		if e.Matches(id) {
			link = e.Link
		}
	}
	return link
}

// IDRange returns the first block of IDs owned by link. Ownership is assumed
// to be contiguous; when a later entry splits a link's IDs, only the first
// block is reported.
func (t *Table) IDRange(link int) (int, int, error) {
	owners := t.owners()
	first := -1
	for id, owner := range owners {
		if owner == link {
			first = id
			break
		}
	}
	if first < 0 {
		return 0, 0, &param.ConfigError{
			Msg: fmt.Sprintf("no IDs belong to link %d", link)}
	}

	last := t.NumIDs - 1
	for id := first; id < t.NumIDs; id++ {
		if owners[id] != link {
			last = id - 1
			break
		}
	}
	return first, last, nil
}

func (t *Table) owners() []int {
	rules := t.rules()
	owners := make([]int, t.NumIDs)
	for id := range owners {
		owners[id] = ownerOf(rules, id)
	}
	return owners
}

// Ownership splits the whole ID space into blocks of equal ownership.
func (t *Table) Ownership() []Block {
	blocks := []Block{}
	for id, owner := range t.owners() {
		n := len(blocks)
		if n > 0 && blocks[n-1].Link == owner {
			blocks[n-1].Last = id
			continue
		}
		blocks = append(blocks, Block{First: id, Last: id, Link: owner})
	}
	return blocks
}

func (t *Table) Serialize() Serialized {
	bases := make([]string, len(t.Entries))
	masks := make([]string, len(t.Entries))
	links := make([]string, len(t.Entries))
	for idx, e := range t.Entries {
		bases[idx] = strconv.Itoa(e.Base)
		masks[idx] = strconv.Itoa(e.Mask)
		links[idx] = strconv.Itoa(e.Link)
	}
	return Serialized{
		Bases: strings.Join(bases, " "),
		Masks: strings.Join(masks, " "),
		Links: strings.Join(links, " "),
	}
}

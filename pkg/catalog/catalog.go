// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package catalog loads the condition catalogue: a plain text file that maps
// condition ids to network impairment parameters. The parser is permissive;
// lines it cannot use are dropped, not rejected.
package catalog

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Profile describes a single network condition.
type Profile struct {
	// ID is the condition identifier, unique within one catalogue.
	ID string
	// RTTMs is the round-trip latency in milliseconds.
	RTTMs float64
	// JitterMs is the latency variation in milliseconds.
	JitterMs float64
	// LossPct is the packet loss percentage.
	LossPct float64
}

// IsBaseline returns true for the all-zero "normal network" profile.
func (p Profile) IsBaseline() bool {
	return p.RTTMs == 0 && p.JitterMs == 0 && p.LossPct == 0
}

// Catalog is an immutable collection of profiles keyed by id.
// Iteration order follows the declaration order in the source.
type Catalog struct {
	ids      []string
	profiles map[string]Profile
}

// Len returns the number of conditions in the catalogue.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns the condition ids in declaration order.
// The caller owns the returned slice.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Get returns the profile registered under id.
func (c *Catalog) Get(id string) (Profile, bool) {
	profile, ok := c.profiles[id]
	return profile, ok
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open condition catalogue %q", path)
	}
	defer file.Close()

	catalog, err := Load(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load condition catalogue %q", path)
	}
	return catalog, nil
}

// Load parses a catalogue source. Each usable line holds four whitespace
// separated fields: id, RTT, jitter and loss. RTT and jitter accept an
// optional "ms" suffix, loss an optional "%" suffix. Blank lines, "#"
// comments and lines with fewer than four fields or unparsable numbers are
// skipped. Load fails when no profile at all could be collected.
func Load(source io.Reader) (*Catalog, error) {
	catalog := &Catalog{profiles: map[string]Profile{}}

	scanner := bufio.NewScanner(source)
	for scanner.Scan() {
		// Foreign line endings leave a carriage return behind.
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 4 {
			logrus.Debugf("catalog: dropping short line %q", line)
			continue
		}

		rtt, errRtt := parseMs(fields[1])
		jitter, errJitter := parseMs(fields[2])
		loss, errLoss := parsePct(fields[3])
		if errRtt != nil || errJitter != nil || errLoss != nil {
			logrus.Debugf("catalog: dropping unparsable line %q", line)
			continue
		}

		id := fields[0]
		if _, exists := catalog.profiles[id]; !exists {
			catalog.ids = append(catalog.ids, id)
		}
		catalog.profiles[id] = Profile{ID: id, RTTMs: rtt, JitterMs: jitter, LossPct: loss}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read catalogue source")
	}

	if catalog.Len() == 0 {
		return nil, errors.New("condition catalogue is empty")
	}
	return catalog, nil
}

func parseMs(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(field, "ms"), 64)
}

func parsePct(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
}

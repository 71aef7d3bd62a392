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

package experiment

import (
	"io"
	"strconv"

	"github.com/FlameF91/QoE-Linux-Net2/pkg/catalog"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/netem"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/visualization"
)

type summaryTable struct {
	table *visualization.Table
}

func newSummaryTable() *summaryTable {
	return &summaryTable{
		table: visualization.NewTable(
			[]string{"trial", "condition", "rtt (ms)", "one-way delay (ms)", "jitter (ms)", "loss (%)"}),
	}
}

func (s *summaryTable) addTrial(number int, profile catalog.Profile) {
	s.table.AddRow(
		strconv.Itoa(number),
		profile.ID,
		formatFloat(profile.RTTMs),
		formatFloat(netem.OneWayDelayMs(profile.RTTMs)),
		formatFloat(profile.JitterMs),
		formatFloat(profile.LossPct),
	)
}

func (s *summaryTable) draw(out io.Writer) {
	s.table.Draw(out)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

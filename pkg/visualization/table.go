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

// Package visualization renders experiment results for the operator.
package visualization

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table is a model for tabular data.
type Table struct {
	headers []string
	data    [][]string
}

// NewTable creates new model of data representation.
func NewTable(headers []string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one data row.
func (t *Table) AddRow(row ...string) {
	t.data = append(t.data, row)
}

// Draw renders the table with headers and data rows to out.
func (t *Table) Draw(out io.Writer) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(t.headers)
	for _, row := range t.data {
		table.Append(row)
	}
	table.Render()
}

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

package executor

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DryRun prints the commands it would run without touching the network
// stack and reports success for all of them.
type DryRun struct {
	out io.Writer
}

// NewDryRun returns a DryRun printing to stderr.
func NewDryRun() DryRun {
	return DryRun{out: os.Stderr}
}

// NewDryRunTo returns a DryRun printing to out.
func NewDryRunTo(out io.Writer) DryRun {
	return DryRun{out: out}
}

// Execute prints argv in shell trace style.
func (d DryRun) Execute(argv []string) (Result, error) {
	fmt.Fprintf(d.out, "+ %s\n", strings.Join(argv, " "))
	return Result{}, nil
}

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

// Package executor runs the external shaping commands the experiment shells
// out to. A command that started but exited non-zero is not a Go error: the
// session treats failed shaping invocations as data to log, not as reasons
// to stop, so the exit status travels in the Result.
package executor

// Result holds the outcome of one executed command.
type Result struct {
	// ExitCode is the command's exit status; zero means success.
	ExitCode int
	// Output is the combined stdout and stderr, kept verbatim as the
	// mechanism's diagnostic text.
	Output string
}

// Success returns true when the command exited cleanly.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs a single command to completion. Implementations return an
// error only when the command could not be started at all.
type Executor interface {
	Execute(argv []string) (Result, error)
}

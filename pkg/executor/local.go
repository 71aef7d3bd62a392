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
	"os/exec"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/execabs"
)

// Local executes commands on the local machine as the current user.
type Local struct {
}

// NewLocal returns a Local instance.
func NewLocal() Local {
	return Local{}
}

// Execute runs argv to completion and captures its combined output.
func (l Local) Execute(argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("no command specified")
	}

	logrus.Debug("Starting ", argv)

	cmd := execabs.Command(argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()

	result := Result{Output: string(output)}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return Result{}, errors.Wrapf(err, "could not start %q", argv[0])
		}
		result.ExitCode = exitErr.ExitCode()
	}

	logrus.Debug("Ended ", argv, " with exit code ", result.ExitCode)

	return result, nil
}

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

package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// validateOS checks the local environment to help identify potential issues.
// Note: in case of requirements not met, it only warns the user.
func validateOS() {
	if dryRunFlag.Value() {
		return
	}
	if os.Geteuid() != 0 {
		logrus.Warn("Running without root privileges. tc usually needs CAP_NET_ADMIN; shaping invocations may fail (you can rerun as root or pass --tc 'sudo tc').")
	}
}

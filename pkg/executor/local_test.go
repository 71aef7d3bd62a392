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
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// TestLocal tests the execution of commands on the local machine.
func TestLocal(t *testing.T) {
	Convey("While using the Local executor", t, func() {
		local := NewLocal()

		Convey("When a succeeding command is executed", func() {
			result, err := local.Execute([]string{"sh", "-c", "echo shaped"})

			Convey("The result should carry exit code zero and the output", func() {
				So(err, ShouldBeNil)
				So(result.Success(), ShouldBeTrue)
				So(result.Output, ShouldEqual, "shaped\n")
			})
		})

		Convey("When a failing command is executed", func() {
			result, err := local.Execute([]string{"sh", "-c", "echo broken >&2; exit 2"})

			Convey("The exit code should be data, not an error", func() {
				So(err, ShouldBeNil)
				So(result.ExitCode, ShouldEqual, 2)
				So(result.Output, ShouldContainSubstring, "broken")
			})
		})

		Convey("When the command cannot be started at all", func() {
			_, err := local.Execute([]string{"/nonexistent/tc", "qdisc"})

			Convey("An error should be returned", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When no command is given", func() {
			_, err := local.Execute(nil)

			So(err, ShouldNotBeNil)
		})
	})
}

func TestDryRun(t *testing.T) {
	Convey("While using the DryRun executor", t, func() {
		buffer := &bytes.Buffer{}
		dryRun := NewDryRunTo(buffer)

		Convey("Commands should be printed, not executed", func() {
			result, err := dryRun.Execute([]string{"tc", "qdisc", "del", "dev", "eth0", "root"})

			So(err, ShouldBeNil)
			So(result.Success(), ShouldBeTrue)
			So(buffer.String(), ShouldEqual, "+ tc qdisc del dev eth0 root\n")
		})
	})
}

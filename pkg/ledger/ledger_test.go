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

package ledger

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// ShouldMatchRegexp is a custom goconvey assertion: actual must match the
// regular expression given as the sole expected argument.
func ShouldMatchRegexp(actual interface{}, expected ...interface{}) string {
	if len(expected) != 1 {
		return "ShouldMatchRegexp takes exactly one pattern argument"
	}
	value, ok := actual.(string)
	if !ok {
		return "ShouldMatchRegexp requires a string actual value"
	}
	pattern, ok := expected[0].(string)
	if !ok {
		return "ShouldMatchRegexp requires a string pattern"
	}
	matched, err := regexp.MatchString(pattern, value)
	if err != nil {
		return err.Error()
	}
	if !matched {
		return "Expected " + strconv.Quote(value) + " to match regexp " + strconv.Quote(pattern) + " (but it didn't)!"
	}
	return ""
}

func TestAppend(t *testing.T) {
	Convey("While appending to a ledger", t, func() {
		path := filepath.Join(t.TempDir(), "experiment.log")
		testLedger := New(path)
		testLedger.now = func() time.Time {
			return time.Date(2017, 3, 14, 15, 9, 26, 0, time.Local)
		}

		Convey("When the ledger file does not exist yet", func() {
			err := testLedger.Append("session started")

			Convey("Append should create it and write one timestamped line", func() {
				So(err, ShouldBeNil)

				content, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(content), ShouldEqual, "[2017-03-14 15:09:26] session started\n")
			})
		})

		Convey("When appending multiple events", func() {
			So(testLedger.Append("first"), ShouldBeNil)
			So(testLedger.Appendf("trial %d of %d", 2, 7), ShouldBeNil)

			Convey("Lines should accumulate in order", func() {
				content, err := os.ReadFile(path)
				So(err, ShouldBeNil)

				lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
				So(lines, ShouldHaveLength, 2)
				So(lines[0], ShouldEndWith, "first")
				So(lines[1], ShouldEndWith, "trial 2 of 7")
			})
		})

		Convey("Every line should carry the bracketed timestamp prefix", func() {
			So(testLedger.Append("anything"), ShouldBeNil)

			content, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(content), ShouldMatchRegexp,
				regexp.QuoteMeta("[2017-03-14 15:09:26] ")+"anything\n")
		})
	})
}

func TestCurrentGroupNumber(t *testing.T) {
	Convey("While recovering the group number from a ledger", t, func() {
		path := filepath.Join(t.TempDir(), "experiment.log")
		testLedger := New(path)

		Convey("A missing ledger file should yield group 1", func() {
			group, err := testLedger.CurrentGroupNumber()

			So(err, ShouldBeNil)
			So(group, ShouldEqual, 1)
		})

		Convey("Each completion marker should advance the group number", func() {
			So(testLedger.Append(CompletionMarker), ShouldBeNil)
			So(testLedger.Append(CompletionMarker), ShouldBeNil)

			group, err := testLedger.CurrentGroupNumber()
			So(err, ShouldBeNil)
			So(group, ShouldEqual, 3)
		})

		Convey("Non-matching lines should not advance the group number", func() {
			So(testLedger.Append(CompletionMarker), ShouldBeNil)
			So(testLedger.Append("trial 1: condition C02 applied"), ShouldBeNil)
			So(testLedger.Append(InterruptionMarker), ShouldBeNil)

			group, err := testLedger.CurrentGroupNumber()
			So(err, ShouldBeNil)
			So(group, ShouldEqual, 2)
		})
	})
}

func TestMarkers(t *testing.T) {
	Convey("The interruption marker must never match the completion marker", t, func() {
		So(strings.Contains(InterruptionMarker, CompletionMarker), ShouldBeFalse)
	})
}

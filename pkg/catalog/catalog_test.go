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

package catalog

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("While loading a condition catalogue", t, func() {
		Convey("When the source holds well-formed lines", func() {
			source := strings.NewReader(`
# reference conditions
C01 0 0 0
C02 100ms 10ms 2%
C03 50 5 0
`)
			catalog, err := Load(source)

			Convey("All well-formed lines should become profiles", func() {
				So(err, ShouldBeNil)
				So(catalog.Len(), ShouldEqual, 3)
			})

			Convey("Declaration order should be preserved", func() {
				So(catalog.IDs(), ShouldResemble, []string{"C01", "C02", "C03"})
			})

			Convey("Suffixes should be stripped before parsing", func() {
				profile, ok := catalog.Get("C02")
				So(ok, ShouldBeTrue)
				So(profile.RTTMs, ShouldEqual, 100)
				So(profile.JitterMs, ShouldEqual, 10)
				So(profile.LossPct, ShouldEqual, 2)
			})

			Convey("The all-zero profile should report itself as baseline", func() {
				profile, _ := catalog.Get("C01")
				So(profile.IsBaseline(), ShouldBeTrue)

				impaired, _ := catalog.Get("C02")
				So(impaired.IsBaseline(), ShouldBeFalse)
			})
		})

		Convey("When the source mixes comments, blanks and malformed lines", func() {
			source := strings.NewReader(
				"# comment\n" +
					"\n" +
					"   \t \n" +
					"   # indented comment\n" +
					"SHORT 10 5\n" +
					"BAD ten 5 0\n" +
					"OK 10ms 5ms 1%\n")
			catalog, err := Load(source)

			Convey("Only the well-formed line should be collected", func() {
				So(err, ShouldBeNil)
				So(catalog.Len(), ShouldEqual, 1)
				So(catalog.IDs(), ShouldResemble, []string{"OK"})
			})
		})

		Convey("When the source uses CRLF line endings", func() {
			catalog, err := Load(strings.NewReader("C01 10ms 2ms 1%\r\nC02 20ms 4ms 2%\r\n"))

			So(err, ShouldBeNil)
			So(catalog.Len(), ShouldEqual, 2)

			profile, ok := catalog.Get("C02")
			So(ok, ShouldBeTrue)
			So(profile.RTTMs, ShouldEqual, 20)
		})

		Convey("When an id is declared twice", func() {
			catalog, err := Load(strings.NewReader("C01 10 1 0\nC01 20 2 1\n"))

			Convey("The later parameters should win but the position stays", func() {
				So(err, ShouldBeNil)
				So(catalog.Len(), ShouldEqual, 1)

				profile, _ := catalog.Get("C01")
				So(profile.RTTMs, ShouldEqual, 20)
				So(profile.LossPct, ShouldEqual, 1)
			})
		})

		Convey("When no line is usable", func() {
			_, err := Load(strings.NewReader("# only comments\n\n"))

			Convey("Load should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("While loading a catalogue from a missing file", t, func() {
		_, err := LoadFile("/nonexistent/conditions.conf")

		Convey("LoadFile should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

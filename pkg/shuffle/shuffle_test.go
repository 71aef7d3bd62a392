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

package shuffle

import (
	"math/rand"
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOrder(t *testing.T) {
	Convey("While shuffling condition ids", t, func() {
		ids := []string{"C01", "C02", "C03", "C04", "C05"}

		Convey("The output should be a bijection of the input", func() {
			for seed := int64(0); seed < 50; seed++ {
				order := Order(ids, rand.New(rand.NewSource(seed)))
				So(order, ShouldHaveLength, len(ids))

				sorted := make([]string, len(order))
				copy(sorted, order)
				sort.Strings(sorted)
				So(sorted, ShouldResemble, ids)
			}
		})

		Convey("The input slice should never be mutated", func() {
			Order(ids, rand.New(rand.NewSource(42)))
			So(ids, ShouldResemble, []string{"C01", "C02", "C03", "C04", "C05"})
		})

		Convey("A seeded source should make the order reproducible", func() {
			first := Order(ids, rand.New(rand.NewSource(42)))
			second := Order(ids, rand.New(rand.NewSource(42)))
			So(first, ShouldResemble, second)
		})

		Convey("Different seeds should cover different positions", func() {
			// With 50 samples over 5 ids every position should see more
			// than one distinct id; a broken shuffle keeps them fixed.
			firstPosition := map[string]struct{}{}
			for seed := int64(0); seed < 50; seed++ {
				order := Order(ids, rand.New(rand.NewSource(seed)))
				firstPosition[order[0]] = struct{}{}
			}
			So(len(firstPosition), ShouldBeGreaterThan, 1)
		})

		Convey("A nil rng should still produce a valid permutation", func() {
			order := Order(ids, nil)
			sorted := make([]string, len(order))
			copy(sorted, order)
			sort.Strings(sorted)
			So(sorted, ShouldResemble, ids)
		})

		Convey("An empty input should yield an empty order", func() {
			So(Order(nil, nil), ShouldHaveLength, 0)
		})
	})
}

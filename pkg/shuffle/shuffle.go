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

// Package shuffle produces the randomized trial order for one experiment
// group.
package shuffle

import "math/rand"

// Order returns a uniform random permutation of ids, produced with
// Fisher-Yates over a copy. The input slice is never mutated. A nil rng
// falls back to the shared math/rand source; passing a seeded rng makes the
// order reproducible.
func Order(ids []string, rng *rand.Rand) []string {
	order := make([]string, len(ids))
	copy(order, ids)

	swap := func(i, j int) {
		order[i], order[j] = order[j], order[i]
	}
	if rng != nil {
		rng.Shuffle(len(order), swap)
	} else {
		rand.Shuffle(len(order), swap)
	}
	return order
}

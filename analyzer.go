// Copyright 2025 The Waymount Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package waymount

import "sort"

// observation records, for one route, which parameter keys constrain it
// and the statically known value per key (absent for keys whose value is
// only decidable at generation time).
type observation struct {
	keys   map[string]bool
	values map[string]string
}

// keyAnalyzer observes per-route key constraints at registration time and
// derives the globally ordered generation-key sequence. It is a two-phase
// builder: consumed once when the generation graph is built, then dropped.
type keyAnalyzer struct {
	observations []observation
	order        []string // first-observation order of keys
	seen         map[string]bool
}

func newKeyAnalyzer() *keyAnalyzer {
	return &keyAnalyzer{seen: make(map[string]bool)}
}

// observe records one route's key constraints. keys lists every key the
// route constrains; values carries the statically known subset.
func (a *keyAnalyzer) observe(keys []string, values map[string]string) {
	obs := observation{
		keys:   make(map[string]bool, len(keys)),
		values: values,
	}
	for _, k := range keys {
		obs.keys[k] = true
		if !a.seen[k] {
			a.seen[k] = true
			a.order = append(a.order, k)
		}
	}
	a.observations = append(a.observations, obs)
}

// report derives the ordered generation-key sequence by discriminating
// power: primary score is how many routes the key constrains, secondary is
// how many distinct statically known values it takes, and ties break by
// first-observation order. The determinism matters because the generation
// graph's shape depends on the ordering.
func (a *keyAnalyzer) report() []string {
	count := make(map[string]int, len(a.order))
	distinct := make(map[string]map[string]bool, len(a.order))
	for _, obs := range a.observations {
		for k := range obs.keys {
			count[k]++
			if v, ok := obs.values[k]; ok {
				if distinct[k] == nil {
					distinct[k] = make(map[string]bool)
				}
				distinct[k][v] = true
			}
		}
	}

	rank := make(map[string]int, len(a.order))
	for i, k := range a.order {
		rank[k] = i
	}

	keys := make([]string, 0, len(a.order))
	for _, k := range a.order {
		if count[k] > 0 {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		if count[ki] != count[kj] {
			return count[ki] > count[kj]
		}
		if li, lj := len(distinct[ki]), len(distinct[kj]); li != lj {
			return li > lj
		}
		return rank[ki] < rank[kj]
	})
	return keys
}

// expire clears observed state so routes can re-register from scratch on a
// rebuild.
func (a *keyAnalyzer) expire() {
	a.observations = nil
	a.order = nil
	a.seen = make(map[string]bool)
}

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

import "github.com/waymount/waymount/route"

// graphNode is one level of the generation graph: a map over the values of
// a single discriminating key. Routes whose value for the key is not
// statically decidable sit in the wildcard bucket and are mirrored into
// every concrete bucket, so a lookup never misses a route that could match.
type graphNode struct {
	key      string
	edges    map[string]*graphNode
	wildcard *graphNode
	routes   []*route.Route // leaf level only
}

// buildGraph builds the nested generation graph over the ordered key list.
// values[i] is the statically known value table for routes[i]. Registration
// order is preserved at the leaves.
func buildGraph(routes []*route.Route, values []map[string]string, keys []string) *graphNode {
	n := &graphNode{}
	if len(keys) == 0 {
		n.routes = append(n.routes, routes...)
		return n
	}

	n.key = keys[0]
	n.edges = make(map[string]*graphNode)
	rest := keys[1:]

	// Bucket routes one at a time so wildcard seeding sees only earlier
	// registrations, mirroring insertion order in every bucket.
	buckets := make(map[string][]int)
	var wild []int
	var order []string
	for i := range routes {
		v, ok := values[i][n.key]
		if !ok {
			wild = append(wild, i)
			for _, bk := range order {
				buckets[bk] = append(buckets[bk], i)
			}
			continue
		}
		if _, exists := buckets[v]; !exists {
			// New concrete bucket inherits every wildcard route seen so far.
			buckets[v] = append(buckets[v], wild...)
			order = append(order, v)
		}
		buckets[v] = append(buckets[v], i)
	}

	for _, v := range order {
		n.edges[v] = buildSub(routes, values, rest, buckets[v])
	}
	n.wildcard = buildSub(routes, values, rest, wild)
	return n
}

func buildSub(routes []*route.Route, values []map[string]string, keys []string, idx []int) *graphNode {
	sub := make([]*route.Route, len(idx))
	subValues := make([]map[string]string, len(idx))
	for j, i := range idx {
		sub[j] = routes[i]
		subValues[j] = values[i]
	}
	return buildGraph(sub, subValues, keys)
}

// lookup descends the graph using the supplied value function: at each
// level it follows the concrete edge for the key's value when one exists,
// falling back to the wildcard branch otherwise. Returns candidate routes
// in registration order.
func (n *graphNode) lookup(value func(key string) (string, bool)) []*route.Route {
	for n.edges != nil {
		v, ok := value(n.key)
		if ok {
			if next, exists := n.edges[v]; exists {
				n = next
				continue
			}
		}
		n = n.wildcard
	}
	return n.routes
}

// height reports the number of key levels, for diagnostics.
func (n *graphNode) height() int {
	h := 0
	for n.edges != nil {
		h++
		n = n.wildcard
	}
	return h
}

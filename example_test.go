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

package waymount_test

import (
	"fmt"

	"github.com/waymount/waymount"
)

func ExampleRouteSet_Generate() {
	rs := waymount.NewRouteSet()
	rs.MustAddRoute(waymount.Define("GET", "/people/:id(.:format)").
		Named("person").
		Where("id", `\d+`).
		Default("format", "html"))
	rs.Rehash()

	path, _, _ := rs.Generate("GET", "person", map[string]string{"id": "7"}, nil)
	fmt.Println(path)

	path, _, _ = rs.Generate("GET", "person", map[string]string{"id": "7", "format": "json"}, nil)
	fmt.Println(path)

	// Output:
	// /people/7
	// /people/7.json
}

func ExampleRouteSet_URL() {
	rs := waymount.NewRouteSet()
	rs.MustAddRoute(waymount.Define("GET", "/dashboard").Named("dashboard"))
	rs.Rehash()

	req := waymount.Request{
		RequestScheme: "http",
		RequestHost:   "example.com",
		RequestPort:   80,
	}
	url, _ := rs.URL(req, "dashboard", nil, waymount.URLOptions{FullURL: true})
	fmt.Println(url)

	// Output:
	// http://example.com/dashboard
}

func ExampleRouteSet_Generate_search() {
	rs := waymount.NewRouteSet()
	rs.MustAddRoute(waymount.Define("GET", "/people/:id").
		Default("controller", "people").Default("action", "show"))
	rs.MustAddRoute(waymount.Define("GET", "/people/:id/edit").
		Default("controller", "people").Default("action", "edit"))
	rs.Rehash()

	path, _, _ := rs.Generate("GET", "", map[string]string{
		"controller": "people", "action": "edit", "id": "1",
	}, nil)
	fmt.Println(path)

	// Output:
	// /people/1/edit
}

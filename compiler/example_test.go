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

package compiler_test

import (
	"fmt"

	"github.com/waymount/waymount/compiler"
)

func ExampleCompile() {
	p, err := compiler.Compile("/people/:id(.:format)", map[string]string{"id": `\d+`})
	if err != nil {
		panic(err)
	}

	params, _ := p.Match("/people/42.json")
	fmt.Println(params["id"], params["format"])
	// Output: 42 json
}

func ExampleStaticSegments() {
	p := compiler.MustCompile("/admin/people/:id", nil)
	fmt.Println(compiler.StaticSegments(p.Regexp()))
	// Output: [admin people]
}

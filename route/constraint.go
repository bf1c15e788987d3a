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

package route

import (
	"fmt"
	"regexp"
	"strings"
)

// Requirements maps parameter names to requirement regex sources. They are
// applied during pattern compilation, not at generation time; the compiled
// pattern keeps the anchored form for generation-time re-validation.
//
// The Where methods provide a fluent interface mirroring common constraint
// kinds:
//
//	route.Requirements{}.WhereInt("id").Where("slug", `[a-z-]+`)
type Requirements map[string]string

// Where sets a raw regex requirement for a parameter.
func (r Requirements) Where(param, pattern string) Requirements {
	r[param] = pattern
	return r
}

// WhereInt requires the parameter to be one or more digits.
func (r Requirements) WhereInt(param string) Requirements {
	r[param] = `\d+`
	return r
}

// WhereFloat requires the parameter to be a floating-point number.
func (r Requirements) WhereFloat(param string) Requirements {
	r[param] = `-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`
	return r
}

// WhereUUID requires the parameter to be a valid UUID.
func (r Requirements) WhereUUID(param string) Requirements {
	r[param] = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}`
	return r
}

// WhereEnum requires the parameter to match one of the provided values.
func (r Requirements) WhereEnum(param string, values ...string) Requirements {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, regexp.QuoteMeta(v))
	}
	r[param] = "(?:" + strings.Join(escaped, "|") + ")"
	return r
}

// WhereDate requires the parameter to be an RFC 3339 full-date.
func (r Requirements) WhereDate(param string) Requirements {
	r[param] = `\d{4}-\d{2}-\d{2}`
	return r
}

// Validate checks that every requirement compiles as a regular expression.
// Pattern compilation performs the same check; Validate allows callers to
// fail early when requirements come from configuration.
func (r Requirements) Validate() error {
	for param, pattern := range r {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("requirement for %q: %w", param, err)
		}
	}
	return nil
}

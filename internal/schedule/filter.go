/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package schedule

import (
	"strings"

	"toshoot/internal/domain"
)

// FilterAll is the field name that disables filtering.
const FilterAll = "all"

// Filter narrows the visible scene list of the active sequence. Field names a
// scene field (or FilterAll); Value is matched as a case-insensitive substring.
// The zero value passes every scene.
type Filter struct {
	Field string
	Value string
}

// AllFilter is the default, pass-everything filter.
func AllFilter() Filter {
	return Filter{Field: FilterAll}
}

// IsAll reports whether the filter passes every scene: the all field, an empty
// field, or a blank value all mean "no filtering".
func (f Filter) IsAll() bool {
	return f.Field == "" || f.Field == FilterAll || strings.TrimSpace(f.Value) == ""
}

// Matches reports whether the scene passes the filter. Scenes lacking the
// filtered field are excluded rather than treated as matching.
func (f Filter) Matches(sc domain.Scene) bool {
	if f.IsAll() {
		return true
	}
	v, ok := sc.FieldValue(f.Field)
	if !ok {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.Value))
	return strings.Contains(strings.ToLower(v), needle)
}

// FilterScenes returns the scenes passing the filter, preserving order.
// The result is a fresh slice; the input is never mutated.
func FilterScenes(scenes []domain.Scene, f Filter) []domain.Scene {
	out := make([]domain.Scene, 0, len(scenes))
	for _, sc := range scenes {
		if f.Matches(sc) {
			out = append(out, sc)
		}
	}
	return out
}

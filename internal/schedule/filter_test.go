/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package schedule

import (
	"testing"

	"toshoot/internal/domain"
)

var filterScenes = []domain.Scene{
	{ID: 1, Heading: "Rooftop chase", Location: "Docklands", Status: "Done"},
	{ID: 2, Heading: "Alley escape", Location: "Old Town", Status: "Pending"},
	{ID: 3, Heading: "Harbor standoff", Location: "docklands pier", Status: "NOT SHOT"},
}

func TestFilterAllPassesEverything(t *testing.T) {
	for _, f := range []Filter{
		AllFilter(),
		{},
		{Field: "all", Value: "ignored"},
		{Field: "status", Value: "   "},
	} {
		got := FilterScenes(filterScenes, f)
		if len(got) != len(filterScenes) {
			t.Errorf("filter %+v should pass all, got %d", f, len(got))
		}
	}
}

func TestFilterSubstringCaseInsensitive(t *testing.T) {
	got := FilterScenes(filterScenes, Filter{Field: "location", Value: "DOCK"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("got %+v", got)
	}

	got = FilterScenes(filterScenes, Filter{Field: "status", Value: "done"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestFilterUnknownFieldMatchesNothing(t *testing.T) {
	got := FilterScenes(filterScenes, Filter{Field: "director", Value: "x"})
	if len(got) != 0 {
		t.Fatalf("unknown field must exclude all scenes, got %d", len(got))
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	in := append([]domain.Scene(nil), filterScenes...)
	got := FilterScenes(in, Filter{Field: "heading", Value: "a"})
	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Fatalf("order not preserved: %+v", got)
		}
	}
	if len(in) != len(filterScenes) {
		t.Fatal("input mutated")
	}
}

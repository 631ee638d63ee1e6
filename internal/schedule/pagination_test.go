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

func makeScenes(n int) []domain.Scene {
	scenes := make([]domain.Scene, n)
	for i := range scenes {
		scenes[i] = domain.Scene{ID: int64(i + 1)}
	}
	return scenes
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{0, 1}, {1, 1}, {10, 1}, {11, 2}, {20, 2}, {21, 3},
	}
	for _, c := range cases {
		if got := TotalPages(c.n, ScenesPerPage); got != c.want {
			t.Errorf("TotalPages(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestPageSliceClamping(t *testing.T) {
	scenes := makeScenes(25)
	if got := PageSlice(scenes, 0, ScenesPerPage); got[0].ID != 1 {
		t.Fatalf("page 0 should clamp to first page: %+v", got[0])
	}
	if got := PageSlice(scenes, 99, ScenesPerPage); got[0].ID != 21 {
		t.Fatalf("overshoot should clamp to last page: %+v", got[0])
	}
	if got := PageSlice(scenes, 3, ScenesPerPage); len(got) != 5 {
		t.Fatalf("last page should hold the remainder, got %d", len(got))
	}
}

func TestPagesPartitionWithoutOverlap(t *testing.T) {
	scenes := makeScenes(37)
	total := TotalPages(len(scenes), ScenesPerPage)
	seen := make(map[int64]bool)
	var reassembled []domain.Scene
	for page := 1; page <= total; page++ {
		for _, sc := range PageSlice(scenes, page, ScenesPerPage) {
			if seen[sc.ID] {
				t.Fatalf("scene %d appears on two pages", sc.ID)
			}
			seen[sc.ID] = true
			reassembled = append(reassembled, sc)
		}
	}
	if len(reassembled) != len(scenes) {
		t.Fatalf("pages lose scenes: %d of %d", len(reassembled), len(scenes))
	}
	for i, sc := range reassembled {
		if sc.ID != scenes[i].ID {
			t.Fatalf("pages reorder scenes at %d", i)
		}
	}
}

func TestPageSliceEmptyList(t *testing.T) {
	got := PageSlice(nil, 1, ScenesPerPage)
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %d", len(got))
	}
}

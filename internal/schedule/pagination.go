/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package schedule

import "toshoot/internal/domain"

// ScenesPerPage is the fixed page size of the schedule table.
const ScenesPerPage = 10

// TotalPages returns the page count for n scenes. An empty list still has one
// (empty) page so the pager always shows something sensible.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = ScenesPerPage
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage snaps a requested 1-based page number into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageSlice returns the 1-based page of the scene list. Out-of-range pages are
// clamped, never an error; pages partition the input without overlap or gaps.
func PageSlice(scenes []domain.Scene, page, pageSize int) []domain.Scene {
	if pageSize <= 0 {
		pageSize = ScenesPerPage
	}
	page = ClampPage(page, TotalPages(len(scenes), pageSize))
	start := (page - 1) * pageSize
	if start >= len(scenes) {
		return []domain.Scene{}
	}
	end := start + pageSize
	if end > len(scenes) {
		end = len(scenes)
	}
	return scenes[start:end]
}

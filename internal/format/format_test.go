/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package format

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTime12Hour(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"00:15", "12:15 AM"},
		{"09:30", "9:30 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "1:05 PM"},
		{"23:59", "11:59 PM"},
		{"", "N/A"},
		{"garbage", "N/A"},
		{"25:00", "N/A"},
	}
	for _, c := range cases {
		if got := Time12Hour(c.in); got != c.want {
			t.Errorf("Time12Hour(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDateDDMMYYYY(t *testing.T) {
	if got := DateDDMMYYYY("2026-08-29"); got != "29/08/2026" {
		t.Fatalf("got %q", got)
	}
	if got := DateDDMMYYYY(""); got != "N/A" {
		t.Fatalf("empty date: got %q", got)
	}
	// Not ISO shaped, keep as-is rather than guessing
	if got := DateDDMMYYYY("next tuesday"); got != "next tuesday" {
		t.Fatalf("passthrough: got %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName("My Film: Part 2!"); got != "My_Film__Part_2_" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeFileName("Clean123"); got != "Clean123" {
		t.Fatalf("got %q", got)
	}
}

func TestSafeSheetName(t *testing.T) {
	if got := SafeSheetName("Day 1: INT/EXT [draft]?*"); got != "Day 1 INTEXT draft" {
		t.Fatalf("got %q", got)
	}
	long := SafeSheetName("aaaaaaaaaabbbbbbbbbbccccccccccdddddddddd")
	if len(long) != 31 {
		t.Fatalf("expected 31-char cap, got %d", len(long))
	}
}

func TestSafeSheetNameCapsOnRunes(t *testing.T) {
	wide := SafeSheetName(strings.Repeat("場", 40))
	if got := utf8.RuneCountInString(wide); got != 31 {
		t.Fatalf("expected 31 runes, got %d", got)
	}
	if !utf8.ValidString(wide) {
		t.Fatalf("truncation produced invalid UTF-8: %q", wide)
	}
}

func TestOrNA(t *testing.T) {
	if got := OrNA("  "); got != "N/A" {
		t.Fatalf("got %q", got)
	}
	if got := OrNA("x"); got != "x" {
		t.Fatalf("got %q", got)
	}
}

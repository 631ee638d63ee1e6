/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package format holds the display formatting shared by the CLI and the
// exporters: stored values are ISO dates and 24-hour times, displayed values
// are DD/MM/YYYY and 12-hour with AM/PM.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Time12Hour renders a stored HH:MM value as 12-hour with AM/PM suffix.
// Empty or unparseable input renders as "N/A".
func Time12Hour(t string) string {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return "N/A"
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "N/A"
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, mm, ampm)
}

// DateDDMMYYYY renders a stored YYYY-MM-DD value as DD/MM/YYYY. Values
// without a dash pass through unchanged; empty renders as "N/A".
func DateDDMMYYYY(d string) string {
	if d == "" {
		return "N/A"
	}
	parts := strings.SplitN(d, "-", 3)
	if len(parts) != 3 {
		return d
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// OrNA substitutes "N/A" for an empty value.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// SanitizeFileName replaces every non-alphanumeric character with an
// underscore, per the .filmproj filename convention.
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SafeSheetName strips the characters Excel forbids in worksheet names and
// caps the result at the 31-character sheet name limit.
func SafeSheetName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', '?', '*', ':', '[', ']':
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	// The limit counts characters, and cutting bytes could split a rune.
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}

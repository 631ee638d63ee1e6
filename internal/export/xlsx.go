/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"toshoot/internal/domain"
	"toshoot/internal/format"
)

// sheetColumns is the schedule table header, one sheet column per scene field.
var sheetColumns = []string{
	"Scene #", "Scene Heading", "Date", "Time", "Type", "Location",
	"Pages", "Duration", "Status", "Cast", "Key Equipment", "Contact",
}

const (
	headerRow      = 7 // table header; data starts on the next row
	minColWidth    = 12
	maxColWidth    = 50
	untitledName   = "Schedule"
	sheetNameLimit = 31
)

// ExportProjectXLSX writes one worksheet per sequence that has scenes. The
// workbook lands at outPath; sequences without scenes are skipped, and a
// project with no scenes at all is an error rather than an empty file.
func ExportProjectXLSX(p domain.Project, outPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	used := map[string]bool{}
	wrote := 0
	for _, it := range p.PanelItems {
		seq, ok := it.(*domain.Sequence)
		if !ok || len(seq.Scenes) == 0 {
			continue
		}
		if err := writeSequenceSheet(f, p, seq, seq.Scenes, uniqueSheetName(used, seq.Name)); err != nil {
			return err
		}
		wrote++
	}
	if wrote == 0 {
		return fmt.Errorf("project has no scenes to export")
	}
	return saveWorkbook(f, outPath)
}

// ExportSequenceXLSX writes a single worksheet for one sequence. The scene
// list is passed explicitly so callers can export a filtered view.
func ExportSequenceXLSX(p domain.Project, seq *domain.Sequence, scenes []domain.Scene, outPath string) error {
	if seq == nil {
		return fmt.Errorf("no sequence to export")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := writeSequenceSheet(f, p, seq, scenes, uniqueSheetName(map[string]bool{}, seq.Name)); err != nil {
		return err
	}
	return saveWorkbook(f, outPath)
}

// uniqueSheetName sanitizes a sequence name into a worksheet name and
// disambiguates repeats with a numeric suffix, trimming the base so the
// result stays within the sheet name limit. Sequence names are free text and
// may collide, or sanitize down to nothing.
func uniqueSheetName(used map[string]bool, seqName string) string {
	base := format.SafeSheetName(seqName)
	if base == "" {
		base = untitledName
	}
	name := base
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(base)
		if len(runes)+len(suffix) > sheetNameLimit {
			runes = runes[:sheetNameLimit-len(suffix)]
		}
		name = string(runes) + suffix
	}
	used[name] = true
	return name
}

// writeSequenceSheet lays out one sequence: production header block, schedule
// break and sequence title lines, then the scene table.
func writeSequenceSheet(f *excelize.File, p domain.Project, seq *domain.Sequence, scenes []domain.Scene, name string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}

	info := p.ProjectInfo
	set := func(cell string, v any) error {
		if err := f.SetCellValue(name, cell, v); err != nil {
			return fmt.Errorf("sheet %q cell %s: %w", name, cell, err)
		}
		return nil
	}

	header := []struct {
		cell  string
		value string
	}{
		{"A1", "Production:"}, {"B1", format.OrNA(info.ProdName)},
		{"D1", "Director:"}, {"E1", format.OrNA(info.DirectorName)},
		{"A2", "Contact:"}, {"B2", format.OrNA(info.ContactNumber)},
		{"D2", "Email:"}, {"E2", format.OrNA(info.ContactEmail)},
		{"A4", "Schedule Break: " + p.BreakLabelFor(seq.ID)},
		{"A5", "Sequence: " + seq.Name},
	}
	for _, h := range header {
		if err := set(h.cell, h.value); err != nil {
			return err
		}
	}
	merges := [][2]string{
		{"B1", "C1"}, {"E1", "L1"},
		{"B2", "C2"}, {"E2", "L2"},
		{"A4", "L4"}, {"A5", "L5"},
	}
	for _, m := range merges {
		if err := f.MergeCell(name, m[0], m[1]); err != nil {
			return fmt.Errorf("sheet %q merge %s:%s: %w", name, m[0], m[1], err)
		}
	}

	widths := make([]int, len(sheetColumns))
	for i, col := range sheetColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := set(cell, col); err != nil {
			return err
		}
		widths[i] = len(col)
	}

	for r, sc := range scenes {
		row := sceneRow(sc)
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err := set(cell, v); err != nil {
				return err
			}
			if len(v) > widths[c] {
				widths[c] = len(v)
			}
		}
	}

	for i, w := range widths {
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, float64(w+2)); err != nil {
			return fmt.Errorf("sheet %q column %s width: %w", name, col, err)
		}
	}
	return nil
}

// sceneRow renders one scene into the 12 table columns with display
// formatting applied (DD/MM/YYYY dates, 12-hour times, N/A placeholders).
func sceneRow(sc domain.Scene) []string {
	return []string{
		format.OrNA(sc.Number),
		format.OrNA(sc.Heading),
		format.OrNA(format.DateDDMMYYYY(sc.Date)),
		format.OrNA(format.Time12Hour(sc.Time)),
		format.OrNA(sc.Type),
		format.OrNA(sc.Location),
		format.OrNA(sc.Pages),
		format.OrNA(sc.Duration),
		format.OrNA(sc.Status),
		format.OrNA(sc.Cast),
		format.OrNA(sc.Equipment),
		format.OrNA(sc.Contact),
	}
}

// saveWorkbook drops the default empty sheet and writes the file.
func saveWorkbook(f *excelize.File, outPath string) error {
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

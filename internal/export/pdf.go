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

	"github.com/jung-kurt/gofpdf"
	"toshoot/internal/domain"
	"toshoot/internal/format"
)

// callSheetColumns is the condensed column set that fits a landscape A4 call
// sheet; the full field set stays in the XLSX export.
var callSheetColumns = []struct {
	title string
	width float64 // mm
}{
	{"Scene #", 20},
	{"Heading", 62},
	{"Date", 24},
	{"Time", 22},
	{"Type", 16},
	{"Location", 48},
	{"Status", 24},
	{"Cast", 61},
}

// ExportCallSheetPDF renders each sequence that has scenes as one call-sheet
// page: production header, day and sequence line, then the scene table.
// Built-in Helvetica keeps text vector without embedding.
func ExportCallSheetPDF(p domain.Project, outPath string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s — Call Sheets", displayProdName(p.ProjectInfo)), true)
	pdf.SetAuthor("ToShooT", false)
	pdf.SetAutoPageBreak(true, 12)

	wrote := 0
	for _, it := range p.PanelItems {
		seq, ok := it.(*domain.Sequence)
		if !ok || len(seq.Scenes) == 0 {
			continue
		}
		writeCallSheetPage(pdf, p, seq, seq.Scenes)
		wrote++
	}
	if wrote == 0 {
		return fmt.Errorf("project has no scenes to export")
	}
	return savePDF(pdf, outPath)
}

// ExportSequencePDF renders a single sequence, with an explicit scene list so
// a filtered view can be printed.
func ExportSequencePDF(p domain.Project, seq *domain.Sequence, scenes []domain.Scene, outPath string) error {
	if seq == nil {
		return fmt.Errorf("no sequence to export")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s — %s", displayProdName(p.ProjectInfo), seq.Name), true)
	pdf.SetAuthor("ToShooT", false)
	pdf.SetAutoPageBreak(true, 12)
	writeCallSheetPage(pdf, p, seq, scenes)
	return savePDF(pdf, outPath)
}

func writeCallSheetPage(pdf *gofpdf.Fpdf, p domain.Project, seq *domain.Sequence, scenes []domain.Scene) {
	info := p.ProjectInfo
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, displayProdName(info), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5.5, "Director: "+format.OrNA(info.DirectorName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5.5,
		fmt.Sprintf("Contact: %s   Email: %s", format.OrNA(info.ContactNumber), format.OrNA(info.ContactEmail)),
		"", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Schedule Break: "+p.BreakLabelFor(seq.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Sequence: "+seq.Name, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range callSheetColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, sc := range scenes {
		cells := []string{
			format.OrNA(sc.Number),
			format.OrNA(sc.Heading),
			format.OrNA(format.DateDDMMYYYY(sc.Date)),
			format.OrNA(format.Time12Hour(sc.Time)),
			format.OrNA(sc.Type),
			format.OrNA(sc.Location),
			format.OrNA(sc.Status),
			format.OrNA(sc.Cast),
		}
		for i, col := range callSheetColumns {
			pdf.CellFormat(col.width, 6.5, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func displayProdName(info domain.ProjectInfo) string {
	if info.ProdName == "" {
		return "Untitled Production"
	}
	return info.ProdName
}

func savePDF(pdf *gofpdf.Fpdf, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

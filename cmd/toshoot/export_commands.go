/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"toshoot/internal/export"
	"toshoot/internal/format"
	"toshoot/internal/share"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export schedules as XLSX, PDF or share cards",
	}

	var xlsxOut string
	var xlsxActive bool
	xlsxCmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write the schedule as an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			proj := p.Project()
			path := xlsxOut
			if path == "" {
				base := format.SanitizeFileName(displayBase(proj.ProjectInfo.ProdName))
				path = filepath.Join(ctx.artifactsDir(), base+".xlsx")
			}
			if xlsxActive {
				seq := p.ActiveSequence()
				if seq == nil {
					return fmt.Errorf("no active sequence")
				}
				err = export.ExportSequenceXLSX(*proj, seq, p.VisibleScenes(), path)
			} else {
				err = export.ExportProjectXLSX(*proj, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	xlsxCmd.Flags().StringVarP(&xlsxOut, "out", "o", "", "Output path (defaults to the artifacts dir)")
	xlsxCmd.Flags().BoolVar(&xlsxActive, "active", false, "Export only the active sequence's filtered view")
	cmd.AddCommand(xlsxCmd)

	var pdfOut string
	var pdfActive bool
	pdfCmd := &cobra.Command{
		Use:   "pdf",
		Short: "Write call sheets as a PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			proj := p.Project()
			path := pdfOut
			if path == "" {
				base := format.SanitizeFileName(displayBase(proj.ProjectInfo.ProdName))
				path = filepath.Join(ctx.artifactsDir(), base+".pdf")
			}
			if pdfActive {
				seq := p.ActiveSequence()
				if seq == nil {
					return fmt.Errorf("no active sequence")
				}
				err = export.ExportSequencePDF(*proj, seq, p.VisibleScenes(), path)
			} else {
				err = export.ExportCallSheetPDF(*proj, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	pdfCmd.Flags().StringVarP(&pdfOut, "out", "o", "", "Output path (defaults to the artifacts dir)")
	pdfCmd.Flags().BoolVar(&pdfActive, "active", false, "Export only the active sequence's filtered view")
	cmd.AddCommand(pdfCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "card <scene-id>",
		Short: "Render a scene info card PNG for sharing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			seq := p.ActiveSequence()
			if seq == nil {
				return fmt.Errorf("no active sequence")
			}
			i := seq.FindScene(id)
			if i < 0 {
				return fmt.Errorf("no scene with id %d in %q", id, seq.Name)
			}
			art, err := share.PrepareSceneCard(ctx.artifactsDir(), p.Project().ProjectInfo, seq.Scenes[i])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, art.Title)
			fmt.Fprintln(out, art.Text)
			fmt.Fprintln(out, art.Path)
			return nil
		},
	})

	return cmd
}

func displayBase(prodName string) string {
	if prodName == "" {
		return "UntitledProject"
	}
	return prodName
}

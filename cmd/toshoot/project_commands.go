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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"toshoot/internal/share"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project metadata, import/export and backup",
	}

	var prodName, director, contact, email string
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show or update production metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			info := p.Project().ProjectInfo
			changed := false
			if cmd.Flags().Changed("name") {
				info.ProdName = prodName
				changed = true
			}
			if cmd.Flags().Changed("director") {
				info.DirectorName = director
				changed = true
			}
			if cmd.Flags().Changed("contact") {
				info.ContactNumber = contact
				changed = true
			}
			if cmd.Flags().Changed("email") {
				info.ContactEmail = email
				changed = true
			}
			if changed {
				if err := p.SetProjectInfo(info); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Production: %s\n", orDash(info.ProdName))
			fmt.Fprintf(out, "Director:   %s\n", orDash(info.DirectorName))
			fmt.Fprintf(out, "Contact:    %s\n", orDash(info.ContactNumber))
			fmt.Fprintf(out, "Email:      %s\n", orDash(info.ContactEmail))
			return nil
		},
	}
	infoCmd.Flags().StringVar(&prodName, "name", "", "Production name")
	infoCmd.Flags().StringVar(&director, "director", "", "Director name")
	infoCmd.Flags().StringVar(&contact, "contact", "", "Contact number")
	infoCmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.AddCommand(infoCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Print the shareable project summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), share.SummaryText(*p.Project()))
			return nil
		},
	})

	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the project to empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear without --force")
			}
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			return p.Clear()
		},
	}
	clearCmd.Flags().BoolVar(&force, "force", false, "Confirm clearing all project data")
	cmd.AddCommand(clearCmd)

	var importForce bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a .filmproj file, replacing the current project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !importForce {
				return fmt.Errorf("import replaces the current project; refusing without --force")
			}
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read project file: %w", err)
			}
			if err := p.Import(data); err != nil {
				return err
			}
			proj := p.Project()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items, %d scenes\n",
				len(proj.PanelItems), proj.CountScenes())
			return nil
		},
	}
	importCmd.Flags().BoolVar(&importForce, "force", false, "Confirm replacing the current project")
	cmd.AddCommand(importCmd)

	var outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project as a .filmproj file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			data, name, err := p.Export()
			if err != nil {
				return err
			}
			path := outPath
			if path == "" {
				path = filepath.Join(ctx.artifactsDir(), name)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write project file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (defaults to the artifacts dir)")
	cmd.AddCommand(exportCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Write the current project into the backup slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			return p.Save(true)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore",
		Short: "Replace the project with the backup slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			if err := p.RestoreBackup(); err != nil {
				return err
			}
			proj := p.Project()
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d items, %d scenes\n",
				len(proj.PanelItems), proj.CountScenes())
			return nil
		},
	})

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"toshoot/internal/domain"
)

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}

func newSequenceCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Manage sequences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new [name]",
		Short: "Create a sequence and make it active",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			seq, err := p.CreateSequence(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created sequence %q (id %d), now active\n", seq.Name, seq.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "activate <id>",
		Short: "Make a sequence the active one",
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
			ok, err := p.SetActive(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no sequence with id %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active sequence: %s\n", p.ActiveSequence().Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sequences with day labels and scene counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			proj := p.Project()
			var rows [][]string
			for _, it := range proj.PanelItems {
				seq, ok := it.(*domain.Sequence)
				if !ok {
					continue
				}
				active := ""
				if int64(proj.ActiveItemID) == seq.ID {
					active = "*"
				}
				rows = append(rows, []string{
					strconv.FormatInt(seq.ID, 10),
					seq.Name,
					proj.BreakLabelFor(seq.ID),
					strconv.Itoa(len(seq.Scenes)),
					active,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Day", "Scenes", "Active"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	})

	return cmd
}

func newBreakCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Manage schedule breaks (day markers)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new <name>",
		Short: "Append a schedule break",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			b, err := p.CreateScheduleBreak(args[0])
			if err != nil {
				return err
			}
			if b == nil {
				return fmt.Errorf("break name must not be blank")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created break %q (id %d)\n", b.Name, b.ID)
			return nil
		},
	})

	return cmd
}

func newPanelCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Inspect and reorder the sequence/break list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all panel items in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			proj := p.Project()
			rows := make([][]string, 0, len(proj.PanelItems))
			for i, it := range proj.PanelItems {
				active := ""
				if int64(proj.ActiveItemID) == it.ItemID() {
					active = "*"
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					strconv.FormatInt(it.ItemID(), 10),
					string(it.Kind()),
					it.ItemName(),
					active,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Pos", "ID", "Kind", "Name", "Active"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a sequence or break",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(args[1]) == "" {
				return fmt.Errorf("name must not be blank")
			}
			ok, err := p.RenameItem(id, args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no item with id %d", id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a panel item to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return p.Reorder(from, to)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sequence or break",
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
			ok, err := p.DeleteItem(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no item with id %d", id)
			}
			return nil
		},
	})

	return cmd
}

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

	"github.com/spf13/cobra"

	"toshoot/internal/storage"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var field string
	var limit int
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search scenes across all sequences via the scene index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			// Make sure the index reflects the current state before querying.
			if err := p.Save(false); err != nil {
				return err
			}
			hits, err := storage.SearchScenes(cmd.Context(), storage.IndexPath(ctx.dataDir()), storage.SearchQuery{
				Text:  args[0],
				Field: field,
				Limit: limit,
			})
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			rows := make([][]string, 0, len(hits))
			for _, h := range hits {
				rows = append(rows, []string{
					strconv.FormatInt(h.SceneID, 10),
					h.Number,
					h.Heading,
					h.SequenceName,
					h.Status,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "#", "Heading", "Sequence", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "Restrict the match to one field")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum hits (default 100)")
	return cmd
}

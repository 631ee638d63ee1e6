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

	"toshoot/internal/domain"
	"toshoot/internal/format"
	"toshoot/internal/schedule"
)

// sceneFlags maps the scene field set onto command flags so add and update
// share one definition.
type sceneFlags struct {
	number, heading, date, timeOfDay, sceneType, location string
	pages, duration, status, cast, equipment, contact     string
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.number, "number", "", "Scene number")
	cmd.Flags().StringVar(&f.heading, "heading", "", "Scene heading")
	cmd.Flags().StringVar(&f.date, "date", "", "Shooting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.timeOfDay, "time", "", "Call time (HH:MM, 24h)")
	cmd.Flags().StringVar(&f.sceneType, "type", "", "INT/EXT type")
	cmd.Flags().StringVar(&f.location, "location", "", "Location")
	cmd.Flags().StringVar(&f.pages, "pages", "", "Script pages")
	cmd.Flags().StringVar(&f.duration, "duration", "", "Estimated duration")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (Pending, NOT SHOT, Done, ...)")
	cmd.Flags().StringVar(&f.cast, "cast", "", "Cast")
	cmd.Flags().StringVar(&f.equipment, "equipment", "", "Key equipment")
	cmd.Flags().StringVar(&f.contact, "contact", "", "On-set contact")
}

// apply copies flag values that were explicitly set onto the scene.
func (f *sceneFlags) apply(cmd *cobra.Command, sc *domain.Scene) {
	set := map[string]*string{
		"number": &sc.Number, "heading": &sc.Heading, "date": &sc.Date,
		"time": &sc.Time, "type": &sc.Type, "location": &sc.Location,
		"pages": &sc.Pages, "duration": &sc.Duration, "status": &sc.Status,
		"cast": &sc.Cast, "equipment": &sc.Equipment, "contact": &sc.Contact,
	}
	values := map[string]string{
		"number": f.number, "heading": f.heading, "date": f.date,
		"time": f.timeOfDay, "type": f.sceneType, "location": f.location,
		"pages": f.pages, "duration": f.duration, "status": f.status,
		"cast": f.cast, "equipment": f.equipment, "contact": f.contact,
	}
	for name, dst := range set {
		if cmd.Flags().Changed(name) {
			*dst = values[name]
		}
	}
}

func newSceneCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage scenes of the active sequence",
	}

	addFlags := &sceneFlags{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scene to the active sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			sc := domain.Scene{Status: domain.StatusPending, Contact: p.LastContact()}
			addFlags.apply(cmd, &sc)
			added, err := p.AddScene(sc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added scene %s (id %d)\n", format.OrNA(added.Number), added.ID)
			return nil
		},
	}
	addFlags.register(addCmd)
	cmd.AddCommand(addCmd)

	updateFlags := &sceneFlags{}
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a scene in the active sequence",
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
				return schedule.ErrNoActiveSequence
			}
			i := seq.FindScene(id)
			if i < 0 {
				return fmt.Errorf("no scene with id %d in %q", id, seq.Name)
			}
			sc := seq.Scenes[i]
			updateFlags.apply(cmd, &sc)
			if _, err := p.UpdateScene(sc); err != nil {
				return err
			}
			return nil
		},
	}
	updateFlags.register(updateCmd)
	cmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scene",
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
			seqID, _ := cmd.Flags().GetInt64("sequence")
			if seqID == 0 {
				seq := p.ActiveSequence()
				if seq == nil {
					return schedule.ErrNoActiveSequence
				}
				seqID = seq.ID
			}
			ok, err := p.DeleteScene(seqID, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no scene with id %d", id)
			}
			return nil
		},
	}
	deleteCmd.Flags().Int64("sequence", 0, "Sequence id (defaults to the active sequence)")
	cmd.AddCommand(deleteCmd)

	var filterField, filterValue string
	var page int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scenes of the active sequence, filtered and paged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			seq := p.ActiveSequence()
			if seq == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active sequence.")
				return nil
			}
			if cmd.Flags().Changed("filter-field") || cmd.Flags().Changed("filter-value") {
				p.SetFilter(filterField, filterValue)
			}
			if page > 0 {
				p.SetPage(page)
			}
			scenes, totalPages := p.PageOfScenes()
			rows := make([][]string, 0, len(scenes))
			for _, sc := range scenes {
				rows = append(rows, []string{
					strconv.FormatInt(sc.ID, 10),
					format.OrNA(sc.Number),
					format.OrNA(sc.Heading),
					format.OrNA(format.DateDDMMYYYY(sc.Date)),
					format.OrNA(format.Time12Hour(sc.Time)),
					format.OrNA(sc.Type),
					format.OrNA(sc.Location),
					format.OrNA(sc.Status),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sequence: %s (Day: %s)\n", seq.Name, p.Project().BreakLabelFor(seq.ID))
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "#", "Heading", "Date", "Time", "Type", "Location", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if totalPages > 1 {
				fmt.Fprintf(out, "Page %d of %d (%d scenes visible)\n", p.CurrentPage(), totalPages, len(p.VisibleScenes()))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&filterField, "filter-field", schedule.FilterAll, "Scene field to filter on (or \"all\")")
	listCmd.Flags().StringVar(&filterValue, "filter-value", "", "Substring to match, case-insensitive")
	listCmd.Flags().IntVar(&page, "page", 0, "Page number (1-based)")
	cmd.AddCommand(listCmd)

	return cmd
}

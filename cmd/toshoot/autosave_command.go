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
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"toshoot/internal/storage"
)

func newAutosaveCommand(ctx *commandContext) *cobra.Command {
	var intervalSec int
	cmd := &cobra.Command{
		Use:   "autosave",
		Short: "Keep re-saving the project to both slots until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensurePlanner()
			if err != nil {
				return err
			}
			interval := time.Duration(intervalSec) * time.Second
			if intervalSec <= 0 {
				interval = time.Duration(ctx.cfg.Autosave.IntervalSeconds) * time.Second
			}
			saver := storage.NewAutoSaver(interval, p.Save)
			saver.Start()
			defer saver.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Autosaving every %s. Press Ctrl+C to stop.\n", interval)
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
	cmd.Flags().IntVar(&intervalSec, "interval", 0, "Save interval in seconds (defaults to config)")
	return cmd
}

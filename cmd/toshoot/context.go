/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"strings"
	"sync"

	"toshoot/internal/config"
	"toshoot/internal/domain"
	applog "toshoot/internal/log"
	"toshoot/internal/schedule"
	"toshoot/internal/storage"
)

// commandContext lazily builds the config, store and planner shared by all
// subcommands. Flags are captured as pointers so cobra can fill them before
// the first ensure call.
type commandContext struct {
	dataDirFlag   *string
	artifactsFlag *string

	once    sync.Once
	cfg     config.AppConfig
	planner *schedule.Planner
	err     error
}

func newCommandContext(dataDirFlag, artifactsFlag *string) *commandContext {
	return &commandContext{dataDirFlag: dataDirFlag, artifactsFlag: artifactsFlag}
}

func (c *commandContext) ensure() error {
	c.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.err = err
			return
		}
		if c.dataDirFlag != nil && strings.TrimSpace(*c.dataDirFlag) != "" {
			cfg.Storage.DataDir = strings.TrimSpace(*c.dataDirFlag)
		}
		if c.artifactsFlag != nil && strings.TrimSpace(*c.artifactsFlag) != "" {
			cfg.Storage.ArtifactsDir = strings.TrimSpace(*c.artifactsFlag)
		}
		applog.Init(applog.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.Source,
			File:      cfg.Logging.File,
		})

		backend, err := storage.NewFileBackend(cfg.Storage.DataDir)
		if err != nil {
			c.err = err
			return
		}
		store := storage.NewStore(backend, storage.IndexPath(cfg.Storage.DataDir))
		c.cfg = cfg
		c.planner = schedule.NewPlanner(store)
	})
	return c.err
}

func (c *commandContext) ensurePlanner() (*schedule.Planner, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.planner, nil
}

func (c *commandContext) dataDir() string {
	if c.err != nil {
		return ""
	}
	return c.cfg.Storage.DataDir
}

func (c *commandContext) artifactsDir() string {
	return c.cfg.Storage.ArtifactsDir
}

// projectForCrash exposes the live project for the panic handler, nil when no
// command ever loaded one.
func (c *commandContext) projectForCrash() *domain.Project {
	if c.planner == nil {
		return nil
	}
	return c.planner.Project()
}

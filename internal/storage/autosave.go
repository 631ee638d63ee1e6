/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"log/slog"
	"sync"
	"time"

	applog "toshoot/internal/log"
)

// DefaultAutosaveInterval is how often unattended sessions re-persist.
const DefaultAutosaveInterval = 2 * time.Minute

// AutoSaver periodically re-persists the current in-memory state to both the
// primary and backup slots. It is off until Start is called and runs a single
// goroutine; Stop is synchronous.
type AutoSaver struct {
	interval time.Duration
	save     func(toBackup bool) error
	logger   *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewAutoSaver builds an autosaver around a save callback. A non-positive
// interval falls back to the default.
func NewAutoSaver(interval time.Duration, save func(toBackup bool) error) *AutoSaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &AutoSaver{
		interval: interval,
		save:     save,
		logger:   applog.WithComponent("autosave"),
	}
}

// Start begins the periodic save loop. Calling Start on a running autosaver
// is a no-op.
func (a *AutoSaver) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop(a.stop, a.done)
	a.logger.Info("autosave on", slog.Duration("interval", a.interval))
}

// Stop halts the loop and waits for the in-flight tick, if any.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	stop, done := a.stop, a.done
	a.stop, a.done = nil, nil
	a.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	a.logger.Info("autosave off")
}

// Running reports whether the loop is active.
func (a *AutoSaver) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

func (a *AutoSaver) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := a.save(false); err != nil {
				a.logger.Error("autosave primary failed", slog.Any("err", err))
			}
			if err := a.save(true); err != nil {
				a.logger.Error("autosave backup failed", slog.Any("err", err))
			}
		}
	}
}

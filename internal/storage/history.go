/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"toshoot/internal/undo"
)

// HistoryKey is the slot the undo/redo stacks persist into, next to the
// project slots. Keeping it in the same backend means history survives across
// invocations and travels with the data directory.
const HistoryKey = "projectHistory"

type historyEntry struct {
	State json.RawMessage `json:"state"`
	TS    time.Time       `json:"ts"`
}

type historyDoc struct {
	Undo []historyEntry `json:"undo"`
	Redo []historyEntry `json:"redo"`
}

// LoadHistory reads the persisted undo/redo stacks. Absent or unreadable
// history yields empty stacks; the project slots are authoritative and history
// is best effort.
func (s *Store) LoadHistory() (undoStack, redoStack []undo.Snapshot) {
	data, err := s.backend.Get(HistoryKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("history load failed", slog.Any("err", err))
		}
		return nil, nil
	}
	var doc historyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("history corrupt, starting fresh", slog.Any("err", err))
		return nil, nil
	}
	return historySnapshots(doc.Undo), historySnapshots(doc.Redo)
}

// SaveHistory persists both stacks into the history slot.
func (s *Store) SaveHistory(undoStack, redoStack []undo.Snapshot) error {
	doc := historyDoc{
		Undo: historyEntries(undoStack),
		Redo: historyEntries(redoStack),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return s.backend.Put(HistoryKey, data)
}

// ClearHistory drops the persisted stacks.
func (s *Store) ClearHistory() error {
	return s.backend.Delete(HistoryKey)
}

func historyEntries(snaps []undo.Snapshot) []historyEntry {
	out := make([]historyEntry, 0, len(snaps))
	for _, sn := range snaps {
		out = append(out, historyEntry{State: json.RawMessage(sn.Blob), TS: sn.TS})
	}
	return out
}

func historySnapshots(entries []historyEntry) []undo.Snapshot {
	out := make([]undo.Snapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, undo.Snapshot{Blob: []byte(e.State), TS: e.TS})
	}
	return out
}

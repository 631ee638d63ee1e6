/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"testing"
	"time"

	"toshoot/internal/undo"
)

func TestHistoryRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	ts := time.Now().Round(time.Millisecond)
	undoStack := []undo.Snapshot{
		{Blob: []byte(`{"step":1}`), TS: ts},
		{Blob: []byte(`{"step":2}`), TS: ts.Add(time.Second)},
	}
	redoStack := []undo.Snapshot{
		{Blob: []byte(`{"step":3}`), TS: ts.Add(2 * time.Second)},
	}
	if err := s.SaveHistory(undoStack, redoStack); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotUndo, gotRedo := s.LoadHistory()
	if len(gotUndo) != 2 || len(gotRedo) != 1 {
		t.Fatalf("got %d undo, %d redo", len(gotUndo), len(gotRedo))
	}
	if string(gotUndo[0].Blob) != `{"step":1}` || string(gotRedo[0].Blob) != `{"step":3}` {
		t.Fatalf("blobs wrong: %q %q", gotUndo[0].Blob, gotRedo[0].Blob)
	}
	if !gotUndo[1].TS.Equal(ts.Add(time.Second)) {
		t.Fatalf("timestamp lost: %v", gotUndo[1].TS)
	}
}

func TestHistoryAbsentOrCorrupt(t *testing.T) {
	s, backend := newTestStore(t)
	if u, r := s.LoadHistory(); len(u) != 0 || len(r) != 0 {
		t.Fatalf("absent history must be empty, got %d/%d", len(u), len(r))
	}

	if err := backend.Put(HistoryKey, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if u, r := s.LoadHistory(); len(u) != 0 || len(r) != 0 {
		t.Fatalf("corrupt history must be empty, got %d/%d", len(u), len(r))
	}
}

func TestClearHistory(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SaveHistory([]undo.Snapshot{{Blob: []byte(`{}`)}}, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearHistory(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if u, _ := s.LoadHistory(); len(u) != 0 {
		t.Fatal("history not cleared")
	}
}

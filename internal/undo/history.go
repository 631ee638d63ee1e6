/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot is a reversible project state blob. Content is opaque to the
// history; size is accounted as len(Blob).
type Snapshot struct {
	Blob []byte
	TS   time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; oldest entries are pruned when exceeded.
	MaxBytes int
	// MaxDepth limits the number of undo entries kept (0 means unlimited).
	MaxDepth int
	// MinInterval coalesces snapshots captured within the interval. The
	// earliest snapshot of a burst is kept so undo steps over the burst.
	MinInterval time.Duration
}

// History is an in-memory undo/redo stack of project snapshots with
// performance safeguards. It is safe for concurrent use.
type History struct {
	cfg Config
	mu  sync.Mutex

	undo       []Snapshot
	redo       []Snapshot
	totalBytes int
}

func NewHistory(cfg Config) *History {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 8 * 1024 * 1024 // 8 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &History{cfg: cfg}
}

// Push records a snapshot. Snapshots are pre-change states, so a burst of
// changes inside MinInterval coalesces by keeping the snapshot already on the
// stack: undo then restores the state before the whole burst. Any new change
// invalidates the redo stack.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.undo); n > 0 {
		last := h.undo[n-1]
		if s.TS.Sub(last.TS) < h.cfg.MinInterval {
			h.redo = nil
			return
		}
	}
	h.undo = append(h.undo, s)
	h.totalBytes += len(s.Blob)
	h.redo = nil
	h.enforceCapsLocked()
}

// Undo pops the most recent snapshot. The caller passes the current state so
// it can be re-applied by Redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.totalBytes -= len(s.Blob)
	h.redo = append(h.redo, current)
	return s, true
}

// Redo pops a previously undone state and pushes the current one back onto
// the undo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.redo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, current)
	h.totalBytes += len(current.Blob)
	h.enforceCapsLocked()
	return s, true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
	h.totalBytes = 0
}

// Export returns copies of both stacks, oldest first, for persistence.
func (h *History) Export() (undoStack, redoStack []Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	undoStack = append([]Snapshot{}, h.undo...)
	redoStack = append([]Snapshot{}, h.redo...)
	return undoStack, redoStack
}

// Restore replaces both stacks with previously exported ones and re-applies
// the configured caps.
func (h *History) Restore(undoStack, redoStack []Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append([]Snapshot{}, undoStack...)
	h.redo = append([]Snapshot{}, redoStack...)
	h.totalBytes = 0
	for _, s := range h.undo {
		h.totalBytes += len(s.Blob)
	}
	h.enforceCapsLocked()
}

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (totalBytes, depth int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalBytes, len(h.undo)
}

func (h *History) enforceCapsLocked() {
	if h.cfg.MaxDepth > 0 && len(h.undo) > h.cfg.MaxDepth {
		toDrop := len(h.undo) - h.cfg.MaxDepth
		for i := 0; i < toDrop; i++ {
			h.totalBytes -= len(h.undo[i].Blob)
		}
		h.undo = append([]Snapshot{}, h.undo[toDrop:]...)
	}
	for h.cfg.MaxBytes > 0 && h.totalBytes > h.cfg.MaxBytes && len(h.undo) > 0 {
		h.totalBytes -= len(h.undo[0].Blob)
		h.undo = h.undo[1:]
	}
	if h.totalBytes < 0 {
		h.totalBytes = 0
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"toshoot/internal/domain"
	applog "toshoot/internal/log"
	"toshoot/internal/storage"
	"toshoot/internal/undo"
)

// ErrNoActiveSequence is returned by scene mutations when no sequence is
// active to receive them.
var ErrNoActiveSequence = errors.New("no active sequence")

// Planner owns the live project state and all schedule mutations. Every
// mutation persists through the store before returning, so a crash never
// loses more than the in-flight change. View state (filter, current page,
// contact carry-over) lives here too and resets whenever the active
// sequence changes.
//
// Planner is not safe for concurrent use; the CLI drives it from one
// goroutine.
type Planner struct {
	store   *storage.Store
	project domain.Project

	filter      Filter
	currentPage int
	lastContact string

	history *undo.History
	logger  *slog.Logger
}

// NewPlanner loads the persisted project (empty when absent) and resets the
// session state. The undo/redo stacks are loaded from the store so history
// carries across invocations.
func NewPlanner(store *storage.Store) *Planner {
	p := &Planner{
		store:   store,
		history: undo.NewHistory(undo.Config{MaxDepth: 100}),
		logger:  applog.WithComponent("schedule"),
	}
	p.history.Restore(store.LoadHistory())
	p.adopt(store.Load())
	return p
}

// adopt replaces the live project and resets all per-session view state.
func (p *Planner) adopt(proj domain.Project) {
	storage.Normalize(&proj)
	p.project = proj
	p.filter = AllFilter()
	p.currentPage = 1
	p.lastContact = proj.LastContact()
}

// Project returns the live project for read access.
func (p *Planner) Project() *domain.Project { return &p.project }

// ActiveSequence resolves the active item, nil when none.
func (p *Planner) ActiveSequence() *domain.Sequence { return p.project.ActiveSequence() }

// LastContact is the contact carried over from the most recently added scene,
// offered as the default for the next one.
func (p *Planner) LastContact() string { return p.lastContact }

// persist writes the primary slot; the previous state is already on the undo
// stack by the time this runs.
func (p *Planner) persist() error {
	return p.store.Save(p.project, false)
}

// snapshot pushes the current project onto the undo history. Runs before each
// mutation so Undo restores the pre-mutation state.
func (p *Planner) snapshot() {
	data, err := storage.EncodeProject(p.project)
	if err != nil {
		p.logger.Warn("snapshot skipped", slog.Any("err", err))
		return
	}
	p.history.Push(undo.Snapshot{Blob: data, TS: time.Now()})
	p.persistHistory()
}

// persistHistory mirrors the in-memory stacks into the history slot. Failures
// are logged, not surfaced; the project slots stay authoritative.
func (p *Planner) persistHistory() {
	u, r := p.history.Export()
	if err := p.store.SaveHistory(u, r); err != nil {
		p.logger.Warn("history save failed", slog.Any("err", err))
	}
}

// currentSnapshot captures the live state for the redo stack.
func (p *Planner) currentSnapshot() undo.Snapshot {
	data, _ := storage.EncodeProject(p.project)
	return undo.Snapshot{Blob: data, TS: time.Now()}
}

// Undo reverts the most recent mutation. Returns false when there is nothing
// to undo. View state resets because the restored project may have a
// different active sequence.
func (p *Planner) Undo() (bool, error) {
	s, ok := p.history.Undo(p.currentSnapshot())
	if !ok {
		return false, nil
	}
	return true, p.applySnapshot(s)
}

// Redo re-applies the most recently undone mutation.
func (p *Planner) Redo() (bool, error) {
	s, ok := p.history.Redo(p.currentSnapshot())
	if !ok {
		return false, nil
	}
	return true, p.applySnapshot(s)
}

func (p *Planner) applySnapshot(s undo.Snapshot) error {
	proj, err := storage.DecodeProject(s.Blob)
	if err != nil {
		return fmt.Errorf("apply history state: %w", err)
	}
	p.adopt(proj)
	p.persistHistory()
	return p.persist()
}

// CreateSequence appends a new sequence and makes it active. A blank name is
// auto-generated from the sequence count ("Sequence 3" for the third one).
func (p *Planner) CreateSequence(name string) (*domain.Sequence, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Sequence %d", p.project.CountSequences()+1)
	}
	p.snapshot()
	seq := &domain.Sequence{ID: domain.NewID(), Name: name, Scenes: []domain.Scene{}}
	p.project.PanelItems = append(p.project.PanelItems, seq)
	p.project.ActiveItemID = domain.NullableID(seq.ID)
	p.resetView()
	p.logger.Info("sequence created", slog.String("name", name), slog.Int64("id", seq.ID))
	return seq, p.persist()
}

// CreateScheduleBreak appends a named divider. A blank name is a silent no-op;
// the active sequence never changes.
func (p *Planner) CreateScheduleBreak(name string) (*domain.ScheduleBreak, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	p.snapshot()
	b := &domain.ScheduleBreak{ID: domain.NewID(), Name: name}
	p.project.PanelItems = append(p.project.PanelItems, b)
	p.logger.Info("schedule break created", slog.String("name", name), slog.Int64("id", b.ID))
	return b, p.persist()
}

// RenameItem changes a panel item's display name. A blank name or unknown id
// is a no-op reported via the bool.
func (p *Planner) RenameItem(id int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	it := p.project.FindItem(id)
	if it == nil {
		return false, nil
	}
	p.snapshot()
	switch v := it.(type) {
	case *domain.Sequence:
		v.Name = name
	case *domain.ScheduleBreak:
		v.Name = name
	}
	return true, p.persist()
}

// SetActive switches the active sequence. Only sequences can be activated;
// pointing at a break or an unknown id is a no-op. Switching resets the
// filter and pagination.
func (p *Planner) SetActive(id int64) (bool, error) {
	if p.project.FindSequence(id) == nil {
		return false, nil
	}
	p.snapshot()
	p.project.ActiveItemID = domain.NullableID(id)
	p.resetView()
	return true, p.persist()
}

// Reorder moves the panel item at oldIndex to newIndex, shifting the items in
// between. Identity and scene content are untouched; out-of-range indices are
// an error.
func (p *Planner) Reorder(oldIndex, newIndex int) error {
	n := len(p.project.PanelItems)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return fmt.Errorf("reorder: index out of range (have %d items)", n)
	}
	if oldIndex == newIndex {
		return nil
	}
	p.snapshot()
	items := p.project.PanelItems
	it := items[oldIndex]
	items = append(items[:oldIndex], items[oldIndex+1:]...)
	items = append(items[:newIndex], append(domain.PanelItems{it}, items[newIndex:]...)...)
	p.project.PanelItems = items
	return p.persist()
}

// DeleteItem removes a panel item. Deleting the active sequence re-resolves
// the active reference to the first remaining sequence, or clears it when
// none are left.
func (p *Planner) DeleteItem(id int64) (bool, error) {
	idx := -1
	for i, it := range p.project.PanelItems {
		if it.ItemID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	p.snapshot()
	wasActive := int64(p.project.ActiveItemID) == id
	p.project.PanelItems = append(p.project.PanelItems[:idx], p.project.PanelItems[idx+1:]...)
	if wasActive {
		p.project.ActiveItemID = 0
		for _, it := range p.project.PanelItems {
			if it.Kind() == domain.KindSequence {
				p.project.ActiveItemID = domain.NullableID(it.ItemID())
				break
			}
		}
		p.resetView()
	}
	return true, p.persist()
}

// AddScene appends a scene to the active sequence, assigning a fresh id and
// remembering the contact for carry-over. Adding resets the filter so the new
// scene is visible.
func (p *Planner) AddScene(sc domain.Scene) (domain.Scene, error) {
	seq := p.project.ActiveSequence()
	if seq == nil {
		return domain.Scene{}, ErrNoActiveSequence
	}
	p.snapshot()
	sc.ID = domain.NewID()
	seq.Scenes = append(seq.Scenes, sc)
	p.lastContact = sc.Contact
	p.resetView()
	p.logger.Info("scene added",
		slog.Int64("id", sc.ID),
		slog.String("number", sc.Number),
		slog.String("sequence", seq.Name))
	return sc, p.persist()
}

// UpdateScene replaces the scene with the matching id in the active sequence.
// Unknown ids are a no-op reported via the bool; the id itself never changes.
func (p *Planner) UpdateScene(sc domain.Scene) (bool, error) {
	seq := p.project.ActiveSequence()
	if seq == nil {
		return false, ErrNoActiveSequence
	}
	i := seq.FindScene(sc.ID)
	if i < 0 {
		return false, nil
	}
	p.snapshot()
	seq.Scenes[i] = sc
	return true, p.persist()
}

// DeleteScene removes a scene from the named sequence. Unknown sequence or
// scene ids are a no-op.
func (p *Planner) DeleteScene(sequenceID, sceneID int64) (bool, error) {
	seq := p.project.FindSequence(sequenceID)
	if seq == nil {
		return false, nil
	}
	i := seq.FindScene(sceneID)
	if i < 0 {
		return false, nil
	}
	p.snapshot()
	seq.Scenes = append(seq.Scenes[:i], seq.Scenes[i+1:]...)
	return true, p.persist()
}

// SetProjectInfo replaces the production metadata.
func (p *Planner) SetProjectInfo(info domain.ProjectInfo) error {
	p.snapshot()
	p.project.ProjectInfo = info
	return p.persist()
}

// resetView returns filter and pagination to their defaults.
func (p *Planner) resetView() {
	p.filter = AllFilter()
	p.currentPage = 1
}

// Filter returns the current filter state.
func (p *Planner) Filter() Filter { return p.filter }

// SetFilter installs a new filter and jumps back to page one. The value is
// trimmed; field names are not validated here since unknown fields simply
// match nothing.
func (p *Planner) SetFilter(field, value string) {
	p.filter = Filter{Field: field, Value: strings.TrimSpace(value)}
	p.currentPage = 1
}

// ResetFilter clears the filter and returns to page one.
func (p *Planner) ResetFilter() { p.resetView() }

// CurrentPage returns the 1-based current page.
func (p *Planner) CurrentPage() int { return p.currentPage }

// SetPage moves to the requested page, clamped into range for the current
// visible scene list.
func (p *Planner) SetPage(page int) {
	total := TotalPages(len(p.VisibleScenes()), ScenesPerPage)
	p.currentPage = ClampPage(page, total)
}

// VisibleScenes is the active sequence's scene list after filtering. No
// active sequence means no visible scenes.
func (p *Planner) VisibleScenes() []domain.Scene {
	seq := p.project.ActiveSequence()
	if seq == nil {
		return []domain.Scene{}
	}
	return FilterScenes(seq.Scenes, p.filter)
}

// PageOfScenes returns the current page of visible scenes plus the total page
// count. The stored page is re-clamped first in case the list shrank.
func (p *Planner) PageOfScenes() ([]domain.Scene, int) {
	visible := p.VisibleScenes()
	total := TotalPages(len(visible), ScenesPerPage)
	p.currentPage = ClampPage(p.currentPage, total)
	return PageSlice(visible, p.currentPage, ScenesPerPage), total
}

// Save persists the live project into the chosen slot without mutating it.
func (p *Planner) Save(toBackup bool) error {
	return p.store.Save(p.project, toBackup)
}

// Clear resets the project to empty, in memory and on disk.
func (p *Planner) Clear() error {
	p.snapshot()
	proj, err := p.store.Clear()
	if err != nil {
		return err
	}
	p.adopt(proj)
	return nil
}

// Import validates and adopts an external project file, replacing all state.
// On failure the live project is untouched.
func (p *Planner) Import(data []byte) error {
	proj, err := p.store.ImportProject(data)
	if err != nil {
		return err
	}
	p.snapshot()
	p.adopt(proj)
	return nil
}

// Export serializes the live project and derives the download filename from
// the production name.
func (p *Planner) Export() ([]byte, string, error) {
	data, err := storage.EncodeProject(p.project)
	if err != nil {
		return nil, "", err
	}
	return data, storage.ExportFileName(p.project.ProjectInfo), nil
}

// RestoreBackup adopts the backup slot. The store fails hard when the backup
// is absent or corrupt.
func (p *Planner) RestoreBackup() error {
	proj, err := p.store.RestoreBackup()
	if err != nil {
		return err
	}
	p.snapshot()
	p.adopt(proj)
	return nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"toshoot/internal/domain"
	"toshoot/internal/format"
	applog "toshoot/internal/log"
)

// ProjectFileExt is the extension of exported project files.
const ProjectFileExt = ".filmproj"

// Store is the persistence round-trip for a project: two slots in a Backend
// plus an optional derived scene index kept next to the data.
type Store struct {
	backend   Backend
	indexPath string // "" disables the derived index
	logger    *slog.Logger
}

// NewStore returns a store over the given backend. indexPath names the
// SQLite scene index file; pass "" to disable indexing.
func NewStore(backend Backend, indexPath string) *Store {
	return &Store{
		backend:   backend,
		indexPath: indexPath,
		logger:    applog.WithComponent("storage"),
	}
}

// Load reads the primary slot and migrates it into the canonical shape.
// It fails soft: an absent or unreadable primary yields the canonical empty
// project. The backup slot is never consulted here; HasBackup lets callers
// offer an explicit restore when the primary is absent.
func (s *Store) Load() domain.Project {
	data, err := s.backend.Get(PrimaryKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("primary slot unreadable, starting empty", slog.Any("err", err))
		}
		return domain.Empty()
	}
	p, err := DecodeProject(data)
	if err != nil {
		s.logger.Warn("primary slot corrupt, starting empty", slog.Any("err", err))
		return domain.Empty()
	}
	return p
}

// HasPrimary reports whether the primary slot holds data.
func (s *Store) HasPrimary() bool {
	_, err := s.backend.Get(PrimaryKey)
	return err == nil
}

// HasBackup reports whether the backup slot holds data.
func (s *Store) HasBackup() bool {
	_, err := s.backend.Get(BackupKey)
	return err == nil
}

// RestoreBackup copies the backup slot into the primary slot and returns the
// decoded project. Unlike Load this is a hard-failure path: the user asked
// for the backup specifically, so a missing or corrupt backup is an error.
func (s *Store) RestoreBackup() (domain.Project, error) {
	data, err := s.backend.Get(BackupKey)
	if err != nil {
		return domain.Project{}, fmt.Errorf("read backup slot: %w", err)
	}
	p, err := DecodeProject(data)
	if err != nil {
		return domain.Project{}, fmt.Errorf("decode backup slot: %w", err)
	}
	if err := s.Save(p, false); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// Save serializes the project into the chosen slot. Primary saves also
// refresh the derived scene index, best effort.
func (s *Store) Save(p domain.Project, toBackup bool) error {
	data, err := EncodeProject(p)
	if err != nil {
		return err
	}
	key := PrimaryKey
	if toBackup {
		key = BackupKey
	}
	if err := s.backend.Put(key, data); err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	if !toBackup && s.indexPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := UpdateIndex(ctx, s.indexPath, p); err != nil {
			s.logger.Warn("scene index update failed", slog.Any("err", err))
		}
	}
	return nil
}

// Clear resets both the in-slot state and the caller's view to the canonical
// empty project.
func (s *Store) Clear() (domain.Project, error) {
	p := domain.Empty()
	if err := s.Save(p, false); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// ImportProject validates and decodes an external project file, then replaces
// the persisted state wholesale. On any failure the existing state is left
// untouched and the error is returned to the caller.
func (s *Store) ImportProject(data []byte) (domain.Project, error) {
	if err := ValidateProjectFile(data); err != nil {
		return domain.Project{}, err
	}
	p, err := DecodeProject(data)
	if err != nil {
		return domain.Project{}, err
	}
	if err := s.Save(p, false); err != nil {
		return domain.Project{}, err
	}
	s.logger.Info("project imported",
		slog.Int("items", len(p.PanelItems)),
		slog.Int("scenes", p.CountScenes()))
	return p, nil
}

// EncodeProject serializes the canonical shape in human-readable form.
// Pure; shared by Save and the export path.
func EncodeProject(p domain.Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportFileName derives the download filename from the production name:
// non-alphanumerics become underscores, empty falls back to UntitledProject.
func ExportFileName(info domain.ProjectInfo) string {
	name := info.ProdName
	if name == "" {
		name = "UntitledProject"
	}
	return format.SanitizeFileName(name) + ProjectFileExt
}

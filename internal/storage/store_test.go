/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"toshoot/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *FileBackend) {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	// Index disabled; the SQLite side has its own tests.
	return NewStore(backend, ""), backend
}

func testProject() domain.Project {
	return domain.Project{
		SchemaVersion: domain.SchemaVersion,
		PanelItems: domain.PanelItems{
			&domain.Sequence{ID: 2, Name: "Opening", Scenes: []domain.Scene{
				{ID: 10, Number: "1A", Heading: "Rooftop chase", Status: domain.StatusPending},
			}},
		},
		ActiveItemID: 2,
		ProjectInfo:  domain.ProjectInfo{ProdName: "Test Film"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	want := testProject()
	if err := s.Save(want, false); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Load()
	if got.CountScenes() != 1 || got.ActiveItemID != want.ActiveItemID {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.ProjectInfo.ProdName != "Test Film" {
		t.Fatalf("info lost: %+v", got.ProjectInfo)
	}
}

func TestLoadMissingYieldsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Load()
	if len(p.PanelItems) != 0 || p.ActiveItemID != 0 {
		t.Fatalf("expected empty project, got %+v", p)
	}
	if p.SchemaVersion != domain.SchemaVersion {
		t.Fatalf("empty project should carry current version")
	}
}

func TestLoadCorruptYieldsEmpty(t *testing.T) {
	s, backend := newTestStore(t)
	path := filepath.Join(backend.Dir(), PrimaryKey+".json")
	if err := os.WriteFile(path, []byte("{{{ not json"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	p := s.Load()
	if len(p.PanelItems) != 0 {
		t.Fatalf("corrupt primary must fail soft to empty, got %+v", p)
	}
}

func TestBackupSlotAndRestore(t *testing.T) {
	s, _ := newTestStore(t)
	want := testProject()
	if err := s.Save(want, true); err != nil {
		t.Fatalf("save backup: %v", err)
	}
	if s.HasPrimary() {
		t.Fatal("backup save must not touch primary")
	}
	if !s.HasBackup() {
		t.Fatal("backup slot should exist")
	}

	got, err := s.RestoreBackup()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got.CountScenes() != 1 {
		t.Fatalf("restore content: %+v", got)
	}
	if !s.HasPrimary() {
		t.Fatal("restore must repopulate primary")
	}
}

func TestRestoreBackupMissingFailsHard(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.RestoreBackup(); err == nil {
		t.Fatal("expected error when backup slot is empty")
	}
}

func TestImportRejectsInvalidAndKeepsState(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Save(testProject(), false); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"projectInfo":{}}`),                       // missing panelItems
		[]byte(`{"panelItems":[]}`),                        // missing projectInfo
		[]byte(`{"panelItems":"nope","projectInfo":{}}`),   // wrong type
		[]byte(`{"panelItems":[{"id":1}],"projectInfo":{}}`), // item missing name
	}
	for _, data := range cases {
		if _, err := s.ImportProject(data); err == nil {
			t.Errorf("expected rejection for %s", data)
		}
	}

	// State untouched after the failed imports
	p := s.Load()
	if p.CountScenes() != 1 {
		t.Fatalf("state mutated by failed import: %+v", p)
	}
}

func TestImportAcceptsValidFile(t *testing.T) {
	s, _ := newTestStore(t)
	data, err := EncodeProject(testProject())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p, err := s.ImportProject(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if p.CountScenes() != 1 {
		t.Fatalf("import content: %+v", p)
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Save(testProject(), false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := s.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(p.PanelItems) != 0 {
		t.Fatalf("expected empty, got %+v", p)
	}
	if got := s.Load(); len(got.PanelItems) != 0 {
		t.Fatalf("clear not persisted: %+v", got)
	}
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName(domain.ProjectInfo{ProdName: "My Film: Part 2"}); got != "My_Film__Part_2.filmproj" {
		t.Fatalf("got %q", got)
	}
	if got := ExportFileName(domain.ProjectInfo{}); got != "UntitledProject.filmproj" {
		t.Fatalf("got %q", got)
	}
}

func TestFileBackendTransactionalPut(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	if err := backend.Put("k", []byte("one")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := backend.Put("k", []byte("two")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := backend.Get("k")
	if err != nil || string(got) != "two" {
		t.Fatalf("get: %q, %v", got, err)
	}

	// No temp files left behind
	entries, err := os.ReadDir(backend.Dir())
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected single file, got %d", len(entries))
	}

	if err := backend.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := backend.Get("k"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

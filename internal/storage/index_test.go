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
	"testing"

	"toshoot/internal/domain"
)

func indexedProject() domain.Project {
	return domain.Project{
		SchemaVersion: domain.SchemaVersion,
		PanelItems: domain.PanelItems{
			&domain.ScheduleBreak{ID: 1, Name: "DAY 1"},
			&domain.Sequence{ID: 2, Name: "Opening", Scenes: []domain.Scene{
				{ID: 10, Number: "1", Heading: "Rooftop chase", Location: "Docklands", Status: domain.StatusDone, Cast: "Mira"},
				{ID: 11, Number: "2", Heading: "Alley escape", Location: "Old Town", Status: domain.StatusPending, Cast: "Mira, Joel"},
			}},
			&domain.Sequence{ID: 3, Name: "Finale", Scenes: []domain.Scene{
				{ID: 12, Number: "45", Heading: "Harbor standoff", Location: "Docklands", Status: domain.StatusPending},
			}},
		},
		ActiveItemID: 2,
	}
}

func TestUpdateIndexAndSearch(t *testing.T) {
	path := IndexPath(t.TempDir())
	ctx := context.Background()
	if err := UpdateIndex(ctx, path, indexedProject()); err != nil {
		t.Fatalf("update index: %v", err)
	}

	hits, err := SearchScenes(ctx, path, SearchQuery{Text: "docklands"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	// Shooting order: Opening before Finale
	if hits[0].SequenceName != "Opening" || hits[1].SequenceName != "Finale" {
		t.Fatalf("hit order wrong: %+v", hits)
	}

	hits, err = SearchScenes(ctx, path, SearchQuery{Text: "mira", Field: "cast"})
	if err != nil {
		t.Fatalf("field search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 cast hits, got %d", len(hits))
	}

	if _, err := SearchScenes(ctx, path, SearchQuery{Text: "x", Field: "bogus"}); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, err := SearchScenes(ctx, path, SearchQuery{Text: "   "}); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestUpdateIndexRebuildsFromScratch(t *testing.T) {
	path := IndexPath(t.TempDir())
	ctx := context.Background()
	p := indexedProject()
	if err := UpdateIndex(ctx, path, p); err != nil {
		t.Fatalf("first build: %v", err)
	}

	// Remove a scene and rebuild; the dropped row must disappear.
	seq := p.PanelItems[1].(*domain.Sequence)
	seq.Scenes = seq.Scenes[:1]
	if err := UpdateIndex(ctx, path, p); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	hits, err := SearchScenes(ctx, path, SearchQuery{Text: "alley"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("stale row survived rebuild: %+v", hits)
	}
}

func TestSearchLimit(t *testing.T) {
	path := IndexPath(t.TempDir())
	ctx := context.Background()
	if err := UpdateIndex(ctx, path, indexedProject()); err != nil {
		t.Fatalf("update index: %v", err)
	}
	hits, err := SearchScenes(ctx, path, SearchQuery{Text: "a", Limit: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("limit ignored: %d hits", len(hits))
	}
}

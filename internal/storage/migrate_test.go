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

	"toshoot/internal/domain"
)

func TestDecodeCurrentShape(t *testing.T) {
	raw := `{
		"schemaVersion": 3,
		"panelItems": [
			{"type":"schedule_break","id":1,"name":"DAY 1"},
			{"type":"sequence","id":2,"name":"Opening","scenes":[{"id":10,"number":"1","heading":"Cold open"}]}
		],
		"activeItemId": 2,
		"projectInfo": {"prodName":"Film"}
	}`
	p, err := DecodeProject([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.PanelItems) != 2 || p.ActiveItemID != 2 {
		t.Fatalf("unexpected shape: %+v", p)
	}
	if p.ProjectInfo.ProdName != "Film" {
		t.Fatalf("info lost: %+v", p.ProjectInfo)
	}
}

func TestDecodeSequencesShape(t *testing.T) {
	raw := `{
		"sequences": [
			{"name":"One","scenes":[{"id":1,"heading":"A"}]},
			{"name":"Two","scenes":[]}
		],
		"activeSequenceIndex": 1,
		"projectInfo": {"directorName":"R. Lee"}
	}`
	p, err := DecodeProject([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.PanelItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(p.PanelItems))
	}
	// Ordinal positions survive, fresh ids get assigned.
	first := p.PanelItems[0].(*domain.Sequence)
	second := p.PanelItems[1].(*domain.Sequence)
	if first.Name != "One" || second.Name != "Two" {
		t.Fatalf("order lost: %q, %q", first.Name, second.Name)
	}
	if first.ID == 0 || second.ID == 0 || first.ID == second.ID {
		t.Fatalf("bad ids: %d, %d", first.ID, second.ID)
	}
	if int64(p.ActiveItemID) != second.ID {
		t.Fatalf("active index not translated: active=%d want=%d", p.ActiveItemID, second.ID)
	}
	if len(first.Scenes) != 1 || first.Scenes[0].Heading != "A" {
		t.Fatalf("scenes lost: %+v", first.Scenes)
	}
	if p.ProjectInfo.DirectorName != "R. Lee" {
		t.Fatalf("info lost")
	}
}

func TestDecodeFlatScenesShape(t *testing.T) {
	raw := `{"scenes":[{"id":1,"heading":"A"},{"id":2,"heading":"B"}]}`
	p, err := DecodeProject([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.PanelItems) != 1 {
		t.Fatalf("expected single wrapping sequence, got %d items", len(p.PanelItems))
	}
	seq := p.PanelItems[0].(*domain.Sequence)
	if seq.Name != "Sequence 1" || len(seq.Scenes) != 2 {
		t.Fatalf("bad migration: %+v", seq)
	}
	if int64(p.ActiveItemID) != seq.ID {
		t.Fatalf("wrapping sequence should be active")
	}
}

func TestDecodeUnrecognizedShape(t *testing.T) {
	if _, err := DecodeProject([]byte(`{"foo": 1}`)); err == nil {
		t.Fatal("expected error for unknown shape")
	}
	if _, err := DecodeProject([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestNormalizeRepairsProject(t *testing.T) {
	p := domain.Project{
		PanelItems: domain.PanelItems{
			&domain.ScheduleBreak{ID: 1, Name: "DAY 1"},
			&domain.Sequence{ID: 2, Name: "   "},
			&domain.Sequence{ID: 3, Name: "Named"},
		},
		ActiveItemID: 1, // points at a break
	}
	Normalize(&p)
	if p.SchemaVersion != domain.SchemaVersion {
		t.Fatalf("version not stamped: %d", p.SchemaVersion)
	}
	seq := p.PanelItems[1].(*domain.Sequence)
	if seq.Name != "Sequence 1" {
		t.Fatalf("blank name not repaired: %q", seq.Name)
	}
	if seq.Scenes == nil {
		t.Fatal("scene list should be non-nil")
	}
	if int64(p.ActiveItemID) != 2 {
		t.Fatalf("active should repair to first sequence, got %d", p.ActiveItemID)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	p := domain.Project{
		PanelItems: domain.PanelItems{
			&domain.Sequence{ID: 2, Name: "Keep", Scenes: []domain.Scene{}},
		},
		ActiveItemID: 2,
	}
	Normalize(&p)
	before, _ := EncodeProject(p)
	Normalize(&p)
	after, _ := EncodeProject(p)
	if string(before) != string(after) {
		t.Fatalf("normalize not idempotent:\n%s\nvs\n%s", before, after)
	}
}

func TestNormalizeClearsActiveWhenNoSequences(t *testing.T) {
	p := domain.Project{
		PanelItems:   domain.PanelItems{&domain.ScheduleBreak{ID: 1, Name: "DAY 1"}},
		ActiveItemID: 99,
	}
	Normalize(&p)
	if p.ActiveItemID != 0 {
		t.Fatalf("expected cleared active, got %d", p.ActiveItemID)
	}
}

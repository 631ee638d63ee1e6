/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

// Migration and normalization of persisted project shapes. The persisted
// format has changed three times over the application's history:
//
//	v0: a flat "scenes" array, no grouping at all
//	v1: a "sequences" array with a numeric activeSequenceIndex
//	v2: unified "panelItems" with an id-based activeItemId and schedule
//	    breaks, but no version field
//	v3: v2 plus an explicit schemaVersion (current)
//
// DecodeProject detects the shape (version field when present, sniffing for
// the unversioned legacy shapes), migrates it forward, and normalizes the
// result. Normalize is idempotent; it runs on every load and import.

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"toshoot/internal/domain"
)

// shapeProbe captures just enough of a payload to tell the shapes apart.
type shapeProbe struct {
	SchemaVersion int             `json:"schemaVersion"`
	PanelItems    json.RawMessage `json:"panelItems"`
	Sequences     json.RawMessage `json:"sequences"`
	Scenes        json.RawMessage `json:"scenes"`
}

// legacySequence is the v1 sequence record. IDs were not persisted in that
// shape; fresh ones are assigned during migration.
type legacySequence struct {
	Name   string         `json:"name"`
	Scenes []domain.Scene `json:"scenes"`
}

// legacyProjectV1 is the sequences-array shape with an index-based active
// pointer.
type legacyProjectV1 struct {
	Sequences           []legacySequence   `json:"sequences"`
	ActiveSequenceIndex int                `json:"activeSequenceIndex"`
	ProjectInfo         domain.ProjectInfo `json:"projectInfo"`
}

// DecodeProject parses persisted or imported bytes into the canonical shape,
// migrating legacy shapes forward and normalizing the result.
func DecodeProject(data []byte) (domain.Project, error) {
	var probe shapeProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.Project{}, fmt.Errorf("parse project: %w", err)
	}
	switch {
	case probe.SchemaVersion >= domain.SchemaVersion, probe.PanelItems != nil:
		// v2/v3 share the panel-item structure
		var p domain.Project
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Project{}, fmt.Errorf("parse project: %w", err)
		}
		Normalize(&p)
		return p, nil
	case probe.Sequences != nil:
		var legacy legacyProjectV1
		if err := json.Unmarshal(data, &legacy); err != nil {
			return domain.Project{}, fmt.Errorf("parse legacy project: %w", err)
		}
		return migrateV1(legacy), nil
	case probe.Scenes != nil:
		var scenes []domain.Scene
		if err := json.Unmarshal(probe.Scenes, &scenes); err != nil {
			return domain.Project{}, fmt.Errorf("parse legacy scenes: %w", err)
		}
		return migrateV0(scenes), nil
	}
	return domain.Project{}, errors.New("unrecognized project shape")
}

// migrateV1 rewrites the sequences-array shape into the unified panel-item
// list. Each legacy sequence gets a fresh time-derived identifier; the
// numeric active index is translated into the identifier at the same ordinal
// position.
func migrateV1(legacy legacyProjectV1) domain.Project {
	p := domain.Project{
		SchemaVersion: domain.SchemaVersion,
		PanelItems:    make(domain.PanelItems, 0, len(legacy.Sequences)),
		ProjectInfo:   legacy.ProjectInfo,
	}
	for i, ls := range legacy.Sequences {
		seq := &domain.Sequence{ID: domain.NewID(), Name: ls.Name, Scenes: ls.Scenes}
		p.PanelItems = append(p.PanelItems, seq)
		if i == legacy.ActiveSequenceIndex {
			p.ActiveItemID = domain.NullableID(seq.ID)
		}
	}
	Normalize(&p)
	return p
}

// migrateV0 wraps a flat scene array into a single generated sequence.
func migrateV0(scenes []domain.Scene) domain.Project {
	p := domain.Project{SchemaVersion: domain.SchemaVersion, PanelItems: domain.PanelItems{}}
	if len(scenes) > 0 {
		seq := &domain.Sequence{ID: domain.NewID(), Name: "Sequence 1", Scenes: scenes}
		p.PanelItems = append(p.PanelItems, seq)
		p.ActiveItemID = domain.NullableID(seq.ID)
	}
	Normalize(&p)
	return p
}

// Normalize repairs a project into the canonical shape in place. Running it
// on an already-canonical project is a no-op:
//
//   - the panel-item list and every scene list are non-nil
//   - every sequence name is non-empty (empty names become "Sequence N",
//     N being the sequence's 1-based ordinal among sequence-typed items)
//   - the active reference resolves to a sequence; a reference to a break or
//     to nothing is replaced by the first sequence in list order, or cleared
//     when no sequence exists
func Normalize(p *domain.Project) {
	p.SchemaVersion = domain.SchemaVersion
	if p.PanelItems == nil {
		p.PanelItems = domain.PanelItems{}
	}
	ordinal := 0
	for _, it := range p.PanelItems {
		seq, ok := it.(*domain.Sequence)
		if !ok {
			continue
		}
		ordinal++
		if seq.Scenes == nil {
			seq.Scenes = []domain.Scene{}
		}
		seq.Name = strings.TrimSpace(seq.Name)
		if seq.Name == "" {
			seq.Name = fmt.Sprintf("Sequence %d", ordinal)
		}
	}
	if p.ActiveItemID != 0 && p.FindSequence(int64(p.ActiveItemID)) == nil {
		p.ActiveItemID = 0
	}
	if p.ActiveItemID == 0 {
		for _, it := range p.PanelItems {
			if it.Kind() == domain.KindSequence {
				p.ActiveItemID = domain.NullableID(it.ItemID())
				break
			}
		}
	}
}

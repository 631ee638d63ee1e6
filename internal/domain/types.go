/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for a shooting-schedule project:
// scenes, the panel-item list (sequences interleaved with schedule breaks),
// and the project envelope that serializes to the .filmproj JSON format.

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SchemaVersion is the current persisted project shape. Older shapes are
// migrated on load, see storage.DecodeProject.
const SchemaVersion = 3

// Well-known scene status values. The field is an open string; these are the
// values the original schedule UI offers by default.
const (
	StatusPending = "Pending"
	StatusNotShot = "NOT SHOT"
	StatusDone    = "Done"
)

// UncategorizedBreak is the day label for a sequence with no schedule break
// ahead of it in the panel-item list.
const UncategorizedBreak = "Uncategorized"

// Scene is one filming unit with scheduling and logistics fields.
// The identifier is a time-derived millisecond value, unique within the
// project. Every other field is unconstrained free text and may be empty.
type Scene struct {
	ID        int64  `json:"id"`
	Number    string `json:"number"`
	Heading   string `json:"heading"`
	Date      string `json:"date"` // ISO YYYY-MM-DD or empty
	Time      string `json:"time"` // 24h HH:MM or empty
	Type      string `json:"type"` // INT/EXT code
	Location  string `json:"location"`
	Pages     string `json:"pages"`
	Duration  string `json:"duration"`
	Status    string `json:"status"`
	Cast      string `json:"cast"`
	Equipment string `json:"equipment"`
	Contact   string `json:"contact"`
}

// FieldValue returns the named scene field as a string. The second return is
// false for field names the scene does not carry; callers treat those as
// non-matching rather than erroring.
func (s Scene) FieldValue(field string) (string, bool) {
	switch field {
	case "number":
		return s.Number, true
	case "heading":
		return s.Heading, true
	case "date":
		return s.Date, true
	case "time":
		return s.Time, true
	case "type":
		return s.Type, true
	case "location":
		return s.Location, true
	case "pages":
		return s.Pages, true
	case "duration":
		return s.Duration, true
	case "status":
		return s.Status, true
	case "cast":
		return s.Cast, true
	case "equipment":
		return s.Equipment, true
	case "contact":
		return s.Contact, true
	}
	return "", false
}

// ItemKind discriminates the two panel-item variants on the wire.
type ItemKind string

const (
	KindSequence      ItemKind = "sequence"
	KindScheduleBreak ItemKind = "schedule_break"
)

// PanelItem is the sum type over Sequence and ScheduleBreak. Both variants
// live in one ordered list; consumption sites switch exhaustively on the
// concrete type.
type PanelItem interface {
	ItemID() int64
	ItemName() string
	Kind() ItemKind
}

// Sequence is a named, ordered collection of scenes representing a shootable
// unit of the schedule. Scene order is insertion order.
type Sequence struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Scenes []Scene `json:"scenes"`
}

func (s *Sequence) ItemID() int64    { return s.ID }
func (s *Sequence) ItemName() string { return s.Name }
func (s *Sequence) Kind() ItemKind   { return KindSequence }

// FindScene returns the index of the scene with the given id, or -1.
func (s *Sequence) FindScene(id int64) int {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return i
		}
	}
	return -1
}

// ScheduleBreak is a named divider (e.g. a shooting-day marker) carrying no
// scenes of its own.
type ScheduleBreak struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (b *ScheduleBreak) ItemID() int64    { return b.ID }
func (b *ScheduleBreak) ItemName() string { return b.Name }
func (b *ScheduleBreak) Kind() ItemKind   { return KindScheduleBreak }

// MarshalJSON adds the type discriminator expected by the wire format.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	type alias Sequence
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindSequence, (*alias)(s)})
}

func (b *ScheduleBreak) MarshalJSON() ([]byte, error) {
	type alias ScheduleBreak
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindScheduleBreak, (*alias)(b)})
}

// PanelItems is the ordered panel-item list with polymorphic JSON decoding.
type PanelItems []PanelItem

func (l *PanelItems) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(PanelItems, 0, len(raws))
	for i, raw := range raws {
		var tag struct {
			Type ItemKind `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("panel item %d: %w", i, err)
		}
		switch tag.Type {
		case KindScheduleBreak:
			var b ScheduleBreak
			if err := json.Unmarshal(raw, &b); err != nil {
				return fmt.Errorf("schedule break %d: %w", i, err)
			}
			out = append(out, &b)
		default:
			// Items without a recognized discriminator have historically been
			// sequences; treat them as such so older files keep loading.
			var s Sequence
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("sequence %d: %w", i, err)
			}
			out = append(out, &s)
		}
	}
	*l = out
	return nil
}

// NullableID marshals the zero value as JSON null, matching the wire format
// where the active item reference is "identifier or null".
type NullableID int64

func (n NullableID) MarshalJSON() ([]byte, error) {
	if n == 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("active item id: %w", err)
	}
	*n = NullableID(v)
	return nil
}

// ProjectInfo holds the free-form production metadata. All fields optional.
type ProjectInfo struct {
	ProdName      string `json:"prodName,omitempty"`
	DirectorName  string `json:"directorName,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	ContactEmail  string `json:"contactEmail,omitempty"`
}

// Project is the canonical shape: the ordered panel-item list, the active
// sequence reference and the production metadata. It serializes to the
// .filmproj manifest and to the persistence slots.
type Project struct {
	SchemaVersion int         `json:"schemaVersion"`
	PanelItems    PanelItems  `json:"panelItems"`
	ActiveItemID  NullableID  `json:"activeItemId"`
	ProjectInfo   ProjectInfo `json:"projectInfo"`
}

// Empty returns the canonical empty project.
func Empty() Project {
	return Project{SchemaVersion: SchemaVersion, PanelItems: PanelItems{}}
}

// FindItem returns the panel item with the given id, or nil.
func (p *Project) FindItem(id int64) PanelItem {
	for _, it := range p.PanelItems {
		if it.ItemID() == id {
			return it
		}
	}
	return nil
}

// FindSequence returns the sequence with the given id, or nil when the id is
// unknown or names a schedule break.
func (p *Project) FindSequence(id int64) *Sequence {
	if seq, ok := p.FindItem(id).(*Sequence); ok {
		return seq
	}
	return nil
}

// ActiveSequence resolves the active item reference. A reference pointing at
// a break or at nothing degrades to nil, never to an error.
func (p *Project) ActiveSequence() *Sequence {
	if p.ActiveItemID == 0 {
		return nil
	}
	return p.FindSequence(int64(p.ActiveItemID))
}

// CountSequences returns the number of sequence-typed panel items.
func (p *Project) CountSequences() int {
	n := 0
	for _, it := range p.PanelItems {
		if it.Kind() == KindSequence {
			n++
		}
	}
	return n
}

// CountScenes returns the total scene count across all sequences.
func (p *Project) CountScenes() int {
	n := 0
	for _, it := range p.PanelItems {
		if seq, ok := it.(*Sequence); ok {
			n += len(seq.Scenes)
		}
	}
	return n
}

// BreakLabelFor scans backward from the given sequence's position and returns
// the name of the nearest preceding schedule break, or UncategorizedBreak.
func (p *Project) BreakLabelFor(sequenceID int64) string {
	idx := -1
	for i, it := range p.PanelItems {
		if it.Kind() == KindSequence && it.ItemID() == sequenceID {
			idx = i
			break
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if b, ok := p.PanelItems[i].(*ScheduleBreak); ok {
			return b.Name
		}
	}
	return UncategorizedBreak
}

// LastContact returns the contact of the last scene in the active sequence.
// It is the carry-over default offered for the next new scene.
func (p *Project) LastContact() string {
	seq := p.ActiveSequence()
	if seq == nil || len(seq.Scenes) == 0 {
		return ""
	}
	return seq.Scenes[len(seq.Scenes)-1].Contact
}

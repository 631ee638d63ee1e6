/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package share builds the handoff artifacts for passing schedule details to
// crew members: a plain-text project summary and per-scene info card images.
package share

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"toshoot/internal/domain"
	"toshoot/internal/export"
	"toshoot/internal/format"
)

// SummaryText renders the project overview message. Empty metadata fields
// show as N/A so the message shape stays stable.
func SummaryText(p domain.Project) string {
	info := p.ProjectInfo
	return fmt.Sprintf(
		"*ToShooT Project Summary*\nProduction: %s\nDirector: %s\nContact: %s\n\nTotal Sequences: %d\nTotal Scenes: %d",
		format.OrNA(info.ProdName),
		format.OrNA(info.DirectorName),
		format.OrNA(info.ContactNumber),
		p.CountSequences(),
		p.CountScenes(),
	)
}

// Artifact is a rendered share payload on disk plus the text that accompanies
// it. ID is unique per render so repeated shares never collide.
type Artifact struct {
	ID    string
	Path  string
	Title string
	Text  string
}

// PrepareSceneCard renders the scene's info card into dir and returns the
// artifact describing it.
func PrepareSceneCard(dir string, info domain.ProjectInfo, sc domain.Scene) (Artifact, error) {
	id := uuid.NewString()
	path := filepath.Join(dir, fmt.Sprintf("scene-card-%s.png", id))
	if err := export.RenderSceneCard(info, sc, path); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		ID:    id,
		Path:  path,
		Title: fmt.Sprintf("Shooting Info: Scene %s", format.OrNA(sc.Number)),
		Text:  fmt.Sprintf("Details for Scene %s - %s", format.OrNA(sc.Number), format.OrNA(sc.Heading)),
	}, nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// projectFileSchema validates the top-level shape of an imported .filmproj
// document: a panel-item array and a projectInfo object are required, item
// internals stay permissive so legacy files keep importing.
const projectFileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["panelItems", "projectInfo"],
  "properties": {
    "schemaVersion": { "type": "integer" },
    "panelItems": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "type": { "type": "string", "enum": ["sequence", "schedule_break"] },
          "id": { "type": "number" },
          "name": { "type": "string" },
          "scenes": { "type": "array" }
        }
      }
    },
    "activeItemId": { "type": ["number", "null"] },
    "projectInfo": { "type": "object" }
  }
}`

// ValidateProjectFile checks imported bytes against the project file schema.
// Invalid JSON and shape violations both come back as a single descriptive
// error; the caller's state is never touched.
func ValidateProjectFile(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(projectFileSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("invalid project file: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid project file format: %s", strings.Join(msgs, "; "))
	}
	return nil
}

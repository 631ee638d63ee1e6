/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes a scene lookup against the derived index.
// Text is matched case-insensitively as a substring. Field optionally
// restricts the match to one indexed column (heading, location, status,
// cast, equipment, contact, number); empty means any. Limit defaults to 100.
type SearchQuery struct {
	Text  string
	Field string
	Limit int
}

// SearchHit is one matching scene with enough context to display it.
type SearchHit struct {
	SceneID      int64
	SequenceID   int64
	SequenceName string
	Number       string
	Heading      string
	Status       string
}

var indexedFields = map[string]string{
	"number":    "number",
	"heading":   "heading",
	"location":  "location",
	"status":    "status",
	"cast":      `"cast"`,
	"equipment": "equipment",
	"contact":   "contact",
}

// SearchScenes runs a query against the scene index at path. Results come
// back in shooting order (sequence position, then scene order).
func SearchScenes(ctx context.Context, path string, q SearchQuery) ([]SearchHit, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.New("search text is required")
	}
	db, err := openIndex(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	like := "%" + strings.ToLower(text) + "%"

	var sb strings.Builder
	var args []any
	sb.WriteString(`SELECT scene_id, sequence_id, sequence_name, number, heading, status FROM scenes WHERE `)
	if q.Field != "" {
		col, ok := indexedFields[q.Field]
		if !ok {
			return nil, fmt.Errorf("unknown search field %q", q.Field)
		}
		sb.WriteString("lower(" + col + ") LIKE ?")
		args = append(args, like)
	} else {
		cols := []string{"number", "heading", "location", "status", `"cast"`, "equipment", "contact"}
		for i, col := range cols {
			if i > 0 {
				sb.WriteString(" OR ")
			}
			sb.WriteString("lower(" + col + ") LIKE ?")
			args = append(args, like)
		}
	}
	sb.WriteString(" ORDER BY seq_pos, scene_id LIMIT ?")
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.SceneID, &h.SequenceID, &h.SequenceName, &h.Number, &h.Heading, &h.Status); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

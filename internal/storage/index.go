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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"toshoot/internal/domain"
	"toshoot/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexFileName is the derived scene index kept next to the slot files.
	IndexFileName = "index.sqlite"

	// indexSchemaVersion tracks the local SQLite schema for the embedded
	// index. Bump when performing breaking schema changes and add migrations.
	indexSchemaVersion = 1
)

// IndexPath returns the scene index location under a data directory.
func IndexPath(dataDir string) string {
	return filepath.Join(dataDir, IndexFileName)
}

// openIndex opens (creating if needed) the scene index database, enables WAL
// mode and ensures the meta/version and scene tables exist. The index is
// purely derived state; the JSON slots stay the source of truth, so dropping
// the file is always safe.
func openIndex(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("index path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scenes (
			scene_id      INTEGER NOT NULL,
			sequence_id   INTEGER NOT NULL,
			sequence_name TEXT    NOT NULL,
			seq_pos       INTEGER NOT NULL,
			number        TEXT,
			heading       TEXT,
			location      TEXT,
			status        TEXT,
			cast          TEXT,
			equipment     TEXT,
			contact       TEXT,
			PRIMARY KEY(sequence_id, scene_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scenes_status ON scenes(status);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx,
			`INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`,
			indexSchemaVersion, version.String(), now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx,
			`UPDATE version SET app=?, updated_at=? WHERE id=1`, version.String(), now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// UpdateIndex rebuilds the scene rows from the canonical project. Replacing
// everything keeps the index trivially consistent; project sizes are a few
// hundred scenes at most.
func UpdateIndex(ctx context.Context, path string, p domain.Project) error {
	db, err := openIndex(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM scenes;"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear scenes: %w", err)
	}
	ins, err := tx.PrepareContext(ctx, `INSERT INTO scenes
		(scene_id, sequence_id, sequence_name, seq_pos, number, heading, location, status, cast, equipment, contact)
		VALUES(?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = ins.Close() }()
	pos := 0
	for _, it := range p.PanelItems {
		seq, ok := it.(*domain.Sequence)
		if !ok {
			continue
		}
		pos++
		for _, sc := range seq.Scenes {
			if _, err := ins.ExecContext(ctx, sc.ID, seq.ID, seq.Name, pos,
				sc.Number, sc.Heading, sc.Location, sc.Status, sc.Cast, sc.Equipment, sc.Contact); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert scene: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

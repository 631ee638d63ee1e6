/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("version: %d", cfg.ConfigVersion)
	}
	if cfg.Storage.DataDir == "" || cfg.Storage.ArtifactsDir == "" {
		t.Fatalf("dirs missing: %+v", cfg.Storage)
	}
	if cfg.Autosave.IntervalSeconds != 120 {
		t.Fatalf("autosave default: %d", cfg.Autosave.IntervalSeconds)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("logging defaults: %+v", cfg.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvAutosaveSec, "30")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogSource, "true")

	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Storage.DataDir != dir {
		t.Fatalf("data dir override: %q", cfg.Storage.DataDir)
	}
	if cfg.Autosave.IntervalSeconds != 30 {
		t.Fatalf("autosave override: %d", cfg.Autosave.IntervalSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level override: %q", cfg.Logging.Level)
	}
	if !cfg.Logging.Source {
		t.Fatal("source override")
	}
}

func TestEnvOverrideIgnoresInvalidInterval(t *testing.T) {
	t.Setenv(EnvAutosaveSec, "not-a-number")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Autosave.IntervalSeconds != 120 {
		t.Fatalf("invalid interval must keep default, got %d", cfg.Autosave.IntervalSeconds)
	}
}

func TestMergeInto(t *testing.T) {
	dst := Defaults()
	src := AppConfig{
		Storage:  StorageConfig{DataDir: "  /custom/data  "},
		Autosave: AutosaveConfig{IntervalSeconds: 60},
		Logging:  LoggingConfig{Level: " WARN "},
	}
	mergeInto(&dst, &src)
	if dst.Storage.DataDir != "/custom/data" {
		t.Fatalf("data dir: %q", dst.Storage.DataDir)
	}
	if dst.Storage.ArtifactsDir == "" {
		t.Fatal("unset fields must keep defaults")
	}
	if dst.Autosave.IntervalSeconds != 60 {
		t.Fatalf("interval: %d", dst.Autosave.IntervalSeconds)
	}
	if dst.Logging.Level != "warn" {
		t.Fatalf("level: %q", dst.Logging.Level)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Defaults()
	cfg.Storage.DataDir = filepath.Join(home, "mydata")
	cfg.Autosave.IntervalSeconds = 45
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Storage.DataDir != cfg.Storage.DataDir {
		t.Fatalf("data dir: %q", loaded.Storage.DataDir)
	}
	if loaded.Autosave.IntervalSeconds != 45 {
		t.Fatalf("interval: %d", loaded.Autosave.IntervalSeconds)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/x")
	name, ok := EnvOverrideFor("storage.data_dir")
	if !ok || name != EnvDataDir {
		t.Fatalf("got %q %v", name, ok)
	}
	if _, ok := EnvOverrideFor("storage.artifacts_dir"); ok {
		t.Fatal("unset env must not report an override")
	}
}

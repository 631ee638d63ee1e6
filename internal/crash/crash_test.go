package crash

import (
	"os"
	"strings"
	"testing"

	"toshoot/internal/domain"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport("", "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "ToShooT Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestWriteReportCreatesFileInDataDir(t *testing.T) {
	dir := t.TempDir()
	path, err := writeReport(dir, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("expected crash report under data dir, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func TestWriteEmergencyDump(t *testing.T) {
	dir := t.TempDir()
	p := domain.Project{
		SchemaVersion: domain.SchemaVersion,
		PanelItems: domain.PanelItems{
			&domain.Sequence{ID: 2, Name: "Opening", Scenes: []domain.Scene{{ID: 10, Heading: "A"}}},
		},
		ActiveItemID: 2,
	}
	path, err := writeEmergencyDump(dir, p)
	if err != nil {
		t.Fatalf("dump error: %v", err)
	}
	if !strings.HasSuffix(path, ".filmproj") {
		t.Fatalf("expected .filmproj dump, got %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(b), `"Opening"`) {
		t.Fatalf("dump missing content: %s", b)
	}
}

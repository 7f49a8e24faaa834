package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	assPath := filepath.Join(tmpDir, "test.ass")
	if err := os.WriteFile(assPath, []byte(sampleScript), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	doc, report, err := LoadFile(assPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(doc.Events) != 3 {
		t.Errorf("expected 3 events, got %d", len(doc.Events))
	}
	if len(report.Dropped) != 0 {
		t.Errorf("expected nothing dropped, got %+v", report.Dropped)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, _, err := LoadFile(filepath.Join(tmpDir, "missing.ass"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	_, _, err = LoadFile(filepath.Join(tmpDir, "captions.srt"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSaveFile(t *testing.T) {
	tmpDir := t.TempDir()
	doc := Parse(sampleScript)

	assPath := filepath.Join(tmpDir, "out", "script.ass")
	if err := SaveFile(doc, assPath); err != nil {
		t.Fatalf("SaveFile(ass) failed: %v", err)
	}
	data, err := os.ReadFile(assPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != Serialize(doc) {
		t.Error("ass output differs from Serialize")
	}

	srtPath := filepath.Join(tmpDir, "script.srt")
	if err := SaveFile(doc, srtPath); err != nil {
		t.Fatalf("SaveFile(srt) failed: %v", err)
	}
	data, err = os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:01,000 --> 00:00:04,000\nHello, world!\n\n") {
		t.Errorf("unexpected srt output:\n%s", data)
	}

	if err := SaveFile(doc, filepath.Join(tmpDir, "script.vtt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestGetFormatFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.ass", FormatASS},
		{"a.SSA", FormatASS},
		{"dir/a.srt", FormatSRT},
		{"a.vtt", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := GetFormatFromExtension(tt.path); got != tt.want {
			t.Errorf("GetFormatFromExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

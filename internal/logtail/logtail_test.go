package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","ts":"2026-03-14T21:30:00.000Z","caller":"studio/client.go:188","msg":"invalid widget parameter replaced","widget":"moon-phase","field":"observer.latitude","value":95,"accepted":"-90..90"}`

	e := Parse(line)
	if e.Raw != "" {
		t.Fatalf("Raw = %q, want empty", e.Raw)
	}
	if e.Level != "WARN" {
		t.Errorf("Level = %q, want WARN", e.Level)
	}
	if e.Message != "invalid widget parameter replaced" {
		t.Errorf("Message = %q", e.Message)
	}
	want := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", e.Time, want)
	}
	wantFields := []Field{
		{"accepted", "-90..90"},
		{"field", "observer.latitude"},
		{"value", "95"},
		{"widget", "moon-phase"},
	}
	if !reflect.DeepEqual(e.Fields, wantFields) {
		t.Errorf("Fields = %v, want %v", e.Fields, wantFields)
	}
	if v, ok := e.Field("widget"); !ok || v != "moon-phase" {
		t.Errorf("Field(widget) = %q, %v", v, ok)
	}
	if _, ok := e.Field("caller"); ok {
		t.Errorf("caller should be dropped")
	}
}

func TestParse_NonJSONKeepsRaw(t *testing.T) {
	for _, line := range []string{"plain text", "{broken"} {
		if e := Parse(line); e.Raw != line {
			t.Errorf("Parse(%q).Raw = %q", line, e.Raw)
		}
	}
}

func TestFormat(t *testing.T) {
	e := Entry{
		Level:   "ERROR",
		Message: "widget request failed",
		Fields: []Field{
			{"error", `"request timed out after 15s"`},
			{"outcome", "timeout"},
		},
	}
	got := Format(e)
	want := `ERROR widget request failed error="request timed out after 15s" outcome=timeout`
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got := Format(Entry{Raw: "plain"}); got != "plain" {
		t.Errorf("Format(raw) = %q", got)
	}
}

func TestReadEntries_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astro.log")
	content := `{"level":"info","msg":"widget rendered"}` + "\n\n" + `{"level":"error","msg":"widget request failed"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := ReadEntries(path, 10)
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[1].Level != "ERROR" {
		t.Errorf("entries[1].Level = %q", entries[1].Level)
	}
}

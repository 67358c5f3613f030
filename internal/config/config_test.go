package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ExportFilename != "flashcards_export.csv" {
		t.Errorf("ExportFilename = %q, want default", cfg.ExportFilename)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"export_filename": "deck.csv", "db_max_open_conns": 1, "disabled_tools": ["deck_clear"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ExportFilename != "deck.csv" {
		t.Errorf("ExportFilename = %q, want %q", cfg.ExportFilename, "deck.csv")
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
	if !reflect.DeepEqual(cfg.DisabledTools, []string{"deck_clear"}) {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{ExportFilename: "custom.csv", AllowUnsafePaths: true}

	merged := Merge(base, overlay)
	if merged.ExportFilename != "custom.csv" {
		t.Errorf("ExportFilename = %q, want overlay value", merged.ExportFilename)
	}
	if !merged.AllowUnsafePaths {
		t.Error("AllowUnsafePaths = false, want true")
	}
}

func TestMerge_ZeroOverlayKeepsBase(t *testing.T) {
	base := &Config{ExportFilename: "base.csv", DBMaxOpenConns: 2}
	merged := Merge(base, &Config{})

	if merged.ExportFilename != "base.csv" {
		t.Errorf("ExportFilename = %q, want base value", merged.ExportFilename)
	}
	if merged.DBMaxOpenConns != 2 {
		t.Errorf("DBMaxOpenConns = %d, want 2", merged.DBMaxOpenConns)
	}
}

func TestMerge_ArraysDeduplicated(t *testing.T) {
	base := &Config{AllowedPaths: []string{"/a", "/b"}}
	overlay := &Config{AllowedPaths: []string{"/b", " /c "}}

	merged := Merge(base, overlay)
	want := []string{"/a", "/b", "/c"}
	if !reflect.DeepEqual(merged.AllowedPaths, want) {
		t.Errorf("AllowedPaths = %v, want %v", merged.AllowedPaths, want)
	}
}

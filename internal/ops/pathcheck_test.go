package ops

import (
	"path/filepath"
	"testing"

	"cardbox/internal/config"
	"cardbox/internal/errors"
)

func TestValidatePath_Empty(t *testing.T) {
	err := ValidatePath("", nil, ".csv")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestValidatePath_Traversal(t *testing.T) {
	err := ValidatePath("../escape.csv", nil, ".csv")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestValidatePath_WrongExtension(t *testing.T) {
	cfg := &config.Config{AllowUnsafePaths: true}
	err := ValidatePath("/tmp/out.txt", cfg, ".csv")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestValidatePath_OutsideAllowedDirs(t *testing.T) {
	err := ValidatePath(filepath.Join(t.TempDir(), "out.csv"), &config.Config{}, ".csv")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestValidatePath_AllowedPathsEntry(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{AllowedPaths: []string{dir}}

	if err := ValidatePath(filepath.Join(dir, "out.csv"), cfg, ".csv"); err != nil {
		t.Errorf("ValidatePath failed for allowed dir: %v", err)
	}

	// Subdirectories of an allowed dir are rejected
	err := ValidatePath(filepath.Join(dir, "sub", "out.csv"), cfg, ".csv")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST for subdirectory", err)
	}
}

func TestValidatePath_UnsafeAllowsAnywhere(t *testing.T) {
	cfg := &config.Config{AllowUnsafePaths: true}
	if err := ValidatePath(filepath.Join(t.TempDir(), "out.csv"), cfg, ".csv"); err != nil {
		t.Errorf("ValidatePath failed with AllowUnsafePaths: %v", err)
	}
}

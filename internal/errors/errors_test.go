package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestBoxError_Error(t *testing.T) {
	err := NewInvalidRequest("path is required")
	if err.Error() != "INVALID_REQUEST: path is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewFileNotFound(t *testing.T) {
	err := NewFileNotFound("/tmp/missing.csv")
	if err.Code != ErrFileNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrFileNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["path"] != "/tmp/missing.csv" {
		t.Errorf("Details[path] = %v", err.Details["path"])
	}
}

func TestNewEntryNotFound(t *testing.T) {
	err := NewEntryNotFound("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if err.Code != ErrEntryNotFound || err.Status != 404 {
		t.Errorf("err = %+v, want ENTRY_NOT_FOUND 404", err)
	}
}

func TestNewFetchFailed(t *testing.T) {
	err := NewFetchFailed("http://example.com/deck.csv", stderrors.New("connection refused"))
	if err.Code != ErrFetchFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrFetchFailed)
	}
	if !strings.Contains(err.Message, "connection refused") {
		t.Errorf("Message = %q, want cause included", err.Message)
	}

	// Without a cause (e.g. non-success HTTP status)
	err = NewFetchFailed("http://example.com/deck.csv", nil)
	if !strings.Contains(err.Message, "http://example.com/deck.csv") {
		t.Errorf("Message = %q, want source included", err.Message)
	}
}

func TestNewSnapshotFailed(t *testing.T) {
	err := NewSnapshotFailed(stderrors.New("disk full"))
	if err.Code != ErrSnapshotFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrSnapshotFailed)
	}
	if !strings.Contains(err.Message, "disk full") {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	err := NewFetchFailed("x", nil)
	if !Is(err, ErrFetchFailed) {
		t.Error("Is(err, ErrFetchFailed) = false, want true")
	}
	if Is(err, ErrInternal) {
		t.Error("Is(err, ErrInternal) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrInternal) {
		t.Error("Is(plain error, code) = true, want false")
	}
}

package web

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardbox/internal/config"
	"cardbox/internal/db"
	"cardbox/internal/deck"
	"cardbox/internal/store"
)

func setupTest(t *testing.T) (*Handlers, *store.Store) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	st := store.Open(database, nil)
	cfg := config.DefaultConfig()

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}
	renderer := NewRenderer(templateSub, "test")

	return &Handlers{
		st:       st,
		cfg:      cfg,
		renderer: renderer,
	}, st
}

// --- HandleDeck ---

func TestHandleDeck_Default(t *testing.T) {
	h, st := setupTest(t)
	st.Append(deck.NewSeparator("capitals.csv"), deck.NewCard("France", "Paris"))

	req := httptest.NewRequest("GET", "/deck", nil)
	rec := httptest.NewRecorder()
	h.HandleDeck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "capitals.csv") {
		t.Error("expected separator title in response")
	}
	if !strings.Contains(body, "France") {
		t.Error("expected card prompt in response")
	}
	if !strings.Contains(body, "1 cards") {
		t.Error("expected stats line in response")
	}
}

func TestHandleDeck_Empty(t *testing.T) {
	h, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/deck", nil)
	rec := httptest.NewRecorder()
	h.HandleDeck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deck is empty") {
		t.Error("expected empty-deck message in response")
	}
}

func TestHandleDeck_Pagination(t *testing.T) {
	h, st := setupTest(t)
	for i := 0; i < 5; i++ {
		st.Append(deck.NewCard("Q", "A"))
	}

	req := httptest.NewRequest("GET", "/deck?limit=2&offset=2", nil)
	rec := httptest.NewRecorder()
	h.HandleDeck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Next") || !strings.Contains(body, "Previous") {
		t.Error("expected both pagination links")
	}
	if !strings.Contains(body, "5 total") {
		t.Error("expected total count in response")
	}
}

func TestHandleDeck_InvalidLimitFallsBack(t *testing.T) {
	h, st := setupTest(t)
	st.Append(deck.NewCard("Q", "A"))

	req := httptest.NewRequest("GET", "/deck?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.HandleDeck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

// --- HandleDetail ---

func TestHandleDetail_Card(t *testing.T) {
	h, st := setupTest(t)
	st.Append(deck.NewCard("What is **bold**?", "Emphasis"))
	id := st.Entries()[0].ID

	req := httptest.NewRequest("GET", "/deck/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Error("expected markdown rendered as HTML")
	}
	if !strings.Contains(body, "Emphasis") {
		t.Error("expected response text in body")
	}
}

func TestHandleDetail_Separator(t *testing.T) {
	h, st := setupTest(t)
	st.Append(deck.NewSeparator("terms.csv"))
	id := st.Entries()[0].ID

	req := httptest.NewRequest("GET", "/deck/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "terms.csv") {
		t.Error("expected separator title in response")
	}
}

func TestHandleDetail_PrevNextLinks(t *testing.T) {
	h, st := setupTest(t)
	st.Append(deck.NewCard("Q1", "A1"), deck.NewCard("Q2", "A2"), deck.NewCard("Q3", "A3"))
	entries := st.Entries()

	req := httptest.NewRequest("GET", "/deck/"+entries[1].ID, nil)
	req.SetPathValue("id", entries[1].ID)
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, entries[0].ID) {
		t.Error("expected previous-entry link")
	}
	if !strings.Contains(body, entries[2].ID) {
		t.Error("expected next-entry link")
	}
}

func TestHandleDetail_NotFound(t *testing.T) {
	h, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/deck/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleDetail_EmptyID(t *testing.T) {
	h, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/deck/", nil)
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// --- Error rendering ---

func TestErrorRendering_JSONError(t *testing.T) {
	h, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/deck/nope", nil)
	req.SetPathValue("id", "nope")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatal("no error object in payload")
	}
	if errorObj["code"] != "ENTRY_NOT_FOUND" {
		t.Errorf("code = %v, want ENTRY_NOT_FOUND", errorObj["code"])
	}
}

func TestErrorRendering_FullErrorPage(t *testing.T) {
	h, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/deck/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if !strings.Contains(rec.Body.String(), "Error 404") {
		t.Error("expected full error page")
	}
}

// --- Server wiring ---

func TestServerRoutes(t *testing.T) {
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	defer database.Close()

	st := store.Open(database, nil)
	st.Append(deck.NewCard("Q", "A"))

	srv := NewServer(st, config.DefaultConfig(), "test", "127.0.0.1", 0)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Errorf("GET / status = %d, want 302", rec.Code)
	}

	req = httptest.NewRequest("GET", "/deck", nil)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /deck status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected security headers on responses")
	}

	req = httptest.NewRequest("GET", "/static/style.css", nil)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /static/style.css status = %d, want 200", rec.Code)
	}
}

// --- Helpers ---

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"limit=5", 5},
		{"limit=abc", 20},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/deck?"+tt.query, nil)
		if got := parseIntParam(req, "limit", 20); got != tt.want {
			t.Errorf("parseIntParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestDetailTitle(t *testing.T) {
	tests := []struct {
		name        string
		isSeparator bool
		title       string
		prompt      string
		want        string
	}{
		{"separator uses title", true, "file.csv", "", "file.csv"},
		{"card uses prompt", false, "", "What is Go?", "What is Go?"},
		{"long prompt truncated", false, "", strings.Repeat("x", 50), strings.Repeat("x", 40) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detailTitle(tt.isSeparator, tt.title, tt.prompt); got != tt.want {
				t.Errorf("detailTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

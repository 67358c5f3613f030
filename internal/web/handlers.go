package web

import (
	"net/http"
	"strconv"

	"cardbox/internal/config"
	"cardbox/internal/deck"
	"cardbox/internal/errors"
	"cardbox/internal/ops"
	"cardbox/internal/store"
)

// Handlers contains HTTP route handlers for the deck viewer.
type Handlers struct {
	st       *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleDeck handles GET /deck — list deck entries in study order.
func (h *Handlers) HandleDeck(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Limit:  parseIntParam(r, "limit", 50),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.List(h.st, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	stats, err := ops.Stats(h.st)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "deck", DeckPageData{
		PageData: PageData{
			Title:   "Deck",
			Version: h.renderer.version,
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		Stats:      stats,
	})
}

// HandleDetail handles GET /deck/{id} — view a single entry.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	entries := h.st.Entries()
	idx := -1
	for i, e := range entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		h.renderer.renderError(w, r, errors.NewEntryNotFound(id))
		return
	}

	e := entries[idx]
	isSep := e.Kind == deck.KindSeparator
	data := DetailPageData{
		PageData: PageData{
			Title:   detailTitle(isSep, e.Title, e.Prompt),
			Version: h.renderer.version,
		},
		Entry: ops.ListItem{
			Position: idx,
			ID:       e.ID,
			Kind:     e.Kind,
			Title:    e.Title,
			Prompt:   e.Prompt,
			Response: e.Response,
		},
		IsSeparator: isSep,
	}
	if !data.IsSeparator {
		data.PromptHTML = renderMarkdown(e.Prompt)
		data.ResponseHTML = renderMarkdown(e.Response)
	}
	if idx > 0 {
		data.PrevID = entries[idx-1].ID
	}
	if idx < len(entries)-1 {
		data.NextID = entries[idx+1].ID
	}

	h.renderer.renderPage(w, "detail", data)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// detailTitle returns the separator title or a truncated prompt.
func detailTitle(isSeparator bool, title, prompt string) string {
	if isSeparator {
		return title
	}
	if len(prompt) > 40 {
		return prompt[:40] + "..."
	}
	return prompt
}

package ops

import (
	"cardbox/internal/deck"
	"cardbox/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: DefaultListLimit, capped at MaxListLimit
	Offset int
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []ListItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ListItem is one deck entry with its position in study order.
type ListItem struct {
	Position int       `json:"position"`
	ID       string    `json:"id"`
	Kind     deck.Kind `json:"kind"`
	Title    string    `json:"title,omitempty"`
	Prompt   string    `json:"prompt,omitempty"`
	Response string    `json:"response,omitempty"`
}

// List returns a page of the deck in study order.
func List(st *store.Store, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	entries := st.Entries()
	total := len(entries)

	items := []ListItem{}
	for i := offset; i < total && len(items) < limit; i++ {
		items = append(items, toListItem(i, entries[i]))
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

func toListItem(position int, e deck.Entry) ListItem {
	return ListItem{
		Position: position,
		ID:       e.ID,
		Kind:     e.Kind,
		Title:    e.Title,
		Prompt:   e.Prompt,
		Response: e.Response,
	}
}

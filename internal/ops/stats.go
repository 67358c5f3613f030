package ops

import (
	"cardbox/internal/deck"
	"cardbox/internal/store"
)

// StatsOutput contains deck counts.
type StatsOutput struct {
	Separators int `json:"separators"`
	Cards      int `json:"cards"`
	Total      int `json:"total"`
}

// Stats counts the deck's separators and cards.
func Stats(st *store.Store) (*StatsOutput, error) {
	out := &StatsOutput{}
	for _, e := range st.Entries() {
		switch e.Kind {
		case deck.KindSeparator:
			out.Separators++
		case deck.KindCard:
			out.Cards++
		}
		out.Total++
	}
	return out, nil
}

package deck

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind distinguishes the two entry variants.
type Kind string

const (
	// KindSeparator marks the start of a group of cards from one source.
	KindSeparator Kind = "separator"

	// KindCard is a single study unit.
	KindCard Kind = "card"
)

// Entry is one element of the deck: either a separator or a card.
// Kind selects which fields are meaningful: Title for separators,
// Prompt/Response for cards.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string `json:"id"`

	// Kind is the entry variant tag
	Kind Kind `json:"kind"`

	// Title is the source name this separator introduces (separators only)
	Title string `json:"title,omitempty"`

	// Prompt is the front side of the card (cards only)
	Prompt string `json:"prompt,omitempty"`

	// Response is the back side of the card (cards only)
	Response string `json:"response,omitempty"`
}

// NewSeparator creates a separator entry with a fresh ULID.
func NewSeparator(title string) Entry {
	return Entry{
		ID:    NewID(),
		Kind:  KindSeparator,
		Title: title,
	}
}

// NewCard creates a card entry with a fresh ULID.
// Either field may be empty; callers must not create a card with both empty.
func NewCard(prompt, response string) Entry {
	return Entry{
		ID:       NewID(),
		Kind:     KindCard,
		Prompt:   prompt,
		Response: response,
	}
}

// NewID generates a new ULID.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

package ops

import (
	"cardbox/internal/store"
)

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Cleared int    `json:"cleared"`
	Message string `json:"message"`
}

// Clear empties the deck and its snapshot after the confirmer agrees.
// Refusal leaves both untouched.
func Clear(st *store.Store, confirmer store.Confirmer) (*ClearOutput, error) {
	count := st.Len()
	if !st.Clear(confirmer) {
		return &ClearOutput{
			Cleared: 0,
			Message: "clear aborted",
		}, nil
	}

	message := "Deck already empty"
	if count > 0 {
		message = "Deleted all entries"
	}
	return &ClearOutput{
		Cleared: count,
		Message: message,
	}, nil
}

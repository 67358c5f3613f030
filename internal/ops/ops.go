package ops

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

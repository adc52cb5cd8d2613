package library

import "github.com/icemuppet/cinema/pkg/scene"

// ItemFilter specifies criteria for listing items.
// Nil fields match everything; Limit of zero disables pagination.
type ItemFilter struct {
	Category *scene.Category
	Key      *string
	Archived *bool
	Limit    int
	Offset   int
}

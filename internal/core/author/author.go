package author

import "time"

// Author represents the creator of one or more books in the catalog.
//
// An author is never persisted without at least one book beyond the
// operation that removed its last one: the cascading book delete
// removes the author in the same transaction.
type Author struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"` // nil means living or unknown
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateInput carries the caller-supplied fields for a new author.
// Dates are calendar-date strings (YYYY-MM-DD) and optional.
type CreateInput struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	DateOfDeath string `json:"date_of_death"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldBirthDate   = "birth_date"
	FieldDateOfDeath = "date_of_death"
)

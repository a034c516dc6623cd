// Package lookup implements ISBN-based book discovery against an external
// bibliographic service, including the two-step confirmation flow that
// guards creation of previously unknown authors.
package lookup

import "time"

// State tracks where a proposal sits in the confirmation flow.
//
// A proposal starts conceptually at [StateAwaitingISBN] (nothing looked up
// yet), moves to [StateAwaitingConfirmation] when the lookup surfaced an
// author the catalog does not know, and ends [StateResolved] once the
// author reference is settled. Nothing is written to the catalog before a
// proposal is resolved.
type State string

const (
	StateAwaitingISBN         State = "awaiting_isbn"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateResolved             State = "resolved"
)

// Proposal is a candidate book/author pair produced by an external lookup.
//
// Pending proposals live in the proposal store under Token until they are
// confirmed or expire; they are never part of the catalog itself.
type Proposal struct {
	Token      string    `json:"token"`
	State      State     `json:"state"`
	ISBN       string    `json:"isbn"`
	Title      string    `json:"title"`
	Year       *int      `json:"year,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	AuthorID   int64     `json:"author_id,omitempty"` // set once resolved
	CreatedAt  time.Time `json:"created_at"`
}

// Record is the raw extract from the first matching upstream record.
type Record struct {
	Title      string
	AuthorName string // first listed author, empty when the record has none
	Year       string // first four characters of the published date, or ""
}

// Global field names for validation
const (
	FieldISBN  = "isbn"
	FieldToken = "token"
)

package book

import (
	"time"

	"github.com/anhtran/libris/internal/core/author"
)

// Book is a single catalogued title. Every book references exactly one
// existing author; the reference is enforced by a foreign key.
type Book struct {
	ID              int64     `json:"id"`
	ISBN            *string   `json:"isbn,omitempty"` // optional, unique when present
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	AuthorID        int64     `json:"author_id"`
	AuthorName      string    `json:"author_name,omitempty"` // joined from authors, never stored
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateInput carries the caller-supplied fields for a new book.
type CreateInput struct {
	Title           string `json:"title"`
	ISBN            string `json:"isbn"`
	PublicationYear *int   `json:"publication_year"`
	AuthorID        int64  `json:"author_id"`
}

// Filter holds the parameters for a filtered book listing.
type Filter struct {
	// Search matches case-insensitively against the book title OR the
	// author's name, applied before sorting.
	Search string
	// AuthorID restricts the listing to one author's books.
	AuthorID int64
}

// Sort keys accepted by ListBooks.
const (
	SortTitle  = "title"
	SortAuthor = "author"
	SortYear   = "year"
)

// DeleteResult reports what a cascading book delete removed.
//
// DeletedAuthor is populated only when the book was the author's last
// remaining title, in which case the author was removed in the same
// transaction.
type DeleteResult struct {
	DeletedBook   *Book          `json:"deleted_book"`
	DeletedAuthor *author.Author `json:"deleted_author,omitempty"`
}

// Global field names for validation
const (
	FieldTitle           = "title"
	FieldISBN            = "isbn"
	FieldPublicationYear = "publication_year"
	FieldAuthorID        = "author_id"
	FieldSort            = "sort"
)

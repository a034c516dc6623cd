package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table           string
	ID              string
	ISBN            string
	Title           string
	Slug            string
	PublicationYear string
	AuthorID        string
	CreatedAt       string
	UpdatedAt       string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:           "books",
	ID:              "id",
	ISBN:            "isbn",
	Title:           "title",
	Slug:            "slug",
	PublicationYear: "publication_year",
	AuthorID:        "author_id",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
}

// BookUniqueISBN is the unique index guarding ISBN collisions.
const BookUniqueISBN = "books_isbn_key"

func (t BookTable) Columns() []string {
	return []string{t.ID, t.ISBN, t.Title, t.Slug, t.PublicationYear, t.AuthorID, t.CreatedAt, t.UpdatedAt}
}

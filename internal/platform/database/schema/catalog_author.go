package schema

// AuthorTable represents the 'authors' table
type AuthorTable struct {
	Table       string
	ID          string
	Name        string
	BirthDate   string
	DateOfDeath string
	CreatedAt   string
	UpdatedAt   string
}

// Author is the schema definition for authors
var Author = AuthorTable{
	Table:       "authors",
	ID:          "id",
	Name:        "name",
	BirthDate:   "birth_date",
	DateOfDeath: "date_of_death",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// AuthorUniqueName is the unique index guarding author-name collisions.
// The store relies on it for the constrained-insert duplicate check.
const AuthorUniqueName = "authors_name_key"

func (t AuthorTable) Columns() []string {
	return []string{t.ID, t.Name, t.BirthDate, t.DateOfDeath, t.CreatedAt, t.UpdatedAt}
}

package author

import "context"

// Repository has no delete operation on purpose: the only path that removes
// an author is the cascading book delete owned by the book store.
type Repository interface {
	ListAuthors(context context.Context) ([]*Author, error)
	GetAuthor(context context.Context, id int64) (*Author, error)
	GetAuthorByName(context context.Context, name string) (*Author, error)
	CreateAuthor(context context.Context, a *Author) error
}

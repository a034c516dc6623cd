package book

import "context"

type Repository interface {
	ListBooks(context context.Context, f Filter, sort string) ([]*Book, error)
	GetBook(context context.Context, id int64) (*Book, error)
	CreateBook(context context.Context, b *Book) error
	CountByAuthor(context context.Context, authorID int64) (int, error)

	// DeleteBookCascading removes the book and, when it was the author's
	// last title, the author too — as one atomic unit.
	DeleteBookCascading(context context.Context, id int64) (*DeleteResult, error)
}

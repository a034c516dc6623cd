package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anhtran/libris/internal/platform/validate"
	"github.com/anhtran/libris/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListBooks returns the filtered, sorted catalog view.
//
// An empty sort key falls back to title ordering. Unknown sort keys are
// rejected before any store access.
func (service *Service) ListBooks(context context.Context, f Filter, sort string) ([]*Book, error) {
	if sort == "" {
		sort = SortTitle
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldSort, sort, SortTitle, SortAuthor, SortYear)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.ListBooks(context, f, sort)
}

func (service *Service) GetBook(context context.Context, id int64) (*Book, error) {
	return service.repo.GetBook(context, id)
}

// CountBooksByAuthor reports how many titles the author currently has.
func (service *Service) CountBooksByAuthor(context context.Context, authorID int64) (int, error) {
	return service.repo.CountByAuthor(context, authorID)
}

// CreateBook validates the input and persists a new book.
//
// The author reference and ISBN uniqueness are enforced by the store's
// single constrained insert, not by separate pre-checks.
func (service *Service) CreateBook(context context.Context, input CreateInput) (*Book, error) {
	isbn := normalizeISBN(input.ISBN)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.MaxLen(FieldISBN, isbn, 13)
	validator.Custom(FieldAuthorID, input.AuthorID <= 0, "Must be a positive id")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	book := &Book{
		Title:           input.Title,
		Slug:            slug.From(input.Title),
		PublicationYear: input.PublicationYear,
		AuthorID:        input.AuthorID,
	}
	if isbn != "" {
		book.ISBN = &isbn
	}

	if err := service.repo.CreateBook(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int64("book_id", book.ID),
		slog.String("title", book.Title),
		slog.Int64("author_id", book.AuthorID),
	)
	return book, nil
}

// DeleteBook removes the book and reports whether its author went with it.
func (service *Service) DeleteBook(context context.Context, id int64) (*DeleteResult, error) {
	result, err := service.repo.DeleteBookCascading(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("book_deleted",
		slog.Int64("book_id", result.DeletedBook.ID),
		slog.String("title", result.DeletedBook.Title),
	)
	if result.DeletedAuthor != nil {
		service.logger.Warn("orphaned_author_deleted",
			slog.Int64("author_id", result.DeletedAuthor.ID),
			slog.String("name", result.DeletedAuthor.Name),
		)
	}

	return result, nil
}

// normalizeISBN strips hyphens and spaces so the stored form matches the
// unique constraint regardless of how the caller formatted the identifier.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

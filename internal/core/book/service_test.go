package book_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhtran/libris/internal/core/author"
	"github.com/anhtran/libris/internal/core/book"
	"github.com/anhtran/libris/internal/platform/apperr"
)

// fakeRepository keeps books and authors in memory and mirrors the real
// store's cascade semantics: deleting an author's last book removes the
// author in the same operation.
type fakeRepository struct {
	books      map[int64]*book.Book
	authors    map[int64]*author.Author
	nextBookID int64
	lastSort   string
	lastFilter book.Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:      make(map[int64]*book.Book),
		authors:    make(map[int64]*author.Author),
		nextBookID: 1,
	}
}

func (r *fakeRepository) addAuthor(id int64, name string) {
	r.authors[id] = &author.Author{ID: id, Name: name}
}

func (r *fakeRepository) ListBooks(_ context.Context, f book.Filter, sort string) ([]*book.Book, error) {
	r.lastFilter = f
	r.lastSort = sort

	list := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		list = append(list, b)
	}
	return list, nil
}

func (r *fakeRepository) GetBook(_ context.Context, id int64) (*book.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

func (r *fakeRepository) CreateBook(_ context.Context, b *book.Book) error {
	if _, ok := r.authors[b.AuthorID]; !ok {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   book.FieldAuthorID,
			Message: "Author does not exist",
		})
	}
	for _, existing := range r.books {
		if b.ISBN != nil && existing.ISBN != nil && *existing.ISBN == *b.ISBN {
			return apperr.Conflict("A book with this ISBN already exists")
		}
	}
	b.ID = r.nextBookID
	r.nextBookID++
	r.books[b.ID] = b
	return nil
}

func (r *fakeRepository) CountByAuthor(_ context.Context, authorID int64) (int, error) {
	total := 0
	for _, b := range r.books {
		if b.AuthorID == authorID {
			total++
		}
	}
	return total, nil
}

func (r *fakeRepository) DeleteBookCascading(ctx context.Context, id int64) (*book.DeleteResult, error) {
	deleted, ok := r.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	delete(r.books, id)

	result := &book.DeleteResult{DeletedBook: deleted}

	remaining, _ := r.CountByAuthor(ctx, deleted.AuthorID)
	if remaining == 0 {
		if orphaned, present := r.authors[deleted.AuthorID]; present {
			delete(r.authors, deleted.AuthorID)
			result.DeletedAuthor = orphaned
		}
	}
	return result, nil
}

func newTestService(repo book.Repository) *book.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return book.NewService(repo, logger)
}

func createBook(t *testing.T, service *book.Service, title, isbn string, authorID int64) *book.Book {
	t.Helper()
	created, err := service.CreateBook(context.Background(), book.CreateInput{
		Title:    title,
		ISBN:     isbn,
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return created
}

/*
TestCreateBook_Success verifies a valid book is persisted with a derived slug.
*/
func TestCreateBook_Success(t *testing.T) {
	repo := newFakeRepository()
	repo.addAuthor(1, "George Orwell")
	service := newTestService(repo)

	created := createBook(t, service, "Animal Farm", "9780452284241", 1)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "animal-farm", created.Slug)
	require.NotNil(t, created.ISBN)
	assert.Equal(t, "9780452284241", *created.ISBN)
}

/*
TestCreateBook_NormalizesISBN verifies hyphens and spaces are stripped
before validation and storage.
*/
func TestCreateBook_NormalizesISBN(t *testing.T) {
	repo := newFakeRepository()
	repo.addAuthor(1, "J.K. Rowling")
	service := newTestService(repo)

	created := createBook(t, service, "Harry Potter and the Philosopher's Stone", "978-0-7475-3269 9", 1)

	require.NotNil(t, created.ISBN)
	assert.Equal(t, "9780747532699", *created.ISBN)
}

/*
TestCreateBook_OptionalISBN verifies a book without an ISBN stores nil, not
an empty string that would collide on the unique index.
*/
func TestCreateBook_OptionalISBN(t *testing.T) {
	repo := newFakeRepository()
	repo.addAuthor(1, "Charles Dickens")
	service := newTestService(repo)

	created := createBook(t, service, "Oliver Twist", "", 1)
	assert.Nil(t, created.ISBN)
}

/*
TestCreateBook_Validation covers the pre-store rejection rules.
*/
func TestCreateBook_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input book.CreateInput
		field string
	}{
		{"empty_title", book.CreateInput{Title: "", AuthorID: 1}, "title"},
		{"title_too_long", book.CreateInput{Title: strings.Repeat("x", 201), AuthorID: 1}, "title"},
		{"isbn_too_long", book.CreateInput{Title: "IT", ISBN: "97815011429701234", AuthorID: 1}, "isbn"},
		{"missing_author", book.CreateInput{Title: "IT", AuthorID: 0}, "author_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.addAuthor(1, "Stephen King")
			service := newTestService(repo)

			_, err := service.CreateBook(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
			assert.Empty(t, repo.books)
		})
	}
}

/*
TestCreateBook_UnknownAuthor verifies the store-level referential failure
surfaces unchanged.
*/
func TestCreateBook_UnknownAuthor(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateBook(context.Background(), book.CreateInput{
		Title:    "Norwegian Wood",
		AuthorID: 42,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestListBooks_SortKeys verifies the default and the rejection of unknown
sort keys before any store access.
*/
func TestListBooks_SortKeys(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.ListBooks(context.Background(), book.Filter{}, "")
	require.NoError(t, err)
	assert.Equal(t, book.SortTitle, repo.lastSort)

	for _, sort := range []string{book.SortTitle, book.SortAuthor, book.SortYear} {
		_, err := service.ListBooks(context.Background(), book.Filter{}, sort)
		require.NoError(t, err)
		assert.Equal(t, sort, repo.lastSort)
	}

	_, err = service.ListBooks(context.Background(), book.Filter{}, "publisher")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestDeleteBook_AuthorKept verifies that deleting one of an author's books
leaves the author in place.
*/
func TestDeleteBook_AuthorKept(t *testing.T) {
	repo := newFakeRepository()
	repo.addAuthor(1, "Jane Austen")
	service := newTestService(repo)

	first := createBook(t, service, "Pride and Prejudice", "9780141439518", 1)
	createBook(t, service, "Emma", "9780141439587", 1)

	result, err := service.DeleteBook(context.Background(), first.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, result.DeletedBook.ID)
	assert.Nil(t, result.DeletedAuthor)
	assert.Contains(t, repo.authors, int64(1))

	remaining, err := service.CountBooksByAuthor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

/*
TestDeleteBook_LastBookRemovesAuthor verifies the cascade: removing the
author's last title removes the author and reports both deletions.
*/
func TestDeleteBook_LastBookRemovesAuthor(t *testing.T) {
	repo := newFakeRepository()
	repo.addAuthor(1, "Margaret Atwood")
	service := newTestService(repo)

	only := createBook(t, service, "The Handmaid's Tale", "9780385490818", 1)

	result, err := service.DeleteBook(context.Background(), only.ID)
	require.NoError(t, err)

	assert.Equal(t, only.ID, result.DeletedBook.ID)
	require.NotNil(t, result.DeletedAuthor)
	assert.Equal(t, "Margaret Atwood", result.DeletedAuthor.Name)
	assert.NotContains(t, repo.authors, int64(1))
}

/*
TestDeleteBook_NotFound verifies an unknown id maps to NOT_FOUND.
*/
func TestDeleteBook_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.DeleteBook(context.Background(), 99)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

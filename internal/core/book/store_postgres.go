package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anhtran/libris/internal/core/author"
	"github.com/anhtran/libris/internal/platform/apperr"
	"github.com/anhtran/libris/internal/platform/database/schema"
	"github.com/anhtran/libris/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// bookColumns is the joined projection shared by every book read query.
const bookColumns = `
	b.id, b.isbn, b.title, b.slug, b.publication_year, b.author_id,
	a.name, b.created_at, b.updated_at
`

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, sort string) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
	`, bookColumns, schema.Book.Table, schema.Author.Table, schema.Author.ID, schema.Book.AuthorID)

	args := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		args = append(args, searchTerm)
		query += fmt.Sprintf(` WHERE (b.title ILIKE $%d OR a.name ILIKE $%d)`, len(args), len(args))
	}

	if f.AuthorID != 0 {
		args = append(args, f.AuthorID)
		clause := "WHERE"
		if f.Search != "" {
			clause = "AND"
		}
		query += fmt.Sprintf(` %s b.author_id = $%d`, clause, len(args))
	}

	query += ` ORDER BY ` + orderClause(sort)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := scanBook(rows, b); err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, dberr.Wrap(rows.Err(), "list_books")
}

func (repository *PostgresRepository) GetBook(context context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		WHERE b.%s = $1
	`, bookColumns, schema.Book.Table, schema.Author.Table, schema.Author.ID, schema.Book.AuthorID, schema.Book.ID)

	b := &Book{}
	if err := scanBook(repository.db.QueryRow(context, query, id), b); err != nil {
		return nil, wrapBookErr(err)
	}

	return b, nil
}

// CreateBook inserts the book and relies on the database constraints for
// both referential integrity and ISBN uniqueness: a missing author and a
// duplicate ISBN each fail the single insert statement, so no separate
// pre-checks are needed.
func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Book.Table, schema.Book.ISBN, schema.Book.Title, schema.Book.Slug,
		schema.Book.PublicationYear, schema.Book.AuthorID, schema.Book.CreatedAt, schema.Book.UpdatedAt,
		schema.Book.ID, schema.Book.CreatedAt, schema.Book.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ISBN, b.Title, b.Slug, b.PublicationYear, b.AuthorID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, schema.BookUniqueISBN) {
			return apperr.Conflict("A book with this ISBN already exists")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldAuthorID,
				Message: "Author does not exist",
			})
		}
		return dberr.Wrap(err, "create_book")
	}

	return nil
}

func (repository *PostgresRepository) CountByAuthor(context context.Context, authorID int64) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Book.Table, schema.Book.AuthorID,
	)

	var total int
	if err := repository.db.QueryRow(context, query, authorID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_books_by_author")
	}
	return total, nil
}

// DeleteBookCascading removes a book and, when no other titles remain for
// its author, the author as well.
//
// The whole sequence runs inside one transaction with the author row locked
// up front. Two concurrent deletes of an author's last two books therefore
// serialize: the second waits on the lock, sees the updated count, and
// removes the author exactly once.
func (repository *PostgresRepository) DeleteBookCascading(context context.Context, id int64) (*DeleteResult, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_cascade_delete")
	}
	defer transaction.Rollback(context)

	// 1. Load the book so the response can echo what was removed.
	bookQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		WHERE b.%s = $1
	`, bookColumns, schema.Book.Table, schema.Author.Table, schema.Author.ID, schema.Book.AuthorID, schema.Book.ID)

	deletedBook := &Book{}
	if err := scanBook(transaction.QueryRow(context, bookQuery, id), deletedBook); err != nil {
		return nil, wrapBookErr(err)
	}

	// 2. Lock the author row for the remainder of the transaction. If the
	// author is unexpectedly absent, the book delete still proceeds.
	authorQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		FOR UPDATE
	`,
		schema.Author.ID, schema.Author.Name, schema.Author.BirthDate,
		schema.Author.DateOfDeath, schema.Author.CreatedAt, schema.Author.UpdatedAt,
		schema.Author.Table, schema.Author.ID,
	)

	lockedAuthor := &author.Author{}
	authorPresent := true
	err = transaction.QueryRow(context, authorQuery, deletedBook.AuthorID).Scan(
		&lockedAuthor.ID, &lockedAuthor.Name, &lockedAuthor.BirthDate,
		&lockedAuthor.DateOfDeath, &lockedAuthor.CreatedAt, &lockedAuthor.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.Wrap(err, "lock_author")
		}
		authorPresent = false
	}

	// 3. Delete the book.
	deleteBookQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Book.Table, schema.Book.ID,
	)
	if _, err := transaction.Exec(context, deleteBookQuery, id); err != nil {
		return nil, dberr.Wrap(err, "delete_book")
	}

	result := &DeleteResult{DeletedBook: deletedBook}

	// 4. Count the author's remaining titles; zero means the author would
	// be orphaned and is removed in the same transaction.
	if authorPresent {
		countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
			schema.Book.Table, schema.Book.AuthorID,
		)

		var remaining int
		if err := transaction.QueryRow(context, countQuery, deletedBook.AuthorID).Scan(&remaining); err != nil {
			return nil, dberr.Wrap(err, "count_remaining_books")
		}

		if remaining == 0 {
			deleteAuthorQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
				schema.Author.Table, schema.Author.ID,
			)
			if _, err := transaction.Exec(context, deleteAuthorQuery, deletedBook.AuthorID); err != nil {
				return nil, dberr.Wrap(err, "delete_orphaned_author")
			}
			result.DeletedAuthor = lockedAuthor
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_cascade_delete")
	}

	return result, nil
}

// orderClause maps a validated sort key to a deterministic ORDER BY body.
// The id tie-break keeps equal keys in a stable order. Postgres places null
// publication years last on ascending sort.
func orderClause(sort string) string {
	switch sort {
	case SortAuthor:
		return "a.name ASC, b.id ASC"
	case SortYear:
		return "b.publication_year ASC, b.id ASC"
	default:
		return "b.title ASC, b.id ASC"
	}
}

// scanBook reads the shared bookColumns projection into b.
func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Slug, &b.PublicationYear, &b.AuthorID,
		&b.AuthorName, &b.CreatedAt, &b.UpdatedAt,
	)
}

// wrapBookErr maps row-level errors to a resource-specific NotFound.
func wrapBookErr(err error) error {
	wrapped := dberr.Wrap(err, "get_book")
	if errors.Is(wrapped, dberr.ErrNotFound) {
		return apperr.NotFound("Book")
	}
	return wrapped
}

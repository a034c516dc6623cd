package author

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

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

func (repository *PostgresRepository) ListAuthors(context context.Context) ([]*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
	`,
		schema.Author.ID, schema.Author.Name, schema.Author.BirthDate,
		schema.Author.DateOfDeath, schema.Author.CreatedAt, schema.Author.UpdatedAt,
		schema.Author.Table, schema.Author.Name, schema.Author.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthDate, &a.DateOfDeath, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) GetAuthor(context context.Context, id int64) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Author.ID, schema.Author.Name, schema.Author.BirthDate,
		schema.Author.DateOfDeath, schema.Author.CreatedAt, schema.Author.UpdatedAt,
		schema.Author.Table, schema.Author.ID,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.Name, &a.BirthDate, &a.DateOfDeath, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, wrapAuthorErr(err)
	}

	return a, nil
}

// GetAuthorByName matches the name exactly and case-sensitively.
func (repository *PostgresRepository) GetAuthorByName(context context.Context, name string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Author.ID, schema.Author.Name, schema.Author.BirthDate,
		schema.Author.DateOfDeath, schema.Author.CreatedAt, schema.Author.UpdatedAt,
		schema.Author.Table, schema.Author.Name,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, name).Scan(
		&a.ID, &a.Name, &a.BirthDate, &a.DateOfDeath, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, wrapAuthorErr(err)
	}

	return a, nil
}

// CreateAuthor inserts the author in a single statement and lets the unique
// index on name reject duplicates, so there is no separate existence check
// to race against.
func (repository *PostgresRepository) CreateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.Author.Table, schema.Author.Name, schema.Author.BirthDate,
		schema.Author.DateOfDeath, schema.Author.CreatedAt, schema.Author.UpdatedAt,
		schema.Author.ID, schema.Author.CreatedAt, schema.Author.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.Name, a.BirthDate, a.DateOfDeath).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, schema.AuthorUniqueName) {
			return apperr.Conflict("An author with this name already exists")
		}
		return dberr.Wrap(err, "create_author")
	}

	return nil
}

// wrapAuthorErr maps row-level errors to a resource-specific NotFound.
func wrapAuthorErr(err error) error {
	wrapped := dberr.Wrap(err, "get_author")
	if errors.Is(wrapped, dberr.ErrNotFound) {
		return apperr.NotFound("Author")
	}
	return wrapped
}

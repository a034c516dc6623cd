package author

import (
	"context"
	"log/slog"
	"time"

	"github.com/anhtran/libris/internal/platform/validate"
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

func (service *Service) ListAuthors(context context.Context) ([]*Author, error) {
	return service.repo.ListAuthors(context)
}

func (service *Service) GetAuthor(context context.Context, id int64) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

// GetAuthorByName resolves an author by exact, case-sensitive name match.
// The lookup-confirmation flow uses it to reuse known authors.
func (service *Service) GetAuthorByName(context context.Context, name string) (*Author, error) {
	return service.repo.GetAuthorByName(context, name)
}

// CreateAuthor validates the input and persists a new author.
//
// Name uniqueness is not checked here: the store performs a constrained
// insert against the unique index and reports a Conflict, which closes the
// check-then-act race between concurrent creates.
func (service *Service) CreateAuthor(context context.Context, input CreateInput) (*Author, error) {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)
	validator.Date(FieldBirthDate, input.BirthDate)
	validator.Date(FieldDateOfDeath, input.DateOfDeath)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	author := &Author{
		Name:        input.Name,
		BirthDate:   parseDate(input.BirthDate),
		DateOfDeath: parseDate(input.DateOfDeath),
	}

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return nil, err
	}

	service.logger.Info("author_created",
		slog.Int64("author_id", author.ID),
		slog.String("name", author.Name),
	)
	return author, nil
}

// parseDate converts a pre-validated YYYY-MM-DD string into a *time.Time.
// Empty input yields nil (date absent, not zero).
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(validate.DateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

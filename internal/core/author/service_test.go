package author_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhtran/libris/internal/core/author"
	"github.com/anhtran/libris/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository keyed by name, mirroring the
// unique index the real store relies on.
type fakeRepository struct {
	byName map[string]*author.Author
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byName: make(map[string]*author.Author), nextID: 1}
}

func (r *fakeRepository) ListAuthors(_ context.Context) ([]*author.Author, error) {
	list := make([]*author.Author, 0, len(r.byName))
	for _, a := range r.byName {
		list = append(list, a)
	}
	return list, nil
}

func (r *fakeRepository) GetAuthor(_ context.Context, id int64) (*author.Author, error) {
	for _, a := range r.byName {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperr.NotFound("Author")
}

func (r *fakeRepository) GetAuthorByName(_ context.Context, name string) (*author.Author, error) {
	if a, ok := r.byName[name]; ok {
		return a, nil
	}
	return nil, apperr.NotFound("Author")
}

func (r *fakeRepository) CreateAuthor(_ context.Context, a *author.Author) error {
	if _, ok := r.byName[a.Name]; ok {
		return apperr.Conflict("An author with this name already exists")
	}
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.byName[a.Name] = a
	return nil
}

func newTestService(repo author.Repository) *author.Service {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return author.NewService(repo, logger)
}

/*
TestCreateAuthor_Success verifies a valid author round-trips through the
service with parsed dates.
*/
func TestCreateAuthor_Success(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.CreateAuthor(context.Background(), author.CreateInput{
		Name:        "Jane Austen",
		BirthDate:   "1775-12-16",
		DateOfDeath: "1817-07-18",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Jane Austen", created.Name)

	require.NotNil(t, created.BirthDate)
	assert.Equal(t, "1775-12-16", created.BirthDate.Format("2006-01-02"))
	require.NotNil(t, created.DateOfDeath)
	assert.Equal(t, "1817-07-18", created.DateOfDeath.Format("2006-01-02"))

	found, err := service.GetAuthorByName(context.Background(), "Jane Austen")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

/*
TestCreateAuthor_LivingAuthor verifies that omitted dates stay nil rather
than becoming zero timestamps.
*/
func TestCreateAuthor_LivingAuthor(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.CreateAuthor(context.Background(), author.CreateInput{
		Name: "Haruki Murakami",
	})
	require.NoError(t, err)

	assert.Nil(t, created.BirthDate)
	assert.Nil(t, created.DateOfDeath)
}

/*
TestCreateAuthor_DuplicateName verifies the store conflict surfaces as a
CONFLICT error instead of a second row.
*/
func TestCreateAuthor_DuplicateName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateAuthor(context.Background(), author.CreateInput{Name: "George Orwell"})
	require.NoError(t, err)

	_, err = service.CreateAuthor(context.Background(), author.CreateInput{Name: "George Orwell"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Len(t, repo.byName, 1)
}

/*
TestCreateAuthor_Validation covers the input rules: required name, length
cap, and date format.
*/
func TestCreateAuthor_Validation(t *testing.T) {
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'a'
	}

	tests := []struct {
		name  string
		input author.CreateInput
		field string
	}{
		{"empty_name", author.CreateInput{Name: ""}, "name"},
		{"name_too_long", author.CreateInput{Name: string(longName)}, "name"},
		{"bad_birth_date", author.CreateInput{Name: "X", BirthDate: "12/16/1775"}, "birth_date"},
		{"bad_death_date", author.CreateInput{Name: "X", DateOfDeath: "unknown"}, "date_of_death"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newTestService(repo)

			_, err := service.CreateAuthor(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)

			// Nothing reached the store.
			assert.Empty(t, repo.byName)
		})
	}
}

package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anhtran/libris/internal/core/author"
	"github.com/anhtran/libris/internal/platform/apperr"
	"github.com/anhtran/libris/internal/platform/constants"
	"github.com/anhtran/libris/internal/platform/validate"
)

// AuthorCatalog is the slice of the author service the confirmation flow
// needs: exact-name resolution and creation.
type AuthorCatalog interface {
	GetAuthorByName(context context.Context, name string) (*author.Author, error)
	CreateAuthor(context context.Context, input author.CreateInput) (*author.Author, error)
}

type Service struct {
	client    Client
	proposals ProposalStore
	authors   AuthorCatalog
	logger    *slog.Logger
}

func NewService(client Client, proposals ProposalStore, authors AuthorCatalog, logger *slog.Logger) *Service {
	return &Service{
		client:    client,
		proposals: proposals,
		authors:   authors,
		logger:    logger,
	}
}

// Lookup queries the bibliographic service for the identifier and returns a
// proposal.
//
// When the candidate author already exists (exact name match) or the record
// carries no author at all, the proposal comes back resolved and nothing
// was persisted anywhere. Otherwise the proposal is pending: it is parked
// in the proposal store and no author or book is created until [Confirm].
func (service *Service) Lookup(context context.Context, isbn string) (*Proposal, error) {
	isbn = normalizeISBN(isbn)

	validator := &validate.Validator{}
	validator.Required(FieldISBN, isbn).MaxLen(FieldISBN, isbn, 13)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record, err := service.client.LookupByISBN(context, isbn)
	if err != nil {
		return nil, err
	}

	proposal := &Proposal{
		Token:      newToken(),
		State:      StateAwaitingConfirmation,
		ISBN:       isbn,
		Title:      record.Title,
		Year:       parseYear(record.Year),
		AuthorName: record.AuthorName,
		CreatedAt:  time.Now().UTC(),
	}

	// A record without an author has nothing to disambiguate: the caller
	// picks the author manually on the book form.
	if record.AuthorName == "" {
		proposal.State = StateResolved
		service.logger.Info("lookup_resolved_without_author", slog.String("isbn", isbn))
		return proposal, nil
	}

	existing, err := service.authors.GetAuthorByName(context, record.AuthorName)
	switch {
	case err == nil:
		// Known author: reuse immediately, no confirmation step.
		proposal.State = StateResolved
		proposal.AuthorID = existing.ID
		service.logger.Info("lookup_resolved",
			slog.String("isbn", isbn),
			slog.Int64("author_id", existing.ID),
		)
		return proposal, nil

	case isNotFound(err):
		// New author: park the proposal until the caller confirms.
		if err := service.proposals.Set(context, proposal, constants.ProposalTTL); err != nil {
			return nil, apperr.Internal(err)
		}
		service.logger.Info("lookup_awaiting_confirmation",
			slog.String("isbn", isbn),
			slog.String("candidate_author", record.AuthorName),
		)
		return proposal, nil

	default:
		return nil, err
	}
}

// Confirm creates the proposed author and resolves the proposal.
//
// Confirming is idempotent: a resolved proposal is returned as-is, and a
// name that was created concurrently (or by a repeated confirmation racing
// this one) is reused via the unique constraint instead of duplicated.
func (service *Service) Confirm(context context.Context, token string) (*Proposal, error) {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	proposal, err := service.proposals.Get(context, token)
	if err != nil {
		return nil, err
	}

	if proposal.State == StateResolved {
		return proposal, nil
	}

	created, err := service.authors.CreateAuthor(context, author.CreateInput{Name: proposal.AuthorName})
	if err != nil {
		if !isConflict(err) {
			return nil, err
		}
		// Someone created the author first; reuse it.
		created, err = service.authors.GetAuthorByName(context, proposal.AuthorName)
		if err != nil {
			return nil, err
		}
	}

	proposal.State = StateResolved
	proposal.AuthorID = created.ID

	// Keep the resolved proposal around so a repeated confirmation of the
	// same token returns the same author instead of failing.
	if err := service.proposals.Set(context, proposal, constants.ProposalTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("lookup_confirmed",
		slog.String("token", proposal.Token),
		slog.Int64("author_id", proposal.AuthorID),
		slog.String("author_name", proposal.AuthorName),
	)
	return proposal, nil
}

// newToken mints an opaque proposal identifier. UUID v7 keeps tokens
// time-sortable in the store, matching the request-ID scheme.
func newToken() string {
	token, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return token.String()
}

// parseYear converts the four-character year extract into *int.
// Non-numeric extracts yield nil rather than an error — the upstream date
// field is untrusted.
func parseYear(raw string) *int {
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &year
}

// normalizeISBN strips hyphens and spaces from the identifier.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(strings.TrimSpace(isbn), " ", "")
}

func isNotFound(err error) bool {
	var ae *apperr.AppError
	return errors.As(err, &ae) && ae.Code == "NOT_FOUND"
}

func isConflict(err error) bool {
	var ae *apperr.AppError
	return errors.As(err, &ae) && ae.Code == "CONFLICT"
}

package lookup

import (
	"context"
	"time"
)

// Client queries the external bibliographic service.
//
// Implementations report zero-result lookups as a NOT_FOUND application
// error and every transport, decoding, or upstream failure as an
// UPSTREAM_ERROR. They never mutate catalog state.
type Client interface {
	LookupByISBN(context context.Context, isbn string) (*Record, error)
}

// ProposalStore holds pending and recently resolved proposals with a TTL.
type ProposalStore interface {
	Set(context context.Context, proposal *Proposal, ttl time.Duration) error
	Get(context context.Context, token string) (*Proposal, error)
	Delete(context context.Context, token string) error
}

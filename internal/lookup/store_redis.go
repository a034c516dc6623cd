// Copyright (c) 2026 Libris. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anhtran/libris/internal/platform/apperr"
	"github.com/anhtran/libris/internal/platform/constants"
)

// RedisProposalStore implements [ProposalStore] on Redis.
//
// Proposals are transient workflow state: keys carry a TTL so abandoned
// confirmations clean themselves up without a background sweeper.
type RedisProposalStore struct {
	client *redis.Client
}

// NewRedisProposalStore creates a new Redis-backed ProposalStore.
func NewRedisProposalStore(client *redis.Client) *RedisProposalStore {
	return &RedisProposalStore{client: client}
}

// Set stores the proposal under its token with the given TTL.
func (store *RedisProposalStore) Set(context context.Context, proposal *Proposal, ttl time.Duration) error {
	key := constants.RedisPrefixProposal + proposal.Token

	payload, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("proposal_store_marshal_failed: %w", err)
	}

	if err := store.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("proposal_store_set_failed: %w", err)
	}

	return nil
}

// Get retrieves the proposal for a token.
//
// Returns apperr.NotFound if the token is absent or expired.
func (store *RedisProposalStore) Get(context context.Context, token string) (*Proposal, error) {
	key := constants.RedisPrefixProposal + token

	payload, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Lookup proposal")
		}
		return nil, fmt.Errorf("proposal_store_get_failed: %w", err)
	}

	proposal := &Proposal{}
	if err := json.Unmarshal(payload, proposal); err != nil {
		return nil, fmt.Errorf("proposal_store_unmarshal_failed: %w", err)
	}

	return proposal, nil
}

// Delete removes the proposal from Redis.
func (store *RedisProposalStore) Delete(context context.Context, token string) error {
	key := constants.RedisPrefixProposal + token

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("proposal_store_delete_failed: %w", err)
	}

	return nil
}

// Package snapshot mirrors the purchase request list into redis as a
// single JSON blob under a fixed key. The store is a read-optimized
// mirror of the database: a missing key or an unreadable payload is
// treated as an empty list, never surfaced as a user-facing error.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
)

// Key is the fixed redis key holding the whole purchase request list.
const Key = "annaml:purchasing:pr:v1"

// Store keeps the PR list snapshot in redis. A nil client turns the
// store into a no-op, so callers need no redis in tests.
type Store struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewStore(rdb *redis.Client, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, logger: logger}
}

// List returns the snapshot, most recently updated first (the stored
// order; Save prepends and re-sorts on upsert).
func (s *Store) List(ctx context.Context) ([]entity.PurchaseRequest, error) {
	if s.rdb == nil {
		return []entity.PurchaseRequest{}, nil
	}
	raw, err := s.rdb.Get(ctx, Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []entity.PurchaseRequest{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return s.decode(raw), nil
}

// Get returns one record by id, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// Save upserts one record. New records are prepended; an existing
// record is replaced and moved to the front, everything else keeps
// its relative order.
func (s *Store) Save(ctx context.Context, pr *entity.PurchaseRequest) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	next := make([]entity.PurchaseRequest, 0, len(list)+1)
	next = append(next, *pr)
	for _, rec := range list {
		if rec.ID != pr.ID {
			next = append(next, rec)
		}
	}
	return s.write(ctx, next)
}

// Remove deletes one record by id and leaves the rest untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	next := make([]entity.PurchaseRequest, 0, len(list))
	for _, rec := range list {
		if rec.ID != id {
			next = append(next, rec)
		}
	}
	return s.write(ctx, next)
}

func (s *Store) write(ctx context.Context, list []entity.PurchaseRequest) error {
	if s.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, Key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// decode tolerates corrupt payloads: anything that does not parse as a
// list starts the store over empty.
func (s *Store) decode(raw []byte) []entity.PurchaseRequest {
	list := decodeList(raw)
	if list == nil {
		if s.logger != nil {
			s.logger.Warn("discarding unreadable purchase request snapshot", zap.String("key", Key))
		}
		return []entity.PurchaseRequest{}
	}
	return list
}

func decodeList(raw []byte) []entity.PurchaseRequest {
	var list []entity.PurchaseRequest
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	if list == nil {
		return []entity.PurchaseRequest{}
	}
	return list
}

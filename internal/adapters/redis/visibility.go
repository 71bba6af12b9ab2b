// Package redisad keeps the manager-hidden review ids in redis: one durable
// key holding a JSON-encoded array of ids.
package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

type Store struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int, key string) *Store {
	return &Store{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		key: key,
	}
}

// NewWithClient is for tests that bring their own client (miniredis).
func NewWithClient(c *redis.Client, key string) *Store { return &Store{c: c, key: key} }

// load returns the hidden-id set. A missing key is an empty set; a
// malformed value is recovered silently by resetting to empty.
func (s *Store) load(ctx context.Context) (map[int64]struct{}, error) {
	b, err := s.c.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		observability.ObserveVisibility("load")
		return map[int64]struct{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(b, &ids); err != nil {
		log.Warn().Err(fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)).Str("key", s.key).Msg("resetting hidden-id state")
		observability.ObserveVisibility("reset")
		if derr := s.c.Del(ctx, s.key).Err(); derr != nil {
			return nil, derr
		}
		return map[int64]struct{}{}, nil
	}
	observability.ObserveVisibility("load")
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *Store) save(ctx context.Context, set map[int64]struct{}) error {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, s.key, b, 0).Err() // durable, no TTL
}

func (s *Store) IsHidden(ctx context.Context, id int64) (bool, error) {
	set, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := set[id]
	return ok, nil
}

// Toggle adds the id if absent, removes it if present, and returns the new
// state. Read-modify-write without a lock: the store has a single logical
// writer (the manager session).
func (s *Store) Toggle(ctx context.Context, id int64) (bool, error) {
	set, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, hidden := set[id]
	if hidden {
		delete(set, id)
		observability.ObserveVisibility("toggle_off")
	} else {
		set[id] = struct{}{}
		observability.ObserveVisibility("toggle_on")
	}
	if err := s.save(ctx, set); err != nil {
		return false, err
	}
	return !hidden, nil
}

func (s *Store) HiddenIDs(ctx context.Context) ([]int64, error) {
	set, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

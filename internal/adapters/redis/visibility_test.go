package redisad_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "flex_reviews/internal/adapters/redis"
)

func newStore(t *testing.T) (*redisad.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redisad.NewWithClient(c, "hiddenReviews"), mr
}

func TestToggle_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	if hidden, err := s.IsHidden(ctx, 7453); err != nil || hidden {
		t.Fatalf("fresh store: hidden=%v err=%v", hidden, err)
	}

	hidden, err := s.Toggle(ctx, 7453)
	if err != nil || !hidden {
		t.Fatalf("toggle on: hidden=%v err=%v", hidden, err)
	}
	if hidden, _ := s.IsHidden(ctx, 7453); !hidden {
		t.Fatalf("expected hidden after toggle")
	}

	hidden, err = s.Toggle(ctx, 7453)
	if err != nil || hidden {
		t.Fatalf("toggle off: hidden=%v err=%v", hidden, err)
	}
	if hidden, _ := s.IsHidden(ctx, 7453); hidden {
		t.Fatalf("expected visible after second toggle")
	}
}

func TestHiddenIDs_SortedAndDurable(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	for _, id := range []int64{9001, 7453, 42} {
		if _, err := s.Toggle(ctx, id); err != nil {
			t.Fatalf("toggle %d: %v", id, err)
		}
	}
	ids, err := s.HiddenIDs(ctx)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{42, 7453, 9001}) {
		t.Fatalf("ids: %v", ids)
	}

	// a second store instance over the same backend sees the same state
	c2 := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s2 := redisad.NewWithClient(c2, "hiddenReviews")
	if hidden, _ := s2.IsHidden(ctx, 7453); !hidden {
		t.Fatalf("state not durable across instances")
	}
}

func TestCorruptStateResetsToEmpty(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	if err := mr.Set("hiddenReviews", "{definitely not a json array"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	ids, err := s.HiddenIDs(ctx)
	if err != nil {
		t.Fatalf("corrupt state should recover silently, got %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set after reset, got %v", ids)
	}

	// store is usable again after the reset
	if hidden, err := s.Toggle(ctx, 1); err != nil || !hidden {
		t.Fatalf("toggle after reset: hidden=%v err=%v", hidden, err)
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func newRedisCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSlotCache(client, time.Minute, zap.NewNop()), srv
}

func TestListKeyVariesByFilterAndVersion(t *testing.T) {
	f := slot.ListFilter{DateFrom: "2026-03-01", DateTo: "2026-03-07", Status: slot.StatusAvailable}

	k := listKey(4, 0, f)
	if k != "slots:op:4:v0:2026-03-01:2026-03-07:AVAILABLE" {
		t.Fatalf("unexpected key %s", k)
	}
	if listKey(4, 1, f) == k {
		t.Fatalf("version bump must change the key")
	}
	if listKey(5, 0, f) == k {
		t.Fatalf("operators must not share keys")
	}
	if listKey(4, 0, slot.ListFilter{}) == k {
		t.Fatalf("filters must not share keys")
	}
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c SlotCache = Noop{}
	c.Set(context.Background(), 1, slot.ListFilter{}, 0, nil)
	c.Invalidate(context.Background(), 1)
	if _, _, ok := c.Get(context.Background(), 1, slot.ListFilter{}); ok {
		t.Fatalf("noop cache should never hit")
	}
}

func TestRedisUnavailableIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisSlotCache(client, time.Minute, zap.NewNop())

	ctx := context.Background()
	c.Set(ctx, 1, slot.ListFilter{}, 0, nil)
	c.Invalidate(ctx, 1)
	if _, v, ok := c.Get(ctx, 1, slot.ListFilter{}); ok || v != NoVersion {
		t.Fatalf("unreachable redis should read as a miss")
	}
}

func TestRedisReadThrough(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()
	f := slot.ListFilter{DateFrom: "2026-03-02", Status: slot.StatusAvailable}

	_, v, ok := c.Get(ctx, 1, f)
	if ok || v != 0 {
		t.Fatalf("expected a miss at version 0, got ok=%v v=%d", ok, v)
	}

	c.Set(ctx, 1, f, v, []models.ScheduleSlot{{ID: 1, OperatorID: 1, Status: "AVAILABLE"}})

	got, v2, ok := c.Get(ctx, 1, f)
	if !ok || v2 != v || len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected cached listing, got %+v ok=%v v=%d", got, ok, v2)
	}

	if _, _, ok := c.Get(ctx, 2, f); ok {
		t.Fatalf("other operators must not see the entry")
	}
}

func TestRedisInvalidateBetweenReadAndStore(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()
	f := slot.ListFilter{}

	// Listing misses and reads the database.
	_, v, ok := c.Get(ctx, 1, f)
	if ok {
		t.Fatalf("expected a miss")
	}
	stale := []models.ScheduleSlot{{ID: 1, OperatorID: 1, Status: "AVAILABLE"}}

	// A booking commits before the listing stores what it read.
	c.Invalidate(ctx, 1)
	c.Set(ctx, 1, f, v, stale)

	if got, _, ok := c.Get(ctx, 1, f); ok {
		t.Fatalf("stale listing served after invalidation: %+v", got)
	}

	// The next read-through stores under the new version.
	_, v, _ = c.Get(ctx, 1, f)
	c.Set(ctx, 1, f, v, []models.ScheduleSlot{{ID: 1, OperatorID: 1, Status: "BOOKED"}})

	got, _, ok := c.Get(ctx, 1, f)
	if !ok || got[0].Status != "BOOKED" {
		t.Fatalf("expected fresh listing, got %+v ok=%v", got, ok)
	}
}

func TestRedisEntriesExpire(t *testing.T) {
	c, srv := newRedisCache(t)
	ctx := context.Background()

	_, v, _ := c.Get(ctx, 1, slot.ListFilter{})
	c.Set(ctx, 1, slot.ListFilter{}, v, []models.ScheduleSlot{{ID: 1}})

	srv.FastForward(2 * time.Minute)

	if _, _, ok := c.Get(ctx, 1, slot.ListFilter{}); ok {
		t.Fatalf("entry should expire after the TTL")
	}
}

func TestSetWithoutVersionIsSkipped(t *testing.T) {
	c, srv := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, slot.ListFilter{}, NoVersion, []models.ScheduleSlot{{ID: 1}})

	if keys := srv.Keys(); len(keys) != 0 {
		t.Fatalf("expected nothing stored, got keys %v", keys)
	}
}

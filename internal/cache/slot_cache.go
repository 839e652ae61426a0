package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// Version is the per-operator generation a listing was read under.
type Version int64

// NoVersion makes Set a no-op; Get returns it when the generation is unknown.
const NoVersion Version = -1

// SlotCache is a read-through cache for slot listings. Failures are
// treated as misses; the database stays the source of truth.
//
// Get returns the version observed before the lookup. On a miss the caller
// reads the database and passes that same version to Set, so a listing
// read before an Invalidate is never stored under the newer version.
type SlotCache interface {
	Get(ctx context.Context, operatorID uint, f slot.ListFilter) ([]models.ScheduleSlot, Version, bool)
	Set(ctx context.Context, operatorID uint, f slot.ListFilter, v Version, slots []models.ScheduleSlot)
	Invalidate(ctx context.Context, operatorID uint)
}

// ======================================================
// REDIS
// ======================================================

// RedisSlotCache keys listings by a per-operator version. Invalidation
// bumps the version so every cached filter of that operator goes stale at
// once and expires on its own TTL.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl, log: log}
}

// Connect pings the server like the rest of the stack does on boot.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func versionKey(operatorID uint) string {
	return fmt.Sprintf("slots:op:%d:ver", operatorID)
}

func listKey(operatorID uint, version Version, f slot.ListFilter) string {
	return fmt.Sprintf("slots:op:%d:v%d:%s:%s:%s", operatorID, version, f.DateFrom, f.DateTo, f.Status)
}

func (c *RedisSlotCache) version(ctx context.Context, operatorID uint) (Version, error) {
	v, err := c.client.Get(ctx, versionKey(operatorID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return NoVersion, err
	}
	return Version(v), nil
}

func (c *RedisSlotCache) Get(ctx context.Context, operatorID uint, f slot.ListFilter) ([]models.ScheduleSlot, Version, bool) {
	v, err := c.version(ctx, operatorID)
	if err != nil {
		c.log.Debug("slot cache version read failed", zap.Uint("operator_id", operatorID), zap.Error(err))
		return nil, NoVersion, false
	}

	raw, err := c.client.Get(ctx, listKey(operatorID, v, f)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("slot cache read failed", zap.Uint("operator_id", operatorID), zap.Error(err))
		}
		return nil, v, false
	}

	var slots []models.ScheduleSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, v, false
	}
	return slots, v, true
}

// Set stores slots under v. When an Invalidate happened since v was read
// the entry lands under a retired key that Get never reads again.
func (c *RedisSlotCache) Set(ctx context.Context, operatorID uint, f slot.ListFilter, v Version, slots []models.ScheduleSlot) {
	if v < 0 {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, listKey(operatorID, v, f), raw, c.ttl).Err(); err != nil {
		c.log.Debug("slot cache write failed", zap.Uint("operator_id", operatorID), zap.Error(err))
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, operatorID uint) {
	if err := c.client.Incr(ctx, versionKey(operatorID)).Err(); err != nil {
		c.log.Warn("slot cache invalidation failed", zap.Uint("operator_id", operatorID), zap.Error(err))
	}
}

// ======================================================
// NOOP
// ======================================================

// Noop is used when REDIS_ADDR is not configured.
type Noop struct{}

func (Noop) Get(context.Context, uint, slot.ListFilter) ([]models.ScheduleSlot, Version, bool) {
	return nil, NoVersion, false
}

func (Noop) Set(context.Context, uint, slot.ListFilter, Version, []models.ScheduleSlot) {}

func (Noop) Invalidate(context.Context, uint) {}

var (
	_ SlotCache = (*RedisSlotCache)(nil)
	_ SlotCache = Noop{}
)

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionHeartbeatCache keeps the most recent heartbeat per session in
// Redis so frequent keep-alives do not hit MySQL every time. The row is
// only touched when the cached beat is stale.
type SessionHeartbeatCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionHeartbeatCache(rdb *redis.Client, ttl time.Duration) *SessionHeartbeatCache {
	return &SessionHeartbeatCache{rdb: rdb, ttl: ttl}
}

type heartbeatState struct {
	LastHeartbeatMs int64 `json:"lastHeartbeatMs"`
	NeedsFlush      bool  `json:"needsFlush"`
}

func heartbeatKey(sessionID string) string {
	return fmt.Sprintf("cache:session:%s:state", sessionID)
}

// LastHeartbeat returns the cached beat time and whether one exists.
func (c *SessionHeartbeatCache) LastHeartbeat(ctx context.Context, sessionID string) (time.Time, bool, error) {
	raw, err := c.rdb.Get(ctx, heartbeatKey(sessionID)).Bytes()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	var state heartbeatState
	if err := json.Unmarshal(raw, &state); err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(state.LastHeartbeatMs), true, nil
}

func (c *SessionHeartbeatCache) StoreHeartbeat(ctx context.Context, sessionID string, at time.Time, needsFlush bool) error {
	raw, err := json.Marshal(heartbeatState{
		LastHeartbeatMs: at.UnixMilli(),
		NeedsFlush:      needsFlush,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, heartbeatKey(sessionID), raw, c.ttl).Err()
}

func (c *SessionHeartbeatCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, heartbeatKey(sessionID)).Err()
}

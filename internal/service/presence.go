package service

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const presenceTTL = 60 * time.Second

// PresenceService tracks which users currently hold an open chat connection,
// using Redis keys with a short TTL. With no Redis configured every lookup
// reports offline and writes are no-ops, so chat still works without it.
type PresenceService struct {
	rdb *redis.Client
}

func NewPresenceService(addr, password string, db int) *PresenceService {
	if addr == "" {
		return &PresenceService{}
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// keep the server available, just without presence
		return &PresenceService{}
	}
	return &PresenceService{rdb: rdb}
}

func presenceKey(userID int64) string {
	return "presence:" + strconv.FormatInt(userID, 10)
}

// Touch marks the user online for the TTL window. Call it on connect and on
// every ping from the socket.
func (s *PresenceService) Touch(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	s.rdb.Set(ctx, presenceKey(userID), "1", presenceTTL)
}

// Clear drops the user's presence immediately on disconnect.
func (s *PresenceService) Clear(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, presenceKey(userID))
}

func (s *PresenceService) IsOnline(ctx context.Context, userID int64) bool {
	if s.rdb == nil {
		return false
	}
	n, err := s.rdb.Exists(ctx, presenceKey(userID)).Result()
	return err == nil && n > 0
}

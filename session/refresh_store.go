package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

// RefreshStore keeps issued refresh tokens in Redis, keyed by JTI, so a
// token can be revoked server-side before it expires.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

type entry struct {
	UserID   string `json:"uid"`
	IssuedAt int64  `json:"iat"`
}

func key(jti string) string        { return fmt.Sprintf("kiosk:refresh:%s", jti) }
func userSetKey(uid string) string { return fmt.Sprintf("kiosk:user_tokens:%s", uid) }

func (s *RefreshStore) Save(ctx context.Context, jti, userID string) error {
	b, _ := json.Marshal(entry{UserID: userID, IssuedAt: time.Now().Unix()})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(jti), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(userID), jti)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Check returns the user the token was issued to, or ErrNotFound when the
// token was revoked or never issued.
func (s *RefreshStore) Check(ctx context.Context, jti string) (string, error) {
	b, err := s.rdb.Get(ctx, key(jti)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		return "", err
	}
	return e.UserID, nil
}

func (s *RefreshStore) Revoke(ctx context.Context, jti string) error {
	uid, _ := s.Check(ctx, jti)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(jti))
	if uid != "" {
		pipe.SRem(ctx, userSetKey(uid), jti)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser drops every refresh token the user holds, e.g. on logout
// or account deactivation.
func (s *RefreshStore) RevokeAllForUser(ctx context.Context, userID string) error {
	jtis, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, jti := range jtis {
		pipe.Del(ctx, key(jti))
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

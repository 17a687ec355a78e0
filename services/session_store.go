package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"

	"basha-backend/models"
)

var ErrSessionNotFound = errors.New("session_not_found")

// SessionUserKey is the fixed key the session user is stored under.
const SessionUserKey = "user"

// SessionStore persists the session user between requests.
type SessionStore interface {
	Save(ctx context.Context, sid string, u *models.User) error
	Load(ctx context.Context, sid string) (*models.User, error)
	Delete(ctx context.Context, sid string) error
}

func sessionKey(prefix, sid string) string {
	return fmt.Sprintf("%s:session:%s:%s", prefix, sid, SessionUserKey)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Favorites = slices.Clone(u.Favorites)
	if c.Favorites == nil {
		c.Favorites = []string{}
	}
	return &c
}

// MemorySessionStore keeps sessions in process. Entries expire after ttl.
type MemorySessionStore struct {
	cache  *ccache.Cache[*models.User]
	prefix string
	ttl    time.Duration
}

func NewMemorySessionStore(prefix string, ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		cache:  ccache.New(ccache.Configure[*models.User]().MaxSize(100000)),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, sid string, u *models.User) error {
	s.cache.Set(sessionKey(s.prefix, sid), cloneUser(u), s.ttl)
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, sid string) (*models.User, error) {
	item := s.cache.Get(sessionKey(s.prefix, sid))
	if item == nil || item.Expired() {
		return nil, ErrSessionNotFound
	}
	return cloneUser(item.Value()), nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sid string) error {
	s.cache.Delete(sessionKey(s.prefix, sid))
	return nil
}

func (s *MemorySessionStore) Close() {
	s.cache.Stop()
}

type RedisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, prefix string, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, sid string, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(s.prefix, sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sid string) (*models.User, error) {
	data, err := s.client.Get(ctx, sessionKey(s.prefix, sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return &u, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(s.prefix, sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"basha-backend/config"
	"basha-backend/events"
	"basha-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.ConnectDatabase(config.DatabaseConfig{Driver: "sqlite", FilePath: dsn, Seed: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	publisher *recordingPublisher
	cache     *TieredCatalogCache
	catalog   *CatalogService
	auth      *AuthService
	bookings  *BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	pub := &recordingPublisher{}
	cache := NewCatalogCache(10, nil, "test", time.Minute)
	t.Cleanup(cache.Close)
	catalog := NewCatalogService(db, cache, pub)

	store := NewMemorySessionStore("test", time.Hour)
	t.Cleanup(store.Close)
	auth := NewAuthService(store, NewTokenManager("secret", "test", time.Hour))

	return &fixture{
		db:        db,
		publisher: pub,
		cache:     cache,
		catalog:   catalog,
		auth:      auth,
		bookings:  NewBookingService(db, catalog, pub),
	}
}

// login starts a session and resolves it the way the HTTP middleware does.
func (f *fixture) login(t *testing.T, email string, role models.Role) *Session {
	t.Helper()
	ctx := context.Background()
	res, err := f.auth.Login(ctx, models.LoginInput{Email: email, Password: "x", Role: role})
	require.NoError(t, err)
	sess, err := f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	return sess
}

// sessionFor fakes a session for a seeded owner such as "owner1".
func (f *fixture) sessionFor(t *testing.T, userID string, role models.Role) *Session {
	t.Helper()
	u := &models.User{ID: userID, Name: userID, Email: userID + "@example.com", Role: role, Favorites: []string{}}
	sid := uuid.NewString()
	require.NoError(t, f.auth.sessions.Save(context.Background(), sid, u))
	return &Session{ID: sid, User: u}
}

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"basha-backend/events"
	"basha-backend/logging"
	"basha-backend/models"
)

var ErrRoomNotFound = errors.New("room_not_found")

const catalogKey = "catalog"

// CatalogService owns the room catalog. Only Prepend adds to it.
type CatalogService struct {
	DB        *gorm.DB
	cache     CatalogCache
	publisher events.Publisher
	group     singleflight.Group

	// gen counts catalog writes. A load only fills the cache if no write
	// happened since it started.
	cacheMu sync.Mutex
	gen     uint64
}

func NewCatalogService(db *gorm.DB, cache CatalogCache, publisher events.Publisher) *CatalogService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &CatalogService{DB: db, cache: cache, publisher: publisher}
}

// List returns the whole catalog in catalog order.
func (s *CatalogService) List(ctx context.Context) ([]models.Room, error) {
	if s.cache != nil {
		if rooms, ok := s.cache.Get(ctx); ok {
			return rooms, nil
		}
	}

	v, err, _ := s.group.Do(catalogKey, func() (interface{}, error) {
		s.cacheMu.Lock()
		gen := s.gen
		s.cacheMu.Unlock()

		rooms, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.fillCache(ctx, gen, rooms)
		return rooms, nil
	})
	if err != nil {
		return nil, err
	}
	rooms := v.([]models.Room)
	out := make([]models.Room, len(rooms))
	copy(out, rooms)
	return out, nil
}

func (s *CatalogService) fillCache(ctx context.Context, gen uint64, rooms []models.Room) {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if gen != s.gen {
		return
	}
	s.cache.Set(ctx, rooms)
}

// invalidate drops cached copies and any load still in flight.
func (s *CatalogService) invalidate(ctx context.Context) {
	s.cacheMu.Lock()
	s.gen++
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.cacheMu.Unlock()
	s.group.Forget(catalogKey)
}

func (s *CatalogService) load(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Order("catalog_position ASC").
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	return rooms, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// ListByIDs returns the rooms whose ids are in ids, in catalog order. Unknown ids are skipped.
func (s *CatalogService) ListByIDs(ctx context.Context, ids []string) ([]models.Room, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]models.Room, 0, len(ids))
	for _, r := range rooms {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *CatalogService) ListByOwner(ctx context.Context, ownerID string) ([]models.Room, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Room, 0)
	for _, r := range rooms {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Prepend stores room at the head of the catalog.
func (s *CatalogService) Prepend(ctx context.Context, room *models.Room) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var head struct{ Pos *int }
		if err := tx.Model(&models.Room{}).Select("MIN(catalog_position) AS pos").Scan(&head).Error; err != nil {
			return fmt.Errorf("find catalog head: %w", err)
		}
		room.CatalogPosition = 0
		if head.Pos != nil {
			room.CatalogPosition = *head.Pos - 1
		}
		if room.CreatedAt.IsZero() {
			room.CreatedAt = time.Now()
		}
		if err := tx.Create(room).Error; err != nil {
			return fmt.Errorf("create room: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	publishEvent(ctx, s.publisher, events.ListingCreated, room.ID, room)
	return nil
}

// publishEvent logs failures instead of returning them.
func publishEvent(ctx context.Context, pub events.Publisher, eventType, roomID string, payload any) {
	l := logging.Ctx(ctx)
	e, err := events.NewEvent(eventType, roomID, payload)
	if err != nil {
		l.Warn().Err(err).Str("event", eventType).Msg("build event failed")
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		l.Warn().Err(err).Str("event", eventType).Str(logging.FieldRoomID, roomID).Msg("publish event failed")
	}
}

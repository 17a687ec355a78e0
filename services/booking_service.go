package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
	"gorm.io/gorm"

	"basha-backend/events"
	"basha-backend/logging"
	"basha-backend/models"
)

var (
	ErrNotListingOwner       = errors.New("not_listing_owner")
	ErrBookingAlreadyDecided = errors.New("booking_already_decided")
	ErrInvalidStatus         = errors.New("invalid_status")
	ErrInvalidMoveInDate     = errors.New("invalid_move_in_date")
)

// BookingService manages booking requests from students to listing owners.
type BookingService struct {
	DB        *gorm.DB
	catalog   *CatalogService
	publisher events.Publisher
	now       func() time.Time
}

func NewBookingService(db *gorm.DB, catalog *CatalogService, publisher events.Publisher) *BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &BookingService{DB: db, catalog: catalog, publisher: publisher, now: time.Now}
}

// Create records a pending request for the session user.
func (s *BookingService) Create(ctx context.Context, sess *Session, in models.CreateBookingInput) (*models.BookingRequest, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	room, err := s.catalog.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	moveIn, err := time.Parse(models.DateLayout, strings.TrimSpace(in.MoveInDate))
	if err != nil {
		return nil, ErrInvalidMoveInDate
	}
	duration := strings.TrimSpace(in.Duration)
	if duration == "" {
		duration = models.DefaultDuration
	}

	b := &models.BookingRequest{
		ID:           ksuid.New().String(),
		RoomID:       room.ID,
		RoomTitle:    room.Title,
		OwnerID:      room.OwnerID,
		StudentID:    sess.User.ID,
		StudentName:  sess.User.Name,
		StudentEmail: sess.User.Email,
		MoveInDate:   moveIn.Format(models.DateLayout),
		Duration:     duration,
		Status:       models.BookingPending,
		CreatedAt:    s.now(),
	}
	if err := s.DB.WithContext(ctx).Create(b).Error; err != nil {
		return nil, fmt.Errorf("create booking request: %w", err)
	}

	logging.Audit(ctx, logging.ActionBookingCreate, sess.User.ID, "booking request sent")
	publishEvent(ctx, s.publisher, events.BookingCreated, b.RoomID, b)
	return b, nil
}

func (s *BookingService) list(ctx context.Context, column, value string) ([]models.BookingRequest, error) {
	var out []models.BookingRequest
	err := s.DB.WithContext(ctx).
		Where(column+" = ?", value).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list booking requests: %w", err)
	}
	if out == nil {
		out = []models.BookingRequest{}
	}
	return out, nil
}

// ListForStudent returns the session user's own requests, newest first.
func (s *BookingService) ListForStudent(ctx context.Context, sess *Session) ([]models.BookingRequest, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	return s.list(ctx, "student_id", sess.User.ID)
}

// ListForOwner returns requests made against rooms ownerID owns, newest first.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID string) ([]models.BookingRequest, error) {
	return s.list(ctx, "owner_id", ownerID)
}

// UpdateStatus decides a pending request. An unknown id is a no-op and
// returns (nil, false, nil).
func (s *BookingService) UpdateStatus(ctx context.Context, sess *Session, id string, status models.BookingStatus) (*models.BookingRequest, bool, error) {
	if sess == nil {
		return nil, false, ErrAuthRequired
	}
	if !status.IsDecision() {
		return nil, false, ErrInvalidStatus
	}

	var b models.BookingRequest
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find booking request: %w", err)
	}
	if b.OwnerID != sess.User.ID {
		return nil, false, ErrNotListingOwner
	}
	if b.Status != models.BookingPending {
		return nil, false, ErrBookingAlreadyDecided
	}

	now := s.now()
	res := s.DB.WithContext(ctx).
		Model(&models.BookingRequest{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Updates(map[string]interface{}{"status": status, "decided_at": now})
	if res.Error != nil {
		return nil, false, fmt.Errorf("update booking request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, false, ErrBookingAlreadyDecided
	}

	b.Status = status
	b.DecidedAt = &now
	logging.Audit(ctx, logging.ActionBookingDecide, sess.User.ID, "booking request "+string(status))
	publishEvent(ctx, s.publisher, events.BookingDecided, b.RoomID, b)
	return &b, true, nil
}

package models

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingAccepted BookingStatus = "accepted"
	BookingRejected BookingStatus = "rejected"
)

// IsDecision reports whether s is a status an owner may set.
func (s BookingStatus) IsDecision() bool {
	return s == BookingAccepted || s == BookingRejected
}

const DefaultDuration = "6 Months"

var Durations = []string{"3 Months", "6 Months", "12 Months", "1 Year+"}

const DateLayout = "2006-01-02"

type BookingRequest struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(32)"`
	RoomID       string        `json:"roomId" gorm:"column:room_id;type:varchar(64);index"`
	RoomTitle    string        `json:"roomTitle" gorm:"column:room_title;type:varchar(160)"`
	OwnerID      string        `json:"ownerId" gorm:"column:owner_id;type:varchar(64);index"`
	StudentID    string        `json:"studentId" gorm:"column:student_id;type:varchar(64);index"`
	StudentName  string        `json:"studentName" gorm:"column:student_name;type:varchar(120)"`
	StudentEmail string        `json:"studentEmail" gorm:"column:student_email;type:varchar(190)"`
	MoveInDate   string        `json:"moveInDate" gorm:"column:move_in_date;type:varchar(10)"`
	Duration     string        `json:"duration" gorm:"column:duration;type:varchar(32)"`
	Status       BookingStatus `json:"status" gorm:"column:status;type:varchar(16);index;default:pending"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"index"`
	DecidedAt    *time.Time    `json:"decidedAt,omitempty" gorm:"column:decided_at"`
}

type CreateBookingInput struct {
	RoomID     string `json:"roomId" binding:"required"`
	MoveInDate string `json:"moveInDate" binding:"required,datetime=2006-01-02"`
	Duration   string `json:"duration" binding:"omitempty,oneof='3 Months' '6 Months' '12 Months' '1 Year+'"`
}

type UpdateBookingStatusInput struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// BookingForm lists the choices offered on the room page.
type BookingForm struct {
	Durations       []string `json:"durations"`
	DefaultDuration string   `json:"defaultDuration"`
}

func DefaultBookingForm() BookingForm {
	return BookingForm{Durations: Durations, DefaultDuration: DefaultDuration}
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type Location struct {
	Lat     float64 `json:"lat" gorm:"column:lat"`
	Lng     float64 `json:"lng" gorm:"column:lng"`
	Address string  `json:"address" gorm:"column:address;type:varchar(255)"`
}

// NearbyInstitution is a distance record such as {"UIU", "0.5 km"}.
type NearbyInstitution struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

type Room struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Title       string           `json:"title" gorm:"type:varchar(160);not null"`
	Description string           `json:"description" gorm:"type:text"`
	Price       int              `json:"price" gorm:"not null;check:price >= 0"`
	Area        string           `json:"area" gorm:"type:varchar(64);index"`
	Location    Location         `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Type        RoomType         `json:"type" gorm:"type:varchar(16);index"`
	Gender      GenderPreference `json:"gender" gorm:"type:varchar(16);index"`

	Amenities          datatypes.JSONSlice[string]            `json:"amenities"`
	Rules              datatypes.JSONSlice[string]            `json:"rules"`
	Images             datatypes.JSONSlice[string]            `json:"images"`
	NearbyUniversities datatypes.JSONSlice[NearbyInstitution] `json:"nearbyUniversities" gorm:"column:nearby_universities"`

	OwnerID     string `json:"ownerId" gorm:"type:varchar(64);index"`
	OwnerName   string `json:"ownerName" gorm:"type:varchar(120)"`
	IsVerified  bool   `json:"isVerified" gorm:"column:is_verified;default:false"`
	IsAvailable bool   `json:"isAvailable" gorm:"column:is_available;default:true"`

	// Catalog order, ascending. New listings take a position below the current minimum.
	CatalogPosition int `json:"-" gorm:"column:catalog_position;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// Pricing is the breakdown shown before sending a booking request.
type Pricing struct {
	MonthlyRent   int `json:"monthlyRent"`
	BookingFee    int `json:"bookingFee"`
	ServiceCharge int `json:"serviceCharge"`
	Total         int `json:"total"`
}

const (
	BookingFee    = 500
	ServiceCharge = 0
)

func (r Room) Pricing() Pricing {
	return Pricing{
		MonthlyRent:   r.Price,
		BookingFee:    BookingFee,
		ServiceCharge: ServiceCharge,
		Total:         r.Price + BookingFee + ServiceCharge,
	}
}

// RoomDetail is the room page payload.
type RoomDetail struct {
	Room         Room        `json:"room"`
	Pricing      Pricing     `json:"pricing"`
	AreaInsights string      `json:"areaInsights"`
	IsFavorite   bool        `json:"isFavorite"`
	BookingForm  BookingForm `json:"bookingForm"`
}

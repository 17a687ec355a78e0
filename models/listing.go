package models

import "strings"

// Listing wizard steps.
const (
	StepBasicInfo      = 1
	StepDetails        = 2
	StepPhotosLocation = 3
)

var ListingSteps = []string{"Basic Info", "Details & Features", "Photos & Location"}

const (
	DefaultListingArea  = "Dhanmondi"
	DefaultListingLat   = 23.75
	DefaultListingLng   = 90.38
	PlaceholderImageURL = "https://picsum.photos/id/111/800/600"
)

var DefaultNearby = []NearbyInstitution{{Name: "Nearby University", Distance: "1.0 km"}}

type ListingBasicInfo struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=4000"`
	Price       int    `json:"price" validate:"required,gt=0"`
	Area        string `json:"area" validate:"required,area"`
}

type ListingDetails struct {
	Type      RoomType         `json:"type" validate:"required,oneof=Single Shared"`
	Gender    GenderPreference `json:"gender" validate:"required,oneof=Male Female Any"`
	Amenities []string         `json:"amenities" validate:"dive,amenity"`
	Rules     []string         `json:"rules" validate:"dive,rule"`
}

type ListingPhotosLocation struct {
	Address string   `json:"address" validate:"required,max=255"`
	Lat     *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng     *float64 `json:"lng" validate:"omitempty,longitude"`
	// Photos are base64 images, optionally data-URL prefixed.
	Photos []string `json:"photos" validate:"max=8,dive,required"`
}

// ListingInput is the whole wizard payload.
type ListingInput struct {
	ListingBasicInfo
	ListingDetails
	ListingPhotosLocation
}

// ApplyDefaults trims the free-text fields and fills the ones the wizard
// preselects. Validation runs on the result.
func (in *ListingInput) ApplyDefaults() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	if in.Area == "" {
		in.Area = DefaultListingArea
	}
	if in.Type == "" {
		in.Type = RoomTypeSingle
	}
	if in.Gender == "" {
		in.Gender = GenderAny
	}
}

type DescriptionInput struct {
	Title     string   `json:"title" binding:"required"`
	Area      string   `json:"area" binding:"required"`
	Type      RoomType `json:"type" binding:"omitempty,oneof=Single Shared"`
	Amenities []string `json:"amenities"`
}

// FieldError is one failed constraint in a listing step.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type StepValidation struct {
	Step   int          `json:"step"`
	Name   string       `json:"name"`
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

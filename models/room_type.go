package models

import "fmt"

type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeShared RoomType = "Shared"
)

func (t RoomType) Valid() bool {
	return t == RoomTypeSingle || t == RoomTypeShared
}

func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown room type %q", s)
	}
	return t, nil
}

type GenderPreference string

const (
	GenderMale   GenderPreference = "Male"
	GenderFemale GenderPreference = "Female"
	GenderAny    GenderPreference = "Any"
)

func (g GenderPreference) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderAny:
		return true
	}
	return false
}

func ParseGenderPreference(s string) (GenderPreference, error) {
	g := GenderPreference(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown gender preference %q", s)
	}
	return g, nil
}

// Areas are the city zones offered when browsing or listing.
var Areas = []string{
	"Dhanmondi",
	"Mirpur",
	"Uttara",
	"Mohammadpur",
	"Banani",
	"Farmgate",
	"Badda",
}

func IsKnownArea(area string) bool {
	for _, a := range Areas {
		if a == area {
			return true
		}
	}
	return false
}

var AmenityOptions = []string{"WiFi", "Kitchen", "Attached Bath", "AC", "Lift", "Generator", "Parking"}

var RuleOptions = []string{"Bachelor Allowed", "No Smoking", "No Alcohol", "No Parties", "Curfew 11 PM"}

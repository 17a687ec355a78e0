package services

import (
	"strings"

	"basha-backend/models"
)

// FilterRooms returns the rooms that satisfy every constraint in f, in catalog order.
// It never modifies rooms and always returns a non-nil slice.
func FilterRooms(rooms []models.Room, f models.FilterState) []models.Room {
	query := strings.ToLower(f.Query)
	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if matchesRoom(r, f, query) {
			out = append(out, r)
		}
	}
	return out
}

func matchesRoom(r models.Room, f models.FilterState, query string) bool {
	return matchesQuery(r, query) &&
		r.Price <= f.Budget &&
		f.Type.Matches(r.Type) &&
		f.Gender.Matches(r.Gender) &&
		f.Area.Matches(r.Area)
}

// matchesQuery expects query already lower-cased.
func matchesQuery(r models.Room, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Area), query)
}

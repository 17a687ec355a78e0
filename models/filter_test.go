package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_AllMatchesEverything(t *testing.T) {
	f := All[RoomType]()
	assert.True(t, f.IsAll())
	assert.True(t, f.Matches(RoomTypeSingle))
	assert.True(t, f.Matches(RoomTypeShared))
	assert.True(t, f.Matches(""))

	var zero Filter[string]
	assert.True(t, zero.IsAll())
}

func TestFilter_OnlyMatchesItsValue(t *testing.T) {
	f := Only(GenderFemale)
	v, ok := f.Value()
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, v)
	assert.True(t, f.Matches(GenderFemale))
	assert.False(t, f.Matches(GenderAny))
	assert.Equal(t, "Female", f.String())
}

func TestFilter_JSON(t *testing.T) {
	s := DefaultFilterState()
	s.Type = Only(RoomTypeShared)
	s.Area = Only("Mirpur")

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"budget":20000,"type":"Shared","gender":"all","area":"Mirpur","query":""}`, string(b))

	var back FilterState
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)
}

func TestFilter_UnmarshalRejectsUnknownEnum(t *testing.T) {
	var f Filter[RoomType]
	err := json.Unmarshal([]byte(`"Penthouse"`), &f)
	assert.True(t, errors.Is(err, ErrInvalidFilter))

	require.NoError(t, json.Unmarshal([]byte(`"ALL"`), &f))
	assert.True(t, f.IsAll())
}

func TestSearchQuery_FilterState(t *testing.T) {
	budget := 5000
	q := SearchQuery{Query: "  room ", Budget: &budget, Type: "Single", Gender: "all", Area: "Banani"}

	s, err := q.FilterState()
	require.NoError(t, err)
	assert.Equal(t, 5000, s.Budget)
	assert.Equal(t, "  room ", s.Query)
	assert.Equal(t, Only(RoomTypeSingle), s.Type)
	assert.True(t, s.Gender.IsAll())
	assert.Equal(t, Only("Banani"), s.Area)
}

func TestSearchQueryAndPatchKeepQueryVerbatim(t *testing.T) {
	raw := " Banani "
	fromURL, err := SearchQuery{Query: raw}.FilterState()
	require.NoError(t, err)

	fromPatch := FilterPatch{Query: &raw}.Apply(DefaultFilterState())

	assert.Equal(t, raw, fromURL.Query)
	assert.Equal(t, fromURL, fromPatch)
}

func TestSearchQuery_DefaultsWhenEmpty(t *testing.T) {
	s, err := SearchQuery{}.FilterState()
	require.NoError(t, err)
	assert.Equal(t, DefaultFilterState(), s)
}

func TestSearchQuery_InvalidEnum(t *testing.T) {
	_, err := SearchQuery{Gender: "Other"}.FilterState()
	assert.True(t, errors.Is(err, ErrInvalidFilter))
}

func TestFilterPatch_Apply(t *testing.T) {
	budget := 8000
	area := All[string]()
	base := DefaultFilterState()
	base.Area = Only("Uttara")

	got := FilterPatch{Budget: &budget, Area: &area}.Apply(base)
	assert.Equal(t, 8000, got.Budget)
	assert.True(t, got.Area.IsAll())
	assert.True(t, got.Type.IsAll())
}

func TestUser_ToggleFavorite(t *testing.T) {
	u := &User{Favorites: []string{"1", "2", "3"}}

	assert.False(t, u.ToggleFavorite("2"))
	assert.Equal(t, []string{"1", "3"}, u.Favorites)
	assert.True(t, u.ToggleFavorite("2"))
	assert.Equal(t, []string{"1", "3", "2"}, u.Favorites)
	assert.True(t, u.HasFavorite("2"))
}

func TestRoom_Pricing(t *testing.T) {
	p := Room{Price: 6500}.Pricing()
	assert.Equal(t, Pricing{MonthlyRent: 6500, BookingFee: 500, ServiceCharge: 0, Total: 7000}, p)
}

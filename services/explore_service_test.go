package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basha-backend/models"
)

func newTestExplore(t *testing.T) *ExploreService {
	t.Helper()
	f := newFixture(t)
	svc := NewExploreService(NewSearchService(f.catalog), time.Hour)
	t.Cleanup(svc.Close)
	return svc
}

func TestExploreService_MountMergesAreaOnce(t *testing.T) {
	svc := newTestExplore(t)
	ctx := context.Background()
	sid := NewExploreSessionID()

	view, err := svc.Mount(ctx, sid, "Mirpur")
	require.NoError(t, err)
	assert.True(t, view.State.Mounted)
	assert.Equal(t, models.Only("Mirpur"), view.State.Filters.Area)
	assert.Equal(t, []string{"3"}, roomIDs(view.Result.Rooms))

	// the user widens the area; later reads do not go back to the deep link
	view, err = svc.SetFilters(ctx, sid, models.FilterPatch{Area: ptr(models.All[string]())})
	require.NoError(t, err)
	assert.True(t, view.State.Filters.Area.IsAll())

	view, err = svc.Get(ctx, sid)
	require.NoError(t, err)
	assert.True(t, view.State.Filters.Area.IsAll())
	assert.Len(t, view.Result.Rooms, 4)
}

func TestExploreService_MountWithoutAreaStartsFromDefaults(t *testing.T) {
	svc := newTestExplore(t)
	ctx := context.Background()
	sid := NewExploreSessionID()

	_, err := svc.SetFilters(ctx, sid, models.FilterPatch{Budget: ptr(3000)})
	require.NoError(t, err)

	view, err := svc.Mount(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilterState(), view.State.Filters)
	assert.Equal(t, models.ViewList, view.State.ViewMode)
}

func TestExploreService_BoundsRaisePromptOnlyInMapMode(t *testing.T) {
	svc := newTestExplore(t)
	ctx := context.Background()
	sid := NewExploreSessionID()
	bounds := models.MapBounds{North: 23.9, South: 23.7, East: 90.5, West: 90.3}

	view, err := svc.BoundsChanged(ctx, sid, bounds)
	require.NoError(t, err)
	assert.False(t, view.State.ShowSearchArea)

	_, err = svc.SetViewMode(ctx, sid, models.ViewMap)
	require.NoError(t, err)
	view, err = svc.BoundsChanged(ctx, sid, bounds)
	require.NoError(t, err)
	assert.True(t, view.State.ShowSearchArea)
	assert.Len(t, view.Result.Rooms, 4, "bounds never filter")

	view, err = svc.SetViewMode(ctx, sid, models.ViewList)
	require.NoError(t, err)
	assert.False(t, view.State.ShowSearchArea)
}

func TestExploreService_ConfirmSearchAreaWidensArea(t *testing.T) {
	svc := newTestExplore(t)
	ctx := context.Background()
	sid := NewExploreSessionID()

	_, err := svc.Mount(ctx, sid, "Banani")
	require.NoError(t, err)
	_, err = svc.SetViewMode(ctx, sid, models.ViewMap)
	require.NoError(t, err)
	_, err = svc.BoundsChanged(ctx, sid, models.MapBounds{})
	require.NoError(t, err)

	view, err := svc.ConfirmSearchArea(ctx, sid)
	require.NoError(t, err)
	assert.False(t, view.State.ShowSearchArea)
	assert.True(t, view.State.Filters.Area.IsAll())
	assert.Equal(t, models.ViewMap, view.State.ViewMode)
}

func TestExploreService_ResetKeepsViewMode(t *testing.T) {
	svc := newTestExplore(t)
	ctx := context.Background()
	sid := NewExploreSessionID()

	_, err := svc.SetViewMode(ctx, sid, models.ViewMap)
	require.NoError(t, err)
	view, err := svc.SetFilters(ctx, sid, models.FilterPatch{
		Budget: ptr(1000),
		Gender: ptr(models.Only(models.GenderFemale)),
	})
	require.NoError(t, err)
	assert.True(t, view.Result.Empty)

	view, err = svc.Reset(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilterState(), view.State.Filters)
	assert.Equal(t, models.ViewMap, view.State.ViewMode)
	assert.Len(t, view.Result.Rooms, 4)
}

func TestExploreService_RejectsUnknownViewMode(t *testing.T) {
	svc := newTestExplore(t)
	_, err := svc.SetViewMode(context.Background(), NewExploreSessionID(), models.ViewMode("grid"))
	assert.ErrorIs(t, err, ErrInvalidViewMode)
}

func TestExploreService_SessionsAreIsolated(t *testing.T) {
	svc := newTestExplore(t)
	ctx := context.Background()
	a, b := NewExploreSessionID(), NewExploreSessionID()

	_, err := svc.SetFilters(ctx, a, models.FilterPatch{Query: ptr("banani")})
	require.NoError(t, err)

	view, err := svc.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "", view.State.Filters.Query)
	assert.Len(t, view.Result.Rooms, 4)
}

func ptr[T any](v T) *T { return &v }

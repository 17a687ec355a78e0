package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basha-backend/config"
	"basha-backend/controllers"
	"basha-backend/events"
	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/storage"
	"basha-backend/utils"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *utils.ErrorInfo `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithUploads(t, "")
}

func newTestServerWithUploads(t *testing.T, uploadsPrefix string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.ConnectDatabase(config.DatabaseConfig{Driver: "sqlite", FilePath: dsn, Seed: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir(), URLPrefix: uploadsPrefix})
	require.NoError(t, err)

	sessions := services.NewMemorySessionStore("test", time.Hour)
	cache := services.NewCatalogCache(10, nil, "test", time.Minute)
	ai := services.NewAIService(services.AIConfig{})
	t.Cleanup(func() {
		sessions.Close()
		cache.Close()
		ai.Close()
	})

	pub := events.NoopPublisher{}
	catalog := services.NewCatalogService(db, cache, pub)
	search := services.NewSearchService(catalog)
	explore := services.NewExploreService(search, time.Hour)
	t.Cleanup(explore.Close)
	auth := services.NewAuthService(sessions, services.NewTokenManager("secret", "test", time.Hour))
	bookings := services.NewBookingService(db, catalog, pub)

	ctl := Controllers{
		Rooms:     controllers.NewRoomController(services.NewRoomService(catalog, ai), search),
		Explore:   controllers.NewExploreController(explore),
		Auth:      controllers.NewAuthController(auth),
		Favorites: controllers.NewFavoriteController(services.NewFavoriteService(catalog, auth)),
		Bookings:  controllers.NewBookingController(bookings),
		Listings:  controllers.NewListingController(services.NewListingService(catalog, services.NewImageService(store)), ai),
		Dashboard: controllers.NewDashboardController(services.NewDashboardService(catalog, bookings)),
	}
	router := SetupRouter(ctl, auth, Options{UploadsDir: store.BasePath(), UploadsPrefix: store.URLPrefix(), Logger: zerolog.Nop()})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) login(email string, role models.Role) (string, *models.User) {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/auth/login", "", models.LoginInput{Email: email, Password: "pw", Role: role})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var res models.AuthResult
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	return res.Token, res.User
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func ids(rooms []models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.ID)
	}
	return out
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(""))
	assert.Equal(t, []string{"*"}, parseCorsOrigins(" , "))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, parseCorsOrigins("http://a.test, http://b.test,"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRooms_Search(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[models.SearchResult](t, env.Data)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(res.Rooms))

	_, env = s.do(http.MethodGet, "/api/rooms?budget=5000&gender=all", "", nil)
	res = decode[models.SearchResult](t, env.Data)
	assert.Equal(t, []string{"2", "3"}, ids(res.Rooms))

	_, env = s.do(http.MethodGet, "/api/rooms?area=Badda", "", nil)
	res = decode[models.SearchResult](t, env.Data)
	assert.True(t, res.Empty)
	assert.Empty(t, res.Rooms)
	assert.Equal(t, models.DefaultFilterState(), res.Reset)
}

func TestRooms_InvalidFilter(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/rooms?type=Studio", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.CodeInvalidFilter, env.Error.Code)

	w, _ = s.do(http.MethodGet, "/api/rooms?budget=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRooms_DefaultFiltersAndDetail(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodGet, "/api/rooms/filters/default", "", nil)
	assert.Equal(t, models.DefaultFilterState(), decode[models.FilterState](t, env.Data))

	w, env := s.do(http.MethodGet, "/api/rooms/2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[models.RoomDetail](t, env.Data)
	assert.Equal(t, "2", detail.Room.ID)
	assert.Equal(t, 5000, detail.Pricing.Total)
	assert.Equal(t, services.FallbackAreaInsights, detail.AreaInsights)

	w, env = s.do(http.MethodGet, "/api/rooms/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, utils.CodeNotFound, env.Error.Code)

	_, env = s.do(http.MethodGet, "/api/areas", "", nil)
	assert.Equal(t, models.Areas, decode[[]string](t, env.Data))
}

func TestExplore_SessionFlow(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPost, "/api/explore/mount?area=Mirpur", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sid := w.Header().Get(controllers.HeaderExploreSession)
	require.NotEmpty(t, sid)
	view := decode[models.ExploreView](t, env.Data)
	assert.Equal(t, []string{"3"}, ids(view.Result.Rooms))

	_, env = s.do(http.MethodPut, "/api/explore/view", "", models.SetViewModeInput{Mode: models.ViewMap}, controllers.HeaderExploreSession, sid)
	view = decode[models.ExploreView](t, env.Data)
	assert.Equal(t, models.ViewMap, view.State.ViewMode)

	bounds := models.MapBounds{North: 23.9, South: 23.7, East: 90.5, West: 90.3}
	_, env = s.do(http.MethodPost, "/api/explore/bounds", "", bounds, controllers.HeaderExploreSession, sid)
	view = decode[models.ExploreView](t, env.Data)
	assert.True(t, view.State.ShowSearchArea)

	_, env = s.do(http.MethodPost, "/api/explore/search-area", "", nil, controllers.HeaderExploreSession, sid)
	view = decode[models.ExploreView](t, env.Data)
	assert.False(t, view.State.ShowSearchArea)
	assert.Len(t, view.Result.Rooms, 4)

	w, env = s.do(http.MethodPut, "/api/explore/view", "", map[string]string{"mode": "grid"}, controllers.HeaderExploreSession, sid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestExplore_FilterPatchRejectsUnknownEnum(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPut, "/api/explore/filters", "", map[string]any{"type": "Studio"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.CodeInvalidFilter, env.Error.Code)

	w, env = s.do(http.MethodPut, "/api/explore/filters", "", map[string]any{"type": "Shared", "budget": 4000})
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.ExploreView](t, env.Data)
	assert.Equal(t, []string{"3"}, ids(view.Result.Rooms))
}

func TestAuth_Flow(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.CodeAuthRequired, env.Error.Code)

	w, env = s.do(http.MethodPost, "/api/auth/signup", "", models.SignupInput{Name: "Mim", Email: "mim@example.com", Password: "pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decode[models.AuthResult](t, env.Data).Token

	_, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, "Mim", decode[models.User](t, env.Data).Name)

	w, _ = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.CodeInvalidToken, env.Error.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPost, "/api/favorites/1/toggle", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.CodeAuthRequired, env.Error.Code)

	token, _ := s.login("s@example.com", models.RoleStudent)
	_, env = s.do(http.MethodPost, "/api/favorites/4/toggle", token, nil)
	assert.True(t, decode[models.FavoriteResult](t, env.Data).Favorited)

	_, env = s.do(http.MethodGet, "/api/favorites", token, nil)
	assert.Equal(t, []string{"4"}, ids(decode[[]models.Room](t, env.Data)))

	_, env = s.do(http.MethodGet, "/api/rooms/4", token, nil)
	assert.True(t, decode[models.RoomDetail](t, env.Data).IsFavorite)

	_, env = s.do(http.MethodPost, "/api/favorites/4/toggle", token, nil)
	assert.False(t, decode[models.FavoriteResult](t, env.Data).Favorited)

	w, _ = s.do(http.MethodPost, "/api/favorites/missing/toggle", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingAndBookingFlow(t *testing.T) {
	s := newTestServer(t)
	ownerToken, owner := s.login("owner@example.com", models.RoleOwner)
	studentToken, _ := s.login("student@example.com", models.RoleStudent)

	listing := models.ListingInput{
		ListingBasicInfo: models.ListingBasicInfo{Title: "Sunny room", Description: "Near the lake.", Price: 5500, Area: "Uttara"},
		ListingDetails:   models.ListingDetails{Amenities: []string{"WiFi"}},
		ListingPhotosLocation: models.ListingPhotosLocation{
			Address: "Sector 7, Uttara",
		},
	}

	w, env := s.do(http.MethodPost, "/api/listings", studentToken, listing)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, utils.CodeOwnerOnly, env.Error.Code)

	_, env = s.do(http.MethodPost, "/api/listings/validate?step=1", ownerToken, models.ListingInput{})
	step := decode[models.StepValidation](t, env.Data)
	assert.False(t, step.Valid)

	w, env = s.do(http.MethodPost, "/api/listings/validate?step=x", ownerToken, listing)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPost, "/api/listings", ownerToken, listing)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	room := decode[models.Room](t, env.Data)
	assert.Equal(t, owner.ID, room.OwnerID)

	_, env = s.do(http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, room.ID, decode[models.SearchResult](t, env.Data).Rooms[0].ID)

	w, env = s.do(http.MethodPost, "/api/bookings", studentToken, models.CreateBookingInput{RoomID: room.ID, MoveInDate: "2024-05-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[models.BookingRequest](t, env.Data)
	assert.Equal(t, models.BookingPending, booking.Status)

	_, env = s.do(http.MethodGet, "/api/bookings/incoming", ownerToken, nil)
	assert.Len(t, decode[[]models.BookingRequest](t, env.Data), 1)

	w, _ = s.do(http.MethodGet, "/api/bookings/incoming", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	path := "/api/bookings/" + booking.ID + "/status"
	w, env = s.do(http.MethodPatch, path, ownerToken, models.UpdateBookingStatusInput{Status: models.BookingAccepted})
	require.Equal(t, http.StatusOK, w.Code)
	var decided struct {
		Updated bool                  `json:"updated"`
		Booking models.BookingRequest `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &decided))
	assert.True(t, decided.Updated)
	assert.Equal(t, models.BookingAccepted, decided.Booking.Status)

	w, env = s.do(http.MethodPatch, path, ownerToken, models.UpdateBookingStatusInput{Status: models.BookingRejected})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, utils.CodeAlreadyDecided, env.Error.Code)

	w, env = s.do(http.MethodPatch, "/api/bookings/unknown/status", ownerToken, models.UpdateBookingStatusInput{Status: models.BookingRejected})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &decided))
	assert.False(t, decided.Updated)

	_, env = s.do(http.MethodGet, "/api/bookings/mine", studentToken, nil)
	mine := decode[[]models.BookingRequest](t, env.Data)
	require.Len(t, mine, 1)
	assert.Equal(t, models.BookingAccepted, mine[0].Status)

	_, env = s.do(http.MethodGet, "/api/dashboard", ownerToken, nil)
	dash := decode[models.Dashboard](t, env.Data)
	assert.Equal(t, 1, dash.Stats.TotalListings)
	assert.Equal(t, 0, dash.Stats.PendingRequests)
}

func TestUploads_ServedUnderConfiguredPrefix(t *testing.T) {
	s := newTestServerWithUploads(t, "/media/")
	token, _ := s.login("owner@example.com", models.RoleOwner)

	pixel := "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	listing := models.ListingInput{
		ListingBasicInfo: models.ListingBasicInfo{Title: "Photo room", Description: "Has a photo.", Price: 6000, Area: "Banani"},
		ListingPhotosLocation: models.ListingPhotosLocation{
			Address: "Road 2, Banani",
			Photos:  []string{"data:image/png;base64," + pixel},
		},
	}
	w, env := s.do(http.MethodPost, "/api/listings", token, listing)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	room := decode[models.Room](t, env.Data)
	require.Len(t, room.Images, 1)
	url := room.Images[0]
	assert.True(t, strings.HasPrefix(url, "/media/listings/"+room.ID+"/"), url)

	w, _ = s.do(http.MethodGet, url, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w, _ = s.do(http.MethodGet, "/uploads/"+strings.TrimPrefix(url, "/media/"), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListings_DescriptionFallsBack(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login("owner@example.com", models.RoleOwner)

	w, env := s.do(http.MethodPost, "/api/listings/description", token, models.DescriptionInput{Title: "Room", Area: "Mirpur"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]string](t, env.Data)
	assert.Equal(t, services.FallbackDescription, got["description"])
}

func TestSession_RejectsBadToken(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/rooms", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.CodeInvalidToken, env.Error.Code)

	w, _ = s.do(http.MethodGet, "/api/rooms", "", nil, "Authorization", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

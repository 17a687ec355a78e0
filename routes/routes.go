package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"basha-backend/controllers"
	"basha-backend/middleware"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers groups every HTTP handler the router mounts.
type Controllers struct {
	Rooms     *controllers.RoomController
	Explore   *controllers.ExploreController
	Auth      *controllers.AuthController
	Favorites *controllers.FavoriteController
	Bookings  *controllers.BookingController
	Listings  *controllers.ListingController
	Dashboard *controllers.DashboardController
}

type Options struct {
	CORSOrigins string
	// UploadsDir is served at UploadsPrefix when set.
	UploadsDir    string
	UploadsPrefix string
	Logger        zerolog.Logger
}

func SetupRouter(ctl Controllers, auth middleware.Authenticator, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(opts.Logger))
	if opts.UploadsDir != "" {
		prefix := opts.UploadsPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		r.Static(prefix, opts.UploadsDir)
	}

	origins := parseCorsOrigins(opts.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", controllers.HeaderExploreSession, middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", controllers.HeaderExploreSession, middleware.HeaderRequestID},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Session(auth))
	{
		api.GET("/areas", ctl.Rooms.GetAreas)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.Search)
			// before /:id
			rooms.GET("/filters/default", ctl.Rooms.DefaultFilters)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
		}

		explore := api.Group("/explore")
		{
			explore.GET("", ctl.Explore.Get)
			explore.POST("/mount", ctl.Explore.Mount)
			explore.PUT("/filters", ctl.Explore.SetFilters)
			explore.PUT("/view", ctl.Explore.SetViewMode)
			explore.POST("/bounds", ctl.Explore.BoundsChanged)
			explore.POST("/search-area", ctl.Explore.ConfirmSearchArea)
			explore.POST("/reset", ctl.Explore.Reset)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", ctl.Auth.Login)
			authGroup.POST("/signup", ctl.Auth.Signup)
			authGroup.POST("/logout", middleware.RequireAuth(), ctl.Auth.Logout)
			authGroup.GET("/me", middleware.RequireAuth(), ctl.Auth.Me)
		}

		// favorites answer AUTH_REQUIRED themselves so the client can open its login prompt
		favorites := api.Group("/favorites")
		{
			favorites.GET("", ctl.Favorites.List)
			favorites.POST("/:roomId/toggle", ctl.Favorites.Toggle)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", middleware.RequireAuth(), ctl.Bookings.Create)
			bookings.GET("/mine", middleware.RequireAuth(), ctl.Bookings.Mine)
			bookings.GET("/incoming", middleware.RequireOwner(), ctl.Bookings.Incoming)
			bookings.PATCH("/:id/status", middleware.RequireOwner(), ctl.Bookings.UpdateStatus)
		}

		listings := api.Group("/listings")
		listings.Use(middleware.RequireOwner())
		{
			listings.POST("/validate", ctl.Listings.ValidateStep)
			listings.POST("", ctl.Listings.Create)
			listings.POST("/description", ctl.Listings.GenerateDescription)
		}

		api.GET("/dashboard", middleware.RequireOwner(), ctl.Dashboard.Get)
	}

	return r
}

package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/http/api"
	authapi "github.com/minaret-app/minaret/internal/http/api/auth/endpoints"
	communityapi "github.com/minaret-app/minaret/internal/http/api/community/endpoints"
	duaapi "github.com/minaret-app/minaret/internal/http/api/dua/endpoints"
	prayerapi "github.com/minaret-app/minaret/internal/http/api/prayer/endpoints"
	quranapi "github.com/minaret-app/minaret/internal/http/api/quran/endpoints"
	"github.com/minaret-app/minaret/internal/prayer"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, tracker *prayer.Tracker) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		authapi.AuthSessionModule(env.SecretKey, store),
		prayerapi.PrayerModule(tracker, store),
		quranapi.QuranModule(store),
		duaapi.DuaModule(store),
		communityapi.CommunityModule(store),
	)
}

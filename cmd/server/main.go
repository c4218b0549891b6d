package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/events"
	"github.com/minaret-app/minaret/internal/prayer"
	"github.com/minaret-app/minaret/internal/redis"
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	env := LoadEnvironment()
	if env.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	if env.RedisAddress != "" {
		redis.Init(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore()

	scheduler := prayer.NewScheduler(prayer.NewAlAdhanClient(env.AlAdhanURL))
	if env.JumuahTime != "" {
		scheduler.JumuahTime = env.JumuahTime
	}

	tracker := prayer.NewTracker(scheduler, store)

	if env.MQTTBrokerURL != "" {
		publisher, err := events.Connect(env.MQTTBrokerURL)
		if err != nil {
			log.Warn().Err(err).Msg("device sync disabled")
		} else {
			defer publisher.Close()
			tracker.Events = publisher
		}
	}

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, tracker)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

package main

import (
	"github.com/lingo-leap/lingo_api/middleware"
	"github.com/lingo-leap/lingo_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title LingoLeap API
// @version 1.0
// @description Gamified language learning progression API
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.JWTService{},
		&middleware.AuthMiddleware{},

		&services.MonitoringService{},
		&services.RateLimitService{},

		&services.QuestService{},
		&services.ProgressionService{},
		&services.AuthService{},
		&services.ContentService{},
		&services.QuizService{},
		&services.MediaService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}

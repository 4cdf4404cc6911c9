package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/lingo-leap/lingo_api/docs"
	"github.com/lingo-leap/lingo_api/services/handlers"
	"github.com/lingo-leap/lingo_api/shared"
)

type HttpService struct {
	context.DefaultService

	jwtSvc         *JWTService
	authSvc        *AuthService
	contentSvc     *ContentService
	progressionSvc *ProgressionService
	questSvc       *QuestService
	quizSvc        *QuizService
	mediaSvc       *MediaService
	rateLimitSvc   *RateLimitService
	monitoringSvc  *MonitoringService

	authMw AuthMiddlewareInterface

	port   int
	server *fiber.App
}

// AuthMiddlewareInterface is implemented by middleware.AuthMiddleware; the
// indirection keeps the middleware package free to import services.
type AuthMiddlewareInterface interface {
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

const (
	HTTP_SVC            = "http_svc"
	AUTH_MIDDLEWARE_SVC = "auth"
)

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.questSvc = svc.Service(QUEST_SVC).(*QuestService)
	svc.quizSvc = svc.Service(QUIZ_SVC).(*QuizService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.authMw = svc.Service(AUTH_MIDDLEWARE_SVC).(AuthMiddlewareInterface)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.errorHandler,
		BodyLimit:    25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.rateLimitSvc.IPRateLimit())

	svc.registerRoutes(app)

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	progressionHandler := handlers.NewProgressionHandler(svc.progressionSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.progressionSvc)
	questHandler := handlers.NewQuestHandler(svc.questSvc)
	quizHandler := handlers.NewQuizHandler(svc.quizSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")

	v1.Get("/ping", svc.ping)

	// Public auth endpoints
	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)

	requireAuth := svc.authMw.RequiredAuth()
	requireAdmin := svc.authMw.RequireRole("admin")

	// Account
	v1.Get("/me", requireAuth, authHandler.Me)
	v1.Post("/onboard", requireAuth, authHandler.Onboard)

	// Content
	v1.Get("/lessons", requireAuth, contentHandler.GetLessons)
	v1.Get("/lessons/:lessonId", requireAuth, contentHandler.GetLesson)

	// Progression
	v1.Post("/lessons/complete", requireAuth, svc.rateLimitSvc.RateLimit("lesson_complete"), progressionHandler.CompleteLesson)
	v1.Get("/progress", requireAuth, progressionHandler.GetProgress)
	v1.Get("/progress/xp", requireAuth, progressionHandler.GetXPLedger)

	// Leaderboards
	v1.Get("/leaderboard/all-time", requireAuth, leaderboardHandler.GetAllTime)
	v1.Get("/leaderboard/weekly", requireAuth, leaderboardHandler.GetWeekly)

	// Quests. Progress is driven by lesson/streak/quiz signals; the manual
	// setter lives under admin as a criteria signal injection.
	v1.Get("/quests", requireAuth, questHandler.GetQuests)
	v1.Post("/quests/:questId/claim", requireAuth, svc.rateLimitSvc.RateLimit("quest_claim"), questHandler.ClaimReward)

	// Daily quiz
	v1.Get("/quiz/daily", requireAuth, quizHandler.GetDailyQuiz)
	v1.Post("/quiz/submit", requireAuth, svc.rateLimitSvc.RateLimit("quiz_submit"), quizHandler.SubmitQuiz)

	// Admin
	admin := v1.Group("/admin", requireAuth, requireAdmin)
	admin.Post("/lessons", contentHandler.CreateLesson)
	admin.Post("/quests", questHandler.CreateQuest)
	admin.Post("/users/:userId/quests/:questId/progress", questHandler.UpdateProgress)
	admin.Post("/quiz", quizHandler.CreateDailyQuiz)
	admin.Post("/lessons/:lessonId/audio", mediaHandler.UploadAudio)
	admin.Post("/lessons/:lessonId/thumbnail", mediaHandler.UploadThumbnail)
	admin.Get("/lessons/:lessonId/media", mediaHandler.GetLessonMedia)
	admin.Delete("/media/:assetId", mediaHandler.DeleteMediaAsset)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}

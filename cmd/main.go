package main

import (
	"context"
	"net/http"
	"time"

	"github.com/asrayg/betterforms/config"
	"github.com/asrayg/betterforms/database"
	"github.com/asrayg/betterforms/internal/controller"
	ownerctrl "github.com/asrayg/betterforms/internal/controller/owner"
	publicctrl "github.com/asrayg/betterforms/internal/controller/public"
	"github.com/asrayg/betterforms/internal/logger"
	"github.com/asrayg/betterforms/internal/middleware"
	"github.com/asrayg/betterforms/internal/model"
	"github.com/asrayg/betterforms/internal/repository"
	"github.com/asrayg/betterforms/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title BetterForms API
// @version 1.0
// @description Form builder and response collection API with voice answers, analytics and CSV export.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewFormRepository,
			repository.NewQuestionRepository,
			repository.NewResponseRepository,
			repository.NewAnswerRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewFormService,
			service.NewSubmissionService,
			service.NewAnalyticsService,
			service.NewExportService,
			service.NewStorageService,
			service.NewTranscriptionService,
		),

		fx.Provide(
			controller.NewAuthController,
			ownerctrl.NewFormController,
			ownerctrl.NewAnalyticsController,
			publicctrl.NewFormController,
			publicctrl.NewMediaController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authCtrl *controller.AuthController,
	ownerFormCtrl *ownerctrl.FormController,
	analyticsCtrl *ownerctrl.AnalyticsController,
	publicFormCtrl *publicctrl.FormController,
	mediaCtrl *publicctrl.MediaController,
) {
	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)

		// Respondent-facing routes, no authentication.
		publicGroup := api.Group("/public")
		publicGroup.GET("/forms/:form_id", publicFormCtrl.GetForm)
		publicGroup.POST("/forms/:form_id/responses", publicFormCtrl.SubmitResponse)
		publicGroup.POST("/forms/:form_id/questions/:question_id/audio", mediaCtrl.UploadAudio)
		publicGroup.POST("/transcribe", mediaCtrl.TranscribeAudio)

		ownerGroup := api.Group("/forms")
		ownerGroup.Use(middleware.RequireAuth(authService))
		ownerGroup.POST("", ownerFormCtrl.CreateForm)
		ownerGroup.GET("", ownerFormCtrl.ListForms)
		ownerGroup.GET("/:form_id", ownerFormCtrl.GetForm)
		ownerGroup.PUT("/:form_id", ownerFormCtrl.UpdateForm)
		ownerGroup.DELETE("/:form_id", ownerFormCtrl.DeleteForm)
		ownerGroup.PUT("/:form_id/questions", ownerFormCtrl.ReplaceQuestions)
		ownerGroup.GET("/:form_id/responses", ownerFormCtrl.ListResponses)
		ownerGroup.GET("/:form_id/responses/:response_id", ownerFormCtrl.GetResponse)
		ownerGroup.GET("/:form_id/analytics", analyticsCtrl.GetAnalytics)
		ownerGroup.GET("/:form_id/export", analyticsCtrl.ExportCSV)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("BetterForms API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Form{},
		&model.Question{},
		&model.Response{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hmiyake/classquiz/config"
	"github.com/hmiyake/classquiz/database"
	_ "github.com/hmiyake/classquiz/docs" // Swagger docs - auto-generated
	adminctrl "github.com/hmiyake/classquiz/internal/controller/admin"
	userctrl "github.com/hmiyake/classquiz/internal/controller/user"
	"github.com/hmiyake/classquiz/internal/logger"
	"github.com/hmiyake/classquiz/internal/middleware"
	"github.com/hmiyake/classquiz/internal/model"
	"github.com/hmiyake/classquiz/internal/repository"
	"github.com/hmiyake/classquiz/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Classroom Quiz API
// @version 1.0
// @description API for classroom quizzes: schools, classrooms, tests, randomized delivery, answer submission and permanent score records.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewSchoolRepository,
			repository.NewClassroomRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewOptionRepository,
			repository.NewSubmissionRepository,
			repository.NewRecordRepository,
			repository.NewSessionRepository,
			repository.NewMembershipRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewContentService,
			service.NewDeliveryService,
			service.NewSubmissionService,
			service.NewScoringService,
			service.NewMembershipService,
			service.NewMediaService,
			service.NewRecordQueryService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewContentController,
			userctrl.NewQuizController,
			userctrl.NewRecordController,
			userctrl.NewMembershipController,
			userctrl.NewMediaController,
		),

		// Invokers - Functions that are executed by Fx
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
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Custom logger using Zerolog for Gin
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

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	contentCtrl *adminctrl.ContentController,
	quizCtrl *userctrl.QuizController,
	recordCtrl *userctrl.RecordController,
	membershipCtrl *userctrl.MembershipController,
	mediaCtrl *userctrl.MediaController,
) {
	// Public media routes: blobs are referenced from <img>/<audio> tags and
	// carry no secrets, so they skip the auth middleware.
	mediaGroup := router.Group("/api/v1")
	{
		mediaGroup.GET("/schools/:school_id/picture", mediaCtrl.SchoolPicture)
		mediaGroup.GET("/classrooms/:classroom_id/picture", mediaCtrl.ClassroomPicture)
		mediaGroup.GET("/tests/:test_id/picture", mediaCtrl.TestPicture)
		mediaGroup.GET("/questions/:question_id/picture", mediaCtrl.QuestionPicture)
		mediaGroup.GET("/questions/:question_id/audio", mediaCtrl.QuestionAudio)
		mediaGroup.GET("/options/:option_id/picture", mediaCtrl.OptionPicture)
	}

	// Authenticated user routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1", middleware.Auth(cfg.JWTSecret))
	{
		// Quiz flow
		userAPIGroup.GET("/classrooms/:classroom_id/tests", quizCtrl.GetClassroomTests)
		userAPIGroup.GET("/tests/:test_id/questions", quizCtrl.GetQuestions)
		userAPIGroup.GET("/questions/:question_id/options", quizCtrl.GetOptions)
		userAPIGroup.POST("/tests/:test_id/questions/:question_id/answer", quizCtrl.SubmitAnswer)
		userAPIGroup.POST("/tests/:test_id/sessions", quizCtrl.StartSession)
		userAPIGroup.POST("/tests/:test_id/record", quizCtrl.FinalizeTest)
		userAPIGroup.POST("/submissions/reset", quizCtrl.ResetSubmissions)

		// Records and sessions
		userAPIGroup.GET("/sessions", recordCtrl.GetSessions)
		userAPIGroup.GET("/records/my", recordCtrl.GetMyRecords)
		userAPIGroup.GET("/records/groups/:group_id", recordCtrl.GetRecordsByGroup)

		// Membership
		userAPIGroup.GET("/classrooms/my", membershipCtrl.GetMyClassrooms)
		userAPIGroup.POST("/classrooms/join", membershipCtrl.JoinClassroom)
		userAPIGroup.POST("/schools/join", membershipCtrl.JoinSchool)
	}

	// Admin routes (prefixed with /api/v1/admin, teacher role required)
	adminAPIGroup := router.Group("/api/v1/admin", middleware.Auth(cfg.JWTSecret), middleware.RequireTeacher())
	{
		adminAPIGroup.POST("/schools", contentCtrl.CreateSchool)
		adminAPIGroup.DELETE("/schools/:school_id", contentCtrl.DeleteSchool)
		adminAPIGroup.POST("/schools/:school_id/classrooms", contentCtrl.CreateClassroom)
		adminAPIGroup.DELETE("/classrooms/:classroom_id", contentCtrl.DeleteClassroom)
		adminAPIGroup.POST("/classrooms/:classroom_id/tests", contentCtrl.CreateTest)
		adminAPIGroup.POST("/tests/:test_id/classrooms/:classroom_id", contentCtrl.AttachTest)
		adminAPIGroup.DELETE("/tests/:test_id", contentCtrl.DeleteTest)
		adminAPIGroup.POST("/tests/:test_id/questions", contentCtrl.CreateQuestion)
		adminAPIGroup.DELETE("/questions/:question_id", contentCtrl.DeleteQuestion)
		adminAPIGroup.POST("/questions/:question_id/options", contentCtrl.CreateOption)
		adminAPIGroup.DELETE("/options/:option_id", contentCtrl.DeleteOption)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Classroom Quiz API server starting on port %s", cfg.Server.Port)
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
		&model.School{},
		&model.Classroom{},
		&model.Test{},
		&model.Question{},
		&model.Option{},
		&model.Teacher{},
		&model.Student{},
		&model.UserTestSubmission{},
		&model.TestRecord{},
		&model.Session{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

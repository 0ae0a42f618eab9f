package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartedu_backend/internal/config"
	"smartedu_backend/internal/controller"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/service"
	"smartedu_backend/pkg/database"
	"smartedu_backend/pkg/logger"
	"smartedu_backend/pkg/monitoring"
	"smartedu_backend/pkg/security"
	"smartedu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	quiz     *repository.QuizRepository
	attempt  *repository.AttemptRepository
	result   *repository.ResultRepository
	calendar *repository.CalendarRepository
	content  *repository.ContentRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	question *service.QuestionService
	quiz     *service.QuizService
	attempt  *service.AttemptService
	grading  *service.GradingService
	result   *service.ResultService
	calendar *service.CalendarService
	storage  *service.StorageService
	content  *service.ContentService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	question    *controller.QuestionController
	quiz        *controller.QuizController
	studentQuiz *controller.StudentQuizController
	result      *controller.ResultController
	calendar    *controller.CalendarController
	content     *controller.ContentController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		quiz:     repository.NewQuizRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		result:   repository.NewResultRepository(db),
		calendar: repository.NewCalendarRepository(db),
		content:  repository.NewContentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	attemptTTL := time.Duration(cfg.Quiz.AttemptTTLHours) * time.Hour
	cacheTTL := time.Duration(cfg.Quiz.CacheTTLMinutes) * time.Minute

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg, logger.Log)
	s.user = service.NewUserService(repos.user, logger.Log)
	s.question = service.NewQuestionService(repos.question, logger.Log)
	s.quiz = service.NewQuizService(repos.quiz, repos.question, rdb, cacheTTL, logger.Log)
	s.attempt = service.NewAttemptService(repos.attempt, repos.quiz, attemptTTL, logger.Log)
	s.grading = service.NewGradingService(repos.quiz, repos.result, repos.attempt, logger.Log)
	s.result = service.NewResultService(repos.result, logger.Log)
	s.calendar = service.NewCalendarService(repos.calendar, logger.Log)
	s.content = service.NewContentService(repos.content, s.storage, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, logger.Log),
		user:        controller.NewUserController(s.user, logger.Log),
		question:    controller.NewQuestionController(s.question, logger.Log),
		quiz:        controller.NewQuizController(s.quiz, logger.Log),
		studentQuiz: controller.NewStudentQuizController(s.quiz, s.attempt, s.grading, s.result, logger.Log),
		result:      controller.NewResultController(s.result, logger.Log),
		calendar:    controller.NewCalendarController(s.calendar, logger.Log),
		content:     controller.NewContentController(s.content, logger.Log),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.SeedSuperadmin(db, &cfg.Superadmin); err != nil {
		logger.Log.Fatal("Failed to seed superadmin", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("smartedu-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}

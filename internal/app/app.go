package app

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/controller"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"
	"cbt_portal_backend/pkg/database"
	"cbt_portal_backend/pkg/logger"
	"cbt_portal_backend/pkg/monitoring"
	"cbt_portal_backend/pkg/security"
	"cbt_portal_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "cbt-portal"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	academic   *repository.AcademicRepository
	assignment *repository.TeacherAssignmentRepository
	question   *repository.QuestionRepository
	upload     *repository.UploadRepository
	batch      *repository.BatchRepository
	testCode   *repository.TestCodeRepository
	result     *repository.ResultRepository
	report     *repository.ReportRepository
}

type services struct {
	storage    *service.StorageService
	blacklist  *service.TokenBlacklist
	shuffle    *service.RedisShuffleStore
	auth       *service.AuthService
	user       *service.UserService
	academic   *service.AcademicService
	assignment *service.TeacherAssignmentService
	question   *service.QuestionService
	upload     *service.QuestionUploadService
	testCode   *service.TestCodeService
	testTaking *service.TestTakingService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	academic    *controller.AcademicController
	assignment  *controller.TeacherAssignmentController
	question    *controller.QuestionController
	testCode    *controller.TestCodeController
	studentTest *controller.StudentTestController
	dashboard   *controller.DashboardController
	system      *controller.SystemController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs every registered callback with a freshly loaded config.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) (*repositories, error) {
	reports, err := repository.NewReportRepository(db)
	if err != nil {
		return nil, err
	}
	return &repositories{
		user:       repository.NewUserRepository(db),
		academic:   repository.NewAcademicRepository(db),
		assignment: repository.NewTeacherAssignmentRepository(db),
		question:   repository.NewQuestionRepository(db),
		upload:     repository.NewUploadRepository(db),
		batch:      repository.NewBatchRepository(db),
		testCode:   repository.NewTestCodeRepository(db),
		result:     repository.NewResultRepository(db),
		report:     reports,
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.blacklist = service.NewTokenBlacklist(rdb)
	s.shuffle = service.NewRedisShuffleStore(rdb)

	s.auth = service.NewAuthService(repos.user, s.blacklist, cfg)
	s.user = service.NewUserService(repos.user, cfg)
	s.academic = service.NewAcademicService(repos.academic, cfg)
	s.assignment = service.NewTeacherAssignmentService(repos.assignment, repos.user, s.academic)
	s.question = service.NewQuestionService(repos.question, s.assignment, s.academic)
	s.upload = service.NewQuestionUploadService(s.question, repos.upload, s.storage)
	s.testCode = service.NewTestCodeService(repos.testCode, repos.batch, repos.question, s.academic, cfg)
	s.testTaking = service.NewTestTakingService(
		repos.testCode,
		repos.question,
		repos.result,
		repos.academic,
		s.shuffle,
		cfg,
	)
	s.dashboard = service.NewDashboardService(repos.report, repos.result)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		academic:    controller.NewAcademicController(s.academic),
		assignment:  controller.NewTeacherAssignmentController(s.assignment),
		question:    controller.NewQuestionController(s.question, s.upload, a.Config.Upload.MaxCSVSizeMB),
		testCode:    controller.NewTestCodeController(s.testCode),
		studentTest: controller.NewStudentTestController(s.testTaking),
		dashboard:   controller.NewDashboardController(s.dashboard),
		system:      controller.NewSystemController(db, rdb, s.academic),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())

	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires repositories, services, controllers and routes on top of
// already opened connections.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos, err := app.initRepositories(db)
	if err != nil {
		return nil, err
	}
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, "Route not found")
	})
	router.NoMethod(func(c *gin.Context) {
		util.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(logger.SetLevel)

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	monitoring.Init()

	app, err := New(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:         ":" + a.Config.Server.Port,
		Handler:      a.Router,
		ReadTimeout:  time.Duration(a.Config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(a.Config.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// wait for an interrupt, then give in-flight requests 5 seconds
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}

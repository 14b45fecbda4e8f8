package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_backend/internal/config"
	"homework_backend/internal/controller"
	"homework_backend/internal/repository"
	"homework_backend/internal/service"
	"homework_backend/internal/util"
	"homework_backend/pkg/database"
	"homework_backend/pkg/logger"
	"homework_backend/pkg/monitoring"
	"homework_backend/pkg/security"
	"homework_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	tracer   *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	profile    *repository.ProfileRepository
	classroom  *repository.ClassroomRepository
	gradeScale *repository.GradeScaleRepository
	homework   *repository.HomeworkRepository
	submission *repository.SubmissionRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	classroom  *service.ClassroomService
	gradeScale *service.GradeScaleService
	homework   *service.HomeworkService
	submission *service.SubmissionService
	report     *service.ReportService
	demo       *service.DemoService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	classroom  *controller.ClassroomController
	gradeScale *controller.GradeScaleController
	homework   *controller.HomeworkController
	submission *controller.SubmissionController
	report     *controller.ReportController
	demo       *controller.DemoController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		profile:    repository.NewProfileRepository(db),
		classroom:  repository.NewClassroomRepository(db),
		gradeScale: repository.NewGradeScaleRepository(db),
		homework:   repository.NewHomeworkRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.profile, db, cfg)
	s.user = service.NewUserService(repos.user, repos.profile, repos.classroom)
	s.classroom = service.NewClassroomService(repos.classroom, repos.profile, repos.user, db)
	s.gradeScale = service.NewGradeScaleService(repos.gradeScale, repos.homework)
	s.homework = service.NewHomeworkService(repos.homework, repos.classroom, repos.profile, repos.gradeScale, s.storage)
	s.submission = service.NewSubmissionService(repos.submission, repos.homework, repos.classroom, repos.profile, repos.gradeScale)
	s.report = service.NewReportService(repos.submission, repos.homework, repos.classroom, repos.profile, repos.gradeScale, rdb)
	s.demo = service.NewDemoService(cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user),
		classroom:  controller.NewClassroomController(s.classroom, s.report),
		gradeScale: controller.NewGradeScaleController(s.gradeScale),
		homework:   controller.NewHomeworkController(s.homework),
		submission: controller.NewSubmissionController(s.submission, s.report),
		report:     controller.NewReportController(s.report),
		demo:       controller.NewDemoController(s.demo),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ApplyConfig 配置文件热更新回调，目前只有演示作业题目支持在线替换
func (a *App) ApplyConfig(cfg *config.Config) {
	if a.services == nil || a.services.demo == nil {
		return
	}
	a.services.demo.Reload(cfg)
	logger.Log.Info("demo homework reloaded from config")
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting (migrate-only mode)")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 报表缓存还有降级路径，Redis 挂了不拦启动
		logger.Log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("homework-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}

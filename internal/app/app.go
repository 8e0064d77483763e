package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/internal/controller"
	"github.com/SinesysTech/aluminify-sub018/internal/repository"
	"github.com/SinesysTech/aluminify-sub018/internal/service"
	"github.com/SinesysTech/aluminify-sub018/pkg/database"
	"github.com/SinesysTech/aluminify-sub018/pkg/logger"
	"github.com/SinesysTech/aluminify-sub018/pkg/monitoring"
	"github.com/SinesysTech/aluminify-sub018/pkg/security"
	"github.com/SinesysTech/aluminify-sub018/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	company      *repository.CompanyRepository
	session      *repository.StudySessionRepository
	sessionCache *repository.SessionHeartbeatCache
	appointment  *repository.AppointmentRepository
	availability *repository.AvailabilityRepository
	blockage     *repository.BlockageRepository
	report       *repository.ReportRepository
}

type services struct {
	auth         *service.AuthService
	session      *service.StudySessionService
	quota        *service.QuotaService
	availability *service.AvailabilityService
	appointment  *service.AppointmentService
	storage      *service.StorageService
	report       *service.ReportService
}

type controllers struct {
	auth         *controller.AuthController
	session      *controller.StudySessionController
	appointment  *controller.AppointmentController
	availability *controller.AvailabilityController
	report       *controller.ReportController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded config and notifies registered
// callbacks. Only settings read per-request pick up the change.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	heartbeatTTL := time.Duration(cfg.Session.HeartbeatTTLSeconds) * time.Second
	return &repositories{
		user:         repository.NewUserRepository(db),
		company:      repository.NewCompanyRepository(db),
		session:      repository.NewStudySessionRepository(db),
		sessionCache: repository.NewSessionHeartbeatCache(rdb, heartbeatTTL),
		appointment:  repository.NewAppointmentRepository(db),
		availability: repository.NewAvailabilityRepository(db),
		blockage:     repository.NewBlockageRepository(db),
		report:       repository.NewReportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	flushInterval := time.Duration(cfg.Session.HeartbeatFlushSeconds) * time.Second

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.company, cfg)
	s.session = service.NewStudySessionService(repos.session, repos.sessionCache, flushInterval)
	s.quota = service.NewQuotaService(repos.company, repos.appointment)
	s.availability = service.NewAvailabilityService(repos.availability, repos.blockage, repos.appointment)
	s.appointment = service.NewAppointmentService(repos.appointment, repos.user, s.availability, s.quota)
	s.report = service.NewReportService(repos.report, repos.appointment, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		session:      controller.NewStudySessionController(s.session),
		appointment:  controller.NewAppointmentController(s.appointment, s.quota),
		availability: controller.NewAvailabilityController(s.availability),
		report:       controller.NewReportController(s.report),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("aluminify-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

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

	log.Println("Server exiting")
}

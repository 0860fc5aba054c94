package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mural_backend/database"
	"mural_backend/internal/auth"
	"mural_backend/internal/config"
	"mural_backend/internal/email"
	"mural_backend/internal/handlers"
	"mural_backend/internal/imageprocessor"
	"mural_backend/internal/logger"
	"mural_backend/internal/media"
	"mural_backend/internal/media/tools"
	"mural_backend/internal/middleware"
	"mural_backend/internal/models"
	"mural_backend/internal/ratelimit"
	"mural_backend/internal/routes"
	"mural_backend/internal/services"
	"mural_backend/internal/storage"
	"mural_backend/internal/transcription"
	"mural_backend/internal/validator"
	"mural_backend/internal/workers"
	"mural_backend/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

// App - собранное приложение: роутер и фоновые процессы
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Router   *gin.Engine
	Services *services.ServiceContainer
	Repos    *services.Repositories
	Hub      *ws.Hub
	Limiter  ratelimit.Limiter
	Cleanup  *workers.CleanupWorker
}

type options struct {
	tools       tools.Tools
	transcriber transcription.Transcriber
	provider    email.Provider
	limiter     ratelimit.Limiter
	mirror      storage.Storage
}

type Option func(*options)

// WithTools подменяет ffmpeg/ffprobe/pdftoppm (тесты)
func WithTools(t tools.Tools) Option {
	return func(o *options) { o.tools = t }
}

func WithTranscriber(t transcription.Transcriber) Option {
	return func(o *options) { o.transcriber = t }
}

func WithEmailProvider(p email.Provider) Option {
	return func(o *options) { o.provider = p }
}

func WithLimiter(l ratelimit.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithMirror задает удаленное хранилище вместо storage.type
func WithMirror(s storage.Storage) Option {
	return func(o *options) { o.mirror = s }
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "dialect", db.Dialector.Name())

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	a, err := New(cfg, db)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		logger.Fatal("Server error", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает приложение и возвращает только роутер
func SetupRouter(cfg *config.Config, db *gorm.DB, opts ...Option) (*gin.Engine, error) {
	a, err := New(cfg, db, opts...)
	if err != nil {
		return nil, err
	}
	return a.Router, nil
}

// New связывает конфиг, БД, конвейер медиа, сервисы, хэндлеры и маршруты
func New(cfg *config.Config, db *gorm.DB, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := ensureJWTSecret(cfg); err != nil {
		return nil, err
	}

	pipeline, err := initializePipeline(cfg, o)
	if err != nil {
		return nil, err
	}

	limiter := o.limiter
	if limiter == nil {
		limiter, err = ratelimit.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("init rate limiter: %w", err)
		}
	}
	logger.Info("Rate limiter initialized", "backend", cfg.RateLimit.Backend)

	provider := o.provider
	if provider == nil {
		provider, err = initializeEmailProvider(cfg)
		if err != nil {
			return nil, err
		}
	}

	hub := ws.NewHub()
	repos := services.NewRepositories()
	serviceContainer := services.NewServiceContainer(services.ContainerConfig{
		Auth: services.AuthConfig{
			JWTSecret:       cfg.JWT.Secret,
			JWTTTL:          cfg.JWTTTL(),
			IFSPEmailDomain: cfg.Security.IFSPEmailDomain,
		},
		AutoHideThreshold: cfg.Security.AutoHideThreshold,
	}, repos, pipeline, services.NewEmailService(provider), hub)

	appHandlers := handlers.NewAppHandlers(handlers.HandlersConfig{
		MaxUpload:   cfg.Upload.MaxSize,
		Cookies:     handlers.CookieConfig{TTL: cfg.JWTTTL(), Secure: cfg.IsProduction()},
		Environment: cfg.Server.Env,
	}, validator.New(validator.WithBPPattern(cfg.Security.BPRegex)), serviceContainer)

	mw := initializeMiddlewares(cfg, repos, serviceContainer, limiter)

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, appHandlers, mw, ws.NewHandler(hub, cfg.CORS.Origins), routes.Options{
		StaticDir: cfg.Media.StaticDir,
		Swagger:   !cfg.IsProduction(),
	})

	var sweeper workers.Sweeper
	if m, ok := limiter.(*ratelimit.MemoryLimiter); ok {
		sweeper = m
	}

	return &App{
		Config:   cfg,
		DB:       db,
		Router:   ginRouter,
		Services: serviceContainer,
		Repos:    repos,
		Hub:      hub,
		Limiter:  limiter,
		Cleanup:  workers.NewCleanupWorker(db, repos.Sessions, repos.Users, sweeper, cfg.CleanupInterval()),
	}, nil
}

// Serve запускает HTTP сервер, hub ленты и cleanup worker до отмены ctx
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Hub.Run(gctx) })
	g.Go(func() error { return a.Cleanup.Start(gctx) })
	g.Go(func() error {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.Close()
	return err
}

// Close освобождает лимитер и дожидается фоновых писем
func (a *App) Close() {
	if err := a.Services.EmailService.Close(); err != nil {
		logger.Warn("Email provider close failed", "error", err)
	}
	if err := a.Limiter.Close(); err != nil {
		logger.Warn("Rate limiter close failed", "error", err)
	}
}

func initializePipeline(cfg *config.Config, o *options) (services.MediaPipeline, error) {
	mediaTools := o.tools
	if mediaTools == nil {
		mediaTools = tools.New(tools.Config{
			FFmpegPath:   cfg.Media.FFmpegPath,
			FFprobePath:  cfg.Media.FFprobePath,
			PdftoppmPath: cfg.Media.PdftoppmPath,
			Timeout:      cfg.ProcessTimeout(),
		})
	}

	transcriber := o.transcriber
	if transcriber == nil {
		adapter := transcription.New(cfg, mediaTools)
		logger.Info("Transcription adapter configured", "engine", adapter.EngineName())
		transcriber = adapter
	}

	placer := media.NewPlacer(cfg.Upload.Root, cfg.Upload.PublicPrefix)
	if err := placer.EnsureLayout(); err != nil {
		return services.MediaPipeline{}, err
	}
	if err := media.EnsurePlaceholders(cfg.Media.StaticDir, cfg.Media.VideoPlaceholder, cfg.Media.PDFPlaceholder); err != nil {
		// без заглушек посты все равно создаются
		logger.Warn("Failed to draw placeholders", "error", err)
	}

	mirror := o.mirror
	if mirror == nil {
		storageCfg := storage.FromAppConfig(cfg)
		if storageCfg.IsRemote() {
			remote, err := storage.NewStorage(storageCfg)
			if err != nil {
				return services.MediaPipeline{}, fmt.Errorf("init storage: %w", err)
			}
			mirror = remote
		}
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type, "upload_root", cfg.Upload.Root)

	processor := media.NewProcessor(media.ProcessorConfig{
		ThumbnailSize:    cfg.Media.ThumbnailSize,
		PDFDPI:           cfg.Media.PDFDPI,
		VideoPlaceholder: cfg.Media.VideoPlaceholder,
		PDFPlaceholder:   cfg.Media.PDFPlaceholder,
		DefaultLanguage:  cfg.Transcription.Language,
	}, mediaTools, imageprocessor.NewProcessor(cfg.Media.JPEGQuality, cfg.Media.MaxDimension), transcriber, placer)

	return services.MediaPipeline{
		Validator: media.NewFormatValidator(media.AllowedFromConfig(cfg.Upload.Allowed), cfg.Upload.MaxSize),
		Placer:    placer,
		Processor: processor,
		Mirror:    mirror,
	}, nil
}

func initializeEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := templates.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			return nil, fmt.Errorf("load email templates: %w", err)
		}
	}
	if cfg.Email.Mode != email.ModeSMTP {
		logger.Warn("Email mode is not smtp, messages are written to the log", "mode", cfg.Email.Mode)
	}
	return email.NewProvider(email.ConfigFromApp(cfg), cfg.Email.Mode, templates), nil
}

func initializeMiddlewares(cfg *config.Config, repos *services.Repositories, svc *services.ServiceContainer, limiter ratelimit.Limiter) *handlers.Middlewares {
	return &handlers.Middlewares{
		Auth:         middleware.AuthMiddleware(cfg.JWT.Secret, repos.Users),
		OptionalAuth: middleware.OptionalAuth(cfg.JWT.Secret, repos.Users),
		StudentOnly:  middleware.StudentOnly(),
		Moderator:    middleware.AdminOnly(svc.AdminService, models.AdminLevelModerator),
		Admin:        middleware.AdminOnly(svc.AdminService, models.AdminLevelAdmin),
		LoginLimit:   middleware.RateLimit(limiter, ratelimit.ScopeLogin, cfg.RateLimit.LoginAttempts, cfg.LoginWindow(), middleware.ByIP),
		PostLimit:    middleware.RateLimit(limiter, ratelimit.ScopePost, cfg.RateLimit.PostsPerHour, time.Hour, middleware.ByUser),
		CommentLimit: middleware.RateLimit(limiter, ratelimit.ScopeComment, cfg.RateLimit.CommentsPerHour, time.Hour, middleware.ByUser),
		BodyLimit:    middleware.BodyLimit(cfg.Upload.MaxSize),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = 8 << 20
	return router
}

// ensureJWTSecret: в production секрет обязателен, в dev генерируется на время процесса
func ensureJWTSecret(cfg *config.Config) error {
	if cfg.JWT.Secret != "" {
		return nil
	}
	if cfg.IsProduction() {
		return errors.New("jwt secret is required in production")
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate jwt secret: %w", err)
	}
	cfg.JWT.Secret = hex.EncodeToString(buf)
	logger.Warn("JWT_SECRET is not set. Using a random secret, tokens will not survive a restart.")
	return nil
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdmin.Email))
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)

		switch {
		case result.Error == nil:
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			logger.Warn("No user found with the admin email. Creating first admin...", "email", adminEmail)

			hashedPassword, err := auth.HashPassword(adminPassword)
			if err != nil {
				return fmt.Errorf("failed to hash admin password: %w", err)
			}
			username, _, _ := strings.Cut(adminEmail, "@")
			adminUser = models.User{
				UserType:      models.UserTypeVisitor,
				Username:      username,
				Email:         adminEmail,
				PasswordHash:  hashedPassword,
				EmailVerified: true,
			}
			if err := tx.Create(&adminUser).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
		default:
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		var count int64
		if err := tx.Model(&models.Administrator{}).Where("usuario_id = ?", adminUser.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check admin record: %w", err)
		}
		if count > 0 {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}

		if err := tx.Create(&models.Administrator{
			UserID:          adminUser.ID,
			PermissionLevel: models.AdminLevelSuperAdmin,
		}).Error; err != nil {
			return fmt.Errorf("failed to create admin record: %w", err)
		}
		logger.Info("First admin created", "email", adminEmail, "level", string(models.AdminLevelSuperAdmin))
		return nil
	})
}

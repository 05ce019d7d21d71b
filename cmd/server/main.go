package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/adapter/ai/gemini"
	"github.com/carewear/carevoice/internal/adapter/cache"
	"github.com/carewear/carevoice/internal/adapter/http/fiber/handlers"
	"github.com/carewear/carevoice/internal/adapter/http/fiber/middleware"
	"github.com/carewear/carevoice/internal/adapter/queue"
	"github.com/carewear/carevoice/internal/adapter/speech/google"
	"github.com/carewear/carevoice/internal/adapter/storage/memory"
	"github.com/carewear/carevoice/internal/adapter/storage/postgres"
	"github.com/carewear/carevoice/internal/adapter/vault"
	"github.com/carewear/carevoice/internal/observability/telemetry"
	"github.com/carewear/carevoice/internal/ports"
	"github.com/carewear/carevoice/internal/service/assistant"
	"github.com/carewear/carevoice/internal/service/command"
	"github.com/carewear/carevoice/pkg/config"
)

const serviceName = "carevoice"

// collaborators is the seam between production and development mode:
// selected once at startup, never swapped afterwards.
type collaborators struct {
	patients ports.PatientRepository
	staff    ports.StaffRepository
	devices  ports.DeviceRepository
	vitals   ports.VitalRepository
	records  ports.CareRecordRepository
	cache    ports.Cache
	mq       queue.Publisher
	speech   ports.SpeechService
	intents  ports.IntentService
	cleanup  func()
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("starting CareVoice",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	var deps *collaborators
	if cfg.App.IsProduction() {
		deps, err = productionCollaborators(cfg, logger)
		if err != nil {
			logger.Fatal("failed to wire production collaborators", zap.Error(err))
		}
	} else {
		deps = developmentCollaborators(logger)
	}
	defer deps.cleanup()

	resolver := command.NewService(deps.patients, deps.staff, deps.vitals, deps.records, deps.mq, logger)
	voiceAssistant := assistant.New(
		deps.devices, deps.cache, deps.speech, deps.intents,
		resolver, cfg.Cache.DeviceTTL, logger,
	)

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := deps.cache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("cache not ready")
		}
		return c.SendString("Ready")
	})

	if cfg.Prometheus.Enabled {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	v1 := app.Group("/api/v1")
	voiceHandler := handlers.NewVoiceHandler(voiceAssistant, cfg.App.IsDevelopment(), logger)
	v1.Post("/voice/command", voiceHandler.ProcessCommand)

	go func() {
		logger.Info("starting HTTP server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}

func productionCollaborators(cfg *config.Config, logger *zap.Logger) (*collaborators, error) {
	databaseURL := cfg.Database.URL
	geminiKey := cfg.Gemini.APIKey
	speechKey := cfg.Speech.APIKey

	// Vault overrides plain env configuration when an address is set.
	if cfg.Vault.Address != "" {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			return nil, fmt.Errorf("vault client: %w", err)
		}
		if url, err := sm.GetDatabaseURL(); err == nil {
			databaseURL = url
		} else {
			logger.Warn("vault database secret unavailable", zap.Error(err))
		}
		if key, err := sm.GetGeminiAPIKey(); err == nil {
			geminiKey = key
		} else {
			logger.Warn("vault gemini secret unavailable", zap.Error(err))
		}
		if key, err := sm.GetSpeechAPIKey(); err == nil {
			speechKey = key
		} else {
			logger.Warn("vault speech secret unavailable", zap.Error(err))
		}
	}

	db, err := postgres.NewConnection(databaseURL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		return nil, err
	}

	var mq queue.Publisher
	switch cfg.Queue.Driver {
	case "rabbitmq":
		mq, err = queue.NewRabbitMQPublisher(cfg.Queue.RabbitMQURL, logger)
	default:
		mq, err = queue.NewNATSPublisher(cfg.Queue.NATSURL, logger)
	}
	if err != nil {
		return nil, err
	}

	return &collaborators{
		patients: postgres.NewPatientRepository(db, logger),
		staff:    postgres.NewStaffRepository(db, logger),
		devices:  postgres.NewDeviceRepository(db, logger),
		vitals:   postgres.NewVitalRepository(db, logger),
		records:  postgres.NewCareRecordRepository(db, logger),
		cache:    redisCache,
		mq:       mq,
		speech:   google.NewClient(speechKey, cfg.CircuitBreaker, logger),
		intents:  gemini.NewClassifier(geminiKey, cfg.CircuitBreaker, logger),
		cleanup: func() {
			mq.Close()
			redisCache.Close()
			postgres.Close(db)
		},
	}, nil
}

func developmentCollaborators(logger *zap.Logger) *collaborators {
	logger.Info("development mode: using seeded in-memory collaborators")

	store := memory.NewSeededStore()
	localCache := cache.NewLocalCache(time.Minute, logger)
	mq := queue.NewLocalPublisher(logger)

	return &collaborators{
		patients: store.Patients(),
		staff:    store.Staff(),
		devices:  store.Devices(),
		vitals:   store.Vitals(),
		records:  store.CareRecords(),
		cache:    localCache,
		mq:       mq,
		speech:   memory.NewSpeechStub(),
		intents:  memory.NewIntentStub(),
		cleanup: func() {
			localCache.Close()
		},
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/config"
	"github.com/stemsi/lessonlab-backend/internal/database"
	"github.com/stemsi/lessonlab-backend/internal/events"
	"github.com/stemsi/lessonlab-backend/internal/generator"
	"github.com/stemsi/lessonlab-backend/internal/handler"
	"github.com/stemsi/lessonlab-backend/internal/logger"
	"github.com/stemsi/lessonlab-backend/internal/repository"
	"github.com/stemsi/lessonlab-backend/internal/router"
	"github.com/stemsi/lessonlab-backend/internal/service"
	"github.com/stemsi/lessonlab-backend/internal/validator"
	"github.com/stemsi/lessonlab-backend/internal/verifier"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting LessonLab Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Lesson Catalog ───────────────────────────────────────────
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Failed to load lesson catalog")
	}
	log.Info().Int("lessons", cat.Len()).Msg("Lesson catalog loaded")

	// ─── Registration Store ────────────────────────────────────────────
	var store repository.RegistrationStore
	switch cfg.RegistrationStore {
	case "postgres":
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		store = repository.NewPgRegistrationStore(pool)
	default:
		fileStore, err := repository.NewFileRegistrationStore(cfg.RegistrationsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RegistrationsPath).Msg("Failed to open registration store")
		}
		store = fileStore
	}

	// ─── Task / Quiz Generator ─────────────────────────────────────────
	var gen generator.Generator = generator.NewChatClient(
		cfg.GeneratorURL,
		cfg.GeneratorAPIKey,
		cfg.GeneratorModel,
		cfg.GeneratorTimeout,
	)

	// Redis is optional: without it quizzes are generated fresh each time.
	if rdb, err := database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, quiz caching disabled")
	} else {
		defer rdb.Close()
		gen = generator.NewCachedGenerator(gen, rdb, cfg.QuizCacheTTL, log)
	}

	// ─── Initialize Services ───────────────────────────────────────────
	runner := verifier.NewRunner(cfg.Interpreter, config.CaseTimeout, log)
	bus := events.NewBus()

	lessonService := service.NewLessonService(cat, log)
	attendanceService := service.NewAttendanceService(cat, store, gen, log)
	statsService := service.NewStatsService()
	submissionService := service.NewSubmissionService(cat, gen, runner, statsService, bus, log)
	quizService := service.NewQuizService(cat, gen, log)

	// ─── Initialize Handlers ───────────────────────────────────────────
	handlers := &router.Handlers{
		Lesson:     handler.NewLessonHandler(lessonService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Task:       handler.NewTaskHandler(submissionService),
		Quiz:       handler.NewQuizHandler(quizService),
		Stats:      handler.NewStatsHandler(statsService),
		WS:         handler.NewWSHandler(bus, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banket/internal/backend"
	"banket/internal/bot"
	"banket/internal/config"
	"banket/internal/domain"
	"banket/internal/events"
	"banket/internal/google"
	"banket/internal/logging"
	"banket/internal/metrics"
	"banket/internal/models"
	"banket/internal/repository"
	"banket/internal/service"
	"banket/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, categories, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	redisClient, sessionRepo := initSessionRepository(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	backendClient := backend.New(cfg.Backend, &logger)

	refreshWorker := worker.NewRefreshWorker(worker.RetryPolicy{}, &logger)
	go refreshWorker.Start(ctx)

	eventBus := events.NewEventBus()

	// Бизнес-сервисы поверх REST API платформы
	postService := service.NewPostService(backendClient, eventBus, refreshWorker, &logger)
	bookingService := service.NewBookingService(backendClient, eventBus, refreshWorker, &logger)
	feedbackService := service.NewFeedbackService(backendClient, &logger)
	notificationService := service.NewNotificationService(backendClient, &logger)
	userService := service.NewUserService(backendClient, &logger)
	prefsService := service.NewPreferencesService(sessionRepo, &logger)

	refreshWorker.Register("posts", postService.Refresh)
	refreshWorker.Register("bookings", bookingService.Refresh)
	refreshWorker.Register("feedback", feedbackService.Refresh)
	refreshWorker.Register("notifications", notificationService.Refresh)
	refreshWorker.Register("users", userService.Refresh)

	sheetsService := initGoogleSheets(ctx, cfg, &logger)
	if sheetsService != nil {
		refreshWorker.Register("sheets_bookings", func(ctx context.Context) error {
			return sheetsService.ReplaceBookings(ctx, bookingService.Bookings())
		})
	}

	subscribeBookingEvents(ctx, eventBus, notificationService, refreshWorker, sheetsService != nil, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		go serveMetrics(cfg.Monitoring.PrometheusPort, &logger)
	}

	// Первичный прогрев коллекций
	for _, task := range []string{"posts", "bookings", "feedback", "notifications", "users"} {
		refreshWorker.Schedule(task)
	}

	return startBot(ctx, cfg, categories, sessionRepo,
		postService, bookingService, feedbackService,
		notificationService, userService, prefsService,
		refreshWorker, &logger)
}

func loadConfigAndLogger() (*config.Config, []config.Category, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "admin-main").Logger()

	categoriesPath := os.Getenv("CATEGORIES_PATH")
	if categoriesPath == "" {
		categoriesPath = "configs/categories.yaml"
	}
	categories, err := config.LoadCategories(categoriesPath)
	if err != nil {
		// Без категорий консоль работает, но фильтр и мастер создания урезаны
		logger.Warn().Err(err).Str("path", categoriesPath).Msg("Categories file not loaded")
		categories = nil
	}

	return cfg, categories, logger, closer, nil
}

func initSessionRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, domain.SessionRepository) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(models.DefaultRedisTTL) * time.Second
	primaryRepo := repository.NewRedisSessionRepository(redisClient, ttl)
	fallbackRepo := repository.NewMemorySessionRepository(ttl)
	return redisClient, repository.NewFailoverSessionRepository(primaryRepo, fallbackRepo, logger)
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if cfg.Google.CredentialsFile == "" || cfg.Google.BookingsSpreadsheetID == "" {
		logger.Info().Msg("Google Sheets mirror disabled")
		return nil
	}

	sheetsSvc, err := google.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.BookingsSpreadsheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil
	}

	if err := sheetsSvc.TestConnection(ctx); err != nil {
		logger.Error().Err(err).Msg("Google Sheets connection test failed")
		return nil
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheetsSvc
}

// subscribeBookingEvents wires status-change events to customer
// notifications and the Sheets mirror. Both sides are best-effort:
// a failed delivery never blocks or reverts the transition.
func subscribeBookingEvents(
	ctx context.Context,
	bus *events.EventBus,
	notifications domain.NotificationService,
	refresher domain.RefreshScheduler,
	sheetsEnabled bool,
	logger *zerolog.Logger,
) {
	handler := func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		if payload.UserID != 0 && payload.Status != "" {
			notifications.NotifyStatusChange(ctx, payload.UserID, payload.BookingID, payload.Status)
		}

		if sheetsEnabled {
			refresher.Schedule("sheets_bookings")
		}
		return nil
	}

	for _, eventType := range []string{
		events.EventBookingConfirmed,
		events.EventBookingCompleted,
		events.EventBookingCancelled,
		events.EventBookingStatus,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("Prometheus endpoint listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Prometheus endpoint error")
	}
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	categories []config.Category,
	sessionRepo domain.SessionRepository,
	postService domain.PostService,
	bookingService domain.BookingService,
	feedbackService domain.FeedbackService,
	notificationService domain.NotificationService,
	userService domain.UserService,
	prefsService domain.PreferencesService,
	refresher domain.RefreshScheduler,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	botWrapper := bot.NewBotWrapper(botAPI)
	tgService := service.NewTelegramService(botWrapper)
	botMetrics := bot.NewMetrics()

	telegramBot, err := bot.NewBot(
		tgService, cfg, sessionRepo,
		postService, bookingService, feedbackService,
		notificationService, userService, prefsService,
		refresher, categories, botMetrics, logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Admin console started")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

package bot

import (
	"context"
	"os"
	"time"

	"banket/internal/config"
	"banket/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Bot is the operator console: a thin rendering layer over the collection
// services. It holds no collection state of its own; everything displayed
// is derived from the services on each render.
type Bot struct {
	tgService     domain.TelegramService
	config        *config.Config
	sessions      domain.SessionRepository
	posts         domain.PostService
	bookings      domain.BookingService
	feedback      domain.FeedbackService
	notifications domain.NotificationService
	users         domain.UserService
	prefs         domain.PreferencesService
	refresher     domain.RefreshScheduler
	categories    []config.Category
	metrics       *Metrics
	logger        *zerolog.Logger
}

func NewBot(
	tgService domain.TelegramService,
	cfg *config.Config,
	sessions domain.SessionRepository,
	posts domain.PostService,
	bookings domain.BookingService,
	feedback domain.FeedbackService,
	notifications domain.NotificationService,
	users domain.UserService,
	prefs domain.PreferencesService,
	refresher domain.RefreshScheduler,
	categories []config.Category,
	metrics *Metrics,
	logger *zerolog.Logger,
) (*Bot, error) {
	if logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &l
	}

	return &Bot{
		tgService:     tgService,
		config:        cfg,
		sessions:      sessions,
		posts:         posts,
		bookings:      bookings,
		feedback:      feedback,
		notifications: notifications,
		users:         users,
		prefs:         prefs,
		refresher:     refresher,
		categories:    categories,
		metrics:       metrics,
		logger:        logger,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tgService.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tgService.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	// Создаем контекст для обработки каждого обновления
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		var userID, chatID int64
		if update.Message != nil {
			userID = update.Message.From.ID
			chatID = update.Message.Chat.ID
		} else if update.CallbackQuery != nil {
			userID = update.CallbackQuery.From.ID
			if update.CallbackQuery.Message != nil {
				chatID = update.CallbackQuery.Message.Chat.ID
			}
		}

		if userID == 0 {
			return
		}

		if !b.isAdmin(userID) {
			l.Warn().Int64("user_id", userID).Msg("Rejected non-admin update")
			if chatID != 0 {
				b.sendMessage(chatID, "This console is restricted to platform administrators.")
			}
			return
		}

		allowed, err := b.sessions.CheckRateLimit(updateCtx, userID,
			b.config.UI.RateLimitMsgs, time.Duration(b.config.UI.RateLimitWindow)*time.Second)
		if err != nil {
			l.Error().Err(err).Int64("user_id", userID).Msg("Rate limit check failed")
		} else if !allowed {
			l.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
			if update.Message != nil {
				b.sendMessage(chatID, "⚠️ Slow down a little, please.")
			}
			return
		}

		if update.CallbackQuery != nil {
			if b.metrics != nil {
				b.metrics.CallbacksProcessed.Inc()
			}
			b.handleCallbackQuery(updateCtx, update)
			return
		}

		if update.Message == nil {
			return
		}

		if b.metrics != nil {
			b.metrics.MessagesProcessed.Inc()
		}
		b.handleMessage(updateCtx, update)
	})
}

package repository

import (
	"context"
	"sync/atomic"
	"time"

	"banket/internal/domain"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSessionRepository prefers the primary (Redis) store and degrades
// to the fallback (memory) when the primary errors, probing the primary
// again after a minute.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverSessionRepository) primaryUsable() bool {
	if !r.isDown.Load() {
		return true
	}
	// Probe again after a minute
	if time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute {
		r.isDown.Store(false)
		r.lastCheck.Store(time.Now().UnixNano())
		return true
	}
	return false
}

func (r *FailoverSessionRepository) GetSession(ctx context.Context, chatID int64) (*models.Session, error) {
	if r.primaryUsable() {
		session, err := r.primary.GetSession(ctx, chatID)
		if err == nil {
			return session, nil
		}
		r.markDown(err)
	}
	return r.fallback.GetSession(ctx, chatID)
}

func (r *FailoverSessionRepository) SetSession(ctx context.Context, session *models.Session) error {
	if r.primaryUsable() {
		if err := r.primary.SetSession(ctx, session); err == nil {
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.SetSession(ctx, session)
}

func (r *FailoverSessionRepository) ClearSession(ctx context.Context, chatID int64) error {
	if r.primaryUsable() {
		if err := r.primary.ClearSession(ctx, chatID); err == nil {
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.ClearSession(ctx, chatID)
}

func (r *FailoverSessionRepository) GetPreferences(ctx context.Context, chatID int64) (*models.Preferences, error) {
	if r.primaryUsable() {
		prefs, err := r.primary.GetPreferences(ctx, chatID)
		if err == nil {
			return prefs, nil
		}
		r.markDown(err)
	}
	return r.fallback.GetPreferences(ctx, chatID)
}

func (r *FailoverSessionRepository) SetPreferences(ctx context.Context, prefs *models.Preferences) error {
	if r.primaryUsable() {
		if err := r.primary.SetPreferences(ctx, prefs); err == nil {
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.SetPreferences(ctx, prefs)
}

func (r *FailoverSessionRepository) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	if r.primaryUsable() {
		allowed, err := r.primary.CheckRateLimit(ctx, chatID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, chatID, limit, window)
}

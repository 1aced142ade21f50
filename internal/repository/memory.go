package repository

import (
	"context"
	"sync"
	"time"

	"banket/internal/models"
)

// MemorySessionRepository is the in-process fallback store.
type MemorySessionRepository struct {
	sessions   sync.Map
	prefs      sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{ttl: ttl}
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, chatID int64) (*models.Session, error) {
	val, ok := r.sessions.Load(chatID)
	if !ok {
		return nil, nil
	}
	return val.(*models.Session), nil
}

func (r *MemorySessionRepository) SetSession(ctx context.Context, session *models.Session) error {
	r.sessions.Store(session.ChatID, session)
	return nil
}

func (r *MemorySessionRepository) ClearSession(ctx context.Context, chatID int64) error {
	r.sessions.Delete(chatID)
	return nil
}

func (r *MemorySessionRepository) GetPreferences(ctx context.Context, chatID int64) (*models.Preferences, error) {
	val, ok := r.prefs.Load(chatID)
	if !ok {
		return nil, nil
	}
	return val.(*models.Preferences), nil
}

func (r *MemorySessionRepository) SetPreferences(ctx context.Context, prefs *models.Preferences) error {
	r.prefs.Store(prefs.ChatID, prefs)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(chatID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(chatID, entry)
	return entry.count <= limit, nil
}

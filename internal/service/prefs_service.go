package service

import (
	"context"
	"sync"

	"banket/internal/domain"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// PreferencesService isolates the ambient UI-preference store behind
// explicit get/set/subscribe operations. View code never reads or writes
// the underlying store directly.
type PreferencesService struct {
	repo   domain.SessionRepository
	logger *zerolog.Logger

	mu          sync.RWMutex
	subscribers []func(models.Preferences)
}

func NewPreferencesService(repo domain.SessionRepository, logger *zerolog.Logger) *PreferencesService {
	return &PreferencesService{repo: repo, logger: logger}
}

// Get loads the operator's preferences, defaulting to zero values.
func (s *PreferencesService) Get(ctx context.Context, chatID int64) (models.Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, chatID)
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to load preferences")
		return models.Preferences{ChatID: chatID}, err
	}
	if prefs == nil {
		return models.Preferences{ChatID: chatID}, nil
	}
	return *prefs, nil
}

// SetDarkMode persists the flag and notifies subscribers.
func (s *PreferencesService) SetDarkMode(ctx context.Context, chatID int64, dark bool) error {
	prefs, _ := s.Get(ctx, chatID)
	prefs.ChatID = chatID
	prefs.DarkMode = dark
	if err := s.repo.SetPreferences(ctx, &prefs); err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to save preferences")
		return err
	}

	s.mu.RLock()
	subs := append([]func(models.Preferences){}, s.subscribers...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(prefs)
	}
	return nil
}

// Subscribe registers a callback invoked after every preference change.
func (s *PreferencesService) Subscribe(fn func(models.Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

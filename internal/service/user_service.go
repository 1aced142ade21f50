package service

import (
	"context"

	"banket/internal/collection"
	"banket/internal/domain"
	"banket/internal/metrics"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// UserService exposes the platform accounts and role management. Role
// strings are taken at face value; enforcement stays server-side.
type UserService struct {
	backend domain.Backend
	store   *collection.Store[models.Account]
	logger  *zerolog.Logger
}

func NewUserService(backend domain.Backend, logger *zerolog.Logger) *UserService {
	return &UserService{
		backend: backend,
		store:   collection.NewStore[models.Account](),
		logger:  logger,
	}
}

func (s *UserService) Refresh(ctx context.Context) error {
	gen := s.store.Begin()
	accounts, err := s.backend.ListUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("users fetch failed")
		return err
	}
	s.store.Replace(gen, accounts)
	return nil
}

func (s *UserService) Users() []models.Account {
	return s.store.Items()
}

func (s *UserService) Profile(ctx context.Context) (models.Account, error) {
	return s.backend.Profile(ctx)
}

// SetRole updates a user's role and patches the local record after
// confirmation.
func (s *UserService) SetRole(ctx context.Context, username, role string) error {
	if err := s.backend.SetRole(ctx, username, role); err != nil {
		s.logger.Error().Err(err).Str("username", username).Str("role", role).Msg("set role failed")
		return err
	}
	s.store.Patch(
		func(a models.Account) bool { return a.Username == username },
		func(a *models.Account) { a.Role = role },
	)
	metrics.IncMutation("user", "set_role")
	return nil
}

// AdminCount counts accounts currently holding the admin role.
func (s *UserService) AdminCount() int {
	return collection.Count(s.store.Items(), func(a models.Account) bool { return a.IsAdmin() })
}

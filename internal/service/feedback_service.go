package service

import (
	"context"

	"banket/internal/collection"
	"banket/internal/domain"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// FeedbackService owns the feedback raw collection. The rating summary is
// always computed from the unfiltered collection.
type FeedbackService struct {
	backend domain.Backend
	store   *collection.Store[models.Feedback]
	logger  *zerolog.Logger
}

func NewFeedbackService(backend domain.Backend, logger *zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		backend: backend,
		store:   collection.NewStore[models.Feedback](),
		logger:  logger,
	}
}

func (s *FeedbackService) Refresh(ctx context.Context) error {
	gen := s.store.Begin()
	feedback, err := s.backend.ListFeedback(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("feedback fetch failed")
		return err
	}
	s.store.Replace(gen, feedback)
	return nil
}

func (s *FeedbackService) Feedback() []models.Feedback {
	return s.store.Items()
}

// ForPost fetches feedback for one post directly; the per-post list is not
// part of the session collection.
func (s *FeedbackService) ForPost(ctx context.Context, postID int64) ([]models.Feedback, error) {
	return s.backend.ListPostFeedback(ctx, postID)
}

func (s *FeedbackService) Stats() models.FeedbackStats {
	items := s.store.Items()
	return models.FeedbackStats{
		Total:    len(items),
		Average:  collection.Average(items, func(f models.Feedback) float64 { return float64(f.Rating) }),
		ByRating: collection.CountBy(items, func(f models.Feedback) int { return f.Rating }),
	}
}

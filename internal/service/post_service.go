package service

import (
	"context"

	"banket/internal/collection"
	"banket/internal/domain"
	"banket/internal/events"
	"banket/internal/metrics"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// PostService owns the posts raw collection for the admin session and
// dispatches post mutations. Mutations patch the local collection only
// after the backend confirmed them; a background refetch reconciles
// afterwards. Summary counters derive from the unfiltered collection, so
// the local patch bumps them immediately (eventually consistent with the
// refetch).
type PostService struct {
	backend   domain.Backend
	store     *collection.Store[models.Post]
	bus       domain.EventPublisher
	refresher domain.RefreshScheduler
	logger    *zerolog.Logger
}

func NewPostService(backend domain.Backend, bus domain.EventPublisher, refresher domain.RefreshScheduler, logger *zerolog.Logger) *PostService {
	return &PostService{
		backend:   backend,
		store:     collection.NewStore[models.Post](),
		bus:       bus,
		refresher: refresher,
		logger:    logger,
	}
}

// Refresh fetches the full collection. A fetch started before a newer one
// is discarded on completion.
func (s *PostService) Refresh(ctx context.Context) error {
	gen := s.store.Begin()
	posts, err := s.backend.ListPosts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("posts fetch failed")
		return err
	}
	if !s.store.Replace(gen, posts) {
		s.logger.Debug().Uint64("generation", gen).Msg("stale posts fetch discarded")
	}
	return nil
}

// Posts returns the raw collection in fetch order.
func (s *PostService) Posts() []models.Post {
	return s.store.Items()
}

// Get returns a post by id from the local collection.
func (s *PostService) Get(id int64) (models.Post, bool) {
	return s.store.Find(func(p models.Post) bool { return p.ID == id })
}

// Stats computes summary counters over the unfiltered collection.
func (s *PostService) Stats() models.PostStats {
	posts := s.store.Items()
	return models.PostStats{
		Total:      len(posts),
		Special:    collection.Count(posts, func(p models.Post) bool { return p.IsSpecial }),
		ByCategory: collection.CountBy(posts, func(p models.Post) string { return p.Category }),
	}
}

// Create submits a new post. On success the canonical record returned by
// the backend is appended locally and a reconciling refetch is scheduled.
func (s *PostService) Create(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	post, err := s.backend.CreatePost(ctx, draft)
	if err != nil {
		s.logger.Error().Err(err).Str("title", draft.Title).Msg("post create failed")
		return models.Post{}, err
	}

	s.store.Append(post)
	metrics.IncMutation("post", "create")
	s.publish(events.EventPostCreated, post)
	s.scheduleRefresh()
	return post, nil
}

// Update submits changed fields and replaces the record in place.
func (s *PostService) Update(ctx context.Context, id int64, draft models.PostDraft) (models.Post, error) {
	updated, err := s.backend.UpdatePost(ctx, id, draft)
	if err != nil {
		s.logger.Error().Err(err).Int64("post_id", id).Msg("post update failed")
		return models.Post{}, err
	}

	s.store.Patch(
		func(p models.Post) bool { return p.ID == id },
		func(p *models.Post) { *p = updated },
	)
	metrics.IncMutation("post", "update")
	s.scheduleRefresh()
	return updated, nil
}

// Delete removes a post. The spliced-out record carries the pre-delete
// flags the aggregate counters depend on; since counters derive from the
// collection, splicing decrements them atomically.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeletePost(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("post_id", id).Msg("post delete failed")
		return err
	}

	removed, ok := s.store.Remove(func(p models.Post) bool { return p.ID == id })
	if ok {
		s.publish(events.EventPostDeleted, removed)
	}
	metrics.IncMutation("post", "delete")
	s.scheduleRefresh()
	return nil
}

func (s *PostService) publish(eventType string, post models.Post) {
	if s.bus == nil {
		return
	}
	payload := events.PostEventPayload{PostID: post.ID, Title: post.Title, IsSpecial: post.IsSpecial}
	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("post_id", post.ID).Msg("publish event error")
	}
}

func (s *PostService) scheduleRefresh() {
	if s.refresher != nil {
		s.refresher.Schedule("posts")
	}
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	rediscache "github.com/pathwise/pathwise-backend/internal/clients/redis"
	"github.com/pathwise/pathwise-backend/internal/data/repos"
	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/insight"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

// BehaviorService computes behavioral aggregates from raw tracking rows.
// Aggregates are transient; a short-TTL cache absorbs repeated reads inside
// one refresh window.
type BehaviorService interface {
	ComputeAggregate(ctx context.Context, userID uuid.UUID, windowDays int) (domain.BehavioralAggregate, error)
}

type behaviorService struct {
	db    *gorm.DB
	log   *logger.Logger
	cache rediscache.AggregateCache

	interactions repos.ResourceInteractionRepo
	sessions     repos.LearningSessionRepo
	masteries    repos.ConceptMasteryRepo
}

func NewBehaviorService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache rediscache.AggregateCache,
	interactions repos.ResourceInteractionRepo,
	sessions repos.LearningSessionRepo,
	masteries repos.ConceptMasteryRepo,
) BehaviorService {
	return &behaviorService{
		db:           db,
		log:          baseLog.With("service", "BehaviorService"),
		cache:        cache,
		interactions: interactions,
		sessions:     sessions,
		masteries:    masteries,
	}
}

func (s *behaviorService) ComputeAggregate(ctx context.Context, userID uuid.UUID, windowDays int) (domain.BehavioralAggregate, error) {
	if userID == uuid.Nil {
		return domain.BehavioralAggregate{}, pkgerrors.ErrInvalidArgument
	}
	if windowDays <= 0 {
		return domain.BehavioralAggregate{}, pkgerrors.ErrInvalidWindow
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID, windowDays)
		if err != nil {
			s.log.Warn("aggregate cache read failed", "user_id", userID, "error", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -windowDays)

	var (
		interactions []*domain.ResourceInteraction
		sessions     []*domain.LearningSession
		masteries    []*domain.ConceptMastery
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interactions, err = s.interactions.ListByUserSince(gctx, nil, userID, since)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessions.ListByUserSince(gctx, nil, userID, since)
		return err
	})
	g.Go(func() error {
		var err error
		masteries, err = s.masteries.ListByUser(gctx, nil, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		// Tracking rows are a collaborator's data; a failed read degrades to
		// the cold-start aggregate rather than failing the refresh.
		s.log.Warn("behavioral read failed; using cold-start aggregate",
			"user_id", userID, "window_days", windowDays, "error", err)
		return insight.DefaultAggregate(userID, windowDays, now), nil
	}

	agg, err := insight.Aggregate(insight.AggregateInput{
		UserID:       userID,
		WindowDays:   windowDays,
		Now:          now,
		Interactions: interactions,
		Sessions:     sessions,
		Masteries:    masteries,
	})
	if err != nil {
		return domain.BehavioralAggregate{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, &agg); err != nil {
			s.log.Warn("aggregate cache write failed", "user_id", userID, "error", err)
		}
	}
	return agg, nil
}

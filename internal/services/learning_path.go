package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/data/graph"
	"github.com/pathwise/pathwise-backend/internal/data/repos"
	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/insight"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/platform/neo4jdb"
)

// LearningPathService ranks a concept's resources against a learner's
// profile and folds closed interactions back into the catalog's running
// engagement values.
type LearningPathService interface {
	GetPersonalizedPath(ctx context.Context, userID uuid.UUID, conceptName string) (*domain.PersonalizedLearningPath, error)
	CloseInteraction(ctx context.Context, interactionID uuid.UUID, close repos.InteractionClose) (*domain.ResourceInteraction, error)
}

type learningPathService struct {
	db    *gorm.DB
	log   *logger.Logger
	graph *neo4jdb.Client

	profiles     repos.CognitiveProfileRepo
	interactions repos.ResourceInteractionRepo
}

func NewLearningPathService(
	db *gorm.DB,
	baseLog *logger.Logger,
	graphClient *neo4jdb.Client,
	profiles repos.CognitiveProfileRepo,
	interactions repos.ResourceInteractionRepo,
) LearningPathService {
	return &learningPathService{
		db:           db,
		log:          baseLog.With("service", "LearningPathService"),
		graph:        graphClient,
		profiles:     profiles,
		interactions: interactions,
	}
}

func (s *learningPathService) GetPersonalizedPath(ctx context.Context, userID uuid.UUID, conceptName string) (*domain.PersonalizedLearningPath, error) {
	if conceptName == "" {
		return nil, pkgerrors.ErrInvalidArgument
	}

	// A learner without a profile still gets a path: ranking falls back to
	// the mixed/medium defaults.
	var profile *domain.CognitiveProfile
	if userID != uuid.Nil {
		var err error
		profile, err = s.profiles.GetByUserID(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
	}

	cc, err := graph.FetchConceptCandidates(ctx, s.graph, s.log, conceptName)
	if err != nil {
		return nil, err
	}

	path := insight.Rank(profile, cc.Concept, cc.Candidates, cc.Edges)
	return &path, nil
}

// CloseInteraction records an interaction's terminal metrics and folds the
// observed completion and rating into the resource node's running values.
func (s *learningPathService) CloseInteraction(ctx context.Context, interactionID uuid.UUID, close repos.InteractionClose) (*domain.ResourceInteraction, error) {
	if interactionID == uuid.Nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	row, err := s.interactions.Close(ctx, nil, interactionID, close)
	if err != nil {
		return nil, err
	}

	if row.EngagementScore != nil {
		updated, err := graph.UpdateResourceEngagement(ctx, s.graph, s.log,
			row.ResourceID, row.CompletionPercentage, float64(*row.EngagementScore))
		if err != nil && !errors.Is(err, pkgerrors.ErrDataUnavailable) {
			// The relational row is already closed; catalog smoothing is
			// best-effort.
			s.log.Warn("resource engagement smoothing failed",
				"resource_id", row.ResourceID, "error", err)
		} else if err == nil && !updated {
			s.log.Warn("closed interaction references unknown resource",
				"resource_id", row.ResourceID)
		}
	}
	return row, nil
}

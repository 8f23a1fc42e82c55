package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/data/graph"
	"github.com/pathwise/pathwise-backend/internal/domain"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/platform/neo4jdb"
)

// ResourceService manages the learning-resource catalog in the graph store.
type ResourceService interface {
	CreateResource(ctx context.Context, r *domain.LearningResource) (string, error)
	LinkToConcept(ctx context.Context, conceptName, resourceID string, resourceOrder int, recommendedFor []string) error
	ListForConcept(ctx context.Context, conceptName string, learningStyle, difficultyLevel *string) ([]domain.LearningResource, error)
	GetConcept(ctx context.Context, conceptName string, learningStyle *string) (*domain.ConceptDetail, error)
	GetAnalytics(ctx context.Context, resourceID string) (*graph.ResourceAnalytics, error)
}

type resourceService struct {
	log   *logger.Logger
	graph *neo4jdb.Client
}

func NewResourceService(baseLog *logger.Logger, graphClient *neo4jdb.Client) ResourceService {
	return &resourceService{
		log:   baseLog.With("service", "ResourceService"),
		graph: graphClient,
	}
}

func (s *resourceService) CreateResource(ctx context.Context, r *domain.LearningResource) (string, error) {
	if r == nil {
		return "", pkgerrors.ErrInvalidArgument
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.LearningStyle == "" {
		r.LearningStyle = "mixed"
	}
	if r.DifficultyLevel == "" {
		r.DifficultyLevel = domain.DifficultyIntermediate
	}
	if r.Language == "" {
		r.Language = "en"
	}
	return graph.CreateLearningResource(ctx, s.graph, s.log, r)
}

func (s *resourceService) LinkToConcept(ctx context.Context, conceptName, resourceID string, resourceOrder int, recommendedFor []string) error {
	if resourceOrder <= 0 {
		resourceOrder = 1
	}
	linked, err := graph.LinkResourceToConcept(ctx, s.graph, s.log, conceptName, resourceID, resourceOrder, recommendedFor)
	if err != nil {
		return err
	}
	if !linked {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (s *resourceService) ListForConcept(ctx context.Context, conceptName string, learningStyle, difficultyLevel *string) ([]domain.LearningResource, error) {
	return graph.GetResourcesForConcept(ctx, s.graph, s.log, conceptName, learningStyle, difficultyLevel)
}

func (s *resourceService) GetConcept(ctx context.Context, conceptName string, learningStyle *string) (*domain.ConceptDetail, error) {
	return graph.GetConceptWithResources(ctx, s.graph, s.log, conceptName, learningStyle)
}

func (s *resourceService) GetAnalytics(ctx context.Context, resourceID string) (*graph.ResourceAnalytics, error) {
	if resourceID == "" {
		return nil, pkgerrors.ErrInvalidArgument
	}
	return graph.GetResourceAnalytics(ctx, s.graph, s.log, resourceID)
}

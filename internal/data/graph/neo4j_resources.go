package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/pathwise/pathwise-backend/internal/domain"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/platform/neo4jdb"
)

// CreateLearningResource creates a LearningResource node and returns its id.
func CreateLearningResource(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, r *domain.LearningResource) (string, error) {
	if client == nil || client.Driver == nil {
		return "", pkgerrors.ErrDataUnavailable
	}
	if r == nil || r.ID == "" {
		return "", fmt.Errorf("neo4j resource create: missing resource id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
CREATE (r:LearningResource {
    id: $id,
    resource_type: $resource_type,
    title: $title,
    url: $url,
    duration_minutes: $duration_minutes,
    thumbnail_url: $thumbnail_url,
    difficulty_level: $difficulty_level,
    engagement_score: $engagement_score,
    completion_rate: $completion_rate,
    learning_style: $learning_style,
    interaction_type: $interaction_type,
    language: $language,
    description: $description,
    tags: $tags,
    created_at: datetime(),
    last_updated: datetime()
})
RETURN r.id AS resource_id
`, resourceParams(r))
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		id, _ := rec.Get("resource_id")
		return id, nil
	})
	if err != nil {
		return "", err
	}
	id, _ := out.(string)
	if log != nil {
		log.Info("created learning resource", "resource_id", id, "resource_type", string(r.ResourceType))
	}
	return id, nil
}

// LinkResourceToConcept attaches an existing resource to a concept with its
// ordering position. Returns false when either node is missing.
func LinkResourceToConcept(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, conceptName, resourceID string, resourceOrder int, recommendedFor []string) (bool, error) {
	if client == nil || client.Driver == nil {
		return false, pkgerrors.ErrDataUnavailable
	}
	if conceptName == "" || resourceID == "" {
		return false, fmt.Errorf("neo4j resource link: missing concept name or resource id")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if recommendedFor == nil {
		recommendedFor = []string{}
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {name: $concept_name})
MATCH (r:LearningResource {id: $resource_id})
MERGE (c)-[rel:HAS_RESOURCE]->(r)
SET rel.resource_order = $resource_order,
    rel.recommended_for = $recommended_for,
    rel.created_at = coalesce(rel.created_at, datetime())
RETURN c.name AS concept, r.id AS resource
`, map[string]any{
			"concept_name":    conceptName,
			"resource_id":     resourceID,
			"resource_order":  resourceOrder,
			"recommended_for": recommendedFor,
		})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return len(recs) > 0, nil
	})
	if err != nil {
		return false, err
	}
	linked, _ := out.(bool)
	return linked, nil
}

// GetResourcesForConcept returns a concept's resources ordered by their
// declared position, optionally filtered by style and difficulty.
func GetResourcesForConcept(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, conceptName string, learningStyle, difficultyLevel *string) ([]domain.LearningResource, error) {
	if client == nil || client.Driver == nil {
		return nil, pkgerrors.ErrDataUnavailable
	}
	if conceptName == "" {
		return nil, fmt.Errorf("neo4j resource list: missing concept name")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {name: $concept_name})-[rel:HAS_RESOURCE]->(r:LearningResource)
WHERE ($learning_style IS NULL OR r.learning_style = $learning_style)
  AND ($difficulty_level IS NULL OR r.difficulty_level = $difficulty_level)
RETURN r, rel.resource_order AS order
ORDER BY order, r.engagement_score DESC
`, map[string]any{
			"concept_name":     conceptName,
			"learning_style":   nullable(learningStyle),
			"difficulty_level": nullable(difficultyLevel),
		})
		if err != nil {
			return nil, err
		}
		var resources []domain.LearningResource
		for res.Next(ctx) {
			rec := res.Record()
			raw, ok := rec.Get("r")
			if !ok {
				continue
			}
			node, ok := raw.(neo4j.Node)
			if !ok {
				continue
			}
			resources = append(resources, resourceFromProps(node.Props))
		}
		return resources, res.Err()
	})
	if err != nil {
		return nil, err
	}
	resources, _ := out.([]domain.LearningResource)
	return resources, nil
}

// ConceptCandidates is everything the ranking function needs about one
// concept, fetched in a single read transaction.
type ConceptCandidates struct {
	Concept    domain.ConceptRef
	Candidates []domain.ConceptResource
	Edges      []domain.ConceptEdge
}

// FetchConceptCandidates loads a concept's resources with their ordering,
// its estimated hours, and outgoing PREREQUISITE_FOR edges. Returns
// ErrNotFound when the concept does not exist.
func FetchConceptCandidates(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, conceptName string) (*ConceptCandidates, error) {
	if client == nil || client.Driver == nil {
		return nil, pkgerrors.ErrDataUnavailable
	}
	if conceptName == "" {
		return nil, fmt.Errorf("neo4j candidate fetch: missing concept name")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {name: $concept_name})
OPTIONAL MATCH (c)-[rel:HAS_RESOURCE]->(r:LearningResource)
OPTIONAL MATCH (c)-[:PREREQUISITE_FOR]->(next:Concept)
RETURN c.name AS name,
       c.estimated_hours AS estimated_hours,
       collect(DISTINCT {resource: r, order: rel.resource_order}) AS candidates,
       collect(DISTINCT next.name) AS next_concepts
`, map[string]any{"concept_name": conceptName})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, pkgerrors.ErrNotFound
		}

		cc := &ConceptCandidates{}
		if v, ok := rec.Get("name"); ok {
			cc.Concept.Name, _ = v.(string)
		}
		if v, ok := rec.Get("estimated_hours"); ok {
			cc.Concept.EstimatedHours = asFloat(v)
		}
		if v, ok := rec.Get("candidates"); ok {
			items, _ := v.([]any)
			for _, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				node, ok := m["resource"].(neo4j.Node)
				if !ok {
					continue
				}
				cc.Candidates = append(cc.Candidates, domain.ConceptResource{
					Resource:      resourceFromProps(node.Props),
					ResourceOrder: int(asFloat(m["order"])),
				})
			}
		}
		if v, ok := rec.Get("next_concepts"); ok {
			items, _ := v.([]any)
			for _, item := range items {
				if name, ok := item.(string); ok && name != "" {
					cc.Edges = append(cc.Edges, domain.ConceptEdge{From: conceptName, To: name})
				}
			}
		}
		return cc, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*ConceptCandidates), nil
}

// UpdateResourceEngagement folds an observed completion and engagement
// reading into the resource node's running values.
func UpdateResourceEngagement(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, resourceID string, completionRate, engagementScore float64) (bool, error) {
	if client == nil || client.Driver == nil {
		return false, pkgerrors.ErrDataUnavailable
	}
	if resourceID == "" {
		return false, fmt.Errorf("neo4j engagement update: missing resource id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (r:LearningResource {id: $resource_id})
SET r.completion_rate = (r.completion_rate * 0.9 + $completion_rate * 0.1),
    r.engagement_score = (r.engagement_score * 0.9 + $engagement_score * 0.1),
    r.last_updated = datetime()
RETURN r.id AS resource_id
`, map[string]any{
			"resource_id":      resourceID,
			"completion_rate":  completionRate,
			"engagement_score": engagementScore,
		})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return len(recs) > 0, nil
	})
	if err != nil {
		return false, err
	}
	updated, _ := out.(bool)
	if log != nil && !updated {
		log.Warn("engagement update matched no resource", "resource_id", resourceID)
	}
	return updated, nil
}

// ResourceAnalytics is a resource's stored node data plus its owning concept.
type ResourceAnalytics struct {
	Resource    domain.LearningResource `json:"resource"`
	ConceptName string                  `json:"concept_name,omitempty"`
}

func GetResourceAnalytics(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, resourceID string) (*ResourceAnalytics, error) {
	if client == nil || client.Driver == nil {
		return nil, pkgerrors.ErrDataUnavailable
	}
	if resourceID == "" {
		return nil, fmt.Errorf("neo4j resource analytics: missing resource id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (r:LearningResource {id: $resource_id})
OPTIONAL MATCH (c:Concept)-[:HAS_RESOURCE]->(r)
RETURN r, c.name AS concept_name
`, map[string]any{"resource_id": resourceID})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, pkgerrors.ErrNotFound
		}
		ra := &ResourceAnalytics{}
		if v, ok := rec.Get("r"); ok {
			if node, ok := v.(neo4j.Node); ok {
				ra.Resource = resourceFromProps(node.Props)
			}
		}
		if v, ok := rec.Get("concept_name"); ok {
			ra.ConceptName, _ = v.(string)
		}
		return ra, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*ResourceAnalytics), nil
}

// GetConceptWithResources loads a concept, its resources filtered by style
// (mixed always passes), and its prerequisite and subtopic counts.
func GetConceptWithResources(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, conceptName string, learningStyle *string) (*domain.ConceptDetail, error) {
	if client == nil || client.Driver == nil {
		return nil, pkgerrors.ErrDataUnavailable
	}
	if conceptName == "" {
		return nil, fmt.Errorf("neo4j concept detail: missing concept name")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {name: $concept_name})
OPTIONAL MATCH (c)-[:HAS_RESOURCE]->(r:LearningResource)
WHERE $learning_style IS NULL OR r.learning_style = $learning_style OR r.learning_style = 'mixed'
OPTIONAL MATCH (c)<-[:PREREQUISITE_FOR]-(prereq:Concept)
OPTIONAL MATCH (c)-[:HAS_SUBTOPIC]->(sub:Concept)
WITH c,
     collect(DISTINCT r) AS resources,
     count(DISTINCT prereq) AS prereq_count,
     count(DISTINCT sub) AS subtopic_count
RETURN c, resources, prereq_count, subtopic_count
`, map[string]any{
			"concept_name":   conceptName,
			"learning_style": nullable(learningStyle),
		})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, pkgerrors.ErrNotFound
		}

		detail := &domain.ConceptDetail{}
		if v, ok := rec.Get("c"); ok {
			if node, ok := v.(neo4j.Node); ok {
				p := node.Props
				detail.ID = asString(p["id"])
				if detail.ID == "" {
					detail.ID = conceptName
				}
				detail.Name = asString(p["name"])
				detail.Type = asStringOr(p["type"], "unknown")
				detail.Complexity = asStringOr(p["complexity"], "medium")
				detail.EstimatedHours = asFloatOr(p["estimated_hours"], 1.0)
				detail.CognitiveTags = asStrings(p["cognitive_tags"])
				detail.LearningStyles = asStrings(p["learning_styles"])
				detail.Description = asString(p["description"])
			}
		}
		if v, ok := rec.Get("resources"); ok {
			items, _ := v.([]any)
			for _, item := range items {
				if node, ok := item.(neo4j.Node); ok {
					detail.Resources = append(detail.Resources, resourceFromProps(node.Props))
				}
			}
		}
		if v, ok := rec.Get("prereq_count"); ok {
			detail.PrerequisitesCount = int(asFloat(v))
		}
		if v, ok := rec.Get("subtopic_count"); ok {
			detail.SubtopicsCount = int(asFloat(v))
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*domain.ConceptDetail), nil
}

// EnsureResourceSchema creates the uniqueness constraint used by resource
// lookups. Best-effort; restricted users may lack schema privileges.
func EnsureResourceSchema(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) {
	if client == nil || client.Driver == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	for _, q := range []string{
		`CREATE CONSTRAINT learning_resource_id_unique IF NOT EXISTS FOR (r:LearningResource) REQUIRE r.id IS UNIQUE`,
		`CREATE CONSTRAINT concept_name_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.name IS UNIQUE`,
	} {
		if res, err := session.Run(ctx, q, nil); err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "error", err)
			}
		} else {
			_, _ = res.Consume(ctx)
		}
	}
}

func resourceParams(r *domain.LearningResource) map[string]any {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":               r.ID,
		"resource_type":    string(r.ResourceType),
		"title":            r.Title,
		"url":              r.URL,
		"duration_minutes": r.DurationMinutes,
		"thumbnail_url":    r.ThumbnailURL,
		"difficulty_level": string(r.DifficultyLevel),
		"engagement_score": r.EngagementScore,
		"completion_rate":  r.CompletionRate,
		"learning_style":   r.LearningStyle,
		"interaction_type": r.InteractionType,
		"language":         r.Language,
		"description":      r.Description,
		"tags":             tags,
	}
}

func resourceFromProps(p map[string]any) domain.LearningResource {
	return domain.LearningResource{
		ID:              asString(p["id"]),
		ResourceType:    domain.ResourceType(asString(p["resource_type"])),
		Title:           asString(p["title"]),
		URL:             asString(p["url"]),
		DurationMinutes: int(asFloat(p["duration_minutes"])),
		ThumbnailURL:    asString(p["thumbnail_url"]),
		DifficultyLevel: domain.DifficultyLevel(asString(p["difficulty_level"])),
		EngagementScore: asFloat(p["engagement_score"]),
		CompletionRate:  asFloat(p["completion_rate"]),
		LearningStyle:   asString(p["learning_style"]),
		InteractionType: asString(p["interaction_type"]),
		Language:        asString(p["language"]),
		Description:     asString(p["description"]),
		Tags:            asStrings(p["tags"]),
	}
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	}
	return 0
}

func asFloatOr(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	}
	return def
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

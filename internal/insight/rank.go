package insight

import (
	"sort"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

const (
	styleWeight      = 0.6
	difficultyWeight = 0.4
	engagementWeight = 0.2

	styleExact = 1.0
	styleMixed = 0.7
	styleOther = 0.3

	difficultyExact    = 1.0
	difficultyAdjacent = 0.7
	difficultyOther    = 0.5

	maxRecommended = 10

	// Exponential smoothing split for resource engagement feedback.
	smoothingKeep    = 0.9
	smoothingObserve = 0.1
)

// PreferredDifficulty maps complexity tolerance to the preferred resource
// difficulty. It is a preference, not a hard filter.
func PreferredDifficulty(tolerance domain.ComplexityTolerance) domain.DifficultyLevel {
	switch tolerance {
	case domain.ComplexityLow:
		return domain.DifficultyBeginner
	case domain.ComplexityHigh:
		return domain.DifficultyAdvanced
	default:
		return domain.DifficultyIntermediate
	}
}

// StyleScore scores the resource's declared style against the profile's
// input preference.
func StyleScore(resourceStyle string, preference domain.InputPreference) float64 {
	switch resourceStyle {
	case string(preference):
		return styleExact
	case "mixed":
		return styleMixed
	default:
		return styleOther
	}
}

// DifficultyScore rewards an exact difficulty match, then the "one step
// easier" adjacency (beginner for an intermediate preference, intermediate
// for an advanced one).
func DifficultyScore(difficulty, preferred domain.DifficultyLevel) float64 {
	switch {
	case difficulty == preferred:
		return difficultyExact
	case difficulty == domain.DifficultyBeginner && preferred == domain.DifficultyIntermediate:
		return difficultyAdjacent
	case difficulty == domain.DifficultyIntermediate && preferred == domain.DifficultyAdvanced:
		return difficultyAdjacent
	default:
		return difficultyOther
	}
}

// MatchScore combines the per-axis scores. The total is deliberately
// unnormalized: engagement can push it above 1.0 and only relative order
// matters.
func MatchScore(styleScore, difficultyScore, engagementScore float64) float64 {
	return styleScore*styleWeight + difficultyScore*difficultyWeight + engagementScore*engagementWeight
}

// Rank scores a concept's candidate resources against a profile and
// returns the personalized path: top candidates by match score (ties
// broken by declared resource order), the best per-axis scores observed
// among them, the concept's immediate successors and the estimated total
// time.
func Rank(profile *domain.CognitiveProfile, concept domain.ConceptRef, candidates []domain.ConceptResource, edges []domain.ConceptEdge) domain.PersonalizedLearningPath {
	preference := domain.InputPreferenceMixed
	tolerance := domain.ComplexityMedium
	if profile != nil {
		preference = profile.InputPreference
		tolerance = profile.ComplexityTolerance
	}
	preferred := PreferredDifficulty(tolerance)

	scored := make([]domain.ScoredResource, 0, len(candidates))
	for _, c := range candidates {
		styleScore := StyleScore(c.Resource.LearningStyle, preference)
		difficultyScore := DifficultyScore(c.Resource.DifficultyLevel, preferred)
		scored = append(scored, domain.ScoredResource{
			Resource:        c.Resource,
			ResourceOrder:   c.ResourceOrder,
			StyleScore:      styleScore,
			DifficultyScore: difficultyScore,
			MatchScore:      MatchScore(styleScore, difficultyScore, c.Resource.EngagementScore),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].ResourceOrder < scored[j].ResourceOrder
	})
	if len(scored) > maxRecommended {
		scored = scored[:maxRecommended]
	}

	styleMatch, difficultyMatch := 0.0, 0.0
	for _, s := range scored {
		if s.StyleScore > styleMatch {
			styleMatch = s.StyleScore
		}
		if s.DifficultyScore > difficultyMatch {
			difficultyMatch = s.DifficultyScore
		}
	}

	return domain.PersonalizedLearningPath{
		ConceptName:          concept.Name,
		RecommendedResources: scored,
		EstimatedTimeMinutes: int(concept.EstimatedHours * 60),
		DifficultyMatchScore: difficultyMatch,
		StyleMatchScore:      styleMatch,
		NextConcepts:         successorsOf(concept.Name, edges),
	}
}

// successorsOf returns the distinct immediate successors of concept,
// first-seen order preserved.
func successorsOf(concept string, edges []domain.ConceptEdge) []string {
	var next []string
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		if e.From != concept || e.To == "" {
			continue
		}
		if _, ok := seen[e.To]; ok {
			continue
		}
		seen[e.To] = struct{}{}
		next = append(next, e.To)
	}
	return next
}

// SmoothEngagement folds one observation into a running resource metric.
// The 0.9/0.1 split is the system's only continuously blended update.
func SmoothEngagement(old, observed float64) float64 {
	return old*smoothingKeep + observed*smoothingObserve
}

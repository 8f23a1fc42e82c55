package insight

import (
	"fmt"
	"testing"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

func candidate(id, style string, difficulty domain.DifficultyLevel, order int, engagement float64) domain.ConceptResource {
	return domain.ConceptResource{
		Resource: domain.LearningResource{
			ID:              id,
			ResourceType:    domain.ResourceVideo,
			Title:           "Resource " + id,
			URL:             "https://example.com/" + id,
			DifficultyLevel: difficulty,
			LearningStyle:   style,
			EngagementScore: engagement,
		},
		ResourceOrder: order,
	}
}

func rankingProfile(pref domain.InputPreference, tolerance domain.ComplexityTolerance) *domain.CognitiveProfile {
	return &domain.CognitiveProfile{
		InputPreference:     pref,
		ComplexityTolerance: tolerance,
	}
}

func TestRankTwoAxisMatchBeatsOneAxis(t *testing.T) {
	profile := rankingProfile(domain.InputPreferenceVisual, domain.ComplexityHigh)
	candidates := []domain.ConceptResource{
		candidate("partial", "visual", domain.DifficultyBeginner, 1, 0),
		candidate("full", "visual", domain.DifficultyAdvanced, 2, 0),
	}

	path := Rank(profile, domain.ConceptRef{Name: "recursion"}, candidates, nil)
	if len(path.RecommendedResources) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(path.RecommendedResources))
	}
	if got := path.RecommendedResources[0].Resource.ID; got != "full" {
		t.Fatalf("expected the two-axis match first, got %q", got)
	}
	if got := path.RecommendedResources[0].MatchScore; !almostEqual(got, 1.0) {
		t.Fatalf("expected match score 1.0, got %v", got)
	}
	if got := path.RecommendedResources[1].MatchScore; !almostEqual(got, 0.8) {
		t.Fatalf("expected match score 0.8 for the style-only match, got %v", got)
	}
	if !almostEqual(path.StyleMatchScore, 1.0) || !almostEqual(path.DifficultyMatchScore, 1.0) {
		t.Fatalf("expected best per-axis scores 1.0/1.0, got %v/%v",
			path.StyleMatchScore, path.DifficultyMatchScore)
	}
}

func TestRankTieBreaksByResourceOrder(t *testing.T) {
	profile := rankingProfile(domain.InputPreferenceVisual, domain.ComplexityMedium)
	candidates := []domain.ConceptResource{
		candidate("later", "visual", domain.DifficultyIntermediate, 5, 0),
		candidate("earlier", "visual", domain.DifficultyIntermediate, 2, 0),
	}

	path := Rank(profile, domain.ConceptRef{Name: "recursion"}, candidates, nil)
	if got := path.RecommendedResources[0].Resource.ID; got != "earlier" {
		t.Fatalf("expected the lower resource order to win the tie, got %q", got)
	}
}

func TestRankEngagementBreaksOtherwiseEqualMatches(t *testing.T) {
	profile := rankingProfile(domain.InputPreferenceVisual, domain.ComplexityMedium)
	candidates := []domain.ConceptResource{
		candidate("flat", "visual", domain.DifficultyIntermediate, 1, 0),
		candidate("loved", "visual", domain.DifficultyIntermediate, 2, 4.5),
	}

	path := Rank(profile, domain.ConceptRef{Name: "recursion"}, candidates, nil)
	if got := path.RecommendedResources[0].Resource.ID; got != "loved" {
		t.Fatalf("expected the higher-engagement resource first, got %q", got)
	}
	if got := path.RecommendedResources[0].MatchScore; !almostEqual(got, 1.0+4.5*0.2) {
		t.Fatalf("unexpected match score %v", got)
	}
}

func TestRankTruncatesRecommendations(t *testing.T) {
	profile := rankingProfile(domain.InputPreferenceVisual, domain.ComplexityMedium)
	var candidates []domain.ConceptResource
	for i := 0; i < 12; i++ {
		candidates = append(candidates,
			candidate(fmt.Sprintf("r%02d", i), "visual", domain.DifficultyIntermediate, i, 0))
	}

	path := Rank(profile, domain.ConceptRef{Name: "recursion"}, candidates, nil)
	if len(path.RecommendedResources) != 10 {
		t.Fatalf("expected recommendations capped at 10, got %d", len(path.RecommendedResources))
	}
	if got := path.RecommendedResources[0].Resource.ID; got != "r00" {
		t.Fatalf("expected the first declared resource to survive, got %q", got)
	}
}

func TestRankNilProfileUsesMixedMediumDefaults(t *testing.T) {
	candidates := []domain.ConceptResource{
		candidate("mixed-mid", "mixed", domain.DifficultyIntermediate, 1, 0),
		candidate("visual-adv", "visual", domain.DifficultyAdvanced, 2, 0),
	}

	path := Rank(nil, domain.ConceptRef{Name: "recursion"}, candidates, nil)
	if got := path.RecommendedResources[0].Resource.ID; got != "mixed-mid" {
		t.Fatalf("expected mixed/intermediate to win without a profile, got %q", got)
	}
	// mixed style is an exact match for the mixed default, intermediate
	// is exact for the medium default.
	if got := path.RecommendedResources[0].MatchScore; !almostEqual(got, 1.0) {
		t.Fatalf("unexpected default match score %v", got)
	}
}

func TestRankEstimatedTimeAndSuccessors(t *testing.T) {
	edges := []domain.ConceptEdge{
		{From: "recursion", To: "dynamic programming"},
		{From: "recursion", To: "trees"},
		{From: "recursion", To: "dynamic programming"},
		{From: "loops", To: "recursion"},
		{From: "recursion", To: ""},
	}

	path := Rank(nil, domain.ConceptRef{Name: "recursion", EstimatedHours: 2.5}, nil, edges)
	if path.EstimatedTimeMinutes != 150 {
		t.Fatalf("expected 150 estimated minutes, got %d", path.EstimatedTimeMinutes)
	}
	want := []string{"dynamic programming", "trees"}
	if len(path.NextConcepts) != len(want) {
		t.Fatalf("expected successors %v, got %v", want, path.NextConcepts)
	}
	for i, name := range want {
		if path.NextConcepts[i] != name {
			t.Fatalf("expected successors %v, got %v", want, path.NextConcepts)
		}
	}
}

func TestStyleScore(t *testing.T) {
	cases := []struct {
		style      string
		preference domain.InputPreference
		want       float64
	}{
		{"visual", domain.InputPreferenceVisual, 1.0},
		{"mixed", domain.InputPreferenceVisual, 0.7},
		{"verbal", domain.InputPreferenceVisual, 0.3},
		{"mixed", domain.InputPreferenceMixed, 1.0},
	}
	for _, c := range cases {
		if got := StyleScore(c.style, c.preference); !almostEqual(got, c.want) {
			t.Fatalf("StyleScore(%q, %q) = %v, want %v", c.style, c.preference, got, c.want)
		}
	}
}

func TestDifficultyScore(t *testing.T) {
	cases := []struct {
		difficulty domain.DifficultyLevel
		preferred  domain.DifficultyLevel
		want       float64
	}{
		{domain.DifficultyIntermediate, domain.DifficultyIntermediate, 1.0},
		{domain.DifficultyBeginner, domain.DifficultyIntermediate, 0.7},
		{domain.DifficultyIntermediate, domain.DifficultyAdvanced, 0.7},
		{domain.DifficultyAdvanced, domain.DifficultyIntermediate, 0.5},
		{domain.DifficultyBeginner, domain.DifficultyAdvanced, 0.5},
	}
	for _, c := range cases {
		if got := DifficultyScore(c.difficulty, c.preferred); !almostEqual(got, c.want) {
			t.Fatalf("DifficultyScore(%q, %q) = %v, want %v", c.difficulty, c.preferred, got, c.want)
		}
	}
}

func TestPreferredDifficulty(t *testing.T) {
	if got := PreferredDifficulty(domain.ComplexityLow); got != domain.DifficultyBeginner {
		t.Fatalf("low tolerance should prefer beginner, got %q", got)
	}
	if got := PreferredDifficulty(domain.ComplexityHigh); got != domain.DifficultyAdvanced {
		t.Fatalf("high tolerance should prefer advanced, got %q", got)
	}
	if got := PreferredDifficulty(domain.ComplexityMedium); got != domain.DifficultyIntermediate {
		t.Fatalf("medium tolerance should prefer intermediate, got %q", got)
	}
}

func TestSmoothEngagement(t *testing.T) {
	if got := SmoothEngagement(4.0, 5.0); !almostEqual(got, 4.1) {
		t.Fatalf("SmoothEngagement(4.0, 5.0) = %v, want 4.1", got)
	}
	if got := SmoothEngagement(0, 5.0); !almostEqual(got, 0.5) {
		t.Fatalf("SmoothEngagement(0, 5.0) = %v, want 0.5", got)
	}
}

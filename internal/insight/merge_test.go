package insight

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

func baseProfile() *domain.CognitiveProfile {
	return &domain.CognitiveProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),

		InstructionFlow:     domain.InstructionFlowLinear,
		InputPreference:     domain.InputPreferenceMixed,
		EngagementStyle:     domain.EngagementStyleMixed,
		ConceptType:         domain.ConceptTypeMixed,
		LearningAutonomy:    domain.LearningAutonomyGuided,
		MotivationType:      domain.MotivationMixed,
		FeedbackPreference:  domain.FeedbackImmediate,
		ComplexityTolerance: domain.ComplexityMedium,

		InstructionFlowConfidence:     0.5,
		InputPreferenceConfidence:     0.5,
		EngagementStyleConfidence:     0.5,
		ConceptTypeConfidence:         0.5,
		LearningAutonomyConfidence:    0.5,
		MotivationTypeConfidence:      0.5,
		FeedbackPreferenceConfidence:  0.5,
		ComplexityToleranceConfidence: 0.5,

		ProfileVersion: 1,
		LastUpdated:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func sameDimensionState(a, b *domain.CognitiveProfile) bool {
	return a.InputPreference == b.InputPreference &&
		a.ComplexityTolerance == b.ComplexityTolerance &&
		a.EngagementStyle == b.EngagementStyle &&
		a.LearningAutonomy == b.LearningAutonomy &&
		a.InputPreferenceConfidence == b.InputPreferenceConfidence &&
		a.ComplexityToleranceConfidence == b.ComplexityToleranceConfidence &&
		a.EngagementStyleConfidence == b.EngagementStyleConfidence &&
		a.LearningAutonomyConfidence == b.LearningAutonomyConfidence
}

func estimate(dimension, value string, confidence float64) domain.DimensionEstimate {
	return domain.DimensionEstimate{Dimension: dimension, Value: value, Confidence: confidence}
}

func TestMergeAcceptsAboveThreshold(t *testing.T) {
	current := baseProfile()
	updates := domain.DimensionUpdates{
		InputPreference:     estimate(domain.DimInputPreference, string(domain.InputPreferenceVisual), 0.84),
		ComplexityTolerance: estimate(domain.DimComplexityTolerance, string(domain.ComplexityMedium), 0.5),
		EngagementStyle:     estimate(domain.DimEngagementStyle, string(domain.EngagementStyleMixed), 0.5),
		LearningAutonomy:    estimate(domain.DimLearningAutonomy, string(domain.LearningAutonomyGuided), 0.5),
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	merged, changed := Merge(current, updates, now)
	if !changed {
		t.Fatalf("expected change")
	}
	if merged.InputPreference != domain.InputPreferenceVisual || merged.InputPreferenceConfidence != 0.84 {
		t.Fatalf("input preference not replaced: %+v", merged)
	}
	if merged.ProfileVersion != 2 || merged.TotalAdaptations != 1 {
		t.Fatalf("counters: version %d adaptations %d", merged.ProfileVersion, merged.TotalAdaptations)
	}
	if !merged.LastUpdated.Equal(now) {
		t.Fatalf("last updated: %v", merged.LastUpdated)
	}
}

func TestMergeRejectsWeakEstimate(t *testing.T) {
	current := baseProfile()
	current.InputPreferenceConfidence = 0.65

	updates := domain.DimensionUpdates{
		InputPreference:     estimate(domain.DimInputPreference, string(domain.InputPreferenceVerbal), 0.6),
		ComplexityTolerance: estimate(domain.DimComplexityTolerance, string(domain.ComplexityMedium), 0.5),
		EngagementStyle:     estimate(domain.DimEngagementStyle, string(domain.EngagementStyleMixed), 0.5),
		LearningAutonomy:    estimate(domain.DimLearningAutonomy, string(domain.LearningAutonomyGuided), 0.5),
	}

	merged, changed := Merge(current, updates, time.Now().UTC())
	if changed {
		t.Fatalf("expected no change")
	}
	if merged.InputPreference != current.InputPreference {
		t.Fatalf("weak estimate replaced value: %+v", merged)
	}
	if merged.ProfileVersion != current.ProfileVersion || merged.TotalAdaptations != current.TotalAdaptations {
		t.Fatalf("counters advanced without change")
	}
}

func TestMergeAcceptsWhenBeatingStoredConfidence(t *testing.T) {
	current := baseProfile()
	current.LearningAutonomyConfidence = 0.4

	// 0.6 is below the acceptance threshold but beats the stored 0.4.
	updates := domain.DimensionUpdates{
		InputPreference:     estimate(domain.DimInputPreference, string(domain.InputPreferenceMixed), 0.5),
		ComplexityTolerance: estimate(domain.DimComplexityTolerance, string(domain.ComplexityMedium), 0.5),
		EngagementStyle:     estimate(domain.DimEngagementStyle, string(domain.EngagementStyleMixed), 0.5),
		LearningAutonomy:    estimate(domain.DimLearningAutonomy, string(domain.LearningAutonomyMixed), 0.6),
	}

	merged, changed := Merge(current, updates, time.Now().UTC())
	if !changed {
		t.Fatalf("expected change")
	}
	if merged.LearningAutonomy != domain.LearningAutonomyMixed || merged.LearningAutonomyConfidence != 0.6 {
		t.Fatalf("autonomy not replaced: %+v", merged)
	}
}

func TestMergeIdempotent(t *testing.T) {
	current := baseProfile()
	updates := domain.DimensionUpdates{
		InputPreference:     estimate(domain.DimInputPreference, string(domain.InputPreferenceVisual), 0.84),
		ComplexityTolerance: estimate(domain.DimComplexityTolerance, string(domain.ComplexityHigh), 0.85),
		EngagementStyle:     estimate(domain.DimEngagementStyle, string(domain.EngagementStyleActive), 0.8),
		LearningAutonomy:    estimate(domain.DimLearningAutonomy, string(domain.LearningAutonomyIndependent), 0.8),
	}

	once, changed := Merge(current, updates, time.Now().UTC())
	if !changed {
		t.Fatalf("first merge should change")
	}
	if once.ProfileVersion != 2 || once.TotalAdaptations != 1 {
		t.Fatalf("first merge counters: %d/%d", once.ProfileVersion, once.TotalAdaptations)
	}

	twice, changedAgain := Merge(once, updates, time.Now().UTC())
	if changedAgain {
		t.Fatalf("second merge with identical updates should be a no-op")
	}
	if !sameDimensionState(once, twice) {
		t.Fatalf("second merge altered dimensions")
	}
	if twice.ProfileVersion != once.ProfileVersion || twice.TotalAdaptations != once.TotalAdaptations {
		t.Fatalf("second merge advanced counters")
	}
}

func TestMergeBumpsVersionOncePerMerge(t *testing.T) {
	current := baseProfile()
	// All four dimensions change; version still advances by exactly one.
	updates := domain.DimensionUpdates{
		InputPreference:     estimate(domain.DimInputPreference, string(domain.InputPreferenceVisual), 0.9),
		ComplexityTolerance: estimate(domain.DimComplexityTolerance, string(domain.ComplexityHigh), 0.85),
		EngagementStyle:     estimate(domain.DimEngagementStyle, string(domain.EngagementStyleActive), 0.8),
		LearningAutonomy:    estimate(domain.DimLearningAutonomy, string(domain.LearningAutonomyIndependent), 0.8),
	}

	merged, changed := Merge(current, updates, time.Now().UTC())
	if !changed {
		t.Fatalf("expected change")
	}
	if merged.ProfileVersion != current.ProfileVersion+1 {
		t.Fatalf("version advanced by %d", merged.ProfileVersion-current.ProfileVersion)
	}
	if merged.TotalAdaptations != current.TotalAdaptations+1 {
		t.Fatalf("adaptations advanced by %d", merged.TotalAdaptations-current.TotalAdaptations)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	current := baseProfile()
	snapshot := *current

	updates := domain.DimensionUpdates{
		InputPreference:     estimate(domain.DimInputPreference, string(domain.InputPreferenceVisual), 0.9),
		ComplexityTolerance: estimate(domain.DimComplexityTolerance, string(domain.ComplexityMedium), 0.5),
		EngagementStyle:     estimate(domain.DimEngagementStyle, string(domain.EngagementStyleMixed), 0.5),
		LearningAutonomy:    estimate(domain.DimLearningAutonomy, string(domain.LearningAutonomyGuided), 0.5),
	}
	if _, changed := Merge(current, updates, time.Now().UTC()); !changed {
		t.Fatalf("expected change")
	}
	if *current != snapshot {
		t.Fatalf("input profile mutated")
	}
}

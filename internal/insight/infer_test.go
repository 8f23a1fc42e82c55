package insight

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

func TestInferColdStartDefaults(t *testing.T) {
	agg := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	updates := Infer(agg)

	cases := []struct {
		got        domain.DimensionEstimate
		value      string
		confidence float64
	}{
		{updates.InputPreference, string(domain.InputPreferenceMixed), 0.6},
		{updates.ComplexityTolerance, string(domain.ComplexityMedium), 0.7},
		{updates.EngagementStyle, string(domain.EngagementStyleMixed), 0.65},
		{updates.LearningAutonomy, string(domain.LearningAutonomyMixed), 0.6},
	}
	for _, c := range cases {
		if c.got.Value != c.value || !almostEqual(c.got.Confidence, c.confidence) {
			t.Fatalf("%s: got (%s, %v) want (%s, %v)", c.got.Dimension, c.got.Value, c.got.Confidence, c.value, c.confidence)
		}
	}
}

func TestInferVisualPreference(t *testing.T) {
	agg := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	agg.ResourcePreferences.VideoToTextRatio = 8.0 / 3.0
	agg.ResourcePreferences.AvgVideoEngagement = 4.2

	updates := Infer(agg)
	if updates.InputPreference.Value != string(domain.InputPreferenceVisual) {
		t.Fatalf("value: %q", updates.InputPreference.Value)
	}
	if !almostEqual(updates.InputPreference.Confidence, 0.84) {
		t.Fatalf("confidence: %v", updates.InputPreference.Confidence)
	}
}

func TestInferVisualConfidenceCapped(t *testing.T) {
	agg := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	agg.ResourcePreferences.VideoToTextRatio = 5.0
	agg.ResourcePreferences.AvgVideoEngagement = 5.0

	updates := Infer(agg)
	if !almostEqual(updates.InputPreference.Confidence, 0.9) {
		t.Fatalf("confidence not capped: %v", updates.InputPreference.Confidence)
	}
}

func TestInferVerbalPreference(t *testing.T) {
	agg := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	agg.ResourcePreferences.VideoToTextRatio = 0.2
	agg.ResourcePreferences.AvgTextEngagement = 4.0

	updates := Infer(agg)
	if updates.InputPreference.Value != string(domain.InputPreferenceVerbal) {
		t.Fatalf("value: %q", updates.InputPreference.Value)
	}
	if !almostEqual(updates.InputPreference.Confidence, 0.8) {
		t.Fatalf("confidence: %v", updates.InputPreference.Confidence)
	}
}

func TestInferComplexityBranches(t *testing.T) {
	high := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	high.MasteryProgression.AvgLearningVelocity = 0.8
	high.LearningPatterns.AvgCompletionRate = 0.9
	if u := Infer(high); u.ComplexityTolerance.Value != string(domain.ComplexityHigh) || !almostEqual(u.ComplexityTolerance.Confidence, 0.85) {
		t.Fatalf("high branch: %+v", u.ComplexityTolerance)
	}

	frustrated := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	frustrated.LearningPatterns.FrustrationEvents = 6
	if u := Infer(frustrated); u.ComplexityTolerance.Value != string(domain.ComplexityLow) || !almostEqual(u.ComplexityTolerance.Confidence, 0.75) {
		t.Fatalf("frustrated branch: %+v", u.ComplexityTolerance)
	}

	stalled := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	stalled.LearningPatterns.AvgCompletionRate = 0.4
	if u := Infer(stalled); u.ComplexityTolerance.Value != string(domain.ComplexityLow) {
		t.Fatalf("stalled branch: %+v", u.ComplexityTolerance)
	}
}

func TestInferEngagementBranches(t *testing.T) {
	active := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	active.ResourcePreferences.InteractiveCount = 4
	active.ResourcePreferences.TotalResources = 10
	if u := Infer(active); u.EngagementStyle.Value != string(domain.EngagementStyleActive) || !almostEqual(u.EngagementStyle.Confidence, 0.8) {
		t.Fatalf("active branch: %+v", u.EngagementStyle)
	}

	passive := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	passive.ResourcePreferences.InteractiveCount = 0
	passive.ResourcePreferences.TotalResources = 10
	if u := Infer(passive); u.EngagementStyle.Value != string(domain.EngagementStylePassive) || !almostEqual(u.EngagementStyle.Confidence, 0.75) {
		t.Fatalf("passive branch: %+v", u.EngagementStyle)
	}

	mixed := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	mixed.ResourcePreferences.InteractiveCount = 2
	mixed.ResourcePreferences.TotalResources = 10
	if u := Infer(mixed); u.EngagementStyle.Value != string(domain.EngagementStyleMixed) {
		t.Fatalf("mixed branch: %+v", u.EngagementStyle)
	}
}

func TestInferAutonomyBranches(t *testing.T) {
	independent := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	independent.LearningPatterns.ConceptRevisitRate = 1.0
	independent.LearningPatterns.AvgFocusScore = 0.8
	if u := Infer(independent); u.LearningAutonomy.Value != string(domain.LearningAutonomyIndependent) || !almostEqual(u.LearningAutonomy.Confidence, 0.8) {
		t.Fatalf("independent branch: %+v", u.LearningAutonomy)
	}

	guided := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	guided.LearningPatterns.ConceptRevisitRate = 2.5
	if u := Infer(guided); u.LearningAutonomy.Value != string(domain.LearningAutonomyGuided) || !almostEqual(u.LearningAutonomy.Confidence, 0.75) {
		t.Fatalf("guided branch: %+v", u.LearningAutonomy)
	}
}

func TestInferConfidencesAlwaysValid(t *testing.T) {
	aggregates := []domain.BehavioralAggregate{
		DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC()),
	}
	spiked := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	spiked.ResourcePreferences.VideoToTextRatio = 100
	spiked.ResourcePreferences.AvgVideoEngagement = 5
	spiked.LearningPatterns.FrustrationEvents = 1000
	aggregates = append(aggregates, spiked)

	for _, agg := range aggregates {
		updates := Infer(agg)
		if err := updates.Validate(); err != nil {
			t.Fatalf("invalid updates: %v", err)
		}
		for _, est := range updates.Estimates() {
			if est.Confidence < 0 || est.Confidence > 1 {
				t.Fatalf("%s: confidence %v out of range", est.Dimension, est.Confidence)
			}
		}
	}
}

func TestInferCarriesEvidence(t *testing.T) {
	agg := DefaultAggregate(uuid.New(), DefaultWindowDays, time.Now().UTC())
	updates := Infer(agg)
	if updates.Evidence.UserID != agg.UserID || updates.Evidence.WindowDays != agg.WindowDays {
		t.Fatalf("evidence not carried: %+v", updates.Evidence)
	}
}

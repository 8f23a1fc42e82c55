package insight

import (
	"github.com/pathwise/pathwise-backend/internal/domain"
)

// Infer applies the per-dimension rule tables to one learner's aggregate.
// Only the four behaviorally observable dimensions are estimated; the
// remaining four are set at onboarding and untouched by this path.
func Infer(a domain.BehavioralAggregate) domain.DimensionUpdates {
	return domain.DimensionUpdates{
		InputPreference:     inputPreferenceRules.Evaluate(a),
		ComplexityTolerance: complexityToleranceRules.Evaluate(a),
		EngagementStyle:     engagementStyleRules.Evaluate(a),
		LearningAutonomy:    learningAutonomyRules.Evaluate(a),

		Evidence: a,
	}
}

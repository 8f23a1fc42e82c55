package insight

import (
	"time"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

// Merge blends fresh dimension estimates into a stored profile. An
// estimate replaces the stored value and confidence when its confidence
// beats the acceptance threshold or the stored confidence; there is no
// partial blending. The input profile is never mutated.
//
// When at least one dimension actually changes, ProfileVersion and
// TotalAdaptations each advance by exactly one and LastUpdated is set;
// otherwise the returned profile equals the input and changed is false.
// Re-running with identical inputs is therefore a no-op.
func Merge(current *domain.CognitiveProfile, updates domain.DimensionUpdates, now time.Time) (*domain.CognitiveProfile, bool) {
	merged := current.Clone()
	changed := false

	apply := func(est domain.DimensionEstimate, value *string, confidence *float64) {
		if est.Confidence <= AcceptConfidence && est.Confidence <= *confidence {
			return
		}
		if *value == est.Value && *confidence == est.Confidence {
			return
		}
		*value = est.Value
		*confidence = est.Confidence
		changed = true
	}

	inputPreference := string(merged.InputPreference)
	apply(updates.InputPreference, &inputPreference, &merged.InputPreferenceConfidence)
	merged.InputPreference = domain.InputPreference(inputPreference)

	complexity := string(merged.ComplexityTolerance)
	apply(updates.ComplexityTolerance, &complexity, &merged.ComplexityToleranceConfidence)
	merged.ComplexityTolerance = domain.ComplexityTolerance(complexity)

	engagement := string(merged.EngagementStyle)
	apply(updates.EngagementStyle, &engagement, &merged.EngagementStyleConfidence)
	merged.EngagementStyle = domain.EngagementStyle(engagement)

	autonomy := string(merged.LearningAutonomy)
	apply(updates.LearningAutonomy, &autonomy, &merged.LearningAutonomyConfidence)
	merged.LearningAutonomy = domain.LearningAutonomy(autonomy)

	if !changed {
		return merged, false
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	merged.ProfileVersion++
	merged.TotalAdaptations++
	merged.LastUpdated = now
	return merged, true
}

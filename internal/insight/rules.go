package insight

import (
	"github.com/pathwise/pathwise-backend/internal/domain"
)

// Tuning constants for the behavioral rule tables. These are fixed
// heuristics carried as-is; no calibration data exists for them.
const (
	DefaultWindowDays = 30

	// AcceptConfidence is the merge engine's acceptance threshold: an
	// estimate at or below it only replaces a stored value when it beats
	// the stored confidence.
	AcceptConfidence = 0.7

	visualRatioMin    = 2.0
	verbalRatioMax    = 0.5
	ratingFloor       = 3.5
	ratingScale       = 5.0
	confidenceCeiling = 0.9

	velocityHighMin   = 0.7
	completionHighMin = 0.8
	completionLowMax  = 0.5
	frustrationLowMin = 5

	activeShareMin  = 0.3
	passiveShareMax = 0.1

	revisitIndependentMax = 1.2
	focusIndependentMin   = 0.7
	revisitGuidedMin      = 2.0
	frustrationGuidedMin  = 3
)

// Rule is one branch of a dimension's decision tree. Rules are evaluated
// in order, first match wins; the last rule of every table must match
// unconditionally.
type Rule struct {
	When       func(a domain.BehavioralAggregate) bool
	Value      string
	Confidence func(a domain.BehavioralAggregate) float64
}

// DimensionRules is the ordered rule table for one cognitive dimension.
type DimensionRules struct {
	Dimension string
	Rules     []Rule
}

// Evaluate walks the table top to bottom and returns the first matching
// estimate.
func (dr DimensionRules) Evaluate(a domain.BehavioralAggregate) domain.DimensionEstimate {
	for _, r := range dr.Rules {
		if r.When == nil || r.When(a) {
			return domain.DimensionEstimate{
				Dimension:  dr.Dimension,
				Value:      r.Value,
				Confidence: r.Confidence(a),
			}
		}
	}
	// Unreachable with well-formed tables; the catch-all rule has no
	// predicate.
	return domain.DimensionEstimate{Dimension: dr.Dimension}
}

func fixed(c float64) func(domain.BehavioralAggregate) float64 {
	return func(domain.BehavioralAggregate) float64 { return c }
}

func cappedRating(rating func(a domain.BehavioralAggregate) float64) func(domain.BehavioralAggregate) float64 {
	return func(a domain.BehavioralAggregate) float64 {
		c := rating(a) / ratingScale
		if c > confidenceCeiling {
			return confidenceCeiling
		}
		return c
	}
}

var inputPreferenceRules = DimensionRules{
	Dimension: domain.DimInputPreference,
	Rules: []Rule{
		{
			When: func(a domain.BehavioralAggregate) bool {
				p := a.ResourcePreferences
				return p.VideoToTextRatio > visualRatioMin && p.AvgVideoEngagement > ratingFloor
			},
			Value: string(domain.InputPreferenceVisual),
			Confidence: cappedRating(func(a domain.BehavioralAggregate) float64 {
				return a.ResourcePreferences.AvgVideoEngagement
			}),
		},
		{
			When: func(a domain.BehavioralAggregate) bool {
				p := a.ResourcePreferences
				return p.VideoToTextRatio < verbalRatioMax && p.AvgTextEngagement > ratingFloor
			},
			Value: string(domain.InputPreferenceVerbal),
			Confidence: cappedRating(func(a domain.BehavioralAggregate) float64 {
				return a.ResourcePreferences.AvgTextEngagement
			}),
		},
		{
			Value:      string(domain.InputPreferenceMixed),
			Confidence: fixed(0.6),
		},
	},
}

var complexityToleranceRules = DimensionRules{
	Dimension: domain.DimComplexityTolerance,
	Rules: []Rule{
		{
			When: func(a domain.BehavioralAggregate) bool {
				return a.MasteryProgression.AvgLearningVelocity > velocityHighMin &&
					a.LearningPatterns.AvgCompletionRate > completionHighMin
			},
			Value:      string(domain.ComplexityHigh),
			Confidence: fixed(0.85),
		},
		{
			When: func(a domain.BehavioralAggregate) bool {
				return a.LearningPatterns.FrustrationEvents > frustrationLowMin ||
					a.LearningPatterns.AvgCompletionRate < completionLowMax
			},
			Value:      string(domain.ComplexityLow),
			Confidence: fixed(0.75),
		},
		{
			Value:      string(domain.ComplexityMedium),
			Confidence: fixed(0.7),
		},
	},
}

var engagementStyleRules = DimensionRules{
	Dimension: domain.DimEngagementStyle,
	Rules: []Rule{
		{
			When: func(a domain.BehavioralAggregate) bool {
				p := a.ResourcePreferences
				return float64(p.InteractiveCount) > float64(p.TotalResources)*activeShareMin
			},
			Value:      string(domain.EngagementStyleActive),
			Confidence: fixed(0.8),
		},
		{
			When: func(a domain.BehavioralAggregate) bool {
				p := a.ResourcePreferences
				return float64(p.InteractiveCount) < float64(p.TotalResources)*passiveShareMax
			},
			Value:      string(domain.EngagementStylePassive),
			Confidence: fixed(0.75),
		},
		{
			Value:      string(domain.EngagementStyleMixed),
			Confidence: fixed(0.65),
		},
	},
}

var learningAutonomyRules = DimensionRules{
	Dimension: domain.DimLearningAutonomy,
	Rules: []Rule{
		{
			When: func(a domain.BehavioralAggregate) bool {
				return a.LearningPatterns.ConceptRevisitRate < revisitIndependentMax &&
					a.LearningPatterns.AvgFocusScore > focusIndependentMin
			},
			Value:      string(domain.LearningAutonomyIndependent),
			Confidence: fixed(0.8),
		},
		{
			When: func(a domain.BehavioralAggregate) bool {
				return a.LearningPatterns.ConceptRevisitRate > revisitGuidedMin ||
					a.LearningPatterns.FrustrationEvents > frustrationGuidedMin
			},
			Value:      string(domain.LearningAutonomyGuided),
			Confidence: fixed(0.75),
		},
		{
			Value:      string(domain.LearningAutonomyMixed),
			Confidence: fixed(0.6),
		},
	},
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transient value types exchanged between the aggregation, inference and
// merge stages. None of these are persisted as-is; the snapshot row in
// behavioral_metrics.go is the only durable trace.

// ResourcePreferenceStats summarizes resource consumption inside the
// lookback window.
type ResourcePreferenceStats struct {
	VideoCount       int `json:"video_count"`
	TextCount        int `json:"text_count"`
	InteractiveCount int `json:"interactive_count"`
	TotalResources   int `json:"total_resources"`

	// VideoToTextRatio is video_count / (text_count + 1). The +1 both
	// avoids division by zero and dampens the ratio at small text counts.
	VideoToTextRatio float64 `json:"video_to_text_ratio"`

	AvgVideoCompletion       float64 `json:"avg_video_completion"`
	AvgTextCompletion        float64 `json:"avg_text_completion"`
	AvgInteractiveCompletion float64 `json:"avg_interactive_completion"`

	AvgVideoEngagement float64 `json:"avg_video_engagement"`
	AvgTextEngagement  float64 `json:"avg_text_engagement"`

	PreferredResourceType string `json:"preferred_resource_type"`
}

func (s ResourcePreferenceStats) Validate() error {
	if s.VideoCount < 0 || s.TextCount < 0 || s.InteractiveCount < 0 {
		return fmt.Errorf("resource preference stats: negative count")
	}
	if s.VideoToTextRatio < 0 {
		return fmt.Errorf("resource preference stats: negative ratio")
	}
	for _, v := range []float64{s.AvgVideoCompletion, s.AvgTextCompletion, s.AvgInteractiveCompletion} {
		if v < 0 || v > 1 {
			return fmt.Errorf("resource preference stats: completion %v out of [0,1]", v)
		}
	}
	for _, v := range []float64{s.AvgVideoEngagement, s.AvgTextEngagement} {
		if v < 0 || v > 5 {
			return fmt.Errorf("resource preference stats: engagement %v out of [0,5]", v)
		}
	}
	return nil
}

// PreferredHour is one entry of the top-3 session-start-hour histogram.
type PreferredHour struct {
	Hour     int `json:"hour"`
	Sessions int `json:"sessions"`
}

// LearningPatternStats summarizes session behavior inside the lookback
// window.
type LearningPatternStats struct {
	TotalSessions             int             `json:"total_sessions"`
	AvgSessionDurationMinutes float64         `json:"avg_session_duration_minutes"`
	TotalLearningTimeHours    float64         `json:"total_learning_time_hours"`
	PreferredLearningHours    []PreferredHour `json:"preferred_learning_hours"`

	AvgFocusScore     float64 `json:"avg_focus_score"`
	AvgCompletionRate float64 `json:"avg_completion_rate"`
	FrustrationEvents int     `json:"frustration_events"`

	UniqueConceptsExplored int     `json:"unique_concepts_explored"`
	ConceptRevisitRate     float64 `json:"concept_revisit_rate"`
	LearningConsistency    float64 `json:"learning_consistency"`
}

func (s LearningPatternStats) Validate() error {
	if s.TotalSessions < 0 || s.FrustrationEvents < 0 || s.UniqueConceptsExplored < 0 {
		return fmt.Errorf("learning pattern stats: negative count")
	}
	if s.AvgFocusScore < 0 || s.AvgFocusScore > 1 {
		return fmt.Errorf("learning pattern stats: focus score %v out of [0,1]", s.AvgFocusScore)
	}
	if s.AvgCompletionRate < 0 || s.AvgCompletionRate > 1 {
		return fmt.Errorf("learning pattern stats: completion rate %v out of [0,1]", s.AvgCompletionRate)
	}
	if s.LearningConsistency < 0 || s.LearningConsistency > 1 {
		return fmt.Errorf("learning pattern stats: consistency %v out of [0,1]", s.LearningConsistency)
	}
	if s.ConceptRevisitRate < 0 {
		return fmt.Errorf("learning pattern stats: negative revisit rate")
	}
	return nil
}

// MasteryProgressionStats summarizes mastery rows. Masteries are not
// time-filtered; all history contributes.
type MasteryProgressionStats struct {
	TotalConceptsTracked int                  `json:"total_concepts_tracked"`
	MasteryDistribution  map[MasteryLevel]int `json:"mastery_distribution"`

	AvgLearningVelocity float64 `json:"avg_learning_velocity"`
	AvgRetentionScore   float64 `json:"avg_retention_score"`

	AvgTimePerConceptHours float64 `json:"avg_time_per_concept_hours"`
	ConceptsMastered       int     `json:"concepts_mastered"`
	ConceptsInProgress     int     `json:"concepts_in_progress"`
}

func (s MasteryProgressionStats) Validate() error {
	if s.TotalConceptsTracked < 0 || s.ConceptsMastered < 0 || s.ConceptsInProgress < 0 {
		return fmt.Errorf("mastery progression stats: negative count")
	}
	if s.AvgRetentionScore < 0 || s.AvgRetentionScore > 1 {
		return fmt.Errorf("mastery progression stats: retention %v out of [0,1]", s.AvgRetentionScore)
	}
	if s.AvgTimePerConceptHours < 0 {
		return fmt.Errorf("mastery progression stats: negative time per concept")
	}
	return nil
}

// BehavioralAggregate is the aggregator's full output for one
// (learner, window) pair.
type BehavioralAggregate struct {
	UserID      uuid.UUID `json:"user_id"`
	WindowDays  int       `json:"window_days"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	ResourcePreferences ResourcePreferenceStats `json:"resource_preferences"`
	LearningPatterns    LearningPatternStats    `json:"learning_patterns"`
	MasteryProgression  MasteryProgressionStats `json:"mastery_progression"`
}

func (a BehavioralAggregate) Validate() error {
	if err := a.ResourcePreferences.Validate(); err != nil {
		return err
	}
	if err := a.LearningPatterns.Validate(); err != nil {
		return err
	}
	return a.MasteryProgression.Validate()
}

// DimensionEstimate is one inferred (dimension, value, confidence) triple.
type DimensionEstimate struct {
	Dimension  string  `json:"dimension"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

func (e DimensionEstimate) Validate() error {
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("dimension %s: confidence %v out of [0,1]", e.Dimension, e.Confidence)
	}
	if e.Value == "" {
		return fmt.Errorf("dimension %s: empty value", e.Dimension)
	}
	return nil
}

// DimensionUpdates is the inference engine's output: estimates for the
// four behaviorally observable dimensions plus the aggregate that produced
// them, carried as supporting evidence.
type DimensionUpdates struct {
	InputPreference     DimensionEstimate `json:"input_preference"`
	ComplexityTolerance DimensionEstimate `json:"complexity_tolerance"`
	EngagementStyle     DimensionEstimate `json:"engagement_style"`
	LearningAutonomy    DimensionEstimate `json:"learning_autonomy"`

	Evidence BehavioralAggregate `json:"evidence"`
}

func (u DimensionUpdates) Estimates() []DimensionEstimate {
	return []DimensionEstimate{
		u.InputPreference,
		u.ComplexityTolerance,
		u.EngagementStyle,
		u.LearningAutonomy,
	}
}

func (u DimensionUpdates) Validate() error {
	for _, e := range u.Estimates() {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

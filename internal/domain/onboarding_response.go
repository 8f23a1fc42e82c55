package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OnboardingResponse records one learner's completed questionnaire along
// with the summaries extracted from it and the derived initial profile.
// Exactly one row per learner; the derivation engine runs once.
type OnboardingResponse struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CompletedAt time.Time `gorm:"column:completed_at;not null;default:now()" json:"completed_at"`

	PreferredLearningMedium string `gorm:"column:preferred_learning_medium;type:text" json:"preferred_learning_medium"`
	LearningPace            string `gorm:"column:learning_pace;type:text" json:"learning_pace"`
	PriorExperience         string `gorm:"column:prior_experience;type:text" json:"prior_experience"`

	PrefersExamplesOrTheory     string `gorm:"column:prefers_examples_or_theory;type:text" json:"prefers_examples_or_theory"`
	PrefersStepByStepOrOverview string `gorm:"column:prefers_step_by_step_or_overview;type:text" json:"prefers_step_by_step_or_overview"`
	ComfortWithComplexity       string `gorm:"column:comfort_with_complexity;type:text" json:"comfort_with_complexity"`

	LearningGoal             string `gorm:"column:learning_goal;type:text" json:"learning_goal"`
	AvailableHoursPerWeek    int    `gorm:"column:available_hours_per_week;not null;default:0" json:"available_hours_per_week"`
	PreferredSessionDuration int    `gorm:"column:preferred_session_duration;not null;default:0" json:"preferred_session_duration"`

	RawResponses          datatypes.JSON `gorm:"type:jsonb;column:raw_responses" json:"raw_responses"`
	InitialProfileDerived datatypes.JSON `gorm:"type:jsonb;column:initial_profile_derived" json:"initial_profile_derived"`
}

func (OnboardingResponse) TableName() string { return "onboarding_response" }

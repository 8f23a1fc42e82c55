package domain

import (
	"time"

	"github.com/google/uuid"
)

// CognitiveProfile is the one row this core owns per learner. Created once
// at onboarding (version 1) and mutated only by the merge engine afterwards.
// ProfileVersion doubles as the optimistic-concurrency token for merges.
type CognitiveProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	InstructionFlow     InstructionFlow       `gorm:"column:instruction_flow;type:text;not null;default:'linear'" json:"instruction_flow"`
	InputPreference     InputPreference       `gorm:"column:input_preference;type:text;not null;default:'mixed'" json:"input_preference"`
	EngagementStyle     EngagementStyle       `gorm:"column:engagement_style;type:text;not null;default:'mixed'" json:"engagement_style"`
	ConceptType         ConceptTypePreference `gorm:"column:concept_type;type:text;not null;default:'mixed'" json:"concept_type"`
	LearningAutonomy    LearningAutonomy      `gorm:"column:learning_autonomy;type:text;not null;default:'guided'" json:"learning_autonomy"`
	MotivationType      MotivationType        `gorm:"column:motivation_type;type:text;not null;default:'mixed'" json:"motivation_type"`
	FeedbackPreference  FeedbackPreference    `gorm:"column:feedback_preference;type:text;not null;default:'immediate'" json:"feedback_preference"`
	ComplexityTolerance ComplexityTolerance   `gorm:"column:complexity_tolerance;type:text;not null;default:'medium'" json:"complexity_tolerance"`

	InstructionFlowConfidence     float64 `gorm:"column:instruction_flow_confidence;not null;default:0.5" json:"instruction_flow_confidence"`
	InputPreferenceConfidence     float64 `gorm:"column:input_preference_confidence;not null;default:0.5" json:"input_preference_confidence"`
	EngagementStyleConfidence     float64 `gorm:"column:engagement_style_confidence;not null;default:0.5" json:"engagement_style_confidence"`
	ConceptTypeConfidence         float64 `gorm:"column:concept_type_confidence;not null;default:0.5" json:"concept_type_confidence"`
	LearningAutonomyConfidence    float64 `gorm:"column:learning_autonomy_confidence;not null;default:0.5" json:"learning_autonomy_confidence"`
	MotivationTypeConfidence      float64 `gorm:"column:motivation_type_confidence;not null;default:0.5" json:"motivation_type_confidence"`
	FeedbackPreferenceConfidence  float64 `gorm:"column:feedback_preference_confidence;not null;default:0.5" json:"feedback_preference_confidence"`
	ComplexityToleranceConfidence float64 `gorm:"column:complexity_tolerance_confidence;not null;default:0.5" json:"complexity_tolerance_confidence"`

	ProfileVersion   int       `gorm:"column:profile_version;not null;default:1" json:"profile_version"`
	TotalAdaptations int       `gorm:"column:total_adaptations;not null;default:0" json:"total_adaptations"`
	LastUpdated      time.Time `gorm:"column:last_updated;not null;default:now()" json:"last_updated"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CognitiveProfile) TableName() string { return "cognitive_profile" }

// Clone returns a deep copy; the merge engine never mutates its input row.
func (p *CognitiveProfile) Clone() *CognitiveProfile {
	cp := *p
	cp.User = nil
	return &cp
}

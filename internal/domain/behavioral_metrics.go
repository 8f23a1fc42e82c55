package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BehavioralMetricsSnapshot is the audit row persisted after each profile
// refresh. It summarizes the transient aggregate that drove the refresh;
// the aggregate itself is never stored.
type BehavioralMetricsSnapshot struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	PeriodStart time.Time `gorm:"column:period_start;not null;index" json:"period_start"`
	PeriodEnd   time.Time `gorm:"column:period_end;not null" json:"period_end"`

	TotalSessions          int            `gorm:"column:total_sessions;not null;default:0" json:"total_sessions"`
	AvgSessionDurationMins float64        `gorm:"column:avg_session_duration_mins;not null;default:0" json:"avg_session_duration_mins"`
	TotalLearningTimeHours float64        `gorm:"column:total_learning_time_hours;not null;default:0" json:"total_learning_time_hours"`
	VideoToTextRatio       float64        `gorm:"column:video_to_text_ratio;not null;default:1" json:"video_to_text_ratio"`
	PreferredResourceType  string         `gorm:"column:preferred_resource_type;type:text" json:"preferred_resource_type"`
	AvgFocusScore          float64        `gorm:"column:avg_focus_score;not null;default:0.5" json:"avg_focus_score"`
	AvgCompletionRate      float64        `gorm:"column:avg_completion_rate;not null;default:0.5" json:"avg_completion_rate"`
	FrustrationEvents      int            `gorm:"column:frustration_events;not null;default:0" json:"frustration_events"`
	ConceptsExplored       int            `gorm:"column:concepts_explored;not null;default:0" json:"concepts_explored"`
	ConceptsMastered       int            `gorm:"column:concepts_mastered;not null;default:0" json:"concepts_mastered"`
	LearningConsistency    float64        `gorm:"column:learning_consistency;not null;default:0.5" json:"learning_consistency"`
	PreferredLearningHours datatypes.JSON `gorm:"type:jsonb;column:preferred_learning_hours" json:"preferred_learning_hours"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (BehavioralMetricsSnapshot) TableName() string { return "behavioral_metrics_snapshot" }

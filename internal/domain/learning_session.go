package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningSession is one continuous learning session. Rows are written by
// the session-tracking collaborator and are read-only to this core once
// EndedAt is set.
type LearningSession struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	StartedAt       time.Time  `gorm:"column:started_at;not null;default:now();index" json:"started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	DurationSeconds int        `gorm:"column:duration_seconds;not null;default:0" json:"duration_seconds"`

	SessionType string `gorm:"column:session_type;type:text" json:"session_type"`
	DeviceType  string `gorm:"column:device_type;type:text" json:"device_type"`

	InteractionsCount int                         `gorm:"column:interactions_count;not null;default:0" json:"interactions_count"`
	ResourcesViewed   int                         `gorm:"column:resources_viewed;not null;default:0" json:"resources_viewed"`
	ConceptsCovered   datatypes.JSONSlice[string] `gorm:"type:jsonb;column:concepts_covered" json:"concepts_covered"`

	FocusScore     *float64 `gorm:"column:focus_score" json:"focus_score,omitempty"`
	CompletionRate *float64 `gorm:"column:completion_rate" json:"completion_rate,omitempty"`

	FrustrationIndicators int `gorm:"column:frustration_indicators;not null;default:0" json:"frustration_indicators"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (LearningSession) TableName() string { return "learning_session" }

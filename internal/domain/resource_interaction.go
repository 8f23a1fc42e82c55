package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResourceInteraction is one learner's engagement with one resource.
// Immutable once created; the close operation only appends EndedAt and the
// kind-specific metrics.
type ResourceInteraction struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SessionID *uuid.UUID `gorm:"type:uuid;column:session_id;index" json:"session_id,omitempty"`

	ResourceID   string       `gorm:"column:resource_id;type:text;not null" json:"resource_id"`
	ResourceType ResourceType `gorm:"column:resource_type;type:text;not null;index" json:"resource_type"`
	ConceptName  string       `gorm:"column:concept_name;type:text;index" json:"concept_name"`

	StartedAt       time.Time  `gorm:"column:started_at;not null;default:now();index" json:"started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	DurationSeconds int        `gorm:"column:duration_seconds;not null;default:0" json:"duration_seconds"`

	// CompletionPercentage is a fraction in [0,1]. EngagementScore is an
	// integer rating in [1,5]; nil means the learner never rated.
	CompletionPercentage float64 `gorm:"column:completion_percentage;not null;default:0" json:"completion_percentage"`
	InteractionCount     int     `gorm:"column:interaction_count;not null;default:0" json:"interaction_count"`
	EngagementScore      *int    `gorm:"column:engagement_score" json:"engagement_score,omitempty"`

	VideoWatchPercentage *float64 `gorm:"column:video_watch_percentage" json:"video_watch_percentage,omitempty"`
	VideoPausesCount     *int     `gorm:"column:video_pauses_count" json:"video_pauses_count,omitempty"`
	VideoRewindsCount    *int     `gorm:"column:video_rewinds_count" json:"video_rewinds_count,omitempty"`
	VideoSpeed           float64  `gorm:"column:video_speed;not null;default:1" json:"video_speed"`

	TextScrollDepth    *float64       `gorm:"column:text_scroll_depth" json:"text_scroll_depth,omitempty"`
	TextTimePerSection datatypes.JSON `gorm:"type:jsonb;column:text_time_per_section" json:"text_time_per_section,omitempty"`

	MarkedAsHelpful   *bool  `gorm:"column:marked_as_helpful" json:"marked_as_helpful,omitempty"`
	MarkedAsConfusing *bool  `gorm:"column:marked_as_confusing" json:"marked_as_confusing,omitempty"`
	UserNotes         string `gorm:"column:user_notes;type:text" json:"user_notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ResourceInteraction) TableName() string { return "resource_interaction" }

// IsTextLike reports whether the interaction counts toward the text bucket
// of the aggregator (articles and code examples).
func (ri *ResourceInteraction) IsTextLike() bool {
	return ri.ResourceType == ResourceArticle || ri.ResourceType == ResourceCodeExample
}

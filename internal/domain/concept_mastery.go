package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConceptMastery tracks one learner's standing on one concept. Updated
// incrementally by the mastery-tracking collaborator; this core only reads
// it. LearningVelocity and RetentionScore are externally maintained.
type ConceptMastery struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_mastery_user_concept,unique" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ConceptName string    `gorm:"column:concept_name;type:text;not null;index:idx_mastery_user_concept,unique" json:"concept_name"`

	CurrentLevel    MasteryLevel `gorm:"column:current_level;type:text;not null;default:'not_started';index" json:"current_level"`
	ConfidenceScore float64      `gorm:"column:confidence_score;not null;default:0" json:"confidence_score"`

	TotalTimeSpentSeconds int        `gorm:"column:total_time_spent_seconds;not null;default:0" json:"total_time_spent_seconds"`
	FirstEncounteredAt    time.Time  `gorm:"column:first_encountered_at;not null;default:now()" json:"first_encountered_at"`
	LastPracticedAt       *time.Time `gorm:"column:last_practiced_at" json:"last_practiced_at,omitempty"`

	VideosWatched      int `gorm:"column:videos_watched;not null;default:0" json:"videos_watched"`
	ArticlesRead       int `gorm:"column:articles_read;not null;default:0" json:"articles_read"`
	ExercisesCompleted int `gorm:"column:exercises_completed;not null;default:0" json:"exercises_completed"`

	QuizAttempts               int      `gorm:"column:quiz_attempts;not null;default:0" json:"quiz_attempts"`
	QuizSuccessRate            *float64 `gorm:"column:quiz_success_rate" json:"quiz_success_rate,omitempty"`
	AverageResponseTimeSeconds *float64 `gorm:"column:average_response_time_seconds" json:"average_response_time_seconds,omitempty"`

	LearningVelocity *float64 `gorm:"column:learning_velocity" json:"learning_velocity,omitempty"`
	RetentionScore   *float64 `gorm:"column:retention_score" json:"retention_score,omitempty"`

	LastUpdated time.Time `gorm:"column:last_updated;not null;default:now()" json:"last_updated"`
}

func (ConceptMastery) TableName() string { return "concept_mastery" }

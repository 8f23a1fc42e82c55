package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/domain"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

// InteractionClose carries the terminal fields recorded when a learner
// finishes (or abandons) a resource. Nil pointers are left untouched.
type InteractionClose struct {
	EndedAt              time.Time
	DurationSeconds      int
	CompletionPercentage float64
	InteractionCount     int
	EngagementScore      *int
	VideoWatchPercentage *float64
	VideoPausesCount     *int
	VideoRewindsCount    *int
	VideoSpeed           *float64
	TextScrollDepth      *float64
	MarkedAsHelpful      *bool
	MarkedAsConfusing    *bool
	UserNotes            string
}

type ResourceInteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.ResourceInteraction) ([]*domain.ResourceInteraction, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ResourceInteraction, error)
	ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*domain.ResourceInteraction, error)
	Close(ctx context.Context, tx *gorm.DB, id uuid.UUID, close InteractionClose) (*domain.ResourceInteraction, error)
}

type resourceInteractionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceInteractionRepo(db *gorm.DB, baseLog *logger.Logger) ResourceInteractionRepo {
	return &resourceInteractionRepo{db: db, log: baseLog.With("repo", "ResourceInteractionRepo")}
}

func (r *resourceInteractionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.ResourceInteraction) ([]*domain.ResourceInteraction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.ResourceInteraction{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *resourceInteractionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ResourceInteraction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.ResourceInteraction
	err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *resourceInteractionRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*domain.ResourceInteraction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ResourceInteraction
	if userID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(ctx).
		Where("user_id = ? AND started_at >= ?", userID, since).
		Order("started_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close records the terminal metrics for an interaction. It refuses to close
// the same interaction twice.
func (r *resourceInteractionRepo) Close(ctx context.Context, tx *gorm.DB, id uuid.UUID, close InteractionClose) (*domain.ResourceInteraction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row, err := r.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, pkgerrors.ErrNotFound
	}
	if row.EndedAt != nil {
		return nil, pkgerrors.ErrInvalidArgument
	}

	updates := map[string]any{
		"ended_at":              close.EndedAt,
		"duration_seconds":      close.DurationSeconds,
		"completion_percentage": close.CompletionPercentage,
		"interaction_count":     close.InteractionCount,
		"user_notes":            close.UserNotes,
	}
	if close.EngagementScore != nil {
		updates["engagement_score"] = *close.EngagementScore
	}
	if close.VideoWatchPercentage != nil {
		updates["video_watch_percentage"] = *close.VideoWatchPercentage
	}
	if close.VideoPausesCount != nil {
		updates["video_pauses_count"] = *close.VideoPausesCount
	}
	if close.VideoRewindsCount != nil {
		updates["video_rewinds_count"] = *close.VideoRewindsCount
	}
	if close.VideoSpeed != nil {
		updates["video_speed"] = *close.VideoSpeed
	}
	if close.TextScrollDepth != nil {
		updates["text_scroll_depth"] = *close.TextScrollDepth
	}
	if close.MarkedAsHelpful != nil {
		updates["marked_as_helpful"] = *close.MarkedAsHelpful
	}
	if close.MarkedAsConfusing != nil {
		updates["marked_as_confusing"] = *close.MarkedAsConfusing
	}

	if err := t.WithContext(ctx).Model(&domain.ResourceInteraction{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, t, id)
}

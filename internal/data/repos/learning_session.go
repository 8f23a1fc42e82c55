package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type LearningSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.LearningSession) ([]*domain.LearningSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.LearningSession, error)
	ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*domain.LearningSession, error)
}

type learningSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningSessionRepo(db *gorm.DB, baseLog *logger.Logger) LearningSessionRepo {
	return &learningSessionRepo{db: db, log: baseLog.With("repo", "LearningSessionRepo")}
}

func (r *learningSessionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.LearningSession) ([]*domain.LearningSession, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.LearningSession{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.LearningSession, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.LearningSession
	err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *learningSessionRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*domain.LearningSession, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.LearningSession
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

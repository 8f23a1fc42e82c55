package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type BehavioralMetricsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.BehavioralMetricsSnapshot) (*domain.BehavioralMetricsSnapshot, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.BehavioralMetricsSnapshot, error)
}

type behavioralMetricsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBehavioralMetricsRepo(db *gorm.DB, baseLog *logger.Logger) BehavioralMetricsRepo {
	return &behavioralMetricsRepo{db: db, log: baseLog.With("repo", "BehavioralMetricsRepo")}
}

func (r *behavioralMetricsRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.BehavioralMetricsSnapshot) (*domain.BehavioralMetricsSnapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *behavioralMetricsRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.BehavioralMetricsSnapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.BehavioralMetricsSnapshot
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_end DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

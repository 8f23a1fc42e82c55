package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type OnboardingResponseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.OnboardingResponse) (*domain.OnboardingResponse, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.OnboardingResponse, error)
}

type onboardingResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOnboardingResponseRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingResponseRepo {
	return &onboardingResponseRepo{db: db, log: baseLog.With("repo", "OnboardingResponseRepo")}
}

func (r *onboardingResponseRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.OnboardingResponse) (*domain.OnboardingResponse, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *onboardingResponseRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.OnboardingResponse, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row domain.OnboardingResponse
	err := t.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

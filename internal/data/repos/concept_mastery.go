package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type ConceptMasteryRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.ConceptMastery) ([]*domain.ConceptMastery, error)
	GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) (*domain.ConceptMastery, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.ConceptMastery, error)
}

type conceptMasteryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConceptMasteryRepo(db *gorm.DB, baseLog *logger.Logger) ConceptMasteryRepo {
	return &conceptMasteryRepo{db: db, log: baseLog.With("repo", "ConceptMasteryRepo")}
}

func (r *conceptMasteryRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.ConceptMastery) ([]*domain.ConceptMastery, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.ConceptMastery{}, nil
	}
	err := t.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "concept_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_level",
			"confidence_score",
			"total_time_spent_seconds",
			"last_practiced_at",
			"videos_watched",
			"articles_read",
			"exercises_completed",
			"quiz_attempts",
			"quiz_success_rate",
			"average_response_time_seconds",
			"learning_velocity",
			"retention_score",
			"last_updated",
		}),
	}).Create(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *conceptMasteryRepo) GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) (*domain.ConceptMastery, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || conceptName == "" {
		return nil, nil
	}
	var row domain.ConceptMastery
	err := t.WithContext(ctx).
		Where("user_id = ? AND concept_name = ?", userID, conceptName).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *conceptMasteryRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.ConceptMastery, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ConceptMastery
	if userID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("concept_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

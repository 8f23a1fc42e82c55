package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/domain"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type CognitiveProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.CognitiveProfile) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.CognitiveProfile, error)

	// UpdateVersioned persists a merged profile guarded by an optimistic
	// check on the version the merge was computed from. A concurrent merge
	// that advanced the row first surfaces as ErrVersionConflict.
	UpdateVersioned(ctx context.Context, tx *gorm.DB, row *domain.CognitiveProfile, expectedVersion int) error
}

type cognitiveProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCognitiveProfileRepo(db *gorm.DB, baseLog *logger.Logger) CognitiveProfileRepo {
	return &cognitiveProfileRepo{db: db, log: baseLog.With("repo", "CognitiveProfileRepo")}
}

func (r *cognitiveProfileRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.CognitiveProfile) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *cognitiveProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.CognitiveProfile, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row domain.CognitiveProfile
	err := t.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *cognitiveProfileRepo) UpdateVersioned(ctx context.Context, tx *gorm.DB, row *domain.CognitiveProfile, expectedVersion int) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.ID == uuid.Nil {
		return nil
	}

	res := t.WithContext(ctx).
		Model(&domain.CognitiveProfile{}).
		Where("id = ? AND profile_version = ?", row.ID, expectedVersion).
		Updates(map[string]interface{}{
			"instruction_flow":     row.InstructionFlow,
			"input_preference":     row.InputPreference,
			"engagement_style":     row.EngagementStyle,
			"concept_type":         row.ConceptType,
			"learning_autonomy":    row.LearningAutonomy,
			"motivation_type":      row.MotivationType,
			"feedback_preference":  row.FeedbackPreference,
			"complexity_tolerance": row.ComplexityTolerance,

			"instruction_flow_confidence":     row.InstructionFlowConfidence,
			"input_preference_confidence":     row.InputPreferenceConfidence,
			"engagement_style_confidence":     row.EngagementStyleConfidence,
			"concept_type_confidence":         row.ConceptTypeConfidence,
			"learning_autonomy_confidence":    row.LearningAutonomyConfidence,
			"motivation_type_confidence":      row.MotivationTypeConfidence,
			"feedback_preference_confidence":  row.FeedbackPreferenceConfidence,
			"complexity_tolerance_confidence": row.ComplexityToleranceConfidence,

			"profile_version":   row.ProfileVersion,
			"total_adaptations": row.TotalAdaptations,
			"last_updated":      row.LastUpdated,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Warn("Profile version conflict", "profile_id", row.ID, "expected_version", expectedVersion)
		return pkgerrors.ErrVersionConflict
	}
	return nil
}

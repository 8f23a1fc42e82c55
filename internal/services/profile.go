package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	rediscache "github.com/pathwise/pathwise-backend/internal/clients/redis"
	"github.com/pathwise/pathwise-backend/internal/data/repos"
	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/insight"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

// refreshRetries bounds the optimistic-merge retry loop. One retry is
// enough: a second consecutive conflict means another writer is actively
// merging the same learner and ours is redundant.
const refreshRetries = 2

// RefreshResult is one profile refresh outcome: the row after the merge,
// the estimates that drove it, and whether anything changed.
type RefreshResult struct {
	Profile *domain.CognitiveProfile `json:"profile"`
	Updates domain.DimensionUpdates  `json:"updates"`
	Changed bool                     `json:"changed"`
}

type ProfileService interface {
	Questionnaire() []domain.QuestionnaireQuestion
	SubmitOnboarding(ctx context.Context, userID uuid.UUID, submission domain.OnboardingSubmission) (*domain.CognitiveProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.CognitiveProfile, error)
	Refresh(ctx context.Context, userID uuid.UUID, windowDays int) (*RefreshResult, error)
}

type profileService struct {
	db    *gorm.DB
	log   *logger.Logger
	cache rediscache.AggregateCache

	behavior   BehaviorService
	users      repos.UserRepo
	profiles   repos.CognitiveProfileRepo
	onboarding repos.OnboardingResponseRepo
	snapshots  repos.BehavioralMetricsRepo
}

func NewProfileService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache rediscache.AggregateCache,
	behavior BehaviorService,
	users repos.UserRepo,
	profiles repos.CognitiveProfileRepo,
	onboarding repos.OnboardingResponseRepo,
	snapshots repos.BehavioralMetricsRepo,
) ProfileService {
	return &profileService{
		db:         db,
		log:        baseLog.With("service", "ProfileService"),
		cache:      cache,
		behavior:   behavior,
		users:      users,
		profiles:   profiles,
		onboarding: onboarding,
		snapshots:  snapshots,
	}
}

func (s *profileService) Questionnaire() []domain.QuestionnaireQuestion {
	return insight.Questionnaire()
}

// SubmitOnboarding derives the version-1 profile from a questionnaire
// submission. Runs at most once per learner; a second submission returns
// the existing profile unchanged.
func (s *profileService) SubmitOnboarding(ctx context.Context, userID uuid.UUID, submission domain.OnboardingSubmission) (*domain.CognitiveProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgerrors.ErrNotFound
	}

	existing, err := s.onboarding.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Info("onboarding already completed", "user_id", userID)
		return s.profiles.GetByUserID(ctx, nil, userID)
	}

	now := time.Now().UTC()
	profile := insight.DeriveProfile(userID, submission, now)

	answers := submission.AnswerMap()
	rawResponses, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	derivedJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	response := &domain.OnboardingResponse{
		ID:          uuid.New(),
		UserID:      userID,
		CompletedAt: now,

		PreferredLearningMedium: insight.ExtractLearningMedium(answers),
		LearningPace:            insight.ExtractLearningPace(answers),
		PriorExperience:         insight.ExtractExperience(answers),

		PrefersExamplesOrTheory:     insight.ExtractConceptPreference(answers),
		PrefersStepByStepOrOverview: insight.ExtractFlowPreference(answers),
		ComfortWithComplexity:       insight.ExtractComplexityComfort(answers),

		LearningGoal:             submission.LearningGoal,
		AvailableHoursPerWeek:    submission.AvailableHoursPerWeek,
		PreferredSessionDuration: submission.PreferredSessionDuration,

		RawResponses:          datatypes.JSON(rawResponses),
		InitialProfileDerived: datatypes.JSON(derivedJSON),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profiles.Create(ctx, tx, profile); err != nil {
			return err
		}
		if _, err := s.onboarding.Create(ctx, tx, response); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("onboarding profile derived",
		"user_id", userID,
		"input_preference", string(profile.InputPreference),
		"complexity_tolerance", string(profile.ComplexityTolerance))
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.CognitiveProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	profile, err := s.profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return profile, nil
}

// Refresh recomputes the behavioral aggregate, infers dimension estimates
// and merges accepted ones into the stored profile. A merge that loses the
// optimistic version race is recomputed against the fresh row.
func (s *profileService) Refresh(ctx context.Context, userID uuid.UUID, windowDays int) (*RefreshResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	if windowDays <= 0 {
		windowDays = insight.DefaultWindowDays
	}

	agg, err := s.behavior.ComputeAggregate(ctx, userID, windowDays)
	if err != nil {
		return nil, err
	}
	updates := insight.Infer(agg)

	var result *RefreshResult
	for attempt := 0; attempt < refreshRetries; attempt++ {
		current, err := s.profiles.GetByUserID(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, pkgerrors.ErrNotFound
		}

		merged, changed := insight.Merge(current, updates, time.Now().UTC())
		if !changed {
			result = &RefreshResult{Profile: merged, Updates: updates, Changed: false}
			break
		}

		err = s.profiles.UpdateVersioned(ctx, nil, merged, current.ProfileVersion)
		if errors.Is(err, pkgerrors.ErrVersionConflict) {
			s.log.Warn("profile merge lost version race; retrying", "user_id", userID)
			continue
		}
		if err != nil {
			return nil, err
		}
		result = &RefreshResult{Profile: merged, Updates: updates, Changed: true}
		break
	}
	if result == nil {
		return nil, pkgerrors.ErrVersionConflict
	}

	if err := s.recordSnapshot(ctx, agg); err != nil {
		s.log.Warn("behavioral snapshot write failed", "user_id", userID, "error", err)
	}
	if s.cache != nil && result.Changed {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.log.Warn("aggregate cache invalidation failed", "user_id", userID, "error", err)
		}
	}

	s.log.Info("profile refresh complete",
		"user_id", userID,
		"window_days", windowDays,
		"changed", result.Changed,
		"profile_version", result.Profile.ProfileVersion)
	return result, nil
}

func (s *profileService) recordSnapshot(ctx context.Context, agg domain.BehavioralAggregate) error {
	hours, err := json.Marshal(agg.LearningPatterns.PreferredLearningHours)
	if err != nil {
		return err
	}
	snap := &domain.BehavioralMetricsSnapshot{
		ID:     uuid.New(),
		UserID: agg.UserID,

		PeriodStart: agg.PeriodStart,
		PeriodEnd:   agg.PeriodEnd,

		TotalSessions:          agg.LearningPatterns.TotalSessions,
		AvgSessionDurationMins: agg.LearningPatterns.AvgSessionDurationMinutes,
		TotalLearningTimeHours: agg.LearningPatterns.TotalLearningTimeHours,
		VideoToTextRatio:       agg.ResourcePreferences.VideoToTextRatio,
		PreferredResourceType:  agg.ResourcePreferences.PreferredResourceType,
		AvgFocusScore:          agg.LearningPatterns.AvgFocusScore,
		AvgCompletionRate:      agg.LearningPatterns.AvgCompletionRate,
		FrustrationEvents:      agg.LearningPatterns.FrustrationEvents,
		ConceptsExplored:       agg.LearningPatterns.UniqueConceptsExplored,
		ConceptsMastered:       agg.MasteryProgression.ConceptsMastered,
		LearningConsistency:    agg.LearningPatterns.LearningConsistency,
		PreferredLearningHours: datatypes.JSON(hours),
	}
	_, err = s.snapshots.Create(ctx, nil, snap)
	return err
}

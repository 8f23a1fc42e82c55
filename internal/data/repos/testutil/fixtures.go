package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		FullName: "Test Learner",
		Timezone: "UTC",
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *domain.CognitiveProfile {
	tb.Helper()
	p := &domain.CognitiveProfile{
		ID:             uuid.New(),
		UserID:         userID,
		ProfileVersion: 1,
		LastUpdated:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, startedAt time.Time, durationSeconds int) *domain.LearningSession {
	tb.Helper()
	s := &domain.LearningSession{
		ID:              uuid.New(),
		UserID:          userID,
		StartedAt:       startedAt,
		DurationSeconds: durationSeconds,
		SessionType:     "study",
		ConceptsCovered: datatypes.NewJSONSlice([]string{}),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedInteraction(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, resourceType domain.ResourceType, startedAt time.Time) *domain.ResourceInteraction {
	tb.Helper()
	ri := &domain.ResourceInteraction{
		ID:           uuid.New(),
		UserID:       userID,
		ResourceID:   "res-" + uuid.NewString()[:8],
		ResourceType: resourceType,
		StartedAt:    startedAt,
		VideoSpeed:   1,
	}
	if err := tx.WithContext(ctx).Create(ri).Error; err != nil {
		tb.Fatalf("seed interaction: %v", err)
	}
	return ri
}

func SeedMastery(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, concept string, level domain.MasteryLevel) *domain.ConceptMastery {
	tb.Helper()
	m := &domain.ConceptMastery{
		ID:                 uuid.New(),
		UserID:             userID,
		ConceptName:        concept,
		CurrentLevel:       level,
		FirstEncounteredAt: time.Now().UTC().Add(-24 * time.Hour),
		LastUpdated:        time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mastery: %v", err)
	}
	return m
}

func PtrFloat(v float64) *float64 { return &v }

func PtrInt(v int) *int { return &v }

func PtrBool(v bool) *bool { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/data/repos/testutil"
	"github.com/pathwise/pathwise-backend/internal/domain"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"
)

func TestCognitiveProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCognitiveProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "profilerepo@example.com")

	row := &domain.CognitiveProfile{
		UserID:              u.ID,
		InputPreference:     domain.InputPreferenceMixed,
		InstructionFlow:     domain.InstructionFlowLinear,
		EngagementStyle:     domain.EngagementStyleMixed,
		ConceptType:         domain.ConceptTypeMixed,
		LearningAutonomy:    domain.LearningAutonomyGuided,
		MotivationType:      domain.MotivationMixed,
		FeedbackPreference:  domain.FeedbackImmediate,
		ComplexityTolerance: domain.ComplexityMedium,
		ProfileVersion:      1,
		LastUpdated:         time.Now().UTC(),
	}
	if err := repo.Create(ctx, tx, row); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if row.ID == uuid.Nil {
		t.Fatalf("Create: expected an assigned ID")
	}

	got, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got == nil || got.ID != row.ID {
		t.Fatalf("GetByUserID: unexpected result: %+v", got)
	}
	if got.ProfileVersion != 1 {
		t.Fatalf("GetByUserID: expected version 1, got %d", got.ProfileVersion)
	}

	missing, err := repo.GetByUserID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByUserID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByUserID (missing): expected nil, got %+v", missing)
	}

	merged := got.Clone()
	merged.InputPreference = domain.InputPreferenceVisual
	merged.InputPreferenceConfidence = 0.84
	merged.ProfileVersion = 2
	merged.TotalAdaptations = 1
	merged.LastUpdated = time.Now().UTC()
	if err := repo.UpdateVersioned(ctx, tx, merged, 1); err != nil {
		t.Fatalf("UpdateVersioned: %v", err)
	}

	got, err = repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID (after update): %v", err)
	}
	if got.InputPreference != domain.InputPreferenceVisual || got.ProfileVersion != 2 {
		t.Fatalf("GetByUserID (after update): unexpected result: %+v", got)
	}

	// A second writer still holding version 1 must lose.
	stale := got.Clone()
	stale.ProfileVersion = 3
	err = repo.UpdateVersioned(ctx, tx, stale, 1)
	if !errors.Is(err, pkgerrors.ErrVersionConflict) {
		t.Fatalf("UpdateVersioned (stale): expected ErrVersionConflict, got %v", err)
	}
}

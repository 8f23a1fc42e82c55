package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/data/repos/testutil"
	"github.com/pathwise/pathwise-backend/internal/domain"
)

func TestConceptMasteryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewConceptMasteryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "masteryrepo@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := repo.Upsert(ctx, tx, []*domain.ConceptMastery{
		{
			ID:                 uuid.New(),
			UserID:             u.ID,
			ConceptName:        "recursion",
			CurrentLevel:       domain.MasteryLearning,
			FirstEncounteredAt: now.Add(-48 * time.Hour),
			LastUpdated:        now,
		},
		{
			ID:                 uuid.New(),
			UserID:             u.ID,
			ConceptName:        "binary search",
			CurrentLevel:       domain.MasteryPracticing,
			FirstEncounteredAt: now.Add(-24 * time.Hour),
			LastUpdated:        now,
		},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("Upsert: expected 2 rows, got %d", len(first))
	}

	// Same (user, concept) pair again: must update in place, not insert.
	_, err = repo.Upsert(ctx, tx, []*domain.ConceptMastery{
		{
			ID:                 uuid.New(),
			UserID:             u.ID,
			ConceptName:        "recursion",
			CurrentLevel:       domain.MasteryMastered,
			ConfidenceScore:    0.9,
			FirstEncounteredAt: now.Add(-48 * time.Hour),
			LastUpdated:        now,
		},
	})
	if err != nil {
		t.Fatalf("Upsert (conflict): %v", err)
	}

	got, err := repo.GetByUserAndConcept(ctx, tx, u.ID, "recursion")
	if err != nil {
		t.Fatalf("GetByUserAndConcept: %v", err)
	}
	if got == nil || got.CurrentLevel != domain.MasteryMastered || got.ConfidenceScore != 0.9 {
		t.Fatalf("GetByUserAndConcept: expected the upserted level, got %+v", got)
	}

	all, err := repo.ListByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListByUser: expected 2 rows, got %d", len(all))
	}
	if all[0].ConceptName != "binary search" || all[1].ConceptName != "recursion" {
		t.Fatalf("ListByUser: expected alphabetical order, got %q then %q",
			all[0].ConceptName, all[1].ConceptName)
	}

	missing, err := repo.GetByUserAndConcept(ctx, tx, u.ID, "graph coloring")
	if err != nil {
		t.Fatalf("GetByUserAndConcept (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByUserAndConcept (missing): expected nil, got %+v", missing)
	}
}

package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/data/repos/testutil"
)

func TestLearningSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewLearningSessionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "sessionrepo@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	oldSession := testutil.SeedSession(t, ctx, tx, u.ID, now.Add(-45*24*time.Hour), 1200)
	midSession := testutil.SeedSession(t, ctx, tx, u.ID, now.Add(-10*24*time.Hour), 1800)
	newSession := testutil.SeedSession(t, ctx, tx, u.ID, now.Add(-1*time.Hour), 2700)

	got, err := repo.GetByID(ctx, tx, midSession.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != midSession.ID || got.DurationSeconds != 1800 {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	windowed, err := repo.ListByUserSince(ctx, tx, u.ID, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("ListByUserSince: %v", err)
	}
	if len(windowed) != 2 {
		t.Fatalf("ListByUserSince: expected 2 sessions in window, got %d", len(windowed))
	}
	if windowed[0].ID != midSession.ID || windowed[1].ID != newSession.ID {
		t.Fatalf("ListByUserSince: expected chronological order, got %+v", windowed)
	}
	for _, s := range windowed {
		if s.ID == oldSession.ID {
			t.Fatalf("ListByUserSince: session outside the window leaked in")
		}
	}
}

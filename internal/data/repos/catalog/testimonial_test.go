package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
)

func TestTestimonialRepoApprovalFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewTestimonialRepo(db, testutil.Logger(t))
	testutil.SeedTestimonial(t, ctx, tx, "visible", true)

	created, err := repo.Create(dbc, &types.Testimonial{
		Name:       "Grace",
		Role:       "Engineer",
		Content:    "great course",
		Rating:     5,
		IsApproved: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.IsApproved {
		t.Fatalf("Create: new testimonial must start unapproved")
	}

	approved, err := repo.ListApproved(dbc)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(approved) != 1 || approved[0].Name != "visible" {
		t.Fatalf("ListApproved: unexpected %+v", approved)
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListAll: want=2 got=%d", len(all))
	}

	found, err := repo.SetApproved(dbc, created.ID, true)
	if err != nil {
		t.Fatalf("SetApproved: %v", err)
	}
	if !found {
		t.Fatalf("SetApproved: expected match")
	}
	approved, _ = repo.ListApproved(dbc)
	if len(approved) != 2 {
		t.Fatalf("ListApproved after approval: want=2 got=%d", len(approved))
	}

	found, err = repo.SetApproved(dbc, uuid.New(), true)
	if err != nil {
		t.Fatalf("SetApproved (missing): %v", err)
	}
	if found {
		t.Fatalf("SetApproved (missing): expected no match")
	}
}

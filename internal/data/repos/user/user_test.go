package user

import (
	"context"
	"testing"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
)

func TestUserRepoUpsertMergesProvidedClaims(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))

	email := "ada@example.com"
	first := "Ada"
	created, err := repo.Upsert(dbc, types.UserUpsert{ID: "u1", Email: &email, FirstName: &first})
	if err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}
	if created.ID != "u1" || created.FirstName == nil || *created.FirstName != "Ada" {
		t.Fatalf("Upsert (insert): unexpected row %+v", created)
	}
	if created.IsAdmin {
		t.Fatalf("Upsert (insert): expected non-admin by default")
	}

	last := "Lovelace"
	updated, err := repo.Upsert(dbc, types.UserUpsert{ID: "u1", LastName: &last})
	if err != nil {
		t.Fatalf("Upsert (merge): %v", err)
	}
	if updated.LastName == nil || *updated.LastName != "Lovelace" {
		t.Fatalf("Upsert (merge): last name not written: %+v", updated)
	}
	if updated.FirstName == nil || *updated.FirstName != "Ada" {
		t.Fatalf("Upsert (merge): absent claim overwrote first name: %+v", updated)
	}
	if updated.Email == nil || *updated.Email != email {
		t.Fatalf("Upsert (merge): absent claim overwrote email: %+v", updated)
	}

	n, err := repo.Count(dbc)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count: want=1 got=%d", n)
	}
}

func TestUserRepoGetAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))
	testutil.SeedUser(t, ctx, tx, "u2")

	got, err := repo.GetByID(dbc, "u2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != "u2" {
		t.Fatalf("GetByID: unexpected result %+v", got)
	}

	missing, err := repo.GetByID(dbc, "nobody")
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	deleted, err := repo.Delete(dbc, "u2")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("Delete: expected a row to be removed")
	}
	deleted, err = repo.Delete(dbc, "u2")
	if err != nil {
		t.Fatalf("Delete (again): %v", err)
	}
	if deleted {
		t.Fatalf("Delete (again): expected no-op")
	}
}

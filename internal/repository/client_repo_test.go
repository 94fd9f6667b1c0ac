package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/andy/rosterdash/internal/db"
	"github.com/andy/rosterdash/internal/domain"
)

func newTestRepo(t *testing.T) *ClientRepo {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo := NewClientRepo(database)
	if err := repo.Seed(context.Background(), domain.SeedClients()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	extra := domain.SeedClients()[0]
	extra.ID = "99"
	extra.Name = "Aaron First"
	if err := repo.Create(ctx, extra); err != nil {
		t.Fatalf("create: %v", err)
	}

	clients, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(clients) != 8 {
		t.Fatalf("expected 8 clients, got %d", len(clients))
	}
	if clients[0].ID != "0" || clients[7].ID != "99" {
		t.Fatalf("expected insertion order, got first=%s last=%s", clients[0].ID, clients[7].ID)
	}
	if !clients[0].Registered.Known() {
		t.Fatalf("expected registered to round-trip through storage")
	}
}

func TestCreateDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.Create(context.Background(), domain.SeedClients()[1])
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestCreateRejectsInvalidClient(t *testing.T) {
	repo := newTestRepo(t)
	c := domain.SeedClients()[1]
	c.ID = "new"
	c.Age = 0
	if err := repo.Create(context.Background(), c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdatePatchesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	updated, err := repo.Update(ctx, "4", domain.ClientPatch{Age: domain.Ptr(40), Currency: domain.Ptr(domain.CurrencyUSD)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Age != 40 || updated.Currency != domain.CurrencyUSD {
		t.Fatalf("expected patched fields, got %+v", updated)
	}

	stored, err := repo.GetByID(ctx, "4")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Louella Thomas" || stored.Age != 40 {
		t.Fatalf("unexpected stored client %+v", stored)
	}

	if _, err := repo.Update(ctx, "missing", domain.ClientPatch{Age: domain.Ptr(40)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Delete(ctx, "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 clients, got %d", n)
	}
	if _, err := repo.GetByID(ctx, "2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

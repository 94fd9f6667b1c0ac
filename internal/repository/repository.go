package repository

import (
	"context"

	"github.com/andy/rosterdash/internal/domain"
)

// ClientRepository manages the roster held by the mock remote endpoint
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (domain.Client, error)
	Create(ctx context.Context, client domain.Client) error
	Update(ctx context.Context, id string, patch domain.ClientPatch) (domain.Client, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Seed(ctx context.Context, clients []domain.Client) error
}

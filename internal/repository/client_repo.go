package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/rosterdash/internal/db"
	"github.com/andy/rosterdash/internal/domain"
)

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db *db.DB
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB) *ClientRepo {
	return &ClientRepo{db: database}
}

// List returns every client in insertion order
func (r *ClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// GetByID retrieves a client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id string) (domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
		}
		return domain.Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// Create appends a fully formed client
func (r *ClientRepo) Create(ctx context.Context, client domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	return insert(ctx, r.db, client)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, ex execer, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := ex.ExecContext(ctx, query,
		client.ID,
		client.Gender,
		client.Name,
		client.Company,
		client.Age,
		client.Picture,
		client.Registered.String(),
		client.Currency,
		client.SubscriptionCost,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("client %s: %w", client.ID, domain.ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update merges the patch into the stored client and returns the result
func (r *ClientRepo) Update(ctx context.Context, id string, patch domain.ClientPatch) (domain.Client, error) {
	if err := patch.Validate(); err != nil {
		return domain.Client{}, fmt.Errorf("invalid update: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Client{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	client, err := scanClient(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
		}
		return domain.Client{}, fmt.Errorf("failed to get client: %w", err)
	}

	patch.Apply(&client)

	_, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET gender = ?, name = ?, company = ?, age = ?, picture = ?, currency = ?, subscription_cost = ?
		WHERE id = ?
	`,
		client.Gender,
		client.Name,
		client.Company,
		client.Age,
		client.Picture,
		client.Currency,
		client.SubscriptionCost,
		id,
	)
	if err != nil {
		return domain.Client{}, fmt.Errorf("failed to update client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Client{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return client, nil
}

// Delete removes a client by ID
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Count returns the number of stored clients
func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

// Seed replaces the stored roster with clients, in order
func (r *ClientRepo) Seed(ctx context.Context, clients []domain.Client) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("failed to clear clients: %w", err)
	}
	for _, c := range clients {
		if err := insert(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

package repository

import (
	"strings"

	"github.com/andy/rosterdash/internal/domain"
)

const clientColumns = `id, gender, name, company, age, picture, registered, currency, subscription_cost`

type scanner interface {
	Scan(dest ...any) error
}

// scanClient reads one row selected with clientColumns
func scanClient(row scanner) (domain.Client, error) {
	var c domain.Client
	var registered string
	err := row.Scan(
		&c.ID,
		&c.Gender,
		&c.Name,
		&c.Company,
		&c.Age,
		&c.Picture,
		&registered,
		&c.Currency,
		&c.SubscriptionCost,
	)
	if err != nil {
		return domain.Client{}, err
	}
	c.Registered = domain.ParseTimestamp(registered)
	return c, nil
}

// isUniqueViolation detects a UNIQUE constraint failure from sqlite
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

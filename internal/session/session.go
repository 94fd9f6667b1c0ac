package session

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName = "rosterdash"
	KeyName     = "operator"

	// EnvOperator names the operator when no keyring is reachable
	EnvOperator = "ROSTERDASH_OPERATOR"
)

var (
	// ErrNoSession is returned when nobody has logged in
	ErrNoSession = errors.New("not logged in")

	// ErrEmptyCredentials rejects a login with a blank operator or password
	ErrEmptyCredentials = errors.New("operator name and password are required")
)

// Store remembers which operator passed the login gate.
//
// The gate is a no-op: any non-empty operator name and password are
// accepted. Only the name is kept; the password is never stored.
type Store interface {
	Operator() (string, error)
	Login(operator, password string) error
	Logout() error
	IsAvailable() bool
}

// NewStore returns a keyring-backed store that falls back to EnvOperator
func NewStore() Store {
	return &keyringStore{
		getenv: os.Getenv,
	}
}

type keyringStore struct {
	getenv func(string) string
}

// Operator returns the logged-in operator from the keyring, or from
// EnvOperator when the keyring has no entry or cannot be reached
func (s *keyringStore) Operator() (string, error) {
	name, err := keyring.Get(ServiceName, KeyName)
	if err == nil && name != "" {
		return name, nil
	}

	if env := strings.TrimSpace(s.getenv(EnvOperator)); env != "" {
		return env, nil
	}

	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("failed to read session from keyring: %w", err)
	}
	return "", ErrNoSession
}

// Login accepts any non-empty credentials and remembers the operator name.
// Any error other than ErrEmptyCredentials means the gate was passed but
// the name could not be remembered.
func (s *keyringStore) Login(operator, password string) error {
	operator = strings.TrimSpace(operator)
	if operator == "" || password == "" {
		return ErrEmptyCredentials
	}

	if err := keyring.Set(ServiceName, KeyName, operator); err != nil {
		return fmt.Errorf("keyring not available: set %s=%s to stay logged in: %w", EnvOperator, operator, err)
	}
	return nil
}

// Logout forgets the operator. Logging out twice is not an error.
func (s *keyringStore) Logout() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear session from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is accessible
func (s *keyringStore) IsAvailable() bool {
	// Probe with a throwaway key that is removed immediately
	testKey := "__rosterdash_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}

package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// MemoryPath opens a private in-memory database that vanishes on Close
const MemoryPath = ":memory:"

type DB struct {
	*sql.DB
}

// Open opens a SQLite database through sqlcipher. A non-empty password
// encrypts the file; MemoryPath gives a volatile database on a single
// connection, since every new connection to :memory: would see an empty one.
func Open(dbPath, password string) (*DB, error) {
	inMemory := dbPath == MemoryPath

	connStr := dbPath
	if !inMemory {
		// Create parent directories if they don't exist
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	if password != "" {
		connStr = fmt.Sprintf("%s?_key=%s", dbPath, url.QueryEscape(password))
	}

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if inMemory {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		// Enable WAL mode for better concurrent performance
		if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Ping to verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// OpenMemory opens a fresh volatile database with the schema applied
func OpenMemory() (*DB, error) {
	database, err := Open(MemoryPath, "")
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

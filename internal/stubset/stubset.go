// Package stubset stores runtime symbol stubs in a SQLite database under the
// shared test working directory. The runtime reflection provider answers
// symbol queries from it; a bootstrap action seeds it once per container.
package stubset

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bedrockhq/bedrock/internal/analysis"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for runtime symbol stubs.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens the stub database at the given path.
// Applies required pragmas and the schema automatically; safe to call for a
// path that already holds a seeded database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stub database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to stub database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY during seeding.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed inserts or replaces the given symbols in one transaction.
func (s *Store) Seed(ctx context.Context, symbols []analysis.Symbol) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO symbols (name, kind, signature) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, sym := range symbols {
		if _, err := stmt.ExecContext(ctx, sym.Name, string(sym.Kind), sym.Signature); err != nil {
			return fmt.Errorf("failed to seed symbol %q: %w", sym.Name, err)
		}
	}

	return tx.Commit()
}

// Symbol looks up one symbol by name.
func (s *Store) Symbol(ctx context.Context, name string) (analysis.Symbol, error) {
	var sym analysis.Symbol
	var kind string
	err := s.db.QueryRowContext(ctx,
		"SELECT name, kind, signature FROM symbols WHERE name = ?", name).
		Scan(&sym.Name, &kind, &sym.Signature)
	if errors.Is(err, sql.ErrNoRows) {
		return analysis.Symbol{}, analysis.UnknownSymbolError{Name: name}
	}
	if err != nil {
		return analysis.Symbol{}, fmt.Errorf("failed to query symbol %q: %w", name, err)
	}
	sym.Kind = analysis.SymbolKind(kind)
	return sym, nil
}

// Count reports the number of stored symbols.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM symbols").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count symbols: %w", err)
	}
	return n, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

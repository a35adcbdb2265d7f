// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists accepted paper records and their verification
// verdicts in a SQLite index.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/paper-verifier/pkg/types"
)

const dbFile = "papers.db"

// Store manages the paper index SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the paper index at indexDir/papers.db, creating
// the schema when missing.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			title TEXT,
			first_author TEXT,
			all_authors TEXT,
			dates TEXT,
			equal_contribution INTEGER NOT NULL DEFAULT 0,
			equal_contribution_authors TEXT,
			first_author_has_equal INTEGER NOT NULL DEFAULT 0,
			source_id TEXT,
			source_url TEXT,
			match_result TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_source_id ON papers(source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_source_url ON papers(source_url)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Append stores one record, with its verification result when present,
// and returns the stored record's id. Appending the same record twice
// overwrites the earlier row: the id is deterministic.
func (s *Store) Append(ctx context.Context, rec types.MetadataRecord, match *types.MatchResult) (string, error) {
	id := recordID(rec)

	authors, err := json.Marshal(rec.AllAuthors)
	if err != nil {
		return "", fmt.Errorf("marshaling authors: %w", err)
	}
	dates, err := json.Marshal(rec.Dates)
	if err != nil {
		return "", fmt.Errorf("marshaling dates: %w", err)
	}
	equalAuthors, err := json.Marshal(rec.EqualContributionAuthors)
	if err != nil {
		return "", fmt.Errorf("marshaling equal-contribution authors: %w", err)
	}

	var matchJSON any
	if match != nil {
		data, err := json.Marshal(match)
		if err != nil {
			return "", fmt.Errorf("marshaling match result: %w", err)
		}
		matchJSON = string(data)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO papers
			(id, source, title, first_author, all_authors, dates,
			 equal_contribution, equal_contribution_authors, first_author_has_equal,
			 source_id, source_url, match_result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(rec.Source), rec.Title, rec.FirstAuthor, string(authors), string(dates),
		boolInt(rec.EqualContribution), string(equalAuthors), boolInt(rec.FirstAuthorHasEqual),
		rec.SourceID, rec.SourceURL, matchJSON,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting paper %s: %w", id, err)
	}
	return id, nil
}

// Snapshot reads every stored record, in insertion-id order, for
// duplicate detection against new candidates.
func (s *Store) Snapshot(ctx context.Context) ([]types.MetadataRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, title, first_author, all_authors, dates,
			equal_contribution, equal_contribution_authors, first_author_has_equal,
			source_id, source_url
		 FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var records []types.MetadataRecord
	for rows.Next() {
		var rec types.MetadataRecord
		var source, authors, dates, equalAuthors string
		var equalContribution, firstHasEqual int
		if err := rows.Scan(&source, &rec.Title, &rec.FirstAuthor, &authors, &dates,
			&equalContribution, &equalAuthors, &firstHasEqual,
			&rec.SourceID, &rec.SourceURL); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		rec.Source = types.Source(source)
		if err := json.Unmarshal([]byte(authors), &rec.AllAuthors); err != nil {
			return nil, fmt.Errorf("parsing authors: %w", err)
		}
		if err := json.Unmarshal([]byte(dates), &rec.Dates); err != nil {
			return nil, fmt.Errorf("parsing dates: %w", err)
		}
		if err := json.Unmarshal([]byte(equalAuthors), &rec.EqualContributionAuthors); err != nil {
			return nil, fmt.Errorf("parsing equal-contribution authors: %w", err)
		}
		rec.EqualContribution = equalContribution != 0
		rec.FirstAuthorHasEqual = firstHasEqual != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MatchResult loads the stored verification verdict for a record id.
// Returns nil when the record has no verdict.
func (s *Store) MatchResult(ctx context.Context, id string) (*types.MatchResult, error) {
	var data sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT match_result FROM papers WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no record with id %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying match result: %w", err)
	}
	if !data.Valid || data.String == "" {
		return nil, nil
	}
	var match types.MatchResult
	if err := json.Unmarshal([]byte(data.String), &match); err != nil {
		return nil, fmt.Errorf("parsing match result: %w", err)
	}
	return &match, nil
}

// RecordID returns the deterministic id Append assigns to rec, so
// callers can display or look up records without storing them first.
func RecordID(rec types.MetadataRecord) string {
	return recordID(rec)
}

// recordID derives a deterministic id from the record's identity
// fields: the first 12 hex characters of SHA-256 over title, first
// author and source URL.
func recordID(rec types.MetadataRecord) string {
	h := sha256.New()
	h.Write([]byte(rec.Title))
	h.Write([]byte(rec.FirstAuthor))
	h.Write([]byte(rec.SourceURL))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

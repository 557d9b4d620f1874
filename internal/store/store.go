// Package store persists generated reports in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alnah/go-reportdoc/internal/generate"
)

// Sentinel errors for store operations.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyReport    = errors.New("report has no content")
	ErrOpenStore      = errors.New("failed to open report store")
)

// Rating bounds for SubmitFeedback.
const (
	MinRating = 1
	MaxRating = 5
)

// Kinds of saved documents.
const (
	KindReport     = "report"
	KindManual     = "manual"
	KindBenchmarks = "benchmarks"
)

// Report is one saved document with the business data it was generated
// from.
type Report struct {
	ID               string
	CreatedAt        time.Time
	OrganizationName string
	Kind             string
	Lang             string
	Content          string
	BusinessData     generate.BusinessData
	Rating           int // 0 = not rated
	Comment          string
}

// ListOptions filters List.
type ListOptions struct {
	// Organization matches organization names case-insensitively by
	// substring.
	Organization string
	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// Store is a SQLite-backed report archive. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	organization_name TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT 'report',
	lang TEXT NOT NULL DEFAULT 'en',
	content TEXT NOT NULL,
	business_data TEXT NOT NULL,
	rating INTEGER NOT NULL DEFAULT 0,
	comment TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
CREATE INDEX IF NOT EXISTS idx_reports_org ON reports(organization_name);
`

// Open opens or creates the database at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrOpenStore, dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenStore, err)
	}
	// A single connection serializes writers and keeps :memory: databases
	// shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrOpenStore, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r under a new id and returns it with ID and CreatedAt set.
// An empty Kind defaults to KindReport and an empty OrganizationName is
// taken from the business data.
func (s *Store) Save(ctx context.Context, r Report) (*Report, error) {
	if strings.TrimSpace(r.Content) == "" {
		return nil, ErrEmptyReport
	}
	if r.Kind == "" {
		r.Kind = KindReport
	}
	if r.Lang == "" {
		r.Lang = generate.LangEnglish
	}
	if r.OrganizationName == "" {
		r.OrganizationName = r.BusinessData.OrganizationName
	}
	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	r.Rating, r.Comment = 0, ""

	data, err := json.Marshal(r.BusinessData)
	if err != nil {
		return nil, fmt.Errorf("encoding business data: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, created_at, organization_name, kind, lang, content, business_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixMilli(), r.OrganizationName, r.Kind, r.Lang, r.Content, string(data))
	if err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	return &r, nil
}

const selectColumns = `SELECT id, created_at, organization_name, kind, lang, content, business_data, rating, comment FROM reports`

// Get returns the report with the given id. A unique id prefix of at least
// eight characters is accepted too.
func (s *Store) Get(ctx context.Context, id string) (*Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrReportNotFound)
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id = ? OR (length(?) >= 8 AND substr(id, 1, length(?)) = ?) LIMIT 2`, id, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}
	defer rows.Close()

	var found []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		if r.ID == id {
			return r, nil
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	default:
		return nil, fmt.Errorf("%w: prefix %s is ambiguous", ErrReportNotFound, id)
	}
}

// List returns saved reports, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Report, error) {
	query := selectColumns
	var args []any
	if org := strings.TrimSpace(opts.Organization); org != "" {
		query += ` WHERE instr(lower(organization_name), lower(?)) > 0`
		args = append(args, org)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return out, nil
}

// Delete removes the report with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	return nil
}

// SubmitFeedback records a 1-5 rating and an optional comment, replacing
// any earlier feedback.
func (s *Store) SubmitFeedback(ctx context.Context, id string, rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE reports SET rating = ?, comment = ? WHERE id = ?`,
		rating, strings.TrimSpace(comment), r.ID)
	if err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*Report, error) {
	var (
		r       Report
		created int64
		data    string
	)
	if err := row.Scan(&r.ID, &created, &r.OrganizationName, &r.Kind, &r.Lang, &r.Content, &data, &r.Rating, &r.Comment); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	if err := json.Unmarshal([]byte(data), &r.BusinessData); err != nil {
		return nil, fmt.Errorf("decoding business data of %s: %w", r.ID, err)
	}
	return &r, nil
}

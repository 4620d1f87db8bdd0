package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/scrubsnap/internal/model"
)

// FileName is the name of the history database inside its directory.
const FileName = "scrubsnap.db"

// timestampLayout is fixed-width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	// ErrDatabaseNotFound is returned by Open when the database does not
	// exist and CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("run not found")
)

// HistoryDB records anonymization runs in SQLite.
// It stores paths, digests, and counts only; neither mapping is saved,
// so the database never holds a real name or member ID.
type HistoryDB struct {
	db *sql.DB

	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		input_digest TEXT,
		output_digest TEXT,
		name_count INTEGER NOT NULL DEFAULT 0,
		id_count INTEGER NOT NULL DEFAULT 0,
		substitution_count INTEGER NOT NULL DEFAULT 0,
		finding_count INTEGER NOT NULL DEFAULT 0,
		risk_summary TEXT,
		dry_run INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_input_digest ON runs(input_digest);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is one stored run.
type RunRecord struct {
	ID                int64          `json:"id"`
	Timestamp         time.Time      `json:"timestamp"`
	InputPath         string         `json:"input_path"`
	OutputPath        string         `json:"output_path"`
	InputDigest       string         `json:"input_digest,omitempty"`
	OutputDigest      string         `json:"output_digest,omitempty"`
	NameCount         int            `json:"name_count"`
	IDCount           int            `json:"id_count"`
	SubstitutionCount int            `json:"substitution_count"`
	FindingCount      int            `json:"finding_count"`
	RiskSummary       map[string]int `json:"risk_summary"`
	DryRun            bool           `json:"dry_run"`
}

// SaveRun stores the counts and digests of report and returns the new run ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.RunReport) (int64, error) {
	riskSummary := map[string]int{
		"critical": report.CountBySeverity(model.SeverityCritical),
		"high":     report.CountBySeverity(model.SeverityHigh),
		"medium":   report.CountBySeverity(model.SeverityMedium),
		"low":      report.CountBySeverity(model.SeverityLow),
		"info":     report.CountBySeverity(model.SeverityInfo),
	}
	riskJSON, _ := json.Marshal(riskSummary) //nolint:errcheck,errchkjson // map[string]int always marshals

	query := `
	INSERT INTO runs (timestamp, input_path, output_path, input_digest, output_digest,
		name_count, id_count, substitution_count, finding_count, risk_summary, dry_run)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		report.DateRun.UTC().Format(timestampLayout),
		report.InputPath,
		report.OutputPath,
		report.InputDigest,
		report.OutputDigest,
		report.Names.Len(),
		report.IDs.Len(),
		report.TotalSubstitutions(),
		len(report.Findings),
		string(riskJSON),
		report.DryRun,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run ID: %w", err)
	}
	return id, nil
}

const selectRun = `
	SELECT id, timestamp, input_path, output_path, input_digest, output_digest,
		name_count, id_count, substitution_count, finding_count, risk_summary, dry_run
	FROM runs
`

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := selectRun + ` ORDER BY timestamp DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	results := make([]RunRecord, 0)
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}

	return results, rows.Err()
}

// GetRun returns the run with the given ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*RunRecord, error) {
	rec, err := scanRun(hdb.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return rec, err
}

// FindByInputDigest returns the earlier non-dry runs whose input had digest,
// newest first.
func (hdb *HistoryDB) FindByInputDigest(ctx context.Context, digest string) ([]RunRecord, error) {
	rows, err := hdb.db.QueryContext(ctx,
		selectRun+` WHERE input_digest = ? AND dry_run = 0 ORDER BY timestamp DESC, id DESC`, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	results := make([]RunRecord, 0)
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}

	return results, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var rec RunRecord
	var timestamp string
	var inputDigest, outputDigest, riskJSON sql.NullString

	err := row.Scan(
		&rec.ID,
		&timestamp,
		&rec.InputPath,
		&rec.OutputPath,
		&inputDigest,
		&outputDigest,
		&rec.NameCount,
		&rec.IDCount,
		&rec.SubstitutionCount,
		&rec.FindingCount,
		&riskJSON,
		&rec.DryRun,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	rec.Timestamp = parseTimestamp(timestamp)
	rec.InputDigest = inputDigest.String
	rec.OutputDigest = outputDigest.String

	rec.RiskSummary = make(map[string]int)
	if riskJSON.Valid && riskJSON.String != "" {
		if err := json.Unmarshal([]byte(riskJSON.String), &rec.RiskSummary); err != nil {
			rec.RiskSummary = make(map[string]int)
		}
	}

	return &rec, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses s with the first matching format, or returns the
// zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

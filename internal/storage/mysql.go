package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
)

// DefaultDatabaseName is used when the DSN names no database
const DefaultDatabaseName = "xlsxft"

// ErrNoRuns is returned by Load when nothing has been stored yet
var ErrNoRuns = errors.New("no stored runs")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS xlsxft_runs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		meta LONGTEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS xlsxft_failures (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		run_id BIGINT NOT NULL,
		position INT NOT NULL,
		test_name VARCHAR(255) NOT NULL,
		kind VARCHAR(32) NOT NULL,
		resolved BOOLEAN NOT NULL DEFAULT FALSE,
		detail LONGTEXT NOT NULL,
		INDEX idx_run (run_id)
	)`,
}

var _ Storage = (*MySQLStorage)(nil)

// MySQLStorage keeps a history of runs in MySQL. Load and SaveOutput work
// on the most recent run.
type MySQLStorage struct {
	cfg *config.Config
	db  *sql.DB
}

// NewMySQLStorage connects using cfg.MySQLDSN, creating the database and
// tables when they do not exist.
func NewMySQLStorage(cfg *config.Config) (*MySQLStorage, error) {
	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("mysql store needs %s", config.EnvMySQLDSN)
	}
	dsn, err := mysql.ParseDSN(cfg.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if dsn.DBName == "" {
		dsn.DBName = DefaultDatabaseName
	}
	if err := ensureDatabase(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}
	return &MySQLStorage{cfg: cfg, db: db}, nil
}

// ensureDatabase connects to the server without a database and creates dsn.DBName.
func ensureDatabase(dsn *mysql.Config) error {
	if !isValidDatabaseName(dsn.DBName) {
		return fmt.Errorf("invalid database name: %s", dsn.DBName)
	}
	server := serverDSN(dsn)
	db, err := sql.Open("mysql", server)
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dsn.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dsn.DBName, err)
	}
	return nil
}

// serverDSN is dsn without its database name
func serverDSN(dsn *mysql.Config) string {
	c := dsn.Clone()
	c.DBName = ""
	return c.FormatDSN()
}

// isValidDatabaseName allows letters, digits, underscore and dollar, up to 64 characters
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || r == '$' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0
}

// Close releases the connection pool
func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

// Save records a run and its failures.
func (s *MySQLStorage) Save(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, workers int) error {
	output := BuildOutput(results, failures, duration, workers, s.cfg.Comparator)
	meta, err := json.Marshal(output.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO xlsxft_runs (created_at, meta) VALUES (?, ?)", time.Now().UTC(), string(meta))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	if err := insertFailures(tx, runID, output.Details); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the most recent run.
func (s *MySQLStorage) Load() (*domain.TestResultsOutput, error) {
	runID, output, err := s.latest()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT detail, resolved FROM xlsxft_failures WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	output.Details = []domain.TestFailure{}
	for rows.Next() {
		var detail string
		var resolved bool
		if err := rows.Scan(&detail, &resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		var f domain.TestFailure
		if err := json.Unmarshal([]byte(detail), &f); err != nil {
			return nil, fmt.Errorf("parse failure: %w", err)
		}
		f.Resolved = resolved
		output.Details = append(output.Details, f)
	}
	return output, rows.Err()
}

// SaveOutput replaces the most recent run's meta and failures.
func (s *MySQLStorage) SaveOutput(output *domain.TestResultsOutput) error {
	runID, _, err := s.latest()
	if err != nil {
		return err
	}
	meta, err := json.Marshal(output.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE xlsxft_runs SET meta = ? WHERE id = ?", string(meta), runID); err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM xlsxft_failures WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("clear failures: %w", err)
	}
	if err := insertFailures(tx, runID, output.Details); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *MySQLStorage) latest() (int64, *domain.TestResultsOutput, error) {
	var runID int64
	var meta string
	err := s.db.QueryRow("SELECT id, meta FROM xlsxft_runs ORDER BY id DESC LIMIT 1").Scan(&runID, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, ErrNoRuns
	}
	if err != nil {
		return 0, nil, fmt.Errorf("query runs: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal([]byte(meta), &output.Meta); err != nil {
		return 0, nil, fmt.Errorf("parse meta: %w", err)
	}
	return runID, &output, nil
}

func insertFailures(tx *sql.Tx, runID int64, failures []domain.TestFailure) error {
	for i, f := range failures {
		detail, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal failure: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO xlsxft_failures (run_id, position, test_name, kind, resolved, detail) VALUES (?, ?, ?, ?, ?, ?)",
			runID, i, f.TestName, f.Kind, f.Resolved, string(detail),
		)
		if err != nil {
			return fmt.Errorf("insert failure %s: %w", f.TestName, err)
		}
	}
	return nil
}

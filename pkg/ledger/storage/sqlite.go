package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         ".tokenwatch/usage.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements ledger.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend. It creates the
// parent directory and database lazily, initializes the schema, and
// enables WAL mode if configured. A corrupt database file is set aside
// with a ".corrupt" suffix and replaced with an empty ledger.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "ledger.storage.sqlite")

	if dir := filepath.Dir(config.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ledger.NewStorageError("sqlite", "open", err)
		}
	}

	db, err := openAndInitialize(config, logger)
	if err != nil {
		// A corrupt database degrades to an empty ledger. The old
		// file is preserved under a new name for inspection.
		aside := config.Path + ".corrupt"
		if renameErr := os.Rename(config.Path, aside); renameErr != nil {
			return nil, err
		}
		logger.Warn("corrupt database set aside, starting with empty ledger",
			"path", config.Path,
			"moved_to", aside,
		)
		db, err = openAndInitialize(config, logger)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// openAndInitialize opens the database and sets up the schema.
func openAndInitialize(config *SQLiteConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if config.WALMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, ledger.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := config.BusyTimeout.Milliseconds()
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		db.Close()
		return nil, ledger.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, ledger.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		db.Close()
		return nil, ledger.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err = db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		db.Close()
		return nil, ledger.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		db.Close()
		return nil, ledger.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	logger.Debug("schema version verified", "version", version)

	return db, nil
}

// Append persists a usage record. The insert is committed before
// Append returns; SQLite serializes writers so concurrent appends
// never interleave.
func (s *SQLiteStorage) Append(ctx context.Context, record *ledger.UsageRecord) error {
	query := `
		INSERT INTO usage (
			id, timestamp,
			model, provider,
			input_tokens, output_tokens, total_tokens, cost_usd, pricing_known,
			task_label, session_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Optional fields become NULL rather than empty strings.
	var taskLabel, sessionID interface{}
	if record.TaskLabel != "" {
		taskLabel = record.TaskLabel
	}
	if record.SessionID != "" {
		sessionID = record.SessionID
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.Timestamp,
		record.Model, record.Provider,
		record.InputTokens, record.OutputTokens, record.TotalTokens, record.CostUSD, record.PricingKnown,
		taskLabel, sessionID,
	)
	if err != nil {
		return ledger.NewStorageError("sqlite", "append", err)
	}

	return nil
}

// Query retrieves records matching the query filters, ordered by
// timestamp with rowid (append order) breaking ties.
func (s *SQLiteStorage) Query(ctx context.Context, q *ledger.Query) ([]*ledger.UsageRecord, error) {
	whereClause, args := buildWhereClause(q)

	sqlQuery := "SELECT id, timestamp, model, provider, input_tokens, output_tokens, total_tokens, cost_usd, pricing_known, task_label, session_id FROM usage"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	order := "ASC"
	if q.Descending {
		order = "DESC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY timestamp %s, rowid %s", order, order)

	if q.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*ledger.UsageRecord{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, ledger.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, ledger.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, q *ledger.Query) (int64, error) {
	whereClause, args := buildWhereClause(q)

	sqlQuery := "SELECT COUNT(*) FROM usage"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, ledger.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Close releases the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return ledger.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the clause (without "WHERE") and the query arguments.
func buildWhereClause(q *ledger.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if q.Start != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, *q.Start)
	}
	if q.End != nil {
		conditions = append(conditions, "timestamp < ?")
		args = append(args, *q.End)
	}
	if q.Model != "" {
		conditions = append(conditions, "model = ?")
		args = append(args, q.Model)
	}
	if q.Provider != "" {
		conditions = append(conditions, "provider = ?")
		args = append(args, q.Provider)
	}
	if q.SessionID != "" {
		conditions = append(conditions, "session_id = ?")
		args = append(args, q.SessionID)
	}

	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}

	return whereClause, args
}

// scanRow scans a database row into a UsageRecord.
func scanRow(rows *sql.Rows) (*ledger.UsageRecord, error) {
	var record ledger.UsageRecord
	var taskLabel, sessionID sql.NullString

	err := rows.Scan(
		&record.ID, &record.Timestamp,
		&record.Model, &record.Provider,
		&record.InputTokens, &record.OutputTokens, &record.TotalTokens, &record.CostUSD, &record.PricingKnown,
		&taskLabel, &sessionID,
	)
	if err != nil {
		return nil, err
	}

	if taskLabel.Valid {
		record.TaskLabel = taskLabel.String
	}
	if sessionID.Valid {
		record.SessionID = sessionID.String
	}

	return &record, nil
}

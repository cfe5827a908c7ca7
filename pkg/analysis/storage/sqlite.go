package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/config"
	"launchcanvas/atlas/pkg/journey"
)

// SQLiteStorage implements the Storage interface using SQLite.
// Canvas slices and the journey document are stored as JSON text columns.
type SQLiteStorage struct {
	db     *sql.DB
	config *config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(cfg *config.SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "analysis.storage.sqlite")

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, analysis.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
		"max_open_conns", cfg.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return analysis.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return analysis.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return analysis.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return analysis.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return analysis.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return analysis.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Create persists a new record.
func (s *SQLiteStorage) Create(ctx context.Context, record *analysis.Record) error {
	features, challenges, solutions, journeyDoc, err := marshalCanvasColumns(record)
	if err != nil {
		return analysis.NewStorageError("sqlite", "create", err)
	}

	query := `
		INSERT INTO analyses (
			id, created_at, updated_at, title, description, model_id,
			features, challenges, solutions, journey
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.CreatedAt, record.UpdatedAt,
		record.Title, record.Description, record.ModelID,
		features, challenges, solutions, journeyDoc,
	)
	if err != nil {
		return analysis.NewStorageError("sqlite", "create", err)
	}

	return nil
}

// Get retrieves a record by ID.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*analysis.Record, error) {
	query := `
		SELECT id, created_at, updated_at, title, description, model_id,
			features, challenges, solutions, journey
		FROM analyses WHERE id = ?
	`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &analysis.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, analysis.NewStorageError("sqlite", "get", err)
	}

	return record, nil
}

// List returns records ordered by creation time.
func (s *SQLiteStorage) List(ctx context.Context, opts analysis.ListOptions) ([]*analysis.Record, error) {
	order := "DESC"
	if opts.OldestFirst {
		order = "ASC"
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, updated_at, title, description, model_id,
			features, challenges, solutions, journey
		FROM analyses ORDER BY created_at %s LIMIT ? OFFSET ?
	`, order)

	rows, err := s.db.QueryContext(ctx, query, limit, opts.Offset)
	if err != nil {
		return nil, analysis.NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	results := []*analysis.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, analysis.NewStorageError("sqlite", "list_scan", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, analysis.NewStorageError("sqlite", "list_rows", err)
	}

	return results, nil
}

// Update replaces an existing record.
func (s *SQLiteStorage) Update(ctx context.Context, record *analysis.Record) error {
	features, challenges, solutions, journeyDoc, err := marshalCanvasColumns(record)
	if err != nil {
		return analysis.NewStorageError("sqlite", "update", err)
	}

	query := `
		UPDATE analyses SET
			updated_at = ?, title = ?, description = ?, model_id = ?,
			features = ?, challenges = ?, solutions = ?, journey = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		record.UpdatedAt, record.Title, record.Description, record.ModelID,
		features, challenges, solutions, journeyDoc,
		record.ID,
	)
	if err != nil {
		return analysis.NewStorageError("sqlite", "update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return analysis.NewStorageError("sqlite", "update_rows_affected", err)
	}
	if affected == 0 {
		return &analysis.NotFoundError{ID: record.ID}
	}

	return nil
}

// Delete removes a record by ID.
func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return analysis.NewStorageError("sqlite", "delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return analysis.NewStorageError("sqlite", "delete_rows_affected", err)
	}
	if affected == 0 {
		return &analysis.NotFoundError{ID: id}
	}

	return nil
}

// DeleteOlderThan removes records created before the cutoff.
func (s *SQLiteStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, analysis.NewStorageError("sqlite", "delete_older_than", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, analysis.NewStorageError("sqlite", "delete_rows_affected", err)
	}

	return deleted, nil
}

// Count returns the number of stored records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count); err != nil {
		return 0, analysis.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return analysis.NewStorageError("sqlite", "close", err)
	}
	return nil
}

func marshalCanvasColumns(record *analysis.Record) (features, challenges, solutions, journeyDoc interface{}, err error) {
	if record.Features != nil {
		data, merr := json.Marshal(record.Features)
		if merr != nil {
			return nil, nil, nil, nil, merr
		}
		features = string(data)
	}
	if record.Challenges != nil {
		data, merr := json.Marshal(record.Challenges)
		if merr != nil {
			return nil, nil, nil, nil, merr
		}
		challenges = string(data)
	}
	if record.Solutions != nil {
		data, merr := json.Marshal(record.Solutions)
		if merr != nil {
			return nil, nil, nil, nil, merr
		}
		solutions = string(data)
	}
	if record.Journey != nil {
		data, merr := json.Marshal(record.Journey)
		if merr != nil {
			return nil, nil, nil, nil, merr
		}
		journeyDoc = string(data)
	}
	return features, challenges, solutions, journeyDoc, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*analysis.Record, error) {
	var record analysis.Record
	var features, challenges, solutions, journeyDoc sql.NullString

	err := row.Scan(
		&record.ID, &record.CreatedAt, &record.UpdatedAt,
		&record.Title, &record.Description, &record.ModelID,
		&features, &challenges, &solutions, &journeyDoc,
	)
	if err != nil {
		return nil, err
	}

	if features.Valid {
		if err := json.Unmarshal([]byte(features.String), &record.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features column: %w", err)
		}
	}
	if challenges.Valid {
		if err := json.Unmarshal([]byte(challenges.String), &record.Challenges); err != nil {
			return nil, fmt.Errorf("failed to decode challenges column: %w", err)
		}
	}
	if solutions.Valid {
		if err := json.Unmarshal([]byte(solutions.String), &record.Solutions); err != nil {
			return nil, fmt.Errorf("failed to decode solutions column: %w", err)
		}
	}
	if journeyDoc.Valid {
		record.Journey = &journey.UserJourney{}
		if err := json.Unmarshal([]byte(journeyDoc.String), record.Journey); err != nil {
			return nil, fmt.Errorf("failed to decode journey column: %w", err)
		}
	}

	return &record, nil
}

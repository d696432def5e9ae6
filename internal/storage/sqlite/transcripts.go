package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"github.com/yegors/watson-go/pkg/logger"
)

// timeLayout is fixed width so text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// TranscriptStorage persists final transcripts keyed by recognition session
type TranscriptStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// Open opens (or creates) the database at path and prepares the schema
func Open(path string, log *logger.Logger) (*TranscriptStorage, error) {
	if path == "" {
		return nil, errors.New("database path is empty")
	}
	if log == nil {
		log = logger.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	storage := &TranscriptStorage{
		db:     db,
		logger: log.Named("sqlite-transcripts"),
	}
	if err := storage.initDB(); err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	storage.logger.Debug("Transcript storage ready", logger.String("path", path))
	return storage, nil
}

func (s *TranscriptStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transcripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			result_index INTEGER NOT NULL,
			transcript TEXT NOT NULL,
			confidence REAL,
			model TEXT,
			source TEXT,
			timestamp TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transcripts table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transcripts_session_id ON transcripts(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transcripts_timestamp ON transcripts(timestamp)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create transcript index: %w", err)
		}
	}
	return nil
}

// StoreTranscript inserts record and returns its row id. A zero Timestamp
// or CreatedAt is set to now.
func (s *TranscriptStorage) StoreTranscript(record *TranscriptRecord) (int64, error) {
	if record == nil {
		return 0, errors.New("transcript record is nil")
	}
	if err := uuid.Validate(record.SessionID); err != nil {
		return 0, fmt.Errorf("invalid session id %q: %w", record.SessionID, err)
	}

	now := time.Now().UTC()
	if record.Timestamp.IsZero() {
		record.Timestamp = now
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	result, err := s.db.Exec(
		`INSERT INTO transcripts
		(session_id, result_index, transcript, confidence, model, source, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.SessionID,
		record.ResultIndex,
		record.Transcript,
		nullFloat(record.Confidence),
		nullString(record.Model),
		nullString(record.Source),
		record.Timestamp.UTC().Format(timeLayout),
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transcript: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	record.ID = id
	return id, nil
}

// GetTranscriptsBySession returns a session's transcripts in stream order
func (s *TranscriptStorage) GetTranscriptsBySession(sessionID string) ([]*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, result_index, transcript, confidence, model, source, timestamp, created_at
		FROM transcripts
		WHERE session_id = ?
		ORDER BY result_index ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts by session: %w", err)
	}
	defer rows.Close()

	return scanTranscriptRows(rows)
}

// GetRecentTranscripts returns the newest transcripts across all sessions
func (s *TranscriptStorage) GetRecentTranscripts(limit int) ([]*TranscriptRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, result_index, transcript, confidence, model, source, timestamp, created_at
		FROM transcripts
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transcripts: %w", err)
	}
	defer rows.Close()

	return scanTranscriptRows(rows)
}

func (s *TranscriptStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func scanTranscriptRows(rows *sql.Rows) ([]*TranscriptRecord, error) {
	var records []*TranscriptRecord
	for rows.Next() {
		var record TranscriptRecord
		var timestamp, createdAt string
		var confidence sql.NullFloat64
		var model, source sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.ResultIndex,
			&record.Transcript,
			&confidence,
			&model,
			&source,
			&timestamp,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}

		var err error
		record.Timestamp, err = time.Parse(timeLayout, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		record.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		if confidence.Valid {
			record.Confidence = &confidence.Float64
		}
		record.Model = model.String
		record.Source = source.String

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transcripts: %w", err)
	}
	return records, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"v2t/internal/app/model"
)

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the history database at dbFilePath.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := Open(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

// NewWithDB wraps an already opened handle. The schema is not applied.
func NewWithDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Record(ctx context.Context, t *model.Transcription) error {
	insertSQL := `INSERT INTO transcriptions (video_path, audio_path, model_family, model_name, audio_duration, transcription, last_conversion_time, has_error, error_message) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	hasError := 0
	if t.HasError {
		hasError = 1
	}
	res, err := sdb.db.ExecContext(ctx, insertSQL, t.VideoPath, t.AudioPath, t.ModelFamily, t.ModelName,
		t.AudioDuration, t.Transcription, t.LastConversionTime.UTC(), hasError, t.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	t.ID = id
	return nil
}

const selectColumns = `SELECT id, video_path, audio_path, model_family, model_name, audio_duration, transcription, last_conversion_time, has_error, error_message
		FROM transcriptions`

func (sdb *SQLiteDB) List(ctx context.Context, limit int) ([]model.Transcription, error) {
	return sdb.query(ctx, selectColumns+`
		ORDER BY last_conversion_time DESC, id DESC
		LIMIT ?;`, normalizeLimit(limit))
}

func (sdb *SQLiteDB) ListByFamily(ctx context.Context, family string, limit int) ([]model.Transcription, error) {
	return sdb.query(ctx, selectColumns+`
		WHERE model_family = ?
		ORDER BY last_conversion_time DESC, id DESC
		LIMIT ?;`, family, normalizeLimit(limit))
}

func (sdb *SQLiteDB) query(ctx context.Context, sqlStr string, args ...any) ([]model.Transcription, error) {
	rows, err := sdb.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		err = rows.Scan(&t.ID, &t.VideoPath, &t.AudioPath, &t.ModelFamily, &t.ModelName, &t.AudioDuration,
			&t.Transcription, &t.LastConversionTime, &t.HasError, &t.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return transcriptions, nil
}

// normalizeLimit maps "no limit" to SQLite's LIMIT -1.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

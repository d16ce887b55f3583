package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storyshort/internal/composition"
)

// ExportStatus is the outcome of an export attempt.
type ExportStatus string

const (
	ExportSucceeded ExportStatus = "succeeded"
	ExportFailed    ExportStatus = "failed"
)

// Record is a stored composition.
type Record struct {
	ID           string    `json:"id" yaml:"id"`
	Script       string    `json:"script" yaml:"script"`
	SegmentCount int       `json:"segment_count" yaml:"segment_count"`
	AudioRef     string    `json:"audio_ref" yaml:"audio_ref"`
	VisualKind   string    `json:"visual_kind" yaml:"visual_kind"`
	VisualRef    string    `json:"visual_ref" yaml:"visual_ref"`
	FPS          int       `json:"fps" yaml:"fps"`
	Seconds      float64   `json:"seconds" yaml:"seconds"`
	Frames       int       `json:"frames" yaml:"frames"`
	Degraded     bool      `json:"degraded" yaml:"degraded"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// Export is a stored export attempt.
type Export struct {
	ID            int64        `json:"id" yaml:"id"`
	CompositionID string       `json:"composition_id" yaml:"composition_id"`
	OutputPath    string       `json:"output_path" yaml:"output_path"`
	Status        ExportStatus `json:"status" yaml:"status"`
	ErrorMessage  string       `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	CreatedAt     time.Time    `json:"created_at" yaml:"created_at"`
}

// timeLayout keeps a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const recordColumns = "id, script, segment_count, audio_ref, visual_kind, visual_ref, fps, seconds, frames, degraded, created_at, updated_at"

// Save inserts comp, or refreshes its timing if it was already stored.
func (s *Store) Save(ctx context.Context, comp *composition.Composition) error {
	now := time.Now().UTC().Format(timeLayout)
	timing := comp.Timing()
	visual := comp.Visual()
	_, err := s.exec(ctx,
		`INSERT INTO compositions (`+recordColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            seconds = excluded.seconds,
            frames = excluded.frames,
            degraded = excluded.degraded,
            updated_at = excluded.updated_at`,
		comp.ID(),
		comp.Script(),
		comp.SegmentCount(),
		nullableString(comp.AudioRef()),
		string(visual.Kind),
		nullableString(visual.Ref),
		timing.FPS,
		timing.Seconds,
		timing.Frames,
		boolToInt(timing.Fallback),
		comp.CreatedAt().UTC().Format(timeLayout),
		now,
	)
	if err != nil {
		return fmt.Errorf("save composition: %w", err)
	}
	return nil
}

// UpdateTiming stores the resolved duration of a previously saved composition.
func (s *Store) UpdateTiming(ctx context.Context, comp *composition.Composition) error {
	timing := comp.Timing()
	res, err := s.exec(ctx,
		`UPDATE compositions SET seconds = ?, frames = ?, degraded = ?, updated_at = ? WHERE id = ?`,
		timing.Seconds,
		timing.Frames,
		boolToInt(timing.Fallback),
		time.Now().UTC().Format(timeLayout),
		comp.ID(),
	)
	if err != nil {
		return fmt.Errorf("update timing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, comp.ID())
	}
	return nil
}

// RecordExport stores the outcome of an export attempt.
func (s *Store) RecordExport(ctx context.Context, compositionID, outputPath string, exportErr error) (*Export, error) {
	status := ExportSucceeded
	var message any
	if exportErr != nil {
		status = ExportFailed
		message = exportErr.Error()
	}
	now := time.Now().UTC()
	res, err := s.exec(ctx,
		`INSERT INTO exports (composition_id, output_path, status, error_message, created_at) VALUES (?, ?, ?, ?, ?)`,
		compositionID,
		nullableString(outputPath),
		string(status),
		message,
		now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("record export: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	out := &Export{ID: id, CompositionID: compositionID, OutputPath: outputPath, Status: status, CreatedAt: now}
	if exportErr != nil {
		out.ErrorMessage = exportErr.Error()
	}
	return out, nil
}

// Get returns the composition stored under id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), "SELECT "+recordColumns+" FROM compositions WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get composition: %w", err)
	}
	return rec, nil
}

// List returns the most recent compositions, newest first. A non-positive
// limit returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := "SELECT " + recordColumns + " FROM compositions ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compositions: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan composition: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored compositions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(*) FROM compositions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count compositions: %w", err)
	}
	return n, nil
}

// Exports returns the export attempts for a composition, oldest first.
func (s *Store) Exports(ctx context.Context, compositionID string) ([]*Export, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, composition_id, output_path, status, error_message, created_at
         FROM exports WHERE composition_id = ? ORDER BY id`, compositionID)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var exports []*Export
	for rows.Next() {
		var (
			exp        Export
			outputPath sql.NullString
			status     string
			message    sql.NullString
			createdRaw string
		)
		if err := rows.Scan(&exp.ID, &exp.CompositionID, &outputPath, &status, &message, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exp.OutputPath = outputPath.String
		exp.Status = ExportStatus(status)
		exp.ErrorMessage = message.String
		if created, err := parseTimeString(createdRaw); err == nil {
			exp.CreatedAt = created
		}
		exports = append(exports, &exp)
	}
	return exports, rows.Err()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		rec        Record
		audioRef   sql.NullString
		visualRef  sql.NullString
		degraded   int64
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.Script,
		&rec.SegmentCount,
		&audioRef,
		&rec.VisualKind,
		&visualRef,
		&rec.FPS,
		&rec.Seconds,
		&rec.Frames,
		&degraded,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	rec.AudioRef = audioRef.String
	rec.VisualRef = visualRef.String
	rec.Degraded = degraded != 0
	if created, err := parseTimeString(createdRaw); err == nil {
		rec.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		rec.UpdatedAt = updated
	}
	return &rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

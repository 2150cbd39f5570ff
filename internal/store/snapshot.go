package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no snapshot exists under the given name
// or id.
var ErrNotFound = errors.New("store: snapshot not found")

// SnapshotRecord is one stored snapshot row. Payload is the wire-encoded
// graph; Fingerprint and ClassCount are recorded at save time so listings
// can report them without decoding.
type SnapshotRecord struct {
	ID          string
	Name        string
	CreatedSeq  int64
	Fingerprint string
	ClassCount  int
	Payload     []byte
}

// SaveSnapshot inserts a snapshot under the given name and returns its
// UUIDv7 id. Saving the same name again creates a new row; LoadSnapshot
// returns the latest.
func (s *Store) SaveSnapshot(ctx context.Context, name string, payload []byte, fingerprint string, classCount int) (string, error) {
	if name == "" {
		return "", fmt.Errorf("save snapshot: name must not be empty")
	}

	id := uuid.Must(uuid.NewV7()).String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, created_seq, fingerprint, class_count, payload)
		VALUES (?, ?, (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM snapshots), ?, ?, ?)
	`,
		id,
		name,
		fingerprint,
		classCount,
		payload,
	)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: %w", name, err)
	}

	return id, nil
}

// LoadSnapshot returns the most recently saved snapshot under name.
func (s *Store) LoadSnapshot(ctx context.Context, name string) (*SnapshotRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_seq, fingerprint, class_count, payload
		FROM snapshots
		WHERE name = ?
		ORDER BY created_seq DESC, id DESC
		LIMIT 1
	`, name)

	rec, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return rec, nil
}

// LoadSnapshotByID returns the snapshot with the exact id.
func (s *Store) LoadSnapshotByID(ctx context.Context, id string) (*SnapshotRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_seq, fingerprint, class_count, payload
		FROM snapshots
		WHERE id = ?
	`, id)

	rec, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	return rec, nil
}

// ListSnapshots returns all snapshots in insertion order. Payloads are
// omitted; load by name or id for the blob.
func (s *Store) ListSnapshots(ctx context.Context) ([]SnapshotRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_seq, fingerprint, class_count
		FROM snapshots
		ORDER BY created_seq ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedSeq, &rec.Fingerprint, &rec.ClassCount); err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	return records, nil
}

func scanSnapshot(row *sql.Row) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	if err := row.Scan(&rec.ID, &rec.Name, &rec.CreatedSeq, &rec.Fingerprint, &rec.ClassCount, &rec.Payload); err != nil {
		return nil, err
	}
	return &rec, nil
}

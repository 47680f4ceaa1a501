package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BallRecord is a stored custom ball payload.
type BallRecord struct {
	ID        string
	Name      string
	Payload   []byte // Encoded image or data URL, exactly as added
	CreatedAt time.Time
}

// SaveBall inserts or replaces a custom ball.
func (s *Store) SaveBall(rec BallRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO custom_balls (id, name, payload) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, payload = excluded.payload`,
		rec.ID, rec.Name, rec.Payload,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save ball: %w", err)
	}
	return nil
}

// DeleteBall removes a custom ball. It reports whether a row was deleted.
func (s *Store) DeleteBall(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM custom_balls WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete ball: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// Ball retrieves a custom ball by id. Returns nil if it does not exist.
func (s *Store) Ball(id string) (*BallRecord, error) {
	var rec BallRecord
	var createdAt any

	err := s.db.QueryRow(
		"SELECT id, name, payload, created_at FROM custom_balls WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Payload, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ball: %w", err)
	}

	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// ListBalls returns every stored ball in insertion order, without payloads.
func (s *Store) ListBalls() ([]BallRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, name, created_at
		 FROM custom_balls
		 ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query balls: %w", err)
	}
	defer rows.Close()

	var records []BallRecord
	for rows.Next() {
		var rec BallRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

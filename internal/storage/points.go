package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pongpong/internal/games/pong"
)

// PointEntry is one row of the point log.
type PointEntry struct {
	ID            int64
	SessionID     string
	Scorer        string // "left" or "right"
	Score1        int
	Score2        int
	Hits          int
	Disintegrated bool
	Clock         time.Duration // Game time of the point
	CreatedAt     time.Time
}

// PointStats summarizes a session's point log.
type PointStats struct {
	Points        int
	LongestRally  int
	Disintegrated int // Points scored with a fully disintegrated ball
	AvgRally      float64
}

// SavePoint appends an entry to the point log and returns its id.
func (s *Store) SavePoint(e PointEntry) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO points (session_id, scorer, score1, score2, hits, disintegrated, clock_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Scorer, e.Score1, e.Score2, e.Hits, e.Disintegrated, e.Clock.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save point: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Points returns the most recent points of a session, newest first.
func (s *Store) Points(sessionID string, limit int) ([]PointEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, scorer, score1, score2, hits, disintegrated, clock_ms, created_at
		 FROM points
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query points: %w", err)
	}
	defer rows.Close()

	var entries []PointEntry
	for rows.Next() {
		var e PointEntry
		var clockMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Scorer, &e.Score1, &e.Score2,
			&e.Hits, &e.Disintegrated, &clockMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Clock = time.Duration(clockMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PointStats aggregates the point log of a session.
func (s *Store) PointStats(sessionID string) (*PointStats, error) {
	stats := &PointStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(hits), 0), COALESCE(SUM(disintegrated), 0), COALESCE(AVG(hits), 0)
		 FROM points WHERE session_id = ?`,
		sessionID,
	).Scan(&stats.Points, &stats.LongestRally, &stats.Disintegrated, &stats.AvgRally)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get point stats: %w", err)
	}
	return stats, nil
}

// ClearPoints deletes a session's point log.
func (s *Store) ClearPoints(sessionID string) error {
	_, err := s.db.Exec("DELETE FROM points WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear points: %w", err)
	}
	return nil
}

// PointLog records the points of one game session.
type PointLog struct {
	store     *Store
	sessionID string
}

// PointLog returns the recorder for sessionID.
func (s *Store) PointLog(sessionID string) *PointLog {
	return &PointLog{store: s, sessionID: sessionID}
}

// SessionID returns the session the log records for.
func (l *PointLog) SessionID() string {
	return l.sessionID
}

// RecordPoint implements pong.PointRecorder.
func (l *PointLog) RecordPoint(p pong.PointRecord) error {
	_, err := l.store.SavePoint(PointEntry{
		SessionID:     l.sessionID,
		Scorer:        p.Scorer.String(),
		Score1:        p.Score.Player1,
		Score2:        p.Score.Player2,
		Hits:          p.Hits,
		Disintegrated: p.Disintegrated,
		Clock:         p.Clock,
	})
	return err
}

// Recent returns the latest points of the session, newest first.
func (l *PointLog) Recent(limit int) ([]PointEntry, error) {
	return l.store.Points(l.sessionID, limit)
}

// Stats summarizes the session's points.
func (l *PointLog) Stats() (*PointStats, error) {
	return l.store.PointStats(l.sessionID)
}

// Clear empties the session's log.
func (l *PointLog) Clear() error {
	return l.store.ClearPoints(l.sessionID)
}

// Ensure PointLog implements pong.PointRecorder
var _ pong.PointRecorder = (*PointLog)(nil)

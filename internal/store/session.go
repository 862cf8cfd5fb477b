package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Mode identifies which tracking variant a session ran.
type Mode string

const (
	// ModeHand is a hand-tracking session.
	ModeHand Mode = "hand"
	// ModeHolistic is a holistic-tracking session.
	ModeHolistic Mode = "holistic"
)

// Session records one demo run: which module was loaded, with which graph,
// and how many frames it processed.
type Session struct {
	ID         string
	Mode       Mode
	ModulePath string
	GraphPath  string
	StartedAt  time.Time
	EndedAt    *time.Time
	Frames     int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session.
func (r *SessionRepository) Create(sess *Session) error {
	sess.StartedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, mode, module_path, graph_path, started_at, frames)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, string(sess.Mode), sess.ModulePath, sess.GraphPath, sess.StartedAt, sess.Frames,
	)
	return err
}

// End marks a session finished and records its final frame count.
func (r *SessionRepository) End(id string, frames int) error {
	now := time.Now()
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ? WHERE id = ?`,
		now, frames, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var mode string
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, mode, module_path, graph_path, started_at, ended_at, frames
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &mode, &sess.ModulePath, &sess.GraphPath, &sess.StartedAt, &endedAt, &sess.Frames)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sess.Mode = Mode(mode)
	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, mode, module_path, graph_path, started_at, ended_at, frames
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var mode string
		var endedAt sql.NullTime

		if err := rows.Scan(&sess.ID, &mode, &sess.ModulePath, &sess.GraphPath,
			&sess.StartedAt, &endedAt, &sess.Frames); err != nil {
			return nil, err
		}

		sess.Mode = Mode(mode)
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Delete removes a session and, via cascade, its recorded detections.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

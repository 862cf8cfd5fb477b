package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ayusman/mudra/trackapi"
)

// Detection records the classification result of one processed frame.
type Detection struct {
	ID        int64
	SessionID string
	Frame     int
	HandCount int
	Codes     []trackapi.GestureCode
	CreatedAt time.Time
}

// DetectionRepository provides access to recorded detections.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// Add records one detection. Codes are stored as a JSON array.
func (r *DetectionRepository) Add(d *Detection) error {
	codes := d.Codes
	if codes == nil {
		codes = []trackapi.GestureCode{}
	}
	data, err := json.Marshal(codes)
	if err != nil {
		return err
	}

	d.CreatedAt = time.Now()
	result, err := r.db.Exec(
		`INSERT INTO detections (session_id, frame_index, hand_count, codes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.SessionID, d.Frame, d.HandCount, string(data), d.CreatedAt,
	)
	if err != nil {
		return err
	}

	d.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves all detections for a session in frame order.
func (r *DetectionRepository) ListBySession(sessionID string) ([]*Detection, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, frame_index, hand_count, codes, created_at
		 FROM detections WHERE session_id = ? ORDER BY frame_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []*Detection
	for rows.Next() {
		d := &Detection{}
		var codes string

		if err := rows.Scan(&d.ID, &d.SessionID, &d.Frame, &d.HandCount, &codes, &d.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(codes), &d.Codes); err != nil {
			return nil, err
		}
		detections = append(detections, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return detections, nil
}

// CountBySession returns how many detections a session recorded.
func (r *DetectionRepository) CountBySession(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM detections WHERE session_id = ?`,
		sessionID,
	).Scan(&count)
	return count, err
}

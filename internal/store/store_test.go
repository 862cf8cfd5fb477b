package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/trackapi"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSession(t *testing.T, s *Store) *Session {
	t.Helper()

	sess := &Session{
		ID:         uuid.New().String(),
		Mode:       ModeHand,
		ModulePath: "modules/hand_tracking.so",
		GraphPath:  "graphs/hand_tracking_desktop_live.pbtxt",
	}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return sess
}

func TestSessionRepository(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		s := newTestStore(t)
		sess := newTestSession(t, s)

		got, err := s.Sessions().GetByID(sess.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Mode != ModeHand {
			t.Errorf("Expected mode hand, got %s", got.Mode)
		}
		if got.ModulePath != sess.ModulePath {
			t.Errorf("Expected module path %s, got %s", sess.ModulePath, got.ModulePath)
		}
		if got.EndedAt != nil {
			t.Error("Expected open session to have no end time")
		}
	})

	t.Run("get missing", func(t *testing.T) {
		s := newTestStore(t)

		if _, err := s.Sessions().GetByID("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("end records frames", func(t *testing.T) {
		s := newTestStore(t)
		sess := newTestSession(t, s)

		if err := s.Sessions().End(sess.ID, 120); err != nil {
			t.Fatalf("End failed: %v", err)
		}

		got, err := s.Sessions().GetByID(sess.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Frames != 120 {
			t.Errorf("Expected 120 frames, got %d", got.Frames)
		}
		if got.EndedAt == nil {
			t.Error("Expected end time to be set")
		}
	})

	t.Run("end missing", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.Sessions().End("nope", 0); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		s := newTestStore(t)
		first := newTestSession(t, s)
		second := newTestSession(t, s)

		sessions, err := s.Sessions().List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("Expected 2 sessions, got %d", len(sessions))
		}
		// Equal timestamps are possible at this resolution; just require
		// both to be present.
		ids := map[string]bool{sessions[0].ID: true, sessions[1].ID: true}
		if !ids[first.ID] || !ids[second.ID] {
			t.Error("Expected both sessions in the listing")
		}
	})

	t.Run("delete cascades to detections", func(t *testing.T) {
		s := newTestStore(t)
		sess := newTestSession(t, s)

		err := s.Detections().Add(&Detection{
			SessionID: sess.ID,
			Frame:     0,
			HandCount: 1,
			Codes:     []trackapi.GestureCode{trackapi.GestureFive},
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		if err := s.Sessions().Delete(sess.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		count, err := s.Detections().CountBySession(sess.ID)
		if err != nil {
			t.Fatalf("CountBySession failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected detections to cascade on delete, got %d", count)
		}
	})
}

func TestDetectionRepository(t *testing.T) {
	t.Run("add and list round-trip", func(t *testing.T) {
		s := newTestStore(t)
		sess := newTestSession(t, s)

		want := [][]trackapi.GestureCode{
			{trackapi.GestureFive},
			{trackapi.GestureFist, trackapi.GestureTwo},
			nil,
		}
		for i, codes := range want {
			err := s.Detections().Add(&Detection{
				SessionID: sess.ID,
				Frame:     i,
				HandCount: len(codes),
				Codes:     codes,
			})
			if err != nil {
				t.Fatalf("Add %d failed: %v", i, err)
			}
		}

		detections, err := s.Detections().ListBySession(sess.ID)
		if err != nil {
			t.Fatalf("ListBySession failed: %v", err)
		}
		if len(detections) != len(want) {
			t.Fatalf("Expected %d detections, got %d", len(want), len(detections))
		}

		for i, d := range detections {
			if d.Frame != i {
				t.Errorf("Expected frame order, got frame %d at position %d", d.Frame, i)
			}
			if len(d.Codes) != len(want[i]) {
				t.Errorf("Frame %d: expected %d codes, got %d", i, len(want[i]), len(d.Codes))
				continue
			}
			for j, code := range want[i] {
				if d.Codes[j] != code {
					t.Errorf("Frame %d code %d: expected %s, got %s", i, j, code, d.Codes[j])
				}
			}
		}
	})

	t.Run("count", func(t *testing.T) {
		s := newTestStore(t)
		sess := newTestSession(t, s)

		for i := 0; i < 3; i++ {
			err := s.Detections().Add(&Detection{SessionID: sess.ID, Frame: i})
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		count, err := s.Detections().CountBySession(sess.ID)
		if err != nil {
			t.Fatalf("CountBySession failed: %v", err)
		}
		if count != 3 {
			t.Errorf("Expected 3 detections, got %d", count)
		}
	})

	t.Run("rejects unknown session", func(t *testing.T) {
		s := newTestStore(t)

		err := s.Detections().Add(&Detection{SessionID: "nope", Frame: 0})
		if err == nil {
			t.Error("Expected foreign key violation for unknown session")
		}
	})
}

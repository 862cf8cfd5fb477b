package app

import (
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/binding"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/trackapi"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestCamera(t *testing.T, n int) *capture.MockCamera {
	t.Helper()

	frames := capture.SolidFrames(n, 64, 48)
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return capture.NewMockCamera(frames, true)
}

func newHandConfig(t *testing.T, module *binding.MockModule) Config {
	t.Helper()

	host := binding.NewMockHost()
	host.Register(MockModulePath, module)
	return Config{
		Host:       host,
		Mode:       store.ModeHand,
		ModulePath: MockModulePath,
		GraphPath:  "graph.pbtxt",
		Camera:     newTestCamera(t, 3),
	}
}

func TestAppLifecycle(t *testing.T) {
	t.Run("start and stop", func(t *testing.T) {
		module := binding.NewMockHandModule()
		application := New(newHandConfig(t, module))

		if err := application.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if !application.Camera().IsOpen() {
			t.Error("Expected camera to be open")
		}
		if !application.HandTracker().Initialized() {
			t.Error("Expected tracker to be initialized")
		}

		application.Stop()
		if application.Camera().IsOpen() {
			t.Error("Expected camera to be closed")
		}
		if module.ReleaseCalls() != 1 {
			t.Errorf("Expected 1 release call, got %d", module.ReleaseCalls())
		}
	})

	t.Run("init failure tears down", func(t *testing.T) {
		module := binding.NewMockHandModule()
		module.FailInit(true)
		application := New(newHandConfig(t, module))

		if err := application.Start(); err == nil {
			t.Fatal("Expected Start to fail")
		}
		if application.Camera().IsOpen() {
			t.Error("Expected camera to stay closed after failed start")
		}
	})

	t.Run("mock fallback without module path", func(t *testing.T) {
		application := New(Config{
			GraphPath: "graph.pbtxt",
			Camera:    newTestCamera(t, 1),
		})

		if err := application.Start(); err != nil {
			t.Fatalf("Start with fallback failed: %v", err)
		}
		defer application.Stop()

		if !application.HandTracker().Initialized() {
			t.Error("Expected fallback module to initialize")
		}
	})
}

func TestAppProcessFrame(t *testing.T) {
	t.Run("detects and annotates", func(t *testing.T) {
		module := binding.NewMockHandModule()
		application := New(newHandConfig(t, module))

		if err := application.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer application.Stop()

		mat, err := application.ProcessFrame()
		if err != nil {
			t.Fatalf("ProcessFrame failed: %v", err)
		}
		mat.Close()

		if module.DetectCalls() != 1 {
			t.Errorf("Expected 1 detect call, got %d", module.DetectCalls())
		}

		points, codes := application.LastResults()
		if len(points) != trackapi.CountOneHand {
			t.Errorf("Expected %d landmarks, got %d", trackapi.CountOneHand, len(points))
		}
		if len(codes) != 1 || codes[0] != trackapi.GestureFive {
			t.Errorf("Expected [Five], got %v", codes)
		}
		if application.FrameCount() != 1 {
			t.Errorf("Expected 1 processed frame, got %d", application.FrameCount())
		}
	})

	t.Run("disabled skips detection", func(t *testing.T) {
		module := binding.NewMockHandModule()
		application := New(newHandConfig(t, module))

		if err := application.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer application.Stop()

		application.SetEnabled(false)
		mat, err := application.ProcessFrame()
		if err != nil {
			t.Fatalf("ProcessFrame failed: %v", err)
		}
		mat.Close()

		if module.DetectCalls() != 0 {
			t.Errorf("Expected no detect calls while disabled, got %d", module.DetectCalls())
		}
		if application.FrameCount() != 0 {
			t.Errorf("Expected no frames counted while disabled, got %d", application.FrameCount())
		}
	})

	t.Run("failed detection returns the frame", func(t *testing.T) {
		module := binding.NewMockHandModule()
		application := New(newHandConfig(t, module))

		if err := application.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer application.Stop()

		module.FailDetect(true)
		mat, err := application.ProcessFrame()
		if err != nil {
			t.Fatalf("Expected frame-skip policy, got error: %v", err)
		}
		if mat == nil || mat.Empty() {
			t.Fatal("Expected the unannotated frame back")
		}
		mat.Close()
	})

	t.Run("gesture notify fires", func(t *testing.T) {
		module := binding.NewMockHandModule()
		module.SetGestures(trackapi.GestureFist)
		application := New(newHandConfig(t, module))

		var label string
		application.SetGestureNotify(func(l string) { label = l })

		if err := application.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer application.Stop()

		mat, err := application.ProcessFrame()
		if err != nil {
			t.Fatalf("ProcessFrame failed: %v", err)
		}
		mat.Close()

		if label != "Fist" {
			t.Errorf("Expected notify label Fist, got %q", label)
		}
	})
}

func TestAppHolisticMode(t *testing.T) {
	module := binding.NewMockHolisticModule()
	host := binding.NewMockHost()
	host.Register(MockModulePath, module)

	application := New(Config{
		Host:       host,
		Mode:       store.ModeHolistic,
		ModulePath: MockModulePath,
		GraphPath:  "graph.pbtxt",
		Flags:      trackapi.FeatureFlags{Face: true, Pose: true, Hands: true, UpDown: true},
		Camera:     newTestCamera(t, 2),
	})

	if err := application.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer application.Stop()

	mat, err := application.ProcessFrame()
	if err != nil {
		t.Fatalf("ProcessFrame failed: %v", err)
	}
	mat.Close()

	result := application.LastHolistic()
	if result.RightArm != trackapi.ArmUp {
		t.Errorf("Expected right arm up, got %s", result.RightArm)
	}
	if result.RightGesture != trackapi.GestureFive {
		t.Errorf("Expected right gesture Five, got %s", result.RightGesture)
	}
}

func TestAppSessionRecording(t *testing.T) {
	s := newTestStore(t)
	module := binding.NewMockHandModule()
	config := newHandConfig(t, module)
	config.Store = s
	application := New(config)

	if err := application.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	sessionID := application.SessionID()
	if sessionID == "" {
		t.Fatal("Expected a session to be recorded")
	}

	for i := 0; i < 3; i++ {
		mat, err := application.ProcessFrame()
		if err != nil {
			t.Fatalf("ProcessFrame %d failed: %v", i, err)
		}
		mat.Close()
	}

	application.Stop()

	sess, err := s.Sessions().GetByID(sessionID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if sess.Mode != store.ModeHand {
		t.Errorf("Expected hand mode, got %s", sess.Mode)
	}
	if sess.Frames != 3 {
		t.Errorf("Expected 3 frames recorded, got %d", sess.Frames)
	}
	if sess.EndedAt == nil {
		t.Error("Expected session to be ended")
	}

	detections, err := s.Detections().ListBySession(sessionID)
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(detections) != 3 {
		t.Fatalf("Expected 3 detections, got %d", len(detections))
	}
	for i, d := range detections {
		if d.Frame != i {
			t.Errorf("Expected frame %d at position %d, got %d", i, i, d.Frame)
		}
		if len(d.Codes) != 1 || d.Codes[0] != trackapi.GestureFive {
			t.Errorf("Frame %d: expected [Five], got %v", i, d.Codes)
		}
	}
}

// Run must stop promptly when the stop channel closes.
func TestAppRun(t *testing.T) {
	module := binding.NewMockHandModule()
	application := New(newHandConfig(t, module))

	if err := application.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer application.Stop()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		application.Run(stop)
		close(done)
	}()

	close(stop)
	<-done

	// Double stop is a no-op.
	application.Stop()
	application.Stop()
}

// Package app wires the tracking module binding, camera capture, overlay
// rendering and session store into the mudra demo harness.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/binding"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/trackapi"
)

// MockModulePath is the pseudo-path the built-in mock module is registered
// under when no real tracking module is available.
const MockModulePath = "builtin:mock"

// Config holds configuration options for the application.
type Config struct {
	Store      *store.Store
	Host       binding.Host
	Mode       store.Mode
	ModulePath string
	GraphPath  string
	CameraID   int
	Flags      trackapi.FeatureFlags

	// Camera overrides the default device camera, for tests.
	Camera capture.Camera
}

// App drives the demo: it owns the module lifecycle, pushes camera frames
// into the loaded module, and collects the results its callbacks deliver.
type App struct {
	config   Config
	camera   capture.Camera
	hand     *binding.HandTracker
	holistic *binding.HolisticTracker

	mu         sync.RWMutex
	enabled    bool
	running    bool
	frameIndex int
	sessionID  string

	lastPoints   []trackapi.Point
	lastCodes    []trackapi.GestureCode
	lastHolistic trackapi.HolisticResult
	onGesture    func(label string)
}

// New creates an App for the given configuration. When no module path is
// configured, the built-in mock module stands in so the demo still runs
// end to end without the prebuilt tracker.
func New(config Config) *App {
	if config.Mode == "" {
		config.Mode = store.ModeHand
	}
	if config.GraphPath == "" {
		config.GraphPath = "builtin:graph"
	}
	if config.ModulePath == "" {
		config.Host, config.ModulePath = mockFallback(config.Mode)
		log.Println("No tracking module found, using built-in mock module")
	}

	a := &App{
		config:  config,
		camera:  config.Camera,
		enabled: true,
	}
	if a.camera == nil {
		a.camera = capture.NewCamera(config.CameraID)
	}

	switch config.Mode {
	case store.ModeHolistic:
		a.holistic = binding.NewHolisticTracker(config.Host)
	default:
		a.hand = binding.NewHandTracker(config.Host)
	}

	return a
}

func mockFallback(mode store.Mode) (binding.Host, string) {
	host := binding.NewMockHost()
	if mode == store.ModeHolistic {
		host.Register(MockModulePath, binding.NewMockHolisticModule())
	} else {
		host.Register(MockModulePath, binding.NewMockHandModule())
	}
	return host, MockModulePath
}

// Start loads the module, resolves its entry points, initializes it,
// registers the result callbacks, and opens the camera. On any failure the
// pieces already brought up are torn down again.
func (a *App) Start() error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	if err := a.startTracker(); err != nil {
		return err
	}

	if err := a.camera.Open(); err != nil {
		a.stopTracker()
		return fmt.Errorf("open camera: %w", err)
	}

	a.mu.Lock()
	a.running = true
	a.frameIndex = 0
	a.mu.Unlock()

	if err := a.beginSession(); err != nil {
		log.Printf("Failed to record session: %v", err)
	}

	log.Printf("Tracking started (mode=%s, module=%s)", a.config.Mode, a.config.ModulePath)
	return nil
}

func (a *App) startTracker() error {
	switch a.config.Mode {
	case store.ModeHolistic:
		if err := a.holistic.Load(a.config.ModulePath); err != nil {
			return err
		}
		if err := a.holistic.ResolveAll(); err != nil {
			a.holistic.Unload()
			return err
		}
		if err := a.holistic.Init(a.config.GraphPath, a.config.Flags); err != nil {
			a.holistic.Unload()
			return err
		}
		return nil

	default:
		if err := a.hand.Load(a.config.ModulePath); err != nil {
			return err
		}
		if err := a.hand.ResolveAll(); err != nil {
			a.hand.Unload()
			return err
		}
		if err := a.hand.Init(a.config.GraphPath); err != nil {
			a.hand.Unload()
			return err
		}
		if err := a.hand.OnLandmarks(a.handleLandmarks); err != nil {
			a.stopTracker()
			return err
		}
		if err := a.hand.OnGestures(a.handleGestures); err != nil {
			a.stopTracker()
			return err
		}
		return nil
	}
}

func (a *App) stopTracker() {
	switch a.config.Mode {
	case store.ModeHolistic:
		if a.holistic.Initialized() {
			if err := a.holistic.Release(); err != nil {
				log.Printf("Error releasing module: %v", err)
			}
		}
		if err := a.holistic.Unload(); err != nil {
			log.Printf("Error unloading module: %v", err)
		}
	default:
		if a.hand.Initialized() {
			if err := a.hand.Release(); err != nil {
				log.Printf("Error releasing module: %v", err)
			}
		}
		if err := a.hand.Unload(); err != nil {
			log.Printf("Error unloading module: %v", err)
		}
	}
}

// Stop releases the module, unloads it, and closes the camera.
func (a *App) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	frames := a.frameIndex
	a.mu.Unlock()

	a.stopTracker()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.endSession(frames)
	log.Println("Tracking stopped")
}

// SetEnabled enables or disables frame processing without tearing down the
// module; disabled frames are displayed unannotated.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetGestureNotify installs a listener for classification labels, used by
// the tray menu. The listener may be called from the module's callback
// goroutine.
func (a *App) SetGestureNotify(fn func(label string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onGesture = fn
}

// LastResults returns the most recent landmark batch and gesture codes
// delivered by the module.
func (a *App) LastResults() ([]trackapi.Point, []trackapi.GestureCode) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastPoints, a.lastCodes
}

// LastHolistic returns the most recent holistic classification.
func (a *App) LastHolistic() trackapi.HolisticResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastHolistic
}

// SessionID returns the recorded session ID, or "" when no store is
// configured.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// HandTracker returns the hand tracker, or nil in holistic mode.
func (a *App) HandTracker() *binding.HandTracker {
	return a.hand
}

// HolisticTracker returns the holistic tracker, or nil in hand mode.
func (a *App) HolisticTracker() *binding.HolisticTracker {
	return a.holistic
}

// handleLandmarks receives per-frame landmark batches from the module.
// The batch is already a copy owned by this side of the boundary.
func (a *App) handleLandmarks(frameIndex int, points []trackapi.Point) {
	a.mu.Lock()
	a.lastPoints = points
	a.mu.Unlock()
}

// handleGestures receives per-frame classifications from the module.
func (a *App) handleGestures(frameIndex int, codes []trackapi.GestureCode) {
	a.mu.Lock()
	a.lastCodes = codes
	notify := a.onGesture
	a.mu.Unlock()

	if notify != nil && len(codes) > 0 {
		notify(codes[0].String())
	}
	a.recordDetection(frameIndex, codes)
}

func (a *App) beginSession() error {
	if a.config.Store == nil {
		return nil
	}

	sess := &store.Session{
		ID:         uuid.New().String(),
		Mode:       a.config.Mode,
		ModulePath: a.config.ModulePath,
		GraphPath:  a.config.GraphPath,
	}
	if err := a.config.Store.Sessions().Create(sess); err != nil {
		return err
	}

	a.mu.Lock()
	a.sessionID = sess.ID
	a.mu.Unlock()
	return nil
}

func (a *App) endSession(frames int) {
	if a.config.Store == nil {
		return
	}

	a.mu.RLock()
	id := a.sessionID
	a.mu.RUnlock()
	if id == "" {
		return
	}

	if err := a.config.Store.Sessions().End(id, frames); err != nil {
		log.Printf("Failed to end session: %v", err)
	}
}

func (a *App) recordDetection(frameIndex int, codes []trackapi.GestureCode) {
	if a.config.Store == nil {
		return
	}

	a.mu.RLock()
	id := a.sessionID
	a.mu.RUnlock()
	if id == "" {
		return
	}

	d := &store.Detection{
		SessionID: id,
		Frame:     frameIndex,
		HandCount: len(codes),
		Codes:     codes,
	}
	if err := a.config.Store.Detections().Add(d); err != nil {
		log.Printf("Failed to record detection: %v", err)
	}
}

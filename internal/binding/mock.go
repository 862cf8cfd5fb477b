package binding

import (
	"fmt"
	"sync"

	"github.com/ayusman/mudra/trackapi"
)

// MockHost is a test implementation of Host serving pre-registered modules
// by path. It also backs the demo fallback when no module file is present.
type MockHost struct {
	mu      sync.Mutex
	modules map[string]Module
}

// NewMockHost creates an empty MockHost.
func NewMockHost() *MockHost {
	return &MockHost{
		modules: make(map[string]Module),
	}
}

// Register makes a module available under the given path.
func (h *MockHost) Register(path string, module Module) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules[path] = module
}

// Open returns the module registered under path, or ErrModuleNotFound.
func (h *MockHost) Open(path string) (Module, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	module, ok := h.modules[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrModuleNotFound)
	}
	return module, nil
}

// MockModule is an in-memory tracking module implementing the full export
// behavior with synthetic results. Callbacks dispatch synchronously inside
// the detect call, on the caller's goroutine.
type MockModule struct {
	mu      sync.Mutex
	symbols map[string]any

	initialized bool
	graphPath   string
	flags       trackapi.FeatureFlags
	landmarksCb trackapi.LandmarksCallback
	gesturesCb  trackapi.ResultsCallback

	hands          int
	gestures       []trackapi.GestureCode
	handResult     trackapi.HandResult
	holisticResult trackapi.HolisticResult

	failInit     bool
	failRegister bool
	failDetect   bool
	failRelease  bool

	detectCalls  int
	releaseCalls int
}

// NewMockHandModule creates a mock exporting the hand-tracking symbol set.
// It reports one synthetic hand with a Five gesture by default.
func NewMockHandModule() *MockModule {
	m := &MockModule{
		hands:    1,
		gestures: []trackapi.GestureCode{trackapi.GestureFive},
		handResult: trackapi.HandResult{
			Gestures: [2]trackapi.GestureCode{trackapi.GestureFive, trackapi.GestureUnknown},
			Arms:     [2]trackapi.ArmCode{trackapi.ArmUnknown, trackapi.ArmUnknown},
		},
	}
	m.symbols = map[string]any{
		trackapi.SymHandInit:              m.init,
		trackapi.SymHandRegisterLandmarks: m.registerLandmarks,
		trackapi.SymHandRegisterGestures:  m.registerGestures,
		trackapi.SymHandDetectFrame:       m.detectFrame,
		trackapi.SymHandDetectFrameDirect: m.detectFrameDirect,
		trackapi.SymHandDetectVideo:       m.detectVideo,
		trackapi.SymHandRelease:           m.release,
	}
	return m
}

// NewMockHolisticModule creates a mock exporting the holistic symbol set.
func NewMockHolisticModule() *MockModule {
	m := &MockModule{
		holisticResult: trackapi.HolisticResult{
			LeftArm:      trackapi.ArmDown,
			RightArm:     trackapi.ArmUp,
			LeftGesture:  trackapi.GestureUnknown,
			RightGesture: trackapi.GestureFive,
		},
	}
	m.symbols = map[string]any{
		trackapi.SymHolisticInit:              m.holisticInit,
		trackapi.SymHolisticDetectFrame:       m.detectFrame,
		trackapi.SymHolisticDetectFrameDirect: m.holisticDetectFrameDirect,
		trackapi.SymHolisticDetectVideo:       m.detectVideo,
		trackapi.SymHolisticRelease:           m.release,
	}
	return m
}

// Lookup resolves an exported symbol by name.
func (m *MockModule) Lookup(name string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sym, ok := m.symbols[name]
	if !ok {
		return nil, fmt.Errorf("symbol %q not found in mock module", name)
	}
	return sym, nil
}

// RemoveSymbol deletes an export so tests can exercise resolution failures.
func (m *MockModule) RemoveSymbol(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.symbols, name)
}

// SetSymbol overrides an export, e.g. with a wrongly typed value.
func (m *MockModule) SetSymbol(name string, sym any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols[name] = sym
}

// SetHands sets how many synthetic hands a detect call reports (0, 1 or 2).
func (m *MockModule) SetHands(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = n
}

// SetGestures sets the classification codes reported per detected hand.
func (m *MockModule) SetGestures(codes ...trackapi.GestureCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gestures = codes
}

// SetHolisticResult sets the direct result of holistic detection.
func (m *MockModule) SetHolisticResult(r trackapi.HolisticResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holisticResult = r
}

// FailInit makes the init export report failure.
func (m *MockModule) FailInit(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInit = fail
}

// FailRegistration makes the registration exports reject handlers.
func (m *MockModule) FailRegistration(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRegister = fail
}

// FailDetect makes the detect exports report failure.
func (m *MockModule) FailDetect(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDetect = fail
}

// FailRelease makes the release export report failure.
func (m *MockModule) FailRelease(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRelease = fail
}

// DetectCalls returns how many detect invocations the module has seen.
func (m *MockModule) DetectCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detectCalls
}

// ReleaseCalls returns how many release invocations the module has seen.
func (m *MockModule) ReleaseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releaseCalls
}

// GraphPath returns the graph path passed to the last init call.
func (m *MockModule) GraphPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.graphPath
}

// Flags returns the feature flags passed to the last holistic init call.
func (m *MockModule) Flags() trackapi.FeatureFlags {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags
}

func (m *MockModule) init(graphPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInit || graphPath == "" {
		return false
	}
	m.graphPath = graphPath
	m.initialized = true
	return true
}

func (m *MockModule) holisticInit(graphPath string, flags trackapi.FeatureFlags) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInit || graphPath == "" {
		return false
	}
	m.graphPath = graphPath
	m.flags = flags
	m.initialized = true
	return true
}

// Registration is rejected until the module is initialized, mirroring the
// prebuilt module's behavior.
func (m *MockModule) registerLandmarks(cb trackapi.LandmarksCallback) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failRegister || !m.initialized {
		return false
	}
	m.landmarksCb = cb
	return true
}

func (m *MockModule) registerGestures(cb trackapi.ResultsCallback) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failRegister || !m.initialized {
		return false
	}
	m.gesturesCb = cb
	return true
}

func (m *MockModule) detectFrame(frameIndex, width, height int, pixels []byte) bool {
	m.mu.Lock()
	if !m.initialized || m.failDetect || width <= 0 || height <= 0 || len(pixels) < width*height*3 {
		m.mu.Unlock()
		return false
	}
	m.detectCalls++
	landmarksCb := m.landmarksCb
	gesturesCb := m.gesturesCb
	hands := m.hands
	codes := make([]trackapi.GestureCode, len(m.gestures))
	copy(codes, m.gestures)
	m.mu.Unlock()

	// Synchronous dispatch outside the lock; the real module may instead
	// call from an internal worker thread.
	if landmarksCb != nil {
		landmarksCb(frameIndex, syntheticPoints(hands))
	}
	if gesturesCb != nil && hands > 0 {
		if len(codes) > hands {
			codes = codes[:hands]
		}
		gesturesCb(frameIndex, codes)
	}
	return true
}

func (m *MockModule) detectFrameDirect(width, height int, pixels []byte) (trackapi.HandResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.failDetect || len(pixels) < width*height*3 {
		return trackapi.HandResult{}, false
	}
	m.detectCalls++
	return m.handResult, true
}

func (m *MockModule) holisticDetectFrameDirect(width, height int, pixels []byte, draw bool) (trackapi.HolisticResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.failDetect || len(pixels) < width*height*3 {
		return trackapi.HolisticResult{}, false
	}
	m.detectCalls++
	return m.holisticResult, true
}

func (m *MockModule) detectVideo(path string, show bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.failDetect || path == "" {
		return false
	}
	m.detectCalls++
	return true
}

func (m *MockModule) release() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseCalls++
	m.initialized = false
	return !m.failRelease
}

// syntheticPoints builds a normalized landmark batch for the given hand
// count, right hand first.
func syntheticPoints(hands int) []trackapi.Point {
	switch {
	case hands <= 0:
		return nil
	case hands == 1:
		return SyntheticHandPoints(0.55)
	default:
		points := SyntheticHandPoints(0.65)
		return append(points, SyntheticHandPoints(0.3)...)
	}
}

// SyntheticHandPoints returns a plausible open-palm landmark set centered
// horizontally on centerX, in normalized coordinates. Finger chains run
// from the wrist upward so topology drawing and extension checks behave
// like real detections.
func SyntheticHandPoints(centerX float64) []trackapi.Point {
	points := make([]trackapi.Point, trackapi.NumLandmarks)
	points[trackapi.Wrist] = trackapi.Point{X: centerX, Y: 0.85}

	// Per-finger base X offsets relative to the wrist, thumb to pinky.
	bases := []struct {
		start  int
		offset float64
	}{
		{trackapi.ThumbCMC, 0.10},
		{trackapi.IndexMCP, 0.05},
		{trackapi.MiddleMCP, 0.0},
		{trackapi.RingMCP, -0.05},
		{trackapi.PinkyMCP, -0.10},
	}

	for _, finger := range bases {
		for joint := 0; joint < 4; joint++ {
			points[finger.start+joint] = trackapi.Point{
				X: centerX + finger.offset,
				Y: 0.72 - 0.12*float64(joint),
			}
		}
	}

	return points
}

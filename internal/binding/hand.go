package binding

import (
	"sync"

	"github.com/ayusman/mudra/trackapi"
)

// handTable is the typed entry point table for a hand-tracking module,
// resolved once and immutable afterwards.
type handTable struct {
	init              func(string) bool
	registerLandmarks func(trackapi.LandmarksCallback) bool
	registerGestures  func(trackapi.ResultsCallback) bool
	detectFrame       func(int, int, int, []byte) bool
	detectFrameDirect func(int, int, []byte) (trackapi.HandResult, bool)
	detectVideo       func(string, bool) bool
	release           func() bool
}

// HandTracker binds the hand-tracking module's exports as typed local
// callables and routes its callbacks to caller-supplied handlers.
//
// Handlers run on whichever goroutine the module invokes them from, which
// may or may not be the goroutine calling DetectFrame; handler bodies must
// be safe for that and must not call back into the tracker.
type HandTracker struct {
	loader *Loader

	mu          sync.Mutex
	table       *handTable
	initialized bool
}

// NewHandTracker creates a tracker using the given host. A nil host selects
// the default plugin-backed host.
func NewHandTracker(host Host) *HandTracker {
	return &HandTracker{
		loader: NewLoader(host, trackapi.HandSymbols),
	}
}

// Load opens the hand-tracking module at the given path.
func (t *HandTracker) Load(path string) error {
	return t.loader.Load(path)
}

// ResolveAll resolves and type-checks every required export. On failure the
// tracker keeps no entry point table and every subsequent operation is
// rejected until a successful resolve.
func (t *HandTracker) ResolveAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.table = nil
	if err := t.loader.ResolveAll(); err != nil {
		return err
	}

	table := &handTable{}
	var err error
	if table.init, err = symbolAs[func(string) bool](t.loader, trackapi.SymHandInit); err != nil {
		return err
	}
	if table.registerLandmarks, err = symbolAs[func(trackapi.LandmarksCallback) bool](t.loader, trackapi.SymHandRegisterLandmarks); err != nil {
		return err
	}
	if table.registerGestures, err = symbolAs[func(trackapi.ResultsCallback) bool](t.loader, trackapi.SymHandRegisterGestures); err != nil {
		return err
	}
	if table.detectFrame, err = symbolAs[func(int, int, int, []byte) bool](t.loader, trackapi.SymHandDetectFrame); err != nil {
		return err
	}
	if table.detectFrameDirect, err = symbolAs[func(int, int, []byte) (trackapi.HandResult, bool)](t.loader, trackapi.SymHandDetectFrameDirect); err != nil {
		return err
	}
	if table.detectVideo, err = symbolAs[func(string, bool) bool](t.loader, trackapi.SymHandDetectVideo); err != nil {
		return err
	}
	if table.release, err = symbolAs[func() bool](t.loader, trackapi.SymHandRelease); err != nil {
		return err
	}

	t.table = table
	return nil
}

// Init calls the module's initialization entry point with the pipeline
// graph path. Failure reasons are internal to the module.
func (t *HandTracker) Init(graphPath string) error {
	t.mu.Lock()
	table := t.table
	t.mu.Unlock()

	if table == nil {
		return ErrNotResolved
	}
	if !table.init(graphPath) {
		return ErrInitFailed
	}

	t.mu.Lock()
	t.initialized = true
	t.mu.Unlock()
	return nil
}

// OnLandmarks registers a handler for per-frame landmark batches. The
// handler receives a fresh copy of the batch on every invocation, so it may
// retain the slice. Batch length is 0, 21 (one hand) or 42 (two hands,
// right hand at indices 0-20, left hand at 21-41).
func (t *HandTracker) OnLandmarks(handler trackapi.LandmarksCallback) error {
	t.mu.Lock()
	table := t.table
	t.mu.Unlock()

	if table == nil {
		return ErrNotResolved
	}

	trampoline := func(frameIndex int, points []trackapi.Point) {
		copied := make([]trackapi.Point, len(points))
		copy(copied, points)
		handler(frameIndex, copied)
	}
	if !table.registerLandmarks(trampoline) {
		return ErrRegistrationFailed
	}
	return nil
}

// OnGestures registers a handler for per-frame gesture classifications, one
// code per detected hand. The handler receives a fresh copy of the codes.
func (t *HandTracker) OnGestures(handler trackapi.ResultsCallback) error {
	t.mu.Lock()
	table := t.table
	t.mu.Unlock()

	if table == nil {
		return ErrNotResolved
	}

	trampoline := func(frameIndex int, codes []trackapi.GestureCode) {
		copied := make([]trackapi.GestureCode, len(codes))
		copy(copied, codes)
		handler(frameIndex, copied)
	}
	if !table.registerGestures(trampoline) {
		return ErrRegistrationFailed
	}
	return nil
}

// DetectFrame passes one frame to the module. The pixel buffer is an
// interleaved row-major image owned by the caller; it must stay valid and
// unmodified for the duration of the call, and the module must not retain
// it. Registered handlers fire before this returns when the module
// dispatches synchronously.
func (t *HandTracker) DetectFrame(frameIndex, width, height int, pixels []byte) error {
	table, err := t.detectTable()
	if err != nil {
		return err
	}
	if !table.detectFrame(frameIndex, width, height, pixels) {
		return ErrDetectionFailed
	}
	return nil
}

// DetectFrameDirect runs detection on one frame and returns the
// classification result without going through callbacks.
func (t *HandTracker) DetectFrameDirect(width, height int, pixels []byte) (trackapi.HandResult, error) {
	table, err := t.detectTable()
	if err != nil {
		return trackapi.HandResult{}, err
	}
	result, ok := table.detectFrameDirect(width, height, pixels)
	if !ok {
		return trackapi.HandResult{}, ErrDetectionFailed
	}
	return result, nil
}

// DetectVideo hands a whole video file to the module, which drives its own
// read loop and reports results through the registered callbacks.
func (t *HandTracker) DetectVideo(path string, show bool) error {
	table, err := t.detectTable()
	if err != nil {
		return err
	}
	if !table.detectVideo(path, show) {
		return ErrDetectionFailed
	}
	return nil
}

// Release calls the module's teardown entry point. The tracker leaves the
// initialized state even when the module reports failure, so a reload is
// always possible afterwards.
func (t *HandTracker) Release() error {
	t.mu.Lock()
	table := t.table
	initialized := t.initialized
	t.initialized = false
	t.mu.Unlock()

	if table == nil {
		return ErrNotResolved
	}
	if !initialized {
		return ErrNotInitialized
	}
	if !table.release() {
		return ErrReleaseFailed
	}
	return nil
}

// Unload drops the module handle and the entry point table. Safe to call
// whether or not Release was reached; afterwards every resolved callable is
// invalid and all operations fail until the next Load/ResolveAll.
func (t *HandTracker) Unload() error {
	t.mu.Lock()
	t.table = nil
	t.initialized = false
	t.mu.Unlock()
	return t.loader.Unload()
}

// Initialized reports whether the module accepted initialization and has
// not been released.
func (t *HandTracker) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

// Path returns the loaded module path, or "".
func (t *HandTracker) Path() string {
	return t.loader.Path()
}

func (t *HandTracker) detectTable() (*handTable, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.table == nil {
		return nil, ErrNotResolved
	}
	if !t.initialized {
		return nil, ErrNotInitialized
	}
	return t.table, nil
}

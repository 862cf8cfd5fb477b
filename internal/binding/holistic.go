package binding

import (
	"sync"

	"github.com/ayusman/mudra/trackapi"
)

// holisticTable is the typed entry point table for a holistic-tracking
// module. The holistic module reports through direct results only; it has
// no callback registration exports.
type holisticTable struct {
	init              func(string, trackapi.FeatureFlags) bool
	detectFrame       func(int, int, int, []byte) bool
	detectFrameDirect func(int, int, []byte, bool) (trackapi.HolisticResult, bool)
	detectVideo       func(string, bool) bool
	release           func() bool
}

// HolisticTracker binds the holistic-tracking module's exports (combined
// face, pose and two-hand detection with independent feature toggles).
type HolisticTracker struct {
	loader *Loader

	mu          sync.Mutex
	table       *holisticTable
	initialized bool
}

// NewHolisticTracker creates a tracker using the given host. A nil host
// selects the default plugin-backed host.
func NewHolisticTracker(host Host) *HolisticTracker {
	return &HolisticTracker{
		loader: NewLoader(host, trackapi.HolisticSymbols),
	}
}

// Load opens the holistic-tracking module at the given path.
func (t *HolisticTracker) Load(path string) error {
	return t.loader.Load(path)
}

// ResolveAll resolves and type-checks every required export, all-or-nothing.
func (t *HolisticTracker) ResolveAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.table = nil
	if err := t.loader.ResolveAll(); err != nil {
		return err
	}

	table := &holisticTable{}
	var err error
	if table.init, err = symbolAs[func(string, trackapi.FeatureFlags) bool](t.loader, trackapi.SymHolisticInit); err != nil {
		return err
	}
	if table.detectFrame, err = symbolAs[func(int, int, int, []byte) bool](t.loader, trackapi.SymHolisticDetectFrame); err != nil {
		return err
	}
	if table.detectFrameDirect, err = symbolAs[func(int, int, []byte, bool) (trackapi.HolisticResult, bool)](t.loader, trackapi.SymHolisticDetectFrameDirect); err != nil {
		return err
	}
	if table.detectVideo, err = symbolAs[func(string, bool) bool](t.loader, trackapi.SymHolisticDetectVideo); err != nil {
		return err
	}
	if table.release, err = symbolAs[func() bool](t.loader, trackapi.SymHolisticRelease); err != nil {
		return err
	}

	t.table = table
	return nil
}

// Init calls the module's initialization entry point with the pipeline
// graph path and the feature toggles.
func (t *HolisticTracker) Init(graphPath string, flags trackapi.FeatureFlags) error {
	t.mu.Lock()
	table := t.table
	t.mu.Unlock()

	if table == nil {
		return ErrNotResolved
	}
	if !table.init(graphPath, flags) {
		return ErrInitFailed
	}

	t.mu.Lock()
	t.initialized = true
	t.mu.Unlock()
	return nil
}

// DetectFrame passes one frame to the module. Buffer ownership rules match
// HandTracker.DetectFrame.
func (t *HolisticTracker) DetectFrame(frameIndex, width, height int, pixels []byte) error {
	table, err := t.detectTable()
	if err != nil {
		return err
	}
	if !table.detectFrame(frameIndex, width, height, pixels) {
		return ErrDetectionFailed
	}
	return nil
}

// DetectFrameDirect runs detection on one frame and returns the left/right
// arm states and gestures. When draw is set the module annotates its own
// preview.
func (t *HolisticTracker) DetectFrameDirect(width, height int, pixels []byte, draw bool) (trackapi.HolisticResult, error) {
	table, err := t.detectTable()
	if err != nil {
		return trackapi.HolisticResult{}, err
	}
	result, ok := table.detectFrameDirect(width, height, pixels, draw)
	if !ok {
		return trackapi.HolisticResult{}, ErrDetectionFailed
	}
	return result, nil
}

// DetectVideo hands a whole video file to the module.
func (t *HolisticTracker) DetectVideo(path string, show bool) error {
	table, err := t.detectTable()
	if err != nil {
		return err
	}
	if !table.detectVideo(path, show) {
		return ErrDetectionFailed
	}
	return nil
}

// Release calls the module's teardown entry point.
func (t *HolisticTracker) Release() error {
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

// Unload drops the module handle and the entry point table.
func (t *HolisticTracker) Unload() error {
	t.mu.Lock()
	t.table = nil
	t.initialized = false
	t.mu.Unlock()
	return t.loader.Unload()
}

// Initialized reports whether the module accepted initialization and has
// not been released.
func (t *HolisticTracker) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

func (t *HolisticTracker) detectTable() (*holisticTable, error) {
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

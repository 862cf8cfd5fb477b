// Package trackapi defines the contract between the mudra host and a
// loadable tracking module: the exported symbol names, the typed signatures
// behind them, and the landmark/result types that cross the boundary.
//
// A tracking module is a Go plugin (built with -buildmode=plugin) that
// exports plain functions matching the signatures documented on the Sym*
// constants. Both sides import this package so the types line up at
// symbol-resolution time.
package trackapi

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Landmark batch sizes delivered to a landmarks callback. A two-hand batch
// always carries the right hand at indices 0-20 and the left hand at 21-41.
const (
	CountOneHand  = NumLandmarks
	CountTwoHands = 2 * NumLandmarks
)

// Point is a single tracked keypoint in normalized image coordinates
// (0.0-1.0 on both axes, origin at the top-left corner).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarksCallback receives one landmark batch per processed frame.
// len(points) is 0, CountOneHand, or CountTwoHands. The slice is only
// valid for the duration of the call; callers keeping points must copy.
type LandmarksCallback func(frameIndex int, points []Point)

// ResultsCallback receives one gesture classification per detected hand.
// The slice is only valid for the duration of the call.
type ResultsCallback func(frameIndex int, codes []GestureCode)

// FeatureFlags selects which holistic sub-detectors the module enables
// at initialization.
type FeatureFlags struct {
	Face   bool
	Pose   bool
	Hands  bool
	UpDown bool // arm raised/lowered classification
}

// HandResult is the direct (callback-free) result of one hand-tracking
// detection: one gesture and one arm state per hand slot.
type HandResult struct {
	Gestures [2]GestureCode
	Arms     [2]ArmCode
}

// HolisticResult is the direct result of one holistic detection.
type HolisticResult struct {
	LeftArm      ArmCode
	RightArm     ArmCode
	LeftGesture  GestureCode
	RightGesture GestureCode
}

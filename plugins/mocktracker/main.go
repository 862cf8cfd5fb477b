// Command mocktracker is a stand-in tracking module for running the demo
// without the prebuilt tracker. Build it as a plugin and point mudra at it:
//
//	go build -buildmode=plugin -o modules/hand_tracking.so ./plugins/mocktracker
//	mudra hand --module modules/hand_tracking.so
//
// It exports both the hand-tracking and holistic-tracking symbol sets and
// reports one synthetic open-palm hand per frame.
package main

import (
	"sync"

	"github.com/ayusman/mudra/trackapi"
)

var state struct {
	mu          sync.Mutex
	initialized bool
	landmarksCb trackapi.LandmarksCallback
	gesturesCb  trackapi.ResultsCallback
}

func main() {}

// MediapipeHandTrackingInit initializes the mock pipeline. Any non-empty
// graph path is accepted.
func MediapipeHandTrackingInit(graphPath string) bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	if graphPath == "" {
		return false
	}
	state.initialized = true
	return true
}

// MediapipeHandTrackingRegisterLandmarksCallback registers the landmarks
// handler. Registration is rejected before init.
func MediapipeHandTrackingRegisterLandmarksCallback(cb trackapi.LandmarksCallback) bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized {
		return false
	}
	state.landmarksCb = cb
	return true
}

// MediapipeHandTrackingRegisterGestureCallback registers the gesture
// handler. Registration is rejected before init.
func MediapipeHandTrackingRegisterGestureCallback(cb trackapi.ResultsCallback) bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized {
		return false
	}
	state.gesturesCb = cb
	return true
}

// MediapipeHandTrackingDetectFrame reports one synthetic hand through the
// registered callbacks, synchronously.
func MediapipeHandTrackingDetectFrame(frameIndex, width, height int, pixels []byte) bool {
	state.mu.Lock()
	if !state.initialized || width <= 0 || height <= 0 || len(pixels) < width*height*3 {
		state.mu.Unlock()
		return false
	}
	landmarksCb := state.landmarksCb
	gesturesCb := state.gesturesCb
	state.mu.Unlock()

	if landmarksCb != nil {
		landmarksCb(frameIndex, syntheticHand())
	}
	if gesturesCb != nil {
		gesturesCb(frameIndex, []trackapi.GestureCode{trackapi.GestureFive})
	}
	return true
}

// MediapipeHandTrackingDetectFrameDirect returns the classification without
// going through callbacks.
func MediapipeHandTrackingDetectFrameDirect(width, height int, pixels []byte) (trackapi.HandResult, bool) {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized || len(pixels) < width*height*3 {
		return trackapi.HandResult{}, false
	}
	return trackapi.HandResult{
		Gestures: [2]trackapi.GestureCode{trackapi.GestureFive, trackapi.GestureUnknown},
		Arms:     [2]trackapi.ArmCode{trackapi.ArmUnknown, trackapi.ArmUnknown},
	}, true
}

// MediapipeHandTrackingDetectVideo pretends to process a video file.
func MediapipeHandTrackingDetectVideo(path string, show bool) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.initialized && path != ""
}

// MediapipeHandTrackingRelease tears down the mock pipeline.
func MediapipeHandTrackingRelease() bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.initialized = false
	state.landmarksCb = nil
	state.gesturesCb = nil
	return true
}

// MediapipeHolisticTrackingInit initializes the mock holistic pipeline.
func MediapipeHolisticTrackingInit(graphPath string, flags trackapi.FeatureFlags) bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	if graphPath == "" {
		return false
	}
	state.initialized = true
	return true
}

// MediapipeHolisticTrackingDetectFrame accepts a frame without reporting
// results; the holistic set reports through direct results only.
func MediapipeHolisticTrackingDetectFrame(frameIndex, width, height int, pixels []byte) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.initialized && width > 0 && height > 0 && len(pixels) >= width*height*3
}

// MediapipeHolisticTrackingDetectFrameDirect returns a fixed holistic
// classification.
func MediapipeHolisticTrackingDetectFrameDirect(width, height int, pixels []byte, draw bool) (trackapi.HolisticResult, bool) {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized || len(pixels) < width*height*3 {
		return trackapi.HolisticResult{}, false
	}
	return trackapi.HolisticResult{
		LeftArm:      trackapi.ArmDown,
		RightArm:     trackapi.ArmUp,
		LeftGesture:  trackapi.GestureUnknown,
		RightGesture: trackapi.GestureFive,
	}, true
}

// MediapipeHolisticTrackingDetectVideo pretends to process a video file.
func MediapipeHolisticTrackingDetectVideo(path string, show bool) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.initialized && path != ""
}

// MediapipeHolisticTrackingRelease tears down the mock holistic pipeline.
func MediapipeHolisticTrackingRelease() bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.initialized = false
	return true
}

// syntheticHand builds a 21-point open palm in normalized coordinates.
func syntheticHand() []trackapi.Point {
	points := make([]trackapi.Point, trackapi.NumLandmarks)
	points[trackapi.Wrist] = trackapi.Point{X: 0.5, Y: 0.85}

	fingers := []struct {
		start  int
		offset float64
	}{
		{trackapi.ThumbCMC, 0.10},
		{trackapi.IndexMCP, 0.05},
		{trackapi.MiddleMCP, 0.0},
		{trackapi.RingMCP, -0.05},
		{trackapi.PinkyMCP, -0.10},
	}

	for _, finger := range fingers {
		for joint := 0; joint < 4; joint++ {
			points[finger.start+joint] = trackapi.Point{
				X: 0.5 + finger.offset,
				Y: 0.72 - 0.12*float64(joint),
			}
		}
	}
	return points
}

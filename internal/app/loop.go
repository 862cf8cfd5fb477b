package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/trackapi"
)

// ProcessFrame runs one iteration of the demo loop: read a camera frame,
// mirror it to the selfie view, push it into the loaded module, and draw
// the results delivered by the module onto the frame.
//
// The returned Mat is the annotated frame; the caller owns it and must
// close it. A failed detection is logged and skipped, returning the frame
// unannotated rather than aborting the loop.
func (a *App) ProcessFrame() (*gocv.Mat, error) {
	mat, err := a.camera.ReadFrame()
	if err != nil {
		return nil, err
	}

	if !a.IsEnabled() {
		capture.Mirror(mat)
		return mat, nil
	}

	capture.Mirror(mat)

	frame, err := capture.ToFrame(mat, a.nextFrameIndex())
	if err != nil {
		mat.Close()
		return nil, err
	}

	switch a.config.Mode {
	case store.ModeHolistic:
		result, err := a.holistic.DetectFrameDirect(frame.Width, frame.Height, frame.Pixels, false)
		if err != nil {
			log.Printf("Detection failed on frame %d: %v", frame.Index, err)
			return mat, nil
		}
		a.mu.Lock()
		a.lastHolistic = result
		a.mu.Unlock()
		a.recordDetection(frame.Index, []trackapi.GestureCode{result.LeftGesture, result.RightGesture})
		overlay.DrawHolisticLabels(mat, result)

	default:
		// Registered callbacks fire during this call when the module
		// dispatches synchronously; asynchronous modules annotate the
		// following frame with slightly stale results.
		if err := a.hand.DetectFrame(frame.Index, frame.Width, frame.Height, frame.Pixels); err != nil {
			log.Printf("Detection failed on frame %d: %v", frame.Index, err)
			return mat, nil
		}
		points, codes := a.LastResults()
		overlay.DrawLandmarks(mat, points)
		overlay.DrawGestureLabels(mat, codes)
	}

	return mat, nil
}

// Run drives the demo loop without a display window until stop is closed,
// pacing frames at the camera's capture rate.
func (a *App) Run(stop <-chan struct{}) {
	fps := a.camera.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			mat, err := a.ProcessFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}
			mat.Close()
		}
	}
}

// FrameCount returns how many frames have been processed since Start.
func (a *App) FrameCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frameIndex
}

func (a *App) nextFrameIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	index := a.frameIndex
	a.frameIndex++
	return index
}

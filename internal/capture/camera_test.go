package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func closeFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

func TestMockCamera(t *testing.T) {
	t.Run("read before open", func(t *testing.T) {
		cam := NewMockCamera(nil, false)

		if _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
			t.Errorf("Expected ErrCameraNotOpen, got %v", err)
		}
	})

	t.Run("plays frames in order", func(t *testing.T) {
		frames := SolidFrames(3, 64, 48)
		defer closeFrames(frames)

		cam := NewMockCamera(frames, false)
		if err := cam.Open(); err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer cam.Close()

		for i := 0; i < 3; i++ {
			mat, err := cam.ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame %d failed: %v", i, err)
			}
			if mat.Cols() != 64 || mat.Rows() != 48 {
				t.Errorf("Frame %d: expected 64x48, got %dx%d", i, mat.Cols(), mat.Rows())
			}
			mat.Close()
		}

		if _, err := cam.ReadFrame(); err == nil {
			t.Error("Expected error after playback without loop")
		}
	})

	t.Run("loops", func(t *testing.T) {
		frames := SolidFrames(2, 32, 32)
		defer closeFrames(frames)

		cam := NewMockCamera(frames, true)
		if err := cam.Open(); err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer cam.Close()

		for i := 0; i < 5; i++ {
			mat, err := cam.ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame %d failed: %v", i, err)
			}
			mat.Close()
		}
	})

	t.Run("open resets and close stops", func(t *testing.T) {
		frames := SolidFrames(1, 32, 32)
		defer closeFrames(frames)

		cam := NewMockCamera(frames, false)
		cam.Open()
		if !cam.IsOpen() {
			t.Error("Expected camera to report open")
		}
		cam.Close()
		if cam.IsOpen() {
			t.Error("Expected camera to report closed")
		}
		if _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
			t.Errorf("Expected ErrCameraNotOpen after close, got %v", err)
		}
	})
}

func TestToFrame(t *testing.T) {
	t.Run("copies dimensions and pixels", func(t *testing.T) {
		mat := gocv.NewMatWithSizeFromScalar(
			gocv.NewScalar(10, 20, 30, 0), 48, 64, gocv.MatTypeCV8UC3,
		)
		defer mat.Close()

		frame, err := ToFrame(&mat, 5)
		if err != nil {
			t.Fatalf("ToFrame failed: %v", err)
		}
		if frame.Index != 5 {
			t.Errorf("Expected index 5, got %d", frame.Index)
		}
		if frame.Width != 64 || frame.Height != 48 {
			t.Errorf("Expected 64x48, got %dx%d", frame.Width, frame.Height)
		}
		if len(frame.Pixels) != 64*48*3 {
			t.Errorf("Expected %d pixel bytes, got %d", 64*48*3, len(frame.Pixels))
		}
	})

	t.Run("buffer independent of the mat", func(t *testing.T) {
		mat := gocv.NewMatWithSizeFromScalar(
			gocv.NewScalar(10, 20, 30, 0), 8, 8, gocv.MatTypeCV8UC3,
		)

		frame, err := ToFrame(&mat, 0)
		if err != nil {
			t.Fatalf("ToFrame failed: %v", err)
		}

		first := frame.Pixels[0]
		mat.Close()
		if frame.Pixels[0] != first {
			t.Error("Expected pixel buffer to survive closing the mat")
		}
	})

	t.Run("rejects empty mat", func(t *testing.T) {
		mat := gocv.NewMat()
		defer mat.Close()

		if _, err := ToFrame(&mat, 0); err == nil {
			t.Error("Expected error for empty mat")
		}
		if _, err := ToFrame(nil, 0); err == nil {
			t.Error("Expected error for nil mat")
		}
	})
}

func TestMirror(t *testing.T) {
	mat := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)
	defer mat.Close()
	mat.SetUCharAt(0, 0, 255)

	Mirror(&mat)

	// Channel 0 of the leftmost pixel moves to the rightmost pixel.
	if got := mat.GetUCharAt(0, (4-1)*3); got != 255 {
		t.Errorf("Expected mirrored pixel value 255, got %d", got)
	}
	if got := mat.GetUCharAt(0, 0); got != 0 {
		t.Errorf("Expected source position cleared, got %d", got)
	}
}

// Package overlay renders tracking results onto video frames: landmark
// keypoints, the fixed hand skeleton topology, and classification labels.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/trackapi"
)

var (
	keypointColor = color.RGBA{R: 255}
	boneColor     = color.RGBA{G: 255}
	labelColor    = color.RGBA{G: 255, B: 255}
)

const (
	keypointRadius = 6
	boneThickness  = 2
)

// skeleton lists the joint pairs connected per hand, indexed within a
// single 21-point hand. The second hand in a 42-point batch uses the same
// pairs at offset 21.
var skeleton = [][2]int{
	{trackapi.Wrist, trackapi.ThumbCMC},
	{trackapi.ThumbCMC, trackapi.ThumbMCP},
	{trackapi.ThumbMCP, trackapi.ThumbIP},
	{trackapi.ThumbIP, trackapi.ThumbTip},
	{trackapi.Wrist, trackapi.IndexMCP},
	{trackapi.IndexMCP, trackapi.IndexPIP},
	{trackapi.IndexPIP, trackapi.IndexDIP},
	{trackapi.IndexDIP, trackapi.IndexTip},
	{trackapi.MiddleMCP, trackapi.MiddlePIP},
	{trackapi.MiddlePIP, trackapi.MiddleDIP},
	{trackapi.MiddleDIP, trackapi.MiddleTip},
	{trackapi.RingMCP, trackapi.RingPIP},
	{trackapi.RingPIP, trackapi.RingDIP},
	{trackapi.RingDIP, trackapi.RingTip},
	{trackapi.Wrist, trackapi.PinkyMCP},
	{trackapi.PinkyMCP, trackapi.PinkyPIP},
	{trackapi.PinkyPIP, trackapi.PinkyDIP},
	{trackapi.PinkyDIP, trackapi.PinkyTip},
	{trackapi.IndexMCP, trackapi.MiddleMCP},
	{trackapi.MiddleMCP, trackapi.RingMCP},
	{trackapi.RingMCP, trackapi.PinkyMCP},
}

// DrawLandmarks draws keypoint circles for every landmark in the batch and
// skeleton lines for each complete 21-point hand. Points are normalized;
// they are scaled to the Mat's size.
func DrawLandmarks(mat *gocv.Mat, points []trackapi.Point) {
	if mat == nil || mat.Empty() || len(points) == 0 {
		return
	}

	count := len(points)
	if count > trackapi.CountTwoHands {
		count = trackapi.CountTwoHands
	}

	for i := 0; i < count; i++ {
		gocv.Circle(mat, toPixel(points[i], mat), keypointRadius, keypointColor, -1)
	}

	hands := count / trackapi.NumLandmarks
	for hand := 0; hand < hands; hand++ {
		offset := hand * trackapi.NumLandmarks
		for _, bone := range skeleton {
			gocv.Line(mat,
				toPixel(points[offset+bone[0]], mat),
				toPixel(points[offset+bone[1]], mat),
				boneColor, boneThickness)
		}
	}
}

// DrawGestureLabels writes one classification label per hand in the top
// left corner of the frame.
func DrawGestureLabels(mat *gocv.Mat, codes []trackapi.GestureCode) {
	if mat == nil || mat.Empty() {
		return
	}
	for i, code := range codes {
		text := fmt.Sprintf("hand %d: %s", i, code)
		putLabel(mat, text, i)
	}
}

// DrawHolisticLabels writes the four holistic classification labels.
func DrawHolisticLabels(mat *gocv.Mat, result trackapi.HolisticResult) {
	if mat == nil || mat.Empty() {
		return
	}
	labels := []string{
		fmt.Sprintf("left arm: %s", result.LeftArm),
		fmt.Sprintf("right arm: %s", result.RightArm),
		fmt.Sprintf("left hand: %s", result.LeftGesture),
		fmt.Sprintf("right hand: %s", result.RightGesture),
	}
	for i, text := range labels {
		putLabel(mat, text, i)
	}
}

func putLabel(mat *gocv.Mat, text string, row int) {
	gocv.PutText(mat, text, image.Pt(10, 30+row*30),
		gocv.FontHersheySimplex, 0.8, labelColor, 2)
}

func toPixel(p trackapi.Point, mat *gocv.Mat) image.Point {
	return image.Pt(int(p.X*float64(mat.Cols())), int(p.Y*float64(mat.Rows())))
}

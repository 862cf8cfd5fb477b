package trackapi

// Exported symbol names for the hand-tracking module. A conforming module
// exports plain functions under these names with the listed signatures:
//
//	MediapipeHandTrackingInit(graphPath string) bool
//	MediapipeHandTrackingRegisterLandmarksCallback(cb LandmarksCallback) bool
//	MediapipeHandTrackingRegisterGestureCallback(cb ResultsCallback) bool
//	MediapipeHandTrackingDetectFrame(frameIndex, width, height int, pixels []byte) bool
//	MediapipeHandTrackingDetectFrameDirect(width, height int, pixels []byte) (HandResult, bool)
//	MediapipeHandTrackingDetectVideo(path string, show bool) bool
//	MediapipeHandTrackingRelease() bool
const (
	SymHandInit              = "MediapipeHandTrackingInit"
	SymHandRegisterLandmarks = "MediapipeHandTrackingRegisterLandmarksCallback"
	SymHandRegisterGestures  = "MediapipeHandTrackingRegisterGestureCallback"
	SymHandDetectFrame       = "MediapipeHandTrackingDetectFrame"
	SymHandDetectFrameDirect = "MediapipeHandTrackingDetectFrameDirect"
	SymHandDetectVideo       = "MediapipeHandTrackingDetectVideo"
	SymHandRelease           = "MediapipeHandTrackingRelease"
)

// Exported symbol names for the holistic-tracking module:
//
//	MediapipeHolisticTrackingInit(graphPath string, flags FeatureFlags) bool
//	MediapipeHolisticTrackingDetectFrame(frameIndex, width, height int, pixels []byte) bool
//	MediapipeHolisticTrackingDetectFrameDirect(width, height int, pixels []byte, draw bool) (HolisticResult, bool)
//	MediapipeHolisticTrackingDetectVideo(path string, show bool) bool
//	MediapipeHolisticTrackingRelease() bool
const (
	SymHolisticInit              = "MediapipeHolisticTrackingInit"
	SymHolisticDetectFrame       = "MediapipeHolisticTrackingDetectFrame"
	SymHolisticDetectFrameDirect = "MediapipeHolisticTrackingDetectFrameDirect"
	SymHolisticDetectVideo       = "MediapipeHolisticTrackingDetectVideo"
	SymHolisticRelease           = "MediapipeHolisticTrackingRelease"
)

// HandSymbols lists every symbol a hand-tracking module must export.
// Resolution is all-or-nothing: a module missing any of these is unusable.
var HandSymbols = []string{
	SymHandInit,
	SymHandRegisterLandmarks,
	SymHandRegisterGestures,
	SymHandDetectFrame,
	SymHandDetectFrameDirect,
	SymHandDetectVideo,
	SymHandRelease,
}

// HolisticSymbols lists every symbol a holistic-tracking module must export.
var HolisticSymbols = []string{
	SymHolisticInit,
	SymHolisticDetectFrame,
	SymHolisticDetectFrameDirect,
	SymHolisticDetectVideo,
	SymHolisticRelease,
}

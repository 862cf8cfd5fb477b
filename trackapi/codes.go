package trackapi

// GestureCode is a small integer enumerating a recognized hand pose.
// Codes are produced by the loaded module; -1 means no recognition.
type GestureCode int

// Gesture codes reported by the tracking module.
const (
	GestureUnknown GestureCode = -1
	GestureOne     GestureCode = 1
	GestureTwo     GestureCode = 2
	GestureThree   GestureCode = 3
	GestureFour    GestureCode = 4
	GestureFive    GestureCode = 5
	GestureSix     GestureCode = 6
	GestureThumbUp GestureCode = 7
	GestureOK      GestureCode = 8
	GestureFist    GestureCode = 9
)

var gestureLabels = map[GestureCode]string{
	GestureOne:     "One",
	GestureTwo:     "Two",
	GestureThree:   "Three",
	GestureFour:    "Four",
	GestureFive:    "Five",
	GestureSix:     "Six",
	GestureThumbUp: "ThumbUp",
	GestureOK:      "Ok",
	GestureFist:    "Fist",
}

// String returns the display label for the gesture code.
// Unrecognized codes, including GestureUnknown, map to "Unknown".
func (c GestureCode) String() string {
	if label, ok := gestureLabels[c]; ok {
		return label
	}
	return "Unknown"
}

// ArmCode enumerates the arm raised/lowered classification.
type ArmCode int

// Arm state codes reported by the tracking module.
const (
	ArmUnknown ArmCode = -1
	ArmUp      ArmCode = 1
	ArmDown    ArmCode = 2
)

// String returns the display label for the arm state code.
func (c ArmCode) String() string {
	switch c {
	case ArmUp:
		return "ArmUp"
	case ArmDown:
		return "ArmDown"
	}
	return "Unknown"
}

package gesture

import (
	"github.com/chewxy/math32"
)

// Hand landmark indices, matching the 21-point hand topology produced by the
// external recognizer (wrist = 0, four joints per finger, tips at 4/8/12/16/20).
const (
	LandmarkThumbTip = 4
	LandmarkIndexTip = 8
	LandmarkPinkyTip = 20

	// LandmarkCount is the number of landmarks a well-formed hand carries.
	LandmarkCount = 21
)

const (
	// MaxSpread is the upper clamp for the spread signal. It intentionally
	// exceeds 1: a two-hand spread can legitimately go past the single-hand
	// calibration, and consumers clamp again to [0, 1] before blending.
	MaxSpread = 1.2

	// oneHandSpreadScale calibrates the single-hand thumb-to-pinky distance
	// against the two-hand index-to-index distance. The 2.0 factor is
	// intentional but uncalibrated; changing it is a product decision.
	oneHandSpreadScale = 2.0
)

// Landmark is one recognizer keypoint in normalized image coordinates.
// X and Y are in [0, 1] with the origin at the top-left of the image;
// Z is a relative depth estimate and is unused by the mapper.
type Landmark struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Hand is one detected hand's landmark set.
type Hand struct {
	Landmarks []Landmark `json:"landmarks"`
}

// valid reports whether the hand carries the full landmark set. Hands with
// missing points are dropped silently rather than crashing the mapper.
func (h Hand) valid() bool {
	return len(h.Landmarks) >= LandmarkCount
}

// Reading is one frame's derived control signals. It is transient: callers
// fold it into the morph controller's targets immediately and never store it.
type Reading struct {
	// Spread is the openness signal in [0, MaxSpread].
	Spread float32
	// Height is the vertical signal in [0, 1]; 1 means hands at the top of
	// the image.
	Height float32
	// Detected reports whether at least one well-formed hand was present.
	// When false, Spread and Height carry no meaning and callers must leave
	// their previous targets untouched.
	Detected bool
}

// MapHands converts a frame's detected hands into a Reading. It is a pure
// function of the landmark set and carries no state between frames.
//
// Two hands: spread is the distance between the two index fingertips and
// height the inverted mean of their vertical coordinates. One hand: spread is
// twice the thumb-to-pinky distance (an open/closed palm proxy) and height
// the inverted index fingertip Y. Hands beyond the second are ignored.
//
// Parameters:
//   - hands: the detected hands, in recognizer order
//
// Returns:
//   - Reading: the clamped control signals for this frame
func MapHands(hands []Hand) Reading {
	// Drop malformed hands first so a partial landmark set degrades to
	// "nothing detected" instead of indexing out of range.
	wellFormed := make([]Hand, 0, 2)
	for _, h := range hands {
		if h.valid() {
			wellFormed = append(wellFormed, h)
			if len(wellFormed) == 2 {
				break
			}
		}
	}

	switch len(wellFormed) {
	case 2:
		a := wellFormed[0].Landmarks[LandmarkIndexTip]
		b := wellFormed[1].Landmarks[LandmarkIndexTip]
		spread := distance(a, b)
		height := 1 - (a.Y+b.Y)/2
		return clampReading(spread, height)
	case 1:
		thumb := wellFormed[0].Landmarks[LandmarkThumbTip]
		pinky := wellFormed[0].Landmarks[LandmarkPinkyTip]
		index := wellFormed[0].Landmarks[LandmarkIndexTip]
		spread := oneHandSpreadScale * distance(thumb, pinky)
		height := 1 - index.Y
		return clampReading(spread, height)
	default:
		return Reading{}
	}
}

func clampReading(spread, height float32) Reading {
	if math32.IsNaN(spread) {
		spread = 0
	}
	if math32.IsNaN(height) {
		height = 0
	}
	if spread < 0 {
		spread = 0
	}
	if spread > MaxSpread {
		spread = MaxSpread
	}
	if height < 0 {
		height = 0
	}
	if height > 1 {
		height = 1
	}
	return Reading{Spread: spread, Height: height, Detected: true}
}

// distance returns the Euclidean distance between two landmarks in the image
// plane. Depth is excluded: the recognizer's Z estimate is too noisy to feed
// a control signal.
func distance(a, b Landmark) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

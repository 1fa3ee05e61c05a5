package gesture

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// handAt builds a well-formed hand with every landmark at the same point,
// then lets tests override individual tips.
func handAt(x, y float32) Hand {
	h := Hand{Landmarks: make([]Landmark, LandmarkCount)}
	for i := range h.Landmarks {
		h.Landmarks[i] = Landmark{X: x, Y: y}
	}
	return h
}

func TestMapHandsNoHands(t *testing.T) {
	r := MapHands(nil)
	assert.False(t, r.Detected)
	assert.Equal(t, float32(0), r.Spread)
	assert.Equal(t, float32(0), r.Height)

	r = MapHands([]Hand{})
	assert.False(t, r.Detected)
}

func TestMapHandsTwoHands(t *testing.T) {
	left := handAt(0.2, 0.4)
	right := handAt(0.2, 0.4)
	left.Landmarks[LandmarkIndexTip] = Landmark{X: 0.2, Y: 0.6}
	right.Landmarks[LandmarkIndexTip] = Landmark{X: 0.7, Y: 0.2}

	r := MapHands([]Hand{left, right})
	assert.True(t, r.Detected)

	// Spread is the index-tip to index-tip distance.
	wantSpread := math32.Sqrt(0.5*0.5 + 0.4*0.4)
	assert.InDelta(t, float64(wantSpread), float64(r.Spread), 1e-6)

	// Height is the inverted mean of the two index-tip Y values.
	assert.InDelta(t, 1-(0.6+0.2)/2, float64(r.Height), 1e-6)
}

func TestMapHandsOneHand(t *testing.T) {
	h := handAt(0.5, 0.5)
	h.Landmarks[LandmarkThumbTip] = Landmark{X: 0.4, Y: 0.5}
	h.Landmarks[LandmarkPinkyTip] = Landmark{X: 0.6, Y: 0.5}
	h.Landmarks[LandmarkIndexTip] = Landmark{X: 0.5, Y: 0.3}

	r := MapHands([]Hand{h})
	assert.True(t, r.Detected)

	// Spread is twice the thumb-to-pinky distance.
	assert.InDelta(t, 2.0*0.2, float64(r.Spread), 1e-6)

	// Height is the inverted index-tip Y.
	assert.InDelta(t, 0.7, float64(r.Height), 1e-6)
}

func TestMapHandsSpreadClamp(t *testing.T) {
	h := handAt(0, 0.5)
	h.Landmarks[LandmarkPinkyTip] = Landmark{X: 1.5, Y: 0.5}

	r := MapHands([]Hand{h})
	assert.True(t, r.Detected)
	assert.Equal(t, float32(MaxSpread), r.Spread)
}

func TestMapHandsHeightClamp(t *testing.T) {
	// An index tip below the image bottom would invert to a negative height.
	h := handAt(0.5, 0.5)
	h.Landmarks[LandmarkIndexTip] = Landmark{X: 0.5, Y: 1.4}

	r := MapHands([]Hand{h})
	assert.True(t, r.Detected)
	assert.Equal(t, float32(0), r.Height)

	h.Landmarks[LandmarkIndexTip] = Landmark{X: 0.5, Y: -0.4}
	r = MapHands([]Hand{h})
	assert.Equal(t, float32(1), r.Height)
}

func TestMapHandsMalformedHandsDropped(t *testing.T) {
	partial := Hand{Landmarks: make([]Landmark, 5)}

	r := MapHands([]Hand{partial})
	assert.False(t, r.Detected, "a hand missing landmarks must not produce a reading")

	// One malformed plus one valid hand degrades to the single-hand path.
	valid := handAt(0.5, 0.5)
	valid.Landmarks[LandmarkThumbTip] = Landmark{X: 0.45, Y: 0.5}
	valid.Landmarks[LandmarkPinkyTip] = Landmark{X: 0.55, Y: 0.5}
	valid.Landmarks[LandmarkIndexTip] = Landmark{X: 0.5, Y: 0.5}

	r = MapHands([]Hand{partial, valid})
	assert.True(t, r.Detected)
	assert.InDelta(t, 0.2, float64(r.Spread), 1e-6)
}

func TestMapHandsThirdHandIgnored(t *testing.T) {
	a := handAt(0.1, 0.5)
	b := handAt(0.3, 0.5)
	c := handAt(0.9, 0.9)

	r := MapHands([]Hand{a, b, c})
	assert.True(t, r.Detected)
	// Spread derives from the first two hands only.
	assert.InDelta(t, 0.2, float64(r.Spread), 1e-6)
}

func TestMapHandsNaNSanitized(t *testing.T) {
	h := handAt(0.5, 0.5)
	h.Landmarks[LandmarkThumbTip] = Landmark{X: math32.NaN(), Y: 0.5}
	h.Landmarks[LandmarkIndexTip] = Landmark{X: 0.5, Y: math32.NaN()}

	r := MapHands([]Hand{h})
	assert.True(t, r.Detected)
	assert.Equal(t, float32(0), r.Spread)
	assert.Equal(t, float32(0), r.Height)
}

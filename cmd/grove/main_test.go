package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/grove-go/engine/camera"
	"github.com/Carmen-Shannon/grove-go/engine/gesture"
	"github.com/Carmen-Shannon/grove-go/engine/morph"
)

// twoHandsAt builds two well-formed hands with their index fingertips at the
// given points.
func twoHandsAt(ax, ay, bx, by float32) []gesture.Hand {
	build := func(x, y float32) gesture.Hand {
		h := gesture.Hand{Landmarks: make([]gesture.Landmark, gesture.LandmarkCount)}
		for i := range h.Landmarks {
			h.Landmarks[i] = gesture.Landmark{X: x, Y: y}
		}
		h.Landmarks[gesture.LandmarkIndexTip] = gesture.Landmark{X: x, Y: y}
		return h
	}
	a := build(ax, ay)
	b := build(bx, by)
	return []gesture.Hand{a, b}
}

func TestApplyReadingSetsTargets(t *testing.T) {
	ctrl := morph.NewController()
	cam := camera.NewCamera()

	applyReading(ctrl, cam, gesture.Reading{Spread: 0.7, Height: 0.8, Detected: true})
	assert.Equal(t, float32(0.7), ctrl.MorphTarget())
	assert.Equal(t, float32(0.8), ctrl.HeightTarget())
	assert.True(t, cam.Director().Active())

	// The mapper's spread can exceed 1; the blend target clamps.
	applyReading(ctrl, cam, gesture.Reading{Spread: gesture.MaxSpread, Height: 0.5, Detected: true})
	assert.Equal(t, float32(1), ctrl.MorphTarget())
}

func TestApplyReadingHoldsTargetsOnDetectionLoss(t *testing.T) {
	ctrl := morph.NewController()
	cam := camera.NewCamera()

	// Two hands drive the targets somewhere non-default.
	reading := gesture.MapHands(twoHandsAt(0.2, 0.3, 0.8, 0.1))
	require.True(t, reading.Detected)
	applyReading(ctrl, cam, reading)

	wantMorph := ctrl.MorphTarget()
	wantHeight := ctrl.HeightTarget()
	require.Greater(t, wantMorph, float32(0))
	require.Greater(t, wantHeight, float32(0))

	// Hands leave the frame: the empty reading must freeze both targets at
	// their last values rather than resetting them.
	lost := gesture.MapHands(nil)
	require.False(t, lost.Detected)
	applyReading(ctrl, cam, lost)

	assert.Equal(t, wantMorph, ctrl.MorphTarget())
	assert.Equal(t, wantHeight, ctrl.HeightTarget())
}

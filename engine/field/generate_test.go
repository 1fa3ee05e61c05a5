package field

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFoliageEmpty(t *testing.T) {
	assert.NotNil(t, GenerateFoliage(0))
	assert.Empty(t, GenerateFoliage(0))
	assert.Empty(t, GenerateFoliage(-5))
}

func TestGenerateFoliageBounds(t *testing.T) {
	const n = 5000
	points := GenerateFoliage(n)
	require.Len(t, points, n)

	yMin := float32(-TreeHeight/2 - TreeDrop - TreeJitter)
	yMax := float32(TreeHeight/2 - TreeDrop + TreeJitter)

	// Jitter on all three axes plus the height-derived radius shift.
	const radialSlack = 0.7

	for i, p := range points {
		require.GreaterOrEqual(t, p.Formation[1], yMin, "particle %d below the cone base", i)
		require.LessOrEqual(t, p.Formation[1], yMax, "particle %d above the cone tip", i)

		// Reconstruct the normalized height and check the radial taper.
		ht := (p.Formation[1] + TreeHeight/2 + TreeDrop) / TreeHeight
		ht = math32.Max(0, math32.Min(1, ht))
		maxR := float32(TreeRadius)*(1-ht) + radialSlack
		r := math32.Hypot(p.Formation[0], p.Formation[2])
		require.LessOrEqual(t, r, maxR, "particle %d outside the cone at height %f", i, p.Formation[1])

		// Scatter positions stay inside the scatter sphere.
		sl := math32.Sqrt(p.Scatter[0]*p.Scatter[0] + p.Scatter[1]*p.Scatter[1] + p.Scatter[2]*p.Scatter[2])
		require.LessOrEqual(t, sl, float32(ScatterRadius)*1.0001, "particle %d outside the scatter sphere", i)

		require.GreaterOrEqual(t, p.Phase, float32(0))
		require.Less(t, p.Phase, float32(1))
	}
}

func TestGenerateFoliageSizeTiers(t *testing.T) {
	const n = 20000
	points := GenerateFoliage(n)

	dust := 0
	for i, p := range points {
		switch p.Class {
		case SizeDust:
			dust++
			require.GreaterOrEqual(t, p.Size, float32(dustSizeMin), "dust particle %d too small", i)
			require.LessOrEqual(t, p.Size, float32(dustSizeMax), "dust particle %d too large", i)
		case SizeLight:
			require.GreaterOrEqual(t, p.Size, float32(lightSizeMin), "light particle %d too small", i)
			require.LessOrEqual(t, p.Size, float32(lightSizeMax), "light particle %d too large", i)
		default:
			t.Fatalf("particle %d has unknown size class %d", i, p.Class)
		}
	}

	// The dust share is stochastic; 3% tolerance at n=20000 is generous.
	share := float64(dust) / float64(n)
	assert.InDelta(t, dustShare, share, 0.03)
}

func TestGenerateOrnamentsEmpty(t *testing.T) {
	assert.NotNil(t, GenerateOrnaments(0))
	assert.Empty(t, GenerateOrnaments(0))
	assert.Empty(t, GenerateOrnaments(-1))
}

func TestGenerateOrnamentsSpiral(t *testing.T) {
	const n = 320
	ornaments := GenerateOrnaments(n)
	require.Len(t, ornaments, n)

	base := float32(-TreeHeight/2 - TreeDrop)
	tip := float32(TreeHeight/2 - TreeDrop)

	// The string starts at the cone base and ends at the tip.
	assert.InDelta(t, float64(base), float64(ornaments[0].Formation[1]), ornamentJitter+1e-4)
	assert.InDelta(t, float64(tip), float64(ornaments[n-1].Formation[1]), ornamentJitter+1e-4)

	const radialSlack = 0.6
	for i, o := range ornaments {
		tt := float32(i) / float32(n-1)

		// Height follows the ordinal, give or take the placement jitter.
		wantY := tt*TreeHeight - TreeHeight/2 - TreeDrop
		require.InDelta(t, float64(wantY), float64(o.Formation[1]), ornamentJitter+1e-4, "ornament %d off its string height", i)

		// Radius tapers with the cone.
		maxR := float32(TreeRadius)*(1-tt)*spiralRadiusFit + radialSlack
		r := math32.Hypot(o.Formation[0], o.Formation[2])
		require.LessOrEqual(t, r, maxR, "ornament %d outside the taper", i)

		require.GreaterOrEqual(t, o.Scale, float32(0.26))
		require.LessOrEqual(t, o.Scale, float32(0.46))
	}
}

func TestGenerateOrnamentsAppearance(t *testing.T) {
	const n = 4000
	ornaments := GenerateOrnaments(n)

	boxes := 0
	palette := map[[3]float32]bool{
		colorAccentRed: true,
		colorGreen:     true,
		colorGold:      true,
	}
	for i, o := range ornaments {
		if o.Shape == ShapeBox {
			boxes++
		}
		require.True(t, palette[o.Color], "ornament %d has a color outside the palette: %v", i, o.Color)
	}

	share := float64(boxes) / float64(n)
	assert.InDelta(t, boxShare, share, 0.05)
}

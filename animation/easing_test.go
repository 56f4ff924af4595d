package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matt-g-everett/scenetx/scene"
)

func TestEase_Table(t *testing.T) {
	cases := []struct {
		name scene.Easing
		in   float64
		want float64
	}{
		{scene.EaseLinear, 0.3, 0.3},
		{scene.EaseIn, 0.5, 0.25},
		{scene.EaseOut, 0.5, 0.75},
		{scene.EaseOut, 0.2, 0.2 * (2 - 0.2)},
		{scene.EaseInOut, 0.25, 0.125},
		{scene.EaseInOut, 0.75, -1 + (4-2*0.75)*0.75},
		{scene.EaseBounce, 0.2, 7.5625 * 0.2 * 0.2},
		{"", 0.6, 0.6},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Ease(c.name, c.in), 1e-12, "%s(%v)", c.name, c.in)
	}
}

func TestEase_Endpoints(t *testing.T) {
	for _, name := range []scene.Easing{scene.EaseLinear, scene.EaseIn, scene.EaseOut, scene.EaseInOut, scene.EaseBounce} {
		assert.InDelta(t, 0, Ease(name, 0), 1e-12, string(name))
		assert.InDelta(t, 1, Ease(name, 1), 1e-12, string(name))
	}
}

func TestBounce_Segments(t *testing.T) {
	// Each segment ends at the top of a smaller bounce
	assert.InDelta(t, 1, Bounce(1/2.75), 1e-12)
	assert.InDelta(t, 0.75, Bounce(1.5/2.75), 1e-12)
	assert.InDelta(t, 0.9375, Bounce(2.25/2.75), 1e-12)
	assert.InDelta(t, 0.984375, Bounce(2.625/2.75), 1e-12)
}

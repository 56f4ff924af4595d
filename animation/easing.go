package animation

import (
	"github.com/fogleman/ease"
	"github.com/matt-g-everett/scenetx/scene"
)

// EasingFunc remaps an interpolation fraction in [0,1].
type EasingFunc func(t float64) float64

var easings = map[scene.Easing]EasingFunc{
	scene.EaseLinear: ease.Linear,
	scene.EaseIn:     ease.InQuad,
	scene.EaseOut:    ease.OutQuad,
	scene.EaseInOut:  ease.InOutQuad,
	scene.EaseBounce: Bounce,
}

// Bounce is the four segment quadratic bounce. ease.OutBounce breaks at
// 9/10 for its last segment; this one breaks at 2.5/2.75.
func Bounce(t float64) float64 {
	const n, d = 7.5625, 2.75
	switch {
	case t < 1/d:
		return n * t * t
	case t < 2/d:
		t -= 1.5 / d
		return n*t*t + 0.75
	case t < 2.5/d:
		t -= 2.25 / d
		return n*t*t + 0.9375
	default:
		t -= 2.625 / d
		return n*t*t + 0.984375
	}
}

// Easing returns the curve for name. Empty and unknown names are linear.
func Easing(name scene.Easing) EasingFunc {
	if f, found := easings[name]; found {
		return f
	}
	return ease.Linear
}

// Ease applies the named curve to t.
func Ease(name scene.Easing, t float64) float64 {
	return Easing(name)(t)
}

// Package animation evaluates keyframed animations at a point in time.
package animation

import (
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/scenetx/scene"
)

// ColorMode controls how material colours move between keyframes.
type ColorMode int

const (
	// ColorStep holds the earlier keyframe's colour until the segment ends.
	ColorStep ColorMode = iota
	// ColorBlendHcl blends hex colours in HCL space.
	ColorBlendHcl
)

// ParseColorMode maps a config value to a ColorMode. Anything but "hcl" steps.
func ParseColorMode(s string) ColorMode {
	if s == "hcl" {
		return ColorBlendHcl
	}
	return ColorStep
}

// Interpolator evaluates animations. The zero value steps colours.
type Interpolator struct {
	ColorMode ColorMode
}

// Calculate evaluates a with the zero Interpolator.
func Calculate(a *scene.Animation, at float64, base scene.Transform, mat scene.Material) (scene.Transform, scene.Material) {
	return Interpolator{}.Calculate(a, at, base, mat)
}

// Calculate returns the transform and material of an object at time at
// (seconds) while animation a plays over the base values. Neither a nor the
// base values are modified, and disabled or empty animations return the
// base values unchanged.
func (ip Interpolator) Calculate(a *scene.Animation, at float64, base scene.Transform, mat scene.Material) (scene.Transform, scene.Material) {
	if a == nil || !a.Enabled || len(a.Keyframes) == 0 || !(a.Duration > 0) {
		return base, mat
	}

	u := NormalizedTime(a, at)
	prev, next := Bracket(a.Keyframes, u)

	var t float64
	if gap := next.Time - prev.Time; gap != 0 {
		t = (u - prev.Time) / gap
	}
	eased := Ease(next.Easing, t)

	outT := base
	if prev.Transform != nil || next.Transform != nil {
		from, to := prev.Transform, next.Transform
		outT = scene.Transform{
			Position: LerpVector(pick(from, base.Position, posOf), pick(to, base.Position, posOf), eased),
			Rotation: LerpVector(pick(from, base.Rotation, rotOf), pick(to, base.Rotation, rotOf), eased),
			Scale:    LerpVector(pick(from, base.Scale, scaleOf), pick(to, base.Scale, scaleOf), eased),
		}
	}

	outM := mat
	if prev.Material != nil || next.Material != nil {
		from, to := mergeMaterial(mat, prev.Material), mergeMaterial(mat, next.Material)
		outM = scene.Material{
			Color:     ip.color(from.Color, to.Color, eased, t),
			Roughness: Lerp(from.Roughness, to.Roughness, eased),
			Metalness: Lerp(from.Metalness, to.Metalness, eased),
			Opacity:   Lerp(from.Opacity, to.Opacity, eased),
		}
	}

	return outT, outM
}

// NormalizedTime maps at seconds onto [0,1] of a's duration. Looping
// animations wrap; others hold at 1 once the duration has passed.
func NormalizedTime(a *scene.Animation, at float64) float64 {
	if a.Loop {
		return math.Mod(at, a.Duration) / a.Duration
	}
	return math.Min(at/a.Duration, 1)
}

// Bracket returns the keyframes either side of u. Keyframes are ordered by
// time with a stable sort, so equal times keep their input order. Outside
// the keyframe range both results are the nearest endpoint.
func Bracket(keyframes []scene.Keyframe, u float64) (prev, next scene.Keyframe) {
	sorted := slices.Clone(keyframes)
	slices.SortStableFunc(sorted, func(a, b scene.Keyframe) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	if u < first.Time {
		return first, first
	}
	if u > last.Time {
		return last, last
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Time <= u && u <= sorted[i+1].Time {
			return sorted[i], sorted[i+1]
		}
	}

	// NaN u, or a single keyframe
	return first, first
}

// Lerp interpolates linearly from start to end.
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// LerpVector interpolates each component of a vector.
func LerpVector(start, end scene.Vector3, t float64) scene.Vector3 {
	return scene.Vector3{
		X: Lerp(start.X, end.X, t),
		Y: Lerp(start.Y, end.Y, t),
		Z: Lerp(start.Z, end.Z, t),
	}
}

func posOf(o *scene.TransformOverride) *scene.Vector3   { return o.Position }
func rotOf(o *scene.TransformOverride) *scene.Vector3   { return o.Rotation }
func scaleOf(o *scene.TransformOverride) *scene.Vector3 { return o.Scale }

func pick(o *scene.TransformOverride, fallback scene.Vector3, field func(*scene.TransformOverride) *scene.Vector3) scene.Vector3 {
	if o == nil {
		return fallback
	}
	if v := field(o); v != nil {
		return *v
	}
	return fallback
}

func mergeMaterial(base scene.Material, o *scene.MaterialOverride) scene.Material {
	if o == nil {
		return base
	}
	if o.Color != nil {
		base.Color = *o.Color
	}
	if o.Roughness != nil {
		base.Roughness = *o.Roughness
	}
	if o.Metalness != nil {
		base.Metalness = *o.Metalness
	}
	if o.Opacity != nil {
		base.Opacity = *o.Opacity
	}
	return base
}

func (ip Interpolator) color(from, to string, eased, t float64) string {
	if ip.ColorMode == ColorBlendHcl && from != to && eased > 0 && eased < 1 {
		c1, err1 := colorful.Hex(from)
		c2, err2 := colorful.Hex(to)
		if err1 == nil && err2 == nil {
			return c1.BlendHcl(c2, eased).Clamped().Hex()
		}
	}

	// Step at the end of the segment
	if eased >= 1 || t >= 1 {
		return to
	}
	return from
}

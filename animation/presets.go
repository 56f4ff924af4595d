package animation

import (
	"math"

	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/util"
)

// Preset is a ready made animation template.
type Preset struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Template    scene.Animation `json:"template"`
}

func vec(x, y, z float64) *scene.Vector3 {
	return &scene.Vector3{X: x, Y: y, Z: z}
}

func num(v float64) *float64 {
	return &v
}

func position(t float64, e scene.Easing, p *scene.Vector3) scene.Keyframe {
	return scene.Keyframe{Time: t, Easing: e, Transform: &scene.TransformOverride{Position: p}}
}

func rotation(t float64, e scene.Easing, r *scene.Vector3) scene.Keyframe {
	return scene.Keyframe{Time: t, Easing: e, Transform: &scene.TransformOverride{Rotation: r}}
}

func scale(t float64, e scene.Easing, s *scene.Vector3) scene.Keyframe {
	return scene.Keyframe{Time: t, Easing: e, Transform: &scene.TransformOverride{Scale: s}}
}

func opacity(t float64, e scene.Easing, o float64) scene.Keyframe {
	return scene.Keyframe{Time: t, Easing: e, Material: &scene.MaterialOverride{Opacity: num(o)}}
}

func loop(t scene.AnimationType, duration float64, keyframes ...scene.Keyframe) scene.Animation {
	return scene.Animation{
		Type:      t,
		Duration:  duration,
		Loop:      true,
		AutoPlay:  true,
		Enabled:   true,
		Keyframes: keyframes,
	}
}

// Presets returns the built in animation templates. Each call builds fresh
// values so callers may modify them.
func Presets() []Preset {
	return []Preset{
		{
			ID: "rotate-y", Name: "Rotate", Description: "Spin continuously around the Y axis",
			Template: loop(scene.AnimationTransform, 4,
				rotation(0, scene.EaseLinear, vec(0, 0, 0)),
				rotation(1, scene.EaseLinear, vec(0, 2*math.Pi, 0)),
			),
		},
		{
			ID: "bounce", Name: "Bounce", Description: "Bounce up and down",
			Template: loop(scene.AnimationTransform, 2,
				position(0, scene.EaseOut, vec(0, 0, 0)),
				position(0.5, scene.EaseIn, vec(0, 2, 0)),
				position(1, scene.EaseBounce, vec(0, 0, 0)),
			),
		},
		{
			ID: "pulse", Name: "Pulse", Description: "Pulse the scale in and out",
			Template: loop(scene.AnimationTransform, 1.5,
				scale(0, scene.EaseInOut, vec(1, 1, 1)),
				scale(0.5, scene.EaseInOut, vec(1.3, 1.3, 1.3)),
				scale(1, scene.EaseInOut, vec(1, 1, 1)),
			),
		},
		{
			ID: "fade", Name: "Fade", Description: "Fade the opacity out and back in",
			Template: loop(scene.AnimationMaterial, 3,
				opacity(0, scene.EaseInOut, 1),
				opacity(0.5, scene.EaseInOut, 0.2),
				opacity(1, scene.EaseInOut, 1),
			),
		},
		{
			ID: "orbit", Name: "Orbit", Description: "Orbit around the origin",
			Template: loop(scene.AnimationTransform, 6,
				position(0, scene.EaseLinear, vec(3, 0, 0)),
				position(0.25, scene.EaseLinear, vec(0, 0, 3)),
				position(0.5, scene.EaseLinear, vec(-3, 0, 0)),
				position(0.75, scene.EaseLinear, vec(0, 0, -3)),
				position(1, scene.EaseLinear, vec(3, 0, 0)),
			),
		},
	}
}

// NewFromPreset instantiates a preset with a fresh id.
func NewFromPreset(id string) (scene.Animation, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			a := p.Template
			a.ID = util.NewID("anim")
			a.Name = p.Name
			return a, true
		}
	}
	return scene.Animation{}, false
}

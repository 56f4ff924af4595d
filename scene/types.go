package scene

import "encoding/json"

// Vector3 is a three component vector. Rotations are in radians.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform places an object in the scene.
type Transform struct {
	Position Vector3 `json:"position"`
	Rotation Vector3 `json:"rotation"`
	Scale    Vector3 `json:"scale"`
}

// DefaultTransform is the identity transform given to new objects.
func DefaultTransform() Transform {
	return Transform{Scale: Vector3{1, 1, 1}}
}

// Material describes the surface of an object. Color is a hex string.
type Material struct {
	Color     string  `json:"color"`
	Roughness float64 `json:"roughness"`
	Metalness float64 `json:"metalness"`
	Opacity   float64 `json:"opacity"`
}

// DefaultMaterial is the material given to new objects.
func DefaultMaterial() Material {
	return Material{Color: "#ffffff", Roughness: 0.5, Metalness: 0, Opacity: 1}
}

// TransformOverride is a partial transform carried by a keyframe.
type TransformOverride struct {
	Position *Vector3 `json:"position,omitempty"`
	Rotation *Vector3 `json:"rotation,omitempty"`
	Scale    *Vector3 `json:"scale,omitempty"`
}

// MaterialOverride is a partial material carried by a keyframe.
type MaterialOverride struct {
	Color     *string  `json:"color,omitempty"`
	Roughness *float64 `json:"roughness,omitempty"`
	Metalness *float64 `json:"metalness,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
}

// Easing names the curve applied to a keyframe segment.
type Easing string

const (
	EaseLinear Easing = "linear"
	EaseIn     Easing = "easeIn"
	EaseOut    Easing = "easeOut"
	EaseInOut  Easing = "easeInOut"
	EaseBounce Easing = "bounce"
)

// Keyframe is a point in normalised animation time carrying partial target state.
type Keyframe struct {
	Time      float64            `json:"time"`
	Transform *TransformOverride `json:"transform,omitempty"`
	Material  *MaterialOverride  `json:"material,omitempty"`
	Easing    Easing             `json:"easing,omitempty"`
}

// AnimationType categorises an animation.
type AnimationType string

const (
	AnimationTransform AnimationType = "transform"
	AnimationMaterial  AnimationType = "material"
	AnimationCustom    AnimationType = "custom"
)

// Animation is a named keyframe track owned by an object. Duration is in seconds.
type Animation struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      AnimationType `json:"type"`
	Duration  float64       `json:"duration"`
	Loop      bool          `json:"loop"`
	AutoPlay  bool          `json:"autoPlay"`
	Enabled   bool          `json:"enabled"`
	Keyframes []Keyframe    `json:"keyframes"`
}

// ObjectType is the kind of geometry an object renders as.
type ObjectType string

const (
	TypeBox          ObjectType = "box"
	TypeSphere       ObjectType = "sphere"
	TypeCylinder     ObjectType = "cylinder"
	TypeCone         ObjectType = "cone"
	TypePlane        ObjectType = "plane"
	TypeTorus        ObjectType = "torus"
	TypeDodecahedron ObjectType = "dodecahedron"
	TypeIcosahedron  ObjectType = "icosahedron"
	TypeOctahedron   ObjectType = "octahedron"
	TypeTetrahedron  ObjectType = "tetrahedron"
	TypeRing         ObjectType = "ring"
	TypeCapsule      ObjectType = "capsule"
	TypeTube         ObjectType = "tube"
	TypePyramid      ObjectType = "pyramid"
	TypePrism        ObjectType = "prism"
	TypeModel        ObjectType = "model"
	TypeHTMLWidget   ObjectType = "htmlWidget"
)

// Dimensions is the world-space size of an object.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Object is a single item in the scene.
type Object struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       ObjectType      `json:"type"`
	Transform  Transform       `json:"transform"`
	Material   Material        `json:"material"`
	Visible    bool            `json:"visible"`
	Locked     bool            `json:"locked"`
	ModelURL   string          `json:"modelUrl,omitempty"`
	Animations []Animation     `json:"animations"`
	Widget     json.RawMessage `json:"htmlWidget,omitempty"`
	Dimensions *Dimensions     `json:"dimensions,omitempty"`
}

// TransformMode is the active gizmo mode.
type TransformMode string

const (
	ModeTranslate TransformMode = "translate"
	ModeRotate    TransformMode = "rotate"
	ModeScale     TransformMode = "scale"
)

// Settings holds editor level preferences.
type Settings struct {
	GridSize      float64       `json:"gridSize"`
	ShowGrid      bool          `json:"showGrid"`
	SnapToGrid    bool          `json:"snapToGrid"`
	TransformMode TransformMode `json:"transformMode"`
}

// DefaultSettings returns the settings of an empty editor.
func DefaultSettings() Settings {
	return Settings{GridSize: 1, ShowGrid: true, TransformMode: ModeTranslate}
}

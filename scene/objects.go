package scene

import (
	"strings"

	"github.com/google/uuid"
)

// NewObject creates a visible object of the given type with default
// transform and material.
func NewObject(t ObjectType, name string) Object {
	if name == "" {
		name = string(t)
	}
	o := Object{
		ID:        newObjectID(string(t)),
		Name:      name,
		Type:      t,
		Transform: DefaultTransform(),
		Material:  DefaultMaterial(),
		Visible:   true,
	}
	o.refreshDimensions()
	return o
}

func newObjectID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// Duplicates returns copies of the listed objects, offset by one unit on x
// and z and renamed with a " Copy" suffix. Ids that do not exist are skipped.
func (s *Scene) Duplicates(ids []string) []Object {
	out := make([]Object, 0, len(ids))
	for _, id := range ids {
		o, found := s.Object(id)
		if !found {
			continue
		}
		o.ID = newObjectID(id + "_copy")
		o.Name += " Copy"
		o.Transform.Position.X++
		o.Transform.Position.Z++
		out = append(out, o)
	}
	return out
}

var baseDimensions = map[ObjectType]Dimensions{
	TypeBox:          {1, 1, 1},
	TypeSphere:       {1, 1, 1},
	TypeCylinder:     {1, 1, 1},
	TypeCone:         {1, 1, 1},
	TypePlane:        {1, 0, 1},
	TypeTorus:        {1, 0.4, 1},
	TypeDodecahedron: {1, 1, 1},
	TypeIcosahedron:  {1, 1, 1},
	TypeOctahedron:   {1, 1, 1},
	TypeTetrahedron:  {1, 1, 1},
	TypeRing:         {1, 0, 1},
	TypeCapsule:      {0.6, 1, 0.6},
	TypeTube:         {1, 0.2, 1},
	TypePyramid:      {1, 1, 1},
	TypePrism:        {1, 1, 1},
	TypeModel:        {2, 2, 2},
}

// Known reports whether t is an object type the editor can create.
func (t ObjectType) Known() bool {
	_, found := baseDimensions[t]
	return found || t == TypeHTMLWidget
}

// ObjectDimensions returns the size of a primitive after scaling. Unknown
// types use the box size.
func ObjectDimensions(t ObjectType, scale Vector3) Dimensions {
	base, found := baseDimensions[t]
	if !found {
		base = baseDimensions[TypeBox]
	}
	return Dimensions{
		Width:  base.Width * scale.X,
		Height: base.Height * scale.Y,
		Depth:  base.Depth * scale.Z,
	}
}

// refreshDimensions recomputes the size of o from its type and scale. HTML
// widgets have no size.
func (o *Object) refreshDimensions() {
	if o.Type == TypeHTMLWidget {
		o.Dimensions = nil
		return
	}
	d := ObjectDimensions(o.Type, o.Transform.Scale)
	o.Dimensions = &d
}

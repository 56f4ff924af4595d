package scene

import "github.com/matt-g-everett/scenetx/util"

// CommandKind discriminates the payload carried by a Command.
type CommandKind string

const (
	KindAdd        CommandKind = "add"
	KindDelete     CommandKind = "delete"
	KindTransform  CommandKind = "transform"
	KindMaterial   CommandKind = "material"
	KindAnimations CommandKind = "animations"
)

// AddPayload adds objects on apply and removes them on invert.
type AddPayload struct {
	Objects []Object `json:"objects"`
}

// DeletePayload holds the objects captured when the delete was built.
type DeletePayload struct {
	Objects []Object `json:"objects"`
}

// TransformPayload moves one object between two transforms.
type TransformPayload struct {
	ObjectID string    `json:"objectId"`
	Before   Transform `json:"before"`
	After    Transform `json:"after"`
}

// MaterialPayload swaps one object between two materials.
type MaterialPayload struct {
	ObjectID string   `json:"objectId"`
	Before   Material `json:"before"`
	After    Material `json:"after"`
}

// AnimationsPayload swaps the animation list of one object.
type AnimationsPayload struct {
	ObjectID string      `json:"objectId"`
	Before   []Animation `json:"before"`
	After    []Animation `json:"after"`
}

// Command is a reversible scene edit. Exactly one payload matching Kind is
// set. Commands are values and are not modified once built, so a recorded
// history can be serialised and replayed.
type Command struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Kind       CommandKind        `json:"kind"`
	Add        *AddPayload        `json:"add,omitempty"`
	Delete     *DeletePayload     `json:"delete,omitempty"`
	Transform  *TransformPayload  `json:"transform,omitempty"`
	Material   *MaterialPayload   `json:"material,omitempty"`
	Animations *AnimationsPayload `json:"animations,omitempty"`
}

func newCommand(kind CommandKind, name string) Command {
	return Command{
		ID:   util.NewID(string(kind)),
		Name: name,
		Kind: kind,
	}
}

// NewAddCommand builds a command adding copies of objs.
func NewAddCommand(objs ...Object) Command {
	c := newCommand(KindAdd, "Add Object")
	if len(objs) > 1 {
		c.Name = "Add Objects"
	}
	p := &AddPayload{Objects: make([]Object, 0, len(objs))}
	for _, o := range objs {
		p.Objects = append(p.Objects, CloneObject(o))
	}
	c.Add = p
	return c
}

// NewDuplicateCommand builds an add command for copies of the listed objects.
func NewDuplicateCommand(s *Scene, ids []string) Command {
	c := NewAddCommand(s.Duplicates(ids)...)
	c.Name = "Duplicate Objects"
	return c
}

// NewDeleteCommand snapshots the listed objects so they can be restored.
// Ids that do not exist in s are skipped.
func NewDeleteCommand(s *Scene, ids []string) Command {
	c := newCommand(KindDelete, "Delete Object")
	p := &DeletePayload{Objects: make([]Object, 0, len(ids))}
	for _, id := range ids {
		if o, found := s.Object(id); found {
			p.Objects = append(p.Objects, o)
		}
	}
	c.Delete = p
	return c
}

// NewTransformCommand builds a command moving an object from before to after.
func NewTransformCommand(id string, before, after Transform) Command {
	c := newCommand(KindTransform, "Transform Object")
	c.Transform = &TransformPayload{ObjectID: id, Before: before, After: after}
	return c
}

// NewMaterialCommand builds a command changing the material of an object.
func NewMaterialCommand(id string, before, after Material) Command {
	c := newCommand(KindMaterial, "Change Material")
	c.Material = &MaterialPayload{ObjectID: id, Before: before, After: after}
	return c
}

// NewAnimationsCommand builds a command replacing the animations of an object.
func NewAnimationsCommand(name, id string, before, after []Animation) Command {
	c := newCommand(KindAnimations, name)
	c.Animations = &AnimationsPayload{
		ObjectID: id,
		Before:   CloneAnimations(before),
		After:    CloneAnimations(after),
	}
	return c
}

// Apply performs the forward edit on s.
func (c Command) Apply(s *Scene) {
	switch c.Kind {
	case KindAdd:
		if c.Add != nil {
			s.AddObjects(c.Add.Objects)
		}
	case KindDelete:
		if c.Delete != nil {
			s.DeleteObjects(objectIDs(c.Delete.Objects))
		}
	case KindTransform:
		if c.Transform != nil {
			s.SetTransform(c.Transform.ObjectID, c.Transform.After)
		}
	case KindMaterial:
		if c.Material != nil {
			s.SetMaterial(c.Material.ObjectID, c.Material.After)
		}
	case KindAnimations:
		if c.Animations != nil {
			s.SetAnimations(c.Animations.ObjectID, c.Animations.After)
		}
	}
}

// Invert reverses the edit made by Apply.
func (c Command) Invert(s *Scene) {
	switch c.Kind {
	case KindAdd:
		if c.Add != nil {
			s.DeleteObjects(objectIDs(c.Add.Objects))
		}
	case KindDelete:
		if c.Delete != nil && len(c.Delete.Objects) > 0 {
			s.AddObjects(c.Delete.Objects)
		}
	case KindTransform:
		if c.Transform != nil {
			s.SetTransform(c.Transform.ObjectID, c.Transform.Before)
		}
	case KindMaterial:
		if c.Material != nil {
			s.SetMaterial(c.Material.ObjectID, c.Material.Before)
		}
	case KindAnimations:
		if c.Animations != nil {
			s.SetAnimations(c.Animations.ObjectID, c.Animations.Before)
		}
	}
}

func objectIDs(objs []Object) []string {
	ids := make([]string, len(objs))
	for i, o := range objs {
		ids[i] = o.ID
	}
	return ids
}

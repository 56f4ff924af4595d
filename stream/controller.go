package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matt-g-everett/scenetx/animation"
	"github.com/matt-g-everett/scenetx/editor"
	"github.com/matt-g-everett/scenetx/scene"
)

// ControlMessage is a remote edit or playback request received on the
// control topic.
type ControlMessage struct {
	Type        string           `json:"type"`
	ObjectID    string           `json:"objectId,omitempty"`
	IDs         []string         `json:"ids,omitempty"`
	ObjectType  scene.ObjectType `json:"objectType,omitempty"`
	Name        string           `json:"name,omitempty"`
	ModelID     string           `json:"modelId,omitempty"`
	Transform   *scene.Transform `json:"transform,omitempty"`
	Material    *scene.Material  `json:"material,omitempty"`
	Animation   *scene.Animation `json:"animation,omitempty"`
	AnimationID string           `json:"animationId,omitempty"`
	Time        float64          `json:"time,omitempty"`
	Preset      string           `json:"preset,omitempty"`
}

// Controller applies control messages to an Editor.
type Controller struct {
	editor *editor.Editor
}

// NewController creates a Controller for ed.
func NewController(ed *editor.Editor) *Controller {
	c := new(Controller)
	c.editor = ed
	return c
}

// HandlePayload decodes a JSON control message and handles it.
func (c *Controller) HandlePayload(payload []byte) (editor.Status, error) {
	var msg ControlMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return c.editor.Status(), fmt.Errorf("decode control message: %w", err)
	}
	return c.Handle(msg)
}

// Handle applies msg and returns the resulting status. Undo and redo at the
// ends of the history are not errors.
func (c *Controller) Handle(msg ControlMessage) (editor.Status, error) {
	var err error
	switch msg.Type {
	case "undo":
		c.editor.Undo()
	case "redo":
		c.editor.Redo()
	case "play":
		c.editor.Play()
	case "pause":
		c.editor.Pause()
	case "stop":
		c.editor.Stop()
	case "seek":
		c.editor.Seek(msg.Time)
	case "select":
		c.editor.Select(msg.IDs)
	case "selectAll":
		c.editor.SelectAll()
	case "clear":
		c.editor.Clear()
	case "add":
		err = c.add(msg)
	case "transform":
		if msg.Transform == nil {
			err = errors.New("transform message without a transform")
			break
		}
		err = c.editor.Transform(msg.ObjectID, *msg.Transform)
	case "material":
		if msg.Material == nil {
			err = errors.New("material message without a material")
			break
		}
		err = c.editor.SetMaterial(msg.ObjectID, *msg.Material)
	case "delete":
		var deleted bool
		if len(msg.IDs) == 0 && msg.ObjectID == "" {
			deleted = c.editor.DeleteSelected()
		} else {
			deleted = c.editor.Delete(c.targets(msg))
		}
		if !deleted {
			err = fmt.Errorf("delete: %w", editor.ErrNotFound)
		}
	case "duplicate":
		if c.editor.Duplicate(c.targets(msg)) == nil {
			err = fmt.Errorf("duplicate: %w", editor.ErrNotFound)
		}
	case "animate":
		a, found := animation.NewFromPreset(msg.Preset)
		if !found {
			err = fmt.Errorf("preset %q: %w", msg.Preset, editor.ErrNotFound)
			break
		}
		err = c.editor.AddAnimation(msg.ObjectID, a)
	case "addAnimation", "updateAnimation":
		if msg.Animation == nil {
			err = fmt.Errorf("%s message without an animation", msg.Type)
			break
		}
		if msg.Type == "addAnimation" {
			err = c.editor.AddAnimation(msg.ObjectID, *msg.Animation)
		} else {
			err = c.editor.UpdateAnimation(msg.ObjectID, *msg.Animation)
		}
	case "removeAnimation":
		err = c.editor.RemoveAnimation(msg.ObjectID, msg.AnimationID)
	default:
		err = fmt.Errorf("unknown control message type %q", msg.Type)
	}
	return c.editor.Status(), err
}

// add creates a primitive, or a model object when a registered model is named.
func (c *Controller) add(msg ControlMessage) error {
	if msg.ModelID != "" {
		_, err := c.editor.AddModelObject(msg.ModelID)
		return err
	}
	if !msg.ObjectType.Known() {
		return fmt.Errorf("unknown object type %q", msg.ObjectType)
	}
	c.editor.AddObject(scene.NewObject(msg.ObjectType, msg.Name))
	return nil
}

// Messages without ids act on the selection.
func (c *Controller) targets(msg ControlMessage) []string {
	if len(msg.IDs) > 0 {
		return msg.IDs
	}
	if msg.ObjectID != "" {
		return []string{msg.ObjectID}
	}
	return c.editor.Selection()
}

package editor

import (
	"encoding/json"

	"github.com/matt-g-everett/scenetx/scene"
)

// ObjectState is the evaluated look of one object in a Frame.
type ObjectState struct {
	ID         string            `json:"id"`
	Transform  scene.Transform   `json:"transform"`
	Material   scene.Material    `json:"material"`
	Visible    bool              `json:"visible"`
	Dimensions *scene.Dimensions `json:"dimensions,omitempty"`
}

// Frame is the state of every object at one point of the animation clock.
type Frame struct {
	Time    float64       `json:"time"`
	Playing bool          `json:"playing"`
	Objects []ObjectState `json:"objects"`
}

// Object finds the state of an object in the frame.
func (f Frame) Object(id string) (ObjectState, bool) {
	for _, o := range f.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return ObjectState{}, false
}

// MarshalBinary encodes the frame for streaming.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	return json.Marshal(f)
}

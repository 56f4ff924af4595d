package scene

import (
	"slices"
	"time"
)

// Model is an entry in the registry of uploaded model files that model
// objects refer to through their ModelURL.
type Model struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AddModel registers m, replacing any model with the same id. The registry
// is not part of the document and survives Clear and Import.
func (s *Scene) AddModel(m Model) {
	i := slices.IndexFunc(s.models, func(x Model) bool { return x.ID == m.ID })
	if i >= 0 {
		s.models[i] = m
		return
	}
	s.models = append(s.models, m)
}

// RemoveModel drops a model from the registry. Objects already using its
// URL are left alone.
func (s *Scene) RemoveModel(id string) bool {
	n := len(s.models)
	s.models = slices.DeleteFunc(s.models, func(m Model) bool { return m.ID == id })
	return len(s.models) != n
}

// Model looks up a registered model.
func (s *Scene) Model(id string) (Model, bool) {
	i := slices.IndexFunc(s.models, func(m Model) bool { return m.ID == id })
	if i < 0 {
		return Model{}, false
	}
	return s.models[i], true
}

// Models returns the registered models in upload order.
func (s *Scene) Models() []Model {
	return slices.Clone(s.models)
}

// NewModelObject creates a model object that loads m.
func NewModelObject(m Model) Object {
	o := NewObject(TypeModel, m.Name)
	o.ModelURL = m.URL
	return o
}

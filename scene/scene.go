package scene

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// Scene is the mutable editor state that commands act on. It holds the
// objects, the selection, the editor settings and any opaque data sources
// used by widgets. A Scene is not safe for concurrent use.
type Scene struct {
	objects     map[string]*Object
	selected    []string
	settings    Settings
	dataSources map[string]json.RawMessage
	models      []Model
}

// New creates an empty Scene.
func New() *Scene {
	s := new(Scene)
	s.objects = make(map[string]*Object)
	s.settings = DefaultSettings()
	s.dataSources = make(map[string]json.RawMessage)
	return s
}

// CloneObject returns a deep copy of o.
func CloneObject(o Object) Object {
	var out Object
	err := copier.CopyWithOption(&out, &o, copier.Option{DeepCopy: true})
	if err != nil {
		log.Warn().Err(err).Str("object", o.ID).Msg("Deep copy failed, falling back to shallow copy")
		out = o
		out.Animations = slices.Clone(o.Animations)
	}

	// Keep nil and empty distinct so round trips stay exact
	if o.Animations == nil {
		out.Animations = nil
	}
	if o.Widget == nil {
		out.Widget = nil
	}
	if o.Dimensions == nil {
		out.Dimensions = nil
	}

	return out
}

// CloneAnimations returns a deep copy of anims.
func CloneAnimations(anims []Animation) []Animation {
	if anims == nil {
		return nil
	}
	o := CloneObject(Object{Animations: anims})
	return o.Animations
}

// AddObject stores a copy of o and selects it.
func (s *Scene) AddObject(o Object) {
	s.AddObjects([]Object{o})
}

// AddObjects stores copies of objs and selects them.
func (s *Scene) AddObjects(objs []Object) {
	ids := make([]string, 0, len(objs))
	for _, o := range objs {
		c := CloneObject(o)
		s.objects[o.ID] = &c
		ids = append(ids, o.ID)
	}
	s.selected = ids
}

// RemoveObject removes an object and drops it from the selection.
func (s *Scene) RemoveObject(id string) bool {
	_, found := s.objects[id]
	s.DeleteObjects([]string{id})
	return found
}

// DeleteObjects removes every listed object. Unknown ids are ignored.
func (s *Scene) DeleteObjects(ids []string) {
	for _, id := range ids {
		delete(s.objects, id)
	}
	s.selected = slices.DeleteFunc(s.selected, func(id string) bool {
		return slices.Contains(ids, id)
	})
}

// Has reports whether an object exists.
func (s *Scene) Has(id string) bool {
	_, found := s.objects[id]
	return found
}

// Object returns a copy of an object.
func (s *Scene) Object(id string) (Object, bool) {
	o, found := s.objects[id]
	if !found {
		return Object{}, false
	}
	return CloneObject(*o), true
}

// Objects returns copies of all objects ordered by id.
func (s *Scene) Objects() []Object {
	ids := s.IDs()
	out := make([]Object, 0, len(ids))
	for _, id := range ids {
		out = append(out, CloneObject(*s.objects[id]))
	}
	return out
}

// IDs returns the sorted object ids.
func (s *Scene) IDs() []string {
	ids := make([]string, 0, len(s.objects))
	for id := range s.objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of objects in the scene.
func (s *Scene) Len() int {
	return len(s.objects)
}

// SetTransform replaces the transform of an object and recomputes its
// dimensions.
func (s *Scene) SetTransform(id string, t Transform) bool {
	o, found := s.objects[id]
	if found {
		o.Transform = t
		o.refreshDimensions()
	}
	return found
}

// SetMaterial replaces the material of an object.
func (s *Scene) SetMaterial(id string, m Material) bool {
	o, found := s.objects[id]
	if found {
		o.Material = m
	}
	return found
}

// SetAnimations replaces the animation list of an object.
func (s *Scene) SetAnimations(id string, anims []Animation) bool {
	o, found := s.objects[id]
	if found {
		o.Animations = CloneAnimations(anims)
	}
	return found
}

// Select replaces the selection. Ids that do not exist are dropped.
func (s *Scene) Select(ids []string) {
	s.selected = make([]string, 0, len(ids))
	for _, id := range ids {
		if s.Has(id) && !slices.Contains(s.selected, id) {
			s.selected = append(s.selected, id)
		}
	}
}

// SelectAll selects every object.
func (s *Scene) SelectAll() {
	s.selected = s.IDs()
}

// Selection returns the selected ids.
func (s *Scene) Selection() []string {
	return slices.Clone(s.selected)
}

// Settings returns the editor settings.
func (s *Scene) Settings() Settings {
	return s.settings
}

// SetSettings replaces the editor settings.
func (s *Scene) SetSettings(settings Settings) {
	s.settings = settings
}

// DataSources returns a copy of the widget data sources.
func (s *Scene) DataSources() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(s.dataSources))
	for id, raw := range s.dataSources {
		out[id] = slices.Clone(raw)
	}
	return out
}

// SetDataSource adds or replaces a widget data source.
func (s *Scene) SetDataSource(id string, raw json.RawMessage) {
	s.dataSources[id] = slices.Clone(raw)
}

// RemoveDataSource removes a widget data source.
func (s *Scene) RemoveDataSource(id string) {
	delete(s.dataSources, id)
}

// Clear removes all objects, selection and data sources.
func (s *Scene) Clear() {
	s.objects = make(map[string]*Object)
	s.selected = nil
	s.dataSources = make(map[string]json.RawMessage)
}

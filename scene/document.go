package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// DocumentVersion is written into every exported document.
const DocumentVersion = "1.0.0"

// DocumentSettings is the subset of settings persisted with a scene.
type DocumentSettings struct {
	GridSize float64 `json:"gridSize,omitempty"`
	ShowGrid *bool   `json:"showGrid,omitempty"`
}

// Metadata describes an exported scene.
type Metadata struct {
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Document is the JSON form of a scene used for import and export.
type Document struct {
	Version     string                     `json:"version"`
	Objects     map[string]Object          `json:"objects"`
	DataSources map[string]json.RawMessage `json:"dataSources,omitempty"`
	Settings    DocumentSettings           `json:"settings"`
	Metadata    Metadata                   `json:"metadata"`
}

// Export snapshots the scene into a Document.
func (s *Scene) Export(name string, now time.Time) Document {
	if name == "" {
		name = "Untitled Scene"
	}
	showGrid := s.settings.ShowGrid
	doc := Document{
		Version:     DocumentVersion,
		Objects:     make(map[string]Object, len(s.objects)),
		DataSources: s.DataSources(),
		Settings: DocumentSettings{
			GridSize: s.settings.GridSize,
			ShowGrid: &showGrid,
		},
		Metadata: Metadata{Name: name, CreatedAt: now.UTC(), ModifiedAt: now.UTC()},
	}
	for id, o := range s.objects {
		doc.Objects[id] = CloneObject(*o)
	}
	return doc
}

// Import replaces the scene contents with doc. The selection is cleared and
// missing settings fall back to a grid size of 1 with the grid shown.
func (s *Scene) Import(doc Document) {
	s.Clear()
	for id, o := range doc.Objects {
		if o.ID == "" {
			o.ID = id
		}
		c := CloneObject(o)
		s.objects[id] = &c
	}
	for id, raw := range doc.DataSources {
		s.SetDataSource(id, raw)
	}

	s.settings.GridSize = doc.Settings.GridSize
	if s.settings.GridSize == 0 {
		s.settings.GridSize = 1
	}
	s.settings.ShowGrid = true
	if doc.Settings.ShowGrid != nil {
		s.settings.ShowGrid = *doc.Settings.ShowGrid
	}
}

// DecodeDocument reads a JSON document from r.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("invalid scene document: %w", err)
	}
	return doc, nil
}

// Validate reports problems that would make the document render oddly:
// unparsable colours, non-positive durations and keyframe times outside
// [0,1]. Interpolation tolerates all of these, so callers decide whether
// to reject the document.
func (d Document) Validate() error {
	var errs []error
	for id, o := range d.Objects {
		if o.ID != "" && o.ID != id {
			errs = append(errs, fmt.Errorf("object %q: id does not match key %q", o.ID, id))
		}
		if _, err := colorful.Hex(o.Material.Color); err != nil {
			errs = append(errs, fmt.Errorf("object %q: material color %q: %w", id, o.Material.Color, err))
		}
		for _, a := range o.Animations {
			errs = append(errs, validateAnimation(id, a)...)
		}
	}
	return errors.Join(errs...)
}

func validateAnimation(objectID string, a Animation) []error {
	var errs []error
	if !(a.Duration > 0) {
		errs = append(errs, fmt.Errorf("object %q animation %q: duration %v must be positive", objectID, a.ID, a.Duration))
	}
	for i, k := range a.Keyframes {
		if math.IsNaN(k.Time) || k.Time < 0 || k.Time > 1 {
			errs = append(errs, fmt.Errorf("object %q animation %q keyframe %d: time %v outside [0,1]", objectID, a.ID, i, k.Time))
		}
		if k.Material != nil && k.Material.Color != nil {
			if _, err := colorful.Hex(*k.Material.Color); err != nil {
				errs = append(errs, fmt.Errorf("object %q animation %q keyframe %d: color %q: %w", objectID, a.ID, i, *k.Material.Color, err))
			}
		}
	}
	return errs
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/matt-g-everett/scenetx/animation"
	"github.com/matt-g-everett/scenetx/editor"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/util"
)

func (a *Api) objectRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/objects", a.listObjects)
	mux.HandleFunc("POST /api/objects", a.createObject)
	mux.HandleFunc("GET /api/objects/{id}", a.getObject)
	mux.HandleFunc("DELETE /api/objects/{id}", a.deleteObject)
	mux.HandleFunc("POST /api/objects/{id}/duplicate", a.duplicateObject)
	mux.HandleFunc("PUT /api/objects/{id}/transform", a.setTransform)
	mux.HandleFunc("PUT /api/objects/{id}/material", a.setMaterial)
	mux.HandleFunc("POST /api/objects/{id}/animations", a.addAnimation)
	mux.HandleFunc("PUT /api/objects/{id}/animations/{animID}", a.updateAnimation)
	mux.HandleFunc("DELETE /api/objects/{id}/animations/{animID}", a.removeAnimation)

	mux.HandleFunc("GET /api/selection", a.getSelection)
	mux.HandleFunc("PUT /api/selection", a.setSelection)
	mux.HandleFunc("DELETE /api/selection", a.deleteSelection)

	mux.HandleFunc("GET /api/settings", a.getSettings)
	mux.HandleFunc("PUT /api/settings", a.putSettings)
	mux.HandleFunc("PUT /api/datasources/{id}", a.putDataSource)
	mux.HandleFunc("DELETE /api/datasources/{id}", a.deleteDataSource)

	mux.HandleFunc("GET /api/models", a.listModels)
	mux.HandleFunc("POST /api/models", a.registerModel)
	mux.HandleFunc("DELETE /api/models/{id}", a.deleteModel)
	mux.HandleFunc("GET /api/presets", a.listPresets)
}

func editError(w http.ResponseWriter, err error) {
	if errors.Is(err, editor.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

func (a *Api) created(w http.ResponseWriter, id string) {
	o, _ := a.editor.Object(id)
	writeJSON(w, http.StatusCreated, o)
}

func (a *Api) listObjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.editor.Objects())
}

// createObject adds a primitive of the requested type, or an object
// loading a registered model when modelId is set.
func (a *Api) createObject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    scene.ObjectType `json:"type"`
		Name    string           `json:"name"`
		ModelID string           `json:"modelId"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	if req.ModelID != "" {
		id, err := a.editor.AddModelObject(req.ModelID)
		if err != nil {
			editError(w, err)
			return
		}
		a.created(w, id)
		return
	}
	if !req.Type.Known() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown object type %q", req.Type))
		return
	}
	a.created(w, a.editor.AddObject(scene.NewObject(req.Type, req.Name)))
}

func (a *Api) getObject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	o, found := a.editor.Object(id)
	if !found {
		editError(w, fmt.Errorf("object %q: %w", id, editor.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *Api) deleteObject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !a.editor.Delete([]string{id}) {
		editError(w, fmt.Errorf("object %q: %w", id, editor.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) duplicateObject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ids := a.editor.Duplicate([]string{id})
	if len(ids) == 0 {
		editError(w, fmt.Errorf("object %q: %w", id, editor.ErrNotFound))
		return
	}
	a.created(w, ids[0])
}

func (a *Api) setTransform(w http.ResponseWriter, r *http.Request) {
	var t scene.Transform
	if !a.decode(w, r, &t) {
		return
	}
	if err := a.editor.Transform(r.PathValue("id"), t); err != nil {
		editError(w, err)
		return
	}
	a.getObject(w, r)
}

func (a *Api) setMaterial(w http.ResponseWriter, r *http.Request) {
	var m scene.Material
	if !a.decode(w, r, &m) {
		return
	}
	if err := a.editor.SetMaterial(r.PathValue("id"), m); err != nil {
		editError(w, err)
		return
	}
	a.getObject(w, r)
}

// addAnimation attaches the animation in the body, or instantiates the
// preset named by ?preset=.
func (a *Api) addAnimation(w http.ResponseWriter, r *http.Request) {
	var anim scene.Animation
	if preset := r.URL.Query().Get("preset"); preset != "" {
		var found bool
		anim, found = animation.NewFromPreset(preset)
		if !found {
			editError(w, fmt.Errorf("preset %q: %w", preset, editor.ErrNotFound))
			return
		}
	} else {
		if !a.decode(w, r, &anim) {
			return
		}
		if anim.ID == "" {
			anim.ID = util.NewID("anim")
		}
	}
	if err := a.editor.AddAnimation(r.PathValue("id"), anim); err != nil {
		editError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, anim)
}

func (a *Api) updateAnimation(w http.ResponseWriter, r *http.Request) {
	var anim scene.Animation
	if !a.decode(w, r, &anim) {
		return
	}
	anim.ID = r.PathValue("animID")
	if err := a.editor.UpdateAnimation(r.PathValue("id"), anim); err != nil {
		editError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, anim)
}

func (a *Api) removeAnimation(w http.ResponseWriter, r *http.Request) {
	if err := a.editor.RemoveAnimation(r.PathValue("id"), r.PathValue("animID")); err != nil {
		editError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) getSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.editor.Selection())
}

// setSelection replaces the selection with ids, or selects everything
// when all is true.
func (a *Api) setSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
		All bool     `json:"all"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	if req.All {
		a.editor.SelectAll()
	} else {
		a.editor.Select(req.IDs)
	}
	writeJSON(w, http.StatusOK, a.editor.Selection())
}

func (a *Api) deleteSelection(w http.ResponseWriter, r *http.Request) {
	if !a.editor.DeleteSelected() {
		editError(w, fmt.Errorf("selection: %w", editor.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.editor.Settings())
}

func (a *Api) putSettings(w http.ResponseWriter, r *http.Request) {
	var s scene.Settings
	if !a.decode(w, r, &s) {
		return
	}
	a.editor.SetSettings(s)
	writeJSON(w, http.StatusOK, a.editor.Settings())
}

func (a *Api) putDataSource(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !a.decode(w, r, &raw) {
		return
	}
	if err := a.editor.SetDataSource(r.PathValue("id"), raw); err != nil {
		editError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) deleteDataSource(w http.ResponseWriter, r *http.Request) {
	if err := a.editor.RemoveDataSource(r.PathValue("id")); err != nil {
		editError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) listModels(w http.ResponseWriter, r *http.Request) {
	models := a.editor.Models()
	if models == nil {
		models = []scene.Model{}
	}
	writeJSON(w, http.StatusOK, models)
}

// registerModel records an already uploaded model file by URL.
func (a *Api) registerModel(w http.ResponseWriter, r *http.Request) {
	var m scene.Model
	if !a.decode(w, r, &m) {
		return
	}
	if m.URL == "" {
		writeError(w, http.StatusBadRequest, errors.New("model url is required"))
		return
	}
	if m.ID == "" {
		m.ID = util.NewID("model")
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	m.UploadedAt = a.now().UTC()
	a.editor.AddModel(m)
	writeJSON(w, http.StatusCreated, m)
}

func (a *Api) deleteModel(w http.ResponseWriter, r *http.Request) {
	if err := a.editor.RemoveModel(r.PathValue("id")); err != nil {
		editError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) listPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, animation.Presets())
}

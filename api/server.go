package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/scenetx/editor"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/storage"
)

// DefaultMaxBodyBytes caps the size of request bodies.
const DefaultMaxBodyBytes = 16 << 20

// Api serves the editor over HTTP, along with the static client files.
type Api struct {
	editor    *editor.Editor
	store     *storage.Store
	staticDir string
	maxBody   int64
	now       func() time.Time
}

// NewApi creates an Api. store may be nil, in which case the saved scene
// routes answer 503.
func NewApi(ed *editor.Editor, store *storage.Store, staticDir string) *Api {
	a := new(Api)
	a.editor = ed
	a.store = store
	a.staticDir = staticDir
	a.maxBody = DefaultMaxBodyBytes
	a.now = time.Now
	return a
}

// Handler returns the routes of the Api.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scene", a.getScene)
	mux.HandleFunc("PUT /api/scene", a.putScene)
	mux.HandleFunc("DELETE /api/scene", a.clearScene)
	mux.HandleFunc("GET /api/history", a.history)
	mux.HandleFunc("POST /api/undo", a.undo)
	mux.HandleFunc("POST /api/redo", a.redo)
	mux.HandleFunc("GET /api/status", a.status)
	mux.HandleFunc("GET /api/frame", a.frame)
	mux.HandleFunc("GET /api/scenes", a.listScenes)
	mux.HandleFunc("GET /api/scenes/{name}", a.loadScene)
	mux.HandleFunc("PUT /api/scenes/{name}", a.saveScene)
	mux.HandleFunc("DELETE /api/scenes/{name}", a.deleteScene)
	a.objectRoutes(mux)
	if a.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.staticDir)))
	}
	return mux
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Info().Str("addr", addr).Msg("Listening...")
	return http.ListenAndServe(addr, a.Handler())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// decode reads a JSON body into v, answering 400 or 413 itself on failure.
func (a *Api) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		decodeError(w, err)
		return false
	}
	return true
}

func decodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

func (a *Api) getScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.editor.Export(a.now()))
}

func (a *Api) putScene(w http.ResponseWriter, r *http.Request) {
	doc, err := scene.DecodeDocument(http.MaxBytesReader(w, r.Body, a.maxBody))
	if err != nil {
		decodeError(w, err)
		return
	}
	if err := doc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	a.editor.Import(doc)
	writeJSON(w, http.StatusOK, a.editor.Status())
}

func (a *Api) clearScene(w http.ResponseWriter, r *http.Request) {
	a.editor.Clear()
	writeJSON(w, http.StatusOK, a.editor.Status())
}

// history lists the recorded commands with the cursor; index -1 means
// nothing can be undone.
func (a *Api) history(w http.ResponseWriter, r *http.Request) {
	st := a.editor.Status()
	writeJSON(w, http.StatusOK, struct {
		Index    int             `json:"index"`
		Commands []scene.Command `json:"commands"`
	}{st.HistoryIdx, a.editor.History()})
}

func (a *Api) undo(w http.ResponseWriter, r *http.Request) {
	a.editor.Undo()
	writeJSON(w, http.StatusOK, a.editor.Status())
}

func (a *Api) redo(w http.ResponseWriter, r *http.Request) {
	a.editor.Redo()
	writeJSON(w, http.StatusOK, a.editor.Status())
}

func (a *Api) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.editor.Status())
}

// frame evaluates the scene at ?t= seconds, or at the clock when t is absent.
func (a *Api) frame(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("t")
	if raw == "" {
		writeJSON(w, http.StatusOK, a.editor.Evaluate())
		return
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, a.editor.EvaluateAt(t))
}

func (a *Api) storeAvailable(w http.ResponseWriter) bool {
	if a.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("scene storage is not configured"))
		return false
	}
	return true
}

func storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func (a *Api) listScenes(w http.ResponseWriter, r *http.Request) {
	if !a.storeAvailable(w) {
		return
	}
	records, err := a.store.List()
	if err != nil {
		storeError(w, err)
		return
	}
	if records == nil {
		records = []storage.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// loadScene imports a saved scene into the editor.
func (a *Api) loadScene(w http.ResponseWriter, r *http.Request) {
	if !a.storeAvailable(w) {
		return
	}
	doc, err := a.store.Load(r.PathValue("name"))
	if err != nil {
		storeError(w, err)
		return
	}
	a.editor.Import(doc)
	writeJSON(w, http.StatusOK, doc)
}

// saveScene stores the editor's current scene under the given name.
func (a *Api) saveScene(w http.ResponseWriter, r *http.Request) {
	if !a.storeAvailable(w) {
		return
	}
	name := r.PathValue("name")
	doc := a.editor.Export(a.now())
	doc.Metadata.Name = name
	rec, err := a.store.Save(name, doc)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *Api) deleteScene(w http.ResponseWriter, r *http.Request) {
	if !a.storeAvailable(w) {
		return
	}
	if err := a.store.Delete(r.PathValue("name")); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

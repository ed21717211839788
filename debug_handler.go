package modgraph

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewDebugHandler returns a read-only HTTP view of the application's module
// graph:
//
//	GET /modules          every built module, imports first
//	GET /modules/{name}   one module
//	GET /globals          global identities and their declaring module
//
// The graph is built on the first request. A failed build is reported as 500.
func NewDebugHandler(app *Application) http.Handler {
	h := &debugHandler{app: app}

	r := chi.NewRouter()
	r.Get("/modules", h.listModules)
	r.Get("/modules/{name}", h.getModule)
	r.Get("/globals", h.listGlobals)
	return r
}

type debugHandler struct {
	app *Application
}

func (h *debugHandler) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.app.Modules()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"root":    h.app.root.Name(),
		"modules": modules,
	})
}

func (h *debugHandler) getModule(w http.ResponseWriter, r *http.Request) {
	if _, err := h.app.Container(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	name := chi.URLParam(r, "name")
	c, ok := h.app.Module(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "module " + name + " not found"})
		return
	}
	writeJSON(w, http.StatusOK, c.Describe())
}

func (h *debugHandler) listGlobals(w http.ResponseWriter, r *http.Request) {
	globals, err := h.app.Globals()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"globals": globals})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

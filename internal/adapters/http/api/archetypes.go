package api

import (
	"net/http"
	"strings"

	"github.com/okian/fairway/internal/domain/archetype"
)

// ArchetypesDependencies exposes the archetype taxonomy.
type ArchetypesDependencies interface {
	Archetypes(query string) []archetype.Archetype
	Archetype(id string) (archetype.Archetype, error)
}

// ArchetypesHandler handles GET /archetypes and GET /archetypes/{id}.
type ArchetypesHandler struct {
	deps ArchetypesDependencies
}

// NewArchetypesHandler creates a new archetypes handler.
func NewArchetypesHandler(deps ArchetypesDependencies) *ArchetypesHandler {
	return &ArchetypesHandler{deps: deps}
}

// HandleList returns every archetype, or the fuzzy matches of ?q=.
func (h *ArchetypesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Archetypes(r.URL.Query().Get("q")))
}

// HandleGet returns one archetype. Ids are case-insensitive.
func (h *ArchetypesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.Archetype(strings.ToUpper(r.PathValue("id")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

// familyResponse is the wire shape of one yellow-pages family.
type familyResponse struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// handleListFamilies serves GET /families.
func (s *Server) handleListFamilies(w http.ResponseWriter, _ *http.Request) {
	names := s.yellowPages.Families()
	sort.Strings(names)

	families := make([]familyResponse, 0, len(names))
	for _, name := range names {
		members, err := s.yellowPages.Get(name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		families = append(families, familyResponse{Name: name, Members: members})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"families": families,
		"count":    len(families),
	})
}

// handleGetFamily serves GET /families/{name}.
func (s *Server) handleGetFamily(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	members, err := s.yellowPages.Get(name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, familyResponse{Name: name, Members: members})
}

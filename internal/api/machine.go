package api

import (
	"net/http"
)

// handleMachineTune serves GET /machine/tune.
func (s *Server) handleMachineTune(w http.ResponseWriter, r *http.Request) {
	if s.machine == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "no simulated machine attached")
		return
	}

	tune, err := s.machine.Tune(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tune)
}

// handleMachineClear serves POST /machine/clear. It is the only way out
// of a failed calculation.
func (s *Server) handleMachineClear(w http.ResponseWriter, _ *http.Request) {
	if s.machine == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "no simulated machine attached")
		return
	}

	if err := s.machine.Clear(); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

// handleClearDeltaReferences serves POST /machine/delta-references/clear.
// It drops every cached delta baseline; each delta property re-baselines
// from the backend on its next operation.
func (s *Server) handleClearDeltaReferences(w http.ResponseWriter, _ *http.Request) {
	if s.deltaCache == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "no delta reference cache attached")
		return
	}

	dropped := s.deltaCache.Len()
	s.deltaCache.Clear()

	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": true,
		"dropped": dropped,
	})
}

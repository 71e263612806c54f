package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openaccel/accml-core/internal/model"
)

// commandResponse carries a rewritten command next to the lattice-space
// original, so callers can see exactly what reached the hardware.
type commandResponse struct {
	Lattice model.Command `json:"lattice_command"`
	Device  model.Command `json:"device_command"`
}

// handleLatticeCommand serves POST /lattice/commands.
//
// The lattice-space command is rewritten into the device space and
// applied to the backend. A command that cannot be rewritten is never
// partially applied.
func (s *Server) handleLatticeCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := decodeCommand(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if cmd.OnError == 0 {
		cmd.OnError = model.Stop
	}

	devCmd, err := s.rewriter.Forward(cmd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.backend.Set(r.Context(), devCmd.ID, devCmd.Property, devCmd.Value); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, commandResponse{Lattice: cmd, Device: devCmd})
}

// handleReadLatticeProperty serves GET /lattice/elements/{elem}/properties/{prop}.
//
// The read target is rewritten into the device space, the backend is
// read there, and the raw device value is converted back through the
// matching inverse so the caller sees lattice units.
func (s *Server) handleReadLatticeProperty(w http.ResponseWriter, r *http.Request) {
	elem := chi.URLParam(r, "elem")
	prop := chi.URLParam(r, "prop")

	latRead := model.ReadCommand{ID: elem, Property: prop}
	devRead, err := s.rewriter.ForwardRead(latRead)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	devValue, err := s.backend.Read(r.Context(), devRead.ID, devRead.Property)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	latValue, err := s.rewriter.InverseValue(latRead, devRead, devValue)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	raw, err := model.MarshalValue(latValue)
	if err != nil {
		writeInternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, propertyResponse{ID: elem, Property: prop, Value: raw})
}

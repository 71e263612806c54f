package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openaccel/accml-core/internal/model"
)

// propertyResponse is the wire shape of a device or lattice property
// reading.
type propertyResponse struct {
	ID       string          `json:"id"`
	Property string          `json:"property"`
	Value    json.RawMessage `json:"value"`
}

// setRequest is the body of a property set.
type setRequest struct {
	Value json.RawMessage `json:"value"`
}

// handleReadDeviceProperty serves GET /devices/{dev}/properties/{prop}.
func (s *Server) handleReadDeviceProperty(w http.ResponseWriter, r *http.Request) {
	devID := chi.URLParam(r, "dev")
	propID := chi.URLParam(r, "prop")

	value, err := s.backend.Read(r.Context(), devID, propID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	raw, err := model.MarshalValue(value)
	if err != nil {
		writeInternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, propertyResponse{ID: devID, Property: propID, Value: raw})
}

// handleSetDeviceProperty serves PUT /devices/{dev}/properties/{prop}.
func (s *Server) handleSetDeviceProperty(w http.ResponseWriter, r *http.Request) {
	devID := chi.URLParam(r, "dev")
	propID := chi.URLParam(r, "prop")

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Value) == 0 {
		writeBadRequest(w, "value is required")
		return
	}

	value, err := model.UnmarshalValue(req.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.backend.Set(r.Context(), devID, propID, value); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, propertyResponse{ID: devID, Property: propID, Value: req.Value})
}

// handleTriggerDeviceProperty serves POST /devices/{dev}/properties/{prop}/trigger.
func (s *Server) handleTriggerDeviceProperty(w http.ResponseWriter, r *http.Request) {
	devID := chi.URLParam(r, "dev")
	propID := chi.URLParam(r, "prop")

	if err := s.backend.Trigger(r.Context(), devID, propID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":        devID,
		"property":  propID,
		"triggered": true,
	})
}

// decodeCommand parses a Command from the request body, distinguishing
// malformed JSON from invalid values.
func decodeCommand(r *http.Request) (model.Command, error) {
	var cmd model.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		return model.Command{}, err
	}
	if cmd.ID == "" || cmd.Property == "" {
		return model.Command{}, errors.New("id and property are required")
	}
	return cmd, nil
}

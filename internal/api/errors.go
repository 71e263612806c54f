package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openaccel/accml-core/internal/bridges/mqttdev"
	"github.com/openaccel/accml-core/internal/liaison"
	"github.com/openaccel/accml-core/internal/model"
	"github.com/openaccel/accml-core/internal/sim"
	"github.com/openaccel/accml-core/internal/translator"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Candidates carries the related lookup-table entries of a failed
	// identifier lookup, when the failing layer provided them.
	Candidates []string `json:"candidates,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeBadGateway  = "bad_gateway"
	ErrCodeInternal    = "internal_error"
	ErrCodeUnavailable = "unavailable"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeDomainError maps a control-layer error to an HTTP response.
//
// Mapping:
//   - failed lookups (liaison, translator, unknown element or family,
//     missing readback): 404, with candidates when available
//   - value type mismatches and malformed values: 400
//   - machine parked in the error state, illegal transitions: 409
//   - calculation failures inside the simulator: 502
//   - anything else: 500
func writeDomainError(w http.ResponseWriter, err error) {
	var liaisonNF *liaison.NotFoundError
	if errors.As(err, &liaisonNF) {
		writeJSON(w, http.StatusNotFound, Error{
			Status:     http.StatusNotFound,
			Code:       ErrCodeNotFound,
			Message:    err.Error(),
			Candidates: liaisonNF.Candidates,
		})
		return
	}

	var translatorNF *translator.NotFoundError
	if errors.As(err, &translatorNF) {
		candidates := make([]string, 0, len(translatorNF.ForLatticeElement)+len(translatorNF.ForDevice))
		for _, id := range translatorNF.ForLatticeElement {
			candidates = append(candidates, id.String())
		}
		for _, id := range translatorNF.ForDevice {
			candidates = append(candidates, id.String())
		}
		writeJSON(w, http.StatusNotFound, Error{
			Status:     http.StatusNotFound,
			Code:       ErrCodeNotFound,
			Message:    err.Error(),
			Candidates: candidates,
		})
		return
	}

	switch {
	case errors.Is(err, liaison.ErrNotFound),
		errors.Is(err, liaison.ErrUnknownFamily),
		errors.Is(err, translator.ErrNotFound),
		errors.Is(err, sim.ErrUnknownElement),
		errors.Is(err, sim.ErrUnknownProperty),
		errors.Is(err, mqttdev.ErrNoReading):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, model.ErrValueMismatch),
		errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, model.ErrInvalidBehaviour):
		writeBadRequest(w, err.Error())

	case errors.Is(err, sim.ErrErrorState),
		errors.Is(err, sim.ErrInvalidTransition):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, sim.ErrCalculationFailed):
		writeError(w, http.StatusBadGateway, ErrCodeBadGateway, err.Error())

	default:
		writeInternalError(w, err.Error())
	}
}

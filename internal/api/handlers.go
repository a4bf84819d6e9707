package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/ecefconv/internal/models"
	"github.com/UnknownOlympus/ecefconv/internal/parser"
	"github.com/UnknownOlympus/ecefconv/internal/service"
	"github.com/hashicorp/go-multierror"
)

const (
	maxBodyBytes = 4 << 10
	inputFields  = 3
)

// handler serves the conversion endpoints.
type handler struct {
	log       *slog.Logger
	converter Converter
}

type convertRequest struct {
	Direction models.Direction `json:"direction"`
	Input     []string         `json:"input"`
}

type convertResponse struct {
	Direction  models.Direction `json:"direction"`
	Output     [3]string        `json:"output"`
	Joined     string           `json:"joined"`
	Iterations int              `json:"iterations,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type validateResponse struct {
	Valid  bool            `json:"valid"`
	Errors []errorResponse `json:"errors,omitempty"`
}

type examplesResponse struct {
	Geodetic [3]string `json:"geodetic"`
	ECEF     [3]string `json:"ecef"`
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.converter.Convert(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Direction:  res.Direction,
		Output:     res.Output,
		Joined:     res.Joined(),
		Iterations: res.Iterations,
	})
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	err := h.converter.Validate(r.Context(), req)
	if err == nil {
		writeJSON(w, http.StatusOK, validateResponse{Valid: true})
		return
	}
	if errors.Is(err, models.ErrUnknownDirection) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	errs := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.WrappedErrors()
	}

	resp := validateResponse{Errors: make([]errorResponse, 0, len(errs))}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, toErrorResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) examples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, examplesResponse{
		Geodetic: models.ExampleGeodeticInput,
		ECEF:     models.ExampleECEFInput,
	})
}

// decode reads a conversion request body. On failure it writes a 400 response and returns false.
func (h *handler) decode(w http.ResponseWriter, r *http.Request) (service.Request, bool) {
	var body convertRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		h.log.DebugContext(r.Context(), "Failed to decode request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return service.Request{}, false
	}
	if len(body.Input) != inputFields {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "input must hold exactly three fields"})
		return service.Request{}, false
	}

	req := service.Request{Direction: body.Direction}
	copy(req.Input[:], body.Input)
	return req, true
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	var perr *parser.ParseError
	switch {
	case errors.As(err, &perr):
		writeJSON(w, http.StatusUnprocessableEntity, toErrorResponse(perr))
	case errors.Is(err, models.ErrUnknownDirection):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.log.Error("Conversion failed unexpectedly", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toErrorResponse(err error) errorResponse {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return errorResponse{Error: perr.Error(), Field: string(perr.Field), Kind: perr.KindName()}
	}
	return errorResponse{Error: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

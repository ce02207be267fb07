package restserver

import (
	"errors"
	"net/http"

	"github.com/chrissnell/wxcharts/internal/charts"
	"github.com/chrissnell/wxcharts/internal/dataset"
	"github.com/chrissnell/wxcharts/pkg/precip"
	"github.com/chrissnell/wxcharts/pkg/regression"
	"github.com/chrissnell/wxcharts/pkg/responseformat"
	"github.com/gorilla/mux"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	service   *charts.Service
	formatter *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(service *charts.Service) *Handlers {
	return &Handlers{
		service:   service,
		formatter: responseformat.NewFormatter(),
	}
}

// GetHealth reports liveness.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, map[string]string{"status": "ok"})
}

// GetAnscombeAll returns every quartet chart.
func (h *Handlers) GetAnscombeAll(w http.ResponseWriter, req *http.Request) {
	result, err := h.service.AnscombeAll(req.Context())
	h.respond(w, req, result, err)
}

// GetAnscombe returns the chart named by the dataset path variable.
func (h *Handlers) GetAnscombe(w http.ResponseWriter, req *http.Request) {
	result, err := h.service.Anscombe(req.Context(), mux.Vars(req)["dataset"])
	h.respond(w, req, result, err)
}

// GetPrecipitation returns the cumulative monthly precipitation series.
func (h *Handlers) GetPrecipitation(w http.ResponseWriter, req *http.Request) {
	result, err := h.service.Precipitation(req.Context())
	h.respond(w, req, result, err)
}

// GetTemperature returns daily temperature bars and the yearly extremes.
func (h *Handlers) GetTemperature(w http.ResponseWriter, req *http.Request) {
	result, err := h.service.Temperature(req.Context())
	h.respond(w, req, result, err)
}

func (h *Handlers) respond(w http.ResponseWriter, req *http.Request, data any, err error) {
	if err != nil {
		status := statusFor(err)
		setError(req, err)
		h.formatter.WriteError(w, req, status, err.Error())
		return
	}

	if err := h.formatter.WriteResponse(w, req, data); err != nil {
		setError(req, err)
	}
}

// statusFor maps computation and loading errors onto HTTP status codes.
func statusFor(err error) int {
	var malformed *precip.MalformedRecordError
	var badRow *dataset.MalformedRowError

	switch {
	case errors.Is(err, charts.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, regression.ErrEmptyInput),
		errors.Is(err, regression.ErrDegenerateInput),
		errors.Is(err, precip.ErrEmptyInput),
		errors.As(err, &malformed),
		errors.As(err, &badRow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"invest-sim/domain"
	"invest-sim/report"
	"invest-sim/service"
)

// scenarioRequest is the body of create and update calls. ID is the
// scenario id the client last saw and is only checked on update.
type scenarioRequest struct {
	domain.ScenarioInput
	ID string `json:"id,omitempty"`
}

type ScenarioHandler struct {
	service *service.ScenarioService
	logger  *zap.Logger
}

func NewScenarioHandler(service *service.ScenarioService, logger *zap.Logger) *ScenarioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioHandler{service: service, logger: logger}
}

// Calculate projects a scenario without saving it.
func (h *ScenarioHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Calculate(req.ScenarioInput))
}

func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.ListForDisplay())
}

func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	out, err := h.service.Submit(req.ScenarioInput, domain.Create())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, out)
}

// Get returns the stored input at the index, for pre-filling an edit form.
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}

	scenario, err := h.service.Scenario(index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenarioRequest{ScenarioInput: scenario.Input, ID: scenario.ID})
}

func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	var req scenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	out, err := h.service.Submit(req.ScenarioInput, domain.UpdateAt(index).WithExpectedID(req.ID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}

	if err := h.service.RequestDelete(index, r.URL.Query().Get("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Report streams a PDF of every saved scenario.
func (h *ScenarioHandler) Report(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	rep := report.NewScenarioReport(h.service.Formatter())
	if err := rep.Write(&buf, h.service.Scenarios(), time.Now()); err != nil {
		h.logger.Error("build report", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="scenarios.pdf"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("write report", zap.Error(err))
	}
}

func (h *ScenarioHandler) decode(w http.ResponseWriter, r *http.Request, req *scenarioRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.Debug("decode request body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if !req.TermUnit.Valid() {
		http.Error(w, fmt.Sprintf("termUnit must be %q or %q", domain.TermMonths, domain.TermYears), http.StatusBadRequest)
		return false
	}
	if !req.RateUnit.Valid() {
		http.Error(w, fmt.Sprintf("rateUnit must be %q or %q", domain.RateMonthly, domain.RateAnnual), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *ScenarioHandler) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid scenario index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func (h *ScenarioHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStaleIndex):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrIndexOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPersistence):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("scenario request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func (h *ScenarioHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/handler/http/response"
	"github.com/venueops/timecard-recon-go/internal/pkg/validator"
)

type ReconHandler struct {
	service recon.Service
}

func NewReconHandler(service recon.Service) ReconHandler {
	return ReconHandler{service: service}
}

// TriggerRun starts an ad-hoc reconciliation and blocks until the
// report is ready. Run durations are bounded by the upstream fetch
// timeouts, so callers are expected to wait.
func (h ReconHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	var req recon.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RunType = recon.RunTypeAdhoc

	if errs := validateRunRequest(req); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	model, err := h.service.Run(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reconciliation completed", model)
}

// GetRun returns one persisted run record.
func (h ReconHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, run.ToResponse())
}

// ListRuns returns recent runs, newest first.
func (h ReconHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			response.BadRequest(w, "limit must be an integer between 1 and 200", nil)
			return
		}
		limit = parsed
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]recon.RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, run.ToResponse())
	}
	response.Success(w, out)
}

func validateRunRequest(req recon.RunRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.FromDate) {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "required"})
	} else if !validator.IsValidBusinessDate(req.FromDate) {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be a YYYY-MM-DD business date"})
	}
	if req.ToDate != "" && !validator.IsValidBusinessDate(req.ToDate) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be a YYYY-MM-DD business date"})
	}
	for _, id := range req.TraceEmployeeIDs {
		if !validator.IsValidEmployeeID(id) {
			errs = append(errs, validator.ValidationError{Field: "trace_employee_ids", Message: "employee ids are numeric"})
			break
		}
	}
	return errs
}

package estimate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gantty/gantty/internal/rest"
	"github.com/gantty/gantty/internal/utils"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetProjectEstimates returns the per-day workload projection for a project.
func (h *Handler) GetProjectEstimates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Debugf("Calculating day estimates for project %d", projectId)
	estimates, err := h.service.GetProjectDayEstimates(r.Context(), int(projectId))
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(estimates); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

type WorkingDayDTO struct {
	Date       string `json:"date"`
	WorkingDay bool   `json:"workingDay"`
}

// GetWorkingDay reports whether a date is a working day under the global
// schedule and holidays. Defaults to the current day when no date is given.
func (h *Handler) GetWorkingDay(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := h.clock.Now()
	if param := r.URL.Query().Get("date"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "date must be in YYYY-MM-DD format",
			})
			return
		}
		date = parsed
	}

	working, err := h.service.IsWorkingDate(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(WorkingDayDTO{
		Date:       date.Format("2006-01-02"),
		WorkingDay: working,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

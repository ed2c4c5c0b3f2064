package milestone

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RecurringConfigDTO struct {
	Type               string `json:"type"`
	Interval           int    `json:"interval"`
	DayOfWeek          *int   `json:"dayOfWeek,omitempty"`
	MonthlyPattern     string `json:"monthlyPattern,omitempty"`
	MonthlyDate        int    `json:"monthlyDate,omitempty"`
	MonthlyWeekOrdinal int    `json:"monthlyWeekOrdinal,omitempty"`
}

type MilestoneDTO struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"projectId"`
	Name      string `json:"name"`
	EndDate   string `json:"endDate,omitempty"`
	// DueDate is the legacy name for EndDate; accepted on input when
	// EndDate is absent.
	DueDate             string              `json:"dueDate,omitempty"`
	TimeAllocationHours float64             `json:"timeAllocationHours"`
	IsRecurring         bool                `json:"isRecurring,omitempty"`
	RecurringConfig     *RecurringConfigDTO `json:"recurringConfig,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new milestone")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto MilestoneDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.ProjectID = int(projectId)
	milestone, err := DTOToMilestone(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), milestone)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(MilestoneToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAllForProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	milestones, err := h.service.GetAllForProject(r.Context(), int(projectId))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MilestoneDTO, 0, len(milestones))
	for _, m := range milestones {
		dtos = append(dtos, MilestoneToDTO(m))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	milestoneId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto MilestoneDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != int(milestoneId) {
		http.Error(w, "Invalid milestone id in request body", http.StatusBadRequest)
		return
	}
	milestone, err := DTOToMilestone(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), milestone)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(MilestoneToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	milestoneId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), int(milestoneId))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Milestone not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ValidateAllocations reports whether the project's milestone hours exceed
// its estimate. Purely advisory: it never blocks edits or allocation.
func (h *Handler) ValidateAllocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	check, err := h.service.ValidateAllocations(r.Context(), int(projectId))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := struct {
		ProjectID      int     `json:"projectId"`
		EstimatedHours float64 `json:"estimatedHours"`
		AllocatedHours float64 `json:"allocatedHours"`
		OverBudget     bool    `json:"overBudget"`
	}{check.ProjectID, check.EstimatedHours, check.AllocatedHours, check.OverBudget}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMilestoneNotFound):
		http.Error(w, "Milestone not found", http.StatusNotFound)
	case errors.Is(err, ErrProjectNotFound):
		http.Error(w, "Project not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidAllocation), errors.Is(err, ErrInvalidRecurrence):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func MilestoneToDTO(milestone Milestone) MilestoneDTO {
	dto := MilestoneDTO{
		ID:                  milestone.ID,
		ProjectID:           milestone.ProjectID,
		Name:                milestone.Name,
		EndDate:             milestone.EndDate.String(),
		TimeAllocationHours: milestone.TimeAllocationHours,
	}
	if milestone.Recurring != nil {
		dto.IsRecurring = true
		cfg := milestone.Recurring
		cfgDTO := &RecurringConfigDTO{
			Type:               string(cfg.Type),
			Interval:           cfg.Interval,
			MonthlyPattern:     string(cfg.MonthlyPattern),
			MonthlyDate:        cfg.MonthlyDate,
			MonthlyWeekOrdinal: cfg.MonthlyWeekOrdinal,
		}
		if cfg.DayOfWeek != nil {
			dow := int(*cfg.DayOfWeek)
			cfgDTO.DayOfWeek = &dow
		}
		dto.RecurringConfig = cfgDTO
	}
	return dto
}

// DTOToMilestone normalizes the wire shape: endDate wins over the legacy
// dueDate field, and the recurrence config is only honored when the
// isRecurring flag is set.
func DTOToMilestone(dto MilestoneDTO) (Milestone, error) {
	endDateString := dto.EndDate
	if endDateString == "" {
		endDateString = dto.DueDate
	}
	endDate, err := civil.ParseDate(endDateString)
	if err != nil {
		return Milestone{}, err
	}

	milestone := Milestone{
		ID:                  dto.ID,
		ProjectID:           dto.ProjectID,
		Name:                dto.Name,
		EndDate:             endDate,
		TimeAllocationHours: dto.TimeAllocationHours,
	}
	if dto.IsRecurring && dto.RecurringConfig != nil {
		cfg := &RecurringConfig{
			Type:               RecurrenceType(dto.RecurringConfig.Type),
			Interval:           dto.RecurringConfig.Interval,
			MonthlyPattern:     MonthlyPattern(dto.RecurringConfig.MonthlyPattern),
			MonthlyDate:        dto.RecurringConfig.MonthlyDate,
			MonthlyWeekOrdinal: dto.RecurringConfig.MonthlyWeekOrdinal,
		}
		if dto.RecurringConfig.DayOfWeek != nil {
			weekday := time.Weekday(*dto.RecurringConfig.DayOfWeek)
			cfg.DayOfWeek = &weekday
		}
		milestone.Recurring = cfg
	}
	return milestone, nil
}

package project

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

type ProjectDTO struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate,omitempty"`
	EstimatedHours float64 `json:"estimatedHours"`
	Continuous     bool    `json:"continuous,omitempty"`
	RowID          int     `json:"rowId"`
	// AutoEstimateDays maps weekday names to flags; absent means the global
	// weekly schedule decides.
	AutoEstimateDays map[string]bool `json:"autoEstimateDays,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new project")
	w.Header().Set("Content-Type", "application/json")

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	project, err := DTOToProject(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), project)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrInvalidEstimate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var projects []Project
	var err error
	if r.URL.Query().Has("rowId") {
		rowId, convErr := strconv.Atoi(r.URL.Query().Get("rowId"))
		if convErr != nil {
			http.Error(w, convErr.Error(), http.StatusBadRequest)
			return
		}
		projects, err = h.service.GetByRow(r.Context(), rowId)
	} else {
		projects, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, ProjectToDTO(p))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := h.service.Get(r.Context(), int(projectId))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != int(projectId) {
		http.Error(w, "Invalid project id in request body", http.StatusBadRequest)
		return
	}
	project, err := DTOToProject(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), project)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrInvalidEstimate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	projectId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), int(projectId))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ProjectToDTO(project Project) ProjectDTO {
	dto := ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		StartDate:      project.StartDate.String(),
		EstimatedHours: project.EstimatedHours,
		Continuous:     project.Continuous,
		RowID:          project.RowID,
	}
	if !project.EndDate.IsZero() {
		dto.EndDate = project.EndDate.String()
	}
	if project.AutoEstimateDays != nil {
		dto.AutoEstimateDays = make(map[string]bool, 7)
		for name, weekday := range weekdayNames {
			dto.AutoEstimateDays[name] = project.AutoEstimateDays.Contains(weekday)
		}
	}
	return dto
}

func DTOToProject(dto ProjectDTO) (Project, error) {
	startDate, err := civil.ParseDate(dto.StartDate)
	if err != nil {
		return Project{}, err
	}
	var endDate civil.Date
	if dto.EndDate != "" {
		if endDate, err = civil.ParseDate(dto.EndDate); err != nil {
			return Project{}, err
		}
	}

	var autoDays *WeekdaySet
	if dto.AutoEstimateDays != nil {
		var set WeekdaySet
		for name, enabled := range dto.AutoEstimateDays {
			weekday, ok := weekdayNames[name]
			if !ok {
				return Project{}, errors.New("unknown weekday: " + name)
			}
			set[int(weekday)] = enabled
		}
		autoDays = &set
	}

	return Project{
		ID:               dto.ID,
		Name:             dto.Name,
		StartDate:        startDate,
		EndDate:          endDate,
		EstimatedHours:   dto.EstimatedHours,
		Continuous:       dto.Continuous,
		RowID:            dto.RowID,
		AutoEstimateDays: autoDays,
	}, nil
}

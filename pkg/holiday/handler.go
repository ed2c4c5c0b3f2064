package holiday

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type HolidayDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new holiday")
	w.Header().Set("Content-Type", "application/json")

	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	holiday, err := DTOToHoliday(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "dates must be in YYYY-MM-DD format",
		})
		return
	}

	created, err := h.service.Create(r.Context(), holiday)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(HolidayToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	holidays, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, holiday := range holidays {
		dtos = append(dtos, HolidayToDTO(holiday))
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
	holidayId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != int(holidayId) {
		http.Error(w, "Invalid holiday id in request body", http.StatusBadRequest)
		return
	}
	holiday, err := DTOToHoliday(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), holiday)
	if err != nil {
		if errors.Is(err, ErrHolidayNotFound) {
			http.Error(w, "Holiday not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(HolidayToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	holidayId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), int(holidayId))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Holiday not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func HolidayToDTO(holiday Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        holiday.ID,
		Name:      holiday.Name,
		StartDate: holiday.StartDate.String(),
		EndDate:   holiday.EndDate.String(),
	}
}

func DTOToHoliday(dto HolidayDTO) (Holiday, error) {
	startDate, err := civil.ParseDate(dto.StartDate)
	if err != nil {
		return Holiday{}, err
	}
	endDate, err := civil.ParseDate(dto.EndDate)
	if err != nil {
		return Holiday{}, err
	}
	return Holiday{
		ID:        dto.ID,
		Name:      dto.Name,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

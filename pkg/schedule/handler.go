package schedule

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type WorkSlotDTO struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Duration  float64 `json:"duration"`
}

// WeeklyWorkHoursDTO maps weekday names to either a list of work slots or,
// in the legacy format, a bare number of hours. The raw form is decoded per
// day so both shapes can be accepted on input.
type WeeklyWorkHoursDTO struct {
	WeeklyWorkHours map[string]json.RawMessage `json:"weeklyWorkHours"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
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

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	schedule, err := h.service.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(scheduleToDTO(schedule)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating weekly schedule")
	w.Header().Set("Content-Type", "application/json")

	var dto WeeklyWorkHoursDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	schedule, err := DTOToSchedule(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), schedule)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(scheduleToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DTOToSchedule normalizes the wire format into the canonical slot
// representation. A day given as a bare number (legacy clients) becomes a
// single synthetic slot carrying that many hours.
func DTOToSchedule(dto WeeklyWorkHoursDTO) (WeeklySchedule, error) {
	days := make(map[time.Weekday][]WorkSlot, len(dto.WeeklyWorkHours))
	for name, raw := range dto.WeeklyWorkHours {
		weekday, ok := weekdayNames[name]
		if !ok {
			return WeeklySchedule{}, fmt.Errorf("unknown weekday: %s", name)
		}

		var hours float64
		if err := json.Unmarshal(raw, &hours); err == nil {
			if slots := LegacySlots(hours); slots != nil {
				days[weekday] = slots
			}
			continue
		}

		var slotDTOs []WorkSlotDTO
		if err := json.Unmarshal(raw, &slotDTOs); err != nil {
			return WeeklySchedule{}, fmt.Errorf("invalid work hours for %s: %w", name, err)
		}
		slots := make([]WorkSlot, 0, len(slotDTOs))
		for _, s := range slotDTOs {
			slots = append(slots, WorkSlot{Start: s.StartTime, End: s.EndTime, Duration: s.Duration})
		}
		if len(slots) > 0 {
			days[weekday] = slots
		}
	}
	return WeeklySchedule{Days: days}, nil
}

func scheduleToDTO(schedule WeeklySchedule) WeeklyWorkHoursDTO {
	out := make(map[string]json.RawMessage, len(weekdayNames))
	for name, weekday := range weekdayNames {
		slots := schedule.SlotsOn(weekday)
		slotDTOs := make([]WorkSlotDTO, 0, len(slots))
		for _, s := range slots {
			slotDTOs = append(slotDTOs, WorkSlotDTO{StartTime: s.Start, EndTime: s.End, Duration: s.Duration})
		}
		encoded, err := json.Marshal(slotDTOs)
		if err != nil {
			// Marshalling a slice of plain structs cannot fail; keep the day empty if it somehow does.
			log.Errorf("could not encode work slots for %s: %v", name, err)
			continue
		}
		out[name] = encoded
	}
	return WeeklyWorkHoursDTO{WeeklyWorkHours: out}
}

package timeline

import (
	"encoding/json"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/internal/rest"
	log "github.com/sirupsen/logrus"
)

// DragRequestDTO carries one pointer-move worth of drag input. The caller
// owns the drag session; this endpoint only resolves a proposal.
type DragRequestDTO struct {
	EntityID      int         `json:"entityId"`
	Kind          EntityKind  `json:"kind"`
	Action        Action      `json:"action"`
	Mode          ViewMode    `json:"mode"`
	Origin        Pointer     `json:"origin"`
	Pointer       Pointer     `json:"pointer"`
	OriginalStart civil.Date  `json:"originalStart"`
	OriginalEnd   civil.Date  `json:"originalEnd"`
	LastDaysDelta int         `json:"lastDaysDelta"`
	ColumnWidth   float64     `json:"columnWidth"`
	ViewportWidth float64     `json:"viewportWidth"`
	Siblings      []DateRange `json:"siblings"`
}

// DragResponseDTO is the resolved proposal plus an auto-scroll hint.
type DragResponseDTO struct {
	DragResult
	Scroll ScrollSuggestion `json:"scroll"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ResolveDrag validates one drag step. Stateless: everything needed comes in
// the request body.
func (h *Handler) ResolveDrag(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto DragRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.OriginalStart.IsZero() || dto.OriginalEnd.IsZero() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid drag request",
			Details: "originalStart and originalEnd are required",
		})
		return
	}
	if dto.ColumnWidth <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid drag request",
			Details: "columnWidth must be positive",
		})
		return
	}

	state := DragState{
		EntityID:      dto.EntityID,
		Kind:          dto.Kind,
		Action:        dto.Action,
		Mode:          dto.Mode,
		Origin:        dto.Origin,
		OriginalStart: dto.OriginalStart,
		OriginalEnd:   dto.OriginalEnd,
		LastDaysDelta: dto.LastDaysDelta,
	}
	result := CoordinateDrag(state, dto.Pointer, Context{
		ColumnWidth: dto.ColumnWidth,
		Siblings:    dto.Siblings,
	})
	if !result.IsValid {
		log.Debugf("Drag rejected for %s %d: %s", dto.Kind, dto.EntityID, result.Reason)
	}

	response := DragResponseDTO{
		DragResult: result,
		Scroll:     SuggestScroll(dto.Pointer, dto.ViewportWidth),
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

package get_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{slotId} - Invalid slot ID: %v", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.GetByID(r.Context(), slotID)
	if err != nil {
		if errors.Is(err, slots.ErrSlotNotFound) {
			h.logger.Info("GET /slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
			return
		}
		h.logger.Error("GET /slots/{slotId} - Failed to get slot: slot_id=%d, err=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots/{slotId} - Slot retrieved: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}

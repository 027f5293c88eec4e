package cancel_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequest     = "некорректный запрос"
	msgSlotNotFound       = "слот не найден"
	msgAccessDenied       = "доступ запрещён"
	msgReasonRequired     = "необходимо указать причину отмены"
	msgCancellationNotice = "отмена менее чем за 24 часа до начала недоступна"
	msgCannotCancel       = "слот нельзя отменить в текущем статусе"
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

// Handle обрабатывает PATCH /api/v1/slots/{slotId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/cancel - Invalid slot ID: %v", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.CancelSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	if err := h.service.Cancel(r.Context(), slotID, &req); err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{slotId}/cancel - Invalid input: slot_id=%d, err=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Info("PATCH /slots/{slotId}/cancel - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/{slotId}/cancel - Access denied: slot_id=%d, actor_id=%d", slotID, req.ActorID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, slots.ErrReasonRequired):
			h.logger.Warn("PATCH /slots/{slotId}/cancel - Reason required: slot_id=%d, actor_id=%d", slotID, req.ActorID)
			handlers.RespondBadRequest(w, msgReasonRequired)
		case errors.Is(err, slots.ErrCancellationNotice):
			h.logger.Info("PATCH /slots/{slotId}/cancel - Cancellation notice violated: slot_id=%d, actor_id=%d", slotID, req.ActorID)
			handlers.RespondError(w, http.StatusConflict, msgCancellationNotice)
		case errors.Is(err, slots.ErrCannotCancel):
			h.logger.Warn("PATCH /slots/{slotId}/cancel - Cannot cancel: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgCannotCancel)
		default:
			h.logger.Error("PATCH /slots/{slotId}/cancel - Internal error: slot_id=%d, err=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{slotId}/cancel - Slot cancelled: slot_id=%d, actor_id=%d", slotID, req.ActorID)
	w.WriteHeader(http.StatusNoContent)
}

package complete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	completeSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/complete_slot"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequest     = "некорректный запрос"
	msgSlotNotFound       = "слот не найден"
	msgAccessDenied       = "доступ запрещён"
	msgInvalidSlotState   = "слот нельзя завершить в текущем статусе"
	msgConcurrentConflict = "конфликт одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase CompleteSlotUseCase
	logger  Logger
}

func NewHandler(useCase CompleteSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает PATCH /api/v1/slots/{slotId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/complete - Invalid slot ID: %v", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req CompleteSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID))
	if err != nil {
		switch {
		case errors.Is(err, completeSlot.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{slotId}/complete - Invalid input: slot_id=%d, err=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
		case errors.Is(err, completeSlot.ErrSlotNotFound):
			h.logger.Info("PATCH /slots/{slotId}/complete - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, completeSlot.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/{slotId}/complete - Access denied: slot_id=%d, actor_id=%d", slotID, req.ActorID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, completeSlot.ErrInvalidState):
			h.logger.Warn("PATCH /slots/{slotId}/complete - Invalid state: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotState)
		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /slots/{slotId}/complete - Serialization conflict: slot_id=%d: %v", slotID, err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)
		default:
			h.logger.Error("PATCH /slots/{slotId}/complete - Internal error: slot_id=%d, err=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{slotId}/complete - Slot completed: slot_id=%d, session_consumed=%v", slotID, resp.SessionConsumed)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package reschedule_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	rescheduleSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_slot"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные запроса"
	msgSlotNotFound       = "слот не найден"
	msgCannotReschedule   = "слот в финальном статусе нельзя перенести"
	msgSlotConflict       = "у тренера уже есть тренировка в этом интервале"
	msgSlotInPast         = "нельзя перенести тренировку в прошлое"
	msgAccessDenied       = "нет прав на перенос этого слота"
	msgConcurrentConflict = "конфликт одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase RescheduleSlotUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("PATCH /slots/{id}/reschedule - Invalid slot ID: %s", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req RescheduleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slotID)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleSlot.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Invalid input: slot_id=%d: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleSlot.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleSlot.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Access denied: slot_id=%d, actor_id=%d", slotID, req.ActorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleSlot.ErrCannotReschedule):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Cannot reschedule: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleSlot.ErrSlotInPast):
			h.logger.Warn("PATCH /slots/{id}/reschedule - New start in past: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, rescheduleSlot.ErrSlotConflict):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Slot conflict: slot_id=%d, date=%s, time=%s",
				slotID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Serialization conflict: slot_id=%d: %v", slotID, err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)

		default:
			h.logger.Error("PATCH /slots/{id}/reschedule - Failed to reschedule: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/reschedule - Slot rescheduled: slot_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

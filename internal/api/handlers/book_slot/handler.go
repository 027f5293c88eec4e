package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	bookSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные запроса"
	msgSlotConflict       = "у тренера уже есть тренировка в этом интервале"
	msgSlotInPast         = "нельзя забронировать тренировку в прошлом"
	msgConcurrentConflict = "конфликт одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: member_id=%d, trainer_id=%d: %v",
				req.MemberID, req.TrainerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookSlot.ErrSlotInPast):
			h.logger.Warn("POST /slots - Slot in past: member_id=%d, trainer_id=%d", req.MemberID, req.TrainerID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, bookSlot.ErrSlotConflict):
			h.logger.Warn("POST /slots - Slot conflict: trainer_id=%d, date=%s, time=%s",
				req.TrainerID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /slots - Serialization conflict: member_id=%d, trainer_id=%d: %v",
				req.MemberID, req.TrainerID, err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)

		default:
			h.logger.Error("POST /slots - Failed to book slot: member_id=%d, trainer_id=%d, error=%v",
				req.MemberID, req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot booked: slot_id=%d, member_id=%d, trainer_id=%d",
		result.ID, result.MemberID, result.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

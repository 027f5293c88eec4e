package bulk_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	bulkSchedule "github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
)

const (
	msgInvalidEntitlementID = "некорректный ID абонемента"
	msgInvalidRequest       = "некорректный запрос"
	msgEntitlementNotFound  = "абонемент не найден"
	msgNoActiveEntitlement  = "абонемент неактивен"
	msgNoSessionsRemaining  = "на абонементе не осталось сессий"
	msgSlotConflict         = "интервал пересекается с расписанием тренера"
	msgConcurrentConflict   = "конфликт одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase BulkScheduleUseCase
	logger  Logger
}

func NewHandler(useCase BulkScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/entitlements/{entitlementId}/bulk-schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entitlementID, err := strconv.ParseInt(vars["entitlementId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /entitlements/{entitlementId}/bulk-schedule - Invalid entitlement ID: %v", vars["entitlementId"])
		handlers.RespondBadRequest(w, msgInvalidEntitlementID)
		return
	}

	var req BulkScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /entitlements/{entitlementId}/bulk-schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	ucReq, err := req.ToUseCaseRequest(entitlementID)
	if err != nil {
		h.logger.Warn("POST /entitlements/{entitlementId}/bulk-schedule - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, bulkSchedule.ErrInvalidInput):
			h.logger.Warn("POST /entitlements/{entitlementId}/bulk-schedule - Invalid input: entitlement_id=%d, err=%v", entitlementID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
		case errors.Is(err, bulkSchedule.ErrEntitlementNotFound):
			h.logger.Info("POST /entitlements/{entitlementId}/bulk-schedule - Entitlement not found: entitlement_id=%d", entitlementID)
			handlers.RespondNotFound(w, msgEntitlementNotFound)
		case errors.Is(err, bulkSchedule.ErrNoActiveEntitlement):
			h.logger.Info("POST /entitlements/{entitlementId}/bulk-schedule - Entitlement not active: entitlement_id=%d", entitlementID)
			handlers.RespondBadRequest(w, msgNoActiveEntitlement)
		case errors.Is(err, bulkSchedule.ErrNoSessionsRemaining):
			h.logger.Info("POST /entitlements/{entitlementId}/bulk-schedule - No sessions remaining: entitlement_id=%d", entitlementID)
			handlers.RespondError(w, http.StatusConflict, msgNoSessionsRemaining)
		case errors.Is(err, bulkSchedule.ErrSlotConflict):
			h.logger.Info("POST /entitlements/{entitlementId}/bulk-schedule - Slot conflict: entitlement_id=%d, trainer_id=%d", entitlementID, req.TrainerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)
		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /entitlements/{entitlementId}/bulk-schedule - Serialization conflict: entitlement_id=%d: %v", entitlementID, err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentConflict)
		default:
			h.logger.Error("POST /entitlements/{entitlementId}/bulk-schedule - Internal error: entitlement_id=%d, err=%v", entitlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /entitlements/{entitlementId}/bulk-schedule - Scheduled: entitlement_id=%d, created=%d, conflicts=%d",
		entitlementID, resp.ScheduledCount, len(resp.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

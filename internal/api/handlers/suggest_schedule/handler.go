package suggest_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	suggestSchedule "github.com/m04kA/SMC-TrainingService/internal/usecase/suggest_schedule"
)

const (
	msgInvalidEntitlementID = "некорректный ID абонемента"
	msgEntitlementNotFound  = "абонемент не найден"
	msgNoActiveEntitlement  = "абонемент неактивен"
)

type Handler struct {
	useCase SuggestScheduleUseCase
	logger  Logger
}

func NewHandler(useCase SuggestScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/entitlements/{entitlementId}/suggested-schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entitlementID, err := strconv.ParseInt(vars["entitlementId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /entitlements/{entitlementId}/suggested-schedule - Invalid entitlement ID: %v", vars["entitlementId"])
		handlers.RespondBadRequest(w, msgInvalidEntitlementID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &suggestSchedule.Request{EntitlementID: entitlementID})
	if err != nil {
		switch {
		case errors.Is(err, suggestSchedule.ErrInvalidInput):
			h.logger.Warn("GET /entitlements/{entitlementId}/suggested-schedule - Invalid input: entitlement_id=%d, err=%v", entitlementID, err)
			handlers.RespondBadRequest(w, msgInvalidEntitlementID)
		case errors.Is(err, suggestSchedule.ErrEntitlementNotFound):
			h.logger.Info("GET /entitlements/{entitlementId}/suggested-schedule - Entitlement not found: entitlement_id=%d", entitlementID)
			handlers.RespondNotFound(w, msgEntitlementNotFound)
		case errors.Is(err, suggestSchedule.ErrNoActiveEntitlement):
			h.logger.Info("GET /entitlements/{entitlementId}/suggested-schedule - Entitlement not active: entitlement_id=%d", entitlementID)
			handlers.RespondBadRequest(w, msgNoActiveEntitlement)
		default:
			h.logger.Error("GET /entitlements/{entitlementId}/suggested-schedule - Internal error: entitlement_id=%d, err=%v", entitlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /entitlements/{entitlementId}/suggested-schedule - Suggested: entitlement_id=%d, frequency=%s", entitlementID, resp.Frequency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}

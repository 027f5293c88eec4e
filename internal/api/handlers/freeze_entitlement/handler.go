package freeze_entitlement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	entitlementsService "github.com/m04kA/SMC-TrainingService/internal/service/entitlements"
	"github.com/m04kA/SMC-TrainingService/internal/service/entitlements/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidEntitlementID = "некорректный ID абонемента"
	msgInvalidInput         = "некорректные параметры заморозки"
	msgEntitlementNotFound  = "абонемент не найден"
	msgNotActive            = "заморозка доступна только для активного абонемента"
)

type Handler struct {
	service EntitlementsService
	logger  Logger
}

func NewHandler(service EntitlementsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/entitlements/{entitlementId}/freeze
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entitlementID, err := strconv.ParseInt(vars["entitlementId"], 10, 64)
	if err != nil || entitlementID <= 0 {
		h.logger.Warn("POST /entitlements/{id}/freeze - Invalid entitlement ID: %s", vars["entitlementId"])
		handlers.RespondBadRequest(w, msgInvalidEntitlementID)
		return
	}

	var req models.FreezeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /entitlements/{id}/freeze - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Freeze(r.Context(), entitlementID, &req)
	if err != nil {
		switch {
		case errors.Is(err, entitlementsService.ErrInvalidInput):
			h.logger.Warn("POST /entitlements/{id}/freeze - Invalid input: entitlement_id=%d: %v", entitlementID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, entitlementsService.ErrEntitlementNotFound):
			h.logger.Warn("POST /entitlements/{id}/freeze - Entitlement not found: entitlement_id=%d", entitlementID)
			handlers.RespondNotFound(w, msgEntitlementNotFound)

		case errors.Is(err, entitlementsService.ErrInvalidState):
			h.logger.Warn("POST /entitlements/{id}/freeze - Entitlement not active: entitlement_id=%d", entitlementID)
			handlers.RespondBadRequest(w, msgNotActive)

		default:
			h.logger.Error("POST /entitlements/{id}/freeze - Failed to freeze: entitlement_id=%d, error=%v",
				entitlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /entitlements/{id}/freeze - Entitlement frozen: entitlement_id=%d, days=%d",
		entitlementID, req.Days)
	handlers.RespondJSON(w, http.StatusOK, result)
}

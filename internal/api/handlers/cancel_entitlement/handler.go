package cancel_entitlement

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
	msgInvalidInput         = "некорректные данные запроса"
	msgEntitlementNotFound  = "абонемент не найден"
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

// Handle PATCH /api/v1/entitlements/{entitlementId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entitlementID, err := strconv.ParseInt(vars["entitlementId"], 10, 64)
	if err != nil || entitlementID <= 0 {
		h.logger.Warn("PATCH /entitlements/{id}/cancel - Invalid entitlement ID: %s", vars["entitlementId"])
		handlers.RespondBadRequest(w, msgInvalidEntitlementID)
		return
	}

	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /entitlements/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), entitlementID, &req); err != nil {
		switch {
		case errors.Is(err, entitlementsService.ErrInvalidInput):
			h.logger.Warn("PATCH /entitlements/{id}/cancel - Invalid input: entitlement_id=%d: %v", entitlementID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, entitlementsService.ErrEntitlementNotFound):
			h.logger.Warn("PATCH /entitlements/{id}/cancel - Entitlement not found: entitlement_id=%d", entitlementID)
			handlers.RespondNotFound(w, msgEntitlementNotFound)

		default:
			h.logger.Error("PATCH /entitlements/{id}/cancel - Failed to cancel: entitlement_id=%d, error=%v",
				entitlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /entitlements/{id}/cancel - Entitlement cancelled: entitlement_id=%d, actor_id=%d",
		entitlementID, req.ActorID)
	w.WriteHeader(http.StatusNoContent)
}

package get_entitlement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	entitlementsService "github.com/m04kA/SMC-TrainingService/internal/service/entitlements"
)

const (
	msgInvalidEntitlementID = "некорректный ID абонемента"
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

// Handle GET /api/v1/entitlements/{entitlementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entitlementID, err := strconv.ParseInt(vars["entitlementId"], 10, 64)
	if err != nil || entitlementID <= 0 {
		h.logger.Warn("GET /entitlements/{id} - Invalid entitlement ID: %s", vars["entitlementId"])
		handlers.RespondBadRequest(w, msgInvalidEntitlementID)
		return
	}

	result, err := h.service.GetByID(r.Context(), entitlementID)
	if err != nil {
		switch {
		case errors.Is(err, entitlementsService.ErrEntitlementNotFound):
			h.logger.Warn("GET /entitlements/{id} - Entitlement not found: entitlement_id=%d", entitlementID)
			handlers.RespondNotFound(w, msgEntitlementNotFound)

		default:
			h.logger.Error("GET /entitlements/{id} - Failed to get entitlement: entitlement_id=%d, error=%v",
				entitlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

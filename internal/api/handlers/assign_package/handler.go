package assign_package

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	entitlementsService "github.com/m04kA/SMC-TrainingService/internal/service/entitlements"
	"github.com/m04kA/SMC-TrainingService/internal/service/entitlements/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgPackageNotFound    = "тарифный пакет не найден"
	msgPackageInactive    = "тарифный пакет недоступен для продажи"
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

// Handle POST /api/v1/entitlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AssignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /entitlements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Assign(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entitlementsService.ErrInvalidInput):
			h.logger.Warn("POST /entitlements - Invalid input: member_id=%d, package_id=%d: %v",
				req.MemberID, req.PackageID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, entitlementsService.ErrPackageNotFound):
			h.logger.Warn("POST /entitlements - Package not found: package_id=%d", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, entitlementsService.ErrPackageInactive):
			h.logger.Warn("POST /entitlements - Package inactive: package_id=%d", req.PackageID)
			handlers.RespondBadRequest(w, msgPackageInactive)

		default:
			h.logger.Error("POST /entitlements - Failed to assign package: member_id=%d, package_id=%d, error=%v",
				req.MemberID, req.PackageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /entitlements - Entitlement created: entitlement_id=%d, member_id=%d",
		result.ID, result.MemberID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package get_member_entitlements

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
)

const (
	msgInvalidMemberID = "некорректный ID клиента"
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

// Handle GET /api/v1/members/{memberId}/entitlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil || memberID <= 0 {
		h.logger.Warn("GET /members/{id}/entitlements - Invalid member ID: %s", vars["memberId"])
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	result, err := h.service.GetByMember(r.Context(), memberID)
	if err != nil {
		h.logger.Error("GET /members/{id}/entitlements - Failed to get entitlements: member_id=%d, error=%v",
			memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

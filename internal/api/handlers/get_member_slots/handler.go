package get_member_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

const (
	msgInvalidMemberID = "некорректный ID клиента"
	msgInvalidFilter   = "некорректные параметры фильтра"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/members/{memberId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{memberId}/slots - Invalid member ID: %v", vars["memberId"])
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	query := r.URL.Query()

	var from, to *time.Time
	if v := query.Get("from"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /members/{memberId}/slots - Invalid 'from' date: %v", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		from = &parsed
	}
	if v := query.Get("to"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /members/{memberId}/slots - Invalid 'to' date: %v", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		// Верхняя граница включает весь указанный день
		parsed = parsed.AddDate(0, 0, 1)
		to = &parsed
	}

	var status *string
	if v := query.Get("status"); v != "" {
		status = &v
	}

	req := &models.GetMemberSlotsRequest{
		MemberID: memberID,
		From:     from,
		To:       to,
		Status:   status,
	}

	result, err := h.service.GetMemberSlots(r.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /members/{memberId}/slots - Invalid filter: member_id=%d, err=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /members/{memberId}/slots - Failed to get slots: member_id=%d, err=%v", memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /members/{memberId}/slots - Slots retrieved: member_id=%d, count=%d", memberID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

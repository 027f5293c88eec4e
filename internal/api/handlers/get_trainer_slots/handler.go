package get_trainer_slots

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
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidFilter    = "некорректные параметры фильтра"
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

// Handle обрабатывает GET /api/v1/trainers/{trainerId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{trainerId}/slots - Invalid trainer ID: %v", vars["trainerId"])
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	query := r.URL.Query()

	var from, to *time.Time
	if v := query.Get("from"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /trainers/{trainerId}/slots - Invalid 'from' date: %v", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		from = &parsed
	}
	if v := query.Get("to"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /trainers/{trainerId}/slots - Invalid 'to' date: %v", v)
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

	req := &models.GetTrainerSlotsRequest{
		TrainerID: trainerID,
		From:      from,
		To:        to,
		Status:    status,
	}

	result, err := h.service.GetTrainerSlots(r.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /trainers/{trainerId}/slots - Invalid filter: trainer_id=%d, err=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /trainers/{trainerId}/slots - Failed to get slots: trainer_id=%d, err=%v", trainerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /trainers/{trainerId}/slots - Slots retrieved: trainer_id=%d, count=%d", trainerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

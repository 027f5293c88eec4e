package complete_slot

import (
	completeSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/complete_slot"
)

// CompleteSlotRequest запрос на завершение слота
type CompleteSlotRequest struct {
	ActorID   int64  `json:"actorId"`
	ActorRole string `json:"actorRole"`
}

// ToUseCaseRequest преобразует HTTP-запрос в запрос use case
func (r *CompleteSlotRequest) ToUseCaseRequest(slotID int64) *completeSlot.Request {
	return &completeSlot.Request{
		SlotID:    slotID,
		ActorID:   r.ActorID,
		ActorRole: r.ActorRole,
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Request модели

// AssignRequest запрос на назначение пакета клиенту
type AssignRequest struct {
	MemberID   int64   `json:"memberId"`
	PackageID  int64   `json:"packageId"`
	TrainerID  *int64  `json:"trainerId,omitempty"`
	AmountPaid float64 `json:"amountPaid"`
}

// FreezeRequest запрос на заморозку абонемента
type FreezeRequest struct {
	Days   int    `json:"days"`
	Reason string `json:"reason"`
}

// ExtendRequest запрос на продление абонемента
type ExtendRequest struct {
	AdditionalDays     int     `json:"additionalDays"`
	AdditionalSessions int     `json:"additionalSessions"`
	AmountPaid         float64 `json:"amountPaid"`
	ActorID            int64   `json:"actorId"`
	Reason             string  `json:"reason"`
}

// CancelRequest запрос на отмену абонемента
type CancelRequest struct {
	ActorID int64  `json:"actorId"`
	Reason  string `json:"reason"`
}

// Response модели

// FreezeResponse запись о заморозке
type FreezeResponse struct {
	StartDate string `json:"startDate"` // "2025-10-15"
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
	Reason    string `json:"reason"`
}

// ExtensionResponse запись о продлении
type ExtensionResponse struct {
	AdditionalDays     int     `json:"additionalDays"`
	AdditionalSessions int     `json:"additionalSessions"`
	AmountPaid         float64 `json:"amountPaid"`
	CreatedBy          int64   `json:"createdBy"`
	Reason             string  `json:"reason"`
	CreatedAt          string  `json:"createdAt"` // ISO 8601
}

// EntitlementResponse ответ с данными абонемента
type EntitlementResponse struct {
	ID        int64  `json:"id"`
	MemberID  int64  `json:"memberId"`
	PackageID int64  `json:"packageId"`
	TrainerID *int64 `json:"trainerId,omitempty"`

	SessionsTotal     int `json:"sessionsTotal"`
	SessionsUsed      int `json:"sessionsUsed"`
	SessionsRemaining int `json:"sessionsRemaining"`

	ValidityStart string `json:"validityStart"` // "2025-10-15"
	ValidityEnd   string `json:"validityEnd"`

	Status          string `json:"status"`
	TotalFrozenDays int    `json:"totalFrozenDays"`

	PackageName string  `json:"packageName"`
	AmountPaid  float64 `json:"amountPaid"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	Freezes    []FreezeResponse    `json:"freezes"`
	Extensions []ExtensionResponse `json:"extensions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntitlementListResponse ответ со списком абонементов
type EntitlementListResponse struct {
	Entitlements []EntitlementResponse `json:"entitlements"`
}

// UseSessionResult результат списания сессии
// Consumed=false означает отказ в списании (сессий не осталось), не ошибку
type UseSessionResult struct {
	Consumed          bool   `json:"consumed"`
	SessionsRemaining int    `json:"sessionsRemaining"`
	Status            string `json:"status"`
}

// Методы конвертации

// FromDomainEntitlement конвертирует domain модель в DTO
func FromDomainEntitlement(e *domain.EntitlementInstance) *EntitlementResponse {
	if e == nil {
		return nil
	}

	resp := &EntitlementResponse{
		ID:                 e.ID,
		MemberID:           e.MemberID,
		PackageID:          e.PackageID,
		TrainerID:          e.TrainerID,
		SessionsTotal:      e.SessionsTotal,
		SessionsUsed:       e.SessionsUsed,
		SessionsRemaining:  e.SessionsRemaining,
		ValidityStart:      e.ValidityStart.Format(domain.DateFormat),
		ValidityEnd:        e.ValidityEnd.Format(domain.DateFormat),
		Status:             string(e.Status),
		TotalFrozenDays:    e.TotalFrozenDays,
		PackageName:        e.PackageName,
		AmountPaid:         e.AmountPaid,
		CancellationReason: e.CancellationReason,
		Freezes:            make([]FreezeResponse, 0, len(e.Freezes)),
		Extensions:         make([]ExtensionResponse, 0, len(e.Extensions)),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}

	if e.CancelledAt != nil {
		cancelledStr := e.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	for _, f := range e.Freezes {
		resp.Freezes = append(resp.Freezes, FreezeResponse{
			StartDate: f.StartDate.Format(domain.DateFormat),
			EndDate:   f.EndDate.Format(domain.DateFormat),
			Days:      f.Days,
			Reason:    f.Reason,
		})
	}

	for _, ext := range e.Extensions {
		resp.Extensions = append(resp.Extensions, ExtensionResponse{
			AdditionalDays:     ext.AdditionalDays,
			AdditionalSessions: ext.AdditionalSessions,
			AmountPaid:         ext.AmountPaid,
			CreatedBy:          ext.CreatedBy,
			Reason:             ext.Reason,
			CreatedAt:          ext.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}

// FromDomainEntitlementList конвертирует список domain моделей в DTO
func FromDomainEntitlementList(entitlements []*domain.EntitlementInstance) *EntitlementListResponse {
	resp := &EntitlementListResponse{
		Entitlements: make([]EntitlementResponse, 0, len(entitlements)),
	}

	for _, e := range entitlements {
		if r := FromDomainEntitlement(e); r != nil {
			resp.Entitlements = append(resp.Entitlements, *r)
		}
	}

	return resp
}

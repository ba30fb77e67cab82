package services

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// InstallmentReaderSvc defines read operations for installment data
type InstallmentReaderSvc interface {
	// ListInstallments retrieves the installment plan for one charge type of a client.
	ListInstallments(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType) ([]domain.Installment, error)

	// ListPayments retrieves the cursor-paginated feed of paid installments.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// InstallmentWriterSvc defines write operations for installment data
type InstallmentWriterSvc interface {
	// ReplacePlan validates the submitted partition against the client's
	// payable charge and persists it atomically.
	ReplacePlan(ctx context.Context, enrolledClientID string, req dto.ReplaceInstallmentPlanRequest, actorUserID string) ([]domain.Installment, error)

	// AdminEditInstallment records an admin's proposed override in the
	// edited_* shadow fields of one installment.
	AdminEditInstallment(ctx context.Context, installmentID string, req dto.AdminInstallmentEditRequest, adminUserID string) (*domain.Installment, error)

	// SetPaymentStatus flips the paid flag of an installment (finance only).
	SetPaymentStatus(ctx context.Context, installmentID string, paid bool, actorUserID string) (*domain.Installment, error)

	// SetNetAmount adjusts the net collection amount of an installment (finance only).
	SetNetAmount(ctx context.Context, installmentID string, req dto.PaymentControlRequest, actorUserID string) (*domain.Installment, error)
}

// InstallmentSvcFacade combines all installment-related service interfaces
type InstallmentSvcFacade interface {
	InstallmentReaderSvc
	InstallmentWriterSvc
}

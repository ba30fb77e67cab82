package repositories

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
)

// InstallmentReader defines read operations for installment data
type InstallmentReader interface {
	// FindInstallmentByID retrieves a specific installment by its unique identifier.
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// FindInstallmentsByClientAndCharge retrieves the installment plan for one
	// charge type of a client, ordered by installment number.
	FindInstallmentsByClientAndCharge(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType) ([]domain.Installment, error)

	// ListPaidInstallments retrieves a cursor-paginated feed of paid
	// installments, newest payment first. It returns the installments, a
	// token for the next page, and an error.
	ListPaidInstallments(ctx context.Context, limit int, nextToken *string) ([]domain.Installment, *string, error)
}

// InstallmentWriter defines write operations for installment data
type InstallmentWriter interface {
	// ReplacePlan deletes the existing plan for (client, charge type) and
	// inserts the new one within a single DB transaction.
	ReplacePlan(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType, installments []domain.Installment) error

	// UpdateInstallment updates a single installment row.
	UpdateInstallment(ctx context.Context, installment domain.Installment) error
}

// InstallmentRepositoryFacade combines all installment-related repository interfaces
type InstallmentRepositoryFacade interface {
	InstallmentReader
	InstallmentWriter
}

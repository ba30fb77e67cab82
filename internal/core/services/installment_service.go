package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/core/reconcile"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

var (
	ErrUnknownChargeType = errors.New("unknown charge type")
	ErrChargeNotSet      = errors.New("no payable charge configured for this charge type")
	ErrPaidRowImmutable  = errors.New("a paid installment cannot be edited")
)

// installmentService implements the installment plan operations and the
// finance-facing payment controls.
type installmentService struct {
	installmentRepo portsrepo.InstallmentRepositoryFacade
	enrollmentRepo  portsrepo.EnrollmentRepositoryFacade
}

// NewInstallmentService creates a new installment service.
func NewInstallmentService(installmentRepo portsrepo.InstallmentRepositoryFacade, enrollmentRepo portsrepo.EnrollmentRepositoryFacade) portssvc.InstallmentSvcFacade {
	return &installmentService{
		installmentRepo: installmentRepo,
		enrollmentRepo:  enrollmentRepo,
	}
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

func (s *installmentService) ListInstallments(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType) ([]domain.Installment, error) {
	if !domain.ValidChargeType(chargeType) {
		return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownChargeType, chargeType)
	}
	installments, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, enrolledClientID, chargeType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments for client %s: %w", enrolledClientID, err)
	}
	return installments, nil
}

func (s *installmentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	installments, nextToken, err := s.installmentRepo.ListPaidInstallments(ctx, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list paid installments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToInstallmentResponses(installments),
		NextToken: nextToken,
	}, nil
}

func (s *installmentService) ReplacePlan(ctx context.Context, enrolledClientID string, req dto.ReplaceInstallmentPlanRequest, actorUserID string) ([]domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !domain.ValidChargeType(req.ChargeType) {
		return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownChargeType, req.ChargeType)
	}

	client, err := s.enrollmentRepo.FindEnrolledClientByID(ctx, enrolledClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enrolled client %s: %w", enrolledClientID, err)
	}

	// Once a charge's review round is fully approved its plan can only change
	// through the shadow-edit flow, never by wholesale replacement.
	// Percentage-mode first-year pricing has no plannable total, so a
	// first-year plan is only accepted while a fixed price is configured.
	var total *decimal.Decimal
	switch req.ChargeType {
	case domain.ChargeEnrollment:
		if client.Stage() == domain.StageFullyApproved {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargesLocked)
		}
		total = client.Payable.EnrollmentCharge
	case domain.ChargeOfferLetter:
		if client.FinalStage() == domain.StageFullyApproved {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargesLocked)
		}
		total = client.Payable.OfferLetterCharge
	case domain.ChargeFirstYear:
		if client.FinalStage() == domain.StageFullyApproved {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargesLocked)
		}
		total = client.Payable.FirstYearFixed
	}
	if total == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargeNotSet)
	}

	existing, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, enrolledClientID, req.ChargeType)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing installments: %w", err)
	}
	for i := range existing {
		if existing[i].Paid {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPlanHasPaidRows)
		}
	}

	installments, err := assembleInstallments(enrolledClientID, req.ChargeType, *total, req.InitialPayment, req.InitialPaymentRemark, req.Installments, actorUserID, now)
	if err != nil {
		logger.Warn("Replacement plan failed reconciliation", slog.String("enrolled_client_id", enrolledClientID), slog.String("charge_type", string(req.ChargeType)), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.installmentRepo.ReplacePlan(ctx, enrolledClientID, req.ChargeType, installments); err != nil {
		logger.Error("Failed to replace installment plan", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to replace plan: %w", err)
	}

	logger.Info("Installment plan replaced", slog.String("enrolled_client_id", enrolledClientID), slog.String("charge_type", string(req.ChargeType)), slog.Int("installments", len(installments)))
	return installments, nil
}

func (s *installmentService) AdminEditInstallment(ctx context.Context, installmentID string, req dto.AdminInstallmentEditRequest, adminUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	inst, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment %s: %w", installmentID, err)
	}
	if inst.Paid {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPaidRowImmutable)
	}
	if req.EditedAmount != nil && req.EditedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: edited amount must not be negative", apperrors.ErrValidation)
	}
	if req.EditedAmount != nil {
		if err := s.guardEditAllocation(ctx, inst, *req.EditedAmount); err != nil {
			logger.Warn("Installment edit rejected by allocation guard", slog.String("installment_id", installmentID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	inst.EditedAmount = req.EditedAmount
	inst.EditedDueDate = req.EditedDueDate
	inst.EditedRemark = req.EditedRemark
	inst.AdminID = &adminUserID
	inst.SalesApproval = false
	inst.LastUpdatedAt = now
	inst.LastUpdatedBy = adminUserID

	if err := s.installmentRepo.UpdateInstallment(ctx, *inst); err != nil {
		logger.Error("Failed to record installment edit", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to record edit: %w", err)
	}
	logger.Info("Installment edit recorded", slog.String("installment_id", installmentID), slog.String("admin_id", adminUserID))
	return inst, nil
}

// guardEditAllocation rejects an edited amount that would push the charge's
// plan past its governing total. The plan is rebuilt with pending edited
// amounts standing in for the originals and the new amount is applied through
// the reconciliation engine, so its over-allocation guard decides.
// Under-allocation is tolerated at this point: the remainder may be absorbed
// by edits to other rows, and the committed plan is fully reconciled again
// before sales can approve it.
func (s *installmentService) guardEditAllocation(ctx context.Context, inst *domain.Installment, editedAmount decimal.Decimal) error {
	client, err := s.enrollmentRepo.FindEnrolledClientByID(ctx, inst.EnrolledClientID)
	if err != nil {
		return fmt.Errorf("failed to find enrolled client %s: %w", inst.EnrolledClientID, err)
	}
	total := pendingChargeTotal(client, inst.ChargeType)
	if total == nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargeNotSet)
	}

	siblings, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, inst.EnrolledClientID, inst.ChargeType)
	if err != nil {
		return fmt.Errorf("failed to fetch installments for client %s: %w", inst.EnrolledClientID, err)
	}

	plan := reconcile.NewPlan(*total)
	row := -1
	for i := range siblings {
		amount := siblings[i].Amount
		if siblings[i].EditedAmount != nil {
			amount = *siblings[i].EditedAmount
		}
		if siblings[i].IsInitialPayment {
			plan.Initial = amount
			continue
		}
		plan.Installments = append(plan.Installments, reconcile.Line{Amount: amount})
		if siblings[i].InstallmentID == inst.InstallmentID {
			row = len(plan.Installments) - 1
		}
	}

	if inst.IsInitialPayment {
		err = plan.SetInitialPayment(editedAmount)
	} else if row >= 0 {
		err = plan.UpdateAmount(row, editedAmount)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return nil
}

// pendingChargeTotal resolves the total a charge's plan must allocate
// against, preferring a pending edited charge over the committed payable one.
func pendingChargeTotal(client *domain.EnrolledClient, chargeType domain.ChargeType) *decimal.Decimal {
	switch chargeType {
	case domain.ChargeEnrollment:
		if client.Edited.EnrollmentCharge != nil {
			return client.Edited.EnrollmentCharge
		}
		return client.Payable.EnrollmentCharge
	case domain.ChargeOfferLetter:
		if client.Edited.OfferLetterCharge != nil {
			return client.Edited.OfferLetterCharge
		}
		return client.Payable.OfferLetterCharge
	case domain.ChargeFirstYear:
		if client.Edited.FirstYearFixed != nil {
			return client.Edited.FirstYearFixed
		}
		return client.Payable.FirstYearFixed
	}
	return nil
}

func (s *installmentService) SetPaymentStatus(ctx context.Context, installmentID string, paid bool, actorUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	inst, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment %s: %w", installmentID, err)
	}

	inst.Paid = paid
	if paid {
		paidAt := now
		inst.PaidDate = &paidAt
	} else {
		inst.PaidDate = nil
	}
	inst.LastUpdatedAt = now
	inst.LastUpdatedBy = actorUserID

	if err := s.installmentRepo.UpdateInstallment(ctx, *inst); err != nil {
		logger.Error("Failed to update payment status", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	logger.Info("Payment status updated", slog.String("installment_id", installmentID), slog.Bool("paid", paid))
	return inst, nil
}

func (s *installmentService) SetNetAmount(ctx context.Context, installmentID string, req dto.PaymentControlRequest, actorUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if req.NetAmount.IsNegative() {
		return nil, fmt.Errorf("%w: net amount must not be negative", apperrors.ErrValidation)
	}

	inst, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment %s: %w", installmentID, err)
	}

	inst.NetAmount = req.NetAmount
	inst.LastUpdatedAt = now
	inst.LastUpdatedBy = actorUserID

	if err := s.installmentRepo.UpdateInstallment(ctx, *inst); err != nil {
		logger.Error("Failed to update net amount", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to update net amount: %w", err)
	}
	return inst, nil
}

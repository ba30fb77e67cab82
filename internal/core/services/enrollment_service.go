package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
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
	ErrChargesLocked          = errors.New("payable charges are locked after full approval")
	ErrChargeNotPositive      = errors.New("charge amount must be positive")
	ErrPackageInactive        = errors.New("selected package is not active for new enrollments")
	ErrNotAwaitingAdminReview = errors.New("configuration is not awaiting admin review")
	ErrNoPendingEdits         = errors.New("no admin edits are awaiting sales approval")
	ErrEditedChargeMissing    = errors.New("edited enrollment charge is required when returning for review")
	ErrFirstRoundIncomplete   = errors.New("final configuration requires an approved enrollment charge")
	ErrFinalNotAwaitingReview = errors.New("final configuration is not awaiting review")
	ErrFinalNotSubmitted      = errors.New("no final configuration has been submitted")
	ErrPricingModeConflict    = errors.New("exactly one first-year pricing mode must be set")
	ErrFirstYearPlanMissing   = errors.New("fixed first-year pricing requires an installment plan")
	ErrFirstYearPlanForbidden = errors.New("percentage first-year pricing does not take an installment plan")
	ErrPlanHasPaidRows        = errors.New("installment plan has paid rows and cannot be replaced")
	ErrResumeEmpty            = errors.New("resume file is empty")
)

// enrollmentService implements the enrollment listings, the two-round
// approval workflow and resume storage.
type enrollmentService struct {
	enrollmentRepo  portsrepo.EnrollmentRepositoryFacade
	installmentRepo portsrepo.InstallmentRepositoryFacade
	packageSvc      portssvc.PackageReaderSvc
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(enrollmentRepo portsrepo.EnrollmentRepositoryFacade, installmentRepo portsrepo.InstallmentRepositoryFacade, packageSvc portssvc.PackageReaderSvc) portssvc.EnrollmentSvcFacade {
	return &enrollmentService{
		enrollmentRepo:  enrollmentRepo,
		installmentRepo: installmentRepo,
		packageSvc:      packageSvc,
	}
}

var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

// assembleInstallments validates the submitted partition against the total
// charge and materialises it as persistable installment rows. Row 0 is the
// initial payment; it is only created when the initial amount is positive.
func assembleInstallments(enrolledClientID string, chargeType domain.ChargeType, total decimal.Decimal, initial decimal.Decimal, initialRemark string, inputs []dto.InstallmentInput, actorUserID string, now time.Time) ([]domain.Installment, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrChargeNotPositive)
	}
	plan := reconcile.NewPlan(total)
	plan.Initial = initial
	for _, in := range inputs {
		plan.Installments = append(plan.Installments, reconcile.Line{
			Amount:  in.Amount,
			DueDate: in.DueDate,
			Remark:  in.Remark,
		})
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorUserID, LastUpdatedAt: now, LastUpdatedBy: actorUserID}
	var installments []domain.Installment
	if initial.IsPositive() {
		installments = append(installments, domain.Installment{
			InstallmentID:     uuid.NewString(),
			EnrolledClientID:  enrolledClientID,
			ChargeType:        chargeType,
			InstallmentNumber: 0,
			Amount:            initial,
			NetAmount:         initial,
			Remark:            initialRemark,
			IsInitialPayment:  true,
			AuditFields:       audit,
		})
	}
	for i, in := range inputs {
		installments = append(installments, domain.Installment{
			InstallmentID:     uuid.NewString(),
			EnrolledClientID:  enrolledClientID,
			ChargeType:        chargeType,
			InstallmentNumber: i + 1,
			Amount:            in.Amount,
			NetAmount:         in.Amount,
			DueDate:           in.DueDate,
			Remark:            in.Remark,
			AuditFields:       audit,
		})
	}
	return installments, nil
}

// guardNoPaidRows rejects a plan replacement once money has been collected
// against the existing plan.
func (s *enrollmentService) guardNoPaidRows(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType) error {
	existing, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, enrolledClientID, chargeType)
	if err != nil {
		return fmt.Errorf("failed to check existing installments: %w", err)
	}
	for i := range existing {
		if existing[i].Paid {
			return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPlanHasPaidRows)
		}
	}
	return nil
}

// markInitialPaid flags the unpaid initial-payment rows as collected. It
// returns only the rows it changed.
func markInitialPaid(installments []domain.Installment, actorUserID string, now time.Time) []domain.Installment {
	var changed []domain.Installment
	for i := range installments {
		inst := installments[i]
		if inst.IsInitialPayment && !inst.Paid {
			paidAt := now
			inst.Paid = true
			inst.PaidDate = &paidAt
			inst.LastUpdatedAt = now
			inst.LastUpdatedBy = actorUserID
			changed = append(changed, inst)
		}
	}
	return changed
}

func (s *enrollmentService) GetEnrolledClient(ctx context.Context, enrolledClientID string) (*domain.EnrolledClient, error) {
	client, err := s.enrollmentRepo.FindEnrolledClientByID(ctx, enrolledClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enrolled client %s: %w", enrolledClientID, err)
	}
	return client, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, scope portssvc.ListingScope, params dto.ListEnrollmentsParams, requestingUserID string) (*dto.ListEnrollmentsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !dto.ValidTab(params.Tab) {
		return nil, fmt.Errorf("%w: unknown listing tab %q", apperrors.ErrValidation, params.Tab)
	}

	filter := portsrepo.EnrollmentListFilter{
		Limit:  params.Limit,
		Offset: (params.Page - 1) * params.Limit,
		Search: params.Search,
	}
	switch params.Tab {
	case dto.TabApproved:
		stage := domain.StageFullyApproved
		filter.Stage = &stage
	case dto.TabAdminReviewPending:
		stage := domain.StagePendingAdminReview
		filter.Stage = &stage
	case dto.TabSalesReviewPending:
		stage := domain.StagePendingSalesReview
		filter.Stage = &stage
	case dto.TabMyReview:
		switch scope {
		case portssvc.ScopeSales:
			stage := domain.StagePendingSalesReview
			filter.Stage = &stage
			filter.SalesPersonID = &requestingUserID
		case portssvc.ScopeAdmin:
			stage := domain.StagePendingAdminReview
			filter.Stage = &stage
			filter.AdminID = &requestingUserID
		default:
			return nil, fmt.Errorf("%w: tab %q requires a reviewer scope", apperrors.ErrValidation, params.Tab)
		}
	}

	clients, total, err := s.enrollmentRepo.ListEnrolledClients(ctx, filter)
	if err != nil {
		logger.Error("Failed to list enrolled clients", slog.String("error", err.Error()), slog.String("scope", string(scope)))
		return nil, fmt.Errorf("failed to list enrolled clients: %w", err)
	}

	leadIDs := make([]string, 0, len(clients))
	for i := range clients {
		leadIDs = append(leadIDs, clients[i].LeadID)
	}
	leads, err := s.enrollmentRepo.FindLeadsByIDs(ctx, leadIDs)
	if err != nil {
		logger.Error("Failed to fetch leads for listing", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}

	responses := make([]dto.EnrolledClientResponse, len(clients))
	for i := range clients {
		var lead *domain.Lead
		if l, ok := leads[clients[i].LeadID]; ok {
			lead = &l
		}
		responses[i] = dto.ToEnrolledClientResponse(&clients[i], lead)
	}

	logger.Debug("Enrollments listed", slog.String("scope", string(scope)), slog.String("tab", params.Tab), slog.Int("count", len(responses)))
	return &dto.ListEnrollmentsResponse{
		Leads:      responses,
		Pagination: dto.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (s *enrollmentService) SubmitSalesConfiguration(ctx context.Context, enrolledClientID string, req dto.SalesConfigurationRequest, salesUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}
	if client.Stage() == domain.StageFullyApproved {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargesLocked)
	}

	pkg, err := s.packageSvc.GetPackageByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: package %s", apperrors.ErrNotFound, req.PackageID)
		}
		return nil, fmt.Errorf("failed to fetch package %s: %w", req.PackageID, err)
	}
	if pkg.Status != domain.PackageActive {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPackageInactive)
	}

	if err := s.guardNoPaidRows(ctx, enrolledClientID, domain.ChargeEnrollment); err != nil {
		return nil, err
	}

	installments, err := assembleInstallments(enrolledClientID, domain.ChargeEnrollment, req.EnrollmentCharge, req.InitialPayment, req.InitialPaymentRemark, req.Installments, salesUserID, now)
	if err != nil {
		logger.Warn("Sales configuration failed reconciliation", slog.String("enrolled_client_id", enrolledClientID), slog.String("error", err.Error()))
		return nil, err
	}

	charge := req.EnrollmentCharge
	client.PackageID = &req.PackageID
	client.Payable.EnrollmentCharge = &charge
	if client.Payable.OfferLetterCharge == nil {
		defaults := pkg.DefaultCharges()
		client.Payable.OfferLetterCharge = defaults.OfferLetterCharge
		client.Payable.FirstYearPercentage = defaults.FirstYearPercentage
		client.Payable.FirstYearFixed = defaults.FirstYearFixed
	}
	client.Edited = domain.ChargeAmounts{}
	client.ApprovalBySales = true
	client.ApprovalByAdmin = false
	client.HasUpdate = false
	client.LastUpdatedAt = now
	client.LastUpdatedBy = salesUserID

	plans := map[domain.ChargeType][]domain.Installment{domain.ChargeEnrollment: installments}
	if err := s.enrollmentRepo.SaveConfiguration(ctx, *client, plans); err != nil {
		logger.Error("Failed to save sales configuration", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info("Sales configuration submitted", slog.String("enrolled_client_id", enrolledClientID), slog.String("package_id", req.PackageID), slog.Int("installments", len(installments)))
	return client, nil
}

func (s *enrollmentService) AdminReview(ctx context.Context, enrolledClientID string, req dto.AdminReviewRequest, adminUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}
	if client.Stage() != domain.StagePendingAdminReview {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotAwaitingAdminReview)
	}

	installments, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, enrolledClientID, domain.ChargeEnrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installment plan: %w", err)
	}

	if req.Approve {
		client.ApprovalByAdmin = true
		client.HasUpdate = false
		client.LastUpdatedAt = now
		client.LastUpdatedBy = adminUserID

		changed := markInitialPaid(installments, adminUserID, now)
		if err := s.enrollmentRepo.UpdateClientWithInstallments(ctx, *client, changed); err != nil {
			logger.Error("Failed to persist admin approval", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
			return nil, fmt.Errorf("failed to persist approval: %w", err)
		}
		logger.Info("Configuration approved by admin", slog.String("enrolled_client_id", enrolledClientID), slog.String("admin_id", adminUserID))
		return client, nil
	}

	if req.EditedEnrollmentCharge == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEditedChargeMissing)
	}
	if !req.EditedEnrollmentCharge.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrChargeNotPositive)
	}

	byID := make(map[string]*domain.Installment, len(installments))
	for i := range installments {
		byID[installments[i].InstallmentID] = &installments[i]
	}
	for _, edit := range req.EditedInstallments {
		inst, ok := byID[edit.InstallmentID]
		if !ok {
			return nil, fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, edit.InstallmentID)
		}
		inst.EditedAmount = edit.EditedAmount
		inst.EditedDueDate = edit.EditedDueDate
		inst.EditedRemark = edit.EditedRemark
		inst.AdminID = &adminUserID
		inst.SalesApproval = false
		inst.LastUpdatedAt = now
		inst.LastUpdatedBy = adminUserID
	}

	// The plan sales will be asked to approve must itself reconcile against
	// the edited charge, with edited amounts standing in for the originals.
	plan := reconcile.NewPlan(*req.EditedEnrollmentCharge)
	for i := range installments {
		amount := installments[i].Amount
		if installments[i].EditedAmount != nil {
			amount = *installments[i].EditedAmount
		}
		if installments[i].IsInitialPayment {
			plan.Initial = amount
			continue
		}
		plan.Installments = append(plan.Installments, reconcile.Line{Amount: amount})
	}
	if err := plan.Validate(); err != nil {
		logger.Warn("Admin edits failed reconciliation", slog.String("enrolled_client_id", enrolledClientID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	client.Edited.EnrollmentCharge = req.EditedEnrollmentCharge
	client.ApprovalByAdmin = true
	client.HasUpdate = true
	client.LastUpdatedAt = now
	client.LastUpdatedBy = adminUserID

	edited := make([]domain.Installment, 0, len(req.EditedInstallments))
	for _, edit := range req.EditedInstallments {
		edited = append(edited, *byID[edit.InstallmentID])
	}
	if err := s.enrollmentRepo.UpdateClientWithInstallments(ctx, *client, edited); err != nil {
		logger.Error("Failed to persist admin edits", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to persist edits: %w", err)
	}

	logger.Info("Configuration returned to sales with edits", slog.String("enrolled_client_id", enrolledClientID), slog.String("admin_id", adminUserID), slog.Int("edited_installments", len(edited)))
	return client, nil
}

func (s *enrollmentService) SalesApproveEdits(ctx context.Context, enrolledClientID string, salesUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}
	if client.Stage() != domain.StagePendingSalesReview {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNoPendingEdits)
	}

	installments, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, enrolledClientID, domain.ChargeEnrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installment plan: %w", err)
	}

	// The plan being committed must reconcile against the charge being
	// committed with it, with pending edited amounts standing in for the
	// originals. Per-row edits only guard over-allocation, so an
	// under-allocated set of edits is caught here.
	target := pendingChargeTotal(client, domain.ChargeEnrollment)
	if target == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrChargeNotSet)
	}
	plan := reconcile.NewPlan(*target)
	for i := range installments {
		amount := installments[i].Amount
		if installments[i].EditedAmount != nil {
			amount = *installments[i].EditedAmount
		}
		if installments[i].IsInitialPayment {
			plan.Initial = amount
			continue
		}
		plan.Installments = append(plan.Installments, reconcile.Line{Amount: amount})
	}
	if err := plan.Validate(); err != nil {
		logger.Warn("Edited plan failed reconciliation at sales approval", slog.String("enrolled_client_id", enrolledClientID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	var changed []domain.Installment
	for i := range installments {
		inst := installments[i]
		touched := false
		if inst.HasPendingEdit() {
			inst.CommitEdits()
			touched = true
		}
		if inst.IsInitialPayment && !inst.Paid {
			paidAt := now
			inst.Paid = true
			inst.PaidDate = &paidAt
			touched = true
		}
		if touched {
			inst.LastUpdatedAt = now
			inst.LastUpdatedBy = salesUserID
			changed = append(changed, inst)
		}
	}

	if client.Edited.EnrollmentCharge != nil {
		client.Payable.EnrollmentCharge = client.Edited.EnrollmentCharge
	}
	client.Edited = domain.ChargeAmounts{}
	client.ApprovalBySales = true
	client.HasUpdate = false
	client.LastUpdatedAt = now
	client.LastUpdatedBy = salesUserID

	if err := s.enrollmentRepo.UpdateClientWithInstallments(ctx, *client, changed); err != nil {
		logger.Error("Failed to persist sales approval of edits", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}

	logger.Info("Admin edits approved by sales", slog.String("enrolled_client_id", enrolledClientID), slog.String("sales_user_id", salesUserID))
	return client, nil
}

func (s *enrollmentService) SubmitFinalConfiguration(ctx context.Context, enrolledClientID string, req dto.FinalConfigurationRequest, adminUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}
	if client.Stage() != domain.StageFullyApproved {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrFirstRoundIncomplete)
	}

	hasPercentage := req.FirstYearPercentage != nil
	hasFixed := req.FirstYearFixed != nil
	if hasPercentage == hasFixed {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPricingModeConflict)
	}
	if hasPercentage {
		p := *req.FirstYearPercentage
		if !p.IsPositive() || p.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: first-year percentage must be in (0, 100]", apperrors.ErrValidation)
		}
		if req.FirstYearPlan != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrFirstYearPlanForbidden)
		}
	}
	if hasFixed && req.FirstYearPlan == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrFirstYearPlanMissing)
	}

	for _, ct := range []domain.ChargeType{domain.ChargeOfferLetter, domain.ChargeFirstYear} {
		if err := s.guardNoPaidRows(ctx, enrolledClientID, ct); err != nil {
			return nil, err
		}
	}

	offerPlan, err := assembleInstallments(enrolledClientID, domain.ChargeOfferLetter, req.OfferLetterCharge, req.OfferLetterPlan.InitialPayment, req.OfferLetterPlan.InitialPaymentRemark, req.OfferLetterPlan.Installments, adminUserID, now)
	if err != nil {
		logger.Warn("Offer letter plan failed reconciliation", slog.String("enrolled_client_id", enrolledClientID), slog.String("error", err.Error()))
		return nil, err
	}

	// A mode switch must also clear any previously stored first-year plan,
	// so the first-year entry is always present in the replacement set.
	var firstYearPlan []domain.Installment
	if hasFixed {
		firstYearPlan, err = assembleInstallments(enrolledClientID, domain.ChargeFirstYear, *req.FirstYearFixed, req.FirstYearPlan.InitialPayment, req.FirstYearPlan.InitialPaymentRemark, req.FirstYearPlan.Installments, adminUserID, now)
		if err != nil {
			logger.Warn("First-year plan failed reconciliation", slog.String("enrolled_client_id", enrolledClientID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	// The submitted charges sit in the edited mirror until sales signs off;
	// the payable amounts stay at their pre-submission values meanwhile.
	charge := req.OfferLetterCharge
	client.Edited.OfferLetterCharge = &charge
	client.Edited.FirstYearPercentage = req.FirstYearPercentage
	client.Edited.FirstYearFixed = req.FirstYearFixed
	client.FinalApprovalByAdmin = true
	client.FinalApprovalSales = false
	client.HasUpdateInFinal = true
	client.LastUpdatedAt = now
	client.LastUpdatedBy = adminUserID

	plans := map[domain.ChargeType][]domain.Installment{
		domain.ChargeOfferLetter: offerPlan,
		domain.ChargeFirstYear:   firstYearPlan,
	}
	if err := s.enrollmentRepo.SaveConfiguration(ctx, *client, plans); err != nil {
		logger.Error("Failed to save final configuration", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to save final configuration: %w", err)
	}

	logger.Info("Final configuration submitted", slog.String("enrolled_client_id", enrolledClientID), slog.String("admin_id", adminUserID), slog.Bool("fixed_first_year", hasFixed))
	return client, nil
}

func (s *enrollmentService) AdminApproveFinal(ctx context.Context, enrolledClientID string, adminUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}
	if client.FinalStage() != domain.StagePendingAdminReview {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrFinalNotAwaitingReview)
	}
	// Right after the first round completes, the final stage also reads as
	// pending admin review even though nothing has been submitted yet. Sales
	// sign-off distinguishes the two.
	if !client.FinalApprovalSales {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrFinalNotSubmitted)
	}

	client.FinalApprovalByAdmin = true
	client.HasUpdateInFinal = false
	client.LastUpdatedAt = now
	client.LastUpdatedBy = adminUserID

	changed, err := s.collectFinalInitialPayments(ctx, enrolledClientID, adminUserID, now)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentRepo.UpdateClientWithInstallments(ctx, *client, changed); err != nil {
		logger.Error("Failed to persist final admin approval", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}

	logger.Info("Final configuration approved by admin", slog.String("enrolled_client_id", enrolledClientID), slog.String("admin_id", adminUserID))
	return client, nil
}

func (s *enrollmentService) SalesApproveFinal(ctx context.Context, enrolledClientID string, salesUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}
	if client.FinalStage() != domain.StagePendingSalesReview {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrFinalNotAwaitingReview)
	}

	// Submission always writes the offer letter charge and exactly one
	// first-year mode together, so the mirror is committed as a unit.
	if client.Edited.OfferLetterCharge != nil {
		client.Payable.OfferLetterCharge = client.Edited.OfferLetterCharge
		client.Payable.FirstYearPercentage = client.Edited.FirstYearPercentage
		client.Payable.FirstYearFixed = client.Edited.FirstYearFixed
		client.Edited.OfferLetterCharge = nil
		client.Edited.FirstYearPercentage = nil
		client.Edited.FirstYearFixed = nil
	}
	client.FinalApprovalSales = true
	client.HasUpdateInFinal = false
	client.LastUpdatedAt = now
	client.LastUpdatedBy = salesUserID

	var changed []domain.Installment
	if client.FinalApprovalByAdmin {
		changed, err = s.collectFinalInitialPayments(ctx, enrolledClientID, salesUserID, now)
		if err != nil {
			return nil, err
		}
	}
	if err := s.enrollmentRepo.UpdateClientWithInstallments(ctx, *client, changed); err != nil {
		logger.Error("Failed to persist final sales approval", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}

	logger.Info("Final configuration approved by sales", slog.String("enrolled_client_id", enrolledClientID), slog.String("sales_user_id", salesUserID))
	return client, nil
}

// collectFinalInitialPayments marks the initial payments of the final-round
// charge plans paid, returning the changed rows.
func (s *enrollmentService) collectFinalInitialPayments(ctx context.Context, enrolledClientID string, actorUserID string, now time.Time) ([]domain.Installment, error) {
	var changed []domain.Installment
	for _, ct := range []domain.ChargeType{domain.ChargeOfferLetter, domain.ChargeFirstYear} {
		installments, err := s.installmentRepo.FindInstallmentsByClientAndCharge(ctx, enrolledClientID, ct)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s plan: %w", ct, err)
		}
		changed = append(changed, markInitialPaid(installments, actorUserID, now)...)
	}
	return changed, nil
}

func (s *enrollmentService) UpdateOperationalStatus(ctx context.Context, enrolledClientID string, req dto.OperationalStatusRequest, actorUserID string) (*domain.EnrolledClient, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client, err := s.GetEnrolledClient(ctx, enrolledClientID)
	if err != nil {
		return nil, err
	}

	if req.FirstCallStatus != nil {
		switch *req.FirstCallStatus {
		case domain.FirstCallPending, domain.FirstCallOnHold, domain.FirstCallDone:
			client.FirstCallStatus = *req.FirstCallStatus
		default:
			return nil, fmt.Errorf("%w: unknown first call status %q", apperrors.ErrValidation, *req.FirstCallStatus)
		}
	}
	if req.IsTrainingRequired != nil {
		client.IsTrainingRequired = *req.IsTrainingRequired
	}
	client.LastUpdatedAt = now
	client.LastUpdatedBy = actorUserID

	if err := s.enrollmentRepo.UpdateEnrolledClient(ctx, *client); err != nil {
		logger.Error("Failed to update operational status", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return nil, fmt.Errorf("failed to update operational status: %w", err)
	}
	return client, nil
}

func (s *enrollmentService) UploadResume(ctx context.Context, enrolledClientID string, file domain.ResumeFile, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if len(file.Data) == 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrResumeEmpty)
	}
	if _, err := s.GetEnrolledClient(ctx, enrolledClientID); err != nil {
		return err
	}
	if err := s.enrollmentRepo.SaveResume(ctx, enrolledClientID, file, actorUserID, now); err != nil {
		logger.Error("Failed to save resume", slog.String("error", err.Error()), slog.String("enrolled_client_id", enrolledClientID))
		return fmt.Errorf("failed to save resume: %w", err)
	}
	logger.Info("Resume uploaded", slog.String("enrolled_client_id", enrolledClientID), slog.String("file_name", file.FileName))
	return nil
}

func (s *enrollmentService) GetResume(ctx context.Context, enrolledClientID string) (*domain.ResumeFile, error) {
	file, err := s.enrollmentRepo.FindResume(ctx, enrolledClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch resume for client %s: %w", enrolledClientID, err)
	}
	return file, nil
}

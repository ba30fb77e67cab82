package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/core/reconcile"
	"github.com/placementpro/enrollment_crm_app/internal/core/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

type InstallmentServiceTestSuite struct {
	suite.Suite
	mockInstallmentRepo *MockInstallmentRepository
	mockEnrollmentRepo  *MockEnrollmentRepository
	service             portssvc.InstallmentSvcFacade
	clientID            string
	installmentID       string
	adminUserID         string
	financeUserID       string
}

func (suite *InstallmentServiceTestSuite) SetupTest() {
	suite.mockInstallmentRepo = new(MockInstallmentRepository)
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.service = services.NewInstallmentService(suite.mockInstallmentRepo, suite.mockEnrollmentRepo)

	suite.clientID = uuid.NewString()
	suite.installmentID = uuid.NewString()
	suite.adminUserID = uuid.NewString()
	suite.financeUserID = uuid.NewString()
}

func (suite *InstallmentServiceTestSuite) configuredClient() *domain.EnrolledClient {
	packageID := uuid.NewString()
	return &domain.EnrolledClient{
		EnrolledClientID: suite.clientID,
		LeadID:           uuid.NewString(),
		PackageID:        &packageID,
		Payable: domain.ChargeAmounts{
			EnrollmentCharge:    decPtr("1000"),
			OfferLetterCharge:   decPtr("500"),
			FirstYearPercentage: decPtr("10"),
		},
		ApprovalBySales: true,
	}
}

func (suite *InstallmentServiceTestSuite) fullyApprovedClient() *domain.EnrolledClient {
	client := suite.configuredClient()
	client.ApprovalByAdmin = true
	return client
}

func (suite *InstallmentServiceTestSuite) unpaidInstallment() *domain.Installment {
	return &domain.Installment{
		InstallmentID:     suite.installmentID,
		EnrolledClientID:  suite.clientID,
		ChargeType:        domain.ChargeEnrollment,
		InstallmentNumber: 1,
		Amount:            dec("300"),
		NetAmount:         dec("300"),
	}
}

// enrollmentPlan is the stored plan the unpaid installment belongs to:
// a paid initial payment of 400 plus two rows of 300 against the 1000 charge.
func (suite *InstallmentServiceTestSuite) enrollmentPlan() []domain.Installment {
	return []domain.Installment{
		{InstallmentID: uuid.NewString(), EnrolledClientID: suite.clientID, ChargeType: domain.ChargeEnrollment, Amount: dec("400"), NetAmount: dec("400"), IsInitialPayment: true, Paid: true},
		*suite.unpaidInstallment(),
		{InstallmentID: uuid.NewString(), EnrolledClientID: suite.clientID, ChargeType: domain.ChargeEnrollment, InstallmentNumber: 2, Amount: dec("300"), NetAmount: dec("300")},
	}
}

func (suite *InstallmentServiceTestSuite) TestReplacePlan_Success() {
	ctx := context.Background()
	req := dto.ReplaceInstallmentPlanRequest{
		ChargeType:     domain.ChargeEnrollment,
		InitialPayment: dec("250"),
		Installments: []dto.InstallmentInput{
			{Amount: dec("250")},
			{Amount: dec("250")},
			{Amount: dec("250")},
		},
	}

	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.configuredClient(), nil)
	suite.mockInstallmentRepo.On("FindInstallmentsByClientAndCharge", ctx, suite.clientID, domain.ChargeEnrollment).Return([]domain.Installment{}, nil)
	suite.mockInstallmentRepo.On("ReplacePlan", ctx, suite.clientID, domain.ChargeEnrollment, mock.MatchedBy(func(rows []domain.Installment) bool {
		return len(rows) == 4 && rows[0].IsInitialPayment && rows[0].Amount.Equal(dec("250")) &&
			rows[3].InstallmentNumber == 3
	})).Return(nil)

	installments, err := suite.service.ReplacePlan(ctx, suite.clientID, req, suite.adminUserID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), installments, 4)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestReplacePlan_LockedAfterFullApproval() {
	ctx := context.Background()
	req := dto.ReplaceInstallmentPlanRequest{
		ChargeType:     domain.ChargeEnrollment,
		InitialPayment: dec("1000"),
	}

	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.fullyApprovedClient(), nil)

	_, err := suite.service.ReplacePlan(ctx, suite.clientID, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	assert.ErrorIs(suite.T(), err, services.ErrChargesLocked)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "ReplacePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestReplacePlan_PercentageModeHasNoFirstYearPlan() {
	ctx := context.Background()
	req := dto.ReplaceInstallmentPlanRequest{
		ChargeType:     domain.ChargeFirstYear,
		InitialPayment: dec("100"),
	}

	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.configuredClient(), nil)

	_, err := suite.service.ReplacePlan(ctx, suite.clientID, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	assert.ErrorIs(suite.T(), err, services.ErrChargeNotSet)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "ReplacePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestReplacePlan_PaidRowsBlockReplacement() {
	ctx := context.Background()
	req := dto.ReplaceInstallmentPlanRequest{
		ChargeType:     domain.ChargeEnrollment,
		InitialPayment: dec("1000"),
	}
	existing := []domain.Installment{{InstallmentID: uuid.NewString(), Paid: true}}

	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.configuredClient(), nil)
	suite.mockInstallmentRepo.On("FindInstallmentsByClientAndCharge", ctx, suite.clientID, domain.ChargeEnrollment).Return(existing, nil)

	_, err := suite.service.ReplacePlan(ctx, suite.clientID, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, services.ErrPlanHasPaidRows)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "ReplacePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestReplacePlan_ReconciliationFailure() {
	ctx := context.Background()
	req := dto.ReplaceInstallmentPlanRequest{
		ChargeType:     domain.ChargeOfferLetter,
		InitialPayment: dec("200"),
		Installments:   []dto.InstallmentInput{{Amount: dec("200")}},
	}

	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.configuredClient(), nil)
	suite.mockInstallmentRepo.On("FindInstallmentsByClientAndCharge", ctx, suite.clientID, domain.ChargeOfferLetter).Return([]domain.Installment{}, nil)

	_, err := suite.service.ReplacePlan(ctx, suite.clientID, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "ReplacePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestReplacePlan_UnknownChargeType() {
	ctx := context.Background()
	req := dto.ReplaceInstallmentPlanRequest{ChargeType: domain.ChargeType("late_fee")}

	_, err := suite.service.ReplacePlan(ctx, suite.clientID, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, services.ErrUnknownChargeType)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "FindEnrolledClientByID", mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestAdminEditInstallment_RecordsShadowFields() {
	ctx := context.Background()
	req := dto.AdminInstallmentEditRequest{EditedAmount: decPtr("250")}

	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(suite.unpaidInstallment(), nil)
	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.fullyApprovedClient(), nil)
	suite.mockInstallmentRepo.On("FindInstallmentsByClientAndCharge", ctx, suite.clientID, domain.ChargeEnrollment).Return(suite.enrollmentPlan(), nil)
	suite.mockInstallmentRepo.On("UpdateInstallment", ctx, mock.MatchedBy(func(inst domain.Installment) bool {
		return inst.EditedAmount != nil && inst.EditedAmount.Equal(dec("250")) &&
			inst.Amount.Equal(dec("300")) && !inst.SalesApproval &&
			inst.AdminID != nil && *inst.AdminID == suite.adminUserID
	})).Return(nil)

	updated, err := suite.service.AdminEditInstallment(ctx, suite.installmentID, req, suite.adminUserID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.HasPendingEdit())
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestAdminEditInstallment_RejectsOverAllocation() {
	ctx := context.Background()
	req := dto.AdminInstallmentEditRequest{EditedAmount: decPtr("9999")}

	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(suite.unpaidInstallment(), nil)
	suite.mockEnrollmentRepo.On("FindEnrolledClientByID", ctx, suite.clientID).Return(suite.fullyApprovedClient(), nil)
	suite.mockInstallmentRepo.On("FindInstallmentsByClientAndCharge", ctx, suite.clientID, domain.ChargeEnrollment).Return(suite.enrollmentPlan(), nil)

	_, err := suite.service.AdminEditInstallment(ctx, suite.installmentID, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.ErrorIs(suite.T(), err, reconcile.ErrOverAllocated)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "UpdateInstallment", mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestAdminEditInstallment_PaidRowImmutable() {
	ctx := context.Background()
	inst := suite.unpaidInstallment()
	inst.Paid = true

	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(inst, nil)

	_, err := suite.service.AdminEditInstallment(ctx, suite.installmentID, dto.AdminInstallmentEditRequest{EditedAmount: decPtr("250")}, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	assert.ErrorIs(suite.T(), err, services.ErrPaidRowImmutable)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "UpdateInstallment", mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestAdminEditInstallment_NotFound() {
	ctx := context.Background()
	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.AdminEditInstallment(ctx, suite.installmentID, dto.AdminInstallmentEditRequest{}, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *InstallmentServiceTestSuite) TestSetPaymentStatus_MarkPaidSetsPaidDate() {
	ctx := context.Background()
	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(suite.unpaidInstallment(), nil)
	suite.mockInstallmentRepo.On("UpdateInstallment", ctx, mock.MatchedBy(func(inst domain.Installment) bool {
		return inst.Paid && inst.PaidDate != nil
	})).Return(nil)

	updated, err := suite.service.SetPaymentStatus(ctx, suite.installmentID, true, suite.financeUserID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.Paid)
	assert.NotNil(suite.T(), updated.PaidDate)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestSetPaymentStatus_UnmarkClearsPaidDate() {
	ctx := context.Background()
	inst := suite.unpaidInstallment()
	paidAt := inst.CreatedAt
	inst.Paid = true
	inst.PaidDate = &paidAt

	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(inst, nil)
	suite.mockInstallmentRepo.On("UpdateInstallment", ctx, mock.MatchedBy(func(updated domain.Installment) bool {
		return !updated.Paid && updated.PaidDate == nil
	})).Return(nil)

	updated, err := suite.service.SetPaymentStatus(ctx, suite.installmentID, false, suite.financeUserID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), updated.Paid)
	assert.Nil(suite.T(), updated.PaidDate)
}

func (suite *InstallmentServiceTestSuite) TestSetNetAmount_Success() {
	ctx := context.Background()
	suite.mockInstallmentRepo.On("FindInstallmentByID", ctx, suite.installmentID).Return(suite.unpaidInstallment(), nil)
	suite.mockInstallmentRepo.On("UpdateInstallment", ctx, mock.MatchedBy(func(inst domain.Installment) bool {
		return inst.NetAmount.Equal(dec("280")) && inst.Amount.Equal(dec("300"))
	})).Return(nil)

	updated, err := suite.service.SetNetAmount(ctx, suite.installmentID, dto.PaymentControlRequest{NetAmount: dec("280")}, suite.financeUserID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.NetAmount.Equal(dec("280")))
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestSetNetAmount_RejectsNegative() {
	ctx := context.Background()

	_, err := suite.service.SetNetAmount(ctx, suite.installmentID, dto.PaymentControlRequest{NetAmount: dec("-1")}, suite.financeUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "FindInstallmentByID", mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestListInstallments_UnknownChargeType() {
	ctx := context.Background()

	_, err := suite.service.ListInstallments(ctx, suite.clientID, domain.ChargeType("bonus"))

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.ErrorIs(suite.T(), err, services.ErrUnknownChargeType)
}

func (suite *InstallmentServiceTestSuite) TestListPayments_ReturnsNextToken() {
	ctx := context.Background()
	paidAt := suite.unpaidInstallment().CreatedAt
	feed := []domain.Installment{
		{InstallmentID: uuid.NewString(), EnrolledClientID: suite.clientID, ChargeType: domain.ChargeEnrollment, Amount: dec("400"), NetAmount: dec("400"), Paid: true, PaidDate: &paidAt},
	}
	token := "next-page-token"

	suite.mockInstallmentRepo.On("ListPaidInstallments", ctx, 20, (*string)(nil)).Return(feed, &token, nil)

	resp, err := suite.service.ListPayments(ctx, dto.ListPaymentsParams{Limit: 20})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Payments, 1)
	assert.True(suite.T(), resp.Payments[0].Paid)
	assert.Equal(suite.T(), &token, resp.NextToken)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func TestInstallmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InstallmentServiceTestSuite))
}

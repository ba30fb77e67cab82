package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/core/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int, role *domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

type AssignmentServiceTestSuite struct {
	suite.Suite
	mockEnrollmentRepo *MockEnrollmentRepository
	mockUserRepo       *MockUserRepository
	service            portssvc.AssignmentSvcFacade
	marketingLeadID    string
	adminUserID        string
	clientID           string
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAssignmentService(suite.mockEnrollmentRepo, suite.mockUserRepo)

	suite.marketingLeadID = uuid.NewString()
	suite.adminUserID = uuid.NewString()
	suite.clientID = uuid.NewString()
}

func (suite *AssignmentServiceTestSuite) marketingLead() *domain.User {
	return &domain.User{
		UserID:   suite.marketingLeadID,
		Name:     "Morgan Vale",
		Email:    "morgan.vale@example.com",
		Role:     domain.RoleMarketingLead,
		IsActive: true,
	}
}

func (suite *AssignmentServiceTestSuite) approvedClient(id string) domain.EnrolledClient {
	packageID := uuid.NewString()
	return domain.EnrolledClient{
		EnrolledClientID: id,
		LeadID:           uuid.NewString(),
		PackageID:        &packageID,
		ApprovalBySales:  true,
		ApprovalByAdmin:  true,
	}
}

func (suite *AssignmentServiceTestSuite) TestAssignEnrolled_Success() {
	ctx := context.Background()
	otherClientID := uuid.NewString()
	req := dto.AssignEnrolledRequest{
		ClientIDs:       []string{suite.clientID, otherClientID},
		MarketingLeadID: suite.marketingLeadID,
		Remark:          "Batch handover",
	}
	clients := map[string]domain.EnrolledClient{
		suite.clientID: suite.approvedClient(suite.clientID),
		otherClientID:  suite.approvedClient(otherClientID),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.marketingLeadID).Return(suite.marketingLead(), nil)
	suite.mockEnrollmentRepo.On("FindEnrolledClientsByIDs", ctx, req.ClientIDs).Return(clients, nil)
	suite.mockEnrollmentRepo.On("AssignClients", ctx, req.ClientIDs, suite.marketingLeadID, "Batch handover", suite.adminUserID, mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := suite.service.AssignEnrolled(ctx, req, suite.adminUserID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, resp.AssignedCount)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestAssignEnrolled_TargetNotMarketingLead() {
	ctx := context.Background()
	lead := suite.marketingLead()
	lead.Role = domain.RoleSales

	suite.mockUserRepo.On("FindUserByID", ctx, suite.marketingLeadID).Return(lead, nil)

	_, err := suite.service.AssignEnrolled(ctx, dto.AssignEnrolledRequest{ClientIDs: []string{suite.clientID}, MarketingLeadID: suite.marketingLeadID}, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.ErrorIs(suite.T(), err, services.ErrNotMarketingLead)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "AssignClients", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssignEnrolled_InactiveLead() {
	ctx := context.Background()
	lead := suite.marketingLead()
	lead.IsActive = false

	suite.mockUserRepo.On("FindUserByID", ctx, suite.marketingLeadID).Return(lead, nil)

	_, err := suite.service.AssignEnrolled(ctx, dto.AssignEnrolledRequest{ClientIDs: []string{suite.clientID}, MarketingLeadID: suite.marketingLeadID}, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, services.ErrAssigneeInactive)
}

func (suite *AssignmentServiceTestSuite) TestAssignEnrolled_NotFullyApprovedFailsBatch() {
	ctx := context.Background()
	pendingID := uuid.NewString()
	pending := suite.approvedClient(pendingID)
	pending.ApprovalByAdmin = false
	req := dto.AssignEnrolledRequest{
		ClientIDs:       []string{suite.clientID, pendingID},
		MarketingLeadID: suite.marketingLeadID,
	}
	clients := map[string]domain.EnrolledClient{
		suite.clientID: suite.approvedClient(suite.clientID),
		pendingID:      pending,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.marketingLeadID).Return(suite.marketingLead(), nil)
	suite.mockEnrollmentRepo.On("FindEnrolledClientsByIDs", ctx, req.ClientIDs).Return(clients, nil)

	_, err := suite.service.AssignEnrolled(ctx, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	assert.ErrorIs(suite.T(), err, services.ErrNotFullyApproved)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "AssignClients", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssignEnrolled_AlreadyAssigned() {
	ctx := context.Background()
	assigned := suite.approvedClient(suite.clientID)
	assigned.AssignedMarketingLeadID = &suite.marketingLeadID
	req := dto.AssignEnrolledRequest{
		ClientIDs:       []string{suite.clientID},
		MarketingLeadID: suite.marketingLeadID,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.marketingLeadID).Return(suite.marketingLead(), nil)
	suite.mockEnrollmentRepo.On("FindEnrolledClientsByIDs", ctx, req.ClientIDs).Return(map[string]domain.EnrolledClient{suite.clientID: assigned}, nil)

	_, err := suite.service.AssignEnrolled(ctx, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, services.ErrAlreadyAssigned)
}

func (suite *AssignmentServiceTestSuite) TestAssignEnrolled_MissingClient() {
	ctx := context.Background()
	req := dto.AssignEnrolledRequest{
		ClientIDs:       []string{suite.clientID},
		MarketingLeadID: suite.marketingLeadID,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.marketingLeadID).Return(suite.marketingLead(), nil)
	suite.mockEnrollmentRepo.On("FindEnrolledClientsByIDs", ctx, req.ClientIDs).Return(map[string]domain.EnrolledClient{}, nil)

	_, err := suite.service.AssignEnrolled(ctx, req, suite.adminUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *AssignmentServiceTestSuite) TestListMarketingLeads_MapsAssignedCounts() {
	ctx := context.Background()
	leads := []portsrepo.MarketingLead{
		{User: *suite.marketingLead(), AssignedCount: 4},
		{User: domain.User{UserID: uuid.NewString(), Name: "Priya Nair", Email: "priya.nair@example.com", Role: domain.RoleMarketingLead, IsActive: true}, AssignedCount: 0},
	}

	suite.mockEnrollmentRepo.On("ListMarketingLeads", ctx).Return(leads, nil)

	resp, err := suite.service.ListMarketingLeads(ctx)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Leads, 2)
	assert.Equal(suite.T(), suite.marketingLeadID, resp.Leads[0].UserID)
	assert.Equal(suite.T(), 4, resp.Leads[0].AssignedCount)
	assert.Equal(suite.T(), "Priya Nair", resp.Leads[1].Name)
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}

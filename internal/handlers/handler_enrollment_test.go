package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/core/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/handlers"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

// --- Mock EnrollmentService ---
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) ListEnrollments(ctx context.Context, scope portssvc.ListingScope, params dto.ListEnrollmentsParams, requestingUserID string) (*dto.ListEnrollmentsResponse, error) {
	args := m.Called(ctx, scope, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEnrollmentsResponse), args.Error(1)
}
func (m *MockEnrollmentService) GetEnrolledClient(ctx context.Context, enrolledClientID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) SubmitSalesConfiguration(ctx context.Context, enrolledClientID string, req dto.SalesConfigurationRequest, salesUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, req, salesUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) AdminReview(ctx context.Context, enrolledClientID string, req dto.AdminReviewRequest, adminUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, req, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) SalesApproveEdits(ctx context.Context, enrolledClientID string, salesUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, salesUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) SubmitFinalConfiguration(ctx context.Context, enrolledClientID string, req dto.FinalConfigurationRequest, adminUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, req, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) AdminApproveFinal(ctx context.Context, enrolledClientID string, adminUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) SalesApproveFinal(ctx context.Context, enrolledClientID string, salesUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, salesUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) UpdateOperationalStatus(ctx context.Context, enrolledClientID string, req dto.OperationalStatusRequest, actorUserID string) (*domain.EnrolledClient, error) {
	args := m.Called(ctx, enrolledClientID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrolledClient), args.Error(1)
}
func (m *MockEnrollmentService) UploadResume(ctx context.Context, enrolledClientID string, file domain.ResumeFile, actorUserID string) error {
	args := m.Called(ctx, enrolledClientID, file, actorUserID)
	return args.Error(0)
}
func (m *MockEnrollmentService) GetResume(ctx context.Context, enrolledClientID string) (*domain.ResumeFile, error) {
	args := m.Called(ctx, enrolledClientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeFile), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.EnrollmentSvcFacade = (*MockEnrollmentService)(nil)

// --- Mock AssignmentService ---
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) AssignEnrolled(ctx context.Context, req dto.AssignEnrolledRequest, actorUserID string) (*dto.AssignEnrolledResponse, error) {
	args := m.Called(ctx, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AssignEnrolledResponse), args.Error(1)
}
func (m *MockAssignmentService) ListMarketingLeads(ctx context.Context) (*dto.ListMarketingLeadsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMarketingLeadsResponse), args.Error(1)
}

var _ portssvc.AssignmentSvcFacade = (*MockAssignmentService)(nil)

// --- Test Suite ---
type EnrollmentHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockEnrollmentService *MockEnrollmentService
	mockAssignmentService *MockAssignmentService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT carrying the given role.
func (suite *EnrollmentHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	claims := middleware.AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "crm-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *EnrollmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEnrollmentService = new(MockEnrollmentService)
	suite.mockAssignmentService = new(MockAssignmentService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterEnrollmentRoutes(v1, suite.mockEnrollmentService, suite.mockAssignmentService)
}

func (suite *EnrollmentHandlerTestSuite) performRequest(method, path string, body []byte, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EnrollmentHandlerTestSuite) TestListSales_Success() {
	salesUserID := uuid.NewString()
	token := suite.generateTestToken(salesUserID, domain.RoleSales)

	expectedResponse := &dto.ListEnrollmentsResponse{
		Leads: []dto.EnrolledClientResponse{
			{EnrolledClientID: uuid.NewString(), LeadID: uuid.NewString()},
		},
		Pagination: dto.NewPagination(1, 20, 1),
	}
	suite.mockEnrollmentService.On("ListEnrollments", mock.Anything, portssvc.ScopeSales, mock.AnythingOfType("dto.ListEnrollmentsParams"), salesUserID).Return(expectedResponse, nil)

	w := suite.performRequest(http.MethodGet, "/api/v1/enrolled-clients/sales/all?tab=AllEnrollments", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEnrollmentsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err)
	suite.Len(resp.Leads, 1)
	suite.Equal(1, resp.Pagination.Total)
	suite.mockEnrollmentService.AssertExpectations(suite.T())
}

func (suite *EnrollmentHandlerTestSuite) TestListSales_ForbiddenForAdminRole() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)

	w := suite.performRequest(http.MethodGet, "/api/v1/enrolled-clients/sales/all", nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockEnrollmentService.AssertNotCalled(suite.T(), "ListEnrollments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EnrollmentHandlerTestSuite) TestListSales_MissingToken() {
	w := suite.performRequest(http.MethodGet, "/api/v1/enrolled-clients/sales/all", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *EnrollmentHandlerTestSuite) TestGetEnrolledClient_NotFound() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleSales)
	clientID := uuid.NewString()

	suite.mockEnrollmentService.On("GetEnrolledClient", mock.Anything, clientID).Return(nil, apperrors.ErrNotFound)

	w := suite.performRequest(http.MethodGet, "/api/v1/enrolled-clients/"+clientID, nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EnrollmentHandlerTestSuite) TestSubmitSalesConfiguration_Success() {
	salesUserID := uuid.NewString()
	token := suite.generateTestToken(salesUserID, domain.RoleSales)
	clientID := uuid.NewString()
	packageID := uuid.NewString()

	body, err := json.Marshal(gin.H{
		"packageid":                 packageID,
		"payable_enrollment_charge": "1000",
		"initial_payment":           "400",
		"installments": []gin.H{
			{"amount": "300"},
			{"amount": "300"},
		},
	})
	suite.NoError(err)

	charge := decimal.NewFromInt(1000)
	updated := &domain.EnrolledClient{
		EnrolledClientID: clientID,
		LeadID:           uuid.NewString(),
		PackageID:        &packageID,
		Payable:          domain.ChargeAmounts{EnrollmentCharge: &charge},
		ApprovalBySales:  true,
	}
	suite.mockEnrollmentService.On("SubmitSalesConfiguration", mock.Anything, clientID, mock.MatchedBy(func(req dto.SalesConfigurationRequest) bool {
		return req.PackageID == packageID && req.EnrollmentCharge.Equal(decimal.NewFromInt(1000)) && len(req.Installments) == 2
	}), salesUserID).Return(updated, nil)

	w := suite.performRequest(http.MethodPut, "/api/v1/enrolled-clients/sales/"+clientID, body, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EnrolledClientResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(clientID, resp.EnrolledClientID)
	suite.mockEnrollmentService.AssertExpectations(suite.T())
}

func (suite *EnrollmentHandlerTestSuite) TestSubmitSalesConfiguration_InvalidJSON() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleSales)

	w := suite.performRequest(http.MethodPut, "/api/v1/enrolled-clients/sales/"+uuid.NewString(), []byte("{not json"), token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEnrollmentService.AssertNotCalled(suite.T(), "SubmitSalesConfiguration", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EnrollmentHandlerTestSuite) TestAdminReview_ConflictMapsTo409() {
	adminUserID := uuid.NewString()
	token := suite.generateTestToken(adminUserID, domain.RoleAdmin)
	clientID := uuid.NewString()

	body, err := json.Marshal(gin.H{"approve": true})
	suite.NoError(err)

	suite.mockEnrollmentService.On("AdminReview", mock.Anything, clientID, mock.AnythingOfType("dto.AdminReviewRequest"), adminUserID).
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, services.ErrNotAwaitingAdminReview))

	w := suite.performRequest(http.MethodPut, "/api/v1/enrolled-clients/admin/approval/"+clientID, body, token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EnrollmentHandlerTestSuite) TestSalesApproveEdits_DeclineRejected() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleSales)
	clientID := uuid.NewString()

	body, err := json.Marshal(gin.H{"approve": false})
	suite.NoError(err)

	w := suite.performRequest(http.MethodPut, "/api/v1/enrolled-clients/sales/approval/"+clientID, body, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEnrollmentService.AssertNotCalled(suite.T(), "SalesApproveEdits", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EnrollmentHandlerTestSuite) TestAssignEnrolled_Success() {
	adminUserID := uuid.NewString()
	token := suite.generateTestToken(adminUserID, domain.RoleAdmin)
	marketingLeadID := uuid.NewString()
	clientIDs := []string{uuid.NewString(), uuid.NewString()}

	body, err := json.Marshal(gin.H{
		"client_ids":             clientIDs,
		"marketing_team_lead_id": marketingLeadID,
		"remark":                 "Handover after approval",
	})
	suite.NoError(err)

	suite.mockAssignmentService.On("AssignEnrolled", mock.Anything, mock.MatchedBy(func(req dto.AssignEnrolledRequest) bool {
		return req.MarketingLeadID == marketingLeadID && len(req.ClientIDs) == 2
	}), adminUserID).Return(&dto.AssignEnrolledResponse{AssignedCount: 2}, nil)

	w := suite.performRequest(http.MethodPost, "/api/v1/client-assignments/assign-enrolled", body, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AssignEnrolledResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.AssignedCount)
	suite.mockAssignmentService.AssertExpectations(suite.T())
}

func (suite *EnrollmentHandlerTestSuite) TestAssignEnrolled_ForbiddenForSales() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleSales)

	body, err := json.Marshal(gin.H{"client_ids": []string{uuid.NewString()}, "marketing_team_lead_id": uuid.NewString()})
	suite.NoError(err)

	w := suite.performRequest(http.MethodPost, "/api/v1/client-assignments/assign-enrolled", body, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAssignmentService.AssertNotCalled(suite.T(), "AssignEnrolled", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentHandlerTestSuite))
}

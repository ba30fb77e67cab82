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
	"github.com/placementpro/enrollment_crm_app/internal/core/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	creatorID    string
	userID       string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.creatorID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *UserServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       suite.userID,
		Name:         "Asha Rao",
		Email:        "asha.rao@example.com",
		PasswordHash: hash,
		Role:         domain.RoleSales,
		IsActive:     true,
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Asha Rao",
		Email:    "asha.rao@example.com",
		Password: "correct-horse-battery",
		Role:     domain.RoleSales,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound)
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.Role == domain.RoleSales && u.IsActive &&
			u.PasswordHash != "" && u.PasswordHash != req.Password &&
			u.CreatedBy == suite.creatorID
	})).Return(nil)

	user, err := suite.service.CreateUser(ctx, req, suite.creatorID)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), user.UserID)
	assert.True(suite.T(), utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := suite.activeUser("irrelevant-pass")
	req := dto.CreateUserRequest{
		Name:     "Asha Rao",
		Email:    existing.Email,
		Password: "correct-horse-battery",
		Role:     domain.RoleSales,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil)

	_, err := suite.service.CreateUser(ctx, req, suite.creatorID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Asha Rao",
		Email:    "asha.rao@example.com",
		Password: "correct-horse-battery",
		Role:     domain.UserRole("INTERN"),
	}

	_, err := suite.service.CreateUser(ctx, req, suite.creatorID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.ErrorIs(suite.T(), err, services.ErrUnknownRole)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil)

	authenticated, err := suite.service.Authenticate(ctx, user.Email, "correct-horse-battery")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, authenticated.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil)

	_, err := suite.service.Authenticate(ctx, user.Email, "wrong-password")

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Authenticate(ctx, "nobody@example.com", "whatever-pass")

	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil)

	_, err := suite.service.Authenticate(ctx, user.Email, "correct-horse-battery")

	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestUpdateUser_PartialUpdate() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")
	newName := "Asha R."
	inactive := false
	req := dto.UpdateUserRequest{Name: &newName, IsActive: &inactive}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(user, nil)
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == newName && !u.IsActive && u.Email == user.Email
	})).Return(nil)

	updated, err := suite.service.UpdateUser(ctx, suite.userID, req, suite.creatorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), newName, updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeactivateUser_Success() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse-battery")

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(user, nil)
	suite.mockUserRepo.On("MarkUserDeleted", ctx, suite.userID, mock.AnythingOfType("time.Time"), suite.creatorID).Return(nil)

	err := suite.service.DeactivateUser(ctx, suite.userID, suite.creatorID)

	assert.NoError(suite.T(), err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_UnknownRoleFilter() {
	ctx := context.Background()

	_, err := suite.service.ListUsers(ctx, dto.ListUsersParams{Limit: 20, Role: "SUPERVISOR"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

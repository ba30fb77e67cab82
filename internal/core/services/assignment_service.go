package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

var (
	ErrNotFullyApproved = errors.New("client is not fully approved")
	ErrAlreadyAssigned  = errors.New("client is already assigned to this marketing team lead")
	ErrNotMarketingLead = errors.New("target user is not a marketing team lead")
	ErrAssigneeInactive = errors.New("target marketing team lead is inactive")
)

// assignmentService implements the bulk handover of fully-approved clients
// to the marketing team.
type assignmentService struct {
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(enrollmentRepo portsrepo.EnrollmentRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) AssignEnrolled(ctx context.Context, req dto.AssignEnrolledRequest, actorUserID string) (*dto.AssignEnrolledResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	lead, err := s.userRepo.FindUserByID(ctx, req.MarketingLeadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: marketing team lead %s", apperrors.ErrNotFound, req.MarketingLeadID)
		}
		return nil, fmt.Errorf("failed to find marketing team lead %s: %w", req.MarketingLeadID, err)
	}
	if lead.Role != domain.RoleMarketingLead {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNotMarketingLead)
	}
	if !lead.IsActive || lead.DeletedAt != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAssigneeInactive)
	}

	clients, err := s.enrollmentRepo.FindEnrolledClientsByIDs(ctx, req.ClientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch selected clients: %w", err)
	}

	// The whole selection is validated before anything is written; one bad
	// client fails the entire batch.
	for _, id := range req.ClientIDs {
		client, ok := clients[id]
		if !ok {
			return nil, fmt.Errorf("%w: enrolled client %s", apperrors.ErrNotFound, id)
		}
		if client.Stage() != domain.StageFullyApproved {
			return nil, fmt.Errorf("%w: %w (client %s)", apperrors.ErrConflict, ErrNotFullyApproved, id)
		}
		if client.AssignedMarketingLeadID != nil && *client.AssignedMarketingLeadID == req.MarketingLeadID {
			return nil, fmt.Errorf("%w: %w (client %s)", apperrors.ErrConflict, ErrAlreadyAssigned, id)
		}
	}

	if err := s.enrollmentRepo.AssignClients(ctx, req.ClientIDs, req.MarketingLeadID, req.Remark, actorUserID, now); err != nil {
		logger.Error("Failed to assign clients", slog.String("error", err.Error()), slog.String("marketing_lead_id", req.MarketingLeadID), slog.Int("count", len(req.ClientIDs)))
		return nil, fmt.Errorf("failed to assign clients: %w", err)
	}

	logger.Info("Clients assigned to marketing team lead", slog.String("marketing_lead_id", req.MarketingLeadID), slog.Int("count", len(req.ClientIDs)))
	return &dto.AssignEnrolledResponse{AssignedCount: len(req.ClientIDs)}, nil
}

func (s *assignmentService) ListMarketingLeads(ctx context.Context) (*dto.ListMarketingLeadsResponse, error) {
	leads, err := s.enrollmentRepo.ListMarketingLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list marketing team leads: %w", err)
	}
	responses := make([]dto.MarketingLeadResponse, len(leads))
	for i, lead := range leads {
		responses[i] = dto.MarketingLeadResponse{
			UserID:        lead.User.UserID,
			Name:          lead.User.Name,
			Email:         lead.User.Email,
			AssignedCount: lead.AssignedCount,
		}
	}
	return &dto.ListMarketingLeadsResponse{Leads: responses}, nil
}

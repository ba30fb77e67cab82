package services

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// AssignmentSvcFacade defines the bulk client-assignment operations.
type AssignmentSvcFacade interface {
	// AssignEnrolled assigns the selected fully-approved clients to one
	// marketing team lead, all-or-nothing.
	AssignEnrolled(ctx context.Context, req dto.AssignEnrolledRequest, actorUserID string) (*dto.AssignEnrolledResponse, error)

	// ListMarketingLeads returns the selectable marketing team leads with
	// their current assignment counts.
	ListMarketingLeads(ctx context.Context) (*dto.ListMarketingLeadsResponse, error)
}

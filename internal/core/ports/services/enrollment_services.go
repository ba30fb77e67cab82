package services

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// ListingScope names the role-scoped listing a caller is requesting. Sales
// and admin see the review workflow; the accounts scopes are the finance
// views over the same data.
type ListingScope string

const (
	ScopeSales         ListingScope = "sales"
	ScopeAdmin         ListingScope = "admin"
	ScopeAccountsSales ListingScope = "accounts_sales"
	ScopeAccountsAdmin ListingScope = "accounts_admin"
)

// EnrollmentReaderSvc defines read operations for enrollments
type EnrollmentReaderSvc interface {
	// ListEnrollments retrieves a role-scoped, tab-partitioned page of enrollments.
	ListEnrollments(ctx context.Context, scope ListingScope, params dto.ListEnrollmentsParams, requestingUserID string) (*dto.ListEnrollmentsResponse, error)

	// GetEnrolledClient retrieves one enrollment by ID.
	GetEnrolledClient(ctx context.Context, enrolledClientID string) (*domain.EnrolledClient, error)
}

// EnrollmentWorkflowSvc defines the approval workflow transitions
type EnrollmentWorkflowSvc interface {
	// SubmitSalesConfiguration writes the package selection, the payable
	// enrollment charge and the full installment plan, atomically. Also used
	// for sales resubmission after admin edits (restarts the review cycle).
	SubmitSalesConfiguration(ctx context.Context, enrolledClientID string, req dto.SalesConfigurationRequest, salesUserID string) (*domain.EnrolledClient, error)

	// AdminReview either approves the configuration as-is (marking the
	// initial payment paid) or records edited values and returns the record
	// to sales for re-approval.
	AdminReview(ctx context.Context, enrolledClientID string, req dto.AdminReviewRequest, adminUserID string) (*domain.EnrolledClient, error)

	// SalesApproveEdits commits the admin's pending edits into the payable
	// fields and installment amounts, marking the initial payment paid.
	SalesApproveEdits(ctx context.Context, enrolledClientID string, salesUserID string) (*domain.EnrolledClient, error)

	// SubmitFinalConfiguration starts or revises the second negotiation
	// round over offer-letter and first-year pricing.
	SubmitFinalConfiguration(ctx context.Context, enrolledClientID string, req dto.FinalConfigurationRequest, adminUserID string) (*domain.EnrolledClient, error)

	// AdminApproveFinal approves the final configuration as-is.
	AdminApproveFinal(ctx context.Context, enrolledClientID string, adminUserID string) (*domain.EnrolledClient, error)

	// SalesApproveFinal gives the sales-side approval of the final round,
	// committing any pending final edits.
	SalesApproveFinal(ctx context.Context, enrolledClientID string, salesUserID string) (*domain.EnrolledClient, error)

	// UpdateOperationalStatus updates first-call status and the training flag.
	UpdateOperationalStatus(ctx context.Context, enrolledClientID string, req dto.OperationalStatusRequest, actorUserID string) (*domain.EnrolledClient, error)
}

// ResumeSvc defines resume upload/download operations
type ResumeSvc interface {
	// UploadResume stores the resume file for a client.
	UploadResume(ctx context.Context, enrolledClientID string, file domain.ResumeFile, actorUserID string) error

	// GetResume retrieves the resume file of a client.
	GetResume(ctx context.Context, enrolledClientID string) (*domain.ResumeFile, error)
}

// EnrollmentSvcFacade combines all enrollment-related service interfaces
type EnrollmentSvcFacade interface {
	EnrollmentReaderSvc
	EnrollmentWorkflowSvc
	ResumeSvc
}

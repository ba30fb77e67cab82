package repositories

import (
	"context"
	"time"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
)

// EnrollmentListFilter narrows an enrollment listing. Stage filters on the
// derived approval stage of the first (enrollment-charge) round; the
// reviewer IDs scope "my review" listings to the acting user.
type EnrollmentListFilter struct {
	Limit         int
	Offset        int
	Search        string
	Stage         *domain.ApprovalStage
	SalesPersonID *string
	AdminID       *string
}

// EnrollmentReader defines read operations for enrollment data
type EnrollmentReader interface {
	// FindEnrolledClientByID retrieves a specific enrolled client by its unique identifier.
	FindEnrolledClientByID(ctx context.Context, enrolledClientID string) (*domain.EnrolledClient, error)

	// FindEnrolledClientsByIDs retrieves multiple enrolled clients keyed by ID.
	FindEnrolledClientsByIDs(ctx context.Context, enrolledClientIDs []string) (map[string]domain.EnrolledClient, error)

	// ListEnrolledClients retrieves a filtered page of enrolled clients plus the total match count.
	ListEnrolledClients(ctx context.Context, filter EnrollmentListFilter) ([]domain.EnrolledClient, int, error)

	// FindLeadsByIDs retrieves the leads referenced by a listing page, keyed by lead ID.
	FindLeadsByIDs(ctx context.Context, leadIDs []string) (map[string]domain.Lead, error)
}

// EnrollmentWriter defines write operations for enrollment data
type EnrollmentWriter interface {
	// SaveConfiguration persists the client update and the full replacement
	// installment plans for the given charge types within a single DB
	// transaction. Nothing is persisted when any part fails.
	SaveConfiguration(ctx context.Context, client domain.EnrolledClient, plans map[domain.ChargeType][]domain.Installment) error

	// UpdateEnrolledClient updates the client row alone.
	UpdateEnrolledClient(ctx context.Context, client domain.EnrolledClient) error

	// UpdateClientWithInstallments updates the client row and the given
	// installment rows atomically. Used by approval transitions that flip
	// flags and mutate installments (initial-payment paid marking, committing
	// admin edits) as one unit.
	UpdateClientWithInstallments(ctx context.Context, client domain.EnrolledClient, installments []domain.Installment) error
}

// ResumeStore defines storage for uploaded client resumes.
type ResumeStore interface {
	// SaveResume stores (or replaces) the resume file of a client.
	SaveResume(ctx context.Context, enrolledClientID string, file domain.ResumeFile, userID string, now time.Time) error

	// FindResume retrieves the resume file of a client; ErrNotFound when none exists.
	FindResume(ctx context.Context, enrolledClientID string) (*domain.ResumeFile, error)
}

// MarketingLead is a marketing team lead together with the number of clients
// currently assigned to them, used to render the assignment dropdown.
type MarketingLead struct {
	User          domain.User
	AssignedCount int
}

// AssignmentWriter defines the bulk client-assignment operations.
type AssignmentWriter interface {
	// AssignClients assigns every listed client to the marketing lead in a
	// single DB transaction: either all assignments commit or none do.
	AssignClients(ctx context.Context, enrolledClientIDs []string, marketingLeadID string, remark string, actorUserID string, now time.Time) error

	// ListMarketingLeads returns the selectable marketing team leads.
	ListMarketingLeads(ctx context.Context) ([]MarketingLead, error)
}

// EnrollmentRepositoryFacade combines all enrollment-related repository interfaces
type EnrollmentRepositoryFacade interface {
	EnrollmentReader
	EnrollmentWriter
	ResumeStore
	AssignmentWriter
}

// EnrollmentRepositoryWithTx extends EnrollmentRepositoryFacade with transaction capabilities
type EnrollmentRepositoryWithTx interface {
	EnrollmentRepositoryFacade
	TransactionManager
}

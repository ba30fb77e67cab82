package domain

import (
	"github.com/shopspring/decimal"
)

// FirstCallStatus tracks the onboarding call made to a freshly enrolled client.
type FirstCallStatus string

const (
	FirstCallPending FirstCallStatus = "pending"
	FirstCallOnHold  FirstCallStatus = "onhold"
	FirstCallDone    FirstCallStatus = "done"
)

// ApprovalStage is the derived position of an enrollment in the two-party
// review cycle. The same cycle runs twice: once over the enrollment charge
// and once more ("final configuration") over offer-letter and first-year
// pricing.
type ApprovalStage string

const (
	StageUnconfigured       ApprovalStage = "UNCONFIGURED"
	StagePendingAdminReview ApprovalStage = "PENDING_ADMIN_REVIEW"
	StagePendingSalesReview ApprovalStage = "PENDING_SALES_REVIEW"
	StageFullyApproved      ApprovalStage = "FULLY_APPROVED"
)

// ChargeAmounts groups the three negotiable charge totals of an enrollment.
// FirstYearPercentage and FirstYearFixed are mutually exclusive: exactly one
// is non-nil whenever first-year pricing has been configured.
type ChargeAmounts struct {
	EnrollmentCharge    *decimal.Decimal `json:"enrollmentCharge"`
	OfferLetterCharge   *decimal.Decimal `json:"offerLetterCharge"`
	FirstYearPercentage *decimal.Decimal `json:"firstYearPercentage"`
	FirstYearFixed      *decimal.Decimal `json:"firstYearFixed"`
}

// FirstYearExclusive reports whether at most one first-year pricing mode is set.
func (c ChargeAmounts) FirstYearExclusive() bool {
	return c.FirstYearPercentage == nil || c.FirstYearFixed == nil
}

// IsEmpty reports whether no charge has been configured at all.
func (c ChargeAmounts) IsEmpty() bool {
	return c.EnrollmentCharge == nil && c.OfferLetterCharge == nil &&
		c.FirstYearPercentage == nil && c.FirstYearFixed == nil
}

// EnrolledClient represents one lead's enrollment contract.
type EnrolledClient struct {
	EnrolledClientID string  `json:"enrolledClientID"`
	LeadID           string  `json:"leadID"`
	PackageID        *string `json:"packageID"` // nil until a package is selected

	// Payable holds the currently agreed charges; Edited holds admin-proposed
	// overrides awaiting sales re-approval and is zeroed once committed.
	Payable ChargeAmounts `json:"payable"`
	Edited  ChargeAmounts `json:"edited"`

	ApprovalBySales bool `json:"approvalBySales"`
	ApprovalByAdmin bool `json:"approvalByAdmin"`
	HasUpdate       bool `json:"hasUpdate"` // admin edits pending sales re-approval

	FinalApprovalSales   bool `json:"finalApprovalSales"`
	FinalApprovalByAdmin bool `json:"finalApprovalByAdmin"`
	HasUpdateInFinal     bool `json:"hasUpdateInFinal"`

	IsTrainingRequired bool            `json:"isTrainingRequired"`
	FirstCallStatus    FirstCallStatus `json:"firstCallStatus"`
	ResumeFileName     *string         `json:"resumeFileName"` // nil when no resume uploaded

	AssignedSalesPersonID   *string `json:"assignedSalesPersonID"`
	AssignedAdminID         *string `json:"assignedAdminID"`
	AssignedMarketingLeadID *string `json:"assignedMarketingLeadID"`

	AuditFields
}

// Stage derives the enrollment-charge round position from the approval flags.
func (e *EnrolledClient) Stage() ApprovalStage {
	switch {
	case e.PackageID == nil:
		return StageUnconfigured
	case e.ApprovalBySales && e.ApprovalByAdmin && !e.HasUpdate:
		return StageFullyApproved
	case e.HasUpdate:
		return StagePendingSalesReview
	default:
		return StagePendingAdminReview
	}
}

// FinalStage derives the final-configuration round position. The final round
// only starts once the first round is fully approved.
func (e *EnrolledClient) FinalStage() ApprovalStage {
	if e.Stage() != StageFullyApproved {
		return StageUnconfigured
	}
	switch {
	case e.FinalApprovalSales && e.FinalApprovalByAdmin && !e.HasUpdateInFinal:
		return StageFullyApproved
	case e.HasUpdateInFinal:
		return StagePendingSalesReview
	default:
		return StagePendingAdminReview
	}
}

// Lead is the upstream sales lead an enrollment belongs to. Lead capture and
// conversion happen outside this subsystem; only the reference data needed by
// the enrollment listings is modelled here.
type Lead struct {
	LeadID string `json:"leadID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
	AuditFields
}

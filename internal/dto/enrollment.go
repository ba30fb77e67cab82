package dto

import (
	"time"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Listing tabs partition the role-scoped enrollment listings.
const (
	TabAllEnrollments     = "AllEnrollments"
	TabApproved           = "Approved"
	TabAdminReviewPending = "AdminReviewPending"
	TabSalesReviewPending = "SalesReviewPending"
	TabMyReview           = "MyReview"
)

// ValidTab reports whether tab is one of the known listing tabs.
func ValidTab(tab string) bool {
	switch tab {
	case TabAllEnrollments, TabApproved, TabAdminReviewPending, TabSalesReviewPending, TabMyReview:
		return true
	}
	return false
}

// ListEnrollmentsParams defines query parameters for enrollment listings.
type ListEnrollmentsParams struct {
	PageParams
	Tab    string `form:"tab,default=AllEnrollments"`
	Search string `form:"search"`
}

// SalesConfigurationRequest is the sales submission of an enrollment
// configuration: package selection, the agreed enrollment charge and the
// full installment partition. The whole payload is validated and persisted
// atomically; a reconciliation failure persists nothing.
type SalesConfigurationRequest struct {
	PackageID            string             `json:"packageid" binding:"required"`
	EnrollmentCharge     decimal.Decimal    `json:"payable_enrollment_charge" binding:"required"`
	InitialPayment       decimal.Decimal    `json:"initial_payment"`
	InitialPaymentRemark string             `json:"initial_payment_remark"`
	Installments         []InstallmentInput `json:"installments"`
}

// AdminInstallmentEdit pairs an existing installment with its proposed override.
type AdminInstallmentEdit struct {
	InstallmentID string           `json:"installment_id" binding:"required"`
	EditedAmount  *decimal.Decimal `json:"edited_amount"`
	EditedDueDate *time.Time       `json:"edited_dueDate"`
	EditedRemark  *string          `json:"edited_remark"`
}

// AdminReviewRequest is the admin's decision on a sales-submitted
// configuration: approve as-is, or return it with edited charge and
// installment overrides for sales to re-approve.
type AdminReviewRequest struct {
	Approve                bool                   `json:"approve"`
	EditedEnrollmentCharge *decimal.Decimal       `json:"edited_enrollment_charge"`
	EditedInstallments     []AdminInstallmentEdit `json:"edited_installments"`
}

// SalesApprovalRequest is the sales response to pending admin edits:
// approve them as-is, or resubmit a fresh configuration (handled by the
// sales configuration endpoint).
type SalesApprovalRequest struct {
	Approve bool `json:"approve"`
}

// ChargePlan couples a charge total with its installment partition, used by
// the final configuration round where two charge types are negotiated.
type ChargePlan struct {
	InitialPayment       decimal.Decimal    `json:"initial_payment"`
	InitialPaymentRemark string             `json:"initial_payment_remark"`
	Installments         []InstallmentInput `json:"installments"`
}

// FinalConfigurationRequest is the second negotiation round over the
// offer-letter charge and first-year pricing. Exactly one of the two
// first-year pricing modes must be set; a fixed first-year price carries its
// own installment plan, a percentage does not.
type FinalConfigurationRequest struct {
	OfferLetterCharge   decimal.Decimal  `json:"payable_offer_letter_charge" binding:"required"`
	FirstYearPercentage *decimal.Decimal `json:"payable_first_year_percentage"`
	FirstYearFixed      *decimal.Decimal `json:"payable_first_year_fixed_charge"`
	OfferLetterPlan     ChargePlan       `json:"offer_letter_plan"`
	FirstYearPlan       *ChargePlan      `json:"first_year_plan"`
}

// OperationalStatusRequest updates the non-pricing operational fields.
type OperationalStatusRequest struct {
	FirstCallStatus    *domain.FirstCallStatus `json:"first_call_status"`
	IsTrainingRequired *bool                   `json:"is_training_required"`
}

// EnrolledClientResponse mirrors the wire format the frontend consumes,
// including the lead it belongs to and the derived workflow stages.
type EnrolledClientResponse struct {
	EnrolledClientID string  `json:"id"`
	LeadID           string  `json:"lead_id"`
	PackageID        *string `json:"packageid"`

	PayableEnrollmentCharge    *decimal.Decimal `json:"payable_enrollment_charge"`
	PayableOfferLetterCharge   *decimal.Decimal `json:"payable_offer_letter_charge"`
	PayableFirstYearPercentage *decimal.Decimal `json:"payable_first_year_percentage"`
	PayableFirstYearFixed      *decimal.Decimal `json:"payable_first_year_fixed_charge"`

	EditedEnrollmentCharge    *decimal.Decimal `json:"edited_enrollment_charge"`
	EditedOfferLetterCharge   *decimal.Decimal `json:"edited_offer_letter_charge"`
	EditedFirstYearPercentage *decimal.Decimal `json:"edited_first_year_percentage"`
	EditedFirstYearFixed      *decimal.Decimal `json:"edited_first_year_fixed_charge"`

	ApprovalBySales      bool `json:"Approval_by_sales"`
	ApprovalByAdmin      bool `json:"Approval_by_admin"`
	HasUpdate            bool `json:"has_update"`
	FinalApprovalSales   bool `json:"final_approval_sales"`
	FinalApprovalByAdmin bool `json:"final_approval_by_admin"`
	HasUpdateInFinal     bool `json:"has_update_in_final"`

	Stage      string `json:"stage"`
	FinalStage string `json:"final_stage"`

	IsTrainingRequired bool    `json:"is_training_required"`
	FirstCallStatus    string  `json:"first_call_status"`
	ResumeFileName     *string `json:"resume"`

	AssignedSalesPersonID   *string `json:"sales_person_id"`
	AssignedAdminID         *string `json:"admin_id"`
	AssignedMarketingLeadID *string `json:"marketing_team_lead_id"`

	Lead *LeadResponse `json:"lead,omitempty"`
}

// LeadResponse is the embedded lead reference in enrollment listings.
type LeadResponse struct {
	LeadID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
}

// ListEnrollmentsResponse wraps a page of enrollment listings. The top-level
// key is "leads" for compatibility with the consuming frontend.
type ListEnrollmentsResponse struct {
	Leads      []EnrolledClientResponse `json:"leads"`
	Pagination Pagination               `json:"pagination"`
}

// ToEnrolledClientResponse converts a domain.EnrolledClient (optionally with
// its lead) to the wire format.
func ToEnrolledClientResponse(e *domain.EnrolledClient, lead *domain.Lead) EnrolledClientResponse {
	resp := EnrolledClientResponse{
		EnrolledClientID:           e.EnrolledClientID,
		LeadID:                     e.LeadID,
		PackageID:                  e.PackageID,
		PayableEnrollmentCharge:    e.Payable.EnrollmentCharge,
		PayableOfferLetterCharge:   e.Payable.OfferLetterCharge,
		PayableFirstYearPercentage: e.Payable.FirstYearPercentage,
		PayableFirstYearFixed:      e.Payable.FirstYearFixed,
		EditedEnrollmentCharge:     e.Edited.EnrollmentCharge,
		EditedOfferLetterCharge:    e.Edited.OfferLetterCharge,
		EditedFirstYearPercentage:  e.Edited.FirstYearPercentage,
		EditedFirstYearFixed:       e.Edited.FirstYearFixed,
		ApprovalBySales:            e.ApprovalBySales,
		ApprovalByAdmin:            e.ApprovalByAdmin,
		HasUpdate:                  e.HasUpdate,
		FinalApprovalSales:         e.FinalApprovalSales,
		FinalApprovalByAdmin:       e.FinalApprovalByAdmin,
		HasUpdateInFinal:           e.HasUpdateInFinal,
		Stage:                      string(e.Stage()),
		FinalStage:                 string(e.FinalStage()),
		IsTrainingRequired:         e.IsTrainingRequired,
		FirstCallStatus:            string(e.FirstCallStatus),
		ResumeFileName:             e.ResumeFileName,
		AssignedSalesPersonID:      e.AssignedSalesPersonID,
		AssignedAdminID:            e.AssignedAdminID,
		AssignedMarketingLeadID:    e.AssignedMarketingLeadID,
	}
	if lead != nil {
		resp.Lead = &LeadResponse{
			LeadID: lead.LeadID,
			Name:   lead.Name,
			Email:  lead.Email,
			Phone:  lead.Phone,
			Source: lead.Source,
		}
	}
	return resp
}

package models

import (
	"github.com/shopspring/decimal"
)

// EnrolledClient is the database representation of an enrollment contract.
// The payable_* columns hold the agreed charges; the edited_* columns hold
// admin-proposed overrides awaiting sales re-approval.
type EnrolledClient struct {
	EnrolledClientID string  `json:"enrolledClientID"` // Primary Key (UUID)
	LeadID           string  `json:"leadID"`
	PackageID        *string `json:"packageID"`

	PayableEnrollmentCharge    *decimal.Decimal `json:"payableEnrollmentCharge"`
	PayableOfferLetterCharge   *decimal.Decimal `json:"payableOfferLetterCharge"`
	PayableFirstYearPercentage *decimal.Decimal `json:"payableFirstYearPercentage"`
	PayableFirstYearFixed      *decimal.Decimal `json:"payableFirstYearFixed"`

	EditedEnrollmentCharge    *decimal.Decimal `json:"editedEnrollmentCharge"`
	EditedOfferLetterCharge   *decimal.Decimal `json:"editedOfferLetterCharge"`
	EditedFirstYearPercentage *decimal.Decimal `json:"editedFirstYearPercentage"`
	EditedFirstYearFixed      *decimal.Decimal `json:"editedFirstYearFixed"`

	ApprovalBySales bool `json:"approvalBySales"`
	ApprovalByAdmin bool `json:"approvalByAdmin"`
	HasUpdate       bool `json:"hasUpdate"`

	FinalApprovalSales   bool `json:"finalApprovalSales"`
	FinalApprovalByAdmin bool `json:"finalApprovalByAdmin"`
	HasUpdateInFinal     bool `json:"hasUpdateInFinal"`

	IsTrainingRequired bool    `json:"isTrainingRequired"`
	FirstCallStatus    string  `json:"firstCallStatus"`
	ResumeFileName     *string `json:"resumeFileName"`

	AssignedSalesPersonID   *string `json:"assignedSalesPersonID"`
	AssignedAdminID         *string `json:"assignedAdminID"`
	AssignedMarketingLeadID *string `json:"assignedMarketingLeadID"`

	AuditFields
}

// Lead is the database representation of the upstream sales lead.
type Lead struct {
	LeadID string `json:"leadID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
	AuditFields
}

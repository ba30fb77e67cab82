package dto

import (
	"time"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InstallmentInput is one installment row within a submitted plan.
type InstallmentInput struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	DueDate *time.Time      `json:"dueDate"`
	Remark  string          `json:"remark"`
}

// ReplaceInstallmentPlanRequest replaces the full installment plan for one
// charge type of an enrolled client. The whole set is validated against the
// payable charge and persisted atomically; there is no row-by-row submit.
type ReplaceInstallmentPlanRequest struct {
	ChargeType           domain.ChargeType  `json:"charge_type" binding:"required"`
	InitialPayment       decimal.Decimal    `json:"initial_payment"`
	InitialPaymentRemark string             `json:"initial_payment_remark"`
	Installments         []InstallmentInput `json:"installments"`
}

// AdminInstallmentEditRequest carries an admin's proposed override of a
// single installment, stored in the edited_* shadow fields until sales
// approves it.
type AdminInstallmentEditRequest struct {
	EditedAmount  *decimal.Decimal `json:"edited_amount"`
	EditedDueDate *time.Time       `json:"edited_dueDate"`
	EditedRemark  *string          `json:"edited_remark"`
}

// PaymentStatusRequest flips the paid flag of an installment.
type PaymentStatusRequest struct {
	Paid bool `json:"paid"`
}

// PaymentControlRequest adjusts the net amount collected for an installment.
type PaymentControlRequest struct {
	NetAmount decimal.Decimal `json:"net_amount" binding:"required"`
}

// InstallmentResponse mirrors the wire format the frontend consumes.
type InstallmentResponse struct {
	InstallmentID     string           `json:"id"`
	EnrolledClientID  string           `json:"enrolledClientId"`
	ChargeType        string           `json:"charge_type"`
	InstallmentNumber int              `json:"installment_number"`
	Amount            decimal.Decimal  `json:"amount"`
	NetAmount         decimal.Decimal  `json:"net_amount"`
	DueDate           *time.Time       `json:"dueDate"`
	Remark            string           `json:"remark"`
	IsInitialPayment  bool             `json:"is_initial_payment"`
	Paid              bool             `json:"paid"`
	PaidDate          *time.Time       `json:"paidDate"`
	EditedAmount      *decimal.Decimal `json:"edited_amount"`
	EditedDueDate     *time.Time       `json:"edited_dueDate"`
	EditedRemark      *string          `json:"edited_remark"`
	AdminID           *string          `json:"admin_id"`
	SalesApproval     bool             `json:"sales_approval"`
}

// ToInstallmentResponse converts a domain.Installment to its wire format.
func ToInstallmentResponse(i *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:     i.InstallmentID,
		EnrolledClientID:  i.EnrolledClientID,
		ChargeType:        string(i.ChargeType),
		InstallmentNumber: i.InstallmentNumber,
		Amount:            i.Amount,
		NetAmount:         i.NetAmount,
		DueDate:           i.DueDate,
		Remark:            i.Remark,
		IsInitialPayment:  i.IsInitialPayment,
		Paid:              i.Paid,
		PaidDate:          i.PaidDate,
		EditedAmount:      i.EditedAmount,
		EditedDueDate:     i.EditedDueDate,
		EditedRemark:      i.EditedRemark,
		AdminID:           i.AdminID,
		SalesApproval:     i.SalesApproval,
	}
}

// ToInstallmentResponses converts a slice of domain installments.
func ToInstallmentResponses(installments []domain.Installment) []InstallmentResponse {
	responses := make([]InstallmentResponse, len(installments))
	for i := range installments {
		responses[i] = ToInstallmentResponse(&installments[i])
	}
	return responses
}

// ListPaymentsParams defines query parameters for the paid-installments feed.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse wraps the cursor-paginated payments feed.
type ListPaymentsResponse struct {
	Payments  []InstallmentResponse `json:"payments"`
	NextToken *string               `json:"nextToken,omitempty"`
}

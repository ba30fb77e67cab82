package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeType names the charge an installment plan reconciles against. Each
// charge type has its own independent installment set per client.
type ChargeType string

const (
	ChargeEnrollment  ChargeType = "enrollment_charge"
	ChargeOfferLetter ChargeType = "offer_letter_charge"
	ChargeFirstYear   ChargeType = "first_year_charge"
)

// ValidChargeType reports whether ct is one of the known charge types.
func ValidChargeType(ct ChargeType) bool {
	switch ct {
	case ChargeEnrollment, ChargeOfferLetter, ChargeFirstYear:
		return true
	}
	return false
}

// Installment is one scheduled payment against a named charge type.
// InstallmentNumber 0 is the initial payment, due at enrollment time; it is
// marked paid when the admin approves the configuration.
type Installment struct {
	InstallmentID     string          `json:"installmentID"`
	EnrolledClientID  string          `json:"enrolledClientID"`
	ChargeType        ChargeType      `json:"chargeType"`
	InstallmentNumber int             `json:"installmentNumber"`
	Amount            decimal.Decimal `json:"amount"`
	NetAmount         decimal.Decimal `json:"netAmount"` // post-adjustment amount used for collection
	DueDate           *time.Time      `json:"dueDate"`
	Remark            string          `json:"remark"`
	IsInitialPayment  bool            `json:"isInitialPayment"`

	Paid     bool       `json:"paid"`
	PaidDate *time.Time `json:"paidDate"`

	// Admin-edit shadow fields, mirroring the client-level edited_* pattern.
	EditedAmount  *decimal.Decimal `json:"editedAmount"`
	EditedDueDate *time.Time       `json:"editedDueDate"`
	EditedRemark  *string          `json:"editedRemark"`
	AdminID       *string          `json:"adminID"`
	SalesApproval bool             `json:"salesApproval"`

	AuditFields
}

// HasPendingEdit reports whether an admin edit is awaiting sales approval.
func (i *Installment) HasPendingEdit() bool {
	return i.EditedAmount != nil || i.EditedDueDate != nil || i.EditedRemark != nil
}

// CommitEdits copies the shadow fields into the canonical ones and clears
// them. No-op when there is nothing pending.
func (i *Installment) CommitEdits() {
	if i.EditedAmount != nil {
		i.Amount = *i.EditedAmount
		i.NetAmount = *i.EditedAmount
	}
	if i.EditedDueDate != nil {
		i.DueDate = i.EditedDueDate
	}
	if i.EditedRemark != nil {
		i.Remark = *i.EditedRemark
	}
	i.EditedAmount = nil
	i.EditedDueDate = nil
	i.EditedRemark = nil
	i.SalesApproval = true
}

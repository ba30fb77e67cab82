package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is the database representation of one scheduled payment
// against a charge type of an enrolled client.
type Installment struct {
	InstallmentID     string          `json:"installmentID"` // Primary Key (UUID)
	EnrolledClientID  string          `json:"enrolledClientID"`
	ChargeType        string          `json:"chargeType"`
	InstallmentNumber int             `json:"installmentNumber"`
	Amount            decimal.Decimal `json:"amount"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	DueDate           *time.Time      `json:"dueDate"`
	Remark            string          `json:"remark"`
	IsInitialPayment  bool            `json:"isInitialPayment"`

	Paid     bool       `json:"paid"`
	PaidDate *time.Time `json:"paidDate"`

	EditedAmount  *decimal.Decimal `json:"editedAmount"`
	EditedDueDate *time.Time       `json:"editedDueDate"`
	EditedRemark  *string          `json:"editedRemark"`
	AdminID       *string          `json:"adminID"`
	SalesApproval bool             `json:"salesApproval"`

	AuditFields
}

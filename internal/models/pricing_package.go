package models

import "github.com/shopspring/decimal"

// PricingPackage is the database representation of a pricing template.
// Features are stored as a text[] column.
type PricingPackage struct {
	PackageID                 string           `json:"packageID"` // Primary Key (UUID)
	PlanName                  string           `json:"planName"`
	EnrollmentCharge          decimal.Decimal  `json:"enrollmentCharge"`
	OfferLetterCharge         decimal.Decimal  `json:"offerLetterCharge"`
	FirstYearSalaryPercentage *decimal.Decimal `json:"firstYearSalaryPercentage"`
	FirstYearFixedPrice       *decimal.Decimal `json:"firstYearFixedPrice"`
	Features                  []string         `json:"features"`
	Status                    string           `json:"status"`
	AuditFields
}

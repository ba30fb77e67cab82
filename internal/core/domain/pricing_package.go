package domain

import "github.com/shopspring/decimal"

// PackageStatus marks whether a package can still be selected for new enrollments.
type PackageStatus string

const (
	PackageActive   PackageStatus = "active"
	PackageInactive PackageStatus = "inactive"
)

// PricingPackage is a pricing template. Selecting one copies its charges into
// the enrollment's payable fields as defaults; the template itself is
// immutable from the enrollment's perspective after selection.
type PricingPackage struct {
	PackageID                 string           `json:"packageID"`
	PlanName                  string           `json:"planName"`
	EnrollmentCharge          decimal.Decimal  `json:"enrollmentCharge"`
	OfferLetterCharge         decimal.Decimal  `json:"offerLetterCharge"`
	FirstYearSalaryPercentage *decimal.Decimal `json:"firstYearSalaryPercentage"`
	FirstYearFixedPrice       *decimal.Decimal `json:"firstYearFixedPrice"`
	Features                  []string         `json:"features"`
	Status                    PackageStatus    `json:"status"`
	AuditFields
}

// DefaultCharges builds the payable defaults an enrollment inherits when this
// package is selected.
func (p *PricingPackage) DefaultCharges() ChargeAmounts {
	enrollment := p.EnrollmentCharge
	offerLetter := p.OfferLetterCharge
	return ChargeAmounts{
		EnrollmentCharge:    &enrollment,
		OfferLetterCharge:   &offerLetter,
		FirstYearPercentage: p.FirstYearSalaryPercentage,
		FirstYearFixed:      p.FirstYearFixedPrice,
	}
}

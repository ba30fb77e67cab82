package dto

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePackageRequest defines the data required to create a pricing package.
// Exactly one of the two first-year pricing modes must be provided.
type CreatePackageRequest struct {
	PlanName                  string           `json:"planName" binding:"required"`
	EnrollmentCharge          decimal.Decimal  `json:"enrollmentCharge" binding:"required"`
	OfferLetterCharge         decimal.Decimal  `json:"offerLetterCharge" binding:"required"`
	FirstYearSalaryPercentage *decimal.Decimal `json:"firstYearSalaryPercentage"`
	FirstYearFixedPrice       *decimal.Decimal `json:"firstYearFixedPrice"`
	Features                  []string         `json:"features"`
}

// UpdatePackageRequest defines the fields updatable on a pricing package.
// Pointers differentiate omitted fields from zero values.
type UpdatePackageRequest struct {
	PlanName                  *string               `json:"planName"`
	EnrollmentCharge          *decimal.Decimal      `json:"enrollmentCharge"`
	OfferLetterCharge         *decimal.Decimal      `json:"offerLetterCharge"`
	FirstYearSalaryPercentage *decimal.Decimal      `json:"firstYearSalaryPercentage"`
	FirstYearFixedPrice       *decimal.Decimal      `json:"firstYearFixedPrice"`
	Features                  []string              `json:"features"`
	Status                    *domain.PackageStatus `json:"status"`
}

// PackageResponse is the wire format for a pricing package.
type PackageResponse struct {
	PackageID                 string           `json:"id"`
	PlanName                  string           `json:"planName"`
	EnrollmentCharge          decimal.Decimal  `json:"enrollmentCharge"`
	OfferLetterCharge         decimal.Decimal  `json:"offerLetterCharge"`
	FirstYearSalaryPercentage *decimal.Decimal `json:"firstYearSalaryPercentage"`
	FirstYearFixedPrice       *decimal.Decimal `json:"firstYearFixedPrice"`
	Features                  []string         `json:"features"`
	Status                    string           `json:"status"`
}

// ListPackagesResponse wraps the package listing.
type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

// ToPackageResponse converts a domain.PricingPackage to its wire format.
func ToPackageResponse(p *domain.PricingPackage) PackageResponse {
	return PackageResponse{
		PackageID:                 p.PackageID,
		PlanName:                  p.PlanName,
		EnrollmentCharge:          p.EnrollmentCharge,
		OfferLetterCharge:         p.OfferLetterCharge,
		FirstYearSalaryPercentage: p.FirstYearSalaryPercentage,
		FirstYearFixedPrice:       p.FirstYearFixedPrice,
		Features:                  p.Features,
		Status:                    string(p.Status),
	}
}

// ToListPackagesResponse converts a slice of domain packages.
func ToListPackagesResponse(packages []domain.PricingPackage) ListPackagesResponse {
	responses := make([]PackageResponse, len(packages))
	for i := range packages {
		responses[i] = ToPackageResponse(&packages[i])
	}
	return ListPackagesResponse{Packages: responses}
}

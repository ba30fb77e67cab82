package mapping

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/models"
)

// ToModelPricingPackage converts a domain PricingPackage to a model PricingPackage
func ToModelPricingPackage(d domain.PricingPackage) models.PricingPackage {
	return models.PricingPackage{
		PackageID:                 d.PackageID,
		PlanName:                  d.PlanName,
		EnrollmentCharge:          d.EnrollmentCharge,
		OfferLetterCharge:         d.OfferLetterCharge,
		FirstYearSalaryPercentage: d.FirstYearSalaryPercentage,
		FirstYearFixedPrice:       d.FirstYearFixedPrice,
		Features:                  d.Features,
		Status:                    string(d.Status),
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPricingPackage converts a model PricingPackage to a domain PricingPackage
func ToDomainPricingPackage(m models.PricingPackage) domain.PricingPackage {
	return domain.PricingPackage{
		PackageID:                 m.PackageID,
		PlanName:                  m.PlanName,
		EnrollmentCharge:          m.EnrollmentCharge,
		OfferLetterCharge:         m.OfferLetterCharge,
		FirstYearSalaryPercentage: m.FirstYearSalaryPercentage,
		FirstYearFixedPrice:       m.FirstYearFixedPrice,
		Features:                  m.Features,
		Status:                    domain.PackageStatus(m.Status),
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

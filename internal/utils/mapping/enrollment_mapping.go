package mapping

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/models"
)

// ToModelEnrolledClient converts a domain EnrolledClient to a model EnrolledClient
func ToModelEnrolledClient(d domain.EnrolledClient) models.EnrolledClient {
	return models.EnrolledClient{
		EnrolledClientID:           d.EnrolledClientID,
		LeadID:                     d.LeadID,
		PackageID:                  d.PackageID,
		PayableEnrollmentCharge:    d.Payable.EnrollmentCharge,
		PayableOfferLetterCharge:   d.Payable.OfferLetterCharge,
		PayableFirstYearPercentage: d.Payable.FirstYearPercentage,
		PayableFirstYearFixed:      d.Payable.FirstYearFixed,
		EditedEnrollmentCharge:     d.Edited.EnrollmentCharge,
		EditedOfferLetterCharge:    d.Edited.OfferLetterCharge,
		EditedFirstYearPercentage:  d.Edited.FirstYearPercentage,
		EditedFirstYearFixed:       d.Edited.FirstYearFixed,
		ApprovalBySales:            d.ApprovalBySales,
		ApprovalByAdmin:            d.ApprovalByAdmin,
		HasUpdate:                  d.HasUpdate,
		FinalApprovalSales:         d.FinalApprovalSales,
		FinalApprovalByAdmin:       d.FinalApprovalByAdmin,
		HasUpdateInFinal:           d.HasUpdateInFinal,
		IsTrainingRequired:         d.IsTrainingRequired,
		FirstCallStatus:            string(d.FirstCallStatus),
		ResumeFileName:             d.ResumeFileName,
		AssignedSalesPersonID:      d.AssignedSalesPersonID,
		AssignedAdminID:            d.AssignedAdminID,
		AssignedMarketingLeadID:    d.AssignedMarketingLeadID,
		AuditFields:                ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnrolledClient converts a model EnrolledClient to a domain EnrolledClient
func ToDomainEnrolledClient(m models.EnrolledClient) domain.EnrolledClient {
	return domain.EnrolledClient{
		EnrolledClientID: m.EnrolledClientID,
		LeadID:           m.LeadID,
		PackageID:        m.PackageID,
		Payable: domain.ChargeAmounts{
			EnrollmentCharge:    m.PayableEnrollmentCharge,
			OfferLetterCharge:   m.PayableOfferLetterCharge,
			FirstYearPercentage: m.PayableFirstYearPercentage,
			FirstYearFixed:      m.PayableFirstYearFixed,
		},
		Edited: domain.ChargeAmounts{
			EnrollmentCharge:    m.EditedEnrollmentCharge,
			OfferLetterCharge:   m.EditedOfferLetterCharge,
			FirstYearPercentage: m.EditedFirstYearPercentage,
			FirstYearFixed:      m.EditedFirstYearFixed,
		},
		ApprovalBySales:         m.ApprovalBySales,
		ApprovalByAdmin:         m.ApprovalByAdmin,
		HasUpdate:               m.HasUpdate,
		FinalApprovalSales:      m.FinalApprovalSales,
		FinalApprovalByAdmin:    m.FinalApprovalByAdmin,
		HasUpdateInFinal:        m.HasUpdateInFinal,
		IsTrainingRequired:      m.IsTrainingRequired,
		FirstCallStatus:         domain.FirstCallStatus(m.FirstCallStatus),
		ResumeFileName:          m.ResumeFileName,
		AssignedSalesPersonID:   m.AssignedSalesPersonID,
		AssignedAdminID:         m.AssignedAdminID,
		AssignedMarketingLeadID: m.AssignedMarketingLeadID,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLead converts a model Lead to a domain Lead
func ToDomainLead(m models.Lead) domain.Lead {
	return domain.Lead{
		LeadID:      m.LeadID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Source:      m.Source,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

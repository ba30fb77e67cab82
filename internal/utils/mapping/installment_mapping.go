package mapping

import (
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/models"
)

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:     d.InstallmentID,
		EnrolledClientID:  d.EnrolledClientID,
		ChargeType:        string(d.ChargeType),
		InstallmentNumber: d.InstallmentNumber,
		Amount:            d.Amount,
		NetAmount:         d.NetAmount,
		DueDate:           d.DueDate,
		Remark:            d.Remark,
		IsInitialPayment:  d.IsInitialPayment,
		Paid:              d.Paid,
		PaidDate:          d.PaidDate,
		EditedAmount:      d.EditedAmount,
		EditedDueDate:     d.EditedDueDate,
		EditedRemark:      d.EditedRemark,
		AdminID:           d.AdminID,
		SalesApproval:     d.SalesApproval,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:     m.InstallmentID,
		EnrolledClientID:  m.EnrolledClientID,
		ChargeType:        domain.ChargeType(m.ChargeType),
		InstallmentNumber: m.InstallmentNumber,
		Amount:            m.Amount,
		NetAmount:         m.NetAmount,
		DueDate:           m.DueDate,
		Remark:            m.Remark,
		IsInitialPayment:  m.IsInitialPayment,
		Paid:              m.Paid,
		PaidDate:          m.PaidDate,
		EditedAmount:      m.EditedAmount,
		EditedDueDate:     m.EditedDueDate,
		EditedRemark:      m.EditedRemark,
		AdminID:           m.AdminID,
		SalesApproval:     m.SalesApproval,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model Installments to domain Installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}

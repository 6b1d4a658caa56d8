package mapping

import (
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/models"
)

// ToModelDebt converts a domain Debt to a model Debt
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:          d.DebtID,
		UserID:          d.UserID,
		PartnerName:     d.PartnerName,
		Kind:            models.DebtKind(d.Kind),
		TotalAmount:     d.TotalAmount,
		RemainingAmount: d.RemainingAmount,
		Status:          models.DebtStatus(d.Status),
		IsInstallment:   d.IsInstallment,
		StartDate:       d.StartDate,
		TotalMonths:     d.TotalMonths,
		MonthlyPayment:  d.MonthlyPayment,
		PaymentDay:      d.PaymentDay,
		PaidMonths:      d.PaidMonths,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model Debt to a domain Debt
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:          m.DebtID,
		UserID:          m.UserID,
		PartnerName:     m.PartnerName,
		Kind:            domain.DebtKind(m.Kind),
		TotalAmount:     m.TotalAmount,
		RemainingAmount: m.RemainingAmount,
		Status:          domain.DebtStatus(m.Status),
		IsInstallment:   m.IsInstallment,
		StartDate:       m.StartDate,
		TotalMonths:     m.TotalMonths,
		MonthlyPayment:  m.MonthlyPayment,
		PaymentDay:      m.PaymentDay,
		PaidMonths:      m.PaidMonths,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of model Debts to a slice of domain Debts
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:     d.InstallmentID,
		DebtID:            d.DebtID,
		DueDate:           d.DueDate,
		Amount:            d.Amount,
		Status:            models.InstallmentStatus(d.Status),
		PaidAt:            d.PaidAt,
		SettlingAccountID: d.SettlingAccountID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:     m.InstallmentID,
		DebtID:            m.DebtID,
		DueDate:           m.DueDate,
		Amount:            m.Amount,
		Status:            domain.InstallmentStatus(m.Status),
		PaidAt:            m.PaidAt,
		SettlingAccountID: m.SettlingAccountID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model Installments to a slice of domain Installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}

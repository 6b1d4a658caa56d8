package mapping

import (
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		UserID:             d.UserID,
		Name:               d.Name,
		Kind:               models.AccountKind(d.Kind),
		Balance:            d.Balance,
		InitialBalance:     d.InitialBalance,
		CurrencyCode:       d.CurrencyCode,
		Status:             models.AccountStatus(d.Status),
		CreditLimit:        d.CreditLimit,
		StatementDay:       d.StatementDay,
		PaymentDueDay:      d.PaymentDueDay,
		OutstandingBalance: d.OutstandingBalance,
		InterestRate:       d.InterestRate,
		AnnualFee:          d.AnnualFee,
		SettlementFeeRate:  d.SettlementFeeRate,
		LinkedAccountID:    d.LinkedAccountID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		UserID:             m.UserID,
		Name:               m.Name,
		Kind:               domain.AccountKind(m.Kind),
		Balance:            m.Balance,
		InitialBalance:     m.InitialBalance,
		CurrencyCode:       m.CurrencyCode,
		Status:             domain.AccountStatus(m.Status),
		CreditLimit:        m.CreditLimit,
		StatementDay:       m.StatementDay,
		PaymentDueDay:      m.PaymentDueDay,
		OutstandingBalance: m.OutstandingBalance,
		InterestRate:       m.InterestRate,
		AnnualFee:          m.AnnualFee,
		SettlementFeeRate:  m.SettlementFeeRate,
		LinkedAccountID:    m.LinkedAccountID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/core/services"
)

func installmentDebt(total string, months int, monthly string, start time.Time, paymentDay int) domain.Debt {
	return domain.Debt{
		DebtID:          "debt-1",
		UserID:          "user-1",
		PartnerName:     "Bank",
		Kind:            domain.DebtLoan,
		TotalAmount:     decimal.RequireFromString(total),
		RemainingAmount: decimal.RequireFromString(total),
		Status:          domain.DebtOngoing,
		IsInstallment:   true,
		StartDate:       &start,
		TotalMonths:     months,
		MonthlyPayment:  decimal.RequireFromString(monthly),
		PaymentDay:      paymentDay,
	}
}

func TestGenerateSchedule_MidwayDebt(t *testing.T) {
	// A 12-month debt started in January, registered in late April: four
	// periods have elapsed, the May period is the pending one.
	now := date(2024, time.April, 20)
	debt := installmentDebt("1200000", 12, "100000", date(2024, time.January, 15), 15)

	installments := services.GenerateSchedule(&debt, now, "user-1", now)

	require.Len(t, installments, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, domain.InstallmentPaid, installments[i].Status)
		require.NotNil(t, installments[i].PaidAt)
		assert.Equal(t, installments[i].DueDate, *installments[i].PaidAt)
	}
	assert.Equal(t, date(2024, time.January, 15), installments[0].DueDate)
	assert.Equal(t, date(2024, time.April, 15), installments[3].DueDate)

	pending := installments[4]
	assert.Equal(t, domain.InstallmentPending, pending.Status)
	assert.Equal(t, date(2024, time.May, 15), pending.DueDate)
	assert.True(t, pending.Amount.Equal(decimal.RequireFromString("100000")))

	assert.Equal(t, 4, debt.PaidMonths)
	assert.True(t, debt.RemainingAmount.Equal(decimal.RequireFromString("800000")))
	assert.Equal(t, domain.DebtOngoing, debt.Status)
}

func TestGenerateSchedule_FreshDebt(t *testing.T) {
	// Registered before the first due date: a single pending installment.
	now := date(2024, time.March, 1)
	debt := installmentDebt("600000", 6, "100000", date(2024, time.March, 10), 10)

	installments := services.GenerateSchedule(&debt, now, "user-1", now)

	require.Len(t, installments, 1)
	assert.Equal(t, domain.InstallmentPending, installments[0].Status)
	assert.Equal(t, date(2024, time.March, 10), installments[0].DueDate)
	assert.Equal(t, 0, debt.PaidMonths)
	assert.True(t, debt.RemainingAmount.Equal(debt.TotalAmount))
	assert.Equal(t, domain.DebtOngoing, debt.Status)
}

func TestGenerateSchedule_StartDateToday(t *testing.T) {
	// Registered on the first due date itself: that period is still owed, not
	// silently counted as paid.
	now := date(2024, time.March, 10)
	debt := installmentDebt("600000", 6, "100000", date(2024, time.March, 10), 10)

	installments := services.GenerateSchedule(&debt, now, "user-1", now)

	require.Len(t, installments, 1)
	assert.Equal(t, domain.InstallmentPending, installments[0].Status)
	assert.Nil(t, installments[0].PaidAt)
	assert.Equal(t, date(2024, time.March, 10), installments[0].DueDate)
	assert.Equal(t, 0, debt.PaidMonths)
	assert.True(t, debt.RemainingAmount.Equal(debt.TotalAmount))
	assert.Equal(t, domain.DebtOngoing, debt.Status)
}

func TestGenerateSchedule_FullyElapsedDebt(t *testing.T) {
	// Registered after the final period: every installment PAID, debt
	// COMPLETED, nothing pending.
	now := date(2025, time.January, 1)
	debt := installmentDebt("300000", 3, "100000", date(2024, time.January, 5), 5)

	installments := services.GenerateSchedule(&debt, now, "user-1", now)

	require.Len(t, installments, 3)
	for _, in := range installments {
		assert.Equal(t, domain.InstallmentPaid, in.Status)
	}
	assert.Equal(t, 3, debt.PaidMonths)
	assert.True(t, debt.RemainingAmount.IsZero())
	assert.Equal(t, domain.DebtCompleted, debt.Status)
}

func TestGenerateSchedule_ClampsShortMonths(t *testing.T) {
	// Payment day 31 starting in January: February's due date clamps to the
	// end of the month.
	now := date(2024, time.January, 1)
	debt := installmentDebt("500000", 5, "100000", date(2024, time.January, 31), 31)

	installments := services.GenerateSchedule(&debt, now, "user-1", now)

	require.Len(t, installments, 1)
	assert.Equal(t, date(2024, time.January, 31), installments[0].DueDate)

	// Advance past January; February clamps to the 29th in a leap year.
	debt2 := installmentDebt("500000", 5, "100000", date(2024, time.January, 31), 31)
	later := date(2024, time.February, 1)
	installments2 := services.GenerateSchedule(&debt2, later, "user-1", later)

	require.Len(t, installments2, 2)
	assert.Equal(t, domain.InstallmentPaid, installments2[0].Status)
	assert.Equal(t, date(2024, time.February, 29), installments2[1].DueDate)
	assert.Equal(t, domain.InstallmentPending, installments2[1].Status)
}

func TestGenerateSchedule_RemainingNeverNegative(t *testing.T) {
	// Monthly payments overshooting the total clamp the remainder at zero.
	now := date(2024, time.June, 1)
	debt := installmentDebt("250000", 3, "100000", date(2024, time.January, 10), 10)

	services.GenerateSchedule(&debt, now, "user-1", now)

	assert.True(t, debt.RemainingAmount.IsZero())
	assert.Equal(t, domain.DebtCompleted, debt.Status)
}

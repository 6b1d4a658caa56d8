package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// GenerateSchedule materializes the installment history of a debt as of a
// given date. Periods whose due date is strictly before asOf are created PAID
// and counted into the debt's progress; the first period due on or after asOf
// is the single PENDING installment. A debt created after its final period has
// elapsed comes out COMPLETED with no pending installment.
//
// The debt passed in must carry StartDate, TotalMonths, MonthlyPayment and
// PaymentDay; its RemainingAmount, PaidMonths and Status are overwritten.
func GenerateSchedule(debt *domain.Debt, asOf time.Time, userID string, now time.Time) []domain.Installment {
	day := debt.PaymentDay
	if day == 0 && debt.StartDate != nil {
		day = debt.StartDate.Day()
	}

	asOfDay := truncateToDay(asOf)
	installments := make([]domain.Installment, 0, debt.TotalMonths)
	paid := 0

	for i := 0; i < debt.TotalMonths; i++ {
		dueDate := monthsAfter(*debt.StartDate, i, day)

		in := domain.Installment{
			InstallmentID: uuid.NewString(),
			DebtID:        debt.DebtID,
			DueDate:       dueDate,
			Amount:        debt.MonthlyPayment,
			Status:        domain.InstallmentPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		if dueDate.Before(asOfDay) {
			paidAt := dueDate
			in.Status = domain.InstallmentPaid
			in.PaidAt = &paidAt
			paid++
			installments = append(installments, in)
			continue
		}

		// First future period becomes the pending one; nothing past it is
		// materialized yet.
		installments = append(installments, in)
		break
	}

	debt.PaidMonths = paid
	debt.RemainingAmount = debt.TotalAmount.Sub(debt.MonthlyPayment.Mul(decimal.NewFromInt(int64(paid))))
	if debt.RemainingAmount.IsNegative() {
		debt.RemainingAmount = decimal.Zero
	}

	if paid >= debt.TotalMonths || debt.RemainingAmount.IsZero() {
		debt.Status = domain.DebtCompleted
	} else {
		debt.Status = domain.DebtOngoing
	}

	return installments
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/core/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/platform/clock"
)

type DebtServiceTestSuite struct {
	suite.Suite
	mockDebtRepo    *MockDebtRepository
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.DebtSvcFacade
	userID          string
	payingAccount   domain.Account
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	// Pinned to 2024-05-20 so schedule history is deterministic.
	suite.service = services.NewDebtService(suite.mockDebtRepo, suite.mockEntryRepo, suite.mockAccountRepo, clock.FixedAt(2024, time.May, 20))

	suite.userID = uuid.NewString()
	suite.payingAccount = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Checking",
		Kind:         domain.AccountBank,
		CurrencyCode: "VND",
		Status:       domain.AccountActive,
	}
}

// ongoingInstallmentDebt is a 12-month loan started 2024-01-15 with four
// periods already paid.
func (suite *DebtServiceTestSuite) ongoingInstallmentDebt(kind domain.DebtKind) *domain.Debt {
	start := date(2024, time.January, 15)
	return &domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		PartnerName:     "Bank",
		Kind:            kind,
		TotalAmount:     decimal.RequireFromString("1200000"),
		RemainingAmount: decimal.RequireFromString("800000"),
		Status:          domain.DebtOngoing,
		IsInstallment:   true,
		StartDate:       &start,
		TotalMonths:     12,
		MonthlyPayment:  decimal.RequireFromString("100000"),
		PaymentDay:      15,
		PaidMonths:      4,
	}
}

func (suite *DebtServiceTestSuite) pendingInstallment(debtID string, dueDate time.Time) domain.Installment {
	return domain.Installment{
		InstallmentID: uuid.NewString(),
		DebtID:        debtID,
		DueDate:       dueDate,
		Amount:        decimal.RequireFromString("100000"),
		Status:        domain.InstallmentPending,
	}
}

func (suite *DebtServiceTestSuite) TestCreateDebt_InstallmentSchedule() {
	ctx := context.Background()
	start := date(2024, time.January, 15)
	months := 12
	monthly := decimal.RequireFromString("100000")
	day := 15
	req := dto.CreateDebtRequest{
		PartnerName:    "Bank",
		Kind:           domain.DebtLoan,
		TotalAmount:    decimal.RequireFromString("1200000"),
		IsInstallment:  true,
		StartDate:      &start,
		TotalMonths:    &months,
		MonthlyPayment: &monthly,
		PaymentDay:     &day,
	}

	// Clock sits at 2024-05-20, so January through May are already elapsed.
	suite.mockDebtRepo.On("SaveDebtWithInstallments", ctx,
		mock.MatchedBy(func(d domain.Debt) bool {
			return d.PaidMonths == 5 &&
				d.RemainingAmount.Equal(decimal.RequireFromString("700000")) &&
				d.Status == domain.DebtOngoing
		}),
		mock.MatchedBy(func(ins []domain.Installment) bool {
			if len(ins) != 6 {
				return false
			}
			last := ins[len(ins)-1]
			return last.Status == domain.InstallmentPending && last.DueDate.Equal(date(2024, time.June, 15))
		})).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt)
	suite.Equal(5, debt.PaidMonths)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestCreateDebt_IncompleteTerms() {
	ctx := context.Background()
	req := dto.CreateDebtRequest{
		PartnerName:   "Friend",
		Kind:          domain.DebtLoan,
		TotalAmount:   decimal.RequireFromString("500000"),
		IsInstallment: true,
		// No start date, months, payment or day.
	}

	_, err := suite.service.CreateDebt(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebtWithInstallments", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_RecurringDueDay() {
	ctx := context.Background()
	day := 25
	req := dto.CreateDebtRequest{
		PartnerName: "Landlord",
		Kind:        domain.DebtLoan,
		TotalAmount: decimal.RequireFromString("3000000"),
		PaymentDay:  &day,
	}

	suite.mockDebtRepo.On("SaveDebtWithInstallments", ctx,
		mock.MatchedBy(func(d domain.Debt) bool {
			return !d.IsInstallment && d.PaymentDay == 25 && d.Status == domain.DebtOngoing
		}),
		mock.MatchedBy(func(ins []domain.Installment) bool {
			return len(ins) == 0
		})).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(25, debt.PaymentDay)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestPayInstallment_AdvancesDebt() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.May, 15))

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{pending}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.payingAccount.AccountID).Return(&suite.payingAccount, nil).Once()

	suite.mockDebtRepo.On("RunInTx", ctx, mock.AnythingOfType("func(pgx.Tx) error")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{suite.payingAccount.AccountID}).
		Return(map[string]domain.Account{suite.payingAccount.AccountID: suite.payingAccount}, nil).Once()
	suite.mockEntryRepo.On("InsertEntryInTx", ctx, mock.Anything,
		mock.MatchedBy(func(e domain.Entry) bool {
			return e.Kind == domain.EntryExpense &&
				e.CategoryID == domain.SystemCategoryDebtPayment &&
				e.Amount.Equal(decimal.RequireFromString("100000"))
		})).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceDeltasInTx", ctx, mock.Anything,
		deltasMatch(map[string]string{suite.payingAccount.AccountID: "-100000"}),
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDebtRepo.On("MarkInstallmentPaidInTx", ctx, mock.Anything, pending.InstallmentID,
		suite.payingAccount.AccountID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, mock.Anything,
		mock.MatchedBy(func(d domain.Debt) bool {
			return d.PaidMonths == 5 &&
				d.RemainingAmount.Equal(decimal.RequireFromString("700000")) &&
				d.Status == domain.DebtOngoing
		})).Return(nil).Once()
	suite.mockDebtRepo.On("InsertInstallmentInTx", ctx, mock.Anything,
		mock.MatchedBy(func(in domain.Installment) bool {
			return in.Status == domain.InstallmentPending && in.DueDate.Equal(date(2024, time.June, 15))
		})).Return(nil).Once()

	updated, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID: suite.payingAccount.AccountID,
	})

	suite.Require().NoError(err)
	suite.Equal(5, updated.PaidMonths)
	suite.Equal(domain.DebtOngoing, updated.Status)
	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestPayInstallment_FinalPaymentCompletes() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	debt.PaidMonths = 11
	debt.RemainingAmount = decimal.RequireFromString("100000")
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.December, 15))

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{pending}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.payingAccount.AccountID).Return(&suite.payingAccount, nil).Once()

	suite.mockDebtRepo.On("RunInTx", ctx, mock.AnythingOfType("func(pgx.Tx) error")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).
		Return(map[string]domain.Account{suite.payingAccount.AccountID: suite.payingAccount}, nil).Once()
	suite.mockEntryRepo.On("InsertEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Entry")).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceDeltasInTx", ctx, mock.Anything, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDebtRepo.On("MarkInstallmentPaidInTx", ctx, mock.Anything, pending.InstallmentID,
		suite.payingAccount.AccountID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, mock.Anything,
		mock.MatchedBy(func(d domain.Debt) bool {
			return d.Status == domain.DebtCompleted && d.RemainingAmount.IsZero()
		})).Return(nil).Once()

	updated, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID: suite.payingAccount.AccountID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.DebtCompleted, updated.Status)
	// No new pending installment once the debt is done.
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "InsertInstallmentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestPayInstallment_LendCollectsIncome() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLend)
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.May, 15))

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{pending}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.payingAccount.AccountID).Return(&suite.payingAccount, nil).Once()

	suite.mockDebtRepo.On("RunInTx", ctx, mock.AnythingOfType("func(pgx.Tx) error")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).
		Return(map[string]domain.Account{suite.payingAccount.AccountID: suite.payingAccount}, nil).Once()
	suite.mockEntryRepo.On("InsertEntryInTx", ctx, mock.Anything,
		mock.MatchedBy(func(e domain.Entry) bool {
			return e.Kind == domain.EntryIncome
		})).Return(nil).Once()
	// Collecting money: the account balance goes up.
	suite.mockAccountRepo.On("ApplyBalanceDeltasInTx", ctx, mock.Anything,
		deltasMatch(map[string]string{suite.payingAccount.AccountID: "100000"}),
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDebtRepo.On("MarkInstallmentPaidInTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDebtRepo.On("UpdateDebtInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Debt")).Return(nil).Once()
	suite.mockDebtRepo.On("InsertInstallmentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Installment")).Return(nil).Once()

	_, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID: suite.payingAccount.AccountID,
	})

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestPayInstallment_CompletedDebt() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	debt.Status = domain.DebtCompleted

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()

	_, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID: suite.payingAccount.AccountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *DebtServiceTestSuite) TestPayInstallment_NoPending() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{}, nil).Once()

	_, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID: suite.payingAccount.AccountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *DebtServiceTestSuite) TestPayInstallment_ByIDAlreadyPaid() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	paidAt := date(2024, time.April, 15)
	settled := domain.Installment{
		InstallmentID: uuid.NewString(),
		DebtID:        debt.DebtID,
		DueDate:       date(2024, time.April, 15),
		Amount:        decimal.RequireFromString("100000"),
		Status:        domain.InstallmentPaid,
		PaidAt:        &paidAt,
	}
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.May, 15))

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{settled, pending}, nil).Once()

	// Naming a settled installment fails even though a pending one exists.
	_, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID:     suite.payingAccount.AccountID,
		InstallmentID: &settled.InstallmentID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "RunInTx", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestPayInstallment_ByIDUnknown() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.May, 15))
	unknown := uuid.NewString()

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{pending}, nil).Once()

	_, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID:     suite.payingAccount.AccountID,
		InstallmentID: &unknown,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DebtServiceTestSuite) TestPayInstallment_LockedAccount() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.May, 15))
	locked := suite.payingAccount
	locked.Status = domain.AccountLocked

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{pending}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, locked.AccountID).Return(&locked, nil).Once()

	_, err := suite.service.PayInstallment(ctx, suite.userID, debt.DebtID, dto.PayInstallmentRequest{
		AccountID: locked.AccountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "RunInTx", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestGetDebtByID_ReportsOverdue() {
	ctx := context.Background()
	debt := suite.ongoingInstallmentDebt(domain.DebtLoan)
	// Due 2024-05-15, clock pinned to 2024-05-20: five days overdue.
	pending := suite.pendingInstallment(debt.DebtID, date(2024, time.May, 15))

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindInstallmentsByDebtID", ctx, debt.DebtID).Return([]domain.Installment{pending}, nil).Once()

	_, installments, err := suite.service.GetDebtByID(ctx, suite.userID, debt.DebtID)

	suite.Require().NoError(err)
	suite.Require().Len(installments, 1)
	suite.Equal(domain.InstallmentOverdue, installments[0].Status)
}

func (suite *DebtServiceTestSuite) TestUpdateDebt_TermsOnNonInstallment() {
	ctx := context.Background()
	debt := &domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		PartnerName:     "Friend",
		Kind:            domain.DebtLend,
		TotalAmount:     decimal.RequireFromString("500000"),
		RemainingAmount: decimal.RequireFromString("500000"),
		Status:          domain.DebtOngoing,
	}
	monthly := decimal.RequireFromString("50000")

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()

	_, err := suite.service.UpdateDebt(ctx, suite.userID, debt.DebtID, dto.UpdateDebtRequest{MonthlyPayment: &monthly})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DebtServiceTestSuite) TestUpdateDebt_PaymentDayOnNonInstallment() {
	ctx := context.Background()
	debt := &domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		PartnerName:     "Friend",
		Kind:            domain.DebtLend,
		TotalAmount:     decimal.RequireFromString("500000"),
		RemainingAmount: decimal.RequireFromString("500000"),
		Status:          domain.DebtOngoing,
	}
	day := 28

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("UpdateDebt", ctx,
		mock.MatchedBy(func(d domain.Debt) bool {
			return d.DebtID == debt.DebtID && d.PaymentDay == 28
		})).Return(nil).Once()

	updated, err := suite.service.UpdateDebt(ctx, suite.userID, debt.DebtID, dto.UpdateDebtRequest{PaymentDay: &day})

	suite.Require().NoError(err)
	suite.Equal(28, updated.PaymentDay)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func TestDebtService(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}

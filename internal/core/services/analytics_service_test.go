package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/core/services"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	mockAnalyticsRepo *MockAnalyticsRepository
	mockAccountRepo   *MockAccountRepository
	mockDebtRepo      *MockDebtRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.AnalyticsSvc
	userID            string
	asOf              time.Time
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.mockAnalyticsRepo = new(MockAnalyticsRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAnalyticsService(suite.mockAnalyticsRepo, suite.mockAccountRepo, suite.mockDebtRepo, suite.mockUserRepo)

	suite.userID = uuid.NewString()
	suite.asOf = date(2024, time.June, 15)
}

func (suite *AnalyticsServiceTestSuite) creditCard(name string, dueDay int, outstanding string) domain.Account {
	return domain.Account{
		AccountID:          uuid.NewString(),
		UserID:             suite.userID,
		Name:               name,
		Kind:               domain.AccountCredit,
		CurrencyCode:       "VND",
		Status:             domain.AccountActive,
		PaymentDueDay:      dueDay,
		OutstandingBalance: decimal.RequireFromString(outstanding),
	}
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_MergesCardsAndInstallments() {
	ctx := context.Background()
	// Due on the 17th: two days out, RED.
	card := suite.creditCard("Platinum Card", 17, "2000000")

	debtID := uuid.NewString()
	installment := domain.Installment{
		InstallmentID: uuid.NewString(),
		DebtID:        debtID,
		DueDate:       date(2024, time.June, 20),
		Amount:        decimal.RequireFromString("100000"),
		Status:        domain.InstallmentPending,
	}

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{card}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{installment}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).
		Return([]domain.Debt{{DebtID: debtID, PartnerName: "Bank"}}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(payments, 2)

	suite.Equal(domain.UpcomingCreditCard, payments[0].Kind)
	suite.Equal("Platinum Card", payments[0].Name)
	suite.Equal(2, payments[0].DaysRemaining)
	suite.Equal(domain.AlertRed, payments[0].AlertLevel)

	suite.Equal(domain.UpcomingDebt, payments[1].Kind)
	suite.Equal("Bank", payments[1].Name)
	suite.Equal(5, payments[1].DaysRemaining)
	suite.Equal(domain.AlertOrange, payments[1].AlertLevel)
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_SkipsSettledCards() {
	ctx := context.Background()
	settled := suite.creditCard("Settled Card", 17, "0")

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{settled}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).Return([]domain.Debt{}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(payments)
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_SkipsFarDueDates() {
	ctx := context.Background()
	// Due on the 10th: the next occurrence is 2024-07-10, 25 days out.
	far := suite.creditCard("Quiet Card", 10, "500000")

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{far}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).Return([]domain.Debt{}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(payments)
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_CardDueTodayStaysDueToday() {
	ctx := context.Background()
	// Due day matching asOf: the payment is owed today, not next month.
	card := suite.creditCard("Today Card", 15, "750000")

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{card}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).Return([]domain.Debt{}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(payments, 1)
	suite.Equal(date(2024, time.June, 15), payments[0].DueDate)
	suite.Equal(0, payments[0].DaysRemaining)
	suite.Equal(domain.AlertRed, payments[0].AlertLevel)
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_ProjectsRecurringDebts() {
	ctx := context.Background()
	near := domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		PartnerName:     "Landlord",
		Kind:            domain.DebtLoan,
		RemainingAmount: decimal.RequireFromString("500000"),
		Status:          domain.DebtOngoing,
		PaymentDay:      18,
	}
	far := domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		PartnerName:     "Quiet Lender",
		Kind:            domain.DebtLoan,
		RemainingAmount: decimal.RequireFromString("900000"),
		Status:          domain.DebtOngoing,
		PaymentDay:      10,
	}
	done := domain.Debt{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		PartnerName:     "Old Friend",
		Kind:            domain.DebtLoan,
		RemainingAmount: decimal.Zero,
		Status:          domain.DebtCompleted,
		PaymentDay:      16,
	}

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).
		Return([]domain.Debt{near, far, done}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	// 2024-07-10 is 25 days out for the far debt; the completed one owes
	// nothing. Only the near debt surfaces.
	suite.Require().Len(payments, 1)
	suite.Equal(domain.UpcomingDebt, payments[0].Kind)
	suite.Equal("Landlord", payments[0].Name)
	suite.Equal(near.DebtID, payments[0].ReferenceID)
	suite.True(payments[0].Amount.Equal(decimal.RequireFromString("500000")))
	suite.Equal(date(2024, time.June, 18), payments[0].DueDate)
	suite.Equal(3, payments[0].DaysRemaining)
	suite.Equal(domain.AlertRed, payments[0].AlertLevel)
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_OverdueInstallmentStaysRed() {
	ctx := context.Background()
	debtID := uuid.NewString()
	overdue := domain.Installment{
		InstallmentID: uuid.NewString(),
		DebtID:        debtID,
		DueDate:       date(2024, time.June, 10),
		Amount:        decimal.RequireFromString("100000"),
		Status:        domain.InstallmentPending,
	}

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{overdue}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).
		Return([]domain.Debt{{DebtID: debtID, PartnerName: "Friend"}}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(payments, 1)
	suite.Equal(-5, payments[0].DaysRemaining)
	suite.Equal(domain.AlertRed, payments[0].AlertLevel)
}

func (suite *AnalyticsServiceTestSuite) TestGetUpcomingPayments_SortedByDaysRemaining() {
	ctx := context.Background()
	near := suite.creditCard("Near Card", 16, "1000000")
	later := suite.creditCard("Later Card", 22, "500000")

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{later, near}, nil).Once()
	suite.mockDebtRepo.On("ListDebtsByUser", ctx, suite.userID, (*domain.DebtStatus)(nil)).Return([]domain.Debt{}, nil).Once()
	suite.mockDebtRepo.On("FindPendingInstallments", ctx, suite.userID).Return([]domain.Installment{}, nil).Once()

	payments, err := suite.service.GetUpcomingPayments(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(payments, 2)
	suite.Equal("Near Card", payments[0].Name)
	suite.Equal("Later Card", payments[1].Name)
}

func (suite *AnalyticsServiceTestSuite) TestGetSpendingWarning_ZeroLimitNeverWarns() {
	ctx := context.Background()
	user := &domain.User{UserID: suite.userID, MonthlyLimit: decimal.Zero}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(user, nil).Once()
	suite.mockAnalyticsRepo.On("GetMonthExpenseTotal", ctx, suite.userID, suite.asOf).
		Return(decimal.RequireFromString("9000000"), nil).Once()

	warning, err := suite.service.GetSpendingWarning(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.False(warning.Exceeded)
	suite.True(warning.UsedRatio.IsZero())
	suite.True(warning.Spent.Equal(decimal.RequireFromString("9000000")))
}

func (suite *AnalyticsServiceTestSuite) TestGetSpendingWarning_OverLimit() {
	ctx := context.Background()
	user := &domain.User{UserID: suite.userID, MonthlyLimit: decimal.RequireFromString("5000000")}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(user, nil).Once()
	suite.mockAnalyticsRepo.On("GetMonthExpenseTotal", ctx, suite.userID, suite.asOf).
		Return(decimal.RequireFromString("6000000"), nil).Once()

	warning, err := suite.service.GetSpendingWarning(ctx, suite.userID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(warning.Exceeded)
	suite.True(warning.UsedRatio.Equal(decimal.RequireFromString("1.2")))
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

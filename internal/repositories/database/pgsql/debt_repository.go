package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tvhoang/wallet_ledger_app/internal/apperrors"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/tvhoang/wallet_ledger_app/internal/models"
	"github.com/tvhoang/wallet_ledger_app/internal/utils/mapping"
)

const debtColumns = `debt_id, user_id, partner_name, kind, total_amount, remaining_amount, status,
	is_installment, start_date, total_months, monthly_payment, payment_day, paid_months,
	created_at, created_by, last_updated_at, last_updated_by`

const installmentColumns = `installment_id, debt_id, due_date, amount, status, paid_at, settling_account_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxDebtRepository struct {
	BaseRepository
}

// NewPgxDebtRepository creates a new repository for debt and installment data.
func NewPgxDebtRepository(pool *pgxpool.Pool) *PgxDebtRepository {
	return &PgxDebtRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxDebtRepository implements the debt facade
var _ portsrepo.DebtRepositoryWithTx = (*PgxDebtRepository)(nil)

func scanDebtRow(row rowScanner) (models.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.UserID,
		&m.PartnerName,
		&m.Kind,
		&m.TotalAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.IsInstallment,
		&m.StartDate,
		&m.TotalMonths,
		&m.MonthlyPayment,
		&m.PaymentDay,
		&m.PaidMonths,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanInstallmentRow(row rowScanner) (models.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID,
		&m.DebtID,
		&m.DueDate,
		&m.Amount,
		&m.Status,
		&m.PaidAt,
		&m.SettlingAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDebtWithInstallments persists a debt together with its generated
// schedule. Either everything lands or nothing does.
func (r *PgxDebtRepository) SaveDebtWithInstallments(ctx context.Context, debt domain.Debt, installments []domain.Installment) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		m := mapping.ToModelDebt(debt)

		query := `
			INSERT INTO debts (` + debtColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
		`
		_, err := tx.Exec(ctx, query,
			m.DebtID,
			m.UserID,
			m.PartnerName,
			m.Kind,
			m.TotalAmount,
			m.RemainingAmount,
			m.Status,
			m.IsInstallment,
			m.StartDate,
			m.TotalMonths,
			m.MonthlyPayment,
			m.PaymentDay,
			m.PaidMonths,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: debt with ID %s already exists", apperrors.ErrDuplicate, m.DebtID)
			}
			return fmt.Errorf("failed to insert debt %s: %w", m.DebtID, err)
		}

		for i := range installments {
			if err := r.InsertInstallmentInTx(ctx, tx, installments[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindDebtByID retrieves a debt by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`

	m, err := scanDebtRow(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt by ID %s: %w", debtID, err)
	}

	d := mapping.ToDomainDebt(m)
	return &d, nil
}

// ListDebtsByUser retrieves the user's debts, newest first, optionally
// filtered by status.
func (r *PgxDebtRepository) ListDebtsByUser(ctx context.Context, userID string, status *domain.DebtStatus) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1`
	args := []any{userID}
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts for user %s: %w", userID, err)
	}
	defer rows.Close()

	debts := []domain.Debt{}
	for rows.Next() {
		m, err := scanDebtRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row for user %s: %w", userID, err)
		}
		debts = append(debts, mapping.ToDomainDebt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt rows for user %s: %w", userID, err)
	}
	return debts, nil
}

// FindInstallmentsByDebtID retrieves all installments of a debt ordered by
// due date ascending.
func (r *PgxDebtRepository) FindInstallmentsByDebtID(ctx context.Context, debtID string) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM debt_installments WHERE debt_id = $1 ORDER BY due_date;`

	rows, err := r.Pool.Query(ctx, query, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for debt %s: %w", debtID, err)
	}
	defer rows.Close()

	installments := []domain.Installment{}
	for rows.Next() {
		m, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment row for debt %s: %w", debtID, err)
		}
		installments = append(installments, mapping.ToDomainInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows for debt %s: %w", debtID, err)
	}
	return installments, nil
}

// FindInstallmentByID retrieves an installment by its ID.
func (r *PgxDebtRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM debt_installments WHERE installment_id = $1;`

	m, err := scanInstallmentRow(r.Pool.QueryRow(ctx, query, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment by ID %s: %w", installmentID, err)
	}

	in := mapping.ToDomainInstallment(m)
	return &in, nil
}

// FindPendingInstallments retrieves the pending installment of every ongoing
// debt owned by the user.
func (r *PgxDebtRepository) FindPendingInstallments(ctx context.Context, userID string) ([]domain.Installment, error) {
	query := `
		SELECT i.installment_id, i.debt_id, i.due_date, i.amount, i.status, i.paid_at, i.settling_account_id,
			i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
		FROM debt_installments i
		JOIN debts d ON d.debt_id = i.debt_id
		WHERE d.user_id = $1 AND d.status = 'ONGOING' AND i.status = 'PENDING'
		ORDER BY i.due_date;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending installments for user %s: %w", userID, err)
	}
	defer rows.Close()

	installments := []domain.Installment{}
	for rows.Next() {
		m, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending installment row for user %s: %w", userID, err)
		}
		installments = append(installments, mapping.ToDomainInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending installment rows for user %s: %w", userID, err)
	}
	return installments, nil
}

// UpdateDebt updates a debt's mutable fields.
func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	return r.updateDebt(ctx, r.Pool, debt)
}

// UpdateDebtInTx updates a debt row within an existing transaction.
func (r *PgxDebtRepository) UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	return r.updateDebt(ctx, tx, debt)
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *PgxDebtRepository) updateDebt(ctx context.Context, db execer, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)

	query := `
		UPDATE debts
		SET partner_name = $2, remaining_amount = $3, status = $4, monthly_payment = $5,
			payment_day = $6, paid_months = $7, last_updated_at = $8, last_updated_by = $9
		WHERE debt_id = $1;
	`
	cmdTag, err := db.Exec(ctx, query,
		m.DebtID,
		m.PartnerName,
		m.RemainingAmount,
		m.Status,
		m.MonthlyPayment,
		m.PaymentDay,
		m.PaidMonths,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", m.DebtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDebt removes a debt and all of its installments in one transaction.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM debt_installments WHERE debt_id = $1;`, debtID); err != nil {
			return fmt.Errorf("failed to delete installments for debt %s: %w", debtID, err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID)
		if err != nil {
			return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// MarkInstallmentPaidInTx marks a pending installment PAID within an existing
// transaction. The status guard in the WHERE clause makes concurrent double
// payment impossible.
func (r *PgxDebtRepository) MarkInstallmentPaidInTx(ctx context.Context, tx pgx.Tx, installmentID string, settlingAccountID string, paidAt time.Time, userID string) error {
	query := `
		UPDATE debt_installments
		SET status = 'PAID', paid_at = $2, settling_account_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE installment_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, query, installmentID, paidAt, settlingAccountID, paidAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark installment %s paid: %w", installmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %s is not pending", apperrors.ErrInvalidState, installmentID)
	}
	return nil
}

// InsertInstallmentInTx inserts an installment row within an existing transaction.
func (r *PgxDebtRepository) InsertInstallmentInTx(ctx context.Context, tx pgx.Tx, installment domain.Installment) error {
	m := mapping.ToModelInstallment(installment)

	query := `
		INSERT INTO debt_installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.InstallmentID,
		m.DebtID,
		m.DueDate,
		m.Amount,
		m.Status,
		m.PaidAt,
		m.SettlingAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert installment %s: %w", m.InstallmentID, err)
	}
	return nil
}

package withdrawalrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const withdrawalColumns = `id, user_id, amount, status, bank_name, bank_code, account_number, account_name,
	reference, transfer_code, reason, processed_at, created_at`

const (
	queryCreate = `
		INSERT INTO withdrawals (user_id, amount, status, bank_name, bank_code, account_number, account_name, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	queryFindByReference = `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE reference = $1`
	queryFindByUserID    = `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	queryFindUnsettled   = `SELECT ` + withdrawalColumns + `
		FROM withdrawals
		WHERE created_at < $1
			AND (status = 'processing'
				OR status = 'failed' AND transfer_code IS NULL AND created_at > $1 - INTERVAL '1 day')
		ORDER BY created_at
		LIMIT $2
	`
	querySumByUser = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0)::BIGINT,
			COALESCE(SUM(amount) FILTER (WHERE status IN ('pending', 'processing')), 0)::BIGINT
		FROM withdrawals
		WHERE user_id = $1
	`
	querySetTransferCode = `UPDATE withdrawals SET transfer_code = $2, updated_at = NOW() WHERE reference = $1`
	queryTransition      = `
		UPDATE withdrawals
		SET status = $3,
			reason = CASE WHEN $3 = 'completed' THEN NULL ELSE COALESCE($4, reason) END,
			processed_at = COALESCE($5, processed_at), updated_at = NOW()
		WHERE reference = $1 AND status = ANY($2) AND (status <> $3 OR reason IS DISTINCT FROM $4)
		RETURNING ` + withdrawalColumns
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status,
		&w.Bank.BankName, &w.Bank.BankCode, &w.Bank.AccountNumber, &w.Bank.AccountName,
		&w.Reference, &w.TransferCode, &w.Reason, &w.ProcessedAt, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) Create(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error) {
	err := r.db.QueryRow(ctx, queryCreate,
		w.UserID, w.Amount, w.Status, w.Bank.BankName, w.Bank.BankCode, w.Bank.AccountNumber, w.Bank.AccountName, w.Reference,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Int("userID", w.UserID), zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *Repository) FindByReference(ctx context.Context, reference string) (*domain.Withdrawal, error) {
	w, err := scanWithdrawal(r.db.QueryRow(ctx, queryFindByReference, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	return r.list(ctx, queryFindByUserID, userID)
}

// FindUnsettled returns withdrawals created before the cutoff that are still
// processing, plus recent failures whose transfer was never acknowledged.
func (r *Repository) FindUnsettled(ctx context.Context, before time.Time, limit int) ([]domain.Withdrawal, error) {
	return r.list(ctx, queryFindUnsettled, before, limit)
}

// SumByUser returns the completed total and the in-flight (pending or processing) total in kobo.
func (r *Repository) SumByUser(ctx context.Context, userID int) (completed, inflight int64, err error) {
	err = r.db.QueryRow(ctx, querySumByUser, userID).Scan(&completed, &inflight)
	if err != nil {
		zap.L().Error("can't sum withdrawals", zap.Int("userID", userID), zap.Error(err))
	}
	return
}

func (r *Repository) SetTransferCode(ctx context.Context, reference, code string) error {
	_, err := r.db.Exec(ctx, querySetTransferCode, reference, code)
	if err != nil {
		zap.L().Error("can't save transfer code", zap.String("reference", reference), zap.Error(err))
	}
	return err
}

// Transition moves the withdrawal to status `to` only if its current status is
// one of `from`. Re-applying the current status only matches when the reason
// changes. It returns nil without error when nothing matched.
func (r *Repository) Transition(ctx context.Context, reference string, from []string, to string, reason *string, processedAt *time.Time) (*domain.Withdrawal, error) {
	w, err := scanWithdrawal(r.db.QueryRow(ctx, queryTransition, reference, from, to, reason, processedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't transition withdrawal",
			zap.String("reference", reference), zap.String("to", to), zap.Error(err))
		return nil, err
	}
	return w, nil
}

package transactionrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	queryAppend = `
		INSERT INTO transactions (user_id, type, amount, status, tier, source_user_id, payment_reference, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at
	`
	queryFindByUserID = `
		SELECT id, user_id, type, amount, status, tier, source_user_id, payment_reference, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	querySumCommissions = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE tier = 1), 0)::BIGINT,
			COALESCE(SUM(amount) FILTER (WHERE tier = 2), 0)::BIGINT
		FROM transactions
		WHERE user_id = $1 AND type = 'commission' AND status = 'completed'
	`
	queryEarningsBySource = `
		SELECT source_user_id, SUM(amount)::BIGINT
		FROM transactions
		WHERE user_id = $1 AND type = 'commission' AND status = 'completed' AND source_user_id IS NOT NULL
		GROUP BY source_user_id
	`
	queryMonthlyCommissions = `
		SELECT
			date_trunc('month', created_at AT TIME ZONE 'UTC') AS month,
			COALESCE(SUM(amount) FILTER (WHERE tier = 1), 0)::BIGINT,
			COALESCE(SUM(amount) FILTER (WHERE tier = 2), 0)::BIGINT
		FROM transactions
		WHERE user_id = $1 AND type = 'commission' AND status = 'completed' AND created_at >= $2
		GROUP BY month
		ORDER BY month
	`
	querySetStatus = `
		UPDATE transactions
		SET status = $3
		WHERE payment_reference = $1 AND type = $2
	`
)

// Repository is the append-only ledger.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Append inserts the entry unless one with the same reference, owner, type and
// tier already exists. It reports whether a row was written; a duplicate is not
// an error.
func (r *Repository) Append(ctx context.Context, t *domain.Transaction) (bool, error) {
	err := r.db.QueryRow(ctx, queryAppend,
		t.UserID, t.Type, t.Amount, t.Status, t.Tier, t.SourceUserID, t.PaymentReference, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		zap.L().Info("ledger entry already recorded",
			zap.Int("userID", t.UserID), zap.String("type", t.Type), zap.Stringp("reference", t.PaymentReference))
		return false, nil
	}
	if err != nil {
		zap.L().Error("can't append ledger entry", zap.Int("userID", t.UserID), zap.String("type", t.Type), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, queryFindByUserID, userID, limit)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Status, &t.Tier, &t.SourceUserID,
			&t.PaymentReference, &t.Description, &t.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SumCommissions returns completed commission totals per tier in kobo.
func (r *Repository) SumCommissions(ctx context.Context, userID int) (tier1, tier2 int64, err error) {
	err = r.db.QueryRow(ctx, querySumCommissions, userID).Scan(&tier1, &tier2)
	if err != nil {
		zap.L().Error("can't sum commissions", zap.Int("userID", userID), zap.Error(err))
	}
	return
}

// EarningsBySource maps each paying user to the commission they generated for userID.
func (r *Repository) EarningsBySource(ctx context.Context, userID int) (map[int]int64, error) {
	rows, err := r.db.Query(ctx, queryEarningsBySource, userID)
	if err != nil {
		zap.L().Error("can't group earnings", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	earnings := make(map[int]int64)
	for rows.Next() {
		var (
			source int
			amount int64
		)
		if err := rows.Scan(&source, &amount); err != nil {
			zap.L().Error("can't scan earnings row", zap.Error(err))
			return nil, err
		}
		earnings[source] = amount
	}
	return earnings, rows.Err()
}

// MonthlyCommissions groups completed commissions since the given time by
// UTC calendar month. Months without earnings are absent.
func (r *Repository) MonthlyCommissions(ctx context.Context, userID int, since time.Time) ([]domain.MonthlyEarnings, error) {
	rows, err := r.db.Query(ctx, queryMonthlyCommissions, userID, since)
	if err != nil {
		zap.L().Error("can't group monthly commissions", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var months []domain.MonthlyEarnings
	for rows.Next() {
		var m domain.MonthlyEarnings
		if err := rows.Scan(&m.Month, &m.Tier1, &m.Tier2); err != nil {
			zap.L().Error("can't scan monthly commissions row", zap.Error(err))
			return nil, err
		}
		m.Month = m.Month.UTC()
		months = append(months, m)
	}
	return months, rows.Err()
}

// SetStatus moves the status of the entry that mirrors an async operation,
// such as a withdrawal, identified by its reference.
func (r *Repository) SetStatus(ctx context.Context, reference, txType, status string) error {
	_, err := r.db.Exec(ctx, querySetStatus, reference, txType, status)
	if err != nil {
		zap.L().Error("can't update ledger status", zap.String("reference", reference), zap.Error(err))
	}
	return err
}

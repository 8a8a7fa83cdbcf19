package referralrepo

import (
	"context"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"go.uber.org/zap"
)

const (
	queryInsertEdge = `
		INSERT INTO referrals (referrer_id, referred_user_id, tier, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	queryFindReferrers = `
		SELECT id, referrer_id, referred_user_id, tier, status, created_at
		FROM referrals
		WHERE referred_user_id = $1
		ORDER BY tier
	`
	queryFindByReferrer = `
		SELECT r.id, r.referrer_id, r.referred_user_id, r.tier, r.status, r.created_at,
			u.first_name || ' ' || u.last_name, u.email
		FROM referrals r
		JOIN users u ON u.id = r.referred_user_id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at DESC
	`
	queryActivatePending = `
		UPDATE referrals
		SET status = 'active', updated_at = NOW()
		WHERE referred_user_id = $1 AND status = 'pending'
	`
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// CreateEdges inserts all edges atomically, filling in their ids.
func (r *Repository) CreateEdges(ctx context.Context, edges []domain.Referral) error {
	if len(edges) == 0 {
		return nil
	}
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		for i := range edges {
			e := &edges[i]
			err := r.db.QueryRow(ctx, queryInsertEdge, e.ReferrerID, e.ReferredUserID, e.Tier, e.Status).
				Scan(&e.ID, &e.CreatedAt)
			if err != nil {
				zap.L().Error("can't save referral edge",
					zap.Int("referrerID", e.ReferrerID), zap.Int("referredUserID", e.ReferredUserID),
					zap.Int("tier", e.Tier), zap.Error(err))
				return err
			}
		}
		return nil
	})
}

// FindReferrers returns the edges that pay commission on referredUserID's
// payments, ordered by tier.
func (r *Repository) FindReferrers(ctx context.Context, referredUserID int) ([]domain.Referral, error) {
	rows, err := r.db.Query(ctx, queryFindReferrers, referredUserID)
	if err != nil {
		zap.L().Error("failed to fetch referrers", zap.Int("referredUserID", referredUserID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var edges []domain.Referral
	for rows.Next() {
		var e domain.Referral
		if err := rows.Scan(&e.ID, &e.ReferrerID, &e.ReferredUserID, &e.Tier, &e.Status, &e.CreatedAt); err != nil {
			zap.L().Error("failed to scan referral row", zap.Error(err))
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func (r *Repository) FindByReferrer(ctx context.Context, referrerID int) ([]domain.Referral, error) {
	rows, err := r.db.Query(ctx, queryFindByReferrer, referrerID)
	if err != nil {
		zap.L().Error("failed to fetch referrals", zap.Int("referrerID", referrerID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var edges []domain.Referral
	for rows.Next() {
		var e domain.Referral
		err := rows.Scan(&e.ID, &e.ReferrerID, &e.ReferredUserID, &e.Tier, &e.Status, &e.CreatedAt,
			&e.ReferredName, &e.ReferredEmail)
		if err != nil {
			zap.L().Error("failed to scan referral row", zap.Error(err))
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ActivatePending marks the user's pending edges active and returns how many changed.
func (r *Repository) ActivatePending(ctx context.Context, referredUserID int) (int64, error) {
	tag, err := r.db.Exec(ctx, queryActivatePending, referredUserID)
	if err != nil {
		zap.L().Error("can't activate referral edges", zap.Int("referredUserID", referredUserID), zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

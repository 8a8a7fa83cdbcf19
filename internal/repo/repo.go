package repo

import (
	"github.com/GlebRadaev/affiliate/internal/pg"
	referralrepo "github.com/GlebRadaev/affiliate/internal/repo/referral-repo"
	transactionrepo "github.com/GlebRadaev/affiliate/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/affiliate/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/affiliate/internal/repo/withdrawal-repo"
)

// Repositories are concrete because each one serves several services, every
// service declaring only the methods it needs.
type Repositories struct {
	UserRepo        *userrepo.Repository
	ReferralRepo    *referralrepo.Repository
	TransactionRepo *transactionrepo.Repository
	WithdrawalRepo  *withdrawalrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		ReferralRepo:    referralrepo.New(conn, txManager),
		TransactionRepo: transactionrepo.New(conn),
		WithdrawalRepo:  withdrawalrepo.New(conn),
	}
}

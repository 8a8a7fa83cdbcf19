package service

import (
	"github.com/GlebRadaev/affiliate/internal/config"
	"github.com/GlebRadaev/affiliate/internal/handlers/auth"
	"github.com/GlebRadaev/affiliate/internal/handlers/balance"
	"github.com/GlebRadaev/affiliate/internal/handlers/payments"
	"github.com/GlebRadaev/affiliate/internal/handlers/webhook"
	"github.com/GlebRadaev/affiliate/internal/handlers/withdrawals"
	"github.com/GlebRadaev/affiliate/internal/notify"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/GlebRadaev/affiliate/internal/pg"

	pkgauth "github.com/GlebRadaev/affiliate/pkg/auth"

	"github.com/GlebRadaev/affiliate/internal/repo"
	authservice "github.com/GlebRadaev/affiliate/internal/service/authservice"
	balanceservice "github.com/GlebRadaev/affiliate/internal/service/balanceservice"
	commissionservice "github.com/GlebRadaev/affiliate/internal/service/commissionservice"
	paymentservice "github.com/GlebRadaev/affiliate/internal/service/paymentservice"
	webhookservice "github.com/GlebRadaev/affiliate/internal/service/webhookservice"
	withdrawalservice "github.com/GlebRadaev/affiliate/internal/service/withdrawalservice"
)

// Deps are the infrastructure pieces the services are built on.
type Deps struct {
	TxManager pg.TXManager
	Paystack  *paystack.Client
	Notifier  notify.Notifier
	Cache     webhookservice.EventCache
	JWT       pkgauth.JWTServiceInterface
}

type Services struct {
	AuthService       auth.Service
	BalanceService    balance.Service
	WithdrawalService withdrawals.Service
	PaymentService    payments.Service
	WebhookService    webhook.Service

	// TransferOutcomes applies provider transfer results outside the webhook path.
	TransferOutcomes webhookservice.TransferHandler
}

func New(repo *repo.Repositories, deps Deps, cfg *config.Config) *Services {
	balanceService := balanceservice.New(repo.TransactionRepo, repo.WithdrawalRepo, repo.ReferralRepo, repo.UserRepo)
	commissionService := commissionservice.New(repo.UserRepo, repo.ReferralRepo, repo.TransactionRepo,
		deps.TxManager, deps.Notifier, commissionservice.Rates{Tier1: cfg.Tier1Rate, Tier2: cfg.Tier2Rate})
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, repo.UserRepo, repo.TransactionRepo,
		balanceService, deps.Paystack, deps.Notifier, deps.TxManager, withdrawalservice.Config{
			MinWithdrawal: cfg.MinWithdrawal,
			Timeout:       cfg.ProviderTimeout,
		})
	paymentService := paymentservice.New(repo.UserRepo, deps.Paystack, commissionService, paymentservice.Config{
		SignupFee:         cfg.SignupFee,
		SubscriptionPrice: cfg.SubscriptionPrice,
		AppURL:            cfg.AppURL,
	})
	authService := authservice.New(repo.UserRepo, repo.ReferralRepo, deps.TxManager, pkgauth.NewHashService(0), deps.JWT)

	return &Services{
		AuthService:       authService,
		BalanceService:    balanceService,
		WithdrawalService: withdrawalService,
		PaymentService:    paymentService,
		WebhookService:    webhookservice.New(deps.Cache, commissionService, withdrawalService),
		TransferOutcomes:  withdrawalService,
	}
}

package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/affiliate/docs"
	authhandlers "github.com/GlebRadaev/affiliate/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/affiliate/internal/handlers/balance"
	paymentshandlers "github.com/GlebRadaev/affiliate/internal/handlers/payments"
	webhookhandlers "github.com/GlebRadaev/affiliate/internal/handlers/webhook"
	withdrawalshandlers "github.com/GlebRadaev/affiliate/internal/handlers/withdrawals"
	"github.com/GlebRadaev/affiliate/internal/metrics"
	"github.com/GlebRadaev/affiliate/internal/service"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	InitializeSignup(w http.ResponseWriter, r *http.Request)
	InitializeSubscription(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	ListBanks(w http.ResponseWriter, r *http.Request)
	ResolveAccount(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Paystack(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	BalanceHandler    BalanceHandler
	WithdrawalHandler WithdrawalHandler
	PaymentHandler    PaymentHandler
	WebhookHandler    WebhookHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface, webhookSecret string) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		BalanceHandler:    balancehandlers.New(s.BalanceService),
		WithdrawalHandler: withdrawalshandlers.New(s.WithdrawalService),
		PaymentHandler:    paymentshandlers.New(s.PaymentService),
		WebhookHandler:    webhookhandlers.New(s.WebhookService, webhookSecret),
		jwtService:        jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/payments", func(r chi.Router) {
			r.Post("/signup", h.PaymentHandler.InitializeSignup)
			r.Get("/verify", h.PaymentHandler.Verify)
		})
		r.Post("/webhooks/paystack", h.WebhookHandler.Paystack)

		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware(h.jwtService))
				r.Get("/balance", h.BalanceHandler.GetBalance)
				r.Get("/dashboard", h.BalanceHandler.GetDashboard)
				r.Route("/withdrawals", func(r chi.Router) {
					r.Get("/", h.BalanceHandler.GetWithdrawals)
					r.Post("/", h.WithdrawalHandler.Withdraw)
				})
				r.Post("/payments/subscription", h.PaymentHandler.InitializeSubscription)
				r.Put("/settings", h.AuthHandler.UpdateSettings)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Get("/banks", h.PaymentHandler.ListBanks)
			r.Get("/banks/resolve", h.PaymentHandler.ResolveAccount)
		})
	})

	return r
}

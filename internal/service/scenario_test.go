package service_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/notify"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/GlebRadaev/affiliate/internal/service/balanceservice"
	"github.com/GlebRadaev/affiliate/internal/service/commissionservice"
	"github.com/GlebRadaev/affiliate/internal/service/withdrawalservice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// store is an in-memory stand-in for the four tables, enforcing the same
// uniqueness rules as the database.
type store struct {
	mu          sync.Mutex
	users       map[int]*domain.User
	referrals   []domain.Referral
	ledger      []domain.Transaction
	withdrawals []*domain.Withdrawal
}

func newStore() *store {
	return &store{users: make(map[int]*domain.User)}
}

func (s *store) addUser(id int, first string, referredBy *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = &domain.User{ID: id, FirstName: first, LastName: "Test", ReferredBy: referredBy}
	if referredBy == nil {
		return
	}
	s.referrals = append(s.referrals, domain.Referral{ReferrerID: *referredBy, ReferredUserID: id, Tier: domain.Tier1, Status: domain.ReferralPending})
	if grand := s.users[*referredBy].ReferredBy; grand != nil {
		s.referrals = append(s.referrals, domain.Referral{ReferrerID: *grand, ReferredUserID: id, Tier: domain.Tier2, Status: domain.ReferralPending})
	}
}

type serialTx struct{ mu sync.Mutex }

func (t *serialTx) Begin(ctx context.Context, fn pg.TransactionalFn) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type memUsers struct{ *store }

func (m memUsers) FindByID(_ context.Context, id int) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m memUsers) LockByID(ctx context.Context, id int) (*domain.User, error) {
	return m.FindByID(ctx, id)
}

func (m memUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}

func (m memUsers) Activate(_ context.Context, id int, ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.HasPaidSignup {
		return false, nil
	}
	u.HasPaidSignup, u.IsActive, u.SignupPaymentRef = true, true, &ref
	return true, nil
}

func (m memUsers) UpdatePayoutDetails(_ context.Context, id int, bank domain.BankDetails, code *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Bank, m.users[id].RecipientCode = &bank, code
	return nil
}

type memReferrals struct{ *store }

func (m memReferrals) FindReferrers(_ context.Context, referredUserID int) ([]domain.Referral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Referral
	for _, r := range m.referrals {
		if r.ReferredUserID == referredUserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memReferrals) FindByReferrer(_ context.Context, referrerID int) ([]domain.Referral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Referral
	for _, r := range m.referrals {
		if r.ReferrerID == referrerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memReferrals) ActivatePending(_ context.Context, referredUserID int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.referrals {
		if m.referrals[i].ReferredUserID == referredUserID && m.referrals[i].Status == domain.ReferralPending {
			m.referrals[i].Status = domain.ReferralActive
			n++
		}
	}
	return n, nil
}

type memLedger struct{ *store }

func tierOf(t domain.Transaction) int {
	if t.Tier == nil {
		return 0
	}
	return *t.Tier
}

func (m memLedger) Append(_ context.Context, t *domain.Transaction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.PaymentReference != nil {
		for _, e := range m.ledger {
			if e.PaymentReference != nil && *e.PaymentReference == *t.PaymentReference &&
				e.UserID == t.UserID && e.Type == t.Type && tierOf(e) == tierOf(*t) {
				return false, nil
			}
		}
	}
	t.ID = len(m.ledger) + 1
	t.CreatedAt = time.Now()
	m.ledger = append(m.ledger, *t)
	return true, nil
}

func (m memLedger) SetStatus(_ context.Context, reference, txType, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ledger {
		if e := m.ledger[i]; e.PaymentReference != nil && *e.PaymentReference == reference && e.Type == txType {
			m.ledger[i].Status = status
		}
	}
	return nil
}

func (m memLedger) SumCommissions(_ context.Context, userID int) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t1, t2 int64
	for _, e := range m.ledger {
		if e.UserID != userID || e.Type != domain.TransactionCommission || e.Status != domain.StatusCompleted {
			continue
		}
		if tierOf(e) == domain.Tier1 {
			t1 += e.Amount
		} else {
			t2 += e.Amount
		}
	}
	return t1, t2, nil
}

func (m memLedger) EarningsBySource(_ context.Context, userID int) (map[int]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]int64)
	for _, e := range m.ledger {
		if e.UserID == userID && e.Type == domain.TransactionCommission && e.SourceUserID != nil {
			out[*e.SourceUserID] += e.Amount
		}
	}
	return out, nil
}

func (m memLedger) FindByUserID(_ context.Context, userID, limit int) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for i := len(m.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if m.ledger[i].UserID == userID {
			out = append(out, m.ledger[i])
		}
	}
	return out, nil
}

func (m memLedger) MonthlyCommissions(_ context.Context, userID int, since time.Time) ([]domain.MonthlyEarnings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byMonth := make(map[time.Time]*domain.MonthlyEarnings)
	var out []domain.MonthlyEarnings
	for _, e := range m.ledger {
		if e.UserID != userID || e.Type != domain.TransactionCommission || e.CreatedAt.Before(since) {
			continue
		}
		t := e.CreatedAt.UTC()
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		if byMonth[month] == nil {
			byMonth[month] = &domain.MonthlyEarnings{Month: month}
		}
		if *e.Tier == domain.Tier1 {
			byMonth[month].Tier1 += e.Amount
		} else {
			byMonth[month].Tier2 += e.Amount
		}
	}
	for _, m := range byMonth {
		out = append(out, *m)
	}
	return out, nil
}

func (m memLedger) ofType(txType string) []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, e := range m.ledger {
		if e.Type == txType {
			out = append(out, e)
		}
	}
	return out
}

type memWithdrawals struct{ *store }

func (m memWithdrawals) Create(_ context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.ID = len(m.withdrawals) + 1
	cp := *w
	m.withdrawals = append(m.withdrawals, &cp)
	return w, nil
}

func (m memWithdrawals) find(reference string) *domain.Withdrawal {
	for _, w := range m.withdrawals {
		if w.Reference == reference {
			return w
		}
	}
	return nil
}

func (m memWithdrawals) FindByReference(_ context.Context, reference string) (*domain.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w := m.find(reference); w != nil {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (m memWithdrawals) FindByUserID(_ context.Context, userID int) ([]domain.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Withdrawal
	for _, w := range m.withdrawals {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m memWithdrawals) SetTransferCode(_ context.Context, reference, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w := m.find(reference); w != nil {
		w.TransferCode = &code
	}
	return nil
}

func (m memWithdrawals) Transition(_ context.Context, reference string, from []string, to string, reason *string, processedAt *time.Time) (*domain.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.find(reference)
	if w == nil {
		return nil, nil
	}
	if w.Status == to && (reason == nil || w.Reason != nil && *w.Reason == *reason) {
		return nil, nil
	}
	for _, f := range from {
		if w.Status == f {
			w.Status = to
			switch {
			case to == domain.StatusCompleted:
				w.Reason = nil
			case reason != nil:
				w.Reason = reason
			}
			if processedAt != nil {
				w.ProcessedAt = processedAt
			}
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memWithdrawals) SumByUser(_ context.Context, userID int) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var completed, inflight int64
	for _, w := range m.withdrawals {
		if w.UserID != userID {
			continue
		}
		switch w.Status {
		case domain.StatusCompleted:
			completed += w.Amount
		case domain.StatusPending, domain.StatusProcessing:
			inflight += w.Amount
		}
	}
	return completed, inflight, nil
}

type stubPayout struct {
	initErr error
}

func (stubPayout) CreateRecipient(_ context.Context, bank domain.BankDetails) (string, error) {
	return "RCP_" + bank.AccountNumber, nil
}

func (p stubPayout) InitiateTransfer(_ context.Context, _ int64, _, reference, _ string) (string, error) {
	if p.initErr != nil {
		return "", p.initErr
	}
	return "TRF_" + reference, nil
}

type LedgerScenarioSuite struct {
	suite.Suite
	ctx         context.Context
	store       *store
	commissions *commissionservice.Service
	balances    *balanceservice.Service
	withdrawals *withdrawalservice.Service
}

const (
	userQ = iota + 1
	userR
	userA
	userB
)

var bank = domain.BankDetails{BankName: "GTBank", BankCode: "058", AccountNumber: "0123456789", AccountName: "R Test"}

func intPtr(i int) *int { return &i }

func (s *LedgerScenarioSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newStore()
	s.store.addUser(userQ, "Q", nil)
	s.store.addUser(userR, "R", intPtr(userQ))
	s.store.addUser(userA, "A", intPtr(userR))
	s.store.addUser(userB, "B", nil)

	tx := &serialTx{}
	users, referrals, ledger, withdrawals := memUsers{s.store}, memReferrals{s.store}, memLedger{s.store}, memWithdrawals{s.store}
	s.commissions = commissionservice.New(users, referrals, ledger, tx, notify.Noop{}, commissionservice.Rates{
		Tier1: decimal.RequireFromString("0.50"),
		Tier2: decimal.RequireFromString("0.10"),
	})
	s.balances = balanceservice.New(ledger, withdrawals, referrals, users)
	s.withdrawals = withdrawalservice.New(withdrawals, users, ledger, s.balances, stubPayout{}, notify.Noop{}, tx,
		withdrawalservice.Config{MinWithdrawal: 1000000, Timeout: time.Second})
}

func (s *LedgerScenarioSuite) subscribe(userID int, ref string) {
	err := s.commissions.HandlePayment(s.ctx, domain.PaymentEvent{
		Type: domain.PaymentSubscription, UserID: userID, Amount: 5000000, Reference: ref,
	})
	s.Require().NoError(err)
}

func (s *LedgerScenarioSuite) available(userID int) int64 {
	b, err := s.balances.ComputeBalance(s.ctx, userID)
	s.Require().NoError(err)
	return b.Available
}

func (s *LedgerScenarioSuite) TestSignupReplayActivatesOnce() {
	event := domain.PaymentEvent{Type: domain.PaymentSignup, UserID: userA, Amount: 1500000, Reference: "PTX-signup"}
	s.Require().NoError(s.commissions.HandlePayment(s.ctx, event))
	s.Require().NoError(s.commissions.HandlePayment(s.ctx, event))

	s.Len(memLedger{s.store}.ofType(domain.TransactionSubscription), 1)
	edges, _ := memReferrals{s.store}.FindReferrers(s.ctx, userA)
	for _, e := range edges {
		s.Equal(domain.ReferralActive, e.Status)
	}
}

func (s *LedgerScenarioSuite) TestSubscriptionCreditsBothTiers() {
	s.subscribe(userA, "PTX-1")

	commissions := memLedger{s.store}.ofType(domain.TransactionCommission)
	s.Require().Len(commissions, 2)
	byOwner := map[int]domain.Transaction{}
	for _, c := range commissions {
		byOwner[c.UserID] = c
	}
	s.Equal(int64(2500000), byOwner[userR].Amount)
	s.Equal(domain.Tier1, *byOwner[userR].Tier)
	s.Equal(userA, *byOwner[userR].SourceUserID)
	s.Equal(int64(500000), byOwner[userQ].Amount)
	s.Equal(domain.Tier2, *byOwner[userQ].Tier)
	s.Equal(userA, *byOwner[userQ].SourceUserID)

	s.Equal(int64(2500000), s.available(userR))
	s.Equal(int64(500000), s.available(userQ))
}

func (s *LedgerScenarioSuite) TestRedeliveryDoesNotDoubleCredit() {
	s.subscribe(userA, "PTX-1")
	s.subscribe(userA, "PTX-1")

	s.Len(memLedger{s.store}.ofType(domain.TransactionSubscription), 1)
	s.Len(memLedger{s.store}.ofType(domain.TransactionCommission), 2)
	s.Equal(int64(2500000), s.available(userR))
}

func (s *LedgerScenarioSuite) TestNoReferrerNoCommission() {
	s.subscribe(userB, "PTX-B")

	s.Empty(memLedger{s.store}.ofType(domain.TransactionCommission))
}

func (s *LedgerScenarioSuite) TestDashboardReflectsLedger() {
	s.subscribe(userA, "PTX-1")

	d, err := s.balances.GetDashboard(s.ctx, userR)
	s.Require().NoError(err)

	s.Equal(userR, d.User.ID)
	s.Equal(int64(2500000), d.Balance.Available)
	s.Equal(1, d.TotalReferrals)
	s.Require().Len(d.Monthly, 6)
	current := d.Monthly[5]
	s.Equal(int64(2500000), current.Tier1)
	s.Equal(int64(0), current.Tier2)
	s.Equal(time.Now().UTC().Month(), current.Month.Month())
}

func (s *LedgerScenarioSuite) TestWithdrawalAboveAvailableRejected() {
	s.subscribe(userA, "PTX-1")

	w, err := s.withdrawals.RequestWithdrawal(s.ctx, userR, 3000000, bank)

	s.ErrorIs(err, withdrawalservice.ErrInsufficientBalance)
	s.Nil(w)
	s.Empty(s.store.withdrawals)
}

func (s *LedgerScenarioSuite) TestWithdrawalCompletes() {
	s.subscribe(userA, "PTX-1")

	w, err := s.withdrawals.RequestWithdrawal(s.ctx, userR, 2000000, bank)
	s.Require().NoError(err)
	s.Equal(domain.StatusProcessing, w.Status)
	s.Equal(int64(500000), s.available(userR))

	done, err := s.withdrawals.OnTransferOutcome(s.ctx, domain.TransferEvent{Reference: w.Reference, Outcome: domain.TransferSuccess})
	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, done.Status)
	s.NotNil(done.ProcessedAt)
	s.Equal(int64(500000), s.available(userR))

	entries := memLedger{s.store}.ofType(domain.TransactionWithdrawal)
	s.Require().Len(entries, 1)
	s.Equal(domain.StatusCompleted, entries[0].Status)
}

func (s *LedgerScenarioSuite) TestFailedWithdrawalReleasesFunds() {
	s.subscribe(userA, "PTX-1")

	w, err := s.withdrawals.RequestWithdrawal(s.ctx, userR, 2000000, bank)
	s.Require().NoError(err)
	_, err = s.withdrawals.OnTransferOutcome(s.ctx, domain.TransferEvent{Reference: w.Reference, Outcome: domain.TransferFailed})
	s.Require().NoError(err)

	s.Equal(int64(2500000), s.available(userR))
}

func (s *LedgerScenarioSuite) TestLateSuccessAfterTimeoutCompletes() {
	s.subscribe(userA, "PTX-1")
	s.withdrawals = withdrawalservice.New(memWithdrawals{s.store}, memUsers{s.store}, memLedger{s.store}, s.balances,
		stubPayout{initErr: context.DeadlineExceeded}, notify.Noop{}, &serialTx{},
		withdrawalservice.Config{MinWithdrawal: 1000000, Timeout: time.Second})

	w, err := s.withdrawals.RequestWithdrawal(s.ctx, userR, 2000000, bank)
	s.Require().ErrorIs(err, withdrawalservice.ErrPayoutFailed)
	s.Equal(domain.StatusFailed, w.Status)
	s.Equal(int64(2500000), s.available(userR))

	done, err := s.withdrawals.OnTransferOutcome(s.ctx, domain.TransferEvent{Reference: w.Reference, Outcome: domain.TransferSuccess})
	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, done.Status)
	s.Nil(done.Reason)
	s.Equal(int64(500000), s.available(userR))

	_, err = s.withdrawals.RequestWithdrawal(s.ctx, userR, 2000000, bank)
	s.ErrorIs(err, withdrawalservice.ErrInsufficientBalance)

	entries := memLedger{s.store}.ofType(domain.TransactionWithdrawal)
	s.Require().Len(entries, 1)
	s.Equal(domain.StatusCompleted, entries[0].Status)
}

func (s *LedgerScenarioSuite) TestConcurrentWithdrawalsSerialize() {
	s.subscribe(userA, "PTX-1")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.withdrawals.RequestWithdrawal(s.ctx, userR, 2000000, bank); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, granted)
}

func TestLedgerScenarioSuite(t *testing.T) {
	suite.Run(t, new(LedgerScenarioSuite))
}

// For any interleaving of payments, withdrawal requests and transfer
// outcomes, money out never exceeds completed commissions.
func TestWithdrawalsNeverExceedEarnings(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(seed))
			s := new(LedgerScenarioSuite)
			s.SetT(t)
			s.SetupTest()

			var open []string
			for step := 0; step < 60; step++ {
				switch rnd.Intn(3) {
				case 0:
					payer := []int{userA, userR, userB}[rnd.Intn(3)]
					// occasional replays of an earlier reference
					ref := fmt.Sprintf("PTX-%d", rnd.Intn(step+1))
					require.NoError(t, s.commissions.HandlePayment(ctx, domain.PaymentEvent{
						Type: domain.PaymentSubscription, UserID: payer, Amount: 5000000, Reference: ref,
					}))
				case 1:
					owner := []int{userQ, userR}[rnd.Intn(2)]
					amount := int64(1000000 + rnd.Intn(3000000))
					w, err := s.withdrawals.RequestWithdrawal(ctx, owner, amount, bank)
					if err != nil {
						require.ErrorIs(t, err, withdrawalservice.ErrInsufficientBalance)
						continue
					}
					open = append(open, w.Reference)
				case 2:
					if len(open) == 0 {
						continue
					}
					i := rnd.Intn(len(open))
					outcome := []domain.TransferOutcome{domain.TransferSuccess, domain.TransferFailed, domain.TransferReversed}[rnd.Intn(3)]
					_, err := s.withdrawals.OnTransferOutcome(ctx, domain.TransferEvent{Reference: open[i], Outcome: outcome})
					require.NoError(t, err)
					// the provider settles each transfer once
					if outcome != domain.TransferSuccess {
						open = append(open[:i], open[i+1:]...)
					}
				}

				for _, owner := range []int{userQ, userR} {
					t1, t2, _ := memLedger{s.store}.SumCommissions(ctx, owner)
					completed, inflight, _ := memWithdrawals{s.store}.SumByUser(ctx, owner)
					assert.LessOrEqual(t, completed+inflight, t1+t2, "user %d at step %d", owner, step)
				}
			}
		})
	}
}

package reconcile

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockWithdrawalRepo, *MockTransferVerifier, *MockOutcomeHandler) {
	ctrl := gomock.NewController(t)
	repo := NewMockWithdrawalRepo(ctrl)
	verifier := NewMockTransferVerifier(ctrl)
	outcomes := NewMockOutcomeHandler(ctrl)

	service := New(repo, verifier, outcomes, Config{Interval: 10 * time.Millisecond, After: 30 * time.Minute, Workers: 2})
	service.now = func() time.Time { return fixedNow }
	t.Cleanup(service.workerPool.Close)
	return service, repo, verifier, outcomes
}

func TestService_Start(t *testing.T) {
	service, repo, _, _ := NewMock(t)
	repo.EXPECT().FindUnsettled(gomock.Any(), fixedNow.Add(-30*time.Minute), 100).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
}

func TestService_sweep(t *testing.T) {
	ctx := context.Background()
	before := fixedNow.Add(-30 * time.Minute)

	tests := []struct {
		name        string
		prepareMock func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler)
	}{
		{
			name: "Terminal outcomes are applied, pending ones left alone",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return([]domain.Withdrawal{
					{Reference: "wth-1"}, {Reference: "wth-2"}, {Reference: "wth-3"},
				}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-1").Return(&paystack.Transfer{Status: "success"}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-2").Return(&paystack.Transfer{Status: "pending"}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-3").Return(&paystack.Transfer{Status: "reversed"}, nil)
				outcomes.EXPECT().OnTransferOutcome(ctx, domain.TransferEvent{Reference: "wth-1", Outcome: domain.TransferSuccess}).
					Return(&domain.Withdrawal{Status: domain.StatusCompleted}, nil)
				outcomes.EXPECT().OnTransferOutcome(ctx, domain.TransferEvent{Reference: "wth-3", Outcome: domain.TransferReversed}).
					Return(&domain.Withdrawal{Status: domain.StatusFailed}, nil)
			},
		},
		{
			name: "Transfer unknown to the provider fails the withdrawal",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return([]domain.Withdrawal{{Reference: "wth-4"}}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-4").
					Return(nil, &paystack.APIError{StatusCode: http.StatusNotFound, Message: "Transfer not found"})
				outcomes.EXPECT().OnTransferOutcome(ctx, domain.TransferEvent{
					Reference: "wth-4", Outcome: domain.TransferFailed, Reason: notFoundReason,
				}).Return(&domain.Withdrawal{Status: domain.StatusFailed}, nil)
			},
		},
		{
			name: "Provider failure reason is passed on",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return([]domain.Withdrawal{{Reference: "wth-6", Status: domain.StatusProcessing}}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-6").
					Return(&paystack.Transfer{Status: "failed", GatewayResponse: "Account closed"}, nil)
				outcomes.EXPECT().OnTransferOutcome(ctx, domain.TransferEvent{
					Reference: "wth-6", Outcome: domain.TransferFailed, Reason: "Account closed",
				}).Return(&domain.Withdrawal{Status: domain.StatusFailed}, nil)
			},
		},
		{
			name: "Timed out initiation paid by the provider completes",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return([]domain.Withdrawal{{Reference: "wth-7", Status: domain.StatusFailed}}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-7").Return(&paystack.Transfer{Status: "success"}, nil)
				outcomes.EXPECT().OnTransferOutcome(ctx, domain.TransferEvent{Reference: "wth-7", Outcome: domain.TransferSuccess}).
					Return(&domain.Withdrawal{Status: domain.StatusCompleted}, nil)
			},
		},
		{
			name: "Failed withdrawal unknown to the provider stays failed",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return([]domain.Withdrawal{
					{Reference: "wth-8", Status: domain.StatusFailed}, {Reference: "wth-9", Status: domain.StatusFailed},
				}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-8").
					Return(nil, &paystack.APIError{StatusCode: http.StatusNotFound, Message: "Transfer not found"})
				verifier.EXPECT().VerifyTransfer(ctx, "wth-9").Return(&paystack.Transfer{Status: "failed"}, nil)
			},
		},
		{
			name: "Provider outage leaves the withdrawal for the next sweep",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return([]domain.Withdrawal{{Reference: "wth-5"}}, nil)
				verifier.EXPECT().VerifyTransfer(ctx, "wth-5").Return(nil, errors.New("connection reset"))
			},
		},
		{
			name: "Repository error",
			prepareMock: func(repo *MockWithdrawalRepo, verifier *MockTransferVerifier, outcomes *MockOutcomeHandler) {
				repo.EXPECT().FindUnsettled(ctx, before, 100).Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, verifier, outcomes := NewMock(t)
			tt.prepareMock(repo, verifier, outcomes)

			service.sweep(ctx)
		})
	}
}

func TestService_sweepSkipsInFlight(t *testing.T) {
	ctx := context.Background()
	service, repo, verifier, outcomes := NewMock(t)
	service.inFlight.Store("wth-1", struct{}{})

	repo.EXPECT().FindUnsettled(ctx, gomock.Any(), 100).Return([]domain.Withdrawal{{Reference: "wth-1"}, {Reference: "wth-2"}}, nil)
	verifier.EXPECT().VerifyTransfer(ctx, "wth-2").Return(&paystack.Transfer{Status: "failed"}, nil)
	outcomes.EXPECT().OnTransferOutcome(ctx, domain.TransferEvent{Reference: "wth-2", Outcome: domain.TransferFailed}).
		Return(&domain.Withdrawal{Status: domain.StatusFailed}, nil)

	service.sweep(ctx)

	_, stillHeld := service.inFlight.Load("wth-1")
	_, released := service.inFlight.Load("wth-2")
	assert.True(t, stillHeld)
	assert.False(t, released)
}

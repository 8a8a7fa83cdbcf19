package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/dto"
	"github.com/GlebRadaev/affiliate/internal/service/balanceservice"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().
					ComputeBalance(ctx, 1).
					Return(&domain.Balance{
						Earned:     3000000,
						Tier1:      2500000,
						Tier2:      500000,
						Withdrawn:  2000000,
						PendingOut: 50,
						Available:  999950,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{
				"totalEarnings":      "30000",
				"tier1Earnings":      "25000",
				"tier2Earnings":      "5000",
				"totalWithdrawn":     "20000",
				"pendingWithdrawals": "0.5",
				"availableBalance":   "9999.5",
			},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().
					ComputeBalance(ctx, 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/balance", nil)
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()
			handler.GetBalance(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body map[string]string
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestGetDashboardHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tier := domain.Tier1
	ref := "PTX-1"
	telegramID := int64(42)
	bank := domain.BankDetails{BankName: "GTBank", BankCode: "058", AccountNumber: "0123456789", AccountName: "Remi R"}

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		check        func(t *testing.T, body dto.DashboardResponseDTO)
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().
					GetDashboard(ctx, 1).
					Return(&domain.Dashboard{
						User: domain.User{
							FirstName:    "Remi",
							LastName:     "R",
							Email:        "remi@example.com",
							ReferralCode: "0B4D11EF",
							TelegramID:   &telegramID,
							Bank:         &bank,
						},
						Balance:         domain.Balance{Earned: 2500000, Tier1: 2500000, Available: 2500000},
						ActiveReferrals: 1,
						TotalReferrals:  1,
						Monthly: []domain.MonthlyEarnings{
							{Month: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
							{Month: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Tier1: 2500000},
						},
						Referrals: []domain.ReferralSummary{{
							Referral: domain.Referral{
								ReferredUserID: 2,
								Tier:           domain.Tier1,
								Status:         domain.ReferralActive,
								ReferredName:   "Tolu Ade",
								ReferredEmail:  "tolu@example.com",
								CreatedAt:      now,
							},
							Earnings: 2500000,
						}},
						Transactions: []domain.Transaction{{
							Type:             domain.TransactionCommission,
							Amount:           2500000,
							Status:           domain.StatusCompleted,
							Tier:             &tier,
							PaymentReference: &ref,
							CreatedAt:        now,
						}},
					}, nil)
			},
			expectedCode: http.StatusOK,
			check: func(t *testing.T, body dto.DashboardResponseDTO) {
				assert.Equal(t, "25000", body.AvailableBalance.String())
				assert.Equal(t, "25000", body.TotalEarnings.String())
				assert.Equal(t, "Remi R", body.User.Name)
				assert.Equal(t, "0B4D11EF", body.User.ReferralCode)
				assert.True(t, body.User.TelegramLinked)
				if assert.NotNil(t, body.User.BankDetails) {
					assert.Equal(t, "0123456789", body.User.BankDetails.AccountNumber)
				}
				assert.Equal(t, 1, body.ActiveReferrals)
				assert.Equal(t, 1, body.TotalReferrals)
				if assert.Len(t, body.ChartData, 2) {
					assert.Equal(t, "2024-05", body.ChartData[1].Month)
					assert.Equal(t, "25000", body.ChartData[1].Tier1.String())
				}
				if assert.Len(t, body.ReferralList, 1) {
					assert.Equal(t, "Tolu Ade", body.ReferralList[0].Name)
					assert.Equal(t, "25000", body.ReferralList[0].Earnings.String())
				}
				if assert.Len(t, body.TransactionHistory, 1) {
					assert.Equal(t, &ref, body.TransactionHistory[0].Reference)
					assert.Equal(t, &tier, body.TransactionHistory[0].Tier)
				}
				assert.Empty(t, body.WithdrawalHistory)
			},
		},
		{
			name: "User no longer exists",
			prepareMock: func() {
				service.EXPECT().GetDashboard(ctx, 1).Return(nil, balanceservice.ErrUserNotFound)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetDashboard(ctx, 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()
			handler.GetDashboard(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.check != nil {
				var body dto.DashboardResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				tt.check(t, body)
			}
		})
	}
}

func TestGetDashboardHandler_ResponseKeys(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	service.EXPECT().GetDashboard(ctx, 1).Return(&domain.Dashboard{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.GetDashboard(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	for _, key := range []string{
		"totalEarnings", "tier1Earnings", "tier2Earnings", "availableBalance", "totalWithdrawn",
		"pendingWithdrawals", "referralList", "transactionHistory", "withdrawalHistory",
		"user", "activeReferrals", "totalReferrals", "chartData",
	} {
		assert.Contains(t, body, key)
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	now := time.Now()

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(ctx, 1).
					Return([]domain.Withdrawal{
						{
							Reference: "wth-1",
							Amount:    2000000,
							Status:    domain.StatusCompleted,
							Bank:      domain.BankDetails{BankName: "GTBank", AccountNumber: "0123456789"},
							CreatedAt: now,
						},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "No withdrawals",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(ctx, 1).Return([]domain.Withdrawal{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(ctx, 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/withdrawals", nil)
			r = r.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.GetWithdrawals(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.WithdrawalDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
				assert.Equal(t, "wth-1", body[0].Reference)
				assert.Equal(t, "20000", body[0].Amount.String())
				assert.Equal(t, domain.StatusCompleted, body[0].Status)
			}
		})
	}
}

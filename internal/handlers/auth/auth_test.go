package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/affiliate/internal/domain"
	"github.com/GlebRadaev/affiliate/internal/dto"
	"github.com/GlebRadaev/affiliate/internal/service/authservice"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/GlebRadaev/affiliate/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	in := authservice.RegisterInput{
		Email:        "ada@example.com",
		Password:     "password123",
		FirstName:    "Ada",
		LastName:     "Obi",
		ReferralCode: "7F3A9C21",
	}
	body := `{"email":"ada@example.com","password":"password123","firstName":"Ada","lastName":"Obi","referralCode":"7F3A9C21"}`

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedError   string
		expectedRefCode string
	}{
		{
			name: "Successful registration",
			body: body,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), in).Return(&domain.User{
					ID:           1,
					Email:        "ada@example.com",
					ReferralCode: "0B4D11EF",
				}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedRefCode: "0B4D11EF",
		},
		{
			name: "Email already registered",
			body: body,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), in).Return(nil, domain.ErrEmailTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: domain.ErrEmailTaken.Error(),
		},
		{
			name: "Missing fields",
			body: `{"email":"ada@example.com"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(context.Background(), authservice.RegisterInput{Email: "ada@example.com"}).
					Return(nil, authservice.ErrInvalidInput)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: authservice.ErrInvalidInput.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Storage failure",
			body: body,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), in).Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.RegisterResponseDTO
			err := json.NewDecoder(rr.Body).Decode(&resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRefCode, resp.ReferralCode)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"email":"ada@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "ada@example.com", "password123").
					Return(&domain.User{ID: 1, Email: "ada@example.com", IsActive: true}, nil)

				service.EXPECT().
					GenerateToken(1).
					Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"email":"ada@example.com","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "ada@example.com", "wrongpassword").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name: "Account not activated",
			body: `{"email":"ada@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "ada@example.com", "password123").
					Return(nil, authservice.ErrNotActivated)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: authservice.ErrNotActivated.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"email":"ada@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "ada@example.com", "password123").
					Return(&domain.User{ID: 1, IsActive: true}, nil)

				service.EXPECT().
					GenerateToken(1).
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
		})
	}
}

func TestUpdateSettingsHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 1)
	chatID := int64(555)
	bank := &domain.BankDetails{
		BankName:      "GTBank",
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ada Obi",
	}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.SettingsResponseDTO
	}{
		{
			name: "Bank details saved",
			body: `{"bankName":"GTBank","bankCode":"058","accountNumber":"0123456789","accountName":"Ada Obi"}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateSettings(ctx, 1, authservice.SettingsInput{Bank: bank}).
					Return(&domain.User{ID: 1, Bank: bank}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.SettingsResponseDTO{
				BankName:      "GTBank",
				BankCode:      "058",
				AccountNumber: "0123456789",
				AccountName:   "Ada Obi",
			},
		},
		{
			name: "Telegram linked",
			body: `{"telegramId":555}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateSettings(ctx, 1, authservice.SettingsInput{TelegramID: &chatID}).
					Return(&domain.User{ID: 1, TelegramID: &chatID}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.SettingsResponseDTO{TelegramID: &chatID},
		},
		{
			name: "Incomplete bank details",
			body: `{"bankName":"GTBank"}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateSettings(ctx, 1, authservice.SettingsInput{Bank: &domain.BankDetails{BankName: "GTBank"}}).
					Return(nil, authservice.ErrIncompleteBank)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: authservice.ErrIncompleteBank.Error(),
		},
		{
			name:          "Nothing to update",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Nothing to update",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Internal server error",
			body: `{"telegramId":555}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateSettings(ctx, 1, authservice.SettingsInput{TelegramID: &chatID}).
					Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("PUT", "/api/user/settings", bytes.NewReader([]byte(tt.body))).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.UpdateSettings(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.SettingsResponseDTO
			err := json.NewDecoder(rr.Body).Decode(&resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*models.User, bool, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func newNoopLoggerAuth() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	validUser := &models.User{
		UID:      "user123",
		Email:    "john.doe@mcneese.edu",
		UserType: "student",
	}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*MockAuthService)
		expectedStatus int
		expectedBody   string
		expectedCtx    map[Key]any
	}{
		{
			name:       "success - valid token",
			authHeader: "Bearer valid_token_123",
			setupMocks: func(as *MockAuthService) {
				as.On("ValidateToken", mock.Anything, "valid_token_123").
					Return(validUser, true, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCtx: map[Key]any{
				User:     "john.doe@mcneese.edu",
				UserUID:  "user123",
				UserType: "student",
			},
		},
		{
			name:           "missing authorization header",
			authHeader:     "",
			setupMocks:     func(*MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
		{
			name:           "invalid authorization header format",
			authHeader:     "InvalidFormat token123",
			setupMocks:     func(*MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid_token",
			setupMocks: func(as *MockAuthService) {
				as.On("ValidateToken", mock.Anything, "invalid_token").
					Return(nil, false, assert.AnError).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid or expired token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			middleware := JWTMiddleware(newNoopLoggerAuth(), authService)

			tt.setupMocks(authService)

			var capturedCtx context.Context
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedCtx = r.Context()
				w.WriteHeader(http.StatusOK)
				if _, err := w.Write([]byte("success")); err != nil {
					t.Errorf("failed to write response: %v", err)
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()

			middleware(testHandler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK && tt.expectedCtx != nil {
				assert.NotNil(t, capturedCtx)
				for key, expectedValue := range tt.expectedCtx {
					assert.Equal(t, expectedValue, capturedCtx.Value(key))
				}
			}

			authService.AssertExpectations(t)
		})
	}
}

func TestJWTMiddleware_EmptyToken(t *testing.T) {
	authService := new(MockAuthService)
	middleware := JWTMiddleware(newNoopLoggerAuth(), authService)

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("Handler should not be called for invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer")

	w := httptest.NewRecorder()

	middleware(testHandler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"missing or invalid authorization header"}`, w.Body.String())

	authService.AssertExpectations(t)
}

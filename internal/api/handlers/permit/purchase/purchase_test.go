package purchase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/parking-permits/internal/api/middlewarectx"
	"github.com/magabrotheeeer/parking-permits/internal/models"
	permitservice "github.com/magabrotheeeer/parking-permits/internal/services/permit"
)

// MockService реализует интерфейс purchase.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, userUID string, req models.DummyPurchase) (*models.PurchaseConfirmation, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseConfirmation), args.Error(1)
}

func validPurchase() models.DummyPurchase {
	return models.DummyPurchase{
		FullName:     "John Doe",
		StudentID:    "S1234567",
		VehicleMake:  "Toyota",
		LicensePlate: "ABC123",
		Category:     "semester",
		Price:        75,
		CardNumber:   "4111111111111234",
	}
}

func TestPurchaseHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	purchaseDate := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	confirmation := &models.PurchaseConfirmation{
		PermitID:      "PMT-A1B2C3D4",
		TransactionID: "TXN-A1B2C3D4E5F6",
		FullName:      "John Doe",
		StudentID:     "S1234567",
		VehicleMake:   "Toyota",
		LicensePlate:  "ABC123",
		Category:      "semester",
		Price:         75,
		PurchaseDate:  purchaseDate,
		ExpiryDate:    purchaseDate.AddDate(0, 4, 0),
	}
	successBody, err := json.Marshal(map[string]any{
		"status": "OK",
		"data":   confirmation,
	})
	require.NoError(t, err)

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная покупка разрешения",
			requestBody: validPurchase(),
			userUID:     "user123",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "user123", mock.AnythingOfType("models.DummyPurchase")).
					Return(confirmation, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   string(successBody),
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			userUID:        "user123",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "невалидные данные",
			requestBody:    models.DummyPurchase{},
			userUID:        "user123",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field FullName is a required field, field StudentID is a required field, field VehicleMake is a required field, field LicensePlate is a required field, field Category is a required field, field Price is a required field, field CardNumber is a required field"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validPurchase(),
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"user identification missing"}`,
		},
		{
			name: "номер карты не из 16 цифр",
			requestBody: func() models.DummyPurchase {
				req := validPurchase()
				req.CardNumber = "4111 1111 1111"
				return req
			}(),
			userUID:        "user123",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"card number must be 16 digits"}`,
		},
		{
			name: "пробельные обязательные поля",
			requestBody: func() models.DummyPurchase {
				req := validPurchase()
				req.FullName = "   "
				return req
			}(),
			userUID: "user123",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "user123", mock.AnythingOfType("models.DummyPurchase")).
					Return(nil, permitservice.ErrBlankField)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"required fields must not be blank"}`,
		},
		{
			name:        "некорректный номер карты",
			requestBody: validPurchase(),
			userUID:     "user123",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "user123", mock.AnythingOfType("models.DummyPurchase")).
					Return(nil, permitservice.ErrInvalidCard)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"invalid card number"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validPurchase(),
			userUID:     "user123",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "user123", mock.AnythingOfType("models.DummyPurchase")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to purchase permit"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/permits", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := req.Context()
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

package checkoutsuccess

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CheckoutSuccess(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckoutSuccessHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setup          func(m *ServiceMock)
		wantStatusCode int
		wantOrderID    string
	}{
		{
			name:        "paid session creates order",
			requestBody: Request{SessionID: "cs_test_1"},
			setup: func(m *ServiceMock) {
				m.On("CheckoutSuccess", mock.Anything, "cs_test_1").
					Return("order-uid", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantOrderID:    "order-uid",
		},
		{
			name:        "unpaid session rejected",
			requestBody: Request{SessionID: "cs_test_2"},
			setup: func(m *ServiceMock) {
				m.On("CheckoutSuccess", mock.Anything, "cs_test_2").
					Return("", errs.ErrInvalid).Once()
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "unknown session",
			requestBody: Request{SessionID: "cs_missing"},
			setup: func(m *ServiceMock) {
				m.On("CheckoutSuccess", mock.Anything, "cs_missing").
					Return("", errs.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:        "gateway unavailable",
			requestBody: Request{SessionID: "cs_test_3"},
			setup: func(m *ServiceMock) {
				m.On("CheckoutSuccess", mock.Anything, "cs_test_3").
					Return("", errs.ErrUpstream).Once()
			},
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:           "missing session id",
			requestBody:    map[string]any{},
			setup:          func(m *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setup(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			bodyBytes, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/payments/checkout-success", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantOrderID != "" {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantOrderID, data["orderId"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}

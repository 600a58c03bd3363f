package checkoutcreate

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
	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
	services "github.com/magabrotheeeer/ecommerce-store/internal/services/payment"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) CreateCheckoutSession(ctx context.Context, user *models.User,
	products []services.CheckoutProduct, couponCode string) (*services.CheckoutResult, error) {
	args := m.Called(ctx, user, products, couponCode)
	result, _ := args.Get(0).(*services.CheckoutResult)
	return result, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckoutCreateHandler_ServeHTTP(t *testing.T) {
	user := &models.User{UID: "uid-1", Role: models.RoleCustomer}
	products := []services.CheckoutProduct{
		{ProductUID: "p-1", Name: "Shirt", Price: 49.99, Quantity: 2},
	}

	tests := []struct {
		name           string
		withUser       bool
		requestBody    any
		setup          func(m *ServiceMock)
		wantStatusCode int
		wantSessionID  string
	}{
		{
			name:        "session created",
			withUser:    true,
			requestBody: Request{Products: products},
			setup: func(m *ServiceMock) {
				m.On("CreateCheckoutSession", mock.Anything, user, products, "").
					Return(&services.CheckoutResult{
						SessionID:   "cs_test_1",
						URL:         "https://checkout.example/cs_test_1",
						TotalAmount: 99.98,
					}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantSessionID:  "cs_test_1",
		},
		{
			name:           "no user in context",
			withUser:       false,
			requestBody:    Request{Products: products},
			setup:          func(m *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:        "empty product list",
			withUser:    true,
			requestBody: Request{},
			setup: func(m *ServiceMock) {
				m.On("CreateCheckoutSession", mock.Anything, user,
					[]services.CheckoutProduct(nil), "").
					Return(nil, errs.ErrInvalid).Once()
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setup(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			bodyBytes, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/payments/create-checkout-session", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.User, user)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantSessionID != "" {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantSessionID, data["sessionId"])
				assert.Equal(t, "https://checkout.example/cs_test_1", data["url"])
				assert.InDelta(t, 99.98, data["totalAmount"], 0.001)
			}
			serviceMock.AssertExpectations(t)
		})
	}
}

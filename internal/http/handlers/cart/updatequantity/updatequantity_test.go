package updatequantity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateQuantity(ctx context.Context, userUID, productUID string, quantity int) error {
	args := m.Called(ctx, userUID, productUID, quantity)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func intPtr(v int) *int { return &v }

func TestUpdateQuantityHandler_ServeHTTP(t *testing.T) {
	user := &models.User{UID: "user-1", Role: models.RoleCustomer}

	tests := []struct {
		name           string
		requestBody    any
		withUser       bool
		setup          func(m *ServiceMock)
		wantStatusCode int
	}{
		{
			name:        "positive quantity added",
			requestBody: Request{Quantity: intPtr(3)},
			withUser:    true,
			setup: func(m *ServiceMock) {
				m.On("UpdateQuantity", mock.Anything, "user-1", "prod-1", 3).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "zero quantity removes item",
			requestBody: Request{Quantity: intPtr(0)},
			withUser:    true,
			setup: func(m *ServiceMock) {
				m.On("UpdateQuantity", mock.Anything, "user-1", "prod-1", 0).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing quantity field",
			requestBody:    map[string]any{},
			withUser:       true,
			setup:          func(m *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:        "item not in cart",
			requestBody: Request{Quantity: intPtr(2)},
			withUser:    true,
			setup: func(m *ServiceMock) {
				m.On("UpdateQuantity", mock.Anything, "user-1", "prod-1", 2).
					Return(errs.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "no user in context",
			requestBody:    Request{Quantity: intPtr(1)},
			setup:          func(m *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setup(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			bodyBytes, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPatch, "/cart/prod-1", bytes.NewReader(bodyBytes))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("productId", "prod-1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.User, user)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			serviceMock.AssertExpectations(t)
		})
	}
}

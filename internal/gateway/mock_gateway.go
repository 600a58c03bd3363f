// Мок платежного шлюза для тестов и локальной разработки без ключей Stripe.
package gateway

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
)

// MockGateway хранит созданные сессии в памяти. Статус оплаты можно
// переключать из теста через MarkPaid.
type MockGateway struct {
	mu       sync.Mutex
	sessions map[string]*CheckoutSession
}

// NewMockGateway создает пустой мок-шлюз.
func NewMockGateway() *MockGateway {
	return &MockGateway{sessions: make(map[string]*CheckoutSession)}
}

// CreateCheckoutSession создает сессию в памяти со статусом "unpaid".
// Итог считается по строкам со скидкой, как это делает Stripe.
func (g *MockGateway) CreateCheckoutSession(_ context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var total int64
	for _, line := range p.Lines {
		total += line.UnitAmount * line.Quantity
	}
	if p.DiscountPercentage > 0 {
		total -= int64(math.Round(float64(total) * float64(p.DiscountPercentage) / 100))
	}

	metadata := make(map[string]string, len(p.Metadata))
	for k, v := range p.Metadata {
		metadata[k] = v
	}

	sess := &CheckoutSession{
		ID:            "cs_test_" + uuid.New().String(),
		URL:           p.SuccessURL,
		AmountTotal:   total,
		PaymentStatus: "unpaid",
		Metadata:      metadata,
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

// RetrieveCheckoutSession возвращает сессию из памяти.
func (g *MockGateway) RetrieveCheckoutSession(_ context.Context, sessionID string) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("gateway.mock.RetrieveCheckoutSession: %w", errs.ErrNotFound)
	}
	copied := *sess
	return &copied, nil
}

// MarkPaid помечает сессию оплаченной.
func (g *MockGateway) MarkPaid(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sess, ok := g.sessions[sessionID]; ok {
		sess.PaymentStatus = PaymentStatusPaid
	}
}

// Package gateway определяет контракт платежного шлюза и его реализации.
//
// Приложение работает со шлюзом как с внешним сервисом с простым
// request/response контрактом: создать checkout-сессию, получить сессию
// по идентификатору. Реализации: Stripe и мок для тестов.
package gateway

import "context"

// PaymentStatusPaid — статус оплаченной сессии. Только при этом статусе
// создается заказ.
const PaymentStatusPaid = "paid"

// CheckoutLine — строка оплаты: товар, цена в минорных единицах, количество.
type CheckoutLine struct {
	Name       string
	Image      string
	UnitAmount int64 // цена за единицу в минорных единицах валюты
	Quantity   int64
}

// CreateSessionParams — параметры создания checkout-сессии.
type CreateSessionParams struct {
	Lines              []CheckoutLine
	SuccessURL         string
	CancelURL          string
	DiscountPercentage int // 0 — без скидки; иначе создается одноразовый купон шлюза
	Metadata           map[string]string
}

// CheckoutSession — ответ шлюза по checkout-сессии.
type CheckoutSession struct {
	ID            string
	URL           string
	AmountTotal   int64 // итог в минорных единицах, со скидкой
	PaymentStatus string
	Metadata      map[string]string
}

// Gateway описывает операции платежного шлюза, используемые приложением.
type Gateway interface {
	// CreateCheckoutSession создает одноразовую платежную сессию.
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	// RetrieveCheckoutSession возвращает сессию по идентификатору.
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

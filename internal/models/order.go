// Package models содержит доменную модель заказа.
package models

import "time"

// OrderItem — строка заказа с зафиксированной на момент покупки ценой.
type OrderItem struct {
	ProductUID string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order представляет оплаченный заказ пользователя.
// Заказ создается только после подтверждения оплаты платежным шлюзом,
// из подписанных метаданных сессии, а не из данных клиента.
type Order struct {
	UID             string      `json:"id"`
	UserUID         string      `json:"userId"`
	Items           []OrderItem `json:"products"`
	TotalAmount     float64     `json:"totalAmount"`
	StripeSessionID string      `json:"stripeSessionId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

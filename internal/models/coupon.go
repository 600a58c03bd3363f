// Package models содержит доменную модель купона на скидку.
package models

import "time"

// Coupon представляет персональный купон пользователя.
// У пользователя может быть не более одного купона; выдача нового
// заменяет предыдущий. Купон деактивируется при использовании
// или при обнаружении истекшего срока действия.
type Coupon struct {
	UID                string    `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discountPercentage"`
	IsActive           bool      `json:"isActive"`
	ExpirationDate     time.Time `json:"expirationDate"`
	UserUID            string    `json:"userId"`
	CreatedAt          time.Time `json:"createdAt"`
}

// IsExpired сообщает, истек ли срок действия купона на момент now.
func (c Coupon) IsExpired(now time.Time) bool {
	return !c.ExpirationDate.After(now)
}

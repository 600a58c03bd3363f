// Package models содержит доменную модель пользователя магазина:
// данные учётной записи, хэш пароля и роль.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User представляет зарегистрированного пользователя магазина.
type User struct {
	UID          string    `json:"id"`    // Уникальный идентификатор пользователя
	Name         string    `json:"name"`  // Имя пользователя
	Email        string    `json:"email"` // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash string    `json:"-"`     // Хэш пароля, наружу не отдается
	Role         string    `json:"role"`  // Роль пользователя, customer или admin
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitized возвращает копию пользователя без хэша пароля.
// Используется перед помещением пользователя в контекст запроса и в ответы API.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// CartProduct — товар, дополненный количеством из корзины пользователя.
type CartProduct struct {
	Product
	Quantity int `json:"quantity"`
}

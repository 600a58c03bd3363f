// Package models содержит доменные структуры каталога товаров.
package models

import "time"

// Product представляет товар каталога.
// Цена хранится в основных единицах валюты, пересчет в минорные единицы
// выполняется только при создании платежной сессии.
type Product struct {
	UID         string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

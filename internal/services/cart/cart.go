// Package services содержит логику корзины покупателя.
//
// Каждая мутация корзины выполняется одним атомарным оператором
// хранилища, поэтому конкурентные запросы одного пользователя
// не теряют обновления.
package services

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// CartRepository описывает контракт для работы с корзиной в базе данных.
type CartRepository interface {
	AddCartItem(ctx context.Context, userUID, productUID string) error
	IncrementCartItemQuantity(ctx context.Context, userUID, productUID string, delta int) error
	RemoveCartItem(ctx context.Context, userUID, productUID string) error
	ClearCart(ctx context.Context, userUID string) error
	ListCartProducts(ctx context.Context, userUID string) ([]*models.CartProduct, error)
}

// ProductGetter возвращает товар по UID; нужен для проверки
// существования товара перед добавлением в корзину.
type ProductGetter interface {
	GetProduct(ctx context.Context, productUID string) (*models.Product, error)
}

// CartService отвечает за корзину пользователя.
type CartService struct {
	cart     CartRepository
	products ProductGetter
}

// NewCartService создает новый экземпляр CartService.
func NewCartService(cart CartRepository, products ProductGetter) *CartService {
	return &CartService{cart: cart, products: products}
}

// List возвращает товары корзины пользователя вместе с количеством.
func (s *CartService) List(ctx context.Context, userUID string) ([]*models.CartProduct, error) {
	const op = "services.cart.List"
	result, err := s.cart.ListCartProducts(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddItem добавляет товар в корзину; повторное добавление
// увеличивает количество существующей позиции на единицу.
// Неизвестный товар — errs.ErrNotFound.
func (s *CartService) AddItem(ctx context.Context, userUID, productUID string) error {
	const op = "services.cart.AddItem"

	if _, err := s.products.GetProduct(ctx, productUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cart.AddCartItem(ctx, userUID, productUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateQuantity меняет количество позиции: ноль удаляет позицию,
// положительное значение атомарно прибавляется к сохраненному количеству.
// Отрицательное значение — errs.ErrInvalid, отсутствующая позиция —
// errs.ErrNotFound.
func (s *CartService) UpdateQuantity(ctx context.Context, userUID, productUID string, quantity int) error {
	const op = "services.cart.UpdateQuantity"

	switch {
	case quantity < 0:
		return fmt.Errorf("%s: %w", op, errs.ErrInvalid)
	case quantity == 0:
		if err := s.cart.RemoveCartItem(ctx, userUID, productUID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	default:
		if err := s.cart.IncrementCartItemQuantity(ctx, userUID, productUID, quantity); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// RemoveItem удаляет позицию из корзины.
func (s *CartService) RemoveItem(ctx context.Context, userUID, productUID string) error {
	const op = "services.cart.RemoveItem"
	if err := s.cart.RemoveCartItem(ctx, userUID, productUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет все позиции корзины пользователя.
func (s *CartService) Clear(ctx context.Context, userUID string) error {
	const op = "services.cart.Clear"
	if err := s.cart.ClearCart(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Package services содержит логику оформления заказа: создание
// checkout-сессии в платежном шлюзе, применение купонов и создание
// заказа после подтвержденной оплаты.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
	"github.com/magabrotheeeer/ecommerce-store/internal/gateway"
	"github.com/magabrotheeeer/ecommerce-store/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-store/internal/metrics"
	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// Порог суммы заказа в минорных единицах, с которого пользователю
// выдается подарочный купон на следующую покупку.
const giftCouponThreshold = 20000

const (
	giftCouponDiscount = 10
	giftCouponTTL      = 30 * 24 * time.Hour
)

// CouponRepository описывает операции с купонами, нужные оплате.
type CouponRepository interface {
	CreateCoupon(ctx context.Context, c models.Coupon) (string, error)
	FindActiveCoupon(ctx context.Context, code, userUID string) (*models.Coupon, error)
	DeactivateCoupon(ctx context.Context, code, userUID string) error
}

// OrderRepository сохраняет заказы после успешной оплаты.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (string, error)
}

// OrderEventPublisher публикует событие о созданном заказе в брокер.
type OrderEventPublisher interface {
	PublishOrderCreated(event any) error
}

// CheckoutProduct — позиция заказа, переданная клиентом при оформлении.
type CheckoutProduct struct {
	ProductUID string  `json:"id"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// CheckoutResult — результат создания checkout-сессии.
type CheckoutResult struct {
	SessionID   string
	URL         string
	TotalAmount float64 // итог в мажорных единицах, со скидкой
}

// OrderCreatedEvent — событие успешной оплаты для внешних потребителей.
type OrderCreatedEvent struct {
	OrderUID        string    `json:"orderUid"`
	UserUID         string    `json:"userUid"`
	TotalAmount     float64   `json:"totalAmount"`
	StripeSessionID string    `json:"stripeSessionId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PaymentService отвечает за оформление и подтверждение оплаты заказа.
type PaymentService struct {
	gateway   gateway.Gateway
	coupons   CouponRepository
	orders    OrderRepository
	publisher OrderEventPublisher

	clientURL string
	log       *slog.Logger
	now       func() time.Time
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(gw gateway.Gateway, coupons CouponRepository, orders OrderRepository,
	publisher OrderEventPublisher, clientURL string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		gateway:   gw,
		coupons:   coupons,
		orders:    orders,
		publisher: publisher,
		clientURL: clientURL,
		log:       log,
		now:       time.Now,
	}
}

// CreateCheckoutSession считает итог заказа в минорных единицах, применяет
// купон пользователя (если код передан и купон активен) и создает сессию
// в платежном шлюзе. Если итог до скидки достигает порога, пользователю
// выдается подарочный купон на следующую покупку.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, user *models.User,
	products []CheckoutProduct, couponCode string) (*CheckoutResult, error) {
	const op = "services.payment.CreateCheckoutSession"

	if len(products) == 0 {
		return nil, fmt.Errorf("%s: empty product list: %w", op, errs.ErrInvalid)
	}

	var totalAmount int64
	lines := make([]gateway.CheckoutLine, 0, len(products))
	for _, p := range products {
		if p.Quantity <= 0 || p.Price < 0 {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalid)
		}
		unitAmount := int64(math.Round(p.Price * 100))
		totalAmount += unitAmount * int64(p.Quantity)
		lines = append(lines, gateway.CheckoutLine{
			Name:       p.Name,
			Image:      p.Image,
			UnitAmount: unitAmount,
			Quantity:   int64(p.Quantity),
		})
	}
	preDiscountTotal := totalAmount

	discount := 0
	if couponCode != "" {
		coupon, err := s.coupons.FindActiveCoupon(ctx, couponCode, user.UID)
		switch {
		case err == nil:
			discount = coupon.DiscountPercentage
			totalAmount -= int64(math.Round(float64(totalAmount) * float64(discount) / 100))
		case errors.Is(err, errs.ErrNotFound):
			// неизвестный код не блокирует оформление, скидка не применяется
			couponCode = ""
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	params := gateway.CreateSessionParams{
		Lines:              lines,
		SuccessURL:         s.clientURL + "/purchase-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          s.clientURL + "/purchase-cancel",
		DiscountPercentage: discount,
		Metadata: map[string]string{
			"userId":     user.UID,
			"couponCode": couponCode,
			"products":   string(payload),
		},
	}
	session, err := s.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.log.Error("failed to create checkout session", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUpstream)
	}
	metrics.CheckoutSessionsTotal.Inc()

	if preDiscountTotal >= giftCouponThreshold {
		if err = s.grantGiftCoupon(ctx, user.UID); err != nil {
			s.log.Warn("failed to grant gift coupon", sl.Err(err))
		}
	}

	return &CheckoutResult{
		SessionID:   session.ID,
		URL:         session.URL,
		TotalAmount: float64(totalAmount) / 100,
	}, nil
}

// CheckoutSuccess проверяет статус оплаты сессии и создает заказ.
// Заказ создается только для статуса paid; использованный купон
// деактивируется, событие о заказе публикуется в брокер.
func (s *PaymentService) CheckoutSuccess(ctx context.Context, sessionID string) (string, error) {
	const op = "services.payment.CheckoutSuccess"

	if sessionID == "" {
		return "", fmt.Errorf("%s: %w", op, errs.ErrInvalid)
	}
	session, err := s.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		s.log.Error("failed to retrieve checkout session", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, errs.ErrUpstream)
	}
	if session.PaymentStatus != gateway.PaymentStatusPaid {
		return "", fmt.Errorf("%s: payment is not completed: %w", op, errs.ErrInvalid)
	}

	userUID := session.Metadata["userId"]
	if code := session.Metadata["couponCode"]; code != "" {
		if err = s.coupons.DeactivateCoupon(ctx, code, userUID); err != nil {
			s.log.Warn("failed to deactivate used coupon", sl.Err(err))
		}
	}

	var products []CheckoutProduct
	if err = json.Unmarshal([]byte(session.Metadata["products"]), &products); err != nil {
		return "", fmt.Errorf("%s: decode session products: %w", op, err)
	}
	items := make([]models.OrderItem, 0, len(products))
	for _, p := range products {
		items = append(items, models.OrderItem{
			ProductUID: p.ProductUID,
			Quantity:   p.Quantity,
			Price:      p.Price,
		})
	}

	order := models.Order{
		UserUID:         userUID,
		Items:           items,
		TotalAmount:     float64(session.AmountTotal) / 100,
		StripeSessionID: session.ID,
	}
	orderUID, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	metrics.OrdersCreatedTotal.Inc()

	event := OrderCreatedEvent{
		OrderUID:        orderUID,
		UserUID:         userUID,
		TotalAmount:     order.TotalAmount,
		StripeSessionID: session.ID,
		CreatedAt:       s.now().UTC(),
	}
	if err = s.publisher.PublishOrderCreated(event); err != nil {
		s.log.Warn("failed to publish order created event", sl.Err(err))
	}

	return orderUID, nil
}

// grantGiftCoupon выдает пользователю одноразовый подарочный купон,
// затирая его предыдущий купон.
func (s *PaymentService) grantGiftCoupon(ctx context.Context, userUID string) error {
	coupon := models.Coupon{
		Code:               giftCouponCode(),
		DiscountPercentage: giftCouponDiscount,
		IsActive:           true,
		ExpirationDate:     s.now().Add(giftCouponTTL),
		UserUID:            userUID,
	}
	_, err := s.coupons.CreateCoupon(ctx, coupon)
	return err
}

// giftCouponCode генерирует код вида GIFT + 6 символов.
func giftCouponCode() string {
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "GIFT" + entropy[:6]
}

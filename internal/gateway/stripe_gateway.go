// Реализация Gateway поверх Stripe Checkout.
package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/coupon"
)

// StripeGateway реализует Gateway через Stripe Checkout Sessions.
type StripeGateway struct{}

// NewStripeGateway настраивает глобальный ключ Stripe и возвращает шлюз.
func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	stripe.Key = secretKey
	return &StripeGateway{}, nil
}

// CreateCheckoutSession создает платежную сессию Stripe в режиме payment.
// Для скидки создается одноразовый stripe-купон с нужным процентом.
func (g *StripeGateway) CreateCheckoutSession(_ context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	const op = "gateway.stripe.CreateCheckoutSession"

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.Lines))
	for _, line := range p.Lines {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.Image != "" {
			productData.Images = stripe.StringSlice([]string{line.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				UnitAmount:  stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
	}
	if p.DiscountPercentage > 0 {
		couponID, err := g.createOneTimeCoupon(p.DiscountPercentage)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(couponID)},
		}
	}
	for key, value := range p.Metadata {
		params.AddMetadata(key, value)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fromStripeSession(sess), nil
}

// RetrieveCheckoutSession возвращает сессию Stripe по идентификатору.
func (g *StripeGateway) RetrieveCheckoutSession(_ context.Context, sessionID string) (*CheckoutSession, error) {
	const op = "gateway.stripe.RetrieveCheckoutSession"
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fromStripeSession(sess), nil
}

// createOneTimeCoupon создает одноразовый процентный купон Stripe.
func (g *StripeGateway) createOneTimeCoupon(discountPercentage int) (string, error) {
	c, err := coupon.New(&stripe.CouponParams{
		PercentOff: stripe.Float64(float64(discountPercentage)),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
	})
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		AmountTotal:   sess.AmountTotal,
		PaymentStatus: string(sess.PaymentStatus),
		Metadata:      sess.Metadata,
	}
}

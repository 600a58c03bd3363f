package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ecommerce-store/internal/models"
)

// CreateOrder сохраняет заказ вместе со строками в одной транзакции
// и возвращает UID заказа.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var orderUID string
	query := `INSERT INTO orders (user_uid, total_amount, stripe_session_id)
			  VALUES ($1, $2, $3)
			  RETURNING uid;`
	if err = tx.QueryRowContext(ctx, query,
		order.UserUID, order.TotalAmount, order.StripeSessionID).Scan(&orderUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `INSERT INTO order_items (order_uid, product_uid, quantity, price)
			      VALUES ($1, $2, $3, $4)`
	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, itemQuery,
			orderUID, item.ProductUID, item.Quantity, item.Price); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return orderUID, nil
}

// CountOrdersAndRevenue возвращает общее число заказов и суммарную выручку.
func (s *Storage) CountOrdersAndRevenue(ctx context.Context) (int, float64, error) {
	const op = "storage.CountOrdersAndRevenue"
	var count int
	var revenue float64
	query := `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, revenue, nil
}

// DailySalesRow — агрегированные продажи за один день.
type DailySalesRow struct {
	Date    string
	Sales   int
	Revenue float64
}

// DailySales группирует заказы по дням в диапазоне [start, end] (UTC)
// и возвращает число продаж и выручку на каждый день, где были заказы.
// Дни без заказов дозаполняет нулями сервис аналитики.
func (s *Storage) DailySales(ctx context.Context, start, end time.Time) ([]DailySalesRow, error) {
	const op = "storage.DailySales"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			      COUNT(*), COALESCE(SUM(total_amount), 0)
			  FROM orders
			  WHERE created_at >= $1 AND created_at <= $2
			  GROUP BY day
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []DailySalesRow
	for rows.Next() {
		var row DailySalesRow
		if err = rows.Scan(&row.Date, &row.Sales, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

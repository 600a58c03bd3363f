// Package rabbitmq реализует подключение к брокеру и публикацию событий заказов.
//
// На успешную оплату публикуется событие order.created; его потребляют
// внешние обработчики (уведомления, фулфилмент), в этом репозитории
// потребителей нет.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const ordersExchange = "orders"

// Connect подключается к RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет exchange и очередь событий заказов.
func SetupChannel(conn *amqp.Connection, queueName string) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		ordersExchange, // exchange
		"direct",       // тип
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, queueName, err)
	}

	err = ch.QueueBind(
		queueName,
		"order.created",
		ordersExchange,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, queueName, err)
	}

	return ch, nil
}

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OrderEventPublisher публикует события заказов в exchange orders.
type OrderEventPublisher struct {
	ch *amqp.Channel
}

// NewOrderEventPublisher создает публикатор поверх открытого канала.
func NewOrderEventPublisher(ch *amqp.Channel) *OrderEventPublisher {
	return &OrderEventPublisher{ch: ch}
}

// PublishOrderCreated публикует событие о созданном заказе.
func (p *OrderEventPublisher) PublishOrderCreated(event any) error {
	return PublishMessage(p.ch, ordersExchange, "order.created", event)
}

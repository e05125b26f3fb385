package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/RG-basket/rgbasket-sub001/models"
)

// Publisher sends order events to a RabbitMQ topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) publishJSON(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *Publisher) OrderCreated(ctx context.Context, o *models.Order) error {
	return p.publishJSON(ctx, "order.created", orderEvent(o))
}

func (p *Publisher) OrderCancelled(ctx context.Context, o *models.Order) error {
	return p.publishJSON(ctx, "order.cancelled", orderEvent(o))
}

func (p *Publisher) Close() error {
	_ = p.ch.Close()
	return p.conn.Close()
}

func orderEvent(o *models.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"product":  it.ProductName,
			"weight":   it.WeightLabel,
			"quantity": it.Quantity,
			"price":    it.UnitPrice,
		})
	}
	return map[string]any{
		"ref":           o.Ref,
		"user_id":       o.UserID,
		"status":        string(o.Status),
		"delivery_date": o.DeliveryDate.Format("2006-01-02"),
		"time_slot":     o.TimeSlot,
		"total":         o.TotalAmount,
		"items":         items,
	}
}

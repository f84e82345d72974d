package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing key notifikasi pembayaran.
const (
	RKPaymentSuccess = "payment.success"
	RKPaymentFailed  = "payment.failed"
)

// PaymentEvent payload notifikasi ke penyewa (dikonsumsi worker terpisah).
type PaymentEvent struct {
	OrderCode    string `json:"order_code"`
	UserID       string `json:"user_id"`
	TagihanNomor string `json:"tagihan_nomor"`
	Nominal      int    `json:"nominal"`
	Status       string `json:"status"`
}

// Notifier: best-effort. Gagal kirim tidak boleh membatalkan rekonsiliasi
// yang sudah commit — caller cukup log.
type Notifier interface {
	Notify(ctx context.Context, key string, ev PaymentEvent) error
}

/* =========================================================
   ConsoleNotifier — fallback saat AMQP_URL tidak di-set
========================================================= */

type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier { return &ConsoleNotifier{} }

func (n *ConsoleNotifier) Notify(ctx context.Context, key string, ev PaymentEvent) error {
	log.Printf("[notify] %s :: order=%s tagihan=%s nominal=%d status=%s",
		key, ev.OrderCode, ev.TagihanNomor, ev.Nominal, ev.Status)
	return nil
}

/* =========================================================
   AMQPNotifier — publish ke topic exchange RabbitMQ
========================================================= */

type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
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
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, key string, ev PaymentEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.ch.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// internal/events/publisher.go
package events

import (
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
)

// OutcomeEvent mirrors one dispatch outcome for downstream consumers
// (dashboards, alerting). Publishing is best-effort: a lost event never
// fails the dispatch, the reminder_logs table remains the source of truth.
type OutcomeEvent struct {
	ReminderID     string    `json:"reminder_id"`
	UserID         string    `json:"user_id"`
	ChannelID      string    `json:"channel_id"`
	Status         string    `json:"status"`
	SlackMessageTS string    `json:"slack_message_ts,omitempty"`
	Error          string    `json:"error,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(event OutcomeEvent) error
	Close() error
}

const outcomeQueue = "reminder_outcomes"

// AMQPPublisher fans outcome events out over RabbitMQ.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		outcomeQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

func (p *AMQPPublisher) Publish(event OutcomeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.Publish(
		"",           // exchange
		outcomeQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher is used when AMQP_URL is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(OutcomeEvent) error { return nil }
func (NopPublisher) Close() error               { return nil }

var _ Publisher = (*AMQPPublisher)(nil)
var _ Publisher = NopPublisher{}

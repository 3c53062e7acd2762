package queue

import (
	"github.com/streadway/amqp"
)

// SuppressionQueue carries addresses that bounced or complained; the worker
// drains it and unsubscribes them.
const SuppressionQueue = "subscriber_suppression"

// SuppressionJob is the payload published per bounced/complained event.
type SuppressionJob struct {
	Email  string `json:"email"`
	Reason string `json:"reason"` // bounced, complained
}

// Queue interface
type Queue interface {
	Publish(queueName string, body []byte) error
	Close() error
}

// AMQPQueue publishes jobs to RabbitMQ.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Publish(queueName string, body []byte) error {
	_, err := q.ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (q *AMQPQueue) Close() error {
	q.ch.Close()
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)

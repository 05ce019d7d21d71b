package queue

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// All care events go through one topic exchange; the subject becomes the
// routing key, so consumers can bind "care.*" or a single subject.
const exchangeName = "care.events"

// RabbitMQPublisher is the alternative transport, selected with
// queue.driver=rabbitmq.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	mu      sync.RWMutex
	log     *zap.Logger
}

func NewRabbitMQPublisher(url string, log *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := declareChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	p := &RabbitMQPublisher{
		conn:    conn,
		channel: ch,
		url:     url,
		log:     log,
	}

	go p.monitorConnection()

	log.Info("connected to RabbitMQ", zap.String("exchange", exchangeName))
	return p, nil
}

func declareChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq: declare exchange: %w", err)
	}
	return ch, nil
}

func (p *RabbitMQPublisher) Publish(subject string, data []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}

	err := p.channel.Publish(
		exchangeName, subject, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", subject, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *RabbitMQPublisher) monitorConnection() {
	for {
		reason, ok := <-p.conn.NotifyClose(make(chan *amqp.Error))
		if !ok {
			return
		}
		p.log.Warn("RabbitMQ connection lost, reconnecting...", zap.String("reason", reason.Reason))

		for {
			time.Sleep(5 * time.Second)
			conn, err := amqp.Dial(p.url)
			if err != nil {
				p.log.Error("failed to reconnect to RabbitMQ", zap.Error(err))
				continue
			}
			ch, err := declareChannel(conn)
			if err != nil {
				conn.Close()
				p.log.Error("failed to restore RabbitMQ channel", zap.Error(err))
				continue
			}

			p.mu.Lock()
			p.conn = conn
			p.channel = ch
			p.mu.Unlock()

			p.log.Info("reconnected to RabbitMQ")
			break
		}
	}
}

package queue

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSPublisher emits care events over NATS, the default transport.
type NATSPublisher struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNATSPublisher(url string, log *zap.Logger) (Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("carevoice"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS connection lost", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("connected to NATS", zap.String("url", url))
	return &NATSPublisher{
		conn: nc,
		log:  log,
	}, nil
}

func (p *NATSPublisher) Publish(subject string, data []byte) error {
	return p.conn.Publish(subject, data)
}

// Close flushes buffered events before dropping the connection so a
// shutdown right after an emergency report does not lose it.
func (p *NATSPublisher) Close() error {
	if err := p.conn.FlushTimeout(5 * time.Second); err != nil {
		p.log.Warn("failed to flush pending events", zap.Error(err))
	}
	p.conn.Close()
	return nil
}

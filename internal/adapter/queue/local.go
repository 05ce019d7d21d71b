package queue

import (
	"sync"

	"go.uber.org/zap"
)

// localRetention bounds the in-memory event log.
const localRetention = 100

// LocalPublisher is the in-process Publisher for development mode: it
// logs each event and retains the most recent ones so they can be
// inspected without a broker.
type LocalPublisher struct {
	mu     sync.RWMutex
	events map[string][][]byte
	log    *zap.Logger
}

func NewLocalPublisher(log *zap.Logger) *LocalPublisher {
	return &LocalPublisher{
		events: make(map[string][][]byte),
		log:    log,
	}
}

func (p *LocalPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	retained := append(p.events[subject], data)
	if len(retained) > localRetention {
		retained = retained[len(retained)-localRetention:]
	}
	p.events[subject] = retained

	p.log.Info("event published", zap.String("subject", subject), zap.ByteString("payload", data))
	return nil
}

// Events returns a snapshot of the retained payloads for a subject,
// oldest first.
func (p *LocalPublisher) Events(subject string) [][]byte {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := make([][]byte, len(p.events[subject]))
	copy(snapshot, p.events[subject])
	return snapshot
}

func (p *LocalPublisher) Close() error {
	return nil
}

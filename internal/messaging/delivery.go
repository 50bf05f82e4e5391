package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrDelivererStopped is returned by Send once the Deliverer has stopped.
var ErrDelivererStopped = errors.New("deliverer stopped")

// Subscriber provides the ability to subscribe to message subjects
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
	Ready() <-chan struct{}
}

// Deliverer is the delivery sink: a single goroutine draining queued
// envelopes into the broadcaster. Fights and NPCs send to it.
type Deliverer struct {
	b     *Broadcaster
	queue chan Envelope
	sub   Subscriber

	done chan struct{}
	once sync.Once
}

type DelivererOpt func(*Deliverer)

// WithQueueSize sets how many envelopes may wait before Send blocks.
func WithQueueSize(n int) DelivererOpt {
	return func(d *Deliverer) {
		d.queue = make(chan Envelope, n)
	}
}

// WithBridge feeds envelopes published on DeliverySubject into the queue.
func WithBridge(sub Subscriber) DelivererOpt {
	return func(d *Deliverer) {
		d.sub = sub
	}
}

func NewDeliverer(b *Broadcaster, opts ...DelivererOpt) *Deliverer {
	d := &Deliverer{
		b:     b,
		queue: make(chan Envelope, 256),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send queues e for delivery. It blocks while the queue is full, and fails
// once the Deliverer has stopped.
func (d *Deliverer) Send(e Envelope) error {
	select {
	case <-d.done:
		return ErrDelivererStopped
	default:
	}
	select {
	case d.queue <- e:
		return nil
	case <-d.done:
		return ErrDelivererStopped
	}
}

// Start drains the queue until ctx is canceled.
func (d *Deliverer) Start(ctx context.Context) error {
	defer d.once.Do(func() { close(d.done) })

	if d.sub != nil {
		unsub, err := d.bridge(ctx)
		if err != nil {
			return err
		}
		defer unsub()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-d.queue:
			d.deliver(ctx, e)
		}
	}
}

func (d *Deliverer) bridge(ctx context.Context) (func(), error) {
	select {
	case <-ctx.Done():
		return func() {}, nil
	case <-d.sub.Ready():
	}

	unsub, err := d.sub.Subscribe(DeliverySubject, func(data []byte) {
		var e Envelope
		if err := json.Unmarshal(data, &e); err != nil {
			slog.WarnContext(ctx, "discarding malformed envelope", "error", err)
			return
		}
		select {
		case d.queue <- e:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", DeliverySubject, err)
	}
	return unsub, nil
}

// deliver broadcasts one envelope, then removes anyone it names for removal
// along with anyone who could not be reached.
func (d *Deliverer) deliver(ctx context.Context, e Envelope) {
	d.b.Broadcast(ctx, e.Audience, e.Message)
	for _, id := range e.Remove {
		if _, err := d.b.world.RemovePlayer(id); err != nil {
			slog.DebugContext(ctx, "removing player after delivery", "player", id, "error", err)
		}
	}
}

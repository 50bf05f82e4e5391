package messaging

import (
	"encoding/json"
	"fmt"
)

// DeliverySubject is the NATS subject async envelopes travel on.
const DeliverySubject = "ennui.deliver"

// Publisher publishes raw data to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NatsSender queues envelopes by publishing them to the delivery subject,
// where a Deliverer bridged with Bridge picks them up.
type NatsSender struct {
	pub     Publisher
	subject string
}

// NewNatsSender wraps a publisher for envelope delivery.
func NewNatsSender(pub Publisher) *NatsSender {
	return &NatsSender{pub: pub, subject: DeliverySubject}
}

func (s *NatsSender) Send(e Envelope) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshalling envelope: %w", err)
	}
	return s.pub.Publish(s.subject, data)
}

package messaging

import (
	"github.com/google/uuid"
)

// Audience addresses one game event: the acting player and everyone else
// who should hear about it. A nil Self means the event has no actor.
type Audience struct {
	Self   uuid.UUID   `json:"self"`
	Others []uuid.UUID `json:"others,omitempty"`
}

// ToSelf addresses only id.
func ToSelf(id uuid.UUID) Audience {
	return Audience{Self: id}
}

// Message carries the first-person and third-person renderings of an event.
// Either may be empty, in which case that side of the audience gets nothing.
type Message struct {
	Self   string `json:"self,omitempty"`
	Others string `json:"others,omitempty"`
}

// Envelope is an addressed message travelling to the delivery sink. Remove
// lists players to take out of the world once the message is delivered.
type Envelope struct {
	Audience Audience    `json:"audience"`
	Message  Message     `json:"message"`
	Remove   []uuid.UUID `json:"remove,omitempty"`
}

// Sender queues an envelope for asynchronous delivery.
type Sender interface {
	Send(Envelope) error
}

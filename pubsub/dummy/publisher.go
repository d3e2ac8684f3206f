package dummy

import "github.com/rfxgate/rfxgate/pubsub"

// Dummy Publisher for testing
type Publisher struct {
	Events []*pubsub.Event
}

func (pub *Publisher) ID() string {
	return "dummy"
}

func (pub *Publisher) Emit(ev *pubsub.Event) {
	pub.Events = append(pub.Events, ev)
}

func (pub *Publisher) Close() {
}

package notify

import "log"

type Notification struct {
	UserID    string
	Type      string
	Title     string
	Message   string
	RelatedID string
	ActionURL string
}

// Dispatcher decouples notification writes from the state transition that
// triggered them. A failed or dropped notification never rolls back the
// transition.
type Dispatcher struct {
	sink  *Sink
	queue chan Notification
}

func NewDispatcher(sink *Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Notification, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for n := range d.queue {
		if err := d.sink.Store(n); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(n Notification) {
	select {
	case d.queue <- n:
	default:
		// queue full, drop rather than block the request path
		log.Println("notify queue full, dropping notification")
	}
}

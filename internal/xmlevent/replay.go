package xmlevent

// Replay is a Source that returns a fixed sequence of events, then an optional
// error, then EndDocument forever.
type Replay struct {
	err    error
	events []Event
	pos    int
}

// NewReplay returns a Source that replays events in order.
func NewReplay(events ...Event) *Replay {
	return &Replay{events: events}
}

// FailWith makes the replay return err once its events are exhausted.
func (r *Replay) FailWith(err error) *Replay {
	r.err = err
	return r
}

// Remaining reports how many events have not been returned yet.
func (r *Replay) Remaining() int {
	return len(r.events) - r.pos
}

// Next implements Source.
func (r *Replay) Next() (Event, error) {
	if r.pos < len(r.events) {
		ev := r.events[r.pos]
		r.pos++
		return ev, nil
	}
	if r.err != nil {
		err := r.err
		r.err = nil
		return Event{}, err
	}
	return Event{Kind: EndDocument}, nil
}

// Start builds a StartElement event from alternating attribute names and values.
func Start(name string, kv ...string) Event {
	attrs := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return Event{Kind: StartElement, Name: name, Attrs: attrs}
}

// End builds an EndElement event.
func End(name string) Event {
	return Event{Kind: EndElement, Name: name}
}

// Text builds a CharData event.
func Text(s string) Event {
	return Event{Kind: CharData, Text: s}
}

package installer

// EventKind identifies the kind of progress event.
type EventKind int

const (
	// EventStatus carries a short human-readable description of the current step.
	EventStatus EventKind = iota + 1
	// EventProgress carries the overall completion percentage.
	EventProgress
	// EventDetail carries one line of subprocess output.
	EventDetail
	// EventCompleted marks a successful run. Nothing follows it.
	EventCompleted
	// EventFailed marks a failed run. Nothing follows it.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventProgress:
		return "progress"
	case EventDetail:
		return "detail"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a single progress notification emitted by the orchestrator.
type Event struct {
	Kind    EventKind
	Text    string
	Percent int
	// Err is set for EventFailed and matches the error returned by Run.
	Err error
}

// Terminal reports whether e ends a run.
func (e Event) Terminal() bool {
	return e.Kind == EventCompleted || e.Kind == EventFailed
}

// StatusChanged builds an EventStatus event.
func StatusChanged(text string) Event {
	return Event{Kind: EventStatus, Text: text}
}

// ProgressChanged builds an EventProgress event.
func ProgressChanged(percent int) Event {
	return Event{Kind: EventProgress, Percent: percent}
}

// DetailLine builds an EventDetail event.
func DetailLine(text string) Event {
	return Event{Kind: EventDetail, Text: text}
}

// Completed builds an EventCompleted event.
func Completed() Event {
	return Event{Kind: EventCompleted, Percent: DonePercent}
}

// Failed builds an EventFailed event from err.
func Failed(err error) Event {
	return Event{Kind: EventFailed, Text: err.Error(), Err: err}
}

// Sink receives events in the order they are emitted. Emit is called from the
// run goroutine and must not call back into the orchestrator.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// ChannelSink delivers events on a channel. Sends block, so the receiver must
// drain the channel until it sees a terminal event.
type ChannelSink chan<- Event

// Emit sends e on the channel.
func (c ChannelSink) Emit(e Event) {
	c <- e
}

type discardSink struct{}

func (discardSink) Emit(Event) {}

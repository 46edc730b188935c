package xr

// Event is a notification drained from the runtime's FIFO event queue.
// Only session state changes matter to the lifecycle checks; other kinds
// must be skipped over, not treated as errors.
type Event interface {
	// eventKind discriminates the union without exposing payload access.
	eventKind() string
}

// SessionStateChanged reports that the runtime moved a session to a new
// lifecycle state.
type SessionStateChanged struct {
	Session Session
	State   SessionState
	Time    Time
}

func (SessionStateChanged) eventKind() string { return "session-state-changed" }

// EventsLost reports that the runtime overflowed its queue and dropped
// events.
type EventsLost struct {
	Count uint32
}

func (EventsLost) eventKind() string { return "events-lost" }

// InteractionProfileChanged reports an input binding change. Irrelevant to
// lifecycle checks; present so pollers must demonstrate they skip it.
type InteractionProfileChanged struct {
	Session Session
}

func (InteractionProfileChanged) eventKind() string { return "interaction-profile-changed" }

// InstanceLossPending reports an impending instance loss.
type InstanceLossPending struct {
	LossTime Time
}

func (InstanceLossPending) eventKind() string { return "instance-loss-pending" }

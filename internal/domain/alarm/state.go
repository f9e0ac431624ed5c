package alarm

import "time"

// Status is the lifecycle position of the alarm.
type Status int

const (
	// Idle is the initial status: no alarm in progress.
	Idle Status = iota
	// Active means the alarm window is open.
	Active
)

// String returns a lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// State is the alarm status at a specific point in time.
type State struct {
	// Status is the current lifecycle position.
	Status Status
	// ActivatedAt is when the alarm opened. Valid only while Active.
	ActivatedAt time.Time
	// Activations counts Idle to Active transitions since start.
	Activations uint64
}

// IsActive reports whether the alarm window is open.
func (s *State) IsActive() bool {
	return s.Status == Active
}

// Clone returns a copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

package schema

// State reports which form a Loader will hand to Mount.
//
// A reload never reaches FormStates that are already mounted: they keep the
// field set and validator they were built with. State only describes what
// the next Mount call sees.
type State int32

const (
	// StateLoading: no document has arrived yet and Mount returns ErrNoForm.
	StateLoading State = iota

	// StateHealthy: the newest document built, so new mounts use its fields
	// and rules.
	StateHealthy

	// StateDegraded: the newest document was rejected. New mounts keep using
	// the last form that built, and the rejection is in LastError.
	StateDegraded

	// StateEmpty: every document so far was rejected, so Mount still returns
	// ErrNoForm until a valid one arrives.
	StateEmpty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

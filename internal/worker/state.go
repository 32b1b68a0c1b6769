package worker

// State is the debouncer state.
type State int32

const (
	Idle State = iota
	Waiting
	Copying
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Copying:
		return "copying"
	default:
		return "unknown"
	}
}

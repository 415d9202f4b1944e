package transition

// State is the lifecycle phase of one segment.
type State int

const (
	// Absent segments have never been rendered or were removed.
	Absent State = iota
	// EnteringInitial segments grow out of the collapsed first paint.
	EnteringInitial
	// EnteringLive segments grow out of their preceding neighbour.
	EnteringLive
	// Steady segments are rendered and may be tweening to new angles.
	Steady
	// Exiting segments are being removed.
	Exiting
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case EnteringInitial:
		return "entering-initial"
	case EnteringLive:
		return "entering-live"
	case Steady:
		return "steady"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Entering reports whether s is one of the entering states.
func (s State) Entering() bool {
	return s == EnteringInitial || s == EnteringLive
}

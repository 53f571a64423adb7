package server

// State is the step a connection is in.
type State int

const (
	StateIdle State = iota
	StateAccepting
	StateReading
	StateParsing
	StateResolving
	StateBuilding
	StateWriting
	StateClosing
)

var stateNames = [...]string{
	StateIdle:      "idle",
	StateAccepting: "accepting",
	StateReading:   "reading",
	StateParsing:   "parsing",
	StateResolving: "resolving",
	StateBuilding:  "building",
	StateWriting:   "writing",
	StateClosing:   "closing",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

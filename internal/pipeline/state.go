package pipeline

// State tracks the orchestrator's progress through the staged build.
// Stage N+1 never starts before stage N reports success, and stages
// are never retried.
type State int

// Pipeline states. Aborted is terminal: any stage's nonzero exit
// transitions to it and no further stages execute.
const (
	Idle State = iota
	GraphBuilt
	IndexBuilt
	PoisonBuilt
	Done
	Aborted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case GraphBuilt:
		return "graph-built"
	case IndexBuilt:
		return "index-built"
	case PoisonBuilt:
		return "poison-built"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Package intake implements the guided chat flow that qualifies a site
// visitor into a structured lead.
package intake

// Stage is a named step in the fixed conversation sequence.
type Stage string

const (
	StageGreeting     Stage = "greeting"
	StageProjectType  Stage = "project-type"
	StageRequirements Stage = "requirements"
	StageBudget       Stage = "budget"
	StageTimeline     Stage = "timeline"
	StageContactInfo  Stage = "contact-info"
	StageCompleted    Stage = "completed"
)

// stageOrder is the only legal progression. Transitions are strictly
// forward; there is no backward edge.
var stageOrder = []Stage{
	StageGreeting,
	StageProjectType,
	StageRequirements,
	StageBudget,
	StageTimeline,
	StageContactInfo,
	StageCompleted,
}

// Index returns the position of s in the fixed order, or -1 if unknown.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Terminal reports whether s is the absorbing completed stage.
func (s Stage) Terminal() bool {
	return s == StageCompleted
}

// Next returns the stage that follows s. The completed stage maps to
// itself (absorbing self-loop).
func (s Stage) Next() Stage {
	i := s.Index()
	if i < 0 || i == len(stageOrder)-1 {
		return StageCompleted
	}
	return stageOrder[i+1]
}

// Before reports whether s comes strictly before other in the fixed order.
func (s Stage) Before(other Stage) bool {
	return s.Index() < other.Index()
}

// Stages returns the fixed stage sequence.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

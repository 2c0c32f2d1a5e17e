package common

type Statuser interface {
	Status() Status
}

// CheckStatus returns the first status in cs that is not Continue.
func CheckStatus(cs ...Statuser) Status {
	for _, val := range cs {
		c := val.Status()
		if c != Continue {
			return c
		}
	}
	return Continue
}

var statusStrings = map[Status]string{
	Continue:   "Continue",
	GradAbsTol: "GradAbsTol",

	MaximumIterations:    "MaximumIterations",
	MaximumRuntime:       "MaximumRuntimeElapsed",
	StepUnderflow:        "StepUnderflow",
	NonPositiveCurvature: "NonPositiveCurvature",
}

// Status expresses whether an optimizer has finished.
// Zero signifies the optimizer should continue, positive values indicate
// successful convergence and negative values a stop without convergence.
type Status int

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}

// Converged reports whether s is a successful termination.
func (s Status) Converged() bool {
	return s > 0
}

const (
	Continue Status = iota
	GradAbsTol
)

const (
	_                          = iota
	MaximumIterations   Status = -1 * iota
	MaximumRuntime
	// StepUnderflow is returned when no positive step decreases the objective.
	StepUnderflow
	// NonPositiveCurvature is returned when a search direction has pᵀAp <= 0,
	// so the objective is not strictly convex along it.
	NonPositiveCurvature
)

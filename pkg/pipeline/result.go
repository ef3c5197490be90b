package pipeline

// Status is the outcome of a single step.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome records what happened to one step.
type Outcome struct {
	Step    string
	Status  Status
	Message string
}

// Result is the ordered log of step outcomes for one run.
type Result struct {
	Outcomes []Outcome
}

func (r *Result) record(step string, status Status, message string) {
	r.Outcomes = append(r.Outcomes, Outcome{Step: step, Status: status, Message: message})
}

// Failed returns the outcomes of steps that failed, best-effort ones
// included.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

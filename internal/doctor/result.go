// Package doctor runs the health checks behind `launch doctor`.
package doctor

// Status is the outcome of one check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Result is one line of doctor output.
type Result struct {
	Status    Status
	CheckName string
	Message   string
	// Recommendation is optional and may span several lines.
	Recommendation string
}

// Failed reports whether any result has StatusFail.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// Warned reports whether any result has StatusWarn.
func Warned(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusWarn {
			return true
		}
	}
	return false
}

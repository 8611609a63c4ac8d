package fees

import "time"

// Recorder receives operational events from the service. The prometheus
// collector implements it in production; tests use the no-op.
type Recorder interface {
	RecordSubmission(ruleCount int, accepted bool)
	RecordEvaluation(outcome string, duration time.Duration)
}

// NoopRecorder drops every event.
type NoopRecorder struct{}

func (NoopRecorder) RecordSubmission(int, bool)             {}
func (NoopRecorder) RecordEvaluation(string, time.Duration) {}

// Evaluation outcomes, matching the metric label values.
const (
	outcomeMatched = "matched"
	outcomeNoMatch = "no_match"
	outcomeInvalid = "invalid"
	outcomeFault   = "fault"
)

package entities

// GenerationOutcome is how a single extraction attempt ended
type GenerationOutcome string

const (
	OutcomeOK         GenerationOutcome = "ok"
	OutcomeMalformed  GenerationOutcome = "malformed"
	OutcomeEmpty      GenerationOutcome = "empty"
	OutcomeCallFailed GenerationOutcome = "call_failed"
	OutcomeMock       GenerationOutcome = "mock"
)

// GenerationState is a step of the extraction state machine
type GenerationState string

const (
	StateNotStarted      GenerationState = "not_started"
	StateBackendSelected GenerationState = "backend_selected"
	StateRequested       GenerationState = "requested"
	StateParsedOK        GenerationState = "parsed_ok"
	StateParseFailed     GenerationState = "parse_failed"
	StateCallFailed      GenerationState = "call_failed"
	StateResolved        GenerationState = "resolved"
)

// GenerationAttempt records one pass through the summary extractor. It is never persisted.
type GenerationAttempt struct {
	Provider    string
	Prompt      string
	RawResponse string
	Outcome     GenerationOutcome
	States      []GenerationState
	Err         error
}

// Advance appends a state to the attempt's trail
func (a *GenerationAttempt) Advance(s GenerationState) {
	a.States = append(a.States, s)
}

// State returns the latest state reached
func (a *GenerationAttempt) State() GenerationState {
	if len(a.States) == 0 {
		return StateNotStarted
	}
	return a.States[len(a.States)-1]
}

// FellBack reports whether the resolved record came from the mock fallback after a failure
func (a *GenerationAttempt) FellBack() bool {
	return a.Outcome == OutcomeMalformed || a.Outcome == OutcomeEmpty || a.Outcome == OutcomeCallFailed
}

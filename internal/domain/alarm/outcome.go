package alarm

// Outcome is the string-coded result of the self-healing decision, embedded
// verbatim in the audit record and in the handler response.
type Outcome string

// OutcomeNone means no action was attempted: the alarm was not in the ALARM
// state or no target instance was resolved.
const OutcomeNone Outcome = "NONE"

// RebootRequested records that a reboot was issued, annotated with the
// instance state observed just before ("running").
func RebootRequested(observedState string) Outcome {
	return Outcome("REBOOT_REQUESTED_from_" + observedState)
}

// Skipped records that the reboot was withheld because of the instance's
// observed state (stopped, stopping, pending, ...).
func Skipped(observedState string) Outcome {
	return Outcome("SKIPPED_state_" + observedState)
}

// Failure records an error during the status lookup or reboot call. The
// category is an AWS API error code when available, otherwise the Go error
// type name. Failures never propagate past the decision step.
func Failure(category string) Outcome {
	return Outcome("ERROR_" + category)
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	return string(o)
}

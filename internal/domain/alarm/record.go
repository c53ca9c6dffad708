package alarm

import (
	"encoding/json"
	"time"
)

// Record is the audit entry persisted once per invocation. It is immutable
// after construction; the storage key (not the record) carries uniqueness.
type Record struct {
	// Timestamp is the record creation time, ISO-8601 UTC with a Z suffix.
	Timestamp string `json:"timestamp"`
	// AlarmName identifies the alarm that fired.
	AlarmName string `json:"alarm_name"`
	// NewState is the alarm state that triggered the handler.
	NewState string `json:"new_state"`
	// Reason is CloudWatch's transition reason.
	Reason string `json:"reason"`
	// InstanceID is the resolved target instance.
	InstanceID string `json:"instance_id"`
	// Region is the resolved region.
	Region string `json:"region"`
	// RawAlarmMessage nests the alarm message exactly as received.
	RawAlarmMessage json.RawMessage `json:"raw_alarm_message"`
	// ActionTaken is the outcome code of the self-healing decision.
	ActionTaken string `json:"action_taken"`
}

// ErrorRecord is the audit entry written when the invocation envelope itself
// is malformed. It lands under the errors/ prefix instead of logs/.
type ErrorRecord struct {
	// Timestamp is the record creation time, ISO-8601 UTC with a Z suffix.
	Timestamp string `json:"timestamp"`
	// Error describes what was wrong with the envelope.
	Error string `json:"error"`
	// RawEvent is the invocation payload as received, for debugging.
	RawEvent json.RawMessage `json:"raw_event"`
}

// NewRecord assembles the audit entry for a processed alarm.
func NewRecord(msg *Message, instanceID, region string, action Outcome) *Record {
	return &Record{
		Timestamp:       UTCTimestamp(time.Now()),
		AlarmName:       valueOrUnknown(msg.AlarmName),
		NewState:        valueOrUnknown(msg.NewStateValue),
		Reason:          msg.NewStateReason,
		InstanceID:      instanceID,
		Region:          region,
		RawAlarmMessage: msg.Raw(),
		ActionTaken:     action.String(),
	}
}

// NewErrorRecord assembles the audit entry for a malformed envelope. A raw
// event that is not valid JSON is wrapped as a JSON string so the record
// always marshals.
func NewErrorRecord(reason string, rawEvent []byte) *ErrorRecord {
	raw := json.RawMessage(rawEvent)
	if !json.Valid(rawEvent) {
		quoted, err := json.Marshal(string(rawEvent))
		if err == nil {
			raw = quoted
		} else {
			raw = json.RawMessage(`""`)
		}
	}

	return &ErrorRecord{
		Timestamp: UTCTimestamp(time.Now()),
		Error:     reason,
		RawEvent:  raw,
	}
}

// UTCTimestamp renders t in ISO-8601 UTC with a Z suffix.
func UTCTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// valueOrUnknown substitutes "unknown" for fields absent from a degraded or
// partial alarm message.
func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}

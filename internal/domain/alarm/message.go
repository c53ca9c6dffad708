package alarm

import (
	"encoding/json"
)

// Message is the CloudWatch alarm notification body carried inside the SNS
// envelope. Parsing never fails: a body that is not a JSON object degrades to
// a raw-text capture (see Parse).
type Message struct {
	// AlarmName identifies the CloudWatch alarm that fired.
	AlarmName string `json:"AlarmName"`
	// NewStateValue is the alarm state after the transition ("ALARM", "OK", ...).
	NewStateValue string `json:"NewStateValue"`
	// NewStateReason is CloudWatch's human-readable transition reason.
	NewStateReason string `json:"NewStateReason"`
	// Region is the region name reported by CloudWatch.
	Region string `json:"Region"`
	// Trigger describes the metric and dimensions behind the alarm.
	Trigger Trigger `json:"Trigger"`

	// raw holds the message exactly as received, for the audit record.
	raw json.RawMessage
}

// Trigger is the metric descriptor nested in an alarm message. Only the
// dimension list matters to the handler; the remaining metric fields pass
// through untouched inside the raw capture.
type Trigger struct {
	// Dimensions is the ordered dimension list of the triggering metric.
	Dimensions []Dimension `json:"Dimensions"`
}

// Dimension is a single {name, value} pair from the trigger's dimension list.
//
// Key matching contract: upstream senders emit both "Name"/"Value" and
// "name"/"value" spellings. Both decode; when a sender emits both spellings
// of the same key with different values, the capitalized spelling wins.
type Dimension struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// UnmarshalJSON decodes both key spellings with a fixed precedence. Relying
// on encoding/json's field matching alone would make the result depend on
// key order in the input when both spellings are present.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name       string `json:"Name"`
		Value      string `json:"Value"`
		LowerName  string `json:"name"`
		LowerValue string `json:"value"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.Name = aux.Name
	if d.Name == "" {
		d.Name = aux.LowerName
	}

	d.Value = aux.Value
	if d.Value == "" {
		d.Value = aux.LowerValue
	}

	return nil
}

const (
	// StateAlarm is the only NewStateValue that triggers a healing attempt.
	StateAlarm = "ALARM"

	// instanceIDDimension is the dimension name carrying the target instance.
	instanceIDDimension = "InstanceId"
)

// Parse decodes an SNS message body into a Message. A body that is not a
// JSON object is captured verbatim instead: the returned message has empty
// fields and its Raw form marshals as {"raw_message": <body>}. Parse errors
// are data, not failures.
func Parse(body string) *Message {
	var m Message
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return &Message{raw: rawCapture(body)}
	}

	m.raw = json.RawMessage(body)

	return &m
}

// Raw returns the message as received, suitable for nesting in the audit
// record. For degraded messages this is the {"raw_message": ...} capture.
func (m *Message) Raw() json.RawMessage {
	return m.raw
}

// InstanceID resolves the target instance: the first dimension named
// "InstanceId" with a non-empty value overrides the provided default. The
// scan stops at the first name match even when its value is empty.
func (m *Message) InstanceID(defaultID string) string {
	for _, d := range m.Trigger.Dimensions {
		if d.Name != instanceIDDimension {
			continue
		}

		if d.Value != "" {
			return d.Value
		}

		return defaultID
	}

	return defaultID
}

// ResolveRegion returns the message region, then the ambient fallback, then
// the literal "unknown".
func (m *Message) ResolveRegion(fallback string) string {
	if m.Region != "" {
		return m.Region
	}

	if fallback != "" {
		return fallback
	}

	return "unknown"
}

// rawCapture wraps a non-JSON message body so it can still be persisted as
// structured data.
func rawCapture(body string) json.RawMessage {
	capture, err := json.Marshal(map[string]string{"raw_message": body})
	if err != nil {
		// Marshalling a map of strings cannot fail; keep the compiler honest.
		return json.RawMessage(`{}`)
	}

	return capture
}

package alarm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParse decodes a realistic CloudWatch alarm body.
func TestParse(t *testing.T) {
	t.Parallel()

	body := `{
		"AlarmName": "cpu-high",
		"NewStateValue": "ALARM",
		"NewStateReason": "Threshold Crossed",
		"Region": "EU (Ireland)",
		"Trigger": {
			"MetricName": "CPUUtilization",
			"Dimensions": [{"Name": "InstanceId", "Value": "i-0123456789abcdef0"}]
		}
	}`

	m := Parse(body)
	require.Equal(t, "cpu-high", m.AlarmName)
	require.Equal(t, "ALARM", m.NewStateValue)
	require.Equal(t, "Threshold Crossed", m.NewStateReason)
	require.Equal(t, "EU (Ireland)", m.Region)
	require.Len(t, m.Trigger.Dimensions, 1)
	require.Equal(t, "i-0123456789abcdef0", m.Trigger.Dimensions[0].Value)

	// Raw form is the body as received.
	require.JSONEq(t, body, string(m.Raw()))
}

// TestParseDegradesToRawCapture covers non-JSON and non-object bodies.
func TestParseDegradesToRawCapture(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		"not json at all",
		`"a bare json string"`,
		`[1, 2, 3]`,
	} {
		m := Parse(body)
		require.Empty(t, m.AlarmName)
		require.Empty(t, m.NewStateValue)

		var capture map[string]string
		require.NoError(t, json.Unmarshal(m.Raw(), &capture))
		require.Equal(t, body, capture["raw_message"])
	}
}

// TestDimensionKeyCasing verifies both dimension key spellings decode.
func TestDimensionKeyCasing(t *testing.T) {
	t.Parallel()

	var d Dimension
	require.NoError(t, json.Unmarshal([]byte(`{"name": "InstanceId", "value": "i-lower"}`), &d))
	require.Equal(t, "InstanceId", d.Name)
	require.Equal(t, "i-lower", d.Value)

	// Capitalized keys take precedence when both spellings are present,
	// regardless of key order in the input.
	d = Dimension{}
	require.NoError(t, json.Unmarshal([]byte(`{"Name": "InstanceId", "name": "other", "Value": "i-exact", "value": "i-low"}`), &d))
	require.Equal(t, "InstanceId", d.Name)
	require.Equal(t, "i-exact", d.Value)
}

// TestInstanceID covers dimension precedence over the configured default.
func TestInstanceID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		dimensions []Dimension
		expected   string
	}{
		"no dimensions keeps default": {
			dimensions: nil,
			expected:   "i-default",
		},
		"matching dimension overrides": {
			dimensions: []Dimension{{Name: "InstanceId", Value: "i-123"}},
			expected:   "i-123",
		},
		"first match wins": {
			dimensions: []Dimension{
				{Name: "InstanceId", Value: "i-first"},
				{Name: "InstanceId", Value: "i-second"},
			},
			expected: "i-first",
		},
		"empty value keeps default and stops the scan": {
			dimensions: []Dimension{
				{Name: "InstanceId", Value: ""},
				{Name: "InstanceId", Value: "i-later"},
			},
			expected: "i-default",
		},
		"unrelated dimensions are ignored": {
			dimensions: []Dimension{{Name: "AutoScalingGroupName", Value: "asg-1"}},
			expected:   "i-default",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := &Message{Trigger: Trigger{Dimensions: tc.dimensions}}
			require.Equal(t, tc.expected, m.InstanceID("i-default"))
		})
	}
}

// TestResolveRegion checks the message-then-ambient-then-unknown fallback.
func TestResolveRegion(t *testing.T) {
	t.Parallel()

	m := &Message{Region: "EU (Ireland)"}
	require.Equal(t, "EU (Ireland)", m.ResolveRegion("eu-west-1"))

	m = new(Message)
	require.Equal(t, "eu-west-1", m.ResolveRegion("eu-west-1"))
	require.Equal(t, "unknown", m.ResolveRegion(""))
}

// TestOutcomes covers the closed set of action codes.
func TestOutcomes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NONE", OutcomeNone.String())
	require.Equal(t, "REBOOT_REQUESTED_from_running", RebootRequested("running").String())
	require.Equal(t, "SKIPPED_state_stopped", Skipped("stopped").String())
	require.Equal(t, "ERROR_UnauthorizedOperation", Failure("UnauthorizedOperation").String())
}

// TestNewErrorRecord ensures non-JSON payloads are still representable.
func TestNewErrorRecord(t *testing.T) {
	t.Parallel()

	rec := NewErrorRecord("unexpected event format", []byte("not json"))
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.Contains(t, string(data), "not json")

	rec = NewErrorRecord("unexpected event format", []byte(`{"Records": []}`))
	data, err = json.Marshal(rec)
	require.NoError(t, err)
	require.Contains(t, string(data), `"Records"`)
}

// TestNewRecordDefaults ensures absent message fields fall back to "unknown".
func TestNewRecordDefaults(t *testing.T) {
	t.Parallel()

	rec := NewRecord(Parse("not json"), "i-123", "eu-west-1", OutcomeNone)
	require.Equal(t, "unknown", rec.AlarmName)
	require.Equal(t, "unknown", rec.NewState)
	require.Equal(t, "i-123", rec.InstanceID)
	require.Equal(t, "NONE", rec.ActionTaken)
	require.Regexp(t, `Z$`, rec.Timestamp)
}

package consumer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

func TestJSONConfirmationParser_Parse(t *testing.T) {
	want := domain.Confirmation{
		JobID: "3f1c",
		Record: domain.LaunchRecord{
			Date:       "2024-01-01 10:00:00",
			Retailer:   "Roots",
			Tranche:    "T1",
			PageCount:  "12",
			Approver:   "Jane Doe",
			SourceLink: "https://x/y",
		},
		ApproverID: "U1",
		ChannelID:  "C1",
		MessageTS:  "2.0",
		ThreadTS:   "1.0",
	}
	body, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := NewJSONConfirmationParser().Parse(body)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestJSONConfirmationParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not json", body: `{invalid}`, want: "failed to unmarshal"},
		{name: "missing job id", body: `{"record":{"date":"d","retailer":"r"},"channel_id":"C"}`, want: "job_id"},
		{name: "missing date", body: `{"job_id":"1","record":{"retailer":"r"},"channel_id":"C"}`, want: "date"},
		{name: "missing retailer", body: `{"job_id":"1","record":{"date":"d"},"channel_id":"C"}`, want: "retailer"},
		{name: "missing channel", body: `{"job_id":"1","record":{"date":"d","retailer":"r"}}`, want: "channel_id"},
	}

	parser := NewJSONConfirmationParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

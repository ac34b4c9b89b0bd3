package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRow(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{name: "plain", fields: []string{"a", "b"}, want: "a,b\n"},
		{name: "comma", fields: []string{"a,b", "c"}, want: "\"a,b\",c\n"},
		{name: "quote", fields: []string{`say "hi"`}, want: "\"say \"\"hi\"\"\"\n"},
		{name: "newline", fields: []string{"line1\nline2"}, want: "\"line1\nline2\"\n"},
		{name: "empty", fields: []string{"", "x"}, want: ",x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeRow(tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestHeaderRow(t *testing.T) {
	assert.Equal(t, "Date,Retailer,Tranche,Page_Count,Approver,Slack_Link\n", string(HeaderRow()))
}

func TestAppendRow(t *testing.T) {
	assert.Equal(t, "a\nb\n", string(appendRow([]byte("a\n"), []byte("b\n"))))
	assert.Equal(t, "a\nb\n", string(appendRow([]byte("a"), []byte("b\n"))))
	assert.Equal(t, "b\n", string(appendRow(nil, []byte("b\n"))))
}

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = DecodeRecords(HeaderRow())
	require.NoError(t, err)
	assert.Empty(t, records)

	content := "Date,Retailer,Tranche,Page_Count,Approver,Slack_Link\r\n" +
		"2024-01-01 10:00:00,\"Alex, Ani\",T1,12,Jane Doe,https://x/y\r\n\r\n"
	records, err = DecodeRecords([]byte(content))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alex, Ani", records[0].Retailer)

	_, err = DecodeRecords([]byte("Date,Retailer\n"))
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestValidateLog(t *testing.T) {
	assert.NoError(t, ValidateLog(HeaderRow()))

	for _, content := range []string{"", "\n", "\r\n\r\n"} {
		assert.ErrorIs(t, ValidateLog([]byte(content)), ErrInvalidHeader, "%q", content)
	}
	assert.ErrorIs(t, ValidateLog([]byte("Retailer,Date\n")), ErrInvalidHeader)
}

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

func TestLaunchFromRecord(t *testing.T) {
	rec := domain.LaunchRecord{
		Date:       "2024-03-05 14:30:00",
		Retailer:   "Madewell",
		Tranche:    "T2",
		PageCount:  "120",
		Approver:   "Jane Doe",
		SourceLink: "https://example.slack.com/archives/C1/p1",
	}

	l, err := LaunchFromRecord("job-1", rec, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "job-1", l.JobID)
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), l.ConfirmedAt)
	assert.Equal(t, "Madewell", l.Retailer)
	assert.Equal(t, "T2", l.Tranche)
	assert.Equal(t, uint32(120), l.Pages)
	assert.Equal(t, "Jane Doe", l.Approver)
	assert.Equal(t, rec.SourceLink, l.SourceLink)
}

func TestLaunchFromRecord_UnparseablePagesAreZero(t *testing.T) {
	rec := domain.LaunchRecord{Date: "2024-03-05 14:30:00", PageCount: "lots"}

	l, err := LaunchFromRecord("", rec, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), l.Pages)
}

func TestLaunchFromRecord_InvalidDate(t *testing.T) {
	rec := domain.LaunchRecord{Date: "05/03/2024"}

	_, err := LaunchFromRecord("", rec, time.UTC)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid launch date")
}

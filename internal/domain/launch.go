package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the second-precision timestamp format used in the log.
const DateLayout = "2006-01-02 15:04:05"

// Sentinel values written when a field could not be determined.
const (
	UnknownRetailer = "Unknown"
	UnknownTranche  = "Unknown"
	NoPageCount     = "0"
	LinkUnavailable = "Link not found"
)

// Header is the column row of the launch log.
var Header = []string{"Date", "Retailer", "Tranche", "Page_Count", "Approver", "Slack_Link"}

// LaunchRecord is one confirmed launch, i.e. one row of the log
type LaunchRecord struct {
	Date       string `json:"date"`
	Retailer   string `json:"retailer"`
	Tranche    string `json:"tranche"`
	PageCount  string `json:"page_count"`
	Approver   string `json:"approver"`
	SourceLink string `json:"source_link"`
}

// NewLaunchRecord stamps a record with the confirmation time.
func NewLaunchRecord(confirmedAt time.Time, retailer, tranche, pageCount, approver, link string) LaunchRecord {
	return LaunchRecord{
		Date:       confirmedAt.Format(DateLayout),
		Retailer:   retailer,
		Tranche:    tranche,
		PageCount:  pageCount,
		Approver:   approver,
		SourceLink: link,
	}
}

// Fields returns the record in column order.
func (r LaunchRecord) Fields() []string {
	return []string{r.Date, r.Retailer, r.Tranche, r.PageCount, r.Approver, r.SourceLink}
}

// RecordFromFields is the inverse of Fields.
func RecordFromFields(fields []string) (LaunchRecord, error) {
	if len(fields) != len(Header) {
		return LaunchRecord{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(fields))
	}
	return LaunchRecord{
		Date:       fields[0],
		Retailer:   fields[1],
		Tranche:    fields[2],
		PageCount:  fields[3],
		Approver:   fields[4],
		SourceLink: fields[5],
	}, nil
}

// ConfirmedAt parses Date. The zero time and an error are returned for
// rows that were hand-edited into another format.
func (r LaunchRecord) ConfirmedAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.Date, loc)
}

// Pages parses PageCount, treating anything unparseable as zero.
func (r LaunchRecord) Pages() int {
	n, err := strconv.Atoi(r.PageCount)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// ErrInvalidHeader is returned when log content does not start with the expected column row.
var ErrInvalidHeader = errors.New("store: invalid header row")

// EncodeRow serializes fields as one CSV line terminated by "\n". Fields
// containing a comma, quote or line break are quoted, embedded quotes doubled.
func EncodeRow(fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	return buf.Bytes(), nil
}

// HeaderRow is the first line of every log resource.
func HeaderRow() []byte {
	row, _ := EncodeRow(domain.Header)
	return row
}

// appendRow returns existing + row, making sure existing ends in a newline first.
func appendRow(existing, row []byte) []byte {
	out := make([]byte, 0, len(existing)+len(row)+1)
	out = append(out, existing...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return append(out, row...)
}

// ValidateLog checks content meant to replace the whole log: it must start
// with the header row and every row must decode.
func ValidateLog(content []byte) error {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	if _, err := r.Read(); errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: missing header row", ErrInvalidHeader)
	}
	_, err := DecodeRecords(content)
	return err
}

// DecodeRecords parses a whole log resource. Blank content yields no
// records; content without the header row is rejected.
func DecodeRecords(content []byte) ([]domain.LaunchRecord, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []domain.LaunchRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !slices.Equal(header, domain.Header) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidHeader, header)
	}

	records := []domain.LaunchRecord{}
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read log: %w", err)
		}
		rec, err := domain.RecordFromFields(fields)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("malformed row on line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

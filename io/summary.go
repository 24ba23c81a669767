package io

import (
	"os"

	"github.com/gocarina/gocsv"
)

// SummaryRow is one component's integrated topology at one snapshot time.
type SummaryRow struct {
	Time      float64 `csv:"time"`
	Component int     `csv:"component"`
	Writhe    float64 `csv:"writhe"`
	Twist     float64 `csv:"twist"`
	Length    float64 `csv:"length"`
}

// SummaryWriter appends snapshot rows to a CSV file, writing the header
// once.
type SummaryWriter struct {
	f           *os.File
	wroteHeader bool
}

// NewSummaryWriter creates (or truncates) the summary file.
func NewSummaryWriter(file string) (*SummaryWriter, error) {
	f, err := os.Create(file)
	if err != nil {
		return nil, err
	}
	return &SummaryWriter{f: f}, nil
}

// Append writes the given rows.
func (w *SummaryWriter) Append(rows []SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}
	if !w.wroteHeader {
		w.wroteHeader = true
		return gocsv.Marshal(&rows, w.f)
	}
	return gocsv.MarshalWithoutHeaders(&rows, w.f)
}

// Close closes the underlying file.
func (w *SummaryWriter) Close() error { return w.f.Close() }

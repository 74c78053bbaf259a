package exporter

import (
	"os"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/nhlapi"
)

const partialSuffix = ".partial"

// RawStatsWriter streams skater summary records to the raw CSV.
// It satisfies nhlapi.Sink. Records go to "<path>.partial" and only Close
// moves them to path, so a failed ingest never leaves a truncated raw file
// where the cleaner would read it.
type RawStatsWriter struct {
	stream *StreamWriter
	path   string
}

// NewRawStatsWriter starts the raw CSV with the fixed column header
func (w *CSVWriter) NewRawStatsWriter(filePath string) (*RawStatsWriter, error) {
	path := w.resolvePath(filePath)
	stream, err := w.CreateStreamWriter(path+partialSuffix, nhlapi.RawColumns)
	if err != nil {
		return nil, err
	}
	return &RawStatsWriter{stream: stream, path: path}, nil
}

// WriteSkaters appends one page of records and flushes it
func (r *RawStatsWriter) WriteSkaters(skaters []nhlapi.SkaterSummary) error {
	for _, s := range skaters {
		if err := r.stream.WriteRecord(s.Row()); err != nil {
			return err
		}
	}
	return r.stream.Flush()
}

// Rows returns the number of records written
func (r *RawStatsWriter) Rows() int {
	return r.stream.Records()
}

// Path returns the raw CSV location
func (r *RawStatsWriter) Path() string {
	return r.path
}

// Close flushes the records and moves them into place
func (r *RawStatsWriter) Close() error {
	if err := r.stream.Close(); err != nil {
		os.Remove(r.stream.Path())
		return err
	}
	if err := os.Rename(r.stream.Path(), r.path); err != nil {
		os.Remove(r.stream.Path())
		return apperrors.NewStorageError("move raw file into place", err).WithContext("path", r.path)
	}
	return nil
}

// Discard drops everything written so far. An existing raw file at Path is
// left untouched.
func (r *RawStatsWriter) Discard() error {
	r.stream.Close()
	if err := os.Remove(r.stream.Path()); err != nil && !os.IsNotExist(err) {
		return apperrors.NewStorageError("remove partial raw file", err).WithContext("path", r.stream.Path())
	}
	return nil
}

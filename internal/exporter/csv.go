package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nhlvis/internal/config"
	apperrors "nhlvis/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes CSV files under the data directory
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV replaces filePath with a CSV of the given headers and records
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("create directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError("open file", err).WithContext("path", fullPath)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return apperrors.NewStorageError("write BOM", err).WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("write headers", err).WithContext("path", fullPath)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("write record %d", i), err).WithContext("path", fullPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("flush csv", err).WithContext("path", fullPath)
	}
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file    *os.File
	writer  *csv.Writer
	path    string
	records int
}

// CreateStreamWriter truncates filePath and writes headers to it
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperrors.NewStorageError("create directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("create file", err).WithContext("path", fullPath)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("write headers", err).WithContext("path", fullPath)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
		path:   fullPath,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return apperrors.NewStorageError("write record", err).WithContext("path", s.path)
	}
	s.records++
	return nil
}

// Flush pushes buffered records to the file
func (s *StreamWriter) Flush() error {
	s.writer.Flush()
	return s.writer.Error()
}

// Records returns the number of records written so far
func (s *StreamWriter) Records() int {
	return s.records
}

// Path returns the resolved file path
func (s *StreamWriter) Path() string {
	return s.path
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return apperrors.NewStorageError("flush csv", err).WithContext("path", s.path)
	}
	return s.file.Close()
}

// resolvePath keeps absolute paths and places relative ones under the data directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return filepath.Join(w.paths.DataDir, filePath)
}

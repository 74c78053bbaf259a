package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains all the application paths.
// Every stage output lives under the data directory:
//
//	data/
//	  ├── raw/nhl_skater_stats.csv      (ingest)
//	  ├── clean/nhl_players_cleaned.csv (clean)
//	  ├── docs/*.png                    (analyze, player)
//	  └── reports/
//	      ├── gaps/*.csv
//	      ├── gaps.xlsx
//	      ├── nhlvis.prom
//	      └── traces.jsonl
type Paths struct {
	DataDir    string
	RawDir     string
	CleanDir   string
	DocsDir    string
	ReportsDir string
	GapsDir    string
	LogsDir    string

	// Well-known files
	RawCSV      string
	CleanedCSV  string
	GapWorkbook string
	MetricsFile string
	TraceFile   string
}

// NewPaths lays out the tree under dataDir
func NewPaths(dataDir, logsDir string) *Paths {
	reportsDir := filepath.Join(dataDir, "reports")
	rawDir := filepath.Join(dataDir, "raw")
	cleanDir := filepath.Join(dataDir, "clean")

	return &Paths{
		DataDir:    dataDir,
		RawDir:     rawDir,
		CleanDir:   cleanDir,
		DocsDir:    filepath.Join(dataDir, "docs"),
		ReportsDir: reportsDir,
		GapsDir:    filepath.Join(reportsDir, "gaps"),
		LogsDir:    logsDir,

		RawCSV:      filepath.Join(rawDir, RawStatsFile),
		CleanedCSV:  filepath.Join(cleanDir, CleanedStatsFile),
		GapWorkbook: filepath.Join(reportsDir, GapWorkbookFile),
		MetricsFile: filepath.Join(reportsDir, MetricsTextFile),
		TraceFile:   filepath.Join(reportsDir, TraceFile),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.CleanDir,
		p.DocsDir,
		p.ReportsDir,
		p.GapsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// ChartPath returns the path of a chart file under docs/
func (p *Paths) ChartPath(name string) string {
	return filepath.Join(p.DocsDir, name)
}

// GapCSVPath returns the path of a gap table export, named after its chart
func (p *Paths) GapCSVPath(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(p.GapsDir, base+".csv")
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

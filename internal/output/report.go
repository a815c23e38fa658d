package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleReportWriter)(nil)
	_ ReportWriter = (*JSONReportWriter)(nil)
)

// ReportFormat selects how a build report is printed.
type ReportFormat string

const (
	FormatConsole ReportFormat = "console"
	FormatJSON    ReportFormat = "json"
)

// BuildReport summarises one build run.
type BuildReport struct {
	RepoPath      string
	OutputDir     string
	Head          string
	Cursor        string
	Walked        int
	LogLines      int
	CacheLines    int
	PagesWritten  int
	PagesExisting int
	Remaining     int
	DiffFailures  int
	Files         int
	Refs          int
	CachePromoted bool
	Warnings      []string
	Duration      time.Duration
}

// Degraded reports whether the run completed with warnings.
func (r *BuildReport) Degraded() bool {
	return len(r.Warnings) > 0
}

// ReportWriter prints build reports.
type ReportWriter interface {
	Write(w io.Writer, report *BuildReport) error
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format ReportFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONReportWriter{}
	default:
		return &ConsoleReportWriter{}
	}
}

// ConsoleReportWriter prints a human-readable summary.
type ConsoleReportWriter struct{}

// Write outputs the report as an aligned table.
func (cw *ConsoleReportWriter) Write(w io.Writer, report *BuildReport) error {
	if report.Degraded() {
		fmt.Fprintln(w, color.YellowString("Build finished with %d warning(s)", len(report.Warnings)))
	} else {
		fmt.Fprintln(w, color.GreenString("Build finished"))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Repository\t%s\n", report.RepoPath)
	fmt.Fprintf(tw, "Output\t%s\n", report.OutputDir)
	if report.Head != "" {
		fmt.Fprintf(tw, "HEAD\t%s\n", report.Head)
	}
	fmt.Fprintf(tw, "Commits walked\t%d\n", report.Walked)
	fmt.Fprintf(tw, "Log lines\t%d\n", report.LogLines)
	fmt.Fprintf(tw, "Commit pages\t%d new, %d existing\n", report.PagesWritten, report.PagesExisting)
	if report.Remaining > 0 {
		fmt.Fprintf(tw, "Not listed\t%d\n", report.Remaining)
	}
	fmt.Fprintf(tw, "Files\t%d\n", report.Files)
	fmt.Fprintf(tw, "Refs\t%d\n", report.Refs)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		fmt.Fprintln(w, color.YellowString("warning: %s", warning))
	}
	return nil
}

// JSONReportWriter prints the report as JSON.
type JSONReportWriter struct{}

// JSONReport is the JSON output structure for a build.
type JSONReport struct {
	Repo          string   `json:"repo"`
	Output        string   `json:"output"`
	Head          string   `json:"head,omitempty"`
	Cursor        string   `json:"cursor,omitempty"`
	Walked        int      `json:"walked"`
	LogLines      int      `json:"logLines"`
	CacheLines    int      `json:"cacheLines"`
	PagesWritten  int      `json:"pagesWritten"`
	PagesExisting int      `json:"pagesExisting"`
	Remaining     int      `json:"remaining"`
	DiffFailures  int      `json:"diffFailures"`
	Files         int      `json:"files"`
	Refs          int      `json:"refs"`
	CachePromoted bool     `json:"cachePromoted"`
	Warnings      []string `json:"warnings"`
	DurationMs    int64    `json:"durationMs"`
}

// Write outputs the report as indented JSON.
func (jw *JSONReportWriter) Write(w io.Writer, report *BuildReport) error {
	warnings := report.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	out := JSONReport{
		Repo:          report.RepoPath,
		Output:        report.OutputDir,
		Head:          report.Head,
		Cursor:        report.Cursor,
		Walked:        report.Walked,
		LogLines:      report.LogLines,
		CacheLines:    report.CacheLines,
		PagesWritten:  report.PagesWritten,
		PagesExisting: report.PagesExisting,
		Remaining:     report.Remaining,
		DiffFailures:  report.DiffFailures,
		Files:         report.Files,
		Refs:          report.Refs,
		CachePromoted: report.CachePromoted,
		Warnings:      warnings,
		DurationMs:    report.Duration.Milliseconds(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

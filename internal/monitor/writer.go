package monitor

import (
	"graphlod/internal/perf"
	"graphlod/internal/report"
)

// SampleWriter is an interface to support different render-sample sinks.
type SampleWriter interface {
	WriteSample(perf.SampleRow) error
}

// WarningWriter handles threshold-crossing events.
type WarningWriter interface {
	WriteWarning(perf.WarningRow) error
}

// ReportWriter handles point-in-time performance reports.
type ReportWriter interface {
	WriteReport(report.Report) error
}

// Optional: sample writers may support batch mode
type batchSampleWriter interface {
	WriteSamples([]perf.SampleRow) error
}

// Optional: warning writers may support batch mode
type batchWarningWriter interface {
	WriteWarnings([]perf.WarningRow) error
}

// SampleWriterFunc adapts a function to the SampleWriter interface.
type SampleWriterFunc func(perf.SampleRow) error

// WriteSample implements SampleWriter.
func (f SampleWriterFunc) WriteSample(row perf.SampleRow) error { return f(row) }

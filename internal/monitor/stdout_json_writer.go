package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"graphlod/internal/perf"
	"graphlod/internal/report"
)

// JSONStdoutWriter prints samples, warnings, and reports as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteSample outputs a sample row in JSON format.
func (w *JSONStdoutWriter) WriteSample(row perf.SampleRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteSamples outputs multiple sample rows in JSON format.
func (w *JSONStdoutWriter) WriteSamples(rows []perf.SampleRow) error {
	for _, r := range rows {
		_ = w.WriteSample(r)
	}
	return nil
}

// WriteWarning outputs a warning row in JSON format.
func (w *JSONStdoutWriter) WriteWarning(row perf.WarningRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteWarnings outputs multiple warning rows in JSON format.
func (w *JSONStdoutWriter) WriteWarnings(rows []perf.WarningRow) error {
	for _, r := range rows {
		_ = w.WriteWarning(r)
	}
	return nil
}

// WriteReport outputs a report in JSON format.
func (w *JSONStdoutWriter) WriteReport(rep report.Report) error {
	data, _ := json.Marshal(rep)
	fmt.Fprintln(w.out, string(data))
	return nil
}

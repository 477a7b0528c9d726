package monitor

import (
	"graphlod/internal/perf"
	"graphlod/internal/report"
)

// MultiWriter fans out samples, warnings, and reports to multiple writers.
type MultiWriter struct {
	sampleWriters  []SampleWriter
	warningWriters []WarningWriter
	reportWriters  []ReportWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []SampleWriter, wws []WarningWriter, rws []ReportWriter) *MultiWriter {
	return &MultiWriter{sampleWriters: sws, warningWriters: wws, reportWriters: rws}
}

// WriteSample sends a sample row to all sample writers.
func (mw *MultiWriter) WriteSample(row perf.SampleRow) error {
	for _, w := range mw.sampleWriters {
		if err := w.WriteSample(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSamples sends multiple sample rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteSamples(rows []perf.SampleRow) error {
	for _, w := range mw.sampleWriters {
		if bw, ok := w.(batchSampleWriter); ok {
			if err := bw.WriteSamples(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteSample(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteWarning sends a warning row to all warning writers.
func (mw *MultiWriter) WriteWarning(row perf.WarningRow) error {
	for _, w := range mw.warningWriters {
		if err := w.WriteWarning(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteWarnings sends multiple warnings to all writers, using batch if supported.
func (mw *MultiWriter) WriteWarnings(rows []perf.WarningRow) error {
	for _, w := range mw.warningWriters {
		if bw, ok := w.(batchWarningWriter); ok {
			if err := bw.WriteWarnings(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteWarning(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteReport sends a report to all report writers.
func (mw *MultiWriter) WriteReport(rep report.Report) error {
	for _, w := range mw.reportWriters {
		if err := w.WriteReport(rep); err != nil {
			return err
		}
	}
	return nil
}

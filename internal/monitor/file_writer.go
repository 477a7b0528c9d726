package monitor

import (
	"encoding/json"
	"os"

	"graphlod/internal/perf"
	"graphlod/internal/report"
)

// FileWriter writes samples, warnings, and reports to JSONL files.
type FileWriter struct {
	sampleFile *os.File
	warnFile   *os.File
	reportFile *os.File
	sampleEnc  *json.Encoder
	warnEnc    *json.Encoder
	reportEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. warningPath or reportPath may be empty
// to skip those logs.
func NewFileWriter(samplePath, warningPath, reportPath string) (*FileWriter, error) {
	sf, err := os.Create(samplePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{sampleFile: sf, sampleEnc: json.NewEncoder(sf)}
	if warningPath != "" {
		wf, err := os.Create(warningPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.warnFile = wf
		fw.warnEnc = json.NewEncoder(wf)
	}
	if reportPath != "" {
		rf, err := os.Create(reportPath)
		if err != nil {
			if fw.warnFile != nil {
				fw.warnFile.Close()
			}
			sf.Close()
			return nil, err
		}
		fw.reportFile = rf
		fw.reportEnc = json.NewEncoder(rf)
	}
	return fw, nil
}

// WriteSample logs a single sample row.
func (f *FileWriter) WriteSample(row perf.SampleRow) error {
	return f.sampleEnc.Encode(row)
}

// WriteSamples logs multiple sample rows.
func (f *FileWriter) WriteSamples(rows []perf.SampleRow) error {
	for _, r := range rows {
		if err := f.WriteSample(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteWarning logs a single warning row, if enabled.
func (f *FileWriter) WriteWarning(row perf.WarningRow) error {
	if f.warnEnc == nil {
		return nil
	}
	return f.warnEnc.Encode(row)
}

// WriteWarnings logs multiple warning rows.
func (f *FileWriter) WriteWarnings(rows []perf.WarningRow) error {
	for _, r := range rows {
		if err := f.WriteWarning(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport logs a report, if enabled.
func (f *FileWriter) WriteReport(rep report.Report) error {
	if f.reportEnc == nil {
		return nil
	}
	return f.reportEnc.Encode(rep)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.sampleFile != nil {
		if e := f.sampleFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.warnFile != nil {
		if e := f.warnFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.reportFile != nil {
		if e := f.reportFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

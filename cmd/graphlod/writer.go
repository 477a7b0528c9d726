package main

import (
	"os"

	"graphlod/internal/config"
	"graphlod/internal/monitor"
)

// newWriters sets up sample, warning, and report writers based on flags and
// env vars. It returns the writers and a cleanup function to close any
// resources. The report writer is nil when the selected sink has no report
// surface (GreptimeDB ingestion).
func newWriters(cfg *config.Config, printOnly, color bool, tui *monitor.TUIWriter, logFile string) (monitor.SampleWriter, monitor.WarningWriter, monitor.ReportWriter, func(), error) {
	cleanup := func() {}

	var writer monitor.SampleWriter
	var warnWriter monitor.WarningWriter
	var repWriter monitor.ReportWriter

	switch {
	case tui != nil:
		writer, warnWriter, repWriter = tui, tui, tui
	case color:
		cw := monitor.NewColorStdoutWriter(cfg)
		writer, warnWriter, repWriter = cw, cw, cw
	case printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "":
		jw := monitor.NewJSONStdoutWriter()
		writer, warnWriter, repWriter = jw, jw, jw
	default:
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		gw, err := monitor.NewGreptimeDBWriter(endpoint, database, os.Getenv("GREPTIMEDB_TABLE"), os.Getenv("GREPTIMEDB_WARNING_TABLE"))
		if err != nil {
			return nil, nil, nil, nil, err
		}
		writer, warnWriter = gw, gw
	}

	if logFile == "" {
		return writer, warnWriter, repWriter, cleanup, nil
	}

	fw, err := monitor.NewFileWriter(logFile, logFile+".warnings", logFile+".reports")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	reportWriters := []monitor.ReportWriter{fw}
	if repWriter != nil {
		reportWriters = append([]monitor.ReportWriter{repWriter}, reportWriters...)
	}
	mw := monitor.NewMultiWriter(
		[]monitor.SampleWriter{writer, fw},
		[]monitor.WarningWriter{warnWriter, fw},
		reportWriters,
	)
	cleanup = func() { fw.Close() }
	return mw, mw, mw, cleanup, nil
}

// ColorStdoutWriter prints human-friendly, colorized governor output to STDOUT.
package monitor

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"graphlod/internal/config"
	"graphlod/internal/perf"
	"graphlod/internal/report"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.Config
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.Config) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	fmt.Fprintln(w.out, "Governor Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Low FPS Threshold:\t%.0f\n", w.cfg.LowFPSThreshold)
	fmt.Fprintf(tw, "Memory Warning Threshold:\t%.2f\n", w.cfg.MemoryWarningThreshold)
	fmt.Fprintf(tw, "Auto LOD:\t%t\n", w.cfg.EnableAutoLOD)
	fmt.Fprintf(tw, "Keep-Alive Interval (ms):\t%d\n", w.cfg.KeepAliveIntervalMs)
	fmt.Fprintf(tw, "Sampling Strategy:\t%s\n", w.cfg.SamplingStrategy)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func fpsColor(fps float64) string {
	switch {
	case fps >= 50:
		return colorGreen
	case fps >= 30:
		return colorYellow
	default:
		return colorRed
	}
}

// WriteSample outputs a single sample row in colorized format.
func (w *ColorStdoutWriter) WriteSample(row perf.SampleRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%ssession=%s%s ", colorBlue, row.SessionID, colorReset)
	fmt.Fprintf(w.out, "%srender=%.2fms%s ", colorCyan, row.RenderTimeMs, colorReset)
	fmt.Fprintf(w.out, "%sfps=%.1f%s ", fpsColor(row.FPS), row.FPS, colorReset)
	fmt.Fprintf(w.out, "%snodes=%d%s ", colorGreen, row.NodeCount, colorReset)
	fmt.Fprintf(w.out, "%sedges=%d%s ", colorYellow, row.EdgeCount, colorReset)
	fmt.Fprintf(w.out, "%slod=%d%s", colorMagenta, row.LODLevel, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteSamples outputs multiple sample rows.
func (w *ColorStdoutWriter) WriteSamples(rows []perf.SampleRow) error {
	for _, r := range rows {
		_ = w.WriteSample(r)
	}
	return nil
}

// WriteWarning prints a warning event to STDOUT.
func (w *ColorStdoutWriter) WriteWarning(row perf.WarningRow) error {
	w.once.Do(w.printOverview)
	sev := colorYellow
	if row.Severity == perf.SeverityError {
		sev = colorRed
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sWARNING%s severity=%s msg=%s\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		sev, colorReset, row.Severity, row.Message)
	return nil
}

// WriteWarnings prints multiple warnings.
func (w *ColorStdoutWriter) WriteWarnings(rows []perf.WarningRow) error {
	for _, r := range rows {
		_ = w.WriteWarning(r)
	}
	return nil
}

// WriteReport prints a report summary to STDOUT.
func (w *ColorStdoutWriter) WriteReport(rep report.Report) error {
	w.once.Do(w.printOverview)
	statusColor := colorGreen
	switch rep.Status {
	case report.StatusFair:
		statusColor = colorYellow
	case report.StatusPoor:
		statusColor = colorRed
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sREPORT%s status=%s%s%s tier=%s renders=%d nodes=%d edges=%d\n",
		colorGray, rep.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, colorReset,
		statusColor, rep.Status, colorReset,
		rep.Tier, rep.Metrics.RenderCount, rep.NodeCount, rep.EdgeCount)
	for _, rec := range rep.Recommendations {
		fmt.Fprintf(w.out, "  %s- %s%s\n", colorGray, rec, colorReset)
	}
	return nil
}

// Row types streamed to the configured sinks, in GreptimeDB-friendly shape.
package perf

import (
	"os"
	"time"
)

// SampleRow records one render event together with the governor state that
// produced it.
type SampleRow struct {
	SessionID    string    `json:"session_id"` // TAG
	RenderTimeMs float64   `json:"render_time_ms"`
	FPS          float64   `json:"fps"`
	NodeCount    int       `json:"node_count"`
	EdgeCount    int       `json:"edge_count"`
	LODLevel     int       `json:"lod_level"`
	Timestamp    time.Time `json:"ts"` // TIME INDEX
}

// SampleTableName is the GreptimeDB table for render samples. It can be
// overridden via the GREPTIMEDB_TABLE environment variable.
var SampleTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "render_samples"
}()

func (SampleRow) TableName() string {
	return SampleTableName
}

// WarningRow records one threshold crossing.
type WarningRow struct {
	SessionID string    `json:"session_id"` // TAG
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// Warning severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

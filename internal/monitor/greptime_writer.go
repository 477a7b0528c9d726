package monitor

import (
	"context"
	"log"

	"graphlod/internal/perf"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter streams render samples and warnings to GreptimeDB.
type GreptimeDBWriter struct {
	client      greptimeClient
	sampleTable string
	warnTable   string
}

// NewGreptimeDBWriter creates a GreptimeDB writer. warningTable may be empty
// to skip warning ingestion.
func NewGreptimeDBWriter(endpoint, database, sampleTable, warningTable string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if sampleTable == "" {
		sampleTable = perf.SampleTableName
	}
	return &GreptimeDBWriter{
		client:      client,
		sampleTable: sampleTable,
		warnTable:   warningTable,
	}, nil
}

// WriteSample inserts a single sample row.
func (w *GreptimeDBWriter) WriteSample(row perf.SampleRow) error {
	return w.WriteSamples([]perf.SampleRow{row})
}

// WriteSamples inserts multiple sample rows.
func (w *GreptimeDBWriter) WriteSamples(rows []perf.SampleRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.sampleTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("session_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("render_time_ms", types.FLOAT); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("fps", types.FLOAT); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("node_count", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("edge_count", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("lod_level", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(r.SessionID, r.RenderTimeMs, r.FPS, int64(r.NodeCount), int64(r.EdgeCount), int64(r.LODLevel), r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] sample write failed: %v", err)
		return err
	}
	return nil
}

// WriteWarning inserts a single warning row, if enabled.
func (w *GreptimeDBWriter) WriteWarning(row perf.WarningRow) error {
	return w.WriteWarnings([]perf.WarningRow{row})
}

// WriteWarnings inserts multiple warning rows.
func (w *GreptimeDBWriter) WriteWarnings(rows []perf.WarningRow) error {
	if w.warnTable == "" || len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.warnTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("session_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("message", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("severity", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(r.SessionID, r.ID, r.Message, r.Severity, r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] warning write failed: %v", err)
		return err
	}
	return nil
}

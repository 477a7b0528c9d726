package monitor

import (
	"testing"

	"graphlod/internal/perf"
)

// batchRecorder counts batch calls to verify the batch fast path is taken.
type batchRecorder struct {
	singles int
	batches int
}

func (b *batchRecorder) WriteSample(row perf.SampleRow) error {
	b.singles++
	return nil
}

func (b *batchRecorder) WriteSamples(rows []perf.SampleRow) error {
	b.batches++
	return nil
}

func TestMultiWriter_FansOut(t *testing.T) {
	a := &MockSampleWriter{}
	b := &MockSampleWriter{}
	mw := NewMultiWriter([]SampleWriter{a, b}, nil, nil)

	if err := mw.WriteSample(perf.SampleRow{SessionID: "s1"}); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if len(a.Rows) != 1 || len(b.Rows) != 1 {
		t.Errorf("fan-out incomplete: %d/%d", len(a.Rows), len(b.Rows))
	}
}

func TestMultiWriter_BatchUpgrade(t *testing.T) {
	batcher := &batchRecorder{}
	plain := &MockSampleWriter{}
	mw := NewMultiWriter([]SampleWriter{batcher, plain}, nil, nil)

	rows := []perf.SampleRow{{SessionID: "a"}, {SessionID: "b"}}
	if err := mw.WriteSamples(rows); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	if batcher.batches != 1 || batcher.singles != 0 {
		t.Errorf("batch-capable writer should get one batch call, got %d batches %d singles", batcher.batches, batcher.singles)
	}
	if len(plain.Rows) != 2 {
		t.Errorf("plain writer should get per-row calls, got %d", len(plain.Rows))
	}
}

func TestMultiWriter_WarningFanOut(t *testing.T) {
	a := &MockWarningWriter{}
	b := &MockWarningWriter{}
	mw := NewMultiWriter(nil, []WarningWriter{a, b}, nil)

	if err := mw.WriteWarning(perf.WarningRow{Message: "m"}); err != nil {
		t.Fatalf("WriteWarning: %v", err)
	}
	if len(a.Warnings) != 1 || len(b.Warnings) != 1 {
		t.Errorf("fan-out incomplete: %d/%d", len(a.Warnings), len(b.Warnings))
	}
}

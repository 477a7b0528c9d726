package monitor

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"graphlod/internal/perf"
)

// Replay feeds recorded sample rows from r to writer. A speed >0 paces
// playback by the recorded timestamps; speed <= 0 inserts no delay.
func Replay(r io.Reader, writer SampleWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var row perf.SampleRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !prev.IsZero() && speed > 0 {
			diff := row.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.WriteSample(row); err != nil {
			return err
		}
		prev = row.Timestamp
	}
}

// ReplayFile opens a JSONL sample log and replays its rows.
func ReplayFile(path string, writer SampleWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Replay(f, writer, speed)
}

package obs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

const (
	scannerInitialBuf = 64 * 1024
	scannerMaxBuf     = 10 * 1024 * 1024
)

var scannerBufPool = sync.Pool{
	New: func() any { return make([]byte, 0, scannerInitialBuf) },
}

// RecordType identifies the kind of trace record in a JSONL stream.
type RecordType string

const (
	RecordFrame       RecordType = "frame"        // one rendered frame's hash/dirty summary
	RecordInputEvent  RecordType = "input"         // a decoded key/wheel event
	RecordGoldenCheck RecordType = "golden_check"  // result of comparing a frame to its golden
	RecordSessionMeta RecordType = "session_meta"  // start-of-trace metadata
)

// Record is the envelope for every line of a trace file: one JSON object
// per line, append-only, so a trace can be tailed live or replayed after
// the fact without ever parsing the whole file up front.
type Record struct {
	Version int             `json:"v"`
	Type    RecordType      `json:"type"`
	TS      int64           `json:"ts"` // unix nanos
	Data    json.RawMessage `json:"data,omitempty"`
}

// Unmarshal decodes the record's Data payload into v.
func (r *Record) Unmarshal(v any) error {
	if r.Data == nil {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// FrameRecord is the Data payload for RecordFrame.
type FrameRecord struct {
	Seq        uint64 `json:"seq"`
	Hash       uint64 `json:"hash"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	DirtyRows  int    `json:"dirty_rows"`
	DirtyCells int    `json:"dirty_cells"`
	RenderNs   int64  `json:"render_ns"`
	FlushNs    int64  `json:"flush_ns"`
}

// GoldenCheckRecord is the Data payload for RecordGoldenCheck.
type GoldenCheckRecord struct {
	Name    string   `json:"name"`
	Matched bool     `json:"matched"`
	Mismatch *Mismatch `json:"mismatch,omitempty"`
}

// Writer appends Records to an underlying stream as newline-delimited JSON.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	seq uint64
}

// NewWriter creates a trace Writer over w (typically an append-mode file).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord marshals data and appends it as one JSONL record of the given
// type, stamped with ts (unix nanoseconds) supplied by the caller — the
// package never calls time.Now itself, keeping trace generation
// reproducible under replay.
func (w *Writer) WriteRecord(ts int64, recType RecordType, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", recType, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	rec := Record{Version: 1, Type: recType, TS: ts, Data: raw}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record envelope: %w", err)
	}
	line = append(line, '\n')
	_, err = w.w.Write(line)
	return err
}

// ReadRecords decodes every record from r, using a pooled scanner buffer so
// repeated trace loads (e.g. in a test suite replaying many golden traces)
// don't re-allocate per call.
func ReadRecords(r io.Reader) ([]Record, error) {
	buf := scannerBufPool.Get().([]byte)
	defer scannerBufPool.Put(buf[:0])

	scanner := bufio.NewScanner(r)
	scanner.Buffer(buf[:0], scannerMaxBuf)

	var records []Record
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("decode trace record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan trace: %w", err)
	}
	return records, nil
}

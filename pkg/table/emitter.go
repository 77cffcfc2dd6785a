package table

import "fmt"

// Emitter converts raw sample columns to physical units and streams retained
// rows to a sink. It is stateful across chunks: the absolute sample count
// (and with it the downsample phase) carries over from one chunk to the next.
type Emitter struct {
	sink  Sink
	cfg   Config
	begun bool

	dataLines      int64 // samples seen
	tableDataLines int64 // rows emitted

	row []float64 // reused per row
}

// NewEmitter creates an emitter writing to sink.
func NewEmitter(sink Sink, cfg Config) *Emitter {
	if cfg.Factor <= 0 {
		cfg.Factor = DefaultFactor
	}
	return &Emitter{sink: sink, cfg: cfg}
}

// EmitChunk emits the retained rows of one data chunk. The first call also
// emits the preamble and header row. cols must hold one column per channel,
// in channel order, all with the same sample count.
func (e *Emitter) EmitChunk(meta Meta, cols []Column) error {
	if !e.begun {
		if e.cfg.Downsample {
			meta.DownsampleFactor = e.cfg.Factor
		}
		if err := e.sink.Preamble(meta); err != nil {
			return err
		}
		names := make([]string, len(meta.Channels))
		for i, ch := range meta.Channels {
			names[i] = ch.Name
		}
		if err := e.sink.HeaderRow(names); err != nil {
			return err
		}
		e.begun = true
	}

	if len(cols) == 0 {
		return nil
	}
	n := len(cols[0].Samples)
	for i, col := range cols {
		if len(col.Samples) != n {
			return fmt.Errorf("channel %d has %d samples, channel 0 has %d: %w",
				i, len(col.Samples), n, ErrRaggedChunk)
		}
	}

	if cap(e.row) < len(cols) {
		e.row = make([]float64, len(cols))
	}
	row := e.row[:len(cols)]

	for i := 0; i < n; i++ {
		e.dataLines++
		if e.cfg.Downsample && (e.dataLines-1)%e.cfg.Factor != 0 {
			continue
		}
		e.tableDataLines++
		for j, col := range cols {
			row[j] = col.Samples[i]*col.Scale + col.Offset
		}
		if err := e.sink.Row(e.dataLines, row); err != nil {
			return err
		}
	}
	return nil
}

// DataLines returns the number of sample rows seen, including skipped ones.
func (e *Emitter) DataLines() int64 {
	return e.dataLines
}

// RowsEmitted returns the number of rows actually written.
func (e *Emitter) RowsEmitted() int64 {
	return e.tableDataLines
}

// Close flushes the sink.
func (e *Emitter) Close() error {
	return e.sink.Close()
}

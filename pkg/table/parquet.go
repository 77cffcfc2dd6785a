package table

import (
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// ParquetSink renders rows as a Parquet file with one DOUBLE column per
// channel (plus an optional INT64 sample-index column). The preamble is
// carried as file key/value metadata.
//
// Parquet groups order their fields by name, so the file's physical column
// order is alphabetical; each column keeps its channel name.
type ParquetSink struct {
	out      io.Writer
	rowIndex bool

	meta   Meta
	writer *parquet.GenericWriter[any]
	colIdx []int // channel position -> leaf column index
	idxCol int   // leaf column index of the sample column, -1 when disabled
	ncols  int
}

// NewParquetSink creates a Parquet sink writing to w.
func NewParquetSink(w io.Writer, rowIndex bool) *ParquetSink {
	return &ParquetSink{out: w, rowIndex: rowIndex, idxCol: -1}
}

// Preamble stashes the metadata; it is written as key/value metadata when
// the schema is known.
func (s *ParquetSink) Preamble(m Meta) error {
	s.meta = m
	return nil
}

// HeaderRow builds the schema from the channel names and opens the writer.
func (s *ParquetSink) HeaderRow(names []string) error {
	group := parquet.Group{}
	for _, name := range names {
		if _, dup := group[name]; dup {
			return fmt.Errorf("duplicate channel name %q cannot be a parquet column", name)
		}
		group[name] = parquet.Leaf(parquet.DoubleType)
	}
	if s.rowIndex {
		if _, dup := group[sampleColumn]; dup {
			return fmt.Errorf("channel name %q collides with the sample-index column", sampleColumn)
		}
		group[sampleColumn] = parquet.Leaf(parquet.Int64Type)
	}

	schema := parquet.NewSchema("samples", group)

	// Field order in the schema is alphabetical; map each channel to its
	// leaf column index so rows can be assembled in schema order.
	byName := make(map[string]int, len(names)+1)
	for i, col := range schema.Columns() {
		byName[col[0]] = i
	}
	s.colIdx = make([]int, len(names))
	for i, name := range names {
		s.colIdx[i] = byName[name]
	}
	if s.rowIndex {
		s.idxCol = byName[sampleColumn]
	}
	s.ncols = len(byName)

	opts := []parquet.WriterOption{
		schema,
		parquet.KeyValueMetadata("recording_date", s.meta.RecordingDate),
		parquet.KeyValueMetadata("channels", strconv.Itoa(len(s.meta.Channels))),
		parquet.KeyValueMetadata("per_channel_sample_rate",
			strconv.FormatFloat(s.meta.SampleRate, 'g', 15, 64)),
	}
	if s.meta.DownsampleFactor > 0 {
		opts = append(opts, parquet.KeyValueMetadata("downsample_factor",
			strconv.FormatInt(s.meta.DownsampleFactor, 10)))
	}
	for _, ch := range s.meta.Channels {
		if ch.Unit != "" {
			opts = append(opts, parquet.KeyValueMetadata("unit."+ch.Name, ch.Unit))
		}
	}

	s.writer = parquet.NewGenericWriter[any](s.out, opts...)
	return nil
}

// Row appends one row.
func (s *ParquetSink) Row(index int64, values []float64) error {
	row := make(parquet.Row, s.ncols)
	for i, v := range values {
		col := s.colIdx[i]
		row[col] = parquet.ValueOf(v).Level(0, 0, col)
	}
	if s.idxCol >= 0 {
		row[s.idxCol] = parquet.ValueOf(index).Level(0, 0, s.idxCol)
	}
	if _, err := s.writer.WriteRows([]parquet.Row{row}); err != nil {
		return fmt.Errorf("write parquet row: %w", err)
	}
	return nil
}

// Close finalizes the Parquet footer.
func (s *ParquetSink) Close() error {
	if s.writer == nil {
		return nil
	}
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

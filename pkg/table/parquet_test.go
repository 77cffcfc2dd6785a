package table

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestParquetSinkRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sink := NewParquetSink(&buf, false)
	e := NewEmitter(sink, Config{})

	meta := Meta{
		RecordingDate: "2024-01-01 00.00.00.000",
		SampleRate:    1000,
		Channels: []ChannelMeta{
			{Name: "A", Unit: "V"},
			{Name: "B", Unit: "mA"},
		},
	}
	cols := []Column{
		{Scale: 1, Offset: 0, Samples: []float64{10, 20}},
		{Scale: 2, Offset: 1, Samples: []float64{5, 6}},
	}
	if err := e.EmitChunk(meta, cols); err != nil {
		t.Fatalf("EmitChunk(): %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	file, err := parquet.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open parquet output: %v", err)
	}
	if file.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", file.NumRows())
	}

	// Group fields order alphabetically, so A is column 0, B column 1.
	columns := file.Schema().Columns()
	if len(columns) != 2 || columns[0][0] != "A" || columns[1][0] != "B" {
		t.Fatalf("schema columns = %v, want [[A] [B]]", columns)
	}

	if v, ok := file.Lookup("recording_date"); !ok || v != "2024-01-01 00.00.00.000" {
		t.Errorf("recording_date metadata = %q, %v", v, ok)
	}
	if v, ok := file.Lookup("unit.B"); !ok || v != "mA" {
		t.Errorf("unit.B metadata = %q, %v", v, ok)
	}

	rows := file.RowGroups()[0].Rows()
	defer rows.Close()
	rowBuf := make([]parquet.Row, 2)
	n, _ := rows.ReadRows(rowBuf)
	if n != 2 {
		t.Fatalf("ReadRows() = %d, want 2", n)
	}
	want := [][2]float64{{10, 11}, {20, 13}}
	for i := 0; i < n; i++ {
		a := rowBuf[i][0].Double()
		b := rowBuf[i][1].Double()
		if a != want[i][0] || b != want[i][1] {
			t.Errorf("row %d = [%v %v], want %v", i, a, b, want[i])
		}
	}
}

func TestParquetSinkRowIndexColumn(t *testing.T) {
	var buf bytes.Buffer
	sink := NewParquetSink(&buf, true)
	if err := sink.Preamble(Meta{Channels: []ChannelMeta{{Name: "A"}}}); err != nil {
		t.Fatalf("Preamble(): %v", err)
	}
	if err := sink.HeaderRow([]string{"A"}); err != nil {
		t.Fatalf("HeaderRow(): %v", err)
	}
	if err := sink.Row(7, []float64{3.5}); err != nil {
		t.Fatalf("Row(): %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	file, err := parquet.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open parquet output: %v", err)
	}
	columns := file.Schema().Columns()
	if len(columns) != 2 || columns[0][0] != "A" || columns[1][0] != sampleColumn {
		t.Fatalf("schema columns = %v, want [[A] [sample]]", columns)
	}

	rows := file.RowGroups()[0].Rows()
	defer rows.Close()
	rowBuf := make([]parquet.Row, 1)
	if n, _ := rows.ReadRows(rowBuf); n != 1 {
		t.Fatalf("ReadRows() = %d, want 1", n)
	}
	if got := rowBuf[0][0].Double(); got != 3.5 {
		t.Errorf("A = %v, want 3.5", got)
	}
	if got := rowBuf[0][1].Int64(); got != 7 {
		t.Errorf("sample = %d, want 7", got)
	}
}

func TestParquetSinkDuplicateChannelName(t *testing.T) {
	sink := NewParquetSink(&bytes.Buffer{}, false)
	if err := sink.Preamble(Meta{}); err != nil {
		t.Fatalf("Preamble(): %v", err)
	}
	if err := sink.HeaderRow([]string{"A", "A"}); err == nil {
		t.Fatal("HeaderRow() with duplicate names succeeded, want error")
	}
}

func TestParquetSinkCloseWithoutRows(t *testing.T) {
	sink := NewParquetSink(&bytes.Buffer{}, false)
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() on unused sink: %v", err)
	}
}

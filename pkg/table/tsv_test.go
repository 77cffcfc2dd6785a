package table

import (
	"bytes"
	"strings"
	"testing"
)

func TestTSVSinkOutput(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTSVSink(&buf, TSVOptions{})
	e := NewEmitter(sink, Config{})

	meta := Meta{
		RecordingDate: "2024-01-01 00.00.00.000",
		SampleRate:    50000,
		Channels: []ChannelMeta{
			{Name: "A", Number: 1, Unit: "V", DataType: "int16", RangeMin: -10, RangeMax: 10, DataScale: 0.5},
			{Name: "B", Number: 2, Unit: "mA", DataType: "double", DataScale: 1},
		},
	}
	cols := []Column{
		{Scale: 0.5, Offset: 0, Samples: []float64{10, 20}},
		{Scale: 1, Offset: 0, Samples: []float64{1.25, -3}},
	}
	if err := e.EmitChunk(meta, cols); err != nil {
		t.Fatalf("EmitChunk(): %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	wantPrefix := []string{
		"RecordingDate:\t2024-01-01 00.00.00.000",
		"Channels:\t2",
		"PerChannelSampleRate:\t50000",
		"",
	}
	for i, want := range wantPrefix {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}

	if !strings.HasPrefix(lines[4], "ChannelName\tChannelNumber\tUnits\tDataType") {
		t.Errorf("channel metadata header = %q", lines[4])
	}
	if lines[5] != "A\t1\tV\tint16\t-10\t10\t0.5\t0\t0\t0" {
		t.Errorf("channel A metadata = %q", lines[5])
	}

	out := buf.String()
	if !strings.Contains(out, "\nA\tB\n5\t1.25\n10\t-3\n") {
		t.Errorf("data section missing or wrong:\n%s", out)
	}
}

func TestTSVSinkRowIndex(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTSVSink(&buf, TSVOptions{RowIndex: true})
	if err := sink.HeaderRow([]string{"A"}); err != nil {
		t.Fatalf("HeaderRow(): %v", err)
	}
	if err := sink.Row(42, []float64{7}); err != nil {
		t.Fatalf("Row(): %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}
	want := "sample\tA\n42\t7\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTSVSinkCustomSeparator(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTSVSink(&buf, TSVOptions{Separator: ","})
	if err := sink.Row(1, []float64{1.5, 2}); err != nil {
		t.Fatalf("Row(): %v", err)
	}
	sink.Close()
	if buf.String() != "1.5,2\n" {
		t.Errorf("output = %q, want %q", buf.String(), "1.5,2\n")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.25, "1.25"},
		{-3, "-3"},
		{1.0 / 3.0, "0.333333333333333"},
		{1e21, "1e+21"},
	}
	for _, tc := range cases {
		if got := formatValue(tc.in); got != tc.want {
			t.Errorf("formatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

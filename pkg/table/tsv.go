package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// DefaultSeparator is the default output field separator.
const DefaultSeparator = "\t"

// sampleColumn names the optional absolute-sample-index column.
const sampleColumn = "sample"

// TSVOptions configures a delimited-text sink.
type TSVOptions struct {
	// Separator is the field separator. DefaultSeparator when empty.
	Separator string
	// RowIndex renders the absolute sample index as the first column.
	RowIndex bool
}

// TSVSink renders rows as delimited text. Output is line-buffered; Close
// flushes it.
type TSVSink struct {
	w        *bufio.Writer
	sep      string
	rowIndex bool
}

// NewTSVSink creates a delimited-text sink writing to w.
func NewTSVSink(w io.Writer, opts TSVOptions) *TSVSink {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return &TSVSink{
		w:        bufio.NewWriter(w),
		sep:      sep,
		rowIndex: opts.RowIndex,
	}
}

// Preamble writes the metadata block: recording date, channel count, sample
// rate, downsample factor when enabled, and one metadata line per channel.
func (s *TSVSink) Preamble(m Meta) error {
	fmt.Fprintf(s.w, "RecordingDate:%s%s\n", s.sep, m.RecordingDate)
	fmt.Fprintf(s.w, "Channels:%s%d\n", s.sep, len(m.Channels))
	fmt.Fprintf(s.w, "PerChannelSampleRate:%s%s\n", s.sep, formatValue(m.SampleRate))
	if m.DownsampleFactor > 0 {
		fmt.Fprintf(s.w, "DownsampleFactor:%s%d\n", s.sep, m.DownsampleFactor)
	}
	fmt.Fprintln(s.w)

	cols := []string{"ChannelName", "ChannelNumber", "Units", "DataType",
		"RangeMin", "RangeMax", "DataScale", "DataOffset", "SensorScale", "SensorOffset"}
	s.writeFields(cols)
	for _, ch := range m.Channels {
		s.writeFields([]string{
			ch.Name,
			strconv.FormatInt(int64(ch.Number), 10),
			ch.Unit,
			ch.DataType,
			strconv.FormatInt(int64(ch.RangeMin), 10),
			strconv.FormatInt(int64(ch.RangeMax), 10),
			formatValue(ch.DataScale),
			formatValue(ch.DataOffset),
			formatValue(ch.SensorScale),
			formatValue(ch.SensorOffset),
		})
	}
	fmt.Fprintln(s.w)
	return nil
}

// HeaderRow writes the channel-name header line.
func (s *TSVSink) HeaderRow(names []string) error {
	if s.rowIndex {
		s.w.WriteString(sampleColumn)
		s.w.WriteString(s.sep)
	}
	s.writeFields(names)
	return nil
}

// Row writes one data row.
func (s *TSVSink) Row(index int64, values []float64) error {
	if s.rowIndex {
		s.w.WriteString(strconv.FormatInt(index, 10))
		s.w.WriteString(s.sep)
	}
	for i, v := range values {
		if i > 0 {
			s.w.WriteString(s.sep)
		}
		s.w.WriteString(formatValue(v))
	}
	return s.w.WriteByte('\n')
}

// Close flushes buffered output.
func (s *TSVSink) Close() error {
	return s.w.Flush()
}

func (s *TSVSink) writeFields(fields []string) {
	for i, f := range fields {
		if i > 0 {
			s.w.WriteString(s.sep)
		}
		s.w.WriteString(f)
	}
	s.w.WriteByte('\n')
}

// formatValue renders a physical value with 15 significant digits, enough to
// round-trip a float64.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}

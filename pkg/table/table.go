// Package table renders decoded, physically-scaled samples as a tabular
// stream. The Emitter owns the row policy (downsampling, counters, unit
// conversion, preamble-once); Sinks only format rows.
package table

import "errors"

// ErrRaggedChunk indicates a data chunk whose channels decoded to differing
// sample counts. Rows cannot be zipped from such a chunk.
var ErrRaggedChunk = errors.New("channels have differing sample counts in chunk")

// Config is the emitter's row policy. Rendering choices such as the sample
// index column belong to the sinks.
type Config struct {
	// Downsample enables keeping only every Factor-th sample row.
	Downsample bool
	// Factor is the downsample modulus. DefaultFactor when zero.
	Factor int64
}

// DefaultFactor keeps every 1000th sample when downsampling is enabled.
const DefaultFactor = 1000

// ChannelMeta is the per-channel slice of the preamble.
type ChannelMeta struct {
	Name         string
	Number       int32
	Unit         string
	DataType     string
	RangeMin     int16
	RangeMax     int16
	DataScale    float64
	DataOffset   float64
	SensorScale  float64
	SensorOffset float64
}

// Meta is the one-time preamble content, emitted before the first data row.
type Meta struct {
	RecordingDate    string
	SampleRate       float64
	DownsampleFactor int64 // 0 when downsampling is disabled
	Channels         []ChannelMeta
}

// Column is a read view of one channel's raw samples for a single chunk,
// with the channel's linear raw-to-physical conversion.
type Column struct {
	Scale   float64
	Offset  float64
	Samples []float64
}

// Sink renders what the emitter decides to keep.
type Sink interface {
	// Preamble receives the one-time metadata block.
	Preamble(m Meta) error
	// HeaderRow receives the channel names, in channel order.
	HeaderRow(names []string) error
	// Row receives one retained row. index is the 1-based absolute sample
	// index; values are physical-unit values in channel order.
	Row(index int64, values []float64) error
	// Close flushes any buffered output.
	Close() error
}

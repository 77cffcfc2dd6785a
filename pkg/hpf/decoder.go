package hpf

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/hpftools/hpf2tab/pkg/table"
)

// Config configures a Decoder.
type Config struct {
	// BufferSize bounds the largest chunk accepted. DefaultBufferSize when
	// zero.
	BufferSize int
}

// Stats summarizes one decode run.
type Stats struct {
	Chunks       int64
	DataChunks   int64
	SamplesSeen  int64
	RowsEmitted  int64
	IndexEntries int64
	EventRecords int64
	BytesRead    int64
}

// Decoder is a one-pass, all-or-nothing decoder for a single HPF stream.
// Any error other than clean end-of-stream aborts the run; output already
// flushed before the failing chunk stays flushed, nothing after it is
// produced.
type Decoder struct {
	cr      *ChunkReader
	emitter *table.Emitter
	log     zerolog.Logger

	header    *FileHeader
	groupID   int32
	channels  []Channel
	eventDefs []EventDefinition
	haveDefs  bool
	index     []IndexEntry
	haveIndex bool

	// samples holds each channel's raw samples for the chunk being decoded;
	// buffers are reused and cleared after every emit.
	samples [][]float64
	meta    table.Meta

	stats Stats
}

// NewDecoder creates a decoder reading from r and emitting through emitter.
func NewDecoder(r io.Reader, emitter *table.Emitter, cfg Config, log zerolog.Logger) *Decoder {
	return &Decoder{
		cr:      NewChunkReader(r, cfg.BufferSize),
		emitter: emitter,
		log:     log,
	}
}

// Run decodes chunks until the stream ends. It does not close the emitter;
// the caller owns the sink.
func (d *Decoder) Run() (Stats, error) {
	for {
		chunk, err := d.cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return d.finishStats(), err
		}
		d.stats.Chunks++
		if err := d.decodeChunk(chunk); err != nil {
			return d.finishStats(), err
		}
	}
	stats := d.finishStats()
	d.log.Debug().
		Int64("chunks", stats.Chunks).
		Int64("data_chunks", stats.DataChunks).
		Int64("samples", stats.SamplesSeen).
		Int64("rows", stats.RowsEmitted).
		Msg("decode complete")
	return stats, nil
}

func (d *Decoder) finishStats() Stats {
	d.stats.SamplesSeen = d.emitter.DataLines()
	d.stats.RowsEmitted = d.emitter.RowsEmitted()
	d.stats.BytesRead = d.cr.BytesRead()
	return d.stats
}

func (d *Decoder) decodeChunk(chunk *Chunk) error {
	d.log.Debug().
		Stringer("chunk", chunk.Kind).
		Int64("offset", chunk.Offset).
		Int64("length", chunk.Length).
		Msg("chunk")

	switch chunk.Kind {
	case KindHeader:
		return d.decodeHeaderChunk(chunk)
	case KindChannelInfo:
		return d.decodeChannelInfoChunk(chunk)
	case KindData:
		return d.decodeDataChunk(chunk)
	case KindEventDefinition:
		return d.decodeEventDefinitionChunk(chunk)
	case KindEventData:
		return d.decodeEventDataChunk(chunk)
	case KindIndex:
		return d.decodeIndexChunk(chunk)
	default:
		// ChunkReader validates kinds; this is unreachable for chunks it
		// returns.
		return fmt.Errorf("chunk at offset %d: %w: 0x%x", chunk.Offset, ErrUnknownChunkKind, int64(chunk.Kind))
	}
}

func (d *Decoder) decodeHeaderChunk(chunk *Chunk) error {
	h, err := decodeHeader(chunk.Payload)
	if err != nil {
		return fmt.Errorf("header chunk at offset %d: %w", chunk.Offset, err)
	}
	if d.header != nil {
		// The header is written once; keep the first and note the extra.
		d.log.Warn().Int64("offset", chunk.Offset).Msg("extra header chunk ignored")
		return nil
	}
	d.header = h
	d.log.Debug().
		Str("creator", h.Creator).
		Int64("version", h.FileVersion).
		Int64("index_offset", h.IndexOffset).
		Str("recording_date", h.RecordingDate).
		Msg("file header")
	return nil
}

func (d *Decoder) decodeChannelInfoChunk(chunk *Chunk) error {
	if d.channels != nil {
		return fmt.Errorf("channel-info chunk at offset %d: %w", chunk.Offset, ErrDuplicateChannelInfo)
	}
	groupID, channels, err := decodeChannelInfo(chunk.Payload)
	if err != nil {
		return fmt.Errorf("channel-info chunk at offset %d: %w", chunk.Offset, err)
	}
	d.groupID = groupID
	d.channels = channels
	d.samples = make([][]float64, len(channels))

	d.meta = table.Meta{RecordingDate: d.recordingDate()}
	if len(channels) > 0 {
		d.meta.SampleRate = channels[0].PerChannelSampleRate
	}
	for _, ch := range channels {
		d.meta.Channels = append(d.meta.Channels, table.ChannelMeta{
			Name:         ch.Name,
			Number:       ch.DataIndex,
			Unit:         ch.Unit,
			DataType:     ch.DataType.Name,
			RangeMin:     ch.RangeMin,
			RangeMax:     ch.RangeMax,
			DataScale:    ch.DataScale,
			DataOffset:   ch.DataOffset,
			SensorScale:  ch.SensorScale,
			SensorOffset: ch.SensorOffset,
		})
	}

	d.log.Debug().
		Int32("group_id", groupID).
		Int("channels", len(channels)).
		Msg("channel info")
	return nil
}

func (d *Decoder) decodeDataChunk(chunk *Chunk) error {
	if d.channels == nil {
		return fmt.Errorf("data chunk at offset %d: %w", chunk.Offset, ErrNoChannelInfo)
	}
	startIndex, err := d.decodeData(chunk)
	if err != nil {
		return err
	}
	d.stats.DataChunks++

	cols := make([]table.Column, len(d.channels))
	for i := range d.channels {
		cols[i] = table.Column{
			Scale:   d.channels[i].DataScale,
			Offset:  d.channels[i].DataOffset,
			Samples: d.samples[i],
		}
	}
	if err := d.emitter.EmitChunk(d.meta, cols); err != nil {
		return fmt.Errorf("data chunk at offset %d: %w", chunk.Offset, err)
	}

	perChannel := 0
	if len(d.samples) > 0 {
		perChannel = len(d.samples[0])
	}
	d.log.Debug().
		Int64("offset", chunk.Offset).
		Int64("start_index", startIndex).
		Int("samples_per_channel", perChannel).
		Msg("data chunk emitted")

	// Sample buffers do not outlive the chunk's decode-and-emit cycle.
	for i := range d.samples {
		d.samples[i] = d.samples[i][:0]
	}
	return nil
}

func (d *Decoder) decodeEventDefinitionChunk(chunk *Chunk) error {
	if d.haveDefs {
		return fmt.Errorf("event-definition chunk at offset %d: %w", chunk.Offset, ErrDuplicateEventDefs)
	}
	defs, err := decodeEventDefinitions(chunk.Payload)
	if err != nil {
		return fmt.Errorf("event-definition chunk at offset %d: %w", chunk.Offset, err)
	}
	d.eventDefs = defs
	d.haveDefs = true
	d.log.Debug().Int("definitions", len(defs)).Msg("event definitions")
	return nil
}

func (d *Decoder) decodeEventDataChunk(chunk *Chunk) error {
	count, err := decodeEventDataCount(chunk.Payload)
	if err != nil {
		return fmt.Errorf("event-data chunk at offset %d: %w", chunk.Offset, err)
	}
	d.stats.EventRecords += count
	d.log.Debug().Int64("events", count).Msg("event data discarded")
	return nil
}

func (d *Decoder) decodeIndexChunk(chunk *Chunk) error {
	if d.haveIndex {
		return fmt.Errorf("index chunk at offset %d: %w", chunk.Offset, ErrDuplicateIndex)
	}
	entries, err := decodeIndex(chunk.Payload)
	if err != nil {
		return fmt.Errorf("index chunk at offset %d: %w", chunk.Offset, err)
	}
	d.index = entries
	d.haveIndex = true
	d.stats.IndexEntries = int64(len(entries))
	d.log.Debug().Int("entries", len(entries)).Msg("index chunk")
	return nil
}

func (d *Decoder) recordingDate() string {
	if d.header == nil {
		return ""
	}
	return d.header.RecordingDate
}

// Header returns the decoded file header, or nil before one is seen.
func (d *Decoder) Header() *FileHeader {
	return d.header
}

// Channels returns the channel table declared by the channel-info chunk.
func (d *Decoder) Channels() []Channel {
	return d.channels
}

// GroupID returns the group id declared by the channel-info chunk.
func (d *Decoder) GroupID() int32 {
	return d.groupID
}

// EventDefinitions returns the decoded event definitions, if any.
func (d *Decoder) EventDefinitions() []EventDefinition {
	return d.eventDefs
}

// IndexEntries returns the accumulated trailing-index records.
func (d *Decoder) IndexEntries() []IndexEntry {
	return d.index
}

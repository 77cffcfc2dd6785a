package hpf

import (
	"fmt"
)

// channelRun locates one channel's packed samples inside a data chunk.
// Runs are rebuilt per chunk and never outlive it.
type channelRun struct {
	offset int // byte offset from chunk start
	length int // byte length
}

// decodeData reassembles each channel's raw samples from a data chunk into
// the decoder's per-channel buffers. Returns the chunk's starting sample
// index.
func (d *Decoder) decodeData(chunk *Chunk) (int64, error) {
	c := newCursor(chunk.Payload)
	if err := c.skip(chunkPrefixSize); err != nil {
		return 0, err
	}

	groupID, err := c.readI32()
	if err != nil {
		return 0, err
	}
	if groupID != d.groupID {
		return 0, fmt.Errorf("data chunk at offset %d has group id %d, channel info declared %d: %w",
			chunk.Offset, groupID, d.groupID, ErrGroupMismatch)
	}

	startIndex, err := c.readI64()
	if err != nil {
		return 0, err
	}
	count, err := c.readI32()
	if err != nil {
		return 0, err
	}
	if int(count) != len(d.channels) {
		return 0, fmt.Errorf("data chunk at offset %d describes %d channels, channel info declared %d: %w",
			chunk.Offset, count, len(d.channels), ErrChannelCountMismatch)
	}

	// Descriptor table: one (offset, length) pair per channel, in channel
	// order.
	runs := make([]channelRun, count)
	for i := range runs {
		off, err := c.readI32()
		if err != nil {
			return 0, err
		}
		length, err := c.readI32()
		if err != nil {
			return 0, err
		}
		runs[i] = channelRun{offset: int(off), length: int(length)}
	}

	for i, run := range runs {
		raw, err := c.slice(run.offset, run.length)
		if err != nil {
			return 0, fmt.Errorf("data chunk at offset %d, channel %d: %w", chunk.Offset, i, err)
		}
		d.samples[i] = d.channels[i].DataType.decodeSamples(d.samples[i][:0], raw)
	}
	return startIndex, nil
}

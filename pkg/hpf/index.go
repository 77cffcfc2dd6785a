package hpf

import "fmt"

// IndexEntry is one record of the trailing index chunk. Entries are
// accumulated in document order for completeness; the decoder never uses
// them to seek.
type IndexEntry struct {
	DataStartIndex    int64
	PerChannelSamples int64
	ChunkKind         ChunkKind
	GroupID           int64
	FileOffset        int64
}

func decodeIndex(payload []byte) ([]IndexEntry, error) {
	c := newCursor(payload)
	if err := c.skip(chunkPrefixSize); err != nil {
		return nil, err
	}

	count, err := c.readI64()
	if err != nil {
		return nil, err
	}

	// Five int64 fields per entry. A count the remaining payload cannot hold
	// is corrupt; it must not size an allocation or drive the read loop.
	const entrySize = 5 * 8
	remaining := int64(len(c.buf) - c.pos)
	if count < 0 || count > remaining/entrySize {
		return nil, fmt.Errorf("index declares %d entries, %d bytes remain: %w",
			count, remaining, ErrTruncatedChunk)
	}

	entries := make([]IndexEntry, 0, count)
	for i := int64(0); i < count; i++ {
		var e IndexEntry
		if e.DataStartIndex, err = c.readI64(); err != nil {
			return nil, err
		}
		if e.PerChannelSamples, err = c.readI64(); err != nil {
			return nil, err
		}
		kind, err := c.readI64()
		if err != nil {
			return nil, err
		}
		e.ChunkKind = ChunkKind(kind)
		if e.GroupID, err = c.readI64(); err != nil {
			return nil, err
		}
		if e.FileOffset, err = c.readI64(); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

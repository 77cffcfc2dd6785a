// Package hpf decodes HPF data-acquisition recordings.
//
// An HPF file is a sequence of self-describing, length-prefixed chunks. Each
// chunk starts with two little-endian int64 fields, the kind tag and the
// total chunk length in bytes; intra-chunk field offsets are counted from the
// chunk start, so the body includes its own prefix.
package hpf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ChunkKind identifies a chunk's type.
type ChunkKind int64

// Chunk kind tags as written by the instrument.
const (
	KindHeader          ChunkKind = 0x1000
	KindChannelInfo     ChunkKind = 0x2000
	KindData            ChunkKind = 0x3000
	KindEventDefinition ChunkKind = 0x4000
	KindEventData       ChunkKind = 0x5000
	KindIndex           ChunkKind = 0x6000
)

// String returns the kind's name, or a hex tag for unknown kinds.
func (k ChunkKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindChannelInfo:
		return "channelinfo"
	case KindData:
		return "data"
	case KindEventDefinition:
		return "eventdefinition"
	case KindEventData:
		return "eventdata"
	case KindIndex:
		return "index"
	default:
		return fmt.Sprintf("unknown(0x%x)", int64(k))
	}
}

// known reports whether k is a kind this decoder understands.
func (k ChunkKind) known() bool {
	switch k {
	case KindHeader, KindChannelInfo, KindData, KindEventDefinition, KindEventData, KindIndex:
		return true
	}
	return false
}

const (
	// chunkPrefixSize is the size of the kind and length fields.
	chunkPrefixSize = 16
	// minChunkSize is the smallest chunk that can carry the prefix plus any
	// fixed fields.
	minChunkSize = chunkPrefixSize
	// DefaultBufferSize bounds the largest chunk we accept. The instrument
	// writes 64 KiB chunks; 1 MiB leaves generous headroom.
	DefaultBufferSize = 1024 * 1024
)

// Chunk is one raw chunk read from the stream. Payload aliases the reader's
// internal buffer and is only valid until the next call to Next.
type Chunk struct {
	Kind    ChunkKind
	Length  int64
	Offset  int64 // file offset of the chunk start
	Payload []byte
}

// ChunkReader reads consecutive chunks from a stream into a single reusable
// buffer. It never seeks, so it works on plain io.Reader sources such as
// network streams.
type ChunkReader struct {
	r   io.Reader
	buf []byte
	off int64
}

// NewChunkReader creates a reader with the given buffer capacity.
// A bufferSize of zero or less selects DefaultBufferSize.
func NewChunkReader(r io.Reader, bufferSize int) *ChunkReader {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &ChunkReader{
		r:   r,
		buf: make([]byte, bufferSize),
	}
}

// Next reads the next chunk. It returns io.EOF when the stream ends at a
// chunk boundary, which is the normal termination for HPF files (they carry
// no explicit end marker). A stream that ends inside a chunk body yields
// ErrTruncatedChunk.
func (cr *ChunkReader) Next() (*Chunk, error) {
	start := cr.off

	if _, err := io.ReadFull(cr.r, cr.buf[:chunkPrefixSize]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// Fewer than 16 bytes at a chunk boundary is a clean end of stream.
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read chunk prefix at offset %d: %w", start, err)
	}

	kind := ChunkKind(int64(binary.LittleEndian.Uint64(cr.buf[0:8])))
	length := int64(binary.LittleEndian.Uint64(cr.buf[8:16]))

	if length < minChunkSize {
		return nil, fmt.Errorf("chunk %s at offset %d declares length %d: %w",
			kind, start, length, ErrShortChunk)
	}
	if length > int64(len(cr.buf)) {
		return nil, fmt.Errorf("chunk %s at offset %d declares length %d > buffer %d: %w",
			kind, start, length, len(cr.buf), ErrChunkTooLarge)
	}
	if !kind.known() {
		return nil, fmt.Errorf("chunk at offset %d: %w: 0x%x", start, ErrUnknownChunkKind, int64(kind))
	}

	// The prefix is part of the chunk body; it is already in the buffer, so
	// only the remainder is read from the stream.
	if _, err := io.ReadFull(cr.r, cr.buf[chunkPrefixSize:length]); err != nil {
		return nil, fmt.Errorf("chunk %s at offset %d: %w", kind, start, ErrTruncatedChunk)
	}
	cr.off += length

	return &Chunk{
		Kind:    kind,
		Length:  length,
		Offset:  start,
		Payload: cr.buf[:length],
	}, nil
}

// BytesRead returns the number of bytes consumed so far.
func (cr *ChunkReader) BytesRead() int64 {
	return cr.off
}

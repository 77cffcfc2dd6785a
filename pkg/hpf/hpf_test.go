package hpf

import "encoding/binary"

// chunkBuilder assembles synthetic chunks byte by byte. The length field is
// patched when bytes() is called.
type chunkBuilder struct {
	buf []byte
}

func newChunkBuilder(kind ChunkKind) *chunkBuilder {
	b := &chunkBuilder{}
	b.i64(int64(kind))
	b.i64(0) // length, patched later
	return b
}

func (b *chunkBuilder) i32(v int32) *chunkBuilder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
	return b
}

func (b *chunkBuilder) i64(v int64) *chunkBuilder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, uint64(v))
	return b
}

func (b *chunkBuilder) fourCC(s string) *chunkBuilder {
	b.buf = append(b.buf, s[:4]...)
	return b
}

func (b *chunkBuilder) cstring(s string) *chunkBuilder {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return b
}

func (b *chunkBuilder) raw(p []byte) *chunkBuilder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *chunkBuilder) bytes() []byte {
	binary.LittleEndian.PutUint64(b.buf[8:16], uint64(len(b.buf)))
	return b.buf
}

func headerChunk(creator string, version, indexOffset int64, date string) []byte {
	return newChunkBuilder(KindHeader).
		fourCC(creator).
		i64(version).
		i64(indexOffset).
		cstring("<RecordingDate>" + date + "</RecordingDate>").
		bytes()
}

// channelXML describes one channel for channelInfoChunk.
type channelXML struct {
	name, unit, dataType        string
	dataScale, dataOffset, rate string
}

func channelInfoChunk(groupID, count int32, chans []channelXML) []byte {
	doc := "<ChannelInformationData>"
	for _, ch := range chans {
		doc += "<ChannelInformation>" +
			"<Name>" + ch.name + "</Name>" +
			"<Unit>" + ch.unit + "</Unit>" +
			"<DataType>" + ch.dataType + "</DataType>" +
			"<DataScale>" + ch.dataScale + "</DataScale>" +
			"<DataOffset>" + ch.dataOffset + "</DataOffset>" +
			"<PerChannelSampleRate>" + ch.rate + "</PerChannelSampleRate>" +
			"</ChannelInformation>"
	}
	doc += "</ChannelInformationData>"
	return newChunkBuilder(KindChannelInfo).
		i32(groupID).
		i32(count).
		cstring(doc).
		bytes()
}

// dataChunk packs one sample run per channel, laid out back to back after
// the descriptor table.
func dataChunk(groupID int32, startIndex int64, runs ...[]byte) []byte {
	b := newChunkBuilder(KindData).
		i32(groupID).
		i64(startIndex).
		i32(int32(len(runs)))
	off := 32 + 8*len(runs)
	for _, r := range runs {
		b.i32(int32(off)).i32(int32(len(r)))
		off += len(r)
	}
	for _, r := range runs {
		b.raw(r)
	}
	return b.bytes()
}

func int16Samples(vals ...int16) []byte {
	var p []byte
	for _, v := range vals {
		p = binary.LittleEndian.AppendUint16(p, uint16(v))
	}
	return p
}

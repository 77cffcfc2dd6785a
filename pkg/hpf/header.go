package hpf

import (
	"fmt"

	"github.com/hpftools/hpf2tab/pkg/xmldoc"
)

// FileHeader is the decoded header chunk. One per file, immutable after
// decode.
type FileHeader struct {
	Creator       string // four-character creator code, e.g. "datx"
	FileVersion   int64
	IndexOffset   int64 // file offset of the trailing index chunk
	RecordingDate string
	RecordingTime Timestamp
}

// headerRoot is the required root element of the header's embedded document.
const headerRoot = "RecordingDate"

func decodeHeader(payload []byte) (*FileHeader, error) {
	c := newCursor(payload)
	if err := c.skip(chunkPrefixSize); err != nil {
		return nil, err
	}

	h := &FileHeader{}
	var err error
	if h.Creator, err = c.readFourCC(); err != nil {
		return nil, err
	}
	if h.FileVersion, err = c.readI64(); err != nil {
		return nil, err
	}
	if h.IndexOffset, err = c.readI64(); err != nil {
		return nil, err
	}

	doc, err := c.readCString()
	if err != nil {
		return nil, err
	}
	root, err := xmldoc.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("header document: %w", err)
	}
	if root.Name != headerRoot {
		return nil, fmt.Errorf("header document: %w: got <%s>, want <%s>",
			ErrWrongRoot, root.Name, headerRoot)
	}

	h.RecordingDate = root.Text
	h.RecordingTime = ParseTimestamp(root.Text)
	return h, nil
}

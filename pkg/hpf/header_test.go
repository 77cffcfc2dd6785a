package hpf

import (
	"errors"
	"testing"
)

func TestDecodeHeader(t *testing.T) {
	payload := headerChunk("datx", 2, 4096, "2024-03-15 09.30.45.125")
	h, err := decodeHeader(payload)
	if err != nil {
		t.Fatalf("decodeHeader(): %v", err)
	}
	if h.Creator != "datx" {
		t.Errorf("Creator = %q, want datx", h.Creator)
	}
	if h.FileVersion != 2 {
		t.Errorf("FileVersion = %d, want 2", h.FileVersion)
	}
	if h.IndexOffset != 4096 {
		t.Errorf("IndexOffset = %d, want 4096", h.IndexOffset)
	}
	if h.RecordingDate != "2024-03-15 09.30.45.125" {
		t.Errorf("RecordingDate = %q", h.RecordingDate)
	}
	if h.RecordingTime.Year != 2024 {
		t.Errorf("RecordingTime.Year = %d, want 2024", h.RecordingTime.Year)
	}
}

func TestDecodeHeaderWrongRoot(t *testing.T) {
	payload := newChunkBuilder(KindHeader).
		fourCC("datx").
		i64(2).
		i64(0).
		cstring("<SomethingElse>x</SomethingElse>").
		bytes()
	if _, err := decodeHeader(payload); !errors.Is(err, ErrWrongRoot) {
		t.Fatalf("decodeHeader() = %v, want ErrWrongRoot", err)
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	payload := headerChunk("datx", 2, 0, "")
	if _, err := decodeHeader(payload[:20]); !errors.Is(err, ErrTruncatedChunk) {
		t.Fatalf("decodeHeader() = %v, want ErrTruncatedChunk", err)
	}
}

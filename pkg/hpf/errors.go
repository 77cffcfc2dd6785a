package hpf

import "errors"

// Structural errors: the chunk stream itself is unusable.
var (
	// ErrChunkTooLarge indicates a chunk's declared length exceeds the buffer capacity.
	ErrChunkTooLarge = errors.New("chunk length exceeds buffer capacity")
	// ErrShortChunk indicates a chunk's declared length is smaller than its fixed fields.
	ErrShortChunk = errors.New("chunk length too small")
	// ErrTruncatedChunk indicates the file ended inside a chunk body.
	ErrTruncatedChunk = errors.New("truncated chunk body")
	// ErrUnknownChunkKind indicates a chunk kind tag that matches no known kind.
	ErrUnknownChunkKind = errors.New("unknown chunk kind")
)

// Schema errors: an embedded document does not match the expected shape.
var (
	// ErrWrongRoot indicates a document root element with an unexpected name.
	ErrWrongRoot = errors.New("unexpected document root")
	// ErrUnknownField indicates an unrecognized metadata field tag.
	ErrUnknownField = errors.New("unknown metadata field")
	// ErrBadBool indicates a boolean field that is neither "True" nor "False".
	ErrBadBool = errors.New("unparsable boolean literal")
	// ErrBadDataType indicates an unsupported channel datatype.
	ErrBadDataType = errors.New("unsupported datatype")
	// ErrBadEventClass indicates an event class other than 1.
	ErrBadEventClass = errors.New("unknown event class")
	// ErrBadEventID indicates a zero or unparsable event id.
	ErrBadEventID = errors.New("bad event id")
	// ErrBadEventType indicates an event type other than Point.
	ErrBadEventType = errors.New("unknown event type")
)

// Consistency errors: chunks contradict each other.
var (
	// ErrDuplicateChannelInfo indicates a second channel-info chunk in one file.
	ErrDuplicateChannelInfo = errors.New("duplicate channel-info chunk")
	// ErrDuplicateEventDefs indicates a second event-definition chunk in one file.
	ErrDuplicateEventDefs = errors.New("duplicate event-definition chunk")
	// ErrDuplicateIndex indicates a second index chunk in one file.
	ErrDuplicateIndex = errors.New("duplicate index chunk")
	// ErrNoChannelInfo indicates a data chunk before any channel-info chunk.
	ErrNoChannelInfo = errors.New("data chunk before channel info")
	// ErrGroupMismatch indicates a data chunk whose group id differs from the
	// group id declared by the channel-info chunk.
	ErrGroupMismatch = errors.New("group id mismatch")
	// ErrChannelCountMismatch indicates a data chunk whose descriptor count
	// differs from the declared channel count.
	ErrChannelCountMismatch = errors.New("channel count mismatch")
)

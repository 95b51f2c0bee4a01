// Package h1 serializes prepared HTTP/1 messages into ready-to-send byte
// ranges: transfer framing (identity or chunked), streaming body ingestion,
// optional content-coding, and a zero-copy prepare/consume output protocol.
package h1

type style int

const (
	styleNone style = iota
	styleEmpty
	styleBuffers
	styleSource
	styleStream
)

// DefaultWorkspaceSize is the scratch arena size used by New.
const DefaultWorkspaceSize = 65536

// Serializer turns one prepared message at a time into the serialized wire
// form. The caller picks a body style with a Start call, then loops
// Prepare/Consume until IsDone; Start may be called again afterwards to
// reuse the serializer (and its workspace) for the next message.
//
// A Serializer is a single-owner object: no method may be invoked
// concurrently with another.
type Serializer struct {
	ctx *Context
	ws  workspace

	style    style
	header   []byte   // unconsumed header octets; nil once fully consumed
	fixed    [][]byte // prebuilt non-header ranges (empty/buffers styles)
	userBufs [][]byte // compression input (buffers style)
	out      [][]byte // descriptor backing for Prepare views

	tmp0 ring // framed output staging
	tmp1 ring // compression input staging (source/stream styles)

	src          Source
	filter       Filter
	flushReserve int

	more             bool // upstream may yield more body bytes
	isDone           bool
	isChunked        bool
	isCompressed     bool
	isExpectContinue bool
	filterDone       bool
}

// New creates a serializer with the default workspace size.
func New(ctx *Context) *Serializer { return NewSize(ctx, DefaultWorkspaceSize) }

// NewSize creates a serializer whose workspace holds workspaceSize bytes.
// The workspace bounds how much output one Prepare call can stage.
func NewSize(ctx *Context, workspaceSize int) *Serializer {
	return &Serializer{
		ctx: ctx,
		ws:  newWorkspace(workspaceSize),
		out: make([][]byte, 0, 8),
	}
}

// Reset abandons any in-flight message and readies the serializer for the
// next Start call. The workspace is retained.
func (s *Serializer) Reset() {
	s.ws.reset()
	s.style = styleNone
	s.header = nil
	s.fixed = nil
	s.userBufs = nil
	s.tmp0 = ring{}
	s.tmp1 = ring{}
	s.src = nil
	s.filter = nil
	s.flushReserve = 0
	s.more = false
	s.isDone = false
	s.isChunked = false
	s.isCompressed = false
	s.isExpectContinue = false
	s.filterDone = false
}

// IsDone reports whether the current message has been fully delivered.
func (s *Serializer) IsDone() bool { return s.isDone }

func (s *Serializer) startInit(m *Message) error {
	s.Reset()
	if !m.valid() {
		return ErrInvalidMessage
	}
	s.header = m.Header
	s.isExpectContinue = m.Expect100Continue
	s.isChunked = m.Chunked
	if m.Encoding != EncodingIdentity {
		svc, ok := GetService[FilterService](s.ctx)
		if !ok {
			return ErrNoFilterService
		}
		s.isCompressed = true
		if m.Encoding == EncodingGzip {
			s.filter = svc.NewGzipFilter()
		} else {
			s.filter = svc.NewDeflateFilter()
		}
		s.flushReserve = svc.SpaceNeeded()
	}
	return nil
}

// minCompressedCapacity is the smallest output buffer compressed mode can
// make progress in: chunked overhead, flush-marker overhead and at least
// one payload byte.
func (s *Serializer) minCompressedCapacity() int {
	return chunkedOverhead + s.flushReserve + 1
}

// StartEmpty begins serializing a message without a body.
func (s *Serializer) StartEmpty(m *Message) error {
	if err := s.startInit(m); err != nil {
		return err
	}
	// No body bytes exist, so the content coding has nothing to transform.
	s.isCompressed = false
	s.filter = nil
	s.style = styleEmpty
	if s.isChunked {
		if s.ws.size() < lastChunkLen {
			return ErrShortWorkspace
		}
		scratch := s.ws.rest()[:lastChunkLen]
		copy(scratch, lastChunk)
		s.fixed = [][]byte{scratch}
	}
	return nil
}

// StartBuffers begins serializing a message whose body is the ordered
// sequence bufs of caller-owned byte ranges. The ranges are read in place;
// the caller must not mutate them until the message is done.
func (s *Serializer) StartBuffers(m *Message, bufs [][]byte) error {
	if err := s.startInit(m); err != nil {
		return err
	}
	s.style = styleBuffers
	if s.isCompressed {
		s.userBufs = make([][]byte, 0, len(bufs))
		for _, b := range bufs {
			if len(b) > 0 {
				s.userBufs = append(s.userBufs, b)
			}
		}
		s.tmp0 = newRing(s.ws.rest())
		if s.tmp0.capacity() < s.minCompressedCapacity() {
			return ErrShortWorkspace
		}
		s.more = true
		return nil
	}
	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	if !s.isChunked {
		s.fixed = make([][]byte, 0, len(bufs))
		for _, b := range bufs {
			if len(b) > 0 {
				s.fixed = append(s.fixed, b)
			}
		}
		return nil
	}
	if total == 0 {
		// A zero-length chunk would terminate the body early; emit only
		// the last chunk.
		if s.ws.size() < lastChunkLen {
			return ErrShortWorkspace
		}
		scratch := s.ws.rest()[:lastChunkLen]
		copy(scratch, lastChunk)
		s.fixed = [][]byte{scratch}
		return nil
	}
	// The whole body length is known up front, so a single chunk
	// encapsulates it: size line, user ranges, then CRLF + last chunk.
	if s.ws.size() < chunkHeaderLen+crlfLen+lastChunkLen {
		return ErrShortWorkspace
	}
	scratch := s.ws.rest()
	sizeLine := scratch[:chunkHeaderLen]
	putChunkHeader(sizeLine, total)
	tail := scratch[chunkHeaderLen : chunkHeaderLen+crlfLen+lastChunkLen]
	copy(tail, crlf)
	copy(tail[crlfLen:], lastChunk)
	s.fixed = make([][]byte, 0, len(bufs)+2)
	s.fixed = append(s.fixed, sizeLine)
	for _, b := range bufs {
		if len(b) > 0 {
			s.fixed = append(s.fixed, b)
		}
	}
	s.fixed = append(s.fixed, tail)
	return nil
}

// StartSource begins serializing a message whose body is pulled from src.
// The source is held exclusively until the message is done.
func (s *Serializer) StartSource(m *Message, src Source) error {
	if err := s.startInit(m); err != nil {
		return err
	}
	if src == nil {
		return ErrInvalidMessage
	}
	s.style = styleSource
	s.src = src
	if err := s.carveTemp(); err != nil {
		return err
	}
	s.more = true
	return nil
}

// StartStream begins serializing a message whose body the caller pushes
// through the returned Stream handle.
func (s *Serializer) StartStream(m *Message) (*Stream, error) {
	if err := s.startInit(m); err != nil {
		return nil, err
	}
	s.style = styleStream
	if err := s.carveTemp(); err != nil {
		return nil, err
	}
	s.more = true
	return &Stream{sr: s}, nil
}

// carveTemp cuts tmp1 (compression input staging, front half) and tmp0
// (output staging, remainder) out of the workspace and enforces the capacity
// lower bounds: the chunked-framing minimum, applied whether or not the
// message is chunked, and the compressed-mode minimum when compressing.
func (s *Serializer) carveTemp() error {
	if s.isCompressed {
		s.tmp1 = newRing(s.ws.reserveFront(s.ws.size() / 2))
		if s.tmp1.capacity() == 0 {
			return ErrShortWorkspace
		}
	}
	s.tmp0 = newRing(s.ws.rest())
	if s.tmp0.capacity() < chunkHeaderLen+1+crlfLen+lastChunkLen {
		return ErrShortWorkspace
	}
	if s.isCompressed && s.tmp0.capacity() < s.minCompressedCapacity() {
		return ErrShortWorkspace
	}
	return nil
}

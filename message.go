package h1

// Encoding identifies the content-coding applied to the message body before
// transfer framing.
type Encoding int

const (
	EncodingIdentity Encoding = iota
	EncodingDeflate
	EncodingGzip
)

// Message carries the prepared header octets and the parsed metadata the
// serializer consumes. Header is borrowed storage: the serializer reads it
// in place and the caller must not mutate it until the message is done.
type Message struct {
	Header            []byte
	Chunked           bool
	Encoding          Encoding
	Expect100Continue bool
}

func (m *Message) valid() bool {
	return m != nil && len(m.Header) > 0 &&
		m.Encoding >= EncodingIdentity && m.Encoding <= EncodingGzip
}

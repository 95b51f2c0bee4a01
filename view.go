package h1

// BufferView is the flat sequence of byte ranges exposed by Prepare: the
// concatenation of its elements is the next portion of the serialized
// message. Ranges alias serializer-owned or caller-owned storage and stay
// valid until the next Prepare or Consume call; the caller must not retain
// them past consumption.
type BufferView [][]byte

// Size returns the total number of bytes across all ranges.
func (v BufferView) Size() int {
	n := 0
	for _, b := range v {
		n += len(b)
	}
	return n
}

// Empty reports whether the view carries no bytes.
func (v BufferView) Empty() bool { return v.Size() == 0 }

// consumeRanges advances past the first n bytes of bufs, dropping exhausted
// ranges. Consuming beyond the end is a precondition violation.
func consumeRanges(bufs [][]byte, n int) [][]byte {
	for n > 0 && len(bufs) > 0 {
		b := bufs[0]
		if n < len(b) {
			bufs[0] = b[n:]
			return bufs
		}
		n -= len(b)
		bufs = bufs[1:]
	}
	if n > 0 {
		panic("h1: consume past end of prepared output")
	}
	return bufs
}

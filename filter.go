package h1

// Filter transforms the body byte stream between the serializer's input
// side and its output staging buffer. Process consumes from in, produces
// into out and reports whether the transformed stream is complete. moreIn
// tells the filter whether input beyond in may still arrive; once moreIn is
// false and all of in has been consumed, the filter must finish the stream.
//
// The serializer drives Process repeatedly until the output window fills or
// outBytes comes back zero.
type Filter interface {
	Process(out, in []byte, moreIn bool) (inBytes, outBytes int, finished bool, err error)
}

// FilterService hands out content-coding filters, one per message.
type FilterService interface {
	// NewDeflateFilter returns a filter producing a raw deflate stream.
	NewDeflateFilter() Filter

	// NewGzipFilter returns a filter producing a gzip stream.
	NewGzipFilter() Filter

	// SpaceNeeded returns the output overhead a filter may add per drive
	// round beyond its input (flush markers). The serializer adds it to the
	// minimum output window it requires in compressed mode.
	SpaceNeeded() int
}

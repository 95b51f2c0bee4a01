package h1

import "errors"

var (
	// ErrExpect100Continue is a sentinel status, not a failure: it is returned
	// exactly once by Prepare after the header of an Expect: 100-continue
	// message has been fully consumed. The caller should wait for the peer's
	// interim response, then call Prepare again to begin body delivery.
	ErrExpect100Continue = errors.New("h1: awaiting 100-continue response")

	// ErrNeedData is a sentinel status returned by Prepare in stream style
	// when no body bytes have been committed and the stream is still open.
	// Push data through the Stream handle (or Close it) and retry.
	ErrNeedData = errors.New("h1: stream has no data; commit or close first")

	// ErrShortWorkspace indicates the serializer's workspace is too small for
	// the framing mode selected by the message. Returned by Start calls.
	ErrShortWorkspace = errors.New("h1: workspace too small for selected mode")

	// ErrInvalidMessage indicates a Start call received a nil message, an
	// empty header range, or out-of-range metadata.
	ErrInvalidMessage = errors.New("h1: invalid message metadata")

	// ErrNoFilterService indicates the message declares a non-identity
	// content-coding but no FilterService is registered in the Context.
	ErrNoFilterService = errors.New("h1: no filter service registered")
)

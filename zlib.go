package h1

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// flushOverhead bounds the bytes a sync-flush marker adds per drive round.
const flushOverhead = 6

// CodingService implements FilterService over flate and gzip writers. One
// service serves any number of serializers; each filter serves one message.
type CodingService struct {
	level int
}

// NewCodingService creates a coding service with the given compression
// level (flate.HuffmanOnly through flate.BestCompression).
func NewCodingService(level int) (*CodingService, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("h1: invalid compression level %d", level)
	}
	return &CodingService{level: level}, nil
}

func (s *CodingService) NewDeflateFilter() Filter {
	f := &zlibFilter{}
	f.cw, _ = flate.NewWriter(&f.pending, s.level)
	return f
}

func (s *CodingService) NewGzipFilter() Filter {
	f := &zlibFilter{}
	f.cw, _ = gzip.NewWriterLevel(&f.pending, s.level)
	return f
}

func (s *CodingService) SpaceNeeded() int { return flushOverhead }

// compressor is the common surface of the flate and gzip writers.
type compressor interface {
	Write(p []byte) (int, error)
	Flush() error
	Close() error
}

// zlibFilter adapts a block compressor to the windowed Process contract.
// Output the compressor emits ahead of the caller's window is staged in
// pending and drained on subsequent calls.
type zlibFilter struct {
	cw      compressor
	pending bytes.Buffer
	closed  bool
	err     error
}

func (f *zlibFilter) Process(out, in []byte, moreIn bool) (inBytes, outBytes int, finished bool, err error) {
	if f.err != nil {
		return 0, 0, false, f.err
	}
	if !f.closed && len(in) > 0 {
		// Bound input by the output window so pending stays small.
		inBytes = len(in)
		if len(out) > 0 && inBytes > len(out) {
			inBytes = len(out)
		}
		if _, werr := f.cw.Write(in[:inBytes]); werr != nil {
			f.err = werr
			return inBytes, 0, false, werr
		}
		// Sync flush, so every round that consumed input produces output.
		// A round with input but no output would stall the drive loop.
		if werr := f.cw.Flush(); werr != nil {
			f.err = werr
			return inBytes, 0, false, werr
		}
	}
	if !f.closed && !moreIn && len(in) == 0 {
		if werr := f.cw.Close(); werr != nil {
			f.err = werr
			return inBytes, 0, false, werr
		}
		f.closed = true
	}
	outBytes = copy(out, f.pending.Bytes())
	f.pending.Next(outBytes)
	finished = f.closed && f.pending.Len() == 0
	return inBytes, outBytes, finished, nil
}

package h1

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driveFilter pushes input through f in window-sized rounds, the way the
// serializer does, and returns the complete transformed stream.
func driveFilter(t *testing.T, f Filter, input []byte, window int) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, window)
	in := input
	for i := 0; ; i++ {
		require.Less(t, i, 1<<20, "filter did not finish")
		inN, outN, finished, err := f.Process(buf, in, len(in) > 0)
		require.NoError(t, err)
		in = in[inN:]
		out = append(out, buf[:outN]...)
		if finished {
			return out
		}
	}
}

func TestDeflateFilterRoundTrip(t *testing.T) {
	svc, err := NewCodingService(flate.DefaultCompression)
	require.NoError(t, err)

	input := bytes.Repeat([]byte("the quick brown fox "), 200)
	compressed := driveFilter(t, svc.NewDeflateFilter(), input, 64)

	fr := flate.NewReader(bytes.NewReader(compressed))
	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestGzipFilterRoundTrip(t *testing.T) {
	svc, err := NewCodingService(flate.BestSpeed)
	require.NoError(t, err)

	input := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(input)
	compressed := driveFilter(t, svc.NewGzipFilter(), input, 128)

	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	got, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestFilterEmptyInput(t *testing.T) {
	svc, err := NewCodingService(flate.DefaultCompression)
	require.NoError(t, err)

	compressed := driveFilter(t, svc.NewDeflateFilter(), nil, 64)
	fr := flate.NewReader(bytes.NewReader(compressed))
	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterMakesProgressEveryRound(t *testing.T) {
	svc, err := NewCodingService(flate.DefaultCompression)
	require.NoError(t, err)
	f := svc.NewDeflateFilter()

	// Any round that consumes input must produce output; the serializer
	// frames a chunk from each round's output.
	out := make([]byte, 64)
	inN, outN, finished, err := f.Process(out, []byte("hello"), true)
	require.NoError(t, err)
	assert.Equal(t, 5, inN)
	assert.Greater(t, outN, 0)
	assert.False(t, finished)
}

func TestCodingServiceLevelValidation(t *testing.T) {
	_, err := NewCodingService(42)
	assert.Error(t, err)
	_, err = NewCodingService(flate.BestCompression)
	assert.NoError(t, err)
}

func TestSpaceNeeded(t *testing.T) {
	svc, err := NewCodingService(flate.DefaultCompression)
	require.NoError(t, err)
	assert.Equal(t, flushOverhead, svc.SpaceNeeded())
}

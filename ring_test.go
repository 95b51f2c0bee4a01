package h1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBasics(t *testing.T) {
	r := newRing(make([]byte, 8))
	assert.Equal(t, 8, r.capacity())
	assert.Equal(t, 8, r.available())
	assert.Equal(t, 0, r.size())

	w0, w1 := r.prepare(5)
	require.Len(t, w0, 5)
	require.Empty(t, w1)
	copy(w0, "abcde")
	r.commit(5)
	assert.Equal(t, 5, r.size())
	assert.Equal(t, 3, r.available())

	d0, d1 := r.data()
	assert.Equal(t, "abcde", string(d0))
	assert.Empty(t, d1)

	r.consume(2)
	d0, _ = r.data()
	assert.Equal(t, "cde", string(d0))
}

func TestRingWrap(t *testing.T) {
	r := newRing(make([]byte, 8))
	w0, _ := r.prepare(6)
	copy(w0, "abcdef")
	r.commit(6)
	r.consume(4)

	// Write position is at 6 with 2 bytes before the end of storage; a
	// 4-byte prepare wraps.
	w0, w1 := r.prepare(4)
	require.Len(t, w0, 2)
	require.Len(t, w1, 2)
	copy(w0, "gh")
	copy(w1, "ij")
	r.commit(4)

	d0, d1 := r.data()
	assert.Equal(t, "efgh", string(d0))
	assert.Equal(t, "ij", string(d1))
}

func TestRingRebasesWhenDrained(t *testing.T) {
	r := newRing(make([]byte, 8))
	w0, _ := r.prepare(6)
	copy(w0, "abcdef")
	r.commit(6)
	r.consume(6)

	// A drained ring rebases, so the full capacity is contiguous again.
	w0, w1 := r.prepare(8)
	assert.Len(t, w0, 8)
	assert.Empty(t, w1)
}

func TestRingWriteAcrossWrap(t *testing.T) {
	r := newRing(make([]byte, 8))
	w0, _ := r.prepare(7)
	copy(w0, "abcdefg")
	r.commit(7)
	r.consume(6)

	r.write([]byte("hij"))
	d0, d1 := r.data()
	assert.Equal(t, "gh", string(d0))
	assert.Equal(t, "ij", string(d1))
}

func TestRingPreconditions(t *testing.T) {
	r := newRing(make([]byte, 4))
	assert.Panics(t, func() { r.prepare(5) })
	assert.Panics(t, func() { r.commit(5) })
	assert.Panics(t, func() { r.consume(1) })
}

func TestWorkspaceCarving(t *testing.T) {
	ws := newWorkspace(64)
	assert.Equal(t, 64, ws.size())

	front := ws.reserveFront(10)
	assert.Len(t, front, 16, "front reservations are word aligned")
	assert.Equal(t, 48, ws.size())
	assert.Len(t, ws.rest(), 48)

	ws.reset()
	assert.Equal(t, 64, ws.size())

	// Oversized requests are clamped to what remains.
	assert.Len(t, ws.reserveFront(100), 64)
	assert.Equal(t, 0, ws.size())
}

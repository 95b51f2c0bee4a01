package h1

import "io"

// Source is the pull-style body shape: the serializer calls Read to fill
// dst with body bytes. finished reports that no bytes follow the returned
// ones. A Source may return n == 0 with finished == false; the view from
// that Prepare carries no body bytes and the caller is expected to drive
// Prepare again.
type Source interface {
	Read(dst []byte) (n int, finished bool, err error)
}

// ReaderSource adapts an io.Reader to the Source contract, mapping io.EOF
// to finished.
type ReaderSource struct {
	r    io.Reader
	done bool
}

func NewReaderSource(r io.Reader) *ReaderSource { return &ReaderSource{r: r} }

func (s *ReaderSource) Read(dst []byte) (int, bool, error) {
	if s.done {
		return 0, true, nil
	}
	n, err := s.r.Read(dst)
	if err == io.EOF {
		s.done = true
		return n, true, nil
	}
	return n, false, err
}

// BytesSource serves a body already held in memory.
type BytesSource struct {
	b []byte
}

func NewBytesSource(b []byte) *BytesSource { return &BytesSource{b: b} }

func (s *BytesSource) Read(dst []byte) (int, bool, error) {
	n := copy(dst, s.b)
	s.b = s.b[n:]
	return n, len(s.b) == 0, nil
}

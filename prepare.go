package h1

// Prepare stages the next batch of output and returns it as a flat view of
// byte ranges. The caller transmits some prefix of the view and reports it
// through Consume; the loop ends when IsDone reports true.
//
// Sentinel statuses (ErrExpect100Continue, ErrNeedData) and upstream
// source/filter errors are returned; calling Prepare after the message is
// done is a precondition violation and panics.
func (s *Serializer) Prepare() (BufferView, error) {
	if s.isDone {
		panic("h1: Prepare called after message completed")
	}

	// Expect: 100-continue exposes only the header. Once the caller has
	// consumed it, a one-time sentinel tells them to await the interim
	// response before body delivery begins.
	if s.isExpectContinue {
		if s.header != nil {
			return append(s.out[:0], s.header), nil
		}
		s.isExpectContinue = false
		return nil, ErrExpect100Continue
	}

	if s.isCompressed {
		return s.prepareCompressed()
	}

	switch s.style {
	case styleEmpty, styleBuffers:
		v := s.out[:0]
		if s.header != nil {
			v = append(v, s.header)
		}
		return append(v, s.fixed...), nil

	case styleSource:
		if s.more {
			if !s.isChunked {
				w0, _ := s.tmp0.prepare(s.tmp0.available())
				n, finished, err := s.src.Read(w0)
				s.tmp0.commit(n)
				if err != nil {
					return nil, err
				}
				s.more = !finished
			} else if s.tmp0.available() > chunkedOverhead {
				if err := s.readChunkedSource(); err != nil {
					return nil, err
				}
			}
		}
		return s.stagedView(), nil

	case styleStream:
		if s.tmp0.size() == 0 && s.more {
			return nil, ErrNeedData
		}
		return s.stagedView(), nil
	}

	panic("h1: Prepare called before Start")
}

// readChunkedSource pulls one chunk's worth of body bytes from the source
// directly into tmp0, reserving the fixed-width chunk header in front and
// keeping the CRLF + last-chunk reserve free at the tail.
func (s *Serializer) readChunkedSource() error {
	avail := s.tmp0.available()
	w0, w1 := s.tmp0.prepare(avail - crlfLen - lastChunkLen)
	var dst []byte
	if len(w0) > chunkHeaderLen {
		dst = w0[chunkHeaderLen:]
	} else {
		dst = w1[chunkHeaderLen-len(w0):]
	}
	n, finished, err := s.src.Read(dst)
	if err != nil {
		return err
	}
	if n != 0 {
		putChunkHeaderSplit(w0, w1, n)
		s.tmp0.commit(chunkHeaderLen + n)
		s.tmp0.write(crlf)
	}
	if finished {
		s.tmp0.write(lastChunk)
		s.more = false
	}
	return nil
}

// stagedView builds the caller-facing view: the unconsumed header range, if
// any, followed by the readable windows of tmp0.
func (s *Serializer) stagedView() BufferView {
	v := s.out[:0]
	if s.header != nil {
		v = append(v, s.header)
	}
	d0, d1 := s.tmp0.data()
	if len(d0) > 0 {
		v = append(v, d0)
	}
	if len(d1) > 0 {
		v = append(v, d1)
	}
	return v
}

// prepareCompressed drives the content-coding filter into tmp0, framing the
// result as at most one chunk per call when chunked (none when the round
// produced no compressed bytes). Requires the previous output to be fully
// consumed.
func (s *Serializer) prepareCompressed() (BufferView, error) {
	// The chunk-per-prepare framing depends on starting from an empty ring.
	if s.tmp0.size() > 0 {
		panic("h1: compressed Prepare without draining previous output")
	}
	if s.tmp0.available() < s.minCompressedCapacity() {
		panic("h1: output buffer below compressed-mode minimum")
	}
	if s.style == styleStream && s.more && s.tmp1.size() == 0 {
		return nil, ErrNeedData
	}

	if s.style == styleSource && s.more {
		w0, _ := s.tmp1.prepare(s.tmp1.available())
		n, finished, err := s.src.Read(w0)
		s.tmp1.commit(n)
		if err != nil {
			return nil, err
		}
		s.more = !finished
	}

	var hdr []byte
	if s.isChunked {
		// Reserve the header now, backfill once the chunk size is known.
		// The drained ring is rebased, so the reservation is contiguous.
		w0, _ := s.tmp0.prepare(chunkHeaderLen)
		hdr = w0[:chunkHeaderLen]
		for i := range hdr {
			hdr[i] = 0
		}
		s.tmp0.commit(chunkHeaderLen)
	}

	written := 0
	for {
		out := s.compressOutput()
		if len(out) == 0 {
			break
		}
		in := s.compressInput()
		inN, outN, finished, err := s.filter.Process(out, in, s.more)
		if err != nil {
			return nil, err
		}
		if finished {
			s.filterDone = true
		}
		s.compressConsume(inN)
		if outN == 0 {
			break
		}
		written += outN
		s.tmp0.commit(outN)
	}

	if s.isChunked {
		if written == 0 {
			// Nothing compressed this round. Drop the reserved header
			// rather than emit a zero-length chunk, which would terminate
			// the body early.
			s.tmp0.reset()
		} else {
			putChunkHeader(hdr, written)
			s.tmp0.write(crlf)
		}
		if s.filterDone {
			s.tmp0.write(lastChunk)
		}
	}
	return s.stagedView(), nil
}

// compressInput returns the current input window for the filter: the first
// pending user range in buffers style, the staged tmp1 bytes otherwise.
func (s *Serializer) compressInput() []byte {
	if s.style == styleBuffers {
		if len(s.userBufs) == 0 {
			return nil
		}
		return s.userBufs[0]
	}
	d0, _ := s.tmp1.data()
	return d0
}

// compressOutput returns the writable window the filter may fill, excluding
// the CRLF + last-chunk reserve in chunked mode.
func (s *Serializer) compressOutput() []byte {
	w0, w1 := s.tmp0.prepare(s.tmp0.available())
	buf := w0
	if len(buf) == 0 {
		buf = w1
	}
	if s.isChunked {
		if len(buf) < crlfLen+lastChunkLen+1 {
			return nil
		}
		buf = buf[:len(buf)-crlfLen-lastChunkLen]
	}
	return buf
}

func (s *Serializer) compressConsume(n int) {
	if s.style == styleBuffers {
		if n > 0 {
			s.userBufs = consumeRanges(s.userBufs, n)
		}
		if len(s.userBufs) == 0 {
			s.more = false
		}
		return
	}
	s.tmp1.consume(n)
}

// Consume reports that the first n bytes of the most recent Prepare view
// have been transmitted. Consuming past the end of the view, or past the
// header while awaiting 100-continue, is a precondition violation.
func (s *Serializer) Consume(n int) {
	if s.isDone {
		panic("h1: Consume called after message completed")
	}
	if n < 0 {
		panic("h1: negative consume")
	}

	if s.isExpectContinue {
		if n > len(s.header) {
			panic("h1: consume past header while awaiting 100-continue")
		}
		s.consumeHeader(n)
		return
	}
	if s.header != nil {
		if n < len(s.header) {
			s.consumeHeader(n)
			return
		}
		n -= len(s.header)
		s.consumeHeader(len(s.header))
	}

	switch s.style {
	case styleEmpty:
		s.fixed = consumeRanges(s.fixed, n)
		if len(s.fixed) == 0 {
			s.isDone = true
		}

	case styleBuffers:
		if s.isCompressed {
			s.tmp0.consume(n)
			if s.tmp0.size() == 0 && s.filterDone {
				s.isDone = true
			}
			return
		}
		s.fixed = consumeRanges(s.fixed, n)
		if len(s.fixed) == 0 {
			s.isDone = true
		}

	case styleSource, styleStream:
		s.tmp0.consume(n)
		if !s.isCompressed && s.tmp0.size() == 0 && !s.more {
			s.isDone = true
		}
		if s.isCompressed && s.tmp0.size() == 0 && s.filterDone {
			s.isDone = true
		}

	default:
		panic("h1: Consume called before Start")
	}
}

func (s *Serializer) consumeHeader(n int) {
	s.header = s.header[n:]
	if len(s.header) == 0 {
		s.header = nil
	}
}

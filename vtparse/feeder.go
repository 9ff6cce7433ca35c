package vtparse

// Feeder wraps Parse with an incomplete-tail cache: bytes left over from
// a prior Feed call that could not be resolved into a complete control
// item are prepended to the next call's input, so splitting a byte
// stream at any boundary and feeding the pieces through Feed in order
// yields the same sequence of Control items as feeding it in one call.
type Feeder struct {
	pending []byte
}

// Feed tokenizes as many complete Control items as possible from the
// concatenation of any cached tail and data, calling emit for each one
// in order. It stops and caches the remainder when the tail of the
// combined buffer is an incomplete sequence, or when a malformed
// sequence is found — a ParseError causes the rest of the current call's
// input to be dropped (logged by the caller), while state accumulated so
// far is preserved.
func (f *Feeder) Feed(data []byte, emit func(Control)) error {
	buf := data
	if len(f.pending) > 0 {
		buf = append(append([]byte(nil), f.pending...), data...)
		f.pending = nil
	}

	for len(buf) > 0 {
		item, n, err := Parse(buf)
		if err == ErrIncomplete {
			f.pending = append([]byte(nil), buf...)
			return nil
		}
		if err != nil {
			// Malformed sequence: preserve state accumulated so far,
			// drop the remainder of this call's input.
			return err
		}
		emit(item)
		buf = buf[n:]
	}
	return nil
}

// Pending returns the currently cached incomplete tail, for inspection
// or testing.
func (f *Feeder) Pending() []byte { return f.pending }

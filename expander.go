package tinygif

// expand walks code's chain in the dictionary and writes the literal
// byte sequence it represents, in forward order, into out. It returns
// the number of bytes written.
//
// The fast path (code < clearCode) is a single literal. Otherwise the
// chain is walked backwards — each entry contributes its `last` byte —
// writing the bytes into out from index 0 in reverse order, which is
// then reversed in place.
// The chain is acyclic by construction (every insertion's `first` is
// strictly smaller than the slot being written, spec §4.3), so a
// well-formed stream always terminates; out's length is the only
// practical bound, tripped by ErrReverseBufferOverflow on a malformed
// or under-sized one.
func expand(d *dictionary, code uint16, out []byte) (int, error) {
	if code < d.clearCode {
		if len(out) < 1 {
			return 0, newErr(KindReverseBufferOverflow)
		}
		out[0] = byte(code)
		return 1, nil
	}

	n := 0
	for code >= d.clearCode {
		if n >= len(out) {
			return 0, newErr(KindReverseBufferOverflow)
		}
		out[n] = d.entries[code].last
		n++
		code = d.entries[code].first
	}
	if n >= len(out) {
		return 0, newErr(KindReverseBufferOverflow)
	}
	out[n] = byte(code)
	n++

	// out currently holds the chain in reverse (innermost byte first);
	// reverse it in place to emit in forward order.
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return n, nil
}

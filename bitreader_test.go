package tinygif

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

// fakeSource is a simple ByteSource over a fixed slice, for bit-reader
// and container tests.
type fakeSource struct {
	data []byte
	pos  int
}

func (f *fakeSource) ReadByte() (byte, error) {
	if f.pos >= len(f.data) {
		return 0, errEOF
	}
	b := f.data[f.pos]
	f.pos++
	return b, nil
}

func (f *fakeSource) Rewind() error {
	f.pos = 0
	return nil
}

// errEOF stands in for io.EOF without importing io just for this.
type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }

const errEOF = sentinelErr("eof")

func TestBitReaderPacksLSBFirstLowByteFirst(t *testing.T) {
	c := qt.New(t)

	// Two 3-bit codes packed into one byte: code0=5 (0b101), code1=3 (0b011).
	// LSB-first: byte = code0 | (code1 << 3) = 0b011101 = 0x1D.
	br := newBitReader(&fakeSource{data: []byte{1, 0x1D, 0}})
	code0, ok, err := br.readCode(3)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(code0, qt.Equals, uint16(5))

	code1, ok, err := br.readCode(3)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(code1, qt.Equals, uint16(3))
}

func TestBitReaderStraddlesSubBlockBoundary(t *testing.T) {
	c := qt.New(t)

	// Two sub-blocks of 1 byte each, a 9-bit code straddling them.
	// value = 0x1FF (9 bits all set) packed LSB-first across two bytes:
	// byte0 = 0xFF, byte1 has low bit set = 0x01.
	src := &fakeSource{data: []byte{1, 0xFF, 1, 0x01, 0}}
	br := newBitReader(src)

	code, ok, err := br.readCode(9)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(code, qt.Equals, uint16(0x1FF))
}

func TestBitReaderEndOfSubBlocks(t *testing.T) {
	c := qt.New(t)

	src := &fakeSource{data: []byte{1, 0x05, 0}}
	br := newBitReader(src)

	_, ok, err := br.readCode(3)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	// 5 remaining bits (0b00000) are not enough for a 6-bit code, so the
	// read attempt has to pull past the terminator.
	_, ok, err = br.readCode(6)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestBitReaderFileEnded(t *testing.T) {
	c := qt.New(t)

	src := &fakeSource{data: []byte{2, 0x01}} // declares 2 bytes, only 1 present
	br := newBitReader(src)

	// 9 bits require a second byte that never arrives.
	_, _, err := br.readCode(9)
	c.Assert(errors.Is(err, ErrFileEnded), qt.IsTrue)
}

package tinygif

// ByteSource is the pull-based input the decoder consumes one byte at
// a time. io.ByteReader already has the right shape; wrapping it here
// names the role it plays and lets the package return the sentinel
// Error type instead of a bare io.EOF.
type ByteSource interface {
	ReadByte() (byte, error)
}

// Rewinder is an optional capability of a ByteSource. A source that
// implements it can be rewound to its start for looping playback; one
// that doesn't causes GifDecoder.Rewind to fail with ErrRewindError.
type Rewinder interface {
	Rewind() error
}

// Renderer is the sink a GifDecoder paints into. WriteArea is called
// once per filled (or final partial) section of scan lines; FlushFrame
// is called exactly once per successfully terminated frame, after the
// last WriteArea call for that frame (spec §5's ordering guarantees).
//
// pixelIndices holds one palette index per pixel, row-major, for the
// rectangle described by area. color565 table[pixelIndices[i]] gives
// the packed RGB565 color; if transparencyIndex is non-nil and equal
// to pixelIndices[i], that pixel should not be painted opaquely.
type Renderer interface {
	WriteArea(area ImageArea, pixelIndices []byte, colorTable *ColorTable, transparencyIndex *byte) error
	FlushFrame() error
}

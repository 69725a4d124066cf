package tinygif

import "encoding/binary"

// Container wire format (GIF89a), informational — this is the contract
// the frame decoder (C5) relies on, not engineering content (spec §6):
//
//	6-byte signature "GIF89a"
//	7-byte logical screen descriptor
//	optional 3-byte-per-entry global color table
//	repeated blocks introduced by 0x2C (image), 0x21 (extension), 0x3B (trailer)

const (
	introImage     = 0x2C
	introExtension = 0x21
	introTrailer   = 0x3B

	labelGraphicsControl = 0xF9
)

// FileMetadata is the logical screen descriptor content a GifDecoder
// exposes once ParseGifMetadata has run.
type FileMetadata struct {
	Width, Height        uint16
	HasGlobalColorTable  bool
	GlobalColorTableSize int
}

func (g *GifDecoder) nextByte() (byte, error) {
	b, err := g.src.ReadByte()
	if err != nil {
		return 0, wrapErr(KindFileEnded, err)
	}
	return b, nil
}

func (g *GifDecoder) nextShort() (uint16, error) {
	var b [2]byte
	for i := range b {
		v, err := g.nextByte()
		if err != nil {
			return 0, err
		}
		b[i] = v
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (g *GifDecoder) validateHeader() error {
	var header [6]byte
	for i := range header {
		b, err := g.nextByte()
		if err != nil {
			return err
		}
		header[i] = b
	}
	if header != [6]byte{'G', 'I', 'F', '8', '9', 'a'} {
		return newErr(KindWrongFiletype)
	}
	return nil
}

func (g *GifDecoder) parseLogicalScreenDescriptor() (FileMetadata, error) {
	width, err := g.nextShort()
	if err != nil {
		return FileMetadata{}, err
	}
	height, err := g.nextShort()
	if err != nil {
		return FileMetadata{}, err
	}
	packed, err := g.nextByte()
	if err != nil {
		return FileMetadata{}, err
	}
	if _, err := g.nextByte(); err != nil { // background color index, unused
		return FileMetadata{}, err
	}
	if _, err := g.nextByte(); err != nil { // pixel aspect ratio, unused
		return FileMetadata{}, err
	}

	hasGlobalColorTable := packed&(1<<7) != 0
	tableBits := packed&0b111 + 1

	return FileMetadata{
		Width:                width,
		Height:               height,
		HasGlobalColorTable:  hasGlobalColorTable,
		GlobalColorTableSize: 1 << tableBits,
	}, nil
}

func (g *GifDecoder) parseColorTable(dst *ColorTable, size int) error {
	for i := 0; i < size; i++ {
		r, err := g.nextByte()
		if err != nil {
			return err
		}
		gr, err := g.nextByte()
		if err != nil {
			return err
		}
		b, err := g.nextByte()
		if err != nil {
			return err
		}
		dst[i] = color565(r, gr, b)
	}
	return nil
}

// ParseGifMetadata parses and consumes the GIF89a header and logical
// screen descriptor, and the global color table if present. It must be
// called exactly once, before the first ParseFrameMetadata.
func (g *GifDecoder) ParseGifMetadata() error {
	if err := g.validateHeader(); err != nil {
		return err
	}
	meta, err := g.parseLogicalScreenDescriptor()
	if err != nil {
		return err
	}
	if meta.Width > MaxSize || meta.Height > MaxSize {
		return newErr(KindImageTooBig)
	}
	if meta.HasGlobalColorTable {
		if err := g.parseColorTable(&g.bufs.GlobalColorTable, meta.GlobalColorTableSize); err != nil {
			return err
		}
	}
	g.fileMetadata = &meta
	return nil
}

// FileMetadata returns the logical screen descriptor parsed by
// ParseGifMetadata, or nil if it has not run yet.
func (g *GifDecoder) FileMetadata() *FileMetadata { return g.fileMetadata }

func (g *GifDecoder) parseGraphicsControlExtension() (GraphicsControlExtension, error) {
	packed, err := g.nextByte()
	if err != nil {
		return GraphicsControlExtension{}, err
	}
	hundredths, err := g.nextShort()
	if err != nil {
		return GraphicsControlExtension{}, err
	}
	transparencyIndex, err := g.nextByte()
	if err != nil {
		return GraphicsControlExtension{}, err
	}
	terminator, err := g.nextByte()
	if err != nil {
		return GraphicsControlExtension{}, err
	}
	if terminator != 0 {
		return GraphicsControlExtension{}, newErr(KindMissingBlockTerminator)
	}

	return GraphicsControlExtension{
		MillisDelay:       uint32(hundredths) * 10,
		HasTransparency:   packed&1 != 0,
		TransparencyIndex: transparencyIndex,
	}, nil
}

func (g *GifDecoder) parseImageDescriptor(ext *GraphicsControlExtension) (FrameMetadata, error) {
	xpos, err := g.nextShort()
	if err != nil {
		return FrameMetadata{}, err
	}
	ypos, err := g.nextShort()
	if err != nil {
		return FrameMetadata{}, err
	}
	width, err := g.nextShort()
	if err != nil {
		return FrameMetadata{}, err
	}
	height, err := g.nextShort()
	if err != nil {
		return FrameMetadata{}, err
	}
	packed, err := g.nextByte()
	if err != nil {
		return FrameMetadata{}, err
	}

	hasLocalColorTable := packed&(1<<7) != 0
	interlace := packed&(1<<6) != 0
	colorTableBits := packed & 0b111

	if interlace {
		return FrameMetadata{}, newErr(KindInterlacingNotSupported)
	}

	return FrameMetadata{
		FrameArea: ImageArea{
			Xpos:   xpos,
			Ypos:   ypos,
			Width:  width,
			Height: height,
		},
		HasLocalColorTable:  hasLocalColorTable,
		LocalColorTableSize: 1 << (colorTableBits + 1),
		Extension:           ext,
	}, nil
}

// skipSubBlocksFrom discards a sub-block sequence whose first length
// byte has already been read into n.
func (g *GifDecoder) skipSubBlocksFrom(n byte) error {
	for n != 0 {
		for i := byte(0); i < n; i++ {
			if _, err := g.nextByte(); err != nil {
				return err
			}
		}
		var err error
		n, err = g.nextByte()
		if err != nil {
			return err
		}
	}
	return nil
}

// ParseFrameMetadata parses and consumes the metadata section of the
// next frame, including any extensions, up to (but not including) the
// image-data sub-blocks. It returns ErrGifEnded, the idiomatic loop
// exit, once the trailer is reached.
func (g *GifDecoder) ParseFrameMetadata() error {
	var ext *GraphicsControlExtension

	for {
		introducer, err := g.nextByte()
		if err != nil {
			return err
		}

		switch introducer {
		case introImage:
			metadata, err := g.parseImageDescriptor(ext)
			if err != nil {
				return err
			}
			if metadata.HasLocalColorTable {
				if err := g.parseColorTable(&g.bufs.LocalColorTable, metadata.LocalColorTableSize); err != nil {
					return err
				}
			}
			g.currentFrame = &metadata
			return nil

		case introExtension:
			label, err := g.nextByte()
			if err != nil {
				return err
			}
			blockSize, err := g.nextByte() // for the graphics control extension this is always 4
			if err != nil {
				return err
			}
			if label == labelGraphicsControl {
				gce, err := g.parseGraphicsControlExtension()
				if err != nil {
					return err
				}
				ext = &gce
			} else {
				if err := g.skipSubBlocksFrom(blockSize); err != nil {
					return err
				}
			}

		case introTrailer:
			return newErr(KindGifEnded)

		default:
			return newErr(KindInvalidBlockIntroducer)
		}
	}
}

// DecodeFrameImage decodes and consumes the image-data sub-blocks of
// the frame most recently described by ParseFrameMetadata, streaming
// decoded scan lines to the renderer as they become available.
func (g *GifDecoder) DecodeFrameImage() error {
	initialLzwSize, err := g.nextByte()
	if err != nil {
		return err
	}

	metadata := g.currentFrame
	colorTable := &g.bufs.GlobalColorTable
	if metadata.HasLocalColorTable {
		colorTable = &g.bufs.LocalColorTable
	}

	var transparency *byte
	if metadata.Extension != nil && metadata.Extension.HasTransparency {
		t := metadata.Extension.TransparencyIndex
		transparency = &t
	}

	fd := newFrameDecoder(
		g.src,
		metadata.FrameArea,
		g.bufs.Dictionary[:],
		g.bufs.ReverseBuffer[:],
		g.bufs.OutputBuffer[:],
		g.renderer,
		colorTable,
		transparency,
		initialLzwSize,
	)
	return fd.decodeFrame()
}

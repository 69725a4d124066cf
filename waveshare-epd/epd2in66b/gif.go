package epd2in66b

import (
	"image/color"

	"tinygo.org/x/tinygif"
)

// GifRenderer adapts a Device into a tinygif.Renderer, so decoded GIF
// frames can be painted straight onto the panel's red/black/white
// buffers without an intermediate framebuffer. The caller is
// responsible for Device.Configure, Device.Reset and, between loops of
// an animation, Device.ClearBuffer.
type GifRenderer struct {
	*Device
}

// NewGifRenderer wraps dev for use as a tinygif.Renderer.
func NewGifRenderer(dev *Device) GifRenderer {
	return GifRenderer{Device: dev}
}

// WriteArea paints one decoded scan-line section. Pixels equal to
// transparencyIndex are left untouched, matching spec's transparency
// semantics (nothing is drawn for them, the previous buffer content
// shows through).
func (r GifRenderer) WriteArea(area tinygif.ImageArea, pixelIndices []byte, colorTable *tinygif.ColorTable, transparencyIndex *byte) error {
	for row := uint16(0); row < area.Height; row++ {
		y := int16(area.Ypos + row)
		base := int(row) * int(area.Width)
		for col := uint16(0); col < area.Width; col++ {
			idx := pixelIndices[base+int(col)]
			if transparencyIndex != nil && idx == *transparencyIndex {
				continue
			}
			x := int16(area.Xpos + col)
			r.Device.SetPixel(x, y, rgb565ToRGBA(colorTable[idx]))
		}
	}
	return nil
}

// FlushFrame pushes the buffers built up by WriteArea to the panel and
// waits for the update to complete.
func (r GifRenderer) FlushFrame() error {
	return r.Device.Display()
}

func rgb565ToRGBA(c uint16) color.RGBA {
	r := byte(c>>11) & 0x1F
	g := byte(c>>5) & 0x3F
	b := byte(c) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

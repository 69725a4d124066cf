package ws2812

import (
	"image/color"

	"tinygo.org/x/tinygif"
)

// Heartbeat wraps another tinygif.Renderer and blinks a single WS2812
// pixel every time a frame finishes flushing, so a strip wired next to
// a display can double as an at-a-glance "still decoding" indicator
// without a UART console.
type Heartbeat struct {
	tinygif.Renderer
	Strip Device

	on     color.RGBA
	off    color.RGBA
	toggle bool
}

// NewHeartbeat returns a Heartbeat that alternates between on and off
// on Strip's first pixel each time inner's frame finishes.
func NewHeartbeat(inner tinygif.Renderer, strip Device, on, off color.RGBA) *Heartbeat {
	return &Heartbeat{Renderer: inner, Strip: strip, on: on, off: off}
}

// FlushFrame delegates to the wrapped renderer, then blinks the
// indicator pixel regardless of the inner result so playback status
// stays visible even if a frame failed to flush cleanly.
func (h *Heartbeat) FlushFrame() error {
	err := h.Renderer.FlushFrame()

	c := h.off
	if h.toggle {
		c = h.on
	}
	h.toggle = !h.toggle
	if writeErr := h.Strip.WriteColors([]color.RGBA{c}); writeErr != nil && err == nil {
		err = writeErr
	}
	return err
}

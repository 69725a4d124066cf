package tinygif

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

type recordingRenderer struct {
	areas        []ImageArea
	pixels       [][]byte
	flushes      int
	writeAreaErr error
	flushErr     error
}

func (r *recordingRenderer) WriteArea(area ImageArea, pixels []byte, _ *ColorTable, _ *byte) error {
	if r.writeAreaErr != nil {
		return r.writeAreaErr
	}
	r.areas = append(r.areas, area)
	cp := make([]byte, len(pixels))
	copy(cp, pixels)
	r.pixels = append(r.pixels, cp)
	return nil
}

func (r *recordingRenderer) FlushFrame() error {
	if r.flushErr != nil {
		return r.flushErr
	}
	r.flushes++
	return nil
}

func TestLineBatcherFlushesFullSections(t *testing.T) {
	c := qt.New(t)

	rnd := &recordingRenderer{}
	buf := make([]byte, 4) // width 2, sectionHeight 2
	area := ImageArea{Xpos: 0, Ypos: 0, Width: 2, Height: 4}
	sink := newLineBatcher(buf, area, rnd, &ColorTable{}, nil)

	c.Assert(sink.sectionHeight, qt.Equals, uint16(2))

	c.Assert(sink.push([]byte{0, 1, 2, 3}), qt.IsNil)
	c.Assert(rnd.areas, qt.HasLen, 1)
	c.Assert(rnd.areas[0], qt.Equals, ImageArea{Xpos: 0, Ypos: 0, Width: 2, Height: 2})
	c.Assert(rnd.pixels[0], qt.DeepEquals, []byte{0, 1, 2, 3})

	c.Assert(sink.finish(), qt.IsNil)
	c.Assert(rnd.areas, qt.HasLen, 2)
	c.Assert(rnd.areas[1], qt.Equals, ImageArea{Xpos: 0, Ypos: 2, Width: 2, Height: 2})
	c.Assert(rnd.flushes, qt.Equals, 1)
}

func TestLineBatcherFinalPartialFlush(t *testing.T) {
	c := qt.New(t)

	rnd := &recordingRenderer{}
	buf := make([]byte, 10) // width 2, sectionHeight 5, but frame is only 3 lines tall
	area := ImageArea{Xpos: 5, Ypos: 1, Width: 2, Height: 3}
	sink := newLineBatcher(buf, area, rnd, &ColorTable{}, nil)

	c.Assert(sink.push([]byte{0, 1, 2, 3}), qt.IsNil) // 2 lines, buffer not full yet
	c.Assert(rnd.areas, qt.HasLen, 0)

	c.Assert(sink.finish(), qt.IsNil)
	c.Assert(rnd.areas, qt.HasLen, 1)
	c.Assert(rnd.areas[0], qt.Equals, ImageArea{Xpos: 5, Ypos: 1, Width: 2, Height: 3})
	c.Assert(rnd.flushes, qt.Equals, 1)
}

func TestLineBatcherRenderErrorWraps(t *testing.T) {
	c := qt.New(t)

	rnd := &recordingRenderer{writeAreaErr: sentinelErr("spi timeout")}
	buf := make([]byte, 2)
	area := ImageArea{Width: 2, Height: 2}
	sink := newLineBatcher(buf, area, rnd, &ColorTable{}, nil)

	err := sink.push([]byte{0, 1})
	c.Assert(err, qt.Not(qt.IsNil))
	decErr, ok := err.(Error)
	c.Assert(ok, qt.IsTrue)
	c.Assert(decErr.Kind, qt.Equals, KindRenderError)
}

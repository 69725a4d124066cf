package tinygif

// lineBatcher accumulates decoded pixel indices into a row-aligned
// output buffer and flushes whole sections to the renderer as soon as
// the buffer fills (C4). A section is sectionHeight = len(buf) /
// frameArea.Width scan lines — the unit of renderer delivery.
type lineBatcher struct {
	buf           []byte // caller-owned, length OutBufLen
	frameArea     ImageArea
	sectionHeight uint16
	renderer      Renderer
	colorTable    *ColorTable
	transparency  *byte

	outputIndex uint16
	outputLine  uint16
}

func newLineBatcher(buf []byte, frameArea ImageArea, renderer Renderer, colorTable *ColorTable, transparency *byte) lineBatcher {
	sectionHeight := uint16(1)
	if frameArea.Width > 0 {
		sectionHeight = uint16(len(buf)) / frameArea.Width
		if sectionHeight == 0 {
			sectionHeight = 1
		}
	}
	return lineBatcher{
		buf:           buf,
		frameArea:     frameArea,
		sectionHeight: sectionHeight,
		renderer:      renderer,
		colorTable:    colorTable,
		transparency:  transparency,
	}
}

// push appends pixels to the batch, flushing full sections as they
// fill. It never splits a pixel across flushes.
func (s *lineBatcher) push(pixels []byte) error {
	for _, p := range pixels {
		s.buf[s.outputIndex] = p
		s.outputIndex++

		if s.outputIndex == s.frameArea.Width*s.sectionHeight {
			if err := s.flushSection(s.sectionHeight); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *lineBatcher) flushSection(height uint16) error {
	area := ImageArea{
		Xpos:   s.frameArea.Xpos,
		Ypos:   s.frameArea.Ypos + s.outputLine,
		Width:  s.frameArea.Width,
		Height: height,
	}
	if err := s.renderer.WriteArea(area, s.buf[:s.outputIndex], s.colorTable, s.transparency); err != nil {
		return wrapErr(KindRenderError, err)
	}
	s.outputIndex = 0
	s.outputLine += height
	return nil
}

// finish issues the final partial-section flush (if any scan lines
// remain) and calls FlushFrame exactly once, as the last renderer call
// for the frame.
func (s *lineBatcher) finish() error {
	if s.outputLine < s.frameArea.Height {
		if err := s.flushSection(s.frameArea.Height - s.outputLine); err != nil {
			return err
		}
	}
	if err := s.renderer.FlushFrame(); err != nil {
		return wrapErr(KindRenderError, err)
	}
	return nil
}

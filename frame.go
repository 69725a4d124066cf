package tinygif

// frameDecoder is the per-frame orchestrator (C5): it wires the bit
// reader (C1), dictionary (C2), chain expander (C3) and pixel sink
// (C4) together and drives the process_code state machine of spec
// §4.5. It is constructed fresh for each frame by GifDecoder and
// discarded afterward; it never outlives one call to DecodeFrameImage.
type frameDecoder struct {
	bits dictionary
	br   bitReader
	sink lineBatcher

	reverseBuf []byte // caller-owned scratch for chain expansion

	lastSymbol  uint16
	haveLastSym bool
	finished    bool
}

func newFrameDecoder(src ByteSource, frameArea ImageArea, entries []lzwEntry, reverseBuf []byte, outBuf []byte, renderer Renderer, colorTable *ColorTable, transparency *byte, initialLzwSize uint8) frameDecoder {
	return frameDecoder{
		bits:       newDictionary(entries, initialLzwSize),
		br:         newBitReader(src),
		sink:       newLineBatcher(outBuf, frameArea, renderer, colorTable, transparency),
		reverseBuf: reverseBuf,
	}
}

// decodeFrame drives the sub-block loop: it pulls LZW codes of the
// current width from the bit reader and feeds each to processCode
// until the stop code terminates the frame or the byte source runs
// dry first. After the stop code it reads the rest of the sub-block
// sequence through its zero-length terminator, so the source is left
// at the next block introducer.
func (f *frameDecoder) decodeFrame() error {
	for {
		code, ok, err := f.br.readCode(f.bits.currentSymbolSize)
		if err != nil {
			return err
		}
		if !ok {
			if f.finished {
				return nil
			}
			return newErr(KindFileEnded)
		}
		if err := f.processCode(code); err != nil {
			return err
		}
		if f.finished {
			for {
				_, done, err := f.br.nextSubBlockByte()
				if err != nil {
					return err
				}
				if done {
					return nil
				}
			}
		}
	}
}

// processCode implements spec §4.5's numbered steps verbatim.
func (f *frameDecoder) processCode(code uint16) error {
	if f.finished {
		return newErr(KindDecoderAlreadyFinished)
	}

	if code == f.bits.clearCode {
		f.bits.reset()
		f.haveLastSym = false
		return nil
	}

	if code == f.bits.stopCode {
		if err := f.sink.finish(); err != nil {
			return err
		}
		f.finished = true
		return nil
	}

	if !f.haveLastSym {
		if code >= f.bits.clearCode {
			return newErr(KindInvalidSymbol)
		}
		f.lastSymbol = code
		f.haveLastSym = true
		return f.sink.push([]byte{byte(code)})
	}

	if code > f.bits.tableIndex+1 {
		return newErr(KindInvalidSymbol)
	}

	if !f.bits.full() {
		f.bits.insert(f.lastSymbol, code)
	}

	n, err := expand(&f.bits, code, f.reverseBuf)
	if err != nil {
		return err
	}
	if err := f.sink.push(f.reverseBuf[:n]); err != nil {
		return err
	}

	f.lastSymbol = code
	return nil
}

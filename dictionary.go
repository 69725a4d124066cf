package tinygif

// lzwEntry is one dictionary record: the string of code first followed
// by the single byte last, so last is the final byte of the string this
// entry expands to. insert takes that byte from the first literal of the
// code that follows first, which is why it is known before the string
// is ever expanded.
type lzwEntry struct {
	first uint16
	last  byte
}

// dictionary is the fixed 4096-entry LZW code table plus the adaptive
// code-width bookkeeping (C2). Slots [0, clearCode) are never written;
// they represent literal bytes implicitly. clearCode and stopCode are
// reserved. User entries live in (stopCode, 4095].
type dictionary struct {
	entries []lzwEntry // caller-owned, length 4096

	clearCode         uint16
	stopCode          uint16
	initialSymbolSize uint8
	currentSymbolSize uint8
	tableIndex        uint16
}

func newDictionary(entries []lzwEntry, initialLzwSize uint8) dictionary {
	clearCode := uint16(1) << initialLzwSize
	d := dictionary{
		entries:           entries,
		clearCode:         clearCode,
		stopCode:          clearCode + 1,
		initialSymbolSize: initialLzwSize + 1,
	}
	d.reset()
	return d
}

// reset implements the clear_code handling of spec §4.2: code width and
// table_index return to their post-construction values. Whether
// last_symbol is also cleared is the caller's (frameDecoder's)
// responsibility, per the open question noted in spec §9.
func (d *dictionary) reset() {
	d.currentSymbolSize = d.initialSymbolSize
	d.tableIndex = d.stopCode
}

func (d *dictionary) full() bool { return d.tableIndex == 4095 }

// firstLiteralOf walks first-links until it reaches a literal code and
// returns it (spec §4.5's first_literal_of).
func (d *dictionary) firstLiteralOf(c uint16) byte {
	for c >= d.clearCode {
		c = d.entries[c].first
	}
	return byte(c)
}

// insert adds a new entry at table_index+1 per spec §4.2, handling the
// KwKwK special case (code > the pre-insertion table_index
// means "the code the encoder just produced", i.e. lastSymbol itself).
// It returns the new table_index. The caller must already have checked
// !d.full().
func (d *dictionary) insert(lastSymbol, code uint16) uint16 {
	effectiveCode := code
	if code > d.tableIndex {
		effectiveCode = lastSymbol
	}

	d.tableIndex++
	d.entries[d.tableIndex] = lzwEntry{
		first: lastSymbol,
		last:  d.firstLiteralOf(effectiveCode),
	}

	// Width bump at the fill boundary: load-bearing off-by-one (spec §9).
	if uint32(d.tableIndex)+1 == uint32(1)<<d.currentSymbolSize && d.currentSymbolSize < 12 {
		d.currentSymbolSize++
	}

	return d.tableIndex
}

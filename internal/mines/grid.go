package mines

import "strconv"

type Kind uint8

const (
	Empty Kind = iota
	Mine
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Mine:
		return "mine"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

const (
	GlyphCovered = "_"
	GlyphFlagged = "X"
	GlyphCleared = "0"

	// Delimiter follows every glyph of a rendered row.
	Delimiter = "\t"
)

// Cell is one square of the board. Its kind is fixed at construction. The
// revealed bit is only ever set on empty cells and never cleared again.
type Cell struct {
	kind     Kind
	flagged  bool
	revealed bool
}

func (c Cell) Kind() Kind {
	return c.kind
}

func (c Cell) Flagged() bool {
	return c.flagged
}

// Revealed reports whether an empty cell has been opened. Mines are never
// revealed.
func (c Cell) Revealed() bool {
	switch c.kind {
	case Empty:
		return c.revealed
	case Mine:
		return false
	default:
		panic("mines: unknown cell kind " + c.kind.String())
	}
}

func (c *Cell) toggleFlag() {
	c.flagged = !c.flagged
}

// coveredEmpty reports whether the cell may be entered by a flood reveal.
func (c Cell) coveredEmpty() bool {
	switch c.kind {
	case Empty:
		return !c.revealed && !c.flagged
	case Mine:
		return false
	default:
		panic("mines: unknown cell kind " + c.kind.String())
	}
}

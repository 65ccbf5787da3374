package mines

import (
	"iter"
	"strconv"
	"strings"
)

// Board is a fixed grid of cells indexed [x][y] with the origin at the
// bottom left. A Board is not safe for concurrent use.
type Board struct {
	width, height int
	density       float64
	cells         [][]Cell
}

func newBoard(width, height int) *Board {
	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
	}
	return &Board{width: width, height: height, cells: cells}
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) Params() GameParams {
	return GameParams{Width: b.width, Height: b.height, Density: b.density}
}

func (b *Board) inBounds(x, y int) bool {
	return b.Params().ValidatePoint(x, y)
}

func (b *Board) Cell(x, y int) (Cell, error) {
	if !b.inBounds(x, y) {
		return Cell{}, outOfBounds(x, y, b.width, b.height)
	}
	return b.cells[x][y], nil
}

func (b *Board) neighbours(x, y int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for _, d := range adjacency {
			xx, yy := x+d.x, y+d.y
			if !b.inBounds(xx, yy) {
				continue
			}
			if !yield(xx, yy) {
				return
			}
		}
	}
}

func (b *Board) adjacentMines(x, y int) (count int) {
	for xx, yy := range b.neighbours(x, y) {
		if b.cells[xx][yy].kind == Mine {
			count++
		}
	}
	return
}

// Reveal opens the cell at (x, y) and reports whether it holds a mine.
// A flagged cell is unflagged instead of opened. Opening a covered empty
// cell with no adjacent mines opens its neighbours as well, skipping
// flagged ones.
func (b *Board) Reveal(x, y int) (mine bool, err error) {
	if !b.inBounds(x, y) {
		return false, outOfBounds(x, y, b.width, b.height)
	}
	cell := &b.cells[x][y]
	if cell.flagged {
		cell.toggleFlag()
		return false, nil
	}
	switch cell.kind {
	case Mine:
		return true, nil
	case Empty:
		if !cell.revealed {
			b.exposeFrom(x, y)
		}
		return false, nil
	default:
		panic("mines: unknown cell kind " + cell.kind.String())
	}
}

func (b *Board) exposeFrom(x, y int) {
	var todo celltodo
	b.cells[x][y].revealed = true
	todo.push(x, y)
	for {
		p, ok := todo.pop()
		if !ok {
			break
		}
		if b.adjacentMines(p.x, p.y) != 0 {
			continue
		}
		for xx, yy := range b.neighbours(p.x, p.y) {
			if b.cells[xx][yy].coveredEmpty() {
				b.cells[xx][yy].revealed = true
				todo.push(xx, yy)
			}
		}
	}
}

func (b *Board) ToggleFlag(x, y int) error {
	if !b.inBounds(x, y) {
		return outOfBounds(x, y, b.width, b.height)
	}
	b.cells[x][y].toggleFlag()
	return nil
}

// IsCleared reports whether every empty cell has been revealed.
func (b *Board) IsCleared() bool {
	for _, column := range b.cells {
		for _, cell := range column {
			switch cell.kind {
			case Empty:
				if !cell.revealed {
					return false
				}
			case Mine:
			}
		}
	}
	return true
}

func (b *Board) MineCount() (count int) {
	for _, column := range b.cells {
		for _, cell := range column {
			if cell.kind == Mine {
				count++
			}
		}
	}
	return
}

func (b *Board) FlagCount() (count int) {
	for _, column := range b.cells {
		for _, cell := range column {
			if cell.flagged {
				count++
			}
		}
	}
	return
}

// Glyph is what the player sees at (x, y). Covered cells look the same
// whether or not they hold a mine.
func (b *Board) Glyph(x, y int) (string, error) {
	if !b.inBounds(x, y) {
		return "", outOfBounds(x, y, b.width, b.height)
	}
	return b.glyph(x, y), nil
}

func (b *Board) glyph(x, y int) string {
	cell := b.cells[x][y]
	if cell.flagged {
		return GlyphFlagged
	}
	switch cell.kind {
	case Empty:
		if !cell.revealed {
			return GlyphCovered
		}
		if n := b.adjacentMines(x, y); n != 0 {
			return strconv.Itoa(n)
		}
		return GlyphCleared
	case Mine:
		return GlyphCovered
	default:
		panic("mines: unknown cell kind " + cell.kind.String())
	}
}

// Rows returns the visible glyphs row by row, top row first.
func (b *Board) Rows() [][]string {
	rows := make([][]string, 0, b.height)
	for y := b.height - 1; y >= 0; y-- {
		row := make([]string, b.width)
		for x := range b.width {
			row[x] = b.glyph(x, y)
		}
		rows = append(rows, row)
	}
	return rows
}

// Render draws the board top row first, each glyph followed by
// [Delimiter], each row ended by a newline, plus one blank line.
func (b *Board) Render() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		for x := range b.width {
			sb.WriteString(b.glyph(x, y))
			sb.WriteString(Delimiter)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// [Board] implements [fmt.Stringer]
func (b *Board) String() string {
	return b.Render()
}

package mines

import (
	"fmt"
	"hash/maphash"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultWidth   = 7
	DefaultHeight  = 7
	DefaultDensity = 0.10

	// DefaultMaxCells bounds the boards a client may ask for.
	DefaultMaxCells = 10_000
)

type GameParams struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Density float64 `json:"density"`
}

func DefaultParams() GameParams {
	return GameParams{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Density: DefaultDensity,
	}
}

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w (width = %d, height = %d)",
			ErrInvalidDimensions, p.Width, p.Height,
		)
	}
	if math.IsNaN(p.Density) || p.Density < 0 || p.Density > 1 {
		return fmt.Errorf("%w (density = %v)", ErrInvalidDensity, p.Density)
	}
	return nil
}

// ValidateSize rejects params describing more than maxCells cells. A
// non-positive maxCells disables the check. p must already be valid.
func (p GameParams) ValidateSize(maxCells int) error {
	if maxCells > 0 && p.Width > maxCells/p.Height {
		return fmt.Errorf("%w (width = %d, height = %d, max cells = %d)",
			ErrInvalidDimensions, p.Width, p.Height, maxCells,
		)
	}
	return nil
}

// Seed returns the compact "width:height:density" form of p.
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%s",
		p.Width, p.Height, strconv.FormatFloat(p.Density, 'g', -1, 64),
	)
}

func ParseSeed(seed string) (*GameParams, error) {
	parts := strings.Split(seed, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf(
			`invalid game params seed (seed = "%s", parts = %d)`,
			seed, len(parts),
		)
	}
	var (
		p   GameParams
		err error
	)
	if p.Width, err = strconv.Atoi(parts[0]); err != nil {
		return nil, fmt.Errorf("invalid seed width: %w", err)
	}
	if p.Height, err = strconv.Atoi(parts[1]); err != nil {
		return nil, fmt.Errorf("invalid seed height: %w", err)
	}
	if p.Density, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return nil, fmt.Errorf("invalid seed density: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p GameParams) ValidatePoint(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewBoard places a mine on every cell independently with probability
// params.Density. No guarantee is made that the board holds any mine or
// any empty cell. A nil rnd falls back to a freshly seeded generator.
func NewBoard(params GameParams, rnd *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	b := newBoard(params.Width, params.Height)
	b.density = params.Density
	for x := range b.width {
		for y := range b.height {
			if rnd.Float64() < params.Density {
				b.cells[x][y].kind = Mine
			}
		}
	}
	Log.WithField("params", params.Seed()).
		WithField("mines", b.MineCount()).
		Debug("generated board")
	return b, nil
}

// NewBoardWithMines builds a board from a row-major mine mask, where
// mines[y*width+x] marks the cell at (x, y).
func NewBoardWithMines(width, height int, mines []bool) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (width = %d, height = %d)",
			ErrInvalidDimensions, width, height,
		)
	}
	if len(mines) != width*height {
		return nil, fmt.Errorf(
			"mine mask has %d entries, want %d", len(mines), width*height,
		)
	}
	b := newBoard(width, height)
	for i, mined := range mines {
		if mined {
			b.cells[i%width][i/width].kind = Mine
		}
	}
	b.density = float64(b.MineCount()) / float64(width*height)
	return b, nil
}

// ParseBoard reads a board layout drawn top row first, one line per row,
// with '*' marking a mine and any other non-space rune an empty cell.
// Blank lines and surrounding whitespace are ignored.
func ParseBoard(layout string) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w (empty layout)", ErrInvalidDimensions)
	}
	width, height := utf8.RuneCountInString(rows[0]), len(rows)
	mines := make([]bool, 0, width*height)
	for y := range height {
		row := rows[height-1-y]
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf(
				"layout row %d has %d cells, want %d", height-1-y, n, width,
			)
		}
		for _, r := range row {
			mines = append(mines, r == '*')
		}
	}
	return NewBoardWithMines(width, height, mines)
}

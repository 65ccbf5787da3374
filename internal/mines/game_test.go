package mines

import (
	"math/rand/v2"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func mustParse(t *testing.T, layout string) *Board {
	t.Helper()
	b, err := ParseBoard(layout)
	require.NoError(t, err)
	return b
}

func revealed(t *testing.T, b *Board, x, y int) bool {
	t.Helper()
	c, err := b.Cell(x, y)
	require.NoError(t, err)
	return c.Revealed()
}

func flagged(t *testing.T, b *Board, x, y int) bool {
	t.Helper()
	c, err := b.Cell(x, y)
	require.NoError(t, err)
	return c.Flagged()
}

func TestNewBoardDimensions(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
	}{
		{"1x1", GameParams{Width: 1, Height: 1, Density: 0.1}},
		{"7x7", GameParams{Width: 7, Height: 7, Density: 0.1}},
		{"30x16", GameParams{Width: 30, Height: 16, Density: 0.25}},
		{"3x11", GameParams{Width: 3, Height: 11, Density: 0.5}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			b, err := NewBoard(test.params, r)
			require.NoError(t, err)
			assert.Equal(t, test.params.Width, b.Width())
			assert.Equal(t, test.params.Height, b.Height())
			assert.Equal(t, test.params, b.Params())

			count := 0
			for x := range b.Width() {
				for y := range b.Height() {
					_, err := b.Cell(x, y)
					assert.NoError(t, err)
					count++
				}
			}
			assert.Equal(t, b.Width()*b.Height(), count)
		})
	}
}

func TestNewBoardInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
		err    error
	}{
		{"zero width", GameParams{Width: 0, Height: 3}, ErrInvalidDimensions},
		{"negative height", GameParams{Width: 3, Height: -1}, ErrInvalidDimensions},
		{"density above one", GameParams{Width: 3, Height: 3, Density: 1.5}, ErrInvalidDensity},
		{"negative density", GameParams{Width: 3, Height: 3, Density: -0.1}, ErrInvalidDensity},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(test.params, rand.New(rand.NewPCG(1, 2)))
			assert.ErrorIs(t, err, test.err)
		})
	}
}

func TestNewBoardDensityExtremes(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	empty, err := NewBoard(GameParams{Width: 5, Height: 4, Density: 0}, r)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.MineCount())
	assert.False(t, empty.IsCleared())

	full, err := NewBoard(GameParams{Width: 5, Height: 4, Density: 1}, r)
	require.NoError(t, err)
	assert.Equal(t, 20, full.MineCount())
	assert.True(t, full.IsCleared())
}

func TestNewBoardSeeded(t *testing.T) {
	params := GameParams{Width: 9, Height: 9, Density: 0.2}
	a, err := NewBoard(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	b, err := NewBoard(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, a.cells, b.cells)
}

func TestNewBoardNilRand(t *testing.T) {
	b, err := NewBoard(DefaultParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, b.Width())
	assert.Equal(t, DefaultHeight, b.Height())
}

func TestNewBoardWithMines(t *testing.T) {
	b, err := NewBoardWithMines(3, 2, []bool{
		true, false, false, // y = 0
		false, false, true, // y = 1
	})
	require.NoError(t, err)

	c, _ := b.Cell(0, 0)
	assert.Equal(t, Mine, c.Kind())
	c, _ = b.Cell(2, 1)
	assert.Equal(t, Mine, c.Kind())
	c, _ = b.Cell(1, 0)
	assert.Equal(t, Empty, c.Kind())
	assert.Equal(t, 2, b.MineCount())

	_, err = NewBoardWithMines(3, 2, []bool{true})
	assert.Error(t, err)
	_, err = NewBoardWithMines(0, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestParseBoardOrientation(t *testing.T) {
	b := mustParse(t, `
		* . .
		. . .
	`)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 2, b.Height())
	c, _ := b.Cell(0, 1)
	assert.Equal(t, Mine, c.Kind(), "top row is drawn first")
	c, _ = b.Cell(0, 0)
	assert.Equal(t, Empty, c.Kind())

	_, err := ParseBoard("..\n...")
	assert.Error(t, err)
	_, err = ParseBoard("  \n")
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestParseBoardCountsRunes(t *testing.T) {
	b := mustParse(t, `
		· * ·
		· · ·
	`)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 1, b.MineCount())

	_, err := ParseBoard("··\n...")
	assert.ErrorContains(t, err, "layout row 1 has 3 cells, want 2")
}

func TestRevealSingleEmptyCell(t *testing.T) {
	b := mustParse(t, ".")
	assert.False(t, b.IsCleared())

	mine, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.False(t, mine)
	assert.True(t, b.IsCleared())
}

func TestRevealMine(t *testing.T) {
	b := mustParse(t, `
		. .
		* .
	`)

	mine, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.True(t, mine)
	for _, p := range []point{{1, 0}, {0, 1}, {1, 1}} {
		assert.False(t, revealed(t, b, p.x, p.y))
	}
	assert.False(t, b.IsCleared())
}

func TestRevealIdempotent(t *testing.T) {
	b := mustParse(t, `
		* .
		. .
	`)

	mine, err := b.Reveal(1, 0)
	require.NoError(t, err)
	assert.False(t, mine)
	before := b.Render()

	mine, err = b.Reveal(1, 0)
	require.NoError(t, err)
	assert.False(t, mine)
	assert.Equal(t, before, b.Render())
}

func TestRevealFlaggedUnflags(t *testing.T) {
	b := mustParse(t, `
		* .
		. .
	`)
	require.NoError(t, b.ToggleFlag(0, 1))
	require.NoError(t, b.ToggleFlag(1, 0))

	mine, err := b.Reveal(0, 1)
	require.NoError(t, err)
	assert.False(t, mine, "flagged mine is not triggered")
	assert.False(t, flagged(t, b, 0, 1))

	mine, err = b.Reveal(1, 0)
	require.NoError(t, err)
	assert.False(t, mine)
	assert.False(t, flagged(t, b, 1, 0))
	assert.False(t, revealed(t, b, 1, 0), "flagged empty cell is not opened")

	mine, err = b.Reveal(1, 0)
	require.NoError(t, err)
	assert.False(t, mine)
	assert.True(t, revealed(t, b, 1, 0))
}

func TestFloodReveal(t *testing.T) {
	b := mustParse(t, `
		. . . . .
		. . . . .
		. . . * .
		. . . . .
		* . . . .
	`)

	mine, err := b.Reveal(0, 4)
	require.NoError(t, err)
	assert.False(t, mine)

	want := strings.Join([]string{
		"0\t0\t0\t0\t0\t",
		"0\t0\t1\t1\t1\t",
		"0\t0\t1\t_\t_\t",
		"1\t1\t1\t_\t_\t",
		"_\t_\t_\t_\t_\t",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, b.Render())
	assert.False(t, b.IsCleared())
}

func TestFloodRevealStopsAtNumbers(t *testing.T) {
	b := mustParse(t, `
		. . .
		. * .
		. . .
	`)

	_, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.True(t, revealed(t, b, 0, 0))
	for x := range 3 {
		for y := range 3 {
			if x == 0 && y == 0 {
				continue
			}
			assert.False(t, revealed(t, b, x, y), "(%d, %d)", x, y)
		}
	}
}

func TestFloodRevealSkipsFlagged(t *testing.T) {
	b := mustParse(t, `
		. . . .
		. . . .
		. . . .
	`)
	require.NoError(t, b.ToggleFlag(3, 2))
	require.NoError(t, b.ToggleFlag(1, 1))

	_, err := b.Reveal(0, 0)
	require.NoError(t, err)

	assert.True(t, flagged(t, b, 3, 2))
	assert.False(t, revealed(t, b, 3, 2))
	assert.True(t, flagged(t, b, 1, 1))
	assert.False(t, revealed(t, b, 1, 1))
	assert.True(t, revealed(t, b, 2, 2))
	assert.False(t, b.IsCleared())

	require.NoError(t, b.ToggleFlag(3, 2))
	_, err = b.Reveal(3, 2)
	require.NoError(t, err)
	_, err = b.Reveal(1, 1)
	require.NoError(t, err)
	assert.False(t, flagged(t, b, 1, 1))
	_, err = b.Reveal(1, 1)
	require.NoError(t, err)
	assert.True(t, b.IsCleared())
}

func TestFloodRevealLargeBoard(t *testing.T) {
	params := GameParams{Width: 400, Height: 400, Density: 0}
	b, err := NewBoard(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	mine, err := b.Reveal(200, 200)
	require.NoError(t, err)
	assert.False(t, mine)
	assert.True(t, b.IsCleared())
}

func TestFloodRevealRegion(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		b, err := NewBoard(GameParams{Width: 12, Height: 9, Density: 0.15}, r)
		require.NoError(t, err)

		sx, sy := -1, -1
		for x := range b.width {
			for y := range b.height {
				if sx < 0 && b.cells[x][y].kind == Empty && b.adjacentMines(x, y) == 0 {
					sx, sy = x, y
				}
			}
		}
		if sx < 0 {
			continue
		}

		_, err = b.Reveal(sx, sy)
		require.NoError(t, err)

		// every revealed zero cell has all its neighbours revealed, and
		// no mine is ever marked revealed
		for x := range b.width {
			for y := range b.height {
				c := b.cells[x][y]
				if c.kind == Mine {
					assert.False(t, c.Revealed())
					continue
				}
				if c.revealed && b.adjacentMines(x, y) == 0 {
					for xx, yy := range b.neighbours(x, y) {
						assert.True(t, b.cells[xx][yy].Revealed(),
							"(%d, %d) next to zero (%d, %d)", xx, yy, x, y)
					}
				}
			}
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	b := mustParse(t, `
		. *
		. .
	`)
	before := b.Render()

	points := []point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}}
	for _, p := range points {
		_, err := b.Reveal(p.x, p.y)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.ErrorIs(t, b.ToggleFlag(p.x, p.y), ErrOutOfBounds)
		_, err = b.Cell(p.x, p.y)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = b.Glyph(p.x, p.y)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
	assert.Equal(t, before, b.Render())
	assert.Equal(t, 0, b.FlagCount())
}

func TestToggleFlagInvolution(t *testing.T) {
	b := mustParse(t, `
		* .
		. .
	`)
	_, err := b.Reveal(1, 0)
	require.NoError(t, err)

	for x := range 2 {
		for y := range 2 {
			before, _ := b.Cell(x, y)
			require.NoError(t, b.ToggleFlag(x, y))
			after, _ := b.Cell(x, y)
			assert.NotEqual(t, before.Flagged(), after.Flagged())
			require.NoError(t, b.ToggleFlag(x, y))
			again, _ := b.Cell(x, y)
			assert.Equal(t, before, again)
		}
	}
}

func TestToggleFlagRevealedCell(t *testing.T) {
	b := mustParse(t, "* .")
	_, err := b.Reveal(1, 0)
	require.NoError(t, err)

	require.NoError(t, b.ToggleFlag(1, 0))
	assert.True(t, flagged(t, b, 1, 0))
	assert.True(t, revealed(t, b, 1, 0), "flag does not cover a revealed cell")
	assert.Equal(t, "_\tX\t\n\n", b.Render())
	assert.Equal(t, 1, b.FlagCount())
}

func TestIsCleared(t *testing.T) {
	b := mustParse(t, `
		* . *
		. . .
	`)
	assert.False(t, b.IsCleared())

	_, err := b.Reveal(1, 1)
	require.NoError(t, err)
	assert.False(t, b.IsCleared())

	for _, p := range []point{{0, 0}, {1, 0}, {2, 0}} {
		_, err := b.Reveal(p.x, p.y)
		require.NoError(t, err)
	}
	assert.True(t, b.IsCleared())

	for x := range b.width {
		for y := range b.height {
			c := b.cells[x][y]
			assert.True(t, c.kind == Mine || c.revealed)
		}
	}
}

func TestRenderCoveredMinesLookEmpty(t *testing.T) {
	b := mustParse(t, `
		* . *
		. * .
	`)
	want := "_\t_\t_\t\n_\t_\t_\t\n\n"
	assert.Equal(t, want, b.Render())
	assert.Equal(t, want, b.String())

	require.NoError(t, b.ToggleFlag(0, 1))
	require.NoError(t, b.ToggleFlag(1, 1))
	assert.Equal(t, "X\tX\t_\t\n_\t_\t_\t\n\n", b.Render())
}

func TestRenderCounts(t *testing.T) {
	b := mustParse(t, `
		* * *
		* . *
		* * *
	`)
	_, err := b.Reveal(1, 1)
	require.NoError(t, err)

	g, err := b.Glyph(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "8", g)
	assert.Equal(t, [][]string{
		{"_", "_", "_"},
		{"_", "8", "_"},
		{"_", "_", "_"},
	}, b.Rows())
	assert.True(t, b.IsCleared())
}

func TestNeighbourCounts(t *testing.T) {
	b := mustParse(t, `
		. . .
		. . .
		. . .
	`)
	count := func(x, y int) (n int) {
		for range b.neighbours(x, y) {
			n++
		}
		return
	}
	assert.Equal(t, 3, count(0, 0))
	assert.Equal(t, 3, count(2, 2))
	assert.Equal(t, 5, count(1, 0))
	assert.Equal(t, 5, count(0, 1))
	assert.Equal(t, 8, count(1, 1))
}

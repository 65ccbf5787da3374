package mines

import "github.com/sirupsen/logrus"

var Log = logrus.New()

type point struct {
	x, y int
}

// King-move neighbourhood, in the order neighbours are visited.
var adjacency = [8]point{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
}

// celltodo is the work list of a flood reveal.
type celltodo struct {
	stack []point
}

func (t *celltodo) push(x, y int) {
	t.stack = append(t.stack, point{x, y})
}

func (t *celltodo) pop() (point, bool) {
	n := len(t.stack)
	if n == 0 {
		return point{}, false
	}
	p := t.stack[n-1]
	t.stack = t.stack[:n-1]
	return p, true
}

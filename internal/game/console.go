package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	PromptAction = "Which action? c for click, f for flag"
	PromptColumn = "Which column?"
	PromptRow    = "Which row?"

	MsgInvalid = "Invalid input!"
	MsgLost    = "You hit a mine, Game Over!"
	MsgWon     = "You won!"
	MsgBye     = "Bye Bye!"
)

// Console plays a session over a whitespace separated token stream: an
// action, a column and a row per turn.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Console{in: scanner, out: out}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) next() (string, error) {
	if c.in.Scan() {
		return c.in.Text(), nil
	}
	if err := c.in.Err(); err != nil {
		return "", fmt.Errorf("unable to read input: %w", err)
	}
	return "", io.EOF
}

func (c *Console) nextInt() (int, error) {
	token, err := c.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(token)
}

// turn reads one action and its coordinates. A malformed coordinate is
// reported as an invalid command rather than a read error.
func (c *Console) turn() (cmd Command, valid bool, err error) {
	c.println(PromptAction)
	action, err := c.next()
	if err != nil {
		return
	}
	c.println(PromptColumn)
	x, err := c.nextInt()
	if err != nil {
		if errors.Is(err, strconv.ErrSyntax) || errors.Is(err, strconv.ErrRange) {
			return cmd, false, nil
		}
		return
	}
	c.println(PromptRow)
	y, err := c.nextInt()
	if err != nil {
		if errors.Is(err, strconv.ErrSyntax) || errors.Is(err, strconv.ErrRange) {
			return cmd, false, nil
		}
		return
	}
	switch Action(action) {
	case Click, Flag:
		return Command{Action: Action(action), X: x, Y: y}, true, nil
	default:
		return cmd, false, nil
	}
}

// Play runs the turn loop until the session is won or lost, or the input
// runs out.
func (c *Console) Play(s *Session) error {
	defer c.println(MsgBye)
	for !s.Over() {
		c.println(s.Board())

		cmd, valid, err := c.turn()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !valid {
			c.println(MsgInvalid)
			continue
		}

		outcome, err := s.Execute(cmd)
		if err != nil {
			c.println(MsgInvalid, err)
			continue
		}
		switch outcome {
		case Lost:
			c.println(MsgLost)
		case Won:
			c.println(MsgWon)
		}
	}
	return nil
}

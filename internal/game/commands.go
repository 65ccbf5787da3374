package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Action string

const (
	Click  Action = "c"
	Flag   Action = "f"
	Render Action = "r"
)

type Command struct {
	Action Action
	X, Y   int
}

func (c Command) String() string {
	if c.Action == Render {
		return string(c.Action)
	}
	return fmt.Sprintf("%s %d %d", c.Action, c.X, c.Y)
}

// Maps known commands to number of arguments
var commandNargs = map[Action]int{
	Click:  2,
	Flag:   2,
	Render: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNargs          = errors.New("invalid number of arguments")
)

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// ParseCommand reads one line command such as "c 3 4", "f 0 6" or "r".
func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	action := Action(strings.ToLower(parts[0]))
	nargs, ok := commandNargs[action]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%w: %s takes %d", ErrNargs, action, nargs)
	}
	cmd := Command{Action: action}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.X, cmd.Y = x, y
	}
	return cmd, nil
}

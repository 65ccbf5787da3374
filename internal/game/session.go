package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

type Outcome int

const (
	Playing Outcome = iota
	Lost
	Won
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

var ErrGameOver = errors.New("game is over")

// Session drives one board through a game. It is the single actor allowed
// to touch the board.
type Session struct {
	board   *mines.Board
	outcome Outcome
	log     logrus.FieldLogger
}

func NewSession(board *mines.Board, log logrus.FieldLogger) *Session {
	if log == nil {
		log = mines.Log
	}
	return &Session{
		board: board,
		log:   log.WithField("params", board.Params().Seed()),
	}
}

func (s *Session) Board() *mines.Board {
	return s.board
}

func (s *Session) Outcome() Outcome {
	return s.outcome
}

func (s *Session) Over() bool {
	return s.outcome != Playing
}

// Execute applies cmd to the board. Out of bounds coordinates leave the
// board untouched and are returned to the caller.
func (s *Session) Execute(cmd Command) (Outcome, error) {
	if s.Over() {
		return s.outcome, ErrGameOver
	}
	log := s.log.WithField("command", cmd.String())
	switch cmd.Action {
	case Click:
		mine, err := s.board.Reveal(cmd.X, cmd.Y)
		if err != nil {
			log.WithError(err).Debug("rejected click")
			return s.outcome, err
		}
		if mine {
			s.outcome = Lost
		} else if s.board.IsCleared() {
			s.outcome = Won
		}
	case Flag:
		if err := s.board.ToggleFlag(cmd.X, cmd.Y); err != nil {
			log.WithError(err).Debug("rejected flag")
			return s.outcome, err
		}
	case Render:
	default:
		return s.outcome, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Action)
	}
	log.WithField("outcome", s.outcome).Debug("executed command")
	return s.outcome, nil
}

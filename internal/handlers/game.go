package handlers

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

// BoardFunc creates the board for a new connection.
type BoardFunc func(mines.GameParams) (*mines.Board, error)

// RandomBoards draws every board from rnd, serializing access to it.
func RandomBoards(rnd *rand.Rand) BoardFunc {
	var mu sync.Mutex
	return func(params mines.GameParams) (*mines.Board, error) {
		mu.Lock()
		defer mu.Unlock()
		return mines.NewBoard(params, rnd)
	}
}

type GameHandler struct {
	log      logrus.FieldLogger
	ws       *config.WebSocket
	defaults mines.GameParams
	maxCells int
	newBoard BoardFunc
}

func NewGameHandler(
	log logrus.FieldLogger,
	ws *config.WebSocket,
	defaults mines.GameParams,
	maxCells int,
	newBoard BoardFunc,
) *GameHandler {
	return &GameHandler{
		log:      log,
		ws:       ws,
		defaults: defaults,
		maxCells: maxCells,
		newBoard: newBoard,
	}
}

func (g GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, map[string]string{
		"status":    "ok",
		"defaults":  g.defaults.Seed(),
		"max_cells": strconv.Itoa(g.maxCells),
	})
}

// Connect starts a private game on a websocket. Every text message carries
// one or more newline separated commands; each message is answered with
// the resulting game state.
func (g GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query(), g.defaults, g.maxCells)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	board, err := g.newBoard(params)
	if err != nil {
		g.log.WithError(err).Error("unable to generate a new board")
		sendErrorOrLog(w, g.log, http.StatusInternalServerError, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade failed")
		return
	}
	defer c.Close()
	if g.ws.ReadLimit > 0 {
		c.SetReadLimit(g.ws.ReadLimit)
	}

	log := g.log.WithField("remote_addr", r.RemoteAddr)
	session := game.NewSession(board, log)
	log.WithField("params", params.Seed()).Info("game started")

	if err := c.WriteJSON(NewGameStateDTO(session, nil)); err != nil {
		log.WithError(err).Warn("write failed")
		return
	}

	for {
		if g.ws.IdleTimeout > 0 {
			if err := c.SetReadDeadline(time.Now().Add(g.ws.IdleTimeout)); err != nil {
				log.WithError(err).Warn("unable to set read deadline")
				break
			}
		}
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				log.WithError(err).Warn("read failed")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		log.Debug("> ", text)

		cmdErr := g.execute(session, text)
		if err := c.WriteJSON(NewGameStateDTO(session, cmdErr)); err != nil {
			log.WithError(err).Warn("write failed")
			break
		}
	}

	log.WithField("outcome", session.Outcome()).Info("game closed")
}

// execute runs the commands in text until one fails or the game ends.
func (g GameHandler) execute(session *game.Session, text string) error {
	for _, line := range byPiece(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := game.ParseCommand(line)
		if err != nil {
			return err
		}
		if _, err := session.Execute(cmd); err != nil {
			return err
		}
		if session.Over() {
			break
		}
	}
	return nil
}

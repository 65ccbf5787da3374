package app

import (
	"github.com/vancomm/sweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.ws, a.config.Board, a.config.MaxCells,
		handlers.RandomBoards(a.rnd),
	)

	a.router.HandleFunc("GET /status", game.Status)
	a.router.HandleFunc("GET /game/connect", game.Connect)
}

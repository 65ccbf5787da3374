package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

type NewGameDTO struct {
	Board   string  `schema:"board"`
	Width   int     `schema:"width"`
	Height  int     `schema:"height"`
	Density float64 `schema:"density"`
}

// ParseNewGameDTO decodes board params from a query, falling back to
// defaults for any key the query leaves out. A compact "board" key
// ("width:height:density") takes precedence over the separate keys.
// Boards larger than maxCells are rejected.
func ParseNewGameDTO(
	src map[string][]string, defaults mines.GameParams, maxCells int,
) (mines.GameParams, error) {
	dto := NewGameDTO{
		Width:   defaults.Width,
		Height:  defaults.Height,
		Density: defaults.Density,
	}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}

	params := mines.GameParams{
		Width:   dto.Width,
		Height:  dto.Height,
		Density: dto.Density,
	}
	if dto.Board != "" {
		p, err := mines.ParseSeed(dto.Board)
		if err != nil {
			return mines.GameParams{}, err
		}
		params = *p
	}
	if err := params.Validate(); err != nil {
		return mines.GameParams{}, err
	}
	if err := params.ValidateSize(maxCells); err != nil {
		return mines.GameParams{}, err
	}
	return params, nil
}

type GameStateDTO struct {
	Params    string     `json:"params"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Board     string     `json:"board"`
	Grid      [][]string `json:"grid"`
	MineCount int        `json:"mine_count"`
	Flags     int        `json:"flags"`
	Outcome   string     `json:"outcome"`
	Dead      bool       `json:"dead"`
	Won       bool       `json:"won"`
	Error     string     `json:"error,omitempty"`
}

func NewGameStateDTO(s *game.Session, err error) *GameStateDTO {
	b := s.Board()
	dto := &GameStateDTO{
		Params:    b.Params().Seed(),
		Width:     b.Width(),
		Height:    b.Height(),
		Board:     b.Render(),
		Grid:      b.Rows(),
		MineCount: b.MineCount(),
		Flags:     b.FlagCount(),
		Outcome:   s.Outcome().String(),
		Dead:      s.Outcome() == game.Lost,
		Won:       s.Outcome() == game.Won,
	}
	if err != nil {
		dto.Error = err.Error()
	}
	return dto
}

package request

// CreateGameRequest is the request body for starting a game.
// Production is indexed [x][y] with y growing upward.
type CreateGameRequest struct {
	PlayerTag  int     `json:"player_tag"`
	Production [][]int `json:"production"`
	Strategy   string  `json:"strategy,omitempty"`
	Seed       *uint64 `json:"seed,omitempty"`
}

// TurnRequest is one frame: owner ids and strengths indexed [x][y]
type TurnRequest struct {
	Owners    [][]int `json:"owners"`
	Strengths [][]int `json:"strengths"`
}

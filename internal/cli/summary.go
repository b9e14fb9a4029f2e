package cli

import (
	"sort"

	"github.com/mcoot/halitebot/internal/replay"
)

// PlayerSummary is one seat's record across a batch
type PlayerSummary struct {
	Player       int     `json:"player"`
	Strategy     string  `json:"strategy"`
	Wins         int     `json:"wins"`
	AvgTerritory float64 `json:"avg_final_territory"`
}

// SimulationSummary aggregates a batch of matches
type SimulationSummary struct {
	Games    int             `json:"games"`
	Ties     int             `json:"ties"`
	AvgTurns float64         `json:"avg_turns"`
	Players  []PlayerSummary `json:"players"`
	Output   string          `json:"output,omitempty"`
}

type seat struct {
	match  string
	player int32
}

// summarize folds per-turn rows into a batch summary. A seat's final
// territory is taken from its last recorded turn.
func summarize(rows []replay.TurnRow) SimulationSummary {
	lastTurn := make(map[string]int32)
	winners := make(map[string]int32)
	final := make(map[seat]replay.TurnRow)
	strategies := make(map[int32]string)

	for _, r := range rows {
		if r.Turn > lastTurn[r.MatchID] {
			lastTurn[r.MatchID] = r.Turn
		}
		winners[r.MatchID] = r.Winner
		strategies[r.Player] = r.Strategy

		k := seat{r.MatchID, r.Player}
		if prev, ok := final[k]; !ok || r.Turn >= prev.Turn {
			final[k] = r
		}
	}

	summary := SimulationSummary{Games: len(lastTurn)}
	if summary.Games == 0 {
		return summary
	}

	totalTurns := 0
	for _, t := range lastTurn {
		totalTurns += int(t)
	}
	summary.AvgTurns = float64(totalTurns) / float64(summary.Games)

	wins := make(map[int32]int)
	for _, w := range winners {
		if w == 0 {
			summary.Ties++
			continue
		}
		wins[w]++
	}

	territory := make(map[int32]int)
	for k, r := range final {
		territory[k.player] += int(r.Territory)
	}

	players := make([]int32, 0, len(strategies))
	for p := range strategies {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	for _, p := range players {
		summary.Players = append(summary.Players, PlayerSummary{
			Player:       int(p),
			Strategy:     strategies[p],
			Wins:         wins[p],
			AvgTerritory: float64(territory[p]) / float64(summary.Games),
		})
	}
	return summary
}

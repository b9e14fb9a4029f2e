package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SimulationSummary:
		o.printSimulationSummary(v)
	case RemoteResult:
		o.printRemoteResult(v)
	case HealthResult:
		o.printHealthResult(v)
	case VersionInfo:
		o.printVersion(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// RemoteResult describes a game played against a running server
type RemoteResult struct {
	GameID    string `json:"game_id"`
	Strategy  string `json:"strategy"`
	Turns     int    `json:"turns"`
	Territory int    `json:"territory"`
	Cells     int    `json:"cells"`
}

// VersionInfo is printed by the version command
type VersionInfo struct {
	Version    string   `json:"version"`
	Strategies []string `json:"strategies"`
}

func (o *Output) printSimulationSummary(s SimulationSummary) {
	fmt.Fprintf(o.w, "Games: %d\n", s.Games)
	fmt.Fprintf(o.w, "Average turns: %.1f\n", s.AvgTurns)
	fmt.Fprintf(o.w, "Ties: %d\n", s.Ties)
	for _, p := range s.Players {
		fmt.Fprintf(o.w, "  P%d %-9s wins %3d  avg territory %.1f\n", p.Player, p.Strategy, p.Wins, p.AvgTerritory)
	}
	if s.Output != "" {
		fmt.Fprintf(o.w, "Wrote %s\n", s.Output)
	}
}

func (o *Output) printRemoteResult(r RemoteResult) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", r.GameID, r.Strategy)
	fmt.Fprintf(o.w, "Turns: %d\n", r.Turns)
	fmt.Fprintf(o.w, "Territory: %d/%d\n", r.Territory, r.Cells)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}

func (o *Output) printVersion(v VersionInfo) {
	fmt.Fprintf(o.w, "halitebot %s\n", v.Version)
	for _, s := range v.Strategies {
		fmt.Fprintf(o.w, "  %s\n", s)
	}
}

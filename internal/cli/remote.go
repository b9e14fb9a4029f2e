package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/halitebot/internal/api/request"
	"github.com/mcoot/halitebot/internal/api/response"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/engine"
	"github.com/mcoot/halitebot/internal/services/simulator"
)

const remoteSeat = 1

func newRemoteCmd() *cobra.Command {
	var (
		width, height int
		maxTurns      int
		opponent      string
	)

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Play a local match with seat 1 driven by a running server",
		Long: `Generate a local two-player world, create a game on --server for seat 1
and play it turn by turn through the move API against a local --opponent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.IsValidStrategy(opponent) {
				return fmt.Errorf("%w: %q", model.ErrUnknownStrategy, opponent)
			}
			logger, closeLog, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			result, err := playRemote(cmd.Context(), NewClient(cfg.ServerURL), remoteParams{
				width:    width,
				height:   height,
				maxTurns: maxTurns,
				opponent: opponent,
			}, logger)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(*result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 20, "Board width")
	cmd.Flags().IntVar(&height, "height", 20, "Board height")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Turn limit, 0 for 10*sqrt(width*height)")
	cmd.Flags().StringVar(&opponent, "opponent", model.StrategyGreedy, "Local opponent strategy")

	return cmd
}

type remoteParams struct {
	width, height int
	maxTurns      int
	opponent      string
}

func playRemote(ctx context.Context, client *Client, p remoteParams, logger *slog.Logger) (*RemoteResult, error) {
	rnd := cfg.Random()
	world, err := simulator.Generate(p.width, p.height, 2, rnd)
	if err != nil {
		return nil, err
	}
	board := world.Board()

	opponentView, err := world.View(2)
	if err != nil {
		return nil, err
	}
	local, err := engine.ForGame(p.opponent, opponentView, rnd, nil, logger.With(slog.String("component", "engine")))
	if err != nil {
		return nil, err
	}

	create := request.CreateGameRequest{
		PlayerTag:  remoteSeat,
		Production: board.ProductionGrid(),
		Strategy:   cfg.Strategy,
		Seed:       cfg.SeedPtr(),
	}
	var game response.Game
	if err := client.Post(ctx, "/api/v1/games", create, &game); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	logger.Info("remote game created", slog.String("game_id", game.ID))
	defer func() {
		if err := client.Delete(context.WithoutCancel(ctx), "/api/v1/games/"+game.ID); err != nil {
			logger.Warn("ending remote game", slog.String("error", err.Error()))
		}
	}()

	maxTurns := p.maxTurns
	if maxTurns <= 0 {
		maxTurns = simulator.DefaultMaxTurns(p.width, p.height)
	}

	for world.Turn() < maxTurns && len(world.Players()) > 1 {
		owners, strengths := world.Grids()
		var turn response.Turn
		err := client.Post(ctx, "/api/v1/games/"+game.ID+"/turns",
			request.TurnRequest{Owners: owners, Strengths: strengths}, &turn)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", world.Turn()+1, err)
		}
		remoteOrders, err := decodeOrders(turn.Orders)
		if err != nil {
			return nil, err
		}

		view, err := world.View(2)
		if err != nil {
			return nil, err
		}
		localOrders, err := local.NextTurn(view)
		if err != nil {
			return nil, err
		}

		if err := world.Step(map[int][]model.Order{remoteSeat: remoteOrders, 2: localOrders}); err != nil {
			return nil, err
		}
	}

	return &RemoteResult{
		GameID:    game.ID,
		Strategy:  game.Strategy,
		Turns:     world.Turn(),
		Territory: world.Stats(remoteSeat).Territory,
		Cells:     board.Size(),
	}, nil
}

func decodeOrders(in []response.Order) ([]model.Order, error) {
	out := make([]model.Order, len(in))
	for i, o := range in {
		d, ok := model.ParseDirection(o.Direction)
		if !ok {
			return nil, fmt.Errorf("server sent direction %q", o.Direction)
		}
		out[i] = model.Order{X: o.X, Y: o.Y, Direction: d}
	}
	return out, nil
}

package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/halitebot/internal/dependencies/clock"
	"github.com/mcoot/halitebot/internal/model"
)

// Init is everything the game server sends before the first turn
type Init struct {
	PlayerTag int
	Board     *model.Board
	// Initial is the map as dealt, before any turn is played
	Initial *model.GameState
}

// Decider produces one turn's orders
type Decider interface {
	NextTurn(state *model.GameState) ([]model.Order, error)
}

// DeciderFactory builds the per-game decider once the opening map is known
type DeciderFactory func(init *Init) (Decider, error)

// Conn is one bot's end of a game server connection
type Conn struct {
	reader *bufio.Reader
	writer *bufio.Writer
	name   string
	clock  clock.Clock
	logger *slog.Logger
}

// NewConn wraps the server's input and output streams. logger must not
// write to w.
func NewConn(r io.Reader, w io.Writer, name string, clk clock.Clock, logger *slog.Logger) *Conn {
	return &Conn{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		name:   name,
		clock:  clk,
		logger: logger.With(slog.String("component", "protocol")),
	}
}

// readLine returns the next line without its terminator or carriage
// returns. io.EOF is returned only when no data was read.
func (c *Conn) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimRight(line, " "), nil
}

func (c *Conn) writeLine(line string) error {
	if _, err := c.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *Conn) mustReadLine(what string) (string, error) {
	line, err := c.readLine()
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: missing %s line", ErrMalformedFrame, what)
	}
	return line, err
}

// Handshake reads the four init lines and answers with the bot name
func (c *Conn) Handshake() (*Init, error) {
	tagLine, err := c.mustReadLine("player tag")
	if err != nil {
		return nil, err
	}
	tag, err := strconv.Atoi(strings.TrimSpace(tagLine))
	if err != nil || tag < 1 {
		return nil, fmt.Errorf("%w: player tag %q", ErrMalformedFrame, tagLine)
	}

	dimLine, err := c.mustReadLine("dimensions")
	if err != nil {
		return nil, err
	}
	width, height, err := ParseDimensions(dimLine)
	if err != nil {
		return nil, err
	}

	prodLine, err := c.mustReadLine("production")
	if err != nil {
		return nil, err
	}
	board, err := ParseProduction(prodLine, width, height)
	if err != nil {
		return nil, err
	}

	frameLine, err := c.mustReadLine("initial frame")
	if err != nil {
		return nil, err
	}
	initial, err := ParseFrame(frameLine, board, tag)
	if err != nil {
		return nil, err
	}

	if err := c.writeLine(c.name); err != nil {
		return nil, fmt.Errorf("writing name: %w", err)
	}

	c.logger.Info("handshake complete",
		slog.Int("player_tag", tag),
		slog.Int("width", width),
		slog.Int("height", height),
	)
	return &Init{PlayerTag: tag, Board: board, Initial: initial}, nil
}

// Run plays a whole game: handshake, then one orders line per frame until
// the server closes the stream or sends an empty line.
func (c *Conn) Run(ctx context.Context, build DeciderFactory) error {
	init, err := c.Handshake()
	if err != nil {
		return err
	}
	decider, err := build(init)
	if err != nil {
		return err
	}

	turn := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.readLine()
		if errors.Is(err, io.EOF) || (err == nil && line == "") {
			c.logger.Info("game over", slog.Int("turns", turn))
			return nil
		}
		if err != nil {
			return err
		}

		turn++
		start := c.clock.Now()

		state, err := ParseFrame(line, init.Board, init.PlayerTag)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		orders, err := decider.NextTurn(state)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		if err := c.writeLine(EncodeOrders(orders, init.Board.Height())); err != nil {
			return fmt.Errorf("writing orders: %w", err)
		}

		c.logger.Debug("turn sent",
			slog.Int("turn", turn),
			slog.Int("orders", len(orders)),
			slog.Duration("elapsed", c.clock.Since(start)),
		)
	}
}

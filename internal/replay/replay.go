// Package replay exports simulated matches as parquet, one row per player
// per turn.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/mcoot/halitebot/internal/services/simulator"
)

// SchemaVersion is stored in the file's key/value metadata
const SchemaVersion = "halitebot_turn_v1"

// TurnRow is one player's standing after one turn
type TurnRow struct {
	MatchID    string `parquet:"match_id,dict"`
	Seed       int64  `parquet:"seed"`
	Turn       int32  `parquet:"turn"`
	Player     int32  `parquet:"player"`
	Strategy   string `parquet:"strategy,dict"`
	Territory  int32  `parquet:"territory"`
	Strength   int32  `parquet:"strength"`
	Production int32  `parquet:"production"`
	Orders     int32  `parquet:"orders"`
	ElapsedUS  int64  `parquet:"elapsed_us"`
	// Winner is repeated on every row of a match; 0 means a tie
	Winner int32 `parquet:"winner"`
}

// Rows flattens match results into rows, in result then history order
func Rows(results []*simulator.Result) []TurnRow {
	var rows []TurnRow
	for _, res := range results {
		for _, h := range res.History {
			rows = append(rows, TurnRow{
				MatchID:    res.MatchID,
				Seed:       int64(res.Seed),
				Turn:       int32(h.Turn),
				Player:     int32(h.Player),
				Strategy:   h.Strategy,
				Territory:  int32(h.Territory),
				Strength:   int32(h.Strength),
				Production: int32(h.Production),
				Orders:     int32(h.Orders),
				ElapsedUS:  h.Elapsed.Microseconds(),
				Winner:     int32(res.Winner),
			})
		}
	}
	return rows
}

// WriteFile writes rows to outPath through a temp file and rename
func WriteFile(outPath string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadFile loads every row of a file written by WriteFile
func ReadFile(path string) ([]TurnRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if v, ok := pf.Lookup("schema"); !ok || v != SchemaVersion {
		return nil, fmt.Errorf("unexpected schema %q", v)
	}

	reader := parquet.NewGenericReader[TurnRow](pf)
	defer reader.Close()

	rows := make([]TurnRow, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return rows[:read], nil
}

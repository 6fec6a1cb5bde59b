package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board,flow"`
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

// CreateBoard rebuilds a board from the snapshot. With fresh set, committed
// cells come back idle and only the bomb position is kept.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	if len(rows) != GridSize {
		return nil, fmt.Errorf("snapshot has %d rows, want %d", len(rows), GridSize)
	}

	board := createBoard(Pos{Row: -1, Col: -1})
	numBombs := 0

	for row, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != GridSize {
			return nil, fmt.Errorf("snapshot row %d has %d cells, want %d", row, len(line), GridSize)
		}

		for col, c := range line {
			cell := board.CellAt(Pos{Row: row, Col: col})
			if !cell.deserialize(string(c), fresh) {
				return nil, fmt.Errorf("snapshot cell %v: unknown marker %q", cell.pos, c)
			}

			if cell.isBomb {
				board.bomb = cell.pos
				numBombs++
			}
			if cell.IsPermanent() {
				board.numPermanent++
			}
			if cell.state == PermanentBomb {
				board.exploded = true
			}
		}
	}

	if numBombs != 1 {
		return nil, fmt.Errorf("snapshot has %d bombs, want exactly 1", numBombs)
	}

	return board, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

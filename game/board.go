package game

import (
	"math/rand"
)

// Board tracks the lifecycle of every cell and the hidden bomb.
type Board struct {
	cells [GridSize][GridSize]Cell

	bomb         Pos
	exploded     bool
	numPermanent int
}

// Hover is what the animation should show for the hovered cell.
type Hover struct {
	Kind  HoverKind
	Color Color
}

func (board *Board) CellAt(pos Pos) *Cell {
	if !pos.Valid() {
		return nil
	}
	return &board.cells[pos.Row][pos.Col]
}

// Cells lists every cell in row-major order.
func (board *Board) Cells() []*Cell {
	cells := make([]*Cell, 0, NumCells)
	for row := range board.cells {
		for col := range board.cells[row] {
			cells = append(cells, &board.cells[row][col])
		}
	}
	return cells
}

func (board *Board) Bomb() Pos {
	return board.bomb
}

func (board *Board) IsExploded() bool {
	return board.exploded
}

func (board *Board) NumPermanent() int {
	return board.numPermanent
}

// Hover reports how the hovered cell should be drawn for the given blink phase.
func (board *Board) Hover(pos Pos, phase bool) Hover {
	cell := board.CellAt(pos)
	if board.exploded || cell == nil {
		return Hover{Kind: HoverNone}
	}

	if cell.IsPermanent() {
		return Hover{Kind: HoverFixed, Color: cell.Color()}
	}

	if phase {
		return Hover{Kind: HoverBlink, Color: BlinkBlue}
	}
	return Hover{Kind: HoverBlink, Color: BlinkGreen}
}

// Commit makes the cell at pos permanent. Committing the bomb sets the board
// exploded, after which nothing changes any more.
func (board *Board) Commit(pos Pos) CommitResult {
	cell := board.CellAt(pos)
	if cell == nil {
		return Ignored
	}
	if cell.IsPermanent() {
		return AlreadyPermanent
	}
	if board.exploded {
		return Ignored
	}

	result := cell.commit()
	board.numPermanent++

	if result == Detonated {
		board.exploded = true
	}
	return result
}

// ColorAt is the settled color of a cell, ignoring any hover animation.
func (board *Board) ColorAt(pos Pos) Color {
	cell := board.CellAt(pos)
	if cell == nil {
		return Off
	}
	return cell.Color()
}

func (board *Board) snapshot(seed int64) *BoardSnapshot {
	return &BoardSnapshot{
		Seed:            seed,
		SerializedBoard: board.serialize(),
	}
}

func (board *Board) serialize() string {
	out := make([]byte, 0, NumCells+GridSize)
	for row := range board.cells {
		if row > 0 {
			out = append(out, '\n')
		}
		for col := range board.cells[row] {
			out = append(out, board.cells[row][col].serialize()...)
		}
	}
	return string(out)
}

func createBoard(bomb Pos) *Board {
	board := &Board{bomb: bomb}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := &board.cells[row][col]
			cell.board = board
			cell.pos = Pos{Row: row, Col: col}
			cell.state = Idle
		}
	}

	if cell := board.CellAt(bomb); cell != nil {
		cell.isBomb = true
	}

	return board
}

// chooseBomb picks the bomb uniformly over the grid.
func chooseBomb(rng *rand.Rand) Pos {
	row := rng.Intn(GridSize)
	col := rng.Intn(GridSize)
	return Pos{Row: row, Col: col}
}

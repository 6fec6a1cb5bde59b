package game

import (
	"fmt"
)

// Pos addresses a cell by row and column.
type Pos struct {
	Row, Col int
}

func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.Row, pos.Col)
}

func (pos Pos) Valid() bool {
	return pos.Row >= 0 && pos.Row < GridSize && pos.Col >= 0 && pos.Col < GridSize
}

type Cell struct {
	board *Board

	pos    Pos
	isBomb bool

	state CellState
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell%v", cell.pos)
}

func (cell *Cell) serialize() string {
	switch cell.state {
	case PermanentBomb:
		return "*"
	case PermanentSafe:
		return "."
	default:
		if cell.isBomb {
			return "O"
		}
		return "#"
	}
}

func (cell *Cell) deserialize(c string, fresh bool) bool {
	switch c {
	case "*", "O":
		cell.isBomb = true
		if c == "*" && !fresh {
			cell.state = PermanentBomb
		}
	case ".":
		if !fresh {
			cell.state = PermanentSafe
		}
	case "#":
	default:
		return false
	}

	return true
}

func (cell *Cell) Pos() Pos {
	return cell.pos
}

func (cell *Cell) State() CellState {
	return cell.state
}

func (cell *Cell) IsPermanent() bool {
	return cell.state != Idle
}

// Color returns the fixed color of a permanent cell, or Off for an idle one.
// Blink colors are owned by the hover animation, not the cell.
func (cell *Cell) Color() Color {
	if cell.board != nil && cell.board.exploded {
		return ExplodedRed
	}
	if cell.IsPermanent() {
		return SafeGreen
	}
	return Off
}

// commit makes the cell permanent. The cell renders green first, even the bomb;
// the explosion override is the board's job.
func (cell *Cell) commit() CommitResult {
	if cell.IsPermanent() {
		return AlreadyPermanent
	}

	if cell.isBomb {
		cell.state = PermanentBomb
		return Detonated
	}

	cell.state = PermanentSafe
	return Safe
}

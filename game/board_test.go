package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/ledsweep/util/collections"
)

func countBombs(board *Board) int {
	count := 0
	for _, cell := range board.Cells() {
		if cell.isBomb {
			count++
		}
	}
	return count
}

func TestCreateBoardHasOneBomb(t *testing.T) {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			bomb := Pos{Row: row, Col: col}
			board := createBoard(bomb)

			assert.Equal(t, 1, countBombs(board))
			assert.Equal(t, bomb, board.Bomb())
			assert.True(t, board.CellAt(bomb).isBomb)
			assert.False(t, board.IsExploded())
			assert.Equal(t, 0, board.NumPermanent())
		}
	}
}

func TestCellsAreRowMajor(t *testing.T) {
	cells := createBoard(Pos{}).Cells()
	require.Len(t, cells, NumCells)
	for i, cell := range cells {
		assert.Equal(t, Pos{Row: i / GridSize, Col: i % GridSize}, cell.Pos())
	}
}

func TestCellAtOffGrid(t *testing.T) {
	board := createBoard(Pos{})
	assert.Nil(t, board.CellAt(Pos{Row: -1, Col: 0}))
	assert.Nil(t, board.CellAt(Pos{Row: 0, Col: GridSize}))
	assert.Equal(t, Ignored, board.Commit(Pos{Row: GridSize, Col: 0}))
	assert.Equal(t, HoverNone, board.Hover(Pos{Row: 0, Col: -1}, true).Kind)
}

func TestCommitSafe(t *testing.T) {
	board := createBoard(Pos{Row: 0, Col: 0})
	pos := Pos{Row: 3, Col: 1}

	assert.Equal(t, Safe, board.Commit(pos))
	assert.Equal(t, PermanentSafe, board.CellAt(pos).State())
	assert.True(t, board.CellAt(pos).IsPermanent())
	assert.Equal(t, SafeGreen, board.ColorAt(pos))
	assert.False(t, board.IsExploded())
	assert.Equal(t, 1, board.NumPermanent())

	assert.Equal(t, Off, board.ColorAt(Pos{Row: 0, Col: 0}))
}

func TestCommitBomb(t *testing.T) {
	bomb := Pos{Row: 2, Col: 2}
	board := createBoard(bomb)
	board.Commit(Pos{Row: 0, Col: 0})

	assert.Equal(t, Detonated, board.Commit(bomb))
	assert.True(t, board.IsExploded())
	assert.Equal(t, PermanentBomb, board.CellAt(bomb).State())

	for _, cell := range board.Cells() {
		assert.Equal(t, ExplodedRed, board.ColorAt(cell.Pos()), "cell %v", cell.Pos())
	}
}

func TestRecommitIsNoop(t *testing.T) {
	bomb := Pos{Row: 4, Col: 4}
	board := createBoard(bomb)
	safe := Pos{Row: 1, Col: 1}

	require.Equal(t, Safe, board.Commit(safe))
	assert.Equal(t, AlreadyPermanent, board.Commit(safe))
	assert.Equal(t, 1, board.NumPermanent())
	assert.False(t, board.IsExploded())

	require.Equal(t, Detonated, board.Commit(bomb))
	assert.Equal(t, AlreadyPermanent, board.Commit(bomb))
	assert.Equal(t, AlreadyPermanent, board.Commit(safe))
	assert.Equal(t, 2, board.NumPermanent())
}

func TestCommitAfterExplosionChangesNothing(t *testing.T) {
	bomb := Pos{Row: 0, Col: 3}
	board := createBoard(bomb)
	require.Equal(t, Detonated, board.Commit(bomb))

	for _, cell := range board.Cells() {
		if cell.Pos() == bomb {
			continue
		}
		assert.Equal(t, Ignored, board.Commit(cell.Pos()))
		assert.Equal(t, Idle, cell.State())
		assert.Equal(t, ExplodedRed, board.ColorAt(cell.Pos()))
	}
	assert.Equal(t, 1, board.NumPermanent())
}

func TestHover(t *testing.T) {
	board := createBoard(Pos{Row: 4, Col: 4})
	pos := Pos{Row: 1, Col: 2}

	assert.Equal(t, Hover{Kind: HoverBlink, Color: BlinkBlue}, board.Hover(pos, true))
	assert.Equal(t, Hover{Kind: HoverBlink, Color: BlinkGreen}, board.Hover(pos, false))

	board.Commit(pos)
	assert.Equal(t, Hover{Kind: HoverFixed, Color: SafeGreen}, board.Hover(pos, true))
	assert.Equal(t, Hover{Kind: HoverFixed, Color: SafeGreen}, board.Hover(pos, false))

	board.Commit(Pos{Row: 4, Col: 4})
	assert.Equal(t, HoverNone, board.Hover(pos, true).Kind)
	assert.Equal(t, HoverNone, board.Hover(Pos{Row: 0, Col: 0}, false).Kind)
}

func TestPermanentIsMonotonic(t *testing.T) {
	bomb := Pos{Row: 2, Col: 3}
	board := createBoard(bomb)
	rng := rand.New(rand.NewSource(7))
	permanent := make(collections.Set[Pos])

	for i := 0; i < 200; i++ {
		pos := Pos{Row: rng.Intn(GridSize), Col: rng.Intn(GridSize)}
		result := board.Commit(pos)
		if result == Safe || result == Detonated {
			permanent.Add(pos)
		}

		for _, cell := range board.Cells() {
			if permanent.Contains(cell.Pos()) {
				require.True(t, cell.IsPermanent(), "cell %v reverted", cell.Pos())
			} else {
				require.False(t, cell.IsPermanent(), "cell %v was never committed", cell.Pos())
			}
		}
	}

	assert.Equal(t, len(permanent), board.NumPermanent())
	assert.Equal(t, 1, countBombs(board))
	assert.Equal(t, bomb, board.Bomb())
}

func TestChooseBombCoversGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(collections.Set[Pos])
	for i := 0; i < 2000; i++ {
		pos := chooseBomb(rng)
		require.True(t, pos.Valid())
		seen.Add(pos)
	}
	assert.Len(t, seen, NumCells)
}

func TestChooseBombIsSeeded(t *testing.T) {
	a := chooseBomb(rand.New(rand.NewSource(1234)))
	b := chooseBomb(rand.New(rand.NewSource(1234)))
	assert.Equal(t, a, b)
}

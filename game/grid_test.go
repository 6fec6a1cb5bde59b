package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLEDIndex(t *testing.T) {
	assert.True(t, DefaultLEDIndex.isPermutation())
	assert.Equal(t, 24, DefaultLEDIndex.At(Pos{Row: 0, Col: 0}))
	assert.Equal(t, 12, DefaultLEDIndex.At(Pos{Row: 2, Col: 2}))
	assert.Equal(t, 0, DefaultLEDIndex.At(Pos{Row: 4, Col: 4}))
	assert.Equal(t, -1, DefaultLEDIndex.At(Pos{Row: 5, Col: 0}))
}

func TestLEDIndexPermutation(t *testing.T) {
	index := DefaultLEDIndex
	index[0][0] = index[0][1]
	assert.False(t, index.isPermutation())

	index = DefaultLEDIndex
	index[3][3] = NumCells
	assert.False(t, index.isPermutation())

	index = DefaultLEDIndex
	index[3][3] = -1
	assert.False(t, index.isPermutation())
}

func TestGridSetUsesLEDIndex(t *testing.T) {
	display := &fakeDisplay{}
	grid := NewGrid(DefaultLEDIndex, display)

	grid.Set(Pos{Row: 0, Col: 0}, SafeGreen)
	grid.Set(Pos{Row: 3, Col: 1}, BlinkBlue)
	grid.Set(Pos{Row: 9, Col: 9}, ExplodedRed)

	assert.Equal(t, SafeGreen, grid.Pixel(24))
	assert.Equal(t, BlinkBlue, grid.Pixel(6))
	assert.Equal(t, SafeGreen, grid.At(Pos{Row: 0, Col: 0}))
	assert.Equal(t, Off, grid.At(Pos{Row: 9, Col: 9}))
	assert.Empty(t, display.flushes)
}

func TestGridFlush(t *testing.T) {
	display := &fakeDisplay{}
	grid := NewGrid(DefaultLEDIndex, display)

	grid.Set(Pos{Row: 2, Col: 2}, BlinkGreen)
	grid.Flush()

	require.Len(t, display.flushes, 1)
	frame := display.lastFlush()
	for led, color := range frame {
		if led == 12 {
			assert.Equal(t, BlinkGreen, color)
		} else {
			assert.Equal(t, Off, color)
		}
	}
}

func TestGridFillAndClear(t *testing.T) {
	display := &fakeDisplay{}
	grid := NewGrid(DefaultLEDIndex, display)

	grid.Fill(ExplodedRed)
	grid.Flush()
	assert.Equal(t, 1, display.allRedFlushes())

	grid.Clear()
	assert.Equal(t, 1, display.clears)
	for led := 0; led < NumCells; led++ {
		assert.Equal(t, Off, grid.Pixel(led))
	}
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#ff0000", ExplodedRed.String())
	assert.Equal(t, uint32(0x000500), SafeGreen.Uint32())
	assert.True(t, Off.IsOff())
	assert.False(t, BlinkBlue.IsOff())
}

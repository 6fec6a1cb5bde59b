package game

// LEDIndex maps [row][col] to the physical LED index on the strip.
type LEDIndex [GridSize][GridSize]int

func (index LEDIndex) At(pos Pos) int {
	if !pos.Valid() {
		return -1
	}
	return index[pos.Row][pos.Col]
}

// isPermutation reports whether every LED 0..NumCells-1 appears exactly once.
func (index LEDIndex) isPermutation() bool {
	var seen [NumCells]bool
	for _, row := range index {
		for _, led := range row {
			if led < 0 || led >= NumCells || seen[led] {
				return false
			}
			seen[led] = true
		}
	}
	return true
}

// Grid is the pixel buffer in front of the Display. It holds no game logic.
type Grid struct {
	index   LEDIndex
	pixels  [NumCells]Color
	display Display
}

func NewGrid(index LEDIndex, display Display) *Grid {
	return &Grid{
		index:   index,
		display: display,
	}
}

func (grid *Grid) Set(pos Pos, color Color) {
	led := grid.index.At(pos)
	if led < 0 {
		return
	}
	grid.pixels[led] = color
}

// At returns the buffered color of the cell at pos.
func (grid *Grid) At(pos Pos) Color {
	led := grid.index.At(pos)
	if led < 0 {
		return Off
	}
	return grid.pixels[led]
}

func (grid *Grid) Pixel(led int) Color {
	return grid.pixels[led]
}

func (grid *Grid) Fill(color Color) {
	for i := range grid.pixels {
		grid.pixels[i] = color
	}
}

func (grid *Grid) Clear() {
	grid.Fill(Off)
	grid.display.Clear()
}

func (grid *Grid) Flush() {
	for led, color := range grid.pixels {
		grid.display.SetPixel(led, color)
	}
	grid.display.Flush()
}

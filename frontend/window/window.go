package window

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/they4kman/ledsweep/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// ErrClosed is returned from Run once the window has been closed.
var ErrClosed = errors.New("window closed")

const (
	cellWidth    = 64
	ledRadius    = 24
	headerHeight = 40

	flushSettle     = 100 * time.Microsecond
	trailingSilence = 50 * time.Millisecond
)

// Frontend draws the LED matrix in a desktop window. The mouse position is
// the joystick and the left mouse button is the push-button.
//
// It must be created and used inside pixelgl.Run.
type Frontend struct {
	win       *pixelgl.Window
	atlas     *text.Atlas
	axisRange uint16
	positions [game.NumCells]game.Pos

	lock     sync.Mutex
	pending  [game.NumCells]game.Color
	shown    [game.NumCells]game.Color
	status   string
	vrx, vry uint16
}

func New(config game.GameConfig) (*Frontend, error) {
	size := float64(game.GridSize * cellWidth)
	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  "ledsweep",
		Bounds: pixel.R(0, 0, size, size+headerHeight),
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open window: %w", err)
	}

	f := &Frontend{
		win:       win,
		atlas:     text.NewAtlas(basicfont.Face7x13, text.ASCII),
		axisRange: config.AxisRange,
	}
	f.vrx, f.vry = game.NewMapper(config.AxisRange).Center(game.Pos{Row: game.GridSize / 2, Col: game.GridSize / 2})

	for row := 0; row < game.GridSize; row++ {
		for col := 0; col < game.GridSize; col++ {
			pos := game.Pos{Row: row, Col: col}
			f.positions[config.LEDIndex.At(pos)] = pos
		}
	}

	f.draw()
	return f, nil
}

// Run watches for the window closing until ctx is done.
func (f *Frontend) Run(ctx context.Context) error {
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if f.win.Closed() {
				return ErrClosed
			}
		}
	}
}

func (f *Frontend) Close() {
	f.win.Destroy()
}

// axisValue scales a coordinate within length to the sensor range.
func (f *Frontend) axisValue(v, length float64) uint16 {
	if v < 0 {
		v = 0
	}
	value := int(v / length * float64(f.axisRange))
	if value >= int(f.axisRange) {
		value = int(f.axisRange) - 1
	}
	return uint16(value)
}

// [Frontend] implements [game.Joystick]. Outside the board the stick keeps
// its last position.
func (f *Frontend) ReadAxes() (uint16, uint16) {
	f.win.UpdateInput()

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.win.MouseInsideWindow() {
		mouse := f.win.MousePosition()
		size := float64(game.GridSize * cellWidth)
		if mouse.Y <= size {
			// the bottom row is the low end of the X axis
			f.vrx = f.axisValue(mouse.Y, size)
			f.vry = f.axisValue(mouse.X, size)
		}
	}
	return f.vrx, f.vry
}

// [Frontend] implements [game.Button]
func (f *Frontend) Level() bool {
	f.win.UpdateInput()
	return !f.win.Pressed(pixelgl.MouseButtonLeft)
}

// [Frontend] implements [game.Display]
func (f *Frontend) SetPixel(index int, color game.Color) {
	if index < 0 || index >= game.NumCells {
		return
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.pending[index] = color
}

func (f *Frontend) Clear() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.pending = [game.NumCells]game.Color{}
}

func (f *Frontend) Flush() {
	f.lock.Lock()
	f.shown = f.pending
	f.lock.Unlock()

	f.draw()
	time.Sleep(flushSettle)
}

// [Frontend] implements [game.Buzzer]; the tone is shown, not heard.
func (f *Frontend) PlayTone(freqHz uint32, duration time.Duration) {
	f.setStatus(fmt.Sprintf("tone %d Hz", freqHz))
	time.Sleep(duration)
	f.setStatus("")
	time.Sleep(trailingSilence)
}

// [Frontend] implements [game.NoiseSource]
func (f *Frontend) Noise() uint16 {
	return uint16(time.Now().UnixNano() & 0xfff)
}

func (f *Frontend) setStatus(status string) {
	f.lock.Lock()
	f.status = status
	f.lock.Unlock()
	f.draw()
}

func level(v uint8) float64 {
	if v == 0 {
		return 0
	}
	return 0.3 + 0.7*float64(v)/255
}

func (f *Frontend) draw() {
	f.lock.Lock()
	shown := f.shown
	status := f.status
	f.lock.Unlock()

	f.win.Clear(colornames.Black)

	imd := imdraw.New(nil)
	for led, color := range shown {
		pos := f.positions[led]
		center := pixel.V(
			float64(pos.Col*cellWidth+cellWidth/2),
			float64((game.GridSize-1-pos.Row)*cellWidth+cellWidth/2),
		)

		if color.IsOff() {
			imd.Color = colornames.Dimgray
			imd.Push(center)
			imd.Circle(ledRadius, 2)
			continue
		}

		imd.Color = pixel.RGB(level(color.R), level(color.G), level(color.B))
		imd.Push(center)
		imd.Circle(ledRadius, 0) // 0 = filled
	}
	imd.Draw(f.win)

	header := text.New(pixel.V(12, float64(game.GridSize*cellWidth)+14), f.atlas)
	header.Color = colornames.Gainsboro
	fmt.Fprintf(header, "ledsweep   %s", status)
	header.Draw(f.win, pixel.IM)

	f.win.Update()
}

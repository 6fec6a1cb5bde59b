package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/they4kman/ledsweep/director"
	"github.com/they4kman/ledsweep/game"
)

// ErrQuit is returned from Run when the player asks to leave.
var ErrQuit = errors.New("quit")

const (
	cellWidth  = 6
	cellHeight = 3
	marginLeft = 2
	marginTop  = 2

	flushSettle     = 100 * time.Microsecond
	trailingSilence = 50 * time.Millisecond
)

// Frontend simulates the LED matrix, joystick, button and buzzer in a
// terminal. The arrow keys move the stick and space presses the button.
type Frontend struct {
	*director.Hand

	screen    tcell.Screen
	positions [game.NumCells]game.Pos
	hold      time.Duration
	keyboard  bool

	lock    sync.Mutex
	pending [game.NumCells]game.Color
	shown   [game.NumCells]game.Color
	status  string
}

// New opens the terminal. With keyboard false the keys only quit, and the
// hand is left to a director.
func New(config game.GameConfig, hand *director.Hand, keyboard bool) (*Frontend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("unable to open terminal: %w", err)
	}
	return NewWithScreen(screen, config, hand, keyboard)
}

func NewWithScreen(screen tcell.Screen, config game.GameConfig, hand *director.Hand, keyboard bool) (*Frontend, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("unable to init terminal: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	f := &Frontend{
		Hand:     hand,
		screen:   screen,
		hold:     director.PressHold(config),
		keyboard: keyboard,
	}
	for row := 0; row < game.GridSize; row++ {
		for col := 0; col < game.GridSize; col++ {
			pos := game.Pos{Row: row, Col: col}
			f.positions[config.LEDIndex.At(pos)] = pos
		}
	}

	f.draw()
	return f, nil
}

func (f *Frontend) Close() {
	f.screen.Fini()
}

// Run pumps terminal events until ctx is done or the player quits.
func (f *Frontend) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		f.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		switch ev := f.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			f.screen.Sync()
			f.draw()
		case *tcell.EventKey:
			if f.handleKey(ev) {
				return ErrQuit
			}
		}
	}
}

// handleKey returns true when the key asks to quit.
func (f *Frontend) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	}

	if !f.keyboard {
		return false
	}

	switch ev.Key() {
	case tcell.KeyUp:
		f.Move(-1, 0)
	case tcell.KeyDown:
		f.Move(1, 0)
	case tcell.KeyLeft:
		f.Move(0, -1)
	case tcell.KeyRight:
		f.Move(0, 1)
	case tcell.KeyEnter:
		f.Press(f.hold)
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			f.Press(f.hold)
		}
	}

	f.draw()
	return false
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

// Shown returns the color on screen for the LED at index.
func (f *Frontend) Shown(index int) game.Color {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.shown[index]
}

// [Frontend] implements [game.Buzzer]
func (f *Frontend) PlayTone(freqHz uint32, duration time.Duration) {
	f.setStatus(fmt.Sprintf("♪ %d Hz for %v", freqHz, duration))
	f.screen.Beep()

	time.Sleep(duration)
	f.setStatus("")
	time.Sleep(trailingSilence)
}

// [Frontend] implements [game.NoiseSource]; the clock's low bits stand in
// for a floating ADC pin.
func (f *Frontend) Noise() uint16 {
	return uint16(time.Now().UnixNano() & 0xfff)
}

func (f *Frontend) setStatus(status string) {
	f.lock.Lock()
	f.status = status
	f.lock.Unlock()
	f.draw()
}

// visible lifts dim LED levels so they can be told apart on a terminal.
func visible(level uint8) int32 {
	if level == 0 {
		return 0
	}
	return 80 + int32(level)*175/255
}

func (f *Frontend) draw() {
	f.lock.Lock()
	shown := f.shown
	status := f.status
	f.lock.Unlock()

	screen := f.screen
	screen.Clear()

	textStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	drawText(screen, marginLeft, 0, "ledsweep", textStyle.Bold(true))

	aimed := f.Aimed()
	for led, color := range shown {
		pos := f.positions[led]
		x := marginLeft + pos.Col*cellWidth
		y := marginTop + pos.Row*cellHeight

		bg := tcell.NewRGBColor(visible(color.R), visible(color.G), visible(color.B))
		if color.IsOff() {
			bg = tcell.ColorBlack
		}
		style := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite)

		for dy := 0; dy < cellHeight-1; dy++ {
			for dx := 0; dx < cellWidth-1; dx++ {
				screen.SetContent(x+dx, y+dy, ' ', nil, style)
			}
		}
		if f.keyboard && pos == aimed {
			screen.SetContent(x, y, '[', nil, style)
			screen.SetContent(x+cellWidth-2, y, ']', nil, style)
		}
	}

	bottom := marginTop + game.GridSize*cellHeight
	drawText(screen, marginLeft, bottom, status, textStyle)
	help := "q quit"
	if f.keyboard {
		help = "arrows move · space commit · q quit"
	}
	drawText(screen, marginLeft, bottom+1, help, textStyle.Dim(true))

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

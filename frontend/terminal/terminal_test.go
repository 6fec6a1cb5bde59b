package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/ledsweep/director"
	"github.com/they4kman/ledsweep/game"
)

func newTestFrontend(t *testing.T, keyboard bool) (*Frontend, tcell.SimulationScreen) {
	config := game.NewGameConfig()
	screen := tcell.NewSimulationScreen("")
	hand := director.NewHand(game.NewMapper(config.AxisRange), nil)

	f, err := NewWithScreen(screen, config, hand, keyboard)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f, screen
}

func runFrontend(ctx context.Context, f *Frontend) <-chan error {
	errs := make(chan error, 1)
	go func() {
		errs <- f.Run(ctx)
	}()
	return errs
}

func waitErr(t *testing.T, errs <-chan error) error {
	select {
	case err := <-errs:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestArrowsMoveTheHand(t *testing.T) {
	f, screen := newTestFrontend(t, true)
	errs := runFrontend(context.Background(), f)

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	assert.Eventually(t, func() bool {
		return f.Aimed() == game.Pos{Row: 0, Col: 1}
	}, time.Second, time.Millisecond)

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	assert.Eventually(t, func() bool {
		return !f.Level()
	}, time.Second, time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.ErrorIs(t, waitErr(t, errs), ErrQuit)
}

func TestKeysOnlyQuitWithoutKeyboard(t *testing.T) {
	f, screen := newTestFrontend(t, false)
	errs := runFrontend(context.Background(), f)

	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	assert.ErrorIs(t, waitErr(t, errs), ErrQuit)
	assert.Equal(t, game.Pos{Row: 2, Col: 2}, f.Aimed())
	assert.True(t, f.Level())
}

func TestRunStopsWithContext(t *testing.T) {
	f, _ := newTestFrontend(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	errs := runFrontend(ctx, f)

	cancel()
	assert.ErrorIs(t, waitErr(t, errs), context.Canceled)
}

func TestFlushShowsPendingPixels(t *testing.T) {
	f, _ := newTestFrontend(t, true)

	f.SetPixel(24, game.SafeGreen)
	f.SetPixel(game.NumCells, game.ExplodedRed)
	assert.Equal(t, game.Off, f.Shown(24))

	f.Flush()
	assert.Equal(t, game.SafeGreen, f.Shown(24))

	f.Clear()
	assert.Equal(t, game.SafeGreen, f.Shown(24))
	f.Flush()
	assert.Equal(t, game.Off, f.Shown(24))
}

func TestDrawMarksAimedCell(t *testing.T) {
	f, screen := newTestFrontend(t, true)
	f.Hand.Aim(game.Pos{Row: 1, Col: 3})
	f.draw()

	x := marginLeft + 3*cellWidth
	y := marginTop + 1*cellHeight
	r, _, _, _ := screen.GetContent(x, y)
	assert.Equal(t, '[', r)
	r, _, _, _ = screen.GetContent(x+cellWidth-2, y)
	assert.Equal(t, ']', r)
}

func TestPlayToneShowsStatus(t *testing.T) {
	f, _ := newTestFrontend(t, true)

	start := time.Now()
	f.PlayTone(150, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond+trailingSilence)
	assert.Empty(t, f.status)
}

func TestVisible(t *testing.T) {
	assert.Equal(t, int32(0), visible(0))
	assert.Equal(t, int32(80), visible(1))
	assert.Equal(t, int32(255), visible(255))
}

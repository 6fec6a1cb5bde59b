package game

import (
	"time"
)

type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Sleep(d time.Duration) {
	clock.now = clock.now.Add(d)
	clock.slept += d
}

type fakeJoystick struct {
	vrx, vry uint16
	reads    int
}

func (joystick *fakeJoystick) ReadAxes() (uint16, uint16) {
	joystick.reads++
	return joystick.vrx, joystick.vry
}

// aim points the joystick at the middle of pos.
func (joystick *fakeJoystick) aim(pos Pos) {
	joystick.vrx, joystick.vry = NewMapper(DefaultAxisRange).Center(pos)
}

// fakeButton is held low between pressedAt and releasedAt on the clock.
type fakeButton struct {
	clock      Clock
	pressedAt  time.Time
	releasedAt time.Time
	reads      int
}

func (button *fakeButton) Level() bool {
	button.reads++
	now := button.clock.Now()
	held := !now.Before(button.pressedAt) && now.Before(button.releasedAt)
	return !held
}

func (button *fakeButton) hold(d time.Duration) {
	button.pressedAt = button.clock.Now()
	button.releasedAt = button.pressedAt.Add(d)
}

func (button *fakeButton) release() {
	button.pressedAt = time.Time{}
	button.releasedAt = time.Time{}
}

type fakeDisplay struct {
	pixels  [NumCells]Color
	flushes [][NumCells]Color
	clears  int
}

func (display *fakeDisplay) SetPixel(index int, color Color) {
	display.pixels[index] = color
}

func (display *fakeDisplay) Clear() {
	display.pixels = [NumCells]Color{}
	display.clears++
}

func (display *fakeDisplay) Flush() {
	display.flushes = append(display.flushes, display.pixels)
}

func (display *fakeDisplay) lastFlush() [NumCells]Color {
	if len(display.flushes) == 0 {
		return [NumCells]Color{}
	}
	return display.flushes[len(display.flushes)-1]
}

// allRedFlushes counts flushed frames where every LED is red.
func (display *fakeDisplay) allRedFlushes() int {
	count := 0
	for _, frame := range display.flushes {
		allRed := true
		for _, color := range frame {
			if color != ExplodedRed {
				allRed = false
				break
			}
		}
		if allRed {
			count++
		}
	}
	return count
}

type playedTone struct {
	freqHz   uint32
	duration time.Duration
}

type fakeBuzzer struct {
	clock *fakeClock
	tones []playedTone
}

func (buzzer *fakeBuzzer) PlayTone(freqHz uint32, duration time.Duration) {
	buzzer.tones = append(buzzer.tones, playedTone{freqHz, duration})
	if buzzer.clock != nil {
		buzzer.clock.Sleep(duration)
	}
}

type fakeNoise struct {
	value uint16
	reads int
}

func (noise *fakeNoise) Noise() uint16 {
	noise.reads++
	return noise.value
}

type fakeDirector struct {
	board       *Board
	inits, ends int
	continuous  bool
}

func (director *fakeDirector) Init(board *Board) {
	director.board = board
	director.inits++
}

func (director *fakeDirector) Act() {}

func (director *fakeDirector) ActContinuously() {
	director.continuous = true
}

func (director *fakeDirector) End() {
	director.ends++
}

package game

import "time"

// Joystick samples both analog axes.
type Joystick interface {
	ReadAxes() (vrx, vry uint16)
}

// Button reports the raw pin level. It is active-low: false means pressed.
type Button interface {
	Level() bool
}

// Display is the LED driver boundary. Flush pushes the buffer to the LEDs and
// returns only once the driver's settle time has passed.
type Display interface {
	SetPixel(index int, color Color)
	Clear()
	Flush()
}

// Buzzer blocks until the tone and its trailing silence are done.
type Buzzer interface {
	PlayTone(freqHz uint32, duration time.Duration)
}

// NoiseSource is read once at startup to seed the bomb choice.
type NoiseSource interface {
	Noise() uint16
}

type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// RealClock sleeps for real.
var RealClock Clock = realClock{}

// Hardware bundles the drivers a Controller needs.
type Hardware struct {
	Joystick Joystick
	Button   Button
	Display  Display
	Buzzer   Buzzer
	Noise    NoiseSource
	Clock    Clock
}

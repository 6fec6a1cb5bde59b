//go:build tinygo

/*
 * ledsweep firmware for the Raspberry Pi Pico
 *
 * Joystick on GP26/GP27, push-button on GP5 (pulled up),
 * 5x5 WS2812 matrix on GP7, passive buzzer on GP21.
 */
package main

import (
	"context"
	"image/color"
	"machine"
	"time"

	"github.com/they4kman/ledsweep/game"
	"tinygo.org/x/drivers/ws2812"
)

/*
 * CONSTANTS
 */
const (
	PIN_BUTTON machine.Pin = machine.GP5
	PIN_LEDS   machine.Pin = machine.GP7
	PIN_BUZZER machine.Pin = machine.GP21

	// TinyGo scales ADC samples to 16 bits; the game expects 12
	ADC_SHIFT = 4

	FLUSH_SETTLE     = 100 * time.Microsecond
	TRAILING_SILENCE = 50 * time.Millisecond
)

var PIN_X machine.ADC = machine.ADC{Pin: machine.GP26}
var PIN_Y machine.ADC = machine.ADC{Pin: machine.GP27}

/*
 * Drivers
 */
type joystick struct{}

func (joystick) ReadAxes() (uint16, uint16) {
	vrx := PIN_X.Get() >> ADC_SHIFT
	time.Sleep(2 * time.Microsecond)
	vry := PIN_Y.Get() >> ADC_SHIFT
	return vrx, vry
}

type button struct{}

func (button) Level() bool {
	return PIN_BUTTON.Get()
}

type matrix struct {
	device ws2812.Device
	leds   [game.NumCells]color.RGBA
}

func (m *matrix) SetPixel(index int, c game.Color) {
	if index < 0 || index >= game.NumCells {
		return
	}
	m.leds[index] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (m *matrix) Clear() {
	for i := range m.leds {
		m.leds[i] = color.RGBA{}
	}
}

func (m *matrix) Flush() {
	m.device.WriteColors(m.leds[:])
	time.Sleep(FLUSH_SETTLE)
}

type buzzer struct{}

func (buzzer) PlayTone(frequency uint32, duration time.Duration) {
	// Half the cycle period in microseconds
	var period float32 = 1000000.0 / float32(frequency)
	period /= 2

	start := time.Now()
	for time.Since(start) < duration {
		PIN_BUZZER.High()
		time.Sleep(time.Duration(period) * time.Microsecond)
		PIN_BUZZER.Low()
		time.Sleep(time.Duration(period) * time.Microsecond)
	}

	time.Sleep(TRAILING_SILENCE)
}

// noise is the X channel sampled before its pin is configured, which floats
// enough to seed the bomb choice
type noise uint16

func (n noise) Noise() uint16 {
	return uint16(n)
}

/*
 *  Initialisation Functions
 */
func setup() (*matrix, noise, bool) {
	machine.InitADC()
	seed := noise(PIN_X.Get() >> ADC_SHIFT)

	if err := PIN_X.Configure(machine.ADCConfig{}); err != nil {
		return nil, 0, false
	}
	if err := PIN_Y.Configure(machine.ADCConfig{}); err != nil {
		return nil, 0, false
	}

	PIN_BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	PIN_BUZZER.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_BUZZER.Low()

	PIN_LEDS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &matrix{device: ws2812.New(PIN_LEDS)}, seed, true
}

func main() {
	leds, seed, ok := setup()
	if !ok {
		failLoop()
	}

	controller, err := game.NewController(game.NewGameConfig(), game.Hardware{
		Joystick: joystick{},
		Button:   button{},
		Display:  leds,
		Buzzer:   buzzer{},
		Noise:    seed,
	})
	if err != nil {
		game.Log.Error(err)
		failLoop()
	}

	controller.Run(context.Background())
}

func failLoop() {
	// Signal hardware failure on the Pico LED
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.Low()
		time.Sleep(time.Millisecond * 100)
		led.High()
		time.Sleep(time.Millisecond * 100)
	}
}

//go:build ws281x

package ws281x

import (
	"fmt"
	"os"
	"time"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
	"github.com/they4kman/ledsweep/game"
)

const (
	DefaultPin        = 18
	DefaultBrightness = 255

	flushSettle = 100 * time.Microsecond
)

// Display drives the 5x5 matrix from a Raspberry Pi through rpi_ws281x.
type Display struct {
	dev  *ws2811.WS2811
	leds []uint32
}

func Open(pin, brightness int) (*Display, error) {
	if os.Geteuid() != 0 {
		return nil, fmt.Errorf("ws281x needs root to access the PWM/DMA hardware")
	}

	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = pin
	opt.Channels[0].Brightness = brightness
	opt.Channels[0].LedCount = game.NumCells

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("unable to create LED device: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize LEDs: %w", err)
	}

	return &Display{dev: dev, leds: dev.Leds(0)}, nil
}

func (d *Display) Close() {
	d.Clear()
	d.Flush()
	d.dev.Fini()
}

// [Display] implements [game.Display]
func (d *Display) SetPixel(index int, color game.Color) {
	if index < 0 || index >= len(d.leds) {
		return
	}
	d.leds[index] = color.Uint32()
}

func (d *Display) Clear() {
	for i := range d.leds {
		d.leds[i] = 0
	}
}

func (d *Display) Flush() {
	if err := d.dev.Render(); err != nil {
		game.Log.WithError(err).Error("unable to render LEDs")
	}
	time.Sleep(flushSettle)
}

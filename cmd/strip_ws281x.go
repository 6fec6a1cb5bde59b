//go:build ws281x

package cmd

import (
	"github.com/they4kman/ledsweep/frontend/ws281x"
	"github.com/they4kman/ledsweep/game"
)

// Registered at variable initialization, ahead of the flag help built in init.
var _ = registerStrip("ws281x", func() (game.Display, func(), error) {
	display, err := ws281x.Open(ws281x.DefaultPin, ws281x.DefaultBrightness)
	if err != nil {
		return nil, nil, err
	}
	return display, display.Close, nil
})

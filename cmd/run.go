package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/faiface/pixel/pixelgl"
	"github.com/they4kman/ledsweep/director"
	"github.com/they4kman/ledsweep/frontend/terminal"
	"github.com/they4kman/ledsweep/frontend/window"
	"github.com/they4kman/ledsweep/game"
	"golang.org/x/sync/errgroup"
)

// frontend is the part of a simulator the game loop runs alongside.
type frontend interface {
	Run(ctx context.Context) error
}

func run(ctx context.Context, config game.GameConfig) error {
	switch options.frontend {
	case "terminal":
		return runTerminal(ctx, config)
	case "window":
		var err error
		pixelgl.Run(func() {
			err = runWindow(ctx, config)
		})
		return err
	}
	return fmt.Errorf("unknown frontend %q", options.frontend)
}

func runTerminal(ctx context.Context, config game.GameConfig) error {
	hand := director.NewHand(game.NewMapper(config.AxisRange), nil)
	gameDirector, err := newDirector(config, hand)
	if err != nil {
		return err
	}
	config.Director = gameDirector

	restoreLogging := quietLogging()
	defer restoreLogging()

	f, err := terminal.New(config, hand, gameDirector == nil)
	if err != nil {
		return err
	}
	defer f.Close()

	return play(ctx, config, f, game.Hardware{
		Joystick: f,
		Button:   f,
		Display:  f,
		Buzzer:   f,
		Noise:    f,
	})
}

func runWindow(ctx context.Context, config game.GameConfig) error {
	f, err := window.New(config)
	if err != nil {
		return err
	}
	defer f.Close()

	hw := game.Hardware{
		Joystick: f,
		Button:   f,
		Display:  f,
		Buzzer:   f,
		Noise:    f,
	}

	hand := director.NewHand(game.NewMapper(config.AxisRange), nil)
	gameDirector, err := newDirector(config, hand)
	if err != nil {
		return err
	}
	if gameDirector != nil {
		config.Director = gameDirector
		hw.Joystick = hand
		hw.Button = hand
	}

	return play(ctx, config, f, hw)
}

// play runs the game loop next to the frontend until either stops.
func play(ctx context.Context, config game.GameConfig, f frontend, hw game.Hardware) error {
	display, release, err := withStrips(hw.Display, options.strips)
	if err != nil {
		return err
	}
	defer release()
	hw.Display = display

	controller, err := game.NewController(config, hw)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f.Run(gCtx)
	})
	g.Go(func() error {
		return controller.Run(gCtx)
	})

	err = g.Wait()
	switch {
	case errors.Is(err, terminal.ErrQuit), errors.Is(err, window.ErrClosed), errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

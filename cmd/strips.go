package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/they4kman/ledsweep/game"
)

// stripOpener opens a hardware LED strip. The returned func releases it.
type stripOpener func() (game.Display, func(), error)

// strips is filled in by files built only on hardware that has them.
var strips = map[string]stripOpener{}

func registerStrip(name string, open stripOpener) bool {
	strips[name] = open
	return true
}

func availableStrips() string {
	if len(strips) == 0 {
		return "none in this build"
	}
	names := make([]string, 0, len(strips))
	for name := range strips {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// mirrorDisplay sends every operation to each of its displays.
type mirrorDisplay []game.Display

func (displays mirrorDisplay) SetPixel(index int, color game.Color) {
	for _, display := range displays {
		display.SetPixel(index, color)
	}
}

func (displays mirrorDisplay) Clear() {
	for _, display := range displays {
		display.Clear()
	}
}

func (displays mirrorDisplay) Flush() {
	for _, display := range displays {
		display.Flush()
	}
}

// withStrips adds the --strip displays behind primary.
func withStrips(primary game.Display, names []string) (game.Display, func(), error) {
	if len(names) == 0 {
		return primary, func() {}, nil
	}

	displays := mirrorDisplay{primary}
	var closers []func()
	closeAll := func() {
		for _, release := range closers {
			release()
		}
	}

	for _, name := range names {
		open, ok := strips[name]
		if !ok {
			closeAll()
			return nil, nil, fmt.Errorf("unknown strip %q (available: %s)", name, availableStrips())
		}
		display, release, err := open()
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("strip %s: %w", name, err)
		}
		displays = append(displays, display)
		closers = append(closers, release)
	}

	return displays, closeAll, nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/they4kman/ledsweep/game"
)

func setupLogging(level, file string, json bool) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	game.Log.SetLevel(logLevel)

	if json {
		game.Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		game.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}

	if file != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   file,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logLevel,
			Formatter:  &logrus.TextFormatter{DisableColors: true},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		game.Log.AddHook(hook)
	}

	return nil
}

// quietLogging stops logs going to the terminal while it is drawn on. The
// file hook, if any, keeps receiving them. The returned func undoes it.
func quietLogging() func() {
	out := game.Log.Out
	game.Log.SetOutput(io.Discard)
	return func() {
		game.Log.SetOutput(out)
	}
}

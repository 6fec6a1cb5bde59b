package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/they4kman/ledsweep/director"
	"github.com/they4kman/ledsweep/director/random"
	"github.com/they4kman/ledsweep/director/script"
	"github.com/they4kman/ledsweep/game"
)

var gameConfig = game.NewGameConfig()

var options struct {
	configPath   string
	frontend     string
	strips       []string
	directorName string
	scriptPath   string
	boardPath    string
	logLevel     string
	logFile      string
	logJSON      bool
}

var rootCmd = &cobra.Command{
	Use:   "ledsweep",
	Short: "Find the bomb on a 5x5 LED grid without stepping on it",
	Long: `ledsweep is a one-bomb reflex game for a 5x5 LED matrix, a joystick
and a push-button. Point at a cell, press to commit it, and hope it is
not the bomb.

Play in the terminal with the arrow keys and space
	ledsweep

Play in a desktop window with the mouse
	ledsweep --frontend window

Let the computer play for you
	ledsweep --director random
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("seed") && gameConfig.Seed == 0 {
			return fmt.Errorf("seed must be non-zero")
		}

		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		if err := setupLogging(options.logLevel, options.logFile, options.logJSON); err != nil {
			return err
		}
		game.Log.WithFields(config.Fields()).Debug("config")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, config)
	},
}

// buildConfig layers the config file under any flags given explicitly.
func buildConfig(cmd *cobra.Command) (game.GameConfig, error) {
	config := game.NewGameConfig()
	if options.configPath != "" {
		if err := game.LoadConfig(options.configPath, &config); err != nil {
			return config, err
		}
	}
	if cmd.Flags().Changed("seed") {
		config.Seed = gameConfig.Seed
	}
	if cmd.Flags().Changed("save-snapshots") {
		config.SavedSnapshotsDir = gameConfig.SavedSnapshotsDir
	}

	if options.boardPath != "" {
		in, err := os.ReadFile(options.boardPath)
		if err != nil {
			return config, err
		}
		snapshot, err := game.LoadSnapshot(string(in))
		if err != nil {
			return config, fmt.Errorf("%s: %w", options.boardPath, err)
		}
		config.Snapshot = snapshot
		config.LoadSnapshotFresh = gameConfig.LoadSnapshotFresh
	}

	return config, nil
}

// newDirector builds the director named on the command line, if any, playing
// through hand.
func newDirector(config game.GameConfig, hand *director.Hand) (game.Director, error) {
	switch options.directorName {
	case "", "none":
		return nil, nil
	case "random":
		return random.New(hand, config), nil
	case "script":
		if options.scriptPath == "" {
			return nil, fmt.Errorf("the script director needs --script")
		}
		source, err := os.ReadFile(options.scriptPath)
		if err != nil {
			return nil, err
		}
		return script.Parse(string(source), hand, director.PressHold(config))
	}
	return nil, fmt.Errorf("unknown director %q", options.directorName)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		game.Log.Error(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&options.configPath, "config", "c", "", "YAML file with LED wiring, timings and tones")
	flags.StringVarP(&options.frontend, "frontend", "f", "terminal", `Where to show the grid and read input from
terminal: the grid is drawn in the terminal, arrows move and space commits
window: the grid is drawn in a window, the mouse moves and clicks commit`)
	flags.StringSliceVar(&options.strips, "strip", nil, "Also mirror the grid to these LED strips (available: "+availableStrips()+")")
	flags.Int64VarP(&gameConfig.Seed, "seed", "s", 0, "Fixed seed for the bomb position, instead of reading noise")
	flags.StringVarP(&options.directorName, "director", "d", "none", "Make the computer play: none, random or script")
	flags.StringVar(&options.scriptPath, "script", "", "Moves for the script director")
	flags.StringVar(&options.boardPath, "board", "", "Load the board from a YAML snapshot instead of placing a random bomb")
	flags.BoolVar(&gameConfig.LoadSnapshotFresh, "fresh", true, "Start every cell of a loaded --board idle")
	flags.StringVar(&gameConfig.SavedSnapshotsDir, "save-snapshots", "", "Save the final board of every game to this directory")
	flags.StringVar(&options.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&options.logFile, "log-file", "", "Also write logs to this file, rotated")
	flags.BoolVar(&options.logJSON, "log-json", false, "Log as JSON")
}

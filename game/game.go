package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type Tone struct {
	FreqHz   uint32        `yaml:"freq_hz"`
	Duration time.Duration `yaml:"duration"`
}

type GameConfig struct {
	AxisRange uint16
	LEDIndex  LEDIndex

	PollInterval    time.Duration
	BlinkPeriod     time.Duration
	DebounceWindow  time.Duration
	StartupDelay    time.Duration
	BombRevealDelay time.Duration

	CommitTone    Tone
	ExplosionTone Tone

	// Fixed seed for the bomb choice; 0 seeds from the noise source
	Seed int64

	// Snapshot to load the board from instead of placing a random bomb
	Snapshot *BoardSnapshot
	// Whether committed cells in the Snapshot start out idle again
	LoadSnapshotFresh bool

	Director Director

	// Directory where the final board of every session is saved
	SavedSnapshotsDir string

	OnGameEnd func(board *Board)
}

func NewGameConfig() GameConfig {
	return GameConfig{
		AxisRange:         DefaultAxisRange,
		LEDIndex:          DefaultLEDIndex,
		PollInterval:      DefaultPollInterval,
		BlinkPeriod:       DefaultBlinkPeriod,
		DebounceWindow:    DefaultDebounceWindow,
		StartupDelay:      DefaultStartupDelay,
		BombRevealDelay:   DefaultBombRevealDelay,
		CommitTone:        Tone{FreqHz: 50, Duration: 100 * time.Millisecond},
		ExplosionTone:     Tone{FreqHz: 150, Duration: 1000 * time.Millisecond},
		LoadSnapshotFresh: true,
	}
}

func (config GameConfig) Validate() error {
	if config.AxisRange < GridSize {
		return fmt.Errorf("%w: axis range %d is smaller than the grid", ErrInvalidConfig, config.AxisRange)
	}
	if !config.LEDIndex.isPermutation() {
		return fmt.Errorf("%w: led index must use each LED 0-%d exactly once", ErrInvalidConfig, NumCells-1)
	}
	if config.CommitTone.FreqHz == 0 || config.ExplosionTone.FreqHz == 0 {
		return fmt.Errorf("%w: tone frequencies must be non-zero", ErrInvalidConfig)
	}
	return nil
}

func (config GameConfig) Fields() logrus.Fields {
	return logrus.Fields{
		"axis_range":        config.AxisRange,
		"poll_interval":     config.PollInterval.String(),
		"blink_period":      config.BlinkPeriod.String(),
		"debounce_window":   config.DebounceWindow.String(),
		"startup_delay":     config.StartupDelay.String(),
		"bomb_reveal_delay": config.BombRevealDelay.String(),
		"commit_tone_hz":    config.CommitTone.FreqHz,
		"explosion_tone_hz": config.ExplosionTone.FreqHz,
		"seed":              config.Seed,
	}
}

// saveSnapshot writes the final board to SavedSnapshotsDir, if set.
func (config GameConfig) saveSnapshot(board *Board, seed int64, t time.Time) (string, error) {
	if config.SavedSnapshotsDir == "" {
		return "", nil
	}

	stat, err := os.Stat(config.SavedSnapshotsDir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(config.SavedSnapshotsDir, 0o777)
	} else if err == nil && !stat.IsDir() {
		err = fmt.Errorf("%s is not a directory", config.SavedSnapshotsDir)
	}
	if err != nil {
		return "", fmt.Errorf("unable to save snapshot: %w", err)
	}

	path := filepath.Join(config.SavedSnapshotsDir, replayFilename(t))
	// TODO: prevent duplicate filenames within the same second
	if err := os.WriteFile(path, []byte(board.snapshot(seed).Serialize()), 0o644); err != nil {
		return "", fmt.Errorf("unable to save snapshot: %w", err)
	}
	return path, nil
}

// Sessions only end on the bomb, so every replay is of an exploded board.
func replayFilename(t time.Time) string {
	return t.Format("20060102_150405") + "_exploded.yaml"
}

type fileConfig struct {
	AxisRange       *uint16        `yaml:"axis_range"`
	LEDIndex        [][]int        `yaml:"led_index"`
	PollInterval    *time.Duration `yaml:"poll_interval"`
	BlinkPeriod     *time.Duration `yaml:"blink_period"`
	DebounceWindow  *time.Duration `yaml:"debounce_window"`
	StartupDelay    *time.Duration `yaml:"startup_delay"`
	BombRevealDelay *time.Duration `yaml:"bomb_reveal_delay"`
	CommitTone      *Tone          `yaml:"commit_tone"`
	ExplosionTone   *Tone          `yaml:"explosion_tone"`
	Seed            *int64         `yaml:"seed"`
	SnapshotsDir    *string        `yaml:"saved_snapshots_dir"`
}

// ParseConfig overlays YAML settings on top of config. Keys left out keep
// their current value.
func ParseConfig(in []byte, config *GameConfig) error {
	var file fileConfig
	if err := yaml.UnmarshalStrict(in, &file); err != nil {
		return err
	}

	if file.LEDIndex != nil {
		if len(file.LEDIndex) != GridSize {
			return fmt.Errorf("%w: led index has %d rows, want %d", ErrInvalidConfig, len(file.LEDIndex), GridSize)
		}
		for row, leds := range file.LEDIndex {
			if len(leds) != GridSize {
				return fmt.Errorf("%w: led index row %d has %d entries, want %d", ErrInvalidConfig, row, len(leds), GridSize)
			}
			copy(config.LEDIndex[row][:], leds)
		}
	}

	if file.AxisRange != nil {
		config.AxisRange = *file.AxisRange
	}
	if file.PollInterval != nil {
		config.PollInterval = *file.PollInterval
	}
	if file.BlinkPeriod != nil {
		config.BlinkPeriod = *file.BlinkPeriod
	}
	if file.DebounceWindow != nil {
		config.DebounceWindow = *file.DebounceWindow
	}
	if file.StartupDelay != nil {
		config.StartupDelay = *file.StartupDelay
	}
	if file.BombRevealDelay != nil {
		config.BombRevealDelay = *file.BombRevealDelay
	}
	if file.CommitTone != nil {
		config.CommitTone = *file.CommitTone
	}
	if file.ExplosionTone != nil {
		config.ExplosionTone = *file.ExplosionTone
	}
	if file.Seed != nil {
		config.Seed = *file.Seed
	}
	if file.SnapshotsDir != nil {
		config.SavedSnapshotsDir = *file.SnapshotsDir
	}

	return config.Validate()
}

func LoadConfig(path string, config *GameConfig) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := ParseConfig(in, config); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

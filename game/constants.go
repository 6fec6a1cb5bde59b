package game

import "time"

type CellState int
type SessionState int
type CommitResult int
type HoverKind int

const (
	Idle CellState = iota
	PermanentSafe
	PermanentBomb
)

var CellStates = []CellState{
	Idle,
	PermanentSafe,
	PermanentBomb,
}

func (state CellState) String() string {
	switch state {
	case Idle:
		return "idle"
	case PermanentSafe:
		return "safe"
	case PermanentBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

const (
	SessionIdle SessionState = iota
	Playing
	Exploded
)

func (state SessionState) String() string {
	switch state {
	case SessionIdle:
		return "idle"
	case Playing:
		return "playing"
	case Exploded:
		return "exploded"
	default:
		return "unknown"
	}
}

const (
	// Ignored is returned for commits on a board that has already exploded
	Ignored CommitResult = iota
	AlreadyPermanent
	Safe
	Detonated
)

func (result CommitResult) String() string {
	switch result {
	case Ignored:
		return "ignored"
	case AlreadyPermanent:
		return "already permanent"
	case Safe:
		return "safe"
	case Detonated:
		return "detonated"
	default:
		return "unknown"
	}
}

const (
	HoverNone HoverKind = iota
	HoverFixed
	HoverBlink
)

const (
	GridSize = 5
	NumCells = GridSize * GridSize

	// 12-bit ADC
	DefaultAxisRange = 4096
)

const (
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultBlinkPeriod     = 500 * time.Millisecond
	DefaultDebounceWindow  = 50 * time.Millisecond
	DefaultStartupDelay    = 2 * time.Second
	DefaultBombRevealDelay = 1 * time.Second
)

// DefaultLEDIndex is the serpentine wiring of the 5x5 matrix, indexed [row][col].
var DefaultLEDIndex = LEDIndex{
	{24, 23, 22, 21, 20},
	{15, 16, 17, 18, 19},
	{14, 13, 12, 11, 10},
	{5, 6, 7, 8, 9},
	{4, 3, 2, 1, 0},
}

package director

import (
	"sync"
	"time"

	"github.com/they4kman/ledsweep/game"
)

// Hand is a virtual joystick and button. Anything may move it from any
// goroutine; the game loop only ever samples it.
type Hand struct {
	mapper game.Mapper
	clock  game.Clock

	lock      sync.Mutex
	vrx, vry  uint16
	releaseAt time.Time
}

func NewHand(mapper game.Mapper, clock game.Clock) *Hand {
	if clock == nil {
		clock = game.RealClock
	}
	hand := &Hand{
		mapper: mapper,
		clock:  clock,
	}
	hand.vrx, hand.vry = mapper.Center(game.Pos{Row: game.GridSize / 2, Col: game.GridSize / 2})
	return hand
}

// Aim points the stick at the middle of pos.
func (hand *Hand) Aim(pos game.Pos) {
	vrx, vry := hand.mapper.Center(pos)

	hand.lock.Lock()
	defer hand.lock.Unlock()
	hand.vrx, hand.vry = vrx, vry
}

// Move shifts the aim by whole cells, stopping at the edges.
func (hand *Hand) Move(dRow, dCol int) game.Pos {
	hand.lock.Lock()
	defer hand.lock.Unlock()

	pos, ok := hand.mapper.Map(hand.vrx, hand.vry)
	if !ok {
		pos = game.Pos{Row: game.GridSize / 2, Col: game.GridSize / 2}
	}
	pos.Row = clamp(pos.Row+dRow, 0, game.GridSize-1)
	pos.Col = clamp(pos.Col+dCol, 0, game.GridSize-1)

	hand.vrx, hand.vry = hand.mapper.Center(pos)
	return pos
}

// Aimed returns the cell the stick currently points at.
func (hand *Hand) Aimed() game.Pos {
	vrx, vry := hand.ReadAxes()
	pos, _ := hand.mapper.Map(vrx, vry)
	return pos
}

// Press holds the button down for hold.
func (hand *Hand) Press(hold time.Duration) {
	hand.lock.Lock()
	defer hand.lock.Unlock()
	hand.releaseAt = hand.clock.Now().Add(hold)
}

func (hand *Hand) Release() {
	hand.lock.Lock()
	defer hand.lock.Unlock()
	hand.releaseAt = time.Time{}
}

// [Hand] implements [game.Joystick]
func (hand *Hand) ReadAxes() (uint16, uint16) {
	hand.lock.Lock()
	defer hand.lock.Unlock()
	return hand.vrx, hand.vry
}

// [Hand] implements [game.Button]; the level is low while held.
func (hand *Hand) Level() bool {
	hand.lock.Lock()
	defer hand.lock.Unlock()
	return !hand.clock.Now().Before(hand.releaseAt)
}

// PressHold is how long a virtual press must last to be seen by the game
// loop: one blink, one poll and the debounce window, with margin.
func PressHold(config game.GameConfig) time.Duration {
	return config.BlinkPeriod + config.PollInterval + 2*config.DebounceWindow
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package random

import (
	"math/rand"
	"sync"
	"time"

	"github.com/they4kman/ledsweep/director"
	"github.com/they4kman/ledsweep/game"
	"github.com/they4kman/ledsweep/util/collections"
)

// Director commits cells in a random order until it hits the bomb. It never
// looks at the board after Init, so it cannot cheat.
type Director struct {
	Hand *director.Hand
	Rand *rand.Rand

	// Time to let the game see the new aim before pressing
	AimDelay time.Duration
	// How long each press is held
	Hold time.Duration
	// Pause between continuous actions
	Interval time.Duration

	act     chan struct{}
	done    chan struct{}
	endOnce sync.Once

	order []game.Pos
	tried collections.Set[game.Pos]
}

func New(hand *director.Hand, config game.GameConfig) *Director {
	hold := director.PressHold(config)
	return &Director{
		Hand:     hand,
		AimDelay: config.BlinkPeriod + config.PollInterval,
		Hold:     hold,
		Interval: 2 * hold,
	}
}

func (d *Director) Init(board *game.Board) {
	d.act = make(chan struct{})
	d.done = make(chan struct{})
	d.endOnce = sync.Once{}
	d.tried = make(collections.Set[game.Pos])

	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d.order = make([]game.Pos, 0, game.NumCells)
	for _, cell := range board.Cells() {
		d.order = append(d.order, cell.Pos())
	}

	d.Rand.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})

	go func() {
		for {
			select {
			case <-d.done:
				return
			case <-d.act:
				d.commitNext()
			}
		}
	}()
}

func (d *Director) next() (game.Pos, bool) {
	for _, pos := range d.order {
		if !d.tried.Contains(pos) {
			return pos, true
		}
	}
	return game.Pos{}, false
}

func (d *Director) commitNext() {
	pos, ok := d.next()
	if !ok {
		return
	}
	d.tried.Add(pos)

	game.Log.WithField("pos", pos.String()).Debug("random director aiming")
	d.Hand.Aim(pos)
	if !d.sleep(d.AimDelay) {
		return
	}
	d.Hand.Press(d.Hold)
	d.sleep(d.Hold)
}

// sleep returns false if the director was ended while waiting.
func (d *Director) sleep(duration time.Duration) bool {
	select {
	case <-d.done:
		return false
	case <-time.After(duration):
		return true
	}
}

func (d *Director) Act() {
	select {
	case d.act <- struct{}{}:
	case <-d.done:
	}
}

func (d *Director) ActContinuously() {
	go func() {
		tick := time.NewTicker(d.Interval)
		defer tick.Stop()

		for {
			select {
			case <-d.done:
				return
			case <-tick.C:
				d.Act()
			}
		}
	}()
}

func (d *Director) End() {
	d.endOnce.Do(func() {
		close(d.done)
	})
}

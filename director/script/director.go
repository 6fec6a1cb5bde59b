package script

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/they4kman/ledsweep/director"
	"github.com/they4kman/ledsweep/game"
)

type stepKind int

const (
	aimStep stepKind = iota
	pressStep
	releaseStep
	waitStep
)

type step struct {
	kind     stepKind
	pos      game.Pos
	duration time.Duration
}

func (s step) String() string {
	switch s.kind {
	case aimStep:
		return fmt.Sprintf("aim %d,%d", s.pos.Row, s.pos.Col)
	case pressStep:
		return fmt.Sprintf("press %v", s.duration)
	case releaseStep:
		return "release"
	default:
		return fmt.Sprintf("wait %v", s.duration)
	}
}

// Director replays a fixed list of hand movements, one step per Act.
//
// A script has one step per line (or separated by ';'):
//
//	aim ROW,COL      point the stick at a cell
//	press [DURATION] hold the button, for the default hold if omitted
//	release          let go of the button
//	wait DURATION    do nothing for a while
//
// Blank lines and lines starting with '#' are skipped.
type Director struct {
	Hand *director.Hand

	stepsLock sync.Mutex
	steps     deque.Deque

	done    chan struct{}
	endOnce sync.Once
}

func Parse(source string, hand *director.Hand, defaultHold time.Duration) (*Director, error) {
	d := &Director{Hand: hand}

	scanner := bufio.NewScanner(strings.NewReader(strings.ReplaceAll(source, ";", "\n")))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s, err := parseStep(line, defaultHold)
		if err != nil {
			return nil, fmt.Errorf("script step %d %q: %w", lineNo, line, err)
		}
		d.steps.PushBack(s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return d, nil
}

func parseStep(line string, defaultHold time.Duration) (step, error) {
	fields := strings.Fields(line)

	switch fields[0] {
	case "aim":
		if len(fields) != 2 {
			return step{}, fmt.Errorf("aim takes ROW,COL")
		}
		pos, err := parsePos(fields[1])
		if err != nil {
			return step{}, err
		}
		return step{kind: aimStep, pos: pos}, nil

	case "press":
		s := step{kind: pressStep, duration: defaultHold}
		if len(fields) > 2 {
			return step{}, fmt.Errorf("press takes at most one duration")
		}
		if len(fields) == 2 {
			duration, err := time.ParseDuration(fields[1])
			if err != nil {
				return step{}, err
			}
			s.duration = duration
		}
		return s, nil

	case "release":
		if len(fields) != 1 {
			return step{}, fmt.Errorf("release takes no arguments")
		}
		return step{kind: releaseStep}, nil

	case "wait":
		if len(fields) != 2 {
			return step{}, fmt.Errorf("wait takes a duration")
		}
		duration, err := time.ParseDuration(fields[1])
		if err != nil {
			return step{}, err
		}
		return step{kind: waitStep, duration: duration}, nil
	}

	return step{}, fmt.Errorf("unknown step %q", fields[0])
}

func parsePos(s string) (game.Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return game.Pos{}, fmt.Errorf("position %q is not ROW,COL", s)
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return game.Pos{}, err
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return game.Pos{}, err
	}

	pos := game.Pos{Row: row, Col: col}
	if !pos.Valid() {
		return game.Pos{}, fmt.Errorf("position %v is off the grid", pos)
	}
	return pos, nil
}

// Remaining is the number of steps not yet run.
func (d *Director) Remaining() int {
	d.stepsLock.Lock()
	defer d.stepsLock.Unlock()
	return d.steps.Len()
}

func (d *Director) Init(board *game.Board) {
	d.done = make(chan struct{})
	d.endOnce = sync.Once{}
}

func (d *Director) pop() (step, bool) {
	d.stepsLock.Lock()
	defer d.stepsLock.Unlock()

	if d.steps.Len() == 0 {
		return step{}, false
	}
	return d.steps.PopFront().(step), true
}

// Act runs the next step, blocking through waits and presses.
func (d *Director) Act() {
	s, ok := d.pop()
	if !ok {
		return
	}

	game.Log.WithField("step", s.String()).Debug("script director")

	switch s.kind {
	case aimStep:
		d.Hand.Aim(s.pos)
	case pressStep:
		d.Hand.Press(s.duration)
		d.sleep(s.duration)
	case releaseStep:
		d.Hand.Release()
	case waitStep:
		d.sleep(s.duration)
	}
}

func (d *Director) sleep(duration time.Duration) {
	select {
	case <-d.done:
	case <-time.After(duration):
	}
}

func (d *Director) ended() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

func (d *Director) ActContinuously() {
	go func() {
		for !d.ended() && d.Remaining() > 0 {
			d.Act()
		}
	}()
}

func (d *Director) End() {
	d.endOnce.Do(func() {
		close(d.done)
	})
}

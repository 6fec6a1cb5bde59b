package game

import (
	"context"
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Session is the state of one run of the game. It belongs to a single
// Controller and is only touched from its loop.
type Session struct {
	state SessionState
	board *Board
	seed  int64

	lastHovered Pos
	hasHovered  bool
	blinkPhase  bool
}

func (session *Session) State() SessionState {
	return session.state
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Seed() int64 {
	return session.seed
}

// Controller runs the poll loop: joystick to cell, blink the hovered cell,
// commit on a debounced press and explode on the bomb.
type Controller struct {
	config GameConfig
	hw     Hardware

	mapper    Mapper
	debouncer *Debouncer
	grid      *Grid

	session Session
}

func NewController(config GameConfig, hw Hardware) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if hw.Joystick == nil || hw.Button == nil || hw.Display == nil || hw.Buzzer == nil {
		return nil, errors.New("controller needs a joystick, button, display and buzzer")
	}
	if hw.Noise == nil && config.Seed == 0 && config.Snapshot == nil {
		return nil, errors.New("controller needs a noise source or a fixed seed")
	}
	if hw.Clock == nil {
		hw.Clock = RealClock
	}

	return &Controller{
		config: config,
		hw:     hw,
		mapper: NewMapper(config.AxisRange),
		debouncer: &Debouncer{
			Button: hw.Button,
			Clock:  hw.Clock,
			Window: config.DebounceWindow,
		},
		grid: NewGrid(config.LEDIndex, hw.Display),
	}, nil
}

func (c *Controller) Session() *Session {
	return &c.session
}

func (c *Controller) Board() *Board {
	return c.session.board
}

func (c *Controller) Grid() *Grid {
	return c.grid
}

func (c *Controller) Mapper() Mapper {
	return c.mapper
}

// Start seeds the random source, places the bomb and moves the session from
// idle to playing. It does nothing once the session has started.
func (c *Controller) Start() error {
	if c.session.state != SessionIdle {
		return nil
	}

	// a loaded board keeps the seed it was saved with
	seed := c.config.Seed
	if c.config.Snapshot != nil {
		seed = c.config.Snapshot.Seed
	} else if seed == 0 && c.hw.Noise != nil {
		seed = int64(c.hw.Noise.Noise())
	}
	c.session.seed = seed

	c.grid.Clear()
	c.grid.Flush()
	c.hw.Clock.Sleep(c.config.StartupDelay)

	var board *Board
	if c.config.Snapshot != nil {
		var err error
		board, err = c.config.Snapshot.CreateBoard(c.config.LoadSnapshotFresh)
		if err != nil {
			return err
		}
	} else {
		board = createBoard(chooseBomb(rand.New(rand.NewSource(seed))))
	}
	c.session.board = board

	bomb := board.Bomb()
	Log.WithFields(logrus.Fields{
		"led":  c.config.LEDIndex.At(bomb),
		"row":  bomb.Row,
		"col":  bomb.Col,
		"seed": seed,
	}).Info("bomb placed")
	c.hw.Clock.Sleep(c.config.BombRevealDelay)

	c.session.state = Playing
	c.render()

	if c.config.Director != nil {
		c.config.Director.Init(board)
		c.config.Director.ActContinuously()
	}

	if board.IsExploded() {
		c.endGame()
	}
	return nil
}

// render draws every permanent cell, or the explosion.
func (c *Controller) render() {
	board := c.session.board
	if board.IsExploded() {
		c.grid.Fill(ExplodedRed)
	} else {
		for _, cell := range board.Cells() {
			c.grid.Set(cell.pos, cell.Color())
		}
	}
	c.grid.Flush()
}

// Step runs a single poll cycle.
func (c *Controller) Step() {
	vrx, vry := c.hw.Joystick.ReadAxes()
	pos, ok := c.mapper.Map(vrx, vry)

	if c.session.state != Playing {
		return
	}

	if !ok {
		Log.WithFields(logrus.Fields{"vrx": vrx, "vry": vry}).Warn("invalid coordinates")
		return
	}

	session := &c.session
	board := session.board

	moved := session.hasHovered && session.lastHovered != pos
	if moved && !board.CellAt(session.lastHovered).IsPermanent() {
		c.grid.Set(session.lastHovered, Off)
	}

	if cell := board.CellAt(pos); !cell.IsPermanent() {
		session.blinkPhase = !session.blinkPhase
		hover := board.Hover(pos, session.blinkPhase)
		c.grid.Set(pos, hover.Color)
		c.grid.Flush()
		c.hw.Clock.Sleep(c.config.BlinkPeriod)
	} else if moved {
		c.grid.Flush()
	}

	if c.debouncer.Pressed() {
		Log.WithFields(logrus.Fields{
			"led": c.config.LEDIndex.At(pos),
			"row": pos.Row,
			"col": pos.Col,
		}).Info("button pressed")
		c.commit(pos)
	}

	session.lastHovered = pos
	session.hasHovered = true
}

func (c *Controller) commit(pos Pos) {
	result := c.session.board.Commit(pos)

	switch result {
	case Safe, Detonated:
	default:
		Log.WithField("result", result).Debug("commit ignored")
		return
	}

	c.grid.Set(pos, SafeGreen)
	c.playTone(c.config.CommitTone)
	c.grid.Flush()

	if result == Detonated {
		c.explode()
	}
}

func (c *Controller) explode() {
	Log.Warn("bomb detonated")

	c.grid.Fill(ExplodedRed)
	c.grid.Flush()
	c.playTone(c.config.ExplosionTone)

	c.endGame()
}

func (c *Controller) endGame() {
	c.session.state = Exploded

	if c.config.Director != nil {
		c.config.Director.End()
	}

	Log.Debugf("final board:\n%s", c.session.board.snapshot(c.session.seed).Serialize())

	path, err := c.config.saveSnapshot(c.session.board, c.session.seed, c.hw.Clock.Now())
	if err != nil {
		Log.WithError(err).Error("unable to save final board")
	} else if path != "" {
		Log.WithField("path", path).Info("saved final board")
	}

	if c.config.OnGameEnd != nil {
		c.config.OnGameEnd(c.session.board)
	}
}

func (c *Controller) playTone(tone Tone) {
	c.hw.Buzzer.PlayTone(tone.FreqHz, tone.Duration)
}

// Run starts the session if needed and polls until ctx is done. Once the
// bomb has gone off the loop keeps sampling input but changes nothing.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.Step()
		c.hw.Clock.Sleep(c.config.PollInterval)
	}
}

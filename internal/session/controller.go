package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/provider"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=controller_mocks_test.go -package=session_test

var (
	// ErrStopped is returned by commands sent after Run has returned.
	ErrStopped = errors.New("session controller stopped")
	ErrRunning = errors.New("session loop already started")
)

type planProvider interface {
	GeneratePlan(ctx context.Context, profile *models.Profile, minutes int, focus string) (models.WorkoutPlan, error)
	SubstituteExercise(ctx context.Context, profile *models.Profile, current models.Exercise) (models.Exercise, error)
	GenerateSessionFeedback(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (string, error)
	AnalyzeGoalProgress(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (models.GoalProgress, error)
}

type profileStore interface {
	Load(ctx context.Context, id string) (*models.Profile, error)
	Upsert(ctx context.Context, partial *models.Profile) ([]*models.Profile, error)
}

type Options struct {
	ProfileID       string
	Minutes         int
	Focus           string
	ProviderTimeout time.Duration
	// OnChange, when set, is called from the controller loop after every state change.
	OnChange func(State)
}

type command struct {
	ctx   context.Context
	event Event // nil asks for a snapshot
	reply chan result
}

type result struct {
	state State
	err   error
}

// Controller runs one session. All events, clock ticks included, are applied by the Run loop,
// which owns the state and the single live ticker.
type Controller struct {
	store profileStore
	plans planProvider
	clock Clock
	opts  Options

	running  atomic.Bool
	state    State
	ticker   Ticker
	commands chan command
	done     chan struct{}
}

// NewController wires a session. The plan provider is wrapped in a provider.Guard, so its failures
// fall back to built-in content.
func NewController(store profileStore, plans planProvider, clock Clock, opts Options) *Controller {
	if clock == nil {
		clock = RealClock(nil)
	}
	return &Controller{
		store:    store,
		plans:    provider.NewGuard(plans, opts.ProviderTimeout),
		clock:    clock,
		opts:     opts,
		commands: make(chan command),
		done:     make(chan struct{}),
	}
}

// Prepare loads the profile and the plan and leaves the session in PRE_SESSION.
// It must be called before Run: once the loop owns the state, Prepare fails with ErrRunning.
func (c *Controller) Prepare(ctx context.Context) error {
	if c.running.Load() {
		return ErrRunning
	}

	profile, err := c.store.Load(ctx, c.opts.ProfileID)
	if err != nil {
		return fmt.Errorf("load profile %s: %w", c.opts.ProfileID, err)
	}

	plan, err := c.plans.GeneratePlan(ctx, profile, c.opts.Minutes, c.opts.Focus)
	if err != nil {
		plan = provider.FallbackPlan(c.opts.Minutes)
	}

	c.state = NewState(uuid.New().String(), profile, plan, c.opts.Minutes, c.opts.Focus)
	c.log().WithFields(logrus.Fields{
		"profile":   profile.ID,
		"exercises": len(plan.Exercises),
	}).Infoln("session prepared")
	return nil
}

// Run serves commands and clock ticks until ctx is done. It returns nil when ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.running.Store(true)
	defer close(c.done)
	defer c.stopTicker()

	if c.state.Phase == "" {
		return ErrNotPrepared
	}
	c.syncClock(State{Segment: -1})

	for {
		var ticks <-chan time.Time
		if c.ticker != nil {
			ticks = c.ticker.C()
		}

		select {
		case <-ctx.Done():
			c.log().Debugln("session loop stopped")
			return nil

		case <-ticks:
			if err := c.dispatch(ctx, Tick{Segment: c.state.Segment}); err != nil {
				c.log().WithError(err).Warnln("tick rejected")
			}

		case cmd := <-c.commands:
			if cmd.event == nil {
				cmd.reply <- result{state: c.state}
				continue
			}
			err := c.dispatch(cmd.ctx, cmd.event)
			cmd.reply <- result{state: c.state, err: err}
		}
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) Start(ctx context.Context) (State, error) {
	return c.send(ctx, Start{At: c.clock.Now()})
}

func (c *Controller) Skip(ctx context.Context) (State, error) {
	return c.send(ctx, Skip{})
}

// ValidateSet records the current set with the weight lifted and the reps performed.
func (c *Controller) ValidateSet(ctx context.Context, weight float64, reps int) (State, error) {
	return c.send(ctx, ValidateSet{Weight: weight, Reps: reps, At: c.clock.Now()})
}

func (c *Controller) SkipRest(ctx context.Context) (State, error) {
	return c.send(ctx, SkipRest{})
}

// Substitute replaces the current exercise. On failure the exercise is kept and the error returned.
func (c *Controller) Substitute(ctx context.Context) (State, error) {
	return c.send(ctx, Substitute{})
}

// Archive folds the session into the profile and persists it. If persisting fails the session
// stays in DEBRIEF and Archive can be called again.
func (c *Controller) Archive(ctx context.Context) (State, error) {
	return c.send(ctx, Archive{At: c.clock.Now()})
}

func (c *Controller) Abandon(ctx context.Context) (State, error) {
	return c.send(ctx, Abandon{})
}

func (c *Controller) BrowseStats(ctx context.Context) (State, error) {
	return c.send(ctx, BrowseStats{})
}

func (c *Controller) ExitStats(ctx context.Context) (State, error) {
	return c.send(ctx, ExitStats{})
}

// State returns a snapshot of the session.
func (c *Controller) State(ctx context.Context) (State, error) {
	return c.send(ctx, nil)
}

func (c *Controller) send(ctx context.Context, ev Event) (State, error) {
	cmd := command{ctx: ctx, event: ev, reply: make(chan result, 1)}

	select {
	case c.commands <- cmd:
	case <-c.done:
		return State{}, ErrStopped
	case <-ctx.Done():
		return State{}, ctx.Err()
	}

	// the loop always answers a command it accepted
	res := <-cmd.reply
	return res.state, res.err
}

// dispatch reduces ev and every event its effects produce. It stops at the first error, keeping
// the state reached so far.
func (c *Controller) dispatch(ctx context.Context, ev Event) error {
	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		prev := c.state
		state, effects, err := Reduce(prev, next)
		if err != nil {
			return err
		}
		c.state = state
		c.syncClock(prev)
		if prev.Phase != state.Phase {
			c.log().WithField("from", prev.Phase).Debugln("phase changed")
		}

		for _, eff := range effects {
			follow, err := c.execute(ctx, eff)
			if err != nil {
				c.notify()
				return err
			}
			queue = append(queue, follow)
		}
	}

	c.notify()
	return nil
}

// execute runs one effect inside the loop, so no tick is applied while it is in flight.
func (c *Controller) execute(ctx context.Context, eff Effect) (Event, error) {
	switch e := eff.(type) {
	case RequestFeedback:
		text, err := c.plans.GenerateSessionFeedback(ctx, e.Profile, e.Metrics)
		if err != nil {
			text = provider.FallbackFeedback
		}
		return FeedbackReady{Text: text}, nil

	case RequestSubstitution:
		ex, err := c.plans.SubstituteExercise(ctx, e.Profile, e.Exercise)
		if err != nil {
			return nil, err
		}
		c.log().WithFields(logrus.Fields{"from": e.Exercise.Name, "to": ex.Name}).Infoln("exercise substituted")
		return SubstitutionResolved{Index: e.Index, Exercise: ex}, nil

	case RequestGoalProgress:
		progress, err := c.plans.AnalyzeGoalProgress(ctx, e.Profile, e.Metrics)
		if err != nil {
			progress = provider.FallbackProgress()
		}
		return GoalProgressReady{Progress: progress, At: e.At}, nil

	case Persist:
		profiles, err := c.store.Upsert(ctx, e.Profile)
		if err != nil {
			c.log().WithError(err).Errorln("failed to persist session")
			return nil, fmt.Errorf("persist session %s: %w", c.state.ID, err)
		}
		c.log().WithField("tonnage", c.state.Recorder.Tonnage()).Infoln("session archived")
		return Persisted{Profile: pickProfile(profiles, e.Profile)}, nil
	}

	return nil, fmt.Errorf("unknown effect %T", eff)
}

// pickProfile returns the stored version of want, or want itself when the store did not return it.
func pickProfile(profiles []*models.Profile, want *models.Profile) *models.Profile {
	for _, p := range profiles {
		if p != nil && p.ID == want.ID {
			return p
		}
	}
	return want
}

// syncClock keeps exactly one ticker for the current segment: the previous one is stopped before
// a new one is created.
func (c *Controller) syncClock(prev State) {
	if prev.Segment == c.state.Segment && prev.Regime() == c.state.Regime() {
		return
	}

	c.stopTicker()
	if c.state.Regime() != RegimeNone {
		c.ticker = c.clock.NewTicker(time.Second)
	}
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *Controller) notify() {
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.state)
	}
}

func (c *Controller) log() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"session": c.state.ID,
		"phase":   c.state.Phase,
	})
}

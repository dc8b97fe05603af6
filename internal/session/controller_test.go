package session_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/provider"
	"github.com/misterclayt0n/hygie/internal/session"
	"github.com/misterclayt0n/hygie/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	live    []*fakeTicker
	created int
	maxLive int
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) session.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{clock: c, ch: make(chan time.Time)}
	c.live = append(c.live, t)
	c.created++
	c.maxLive = max(c.maxLive, len(c.live))
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Active is the number of tickers created and not yet stopped.
func (c *fakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}

// Tick moves the clock one second forward and hands it to the live ticker n times, waiting for
// the controller to apply each one.
func (c *fakeClock) Tick(t *testing.T, ctrl *session.Controller, n int) {
	t.Helper()
	for range n {
		c.mu.Lock()
		live := slices.Clone(c.live)
		c.now = c.now.Add(time.Second)
		now := c.now
		c.mu.Unlock()

		require.Len(t, live, 1, "exactly one ticker must be running")
		select {
		case live[0].ch <- now:
		case <-time.After(2 * time.Second):
			t.Fatal("tick was not consumed")
		}
		_, err := ctrl.State(t.Context())
		require.NoError(t, err)
	}
}

type fakeTicker struct {
	clock *fakeClock
	ch    chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.clock.live = slices.DeleteFunc(t.clock.live, func(x *fakeTicker) bool { return x == t })
}

// run prepares c and serves it until the test ends.
func run(t *testing.T, c *session.Controller) {
	t.Helper()
	require.NoError(t, c.Prepare(t.Context()))
	go func() {
		_ = c.Run(t.Context())
	}()
	t.Cleanup(func() { <-c.Done() })
}

func shortPlan() models.WorkoutPlan {
	return models.WorkoutPlan{
		Title:     "Short",
		Exercises: []models.Exercise{{Name: "Squat", Sets: 2, Reps: "8", Rest: 60}},
	}
}

func opts() session.Options {
	return session.Options{ProfileID: "ana", Minutes: 45, Focus: "legs", ProviderTimeout: time.Second}
}

func TestController_FullSession(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	store := storage.NewMemoryStore(testProfile())
	clock := newFakeClock(at)

	plan := models.WorkoutPlan{
		Title:     "Legs",
		Warmup:    []models.PhaseExercise{{Name: "Jog", Duration: 2}},
		Exercises: []models.Exercise{{Name: "Squat", Sets: 3, Reps: "10", Rest: 90}},
		Cooldown:  []models.PhaseExercise{{Name: "Quad Stretch", Duration: 1}},
	}
	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), 45, "legs").Return(plan, nil)
	plans.EXPECT().GenerateSessionFeedback(gomock.Any(), gomock.Any(), gomock.Len(3)).Return("Strong finish.", nil)
	plans.EXPECT().AnalyzeGoalProgress(gomock.Any(), gomock.Any(), gomock.Len(3)).
		Return(models.GoalProgress{ProgressIncrement: 5, IsOnTrack: true}, nil)

	var (
		mu     sync.Mutex
		phases []session.Phase
	)
	o := opts()
	o.OnChange = func(s session.State) {
		mu.Lock()
		defer mu.Unlock()
		if len(phases) == 0 || phases[len(phases)-1] != s.Phase {
			phases = append(phases, s.Phase)
		}
	}

	c := session.NewController(store, plans, clock, o)
	run(t, c)

	s, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhasePreSession, s.Phase)
	assert.Equal(t, 0, clock.Active())

	s, err = c.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseWarmup, s.Phase)
	assert.Equal(t, 1, clock.Active())

	clock.Tick(t, c, 2)
	s, err = c.State(ctx)
	require.NoError(t, err)
	require.Equal(t, session.PhaseActiveSet, s.Phase)
	assert.Equal(t, 87.5, s.SuggestedWeight)

	clock.Tick(t, c, 5)
	s, err = c.ValidateSet(ctx, 100, 10)
	require.NoError(t, err)
	assert.True(t, s.Resting)
	assert.Equal(t, 90, s.Remaining)
	assert.Equal(t, 5, s.Recorder.EffortSeconds())

	clock.Tick(t, c, 90)
	s, err = c.State(ctx)
	require.NoError(t, err)
	assert.False(t, s.Resting)
	assert.Equal(t, 2, s.SetNumber)

	s, err = c.ValidateSet(ctx, 100, 8)
	require.NoError(t, err)
	_, err = c.SkipRest(ctx)
	require.NoError(t, err)
	s, err = c.ValidateSet(ctx, 90, 8)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseCooldown, s.Phase)
	assert.Equal(t, 2520.0, s.Recorder.Tonnage())

	clock.Tick(t, c, 1)
	s, err = c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseDebrief, s.Phase)
	assert.Equal(t, "Strong finish.", s.Feedback)
	assert.Equal(t, 0, clock.Active())

	clock.Advance(10 * time.Minute)
	s, err = c.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseArchived, s.Phase)
	assert.Equal(t, 0, clock.Active())
	assert.Equal(t, 1, clock.maxLive)

	stored, err := store.Load(ctx, "ana")
	require.NoError(t, err)
	completed := stored.CompletedSessions()
	require.Len(t, completed, 1)
	assert.Equal(t, 2520.0, completed[0].Tonnage)
	assert.Equal(t, 3, completed[0].MetricCount)
	assert.Equal(t, "Strong finish.", completed[0].Feedback)
	assert.Equal(t, 45.0, stored.Goal.Current)
	require.Len(t, stored.Goal.History, 1)
	assert.Equal(t, 45.0, stored.Goal.History[0].Value)
	assert.Equal(t, 100.0, stored.PersonalRecords["Squat"].Weight)
	assert.Equal(t, 10, stored.PersonalRecords["Squat"].Reps)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []session.Phase{
		session.PhaseWarmup,
		session.PhaseActiveSet,
		session.PhaseCooldown,
		session.PhaseDebrief,
		session.PhaseArchived,
	}, phases)
}

func TestController_OneTickerPerSegment(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	clock := newFakeClock(at)

	plan := testPlan()
	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(plan, nil)

	c := session.NewController(storage.NewMemoryStore(testProfile()), plans, clock, opts())
	run(t, c)

	_, err := c.Start(ctx)
	require.NoError(t, err)
	clock.Tick(t, c, 3)
	_, err = c.ValidateSet(ctx, 100, 10)
	require.NoError(t, err)
	clock.Tick(t, c, 2)

	s, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.RegimeStopwatch, s.Regime())
	assert.Equal(t, 1, clock.Active())
	assert.Equal(t, 1, clock.maxLive)
	// jog, hip opener, first set, rest, second set
	assert.Equal(t, 5, clock.created)

	_, err = c.Abandon(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, clock.Active())
}

func TestController_ProviderFailuresFallBack(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	store := storage.NewMemoryStore(testProfile())
	boom := errors.New("provider down")

	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), 30, "").Return(models.WorkoutPlan{}, boom)
	plans.EXPECT().GenerateSessionFeedback(gomock.Any(), gomock.Any(), gomock.Any()).Return("", boom)
	plans.EXPECT().AnalyzeGoalProgress(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.GoalProgress{}, boom)

	c := session.NewController(store, plans, newFakeClock(at), session.Options{ProfileID: "ana", Minutes: 30})
	run(t, c)

	s, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, provider.FallbackPlan(30), s.Plan)

	_, err = c.Start(ctx)
	require.NoError(t, err)
	for {
		s, err = c.State(ctx)
		require.NoError(t, err)
		if s.Phase != session.PhaseWarmup {
			break
		}
		_, err = c.Skip(ctx)
		require.NoError(t, err)
	}

	for s.Phase == session.PhaseActiveSet {
		if s.Resting {
			s, err = c.SkipRest(ctx)
		} else {
			s, err = c.ValidateSet(ctx, 20, 10)
		}
		require.NoError(t, err)
	}
	for s.Phase == session.PhaseCooldown {
		s, err = c.Skip(ctx)
		require.NoError(t, err)
	}

	require.Equal(t, session.PhaseDebrief, s.Phase)
	assert.Equal(t, provider.FallbackFeedback, s.Feedback)

	s, err = c.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseArchived, s.Phase)
	assert.Equal(t, 41.0, s.Profile.Goal.Current)
}

func TestController_WithoutProviderUsesBuiltInContent(t *testing.T) {
	ctx := t.Context()
	c := session.NewController(storage.NewMemoryStore(testProfile()), nil, newFakeClock(at), opts())
	run(t, c)

	s, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, provider.FallbackPlan(45), s.Plan)

	s, err = c.Start(ctx)
	require.NoError(t, err)
	for s.Phase == session.PhaseWarmup {
		s, err = c.Skip(ctx)
		require.NoError(t, err)
	}

	s, err = c.Substitute(ctx)
	require.ErrorIs(t, err, provider.ErrNoSubstitute)
	assert.Equal(t, provider.FallbackPlan(45), s.Plan)
}

func TestController_EmptyPlanGoesStraightToDebrief(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	clock := newFakeClock(at)

	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(models.WorkoutPlan{}, nil)
	plans.EXPECT().GenerateSessionFeedback(gomock.Any(), gomock.Any(), gomock.Len(0)).Return("Nothing done today.", nil)

	c := session.NewController(storage.NewMemoryStore(testProfile()), plans, clock, opts())
	run(t, c)

	s, err := c.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseDebrief, s.Phase)
	assert.Equal(t, "Nothing done today.", s.Feedback)
	assert.Equal(t, 0, clock.created)
}

func TestController_Substitution(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	plan := shortPlan()
	goblet := models.Exercise{Name: "Goblet Squat", Sets: 2, Reps: "8", Rest: 60, SuggestedLoad: "24 kg"}

	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(plan, nil)
	gomock.InOrder(
		plans.EXPECT().SubstituteExercise(gomock.Any(), gomock.Any(), plan.Exercises[0]).Return(models.Exercise{}, errors.New("no idea")),
		plans.EXPECT().SubstituteExercise(gomock.Any(), gomock.Any(), plan.Exercises[0]).Return(goblet, nil),
	)

	c := session.NewController(storage.NewMemoryStore(testProfile()), plans, newFakeClock(at), opts())
	run(t, c)

	before, err := c.Start(ctx)
	require.NoError(t, err)

	s, err := c.Substitute(ctx)
	require.Error(t, err)
	assert.Equal(t, before, s)

	s, err = c.Substitute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Goblet Squat", s.Plan.Exercises[0].Name)
	assert.Equal(t, 25.0, s.SuggestedWeight)
	assert.Equal(t, before.SetNumber, s.SetNumber)
	assert.Equal(t, "Squat", before.Plan.Exercises[0].Name)
}

func TestController_PersistFailureKeepsDebrief(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	store := NewMockprofileStore(ctrl)
	diskFull := errors.New("disk full")

	store.EXPECT().Load(gomock.Any(), "ana").Return(testProfile(), nil)
	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(shortPlan(), nil)
	plans.EXPECT().GenerateSessionFeedback(gomock.Any(), gomock.Any(), gomock.Any()).Return("ok", nil)
	plans.EXPECT().AnalyzeGoalProgress(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.GoalProgress{ProgressIncrement: 2}, nil).Times(1)
	gomock.InOrder(
		store.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, diskFull),
		store.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *models.Profile) ([]*models.Profile, error) {
				return []*models.Profile{p}, nil
			}),
	)

	c := session.NewController(store, plans, newFakeClock(at), opts())
	run(t, c)

	_, err := c.Start(ctx)
	require.NoError(t, err)
	_, err = c.ValidateSet(ctx, 60, 8)
	require.NoError(t, err)
	_, err = c.SkipRest(ctx)
	require.NoError(t, err)
	s, err := c.ValidateSet(ctx, 60, 8)
	require.NoError(t, err)
	require.Equal(t, session.PhaseDebrief, s.Phase)

	s, err = c.Archive(ctx)
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, session.PhaseDebrief, s.Phase)
	assert.Empty(t, s.Profile.Sessions)
	assert.Equal(t, 2, s.Recorder.Count())

	s, err = c.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseArchived, s.Phase)
	assert.Len(t, s.Profile.CompletedSessions(), 1)
	assert.Equal(t, 42.0, s.Profile.Goal.Current)
}

func TestController_AbandonRestoresProfile(t *testing.T) {
	ctx := t.Context()
	ctrl := gomock.NewController(t)
	plans := NewMockplanProvider(ctrl)
	store := storage.NewMemoryStore(testProfile())
	clock := newFakeClock(at)

	plans.EXPECT().GeneratePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(shortPlan(), nil)

	c := session.NewController(store, plans, clock, opts())
	run(t, c)

	_, err := c.Start(ctx)
	require.NoError(t, err)
	s, err := c.ValidateSet(ctx, 140, 8)
	require.NoError(t, err)
	require.Equal(t, 140.0, s.Profile.PersonalRecords["Squat"].Weight)

	s, err = c.Abandon(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhasePreSession, s.Phase)
	assert.Equal(t, 100.0, s.Profile.PersonalRecords["Squat"].Weight)
	assert.Equal(t, 0, s.Recorder.Count())
	assert.Equal(t, 0, clock.Active())

	stored, err := store.Load(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.PersonalRecords["Squat"].Weight)
	assert.Empty(t, stored.Sessions)

	_, err = c.Skip(ctx)
	require.ErrorIs(t, err, session.ErrInvalidTransition)
}

func TestController_StoppedAfterRunReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := session.NewController(storage.NewMemoryStore(testProfile()), nil, newFakeClock(at), opts())
	require.NoError(t, c.Prepare(ctx))

	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	_, err := c.Start(ctx)
	require.NoError(t, err)

	cancel()
	<-c.Done()
	require.NoError(t, <-errc)

	_, err = c.Skip(context.Background())
	require.ErrorIs(t, err, session.ErrStopped)
}

func TestController_RunRequiresPrepare(t *testing.T) {
	c := session.NewController(storage.NewMemoryStore(), nil, newFakeClock(at), opts())
	require.ErrorIs(t, c.Run(t.Context()), session.ErrNotPrepared)

	_, err := c.State(t.Context())
	require.ErrorIs(t, err, session.ErrStopped)
}

func TestController_PrepareUnknownProfile(t *testing.T) {
	c := session.NewController(storage.NewMemoryStore(), nil, newFakeClock(at), opts())
	err := c.Prepare(t.Context())
	require.ErrorIs(t, err, storage.ErrProfileNotFound)
}

func TestController_AbandonedSessionCannotRestart(t *testing.T) {
	ctx := t.Context()
	c := session.NewController(storage.NewMemoryStore(testProfile()), nil, newFakeClock(at), opts())
	run(t, c)

	_, err := c.Start(ctx)
	require.NoError(t, err)
	s, err := c.Abandon(ctx)
	require.NoError(t, err)
	require.Equal(t, session.PhasePreSession, s.Phase)

	_, err = c.Start(ctx)
	require.ErrorIs(t, err, session.ErrNotPrepared)
	require.ErrorIs(t, c.Prepare(ctx), session.ErrRunning)

	s, err = c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhasePreSession, s.Phase)
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/adhan-clock/internal/audio"
	"github.com/smokyabdulrahman/adhan-clock/internal/cache"
	"github.com/smokyabdulrahman/adhan-clock/internal/clock"
	"github.com/smokyabdulrahman/adhan-clock/internal/countdown"
	"github.com/smokyabdulrahman/adhan-clock/internal/notify"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

const (
	// DefaultTick is the countdown cadence.
	DefaultTick = time.Second
	// DefaultClassifyEvery is the window-highlight cadence.
	DefaultClassifyEvery = 30 * time.Second

	notifyTimeout = 5 * time.Second
)

// Options are the user's settings for a run.
type Options struct {
	// Latitude and Longitude skip detection when either is non-zero.
	Latitude  float64
	Longitude float64
	// City and Country are used when no coordinates are given.
	City    string
	Country string

	Method int // negative lets the provider choose
	School int // negative lets the provider choose

	TimeFormat string
	Locale     prayer.Locale

	Tick          time.Duration
	ClassifyEvery time.Duration
}

func (o Options) hasCoordinates() bool {
	return o.Latitude != 0 || o.Longitude != 0
}

// Renderer draws a snapshot of the state.
type Renderer interface {
	Render(Snapshot) error
}

// Deps are the scheduler's collaborators. Cache and Notifier may be nil.
type Deps struct {
	Clock    clock.Clock
	Locator  Locator
	Geocoder Geocoder
	Source   ScheduleSource
	Player   audio.Player
	Notifier notify.Notifier
	Renderer Renderer
	Cache    *cache.Cache
	Log      zerolog.Logger
}

// failureReporter is implemented by players that report asynchronous exits.
type failureReporter interface {
	Failures() <-chan error
}

// Scheduler is the single owner of State.
type Scheduler struct {
	opts     Options
	clock    clock.Clock
	fetcher  *fetcher
	player   audio.Player
	notifier notify.Notifier
	renderer Renderer
	log      zerolog.Logger

	state    State
	results  chan fetchResult
	commands chan Command
	failures <-chan error
}

// New wires a scheduler. Nothing runs until Run is called.
func New(opts Options, deps Deps) *Scheduler {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.ClassifyEvery <= 0 {
		opts.ClassifyEvery = DefaultClassifyEvery
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "12h"
	}
	if opts.Locale == "" {
		opts.Locale = prayer.English
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Cache == nil {
		deps.Cache = cache.New()
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}

	s := &Scheduler{
		opts:     opts,
		clock:    deps.Clock,
		player:   deps.Player,
		notifier: deps.Notifier,
		renderer: deps.Renderer,
		log:      deps.Log,
		results:  make(chan fetchResult, 1),
		commands: make(chan Command, 8),
		fetcher: &fetcher{
			opts:     opts,
			locator:  deps.Locator,
			geocoder: deps.Geocoder,
			source:   deps.Source,
			cache:    deps.Cache,
			log:      deps.Log,
		},
	}
	s.state.Method = opts.Method
	s.state.School = opts.School
	if fr, ok := deps.Player.(failureReporter); ok {
		s.failures = fr.Failures()
	}
	return s
}

// Send delivers a command to the running loop. It gives up when ctx is done.
func (s *Scheduler) Send(ctx context.Context, cmd Command) error {
	select {
	case s.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the first fetch and processes events until ctx is canceled or a
// quit command arrives.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.shutdown()

	tick := time.NewTicker(s.opts.Tick)
	defer tick.Stop()
	classify := time.NewTicker(s.opts.ClassifyEvery)
	defer classify.Stop()

	s.log.Info().Int("method", s.state.Method).Msg("adhan clock started")
	s.refresh(ctx, true)
	s.render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			s.onTick(ctx)
		case <-classify.C:
			s.onClassify(ctx)
		case res := <-s.results:
			s.apply(res)
		case err := <-s.failures:
			s.state.setNotice(NoticePlayback, fmt.Sprintf("Adhan playback failed: %v", err))
		case cmd := <-s.commands:
			if cmd.Kind == CmdQuit {
				s.log.Info().Msg("quit requested")
				return nil
			}
			s.handle(ctx, cmd)
		}
		s.render()
	}
}

func (s *Scheduler) shutdown() {
	if s.state.cancel != nil {
		s.state.cancel()
		s.state.cancel = nil
	}
	if s.player != nil {
		if err := s.player.Stop(); err != nil {
			s.log.Warn().Err(err).Msg("stopping player on exit")
		}
	}
}

// refresh supersedes any in-flight fetch and starts a new one. When
// redetect is false the current location is reused.
func (s *Scheduler) refresh(ctx context.Context, redetect bool) {
	if s.state.cancel != nil {
		s.state.cancel()
	}
	req := s.newRequest(redetect)

	fctx, cancel := context.WithCancel(ctx)
	s.state.cancel = cancel
	s.state.Fetching = true

	s.log.Debug().Str("fetch", req.id).Uint64("generation", req.generation).Bool("redetect", req.known == nil).Msg("fetch started")

	go func() {
		res := s.fetcher.run(fctx, req)
		if fctx.Err() != nil {
			return
		}
		select {
		case s.results <- res:
		case <-fctx.Done():
		}
	}()
}

func (s *Scheduler) newRequest(redetect bool) fetchRequest {
	redetect = redetect || s.state.redetectPending
	s.state.redetectPending = redetect
	s.state.generation++
	req := fetchRequest{
		generation: s.state.generation,
		id:         newFetchID(),
		now:        s.clock.Now(),
		method:     s.state.Method,
		school:     s.state.School,
	}
	if !redetect && s.state.Schedule != nil {
		loc := s.state.Location
		req.known = &loc
	}
	return req
}

// Once runs a single fetch in the calling goroutine and returns the
// resulting snapshot. It is for one-shot commands and must not be mixed
// with Run.
func (s *Scheduler) Once(ctx context.Context) Snapshot {
	s.apply(s.fetcher.run(ctx, s.newRequest(true)))
	return s.Snapshot()
}

// apply installs a fetch result. Results from superseded fetches are dropped.
func (s *Scheduler) apply(res fetchResult) {
	if res.generation != s.state.generation {
		s.log.Debug().Str("fetch", res.id).Uint64("generation", res.generation).Msg("discarding stale fetch")
		return
	}
	if s.state.cancel != nil {
		s.state.cancel()
		s.state.cancel = nil
	}

	st := &s.state
	st.Fetching = false
	st.redetectPending = false
	st.Location = res.location
	st.Place = res.place
	st.Schedule = res.schedule
	st.Epoch = res.epoch

	if res.locationFallback {
		st.setNotice(NoticeLocation, msgLocationFallback)
	} else {
		st.clearNotice(NoticeLocation)
	}
	if res.scheduleFallback {
		st.setNotice(NoticeSchedule, msgScheduleFallback)
	} else {
		st.clearNotice(NoticeSchedule)
	}

	s.resolve()
	s.classify()
}

// resolve replaces the countdown for the current schedule.
func (s *Scheduler) resolve() {
	st := &s.state
	now := s.clock.Now()
	minutes := int(clock.SecondsSince(st.Epoch, now) / 60)

	next, err := prayer.Resolve(st.Schedule, minutes)
	if err != nil {
		s.log.Warn().Err(err).Msg("no countdown")
		st.HasNext = false
		st.Countdown = nil
		st.Reading = countdown.Reading{}
		return
	}

	st.Next = next
	st.HasNext = true
	st.Countdown = countdown.New(next)
	st.Reading = st.Countdown.Tick(clock.SecondsSince(st.Epoch, now))
	s.log.Info().
		Str("prayer", next.Prayer.String()).
		Bool("tomorrow", next.Tomorrow()).
		Int64("remaining_s", st.Reading.Remaining).
		Msg("next prayer resolved")
}

func (s *Scheduler) onTick(ctx context.Context) {
	st := &s.state
	if st.Countdown == nil {
		return
	}
	st.Reading = st.Countdown.Tick(clock.SecondsSince(st.Epoch, s.clock.Now()))
	if st.Reading.Arrived {
		s.arrive(ctx, st.Countdown.Prayer())
	}
}

// arrive plays the adhan, publishes the event and refetches so the next
// prayer gets a fresh countdown.
func (s *Scheduler) arrive(ctx context.Context, id prayer.ID) {
	now := s.clock.Now()
	s.log.Info().Str("prayer", id.String()).Msg("prayer time arrived")

	s.play(ctx)

	arrival := notify.NewArrival(
		id.String(),
		prayer.Label(id, s.opts.Locale),
		s.state.Schedule.Display(id, s.opts.TimeFormat, s.opts.Locale),
		s.state.Place,
		now,
	)
	go func() {
		nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(nctx, arrival); err != nil {
			s.log.Warn().Err(err).Str("prayer", arrival.Prayer).Msg("arrival notification failed")
		}
	}()

	s.refresh(ctx, false)
}

func (s *Scheduler) play(ctx context.Context) {
	if s.player == nil {
		return
	}
	if err := s.player.Play(ctx); err != nil {
		s.log.Error().Err(err).Msg("adhan playback")
		s.state.setNotice(NoticePlayback, fmt.Sprintf("Adhan playback failed: %v", err))
		return
	}
	s.state.clearNotice(NoticePlayback)
}

func (s *Scheduler) onClassify(ctx context.Context) {
	st := &s.state
	if st.Schedule == nil {
		return
	}
	now := s.clock.Now()
	if !st.Fetching && !sameDay(st.Epoch, now) {
		s.log.Info().Msg("date changed, refetching")
		s.refresh(ctx, false)
	}
	s.classify()
}

func (s *Scheduler) classify() {
	st := &s.state
	if st.Schedule == nil || st.Schedule.Empty() {
		st.InWindow = false
		return
	}
	st.Current, st.InWindow = prayer.Classify(st.Schedule, clock.MinutesOfDay(s.clock.Now()))
}

func (s *Scheduler) handle(ctx context.Context, cmd Command) {
	st := &s.state
	switch cmd.Kind {
	case CmdRefresh:
		s.log.Info().Msg("location refresh requested")
		s.refresh(ctx, true)
	case CmdSetMethod:
		s.log.Info().Int("method", cmd.Method).Msg("calculation method changed")
		st.Method = cmd.Method
		st.setNotice(NoticeInfo, methodNotice(cmd.Method))
		s.refresh(ctx, false)
	case CmdPlay:
		if s.player == nil {
			st.setNotice(NoticeInfo, msgNoPlayer)
			return
		}
		s.play(ctx)
	case CmdStop:
		if s.player == nil {
			return
		}
		if err := s.player.Stop(); err != nil {
			s.log.Warn().Err(err).Msg("stopping adhan")
		}
		st.clearNotice(NoticePlayback)
	case CmdShowTime:
		label := prayer.Label(cmd.Prayer, s.opts.Locale)
		st.setNotice(NoticeInfo, fmt.Sprintf("%s: %s", label, st.Schedule.Display(cmd.Prayer, s.opts.TimeFormat, s.opts.Locale)))
	}
}

func (s *Scheduler) render() {
	if s.renderer == nil {
		return
	}
	if err := s.renderer.Render(s.Snapshot()); err != nil {
		s.log.Debug().Err(err).Msg("render failed")
	}
}

// Snapshot returns a copy of the current state for display. It must be
// called from the scheduler goroutine or before Run.
func (s *Scheduler) Snapshot() Snapshot {
	return s.state.snapshot(s.clock.Now(), s.opts.TimeFormat, s.opts.Locale)
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

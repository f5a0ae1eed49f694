package pollstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/statelab/pollstate/internal/core"
	"github.com/statelab/pollstate/internal/extensibility"
	"github.com/statelab/pollstate/internal/primitives"
	"github.com/statelab/pollstate/internal/production"
)

var (
	ErrAlreadyStarted = errors.New("loop already started")
	ErrNotStarted     = errors.New("loop not started")
)

// DefaultInterval is the poll cadence used when Config.Interval is zero.
const DefaultInterval = primitives.DefaultInterval

// Pollable is the loop-facing surface of a cell. *Cell[T] satisfies it;
// hosts may attach their own implementations.
type Pollable interface {
	Name() string
	Phase() Phase
	Commits() uint64
	Poll(tick uint64) (View, bool)
}

// CommitRecord captures a single committed render, as retained by the
// loop's journal.
type CommitRecord = core.CommitRecord

// Config configures a poll loop.
type Config struct {
	// Interval is the fixed tick cadence. Zero means DefaultInterval (50ms).
	Interval time.Duration
	// JournalSize bounds the in-memory commit journal. Zero means the
	// package default; negative disables retention.
	JournalSize int
	// Clock supplies tick timing. Nil means the system clock.
	Clock extensibility.Clock
	// Logger receives lifecycle and commit logs. Nil means no logging.
	Logger *zap.Logger
	// Hub, when non-nil, receives a CommitNotice after every commit.
	Hub *Hub
}

// LoadConfig reads loop configuration from a YAML file. Clock, Logger and
// Hub are runtime collaborators and are set on the returned Config by the
// caller.
func LoadConfig(path string) (Config, error) {
	lc, err := primitives.LoadLoopConfig(path)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Interval:    time.Duration(lc.Interval),
		JournalSize: lc.JournalSize,
	}, nil
}

// Loop polls attached cells on a fixed interval and commits divergent
// pending values. A cell whose pending value equals its current value costs
// nothing on a tick: no commit, no render.
type Loop struct {
	interval time.Duration
	clock    extensibility.Clock
	logger   *zap.Logger
	hub      *production.Hub

	registry *core.Registry
	journal  *core.Journal
	vis      production.StatusVisualizer

	mu      sync.Mutex
	tickNum uint64
	started bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewLoop creates a loop from cfg, applying defaults for zero fields.
func NewLoop(cfg Config) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.JournalSize == 0 {
		cfg.JournalSize = primitives.DefaultJournalSize
	}
	if cfg.Clock == nil {
		cfg.Clock = extensibility.SystemClock
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Loop{
		interval: cfg.Interval,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		hub:      cfg.Hub,
		registry: core.NewRegistry(),
		journal:  core.NewJournal(cfg.JournalSize),
	}
}

// Attach registers cells with the loop. Names must be unique; cells are
// polled in attachment order. Attaching while the loop runs is allowed and
// takes effect on the next tick.
func (l *Loop) Attach(cells ...Pollable) error {
	for _, cell := range cells {
		if err := l.registry.Register(cell); err != nil {
			return err
		}
	}
	return nil
}

// Cell returns the attached cell with the given name.
func (l *Loop) Cell(name string) (Pollable, error) {
	return l.registry.Get(name)
}

// Start spawns the tick goroutine. The loop ticks every interval until ctx
// is cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.stopped = make(chan struct{})
	l.started = true

	ticker := l.clock.NewTicker(l.interval)
	go l.run(runCtx, ticker)

	l.logger.Info("poll loop started",
		zap.Duration("interval", l.interval),
		zap.Int("cells", l.registry.Len()))
	return nil
}

// Stop cancels the tick goroutine and waits for it to exit.
func (l *Loop) Stop() error {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return ErrNotStarted
	}
	cancel, stopped := l.cancel, l.stopped
	l.mu.Unlock()

	cancel()
	<-stopped

	l.mu.Lock()
	l.started = false
	l.mu.Unlock()

	l.logger.Info("poll loop stopped", zap.Uint64("ticks", l.TickCount()))
	return nil
}

// run is the tick goroutine.
func (l *Loop) run(ctx context.Context, ticker extensibility.Ticker) {
	defer close(l.stopped)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			l.Tick()
		}
	}
}

// Tick executes one poll pass over all attached cells. Normally invoked by
// the tick goroutine; hosts that own their own scheduler call it directly
// instead of Start.
func (l *Loop) Tick() {
	l.mu.Lock()
	tick := l.tickNum + 1
	l.mu.Unlock()

	for _, cell := range l.registry.All() {
		l.pollCell(tick, cell)
	}

	// Published after the pass so TickCount reflects completed ticks.
	l.mu.Lock()
	l.tickNum = tick
	l.mu.Unlock()
}

// pollCell polls a single cell with panic isolation: a panicking render
// function is logged and the remaining cells still get their tick.
func (l *Loop) pollCell(tick uint64, cell core.Pollable) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("render panic",
				zap.Uint64("tick", tick),
				zap.String("cell", cell.Name()),
				zap.Any("panic", r))
		}
	}()

	view, committed := cell.Poll(tick)
	if !committed {
		return
	}

	now := l.clock.Now()
	l.journal.Record(core.CommitRecord{Tick: tick, Cell: cell.Name(), View: view, At: now})
	if l.hub != nil {
		l.hub.Publish(production.CommitNotice{Tick: tick, Cell: cell.Name(), View: view, At: now})
	}
	l.logger.Debug("commit",
		zap.Uint64("tick", tick),
		zap.String("cell", cell.Name()))
}

// Hub returns the commit hub, or nil when none was configured.
func (l *Loop) Hub() *Hub {
	return l.hub
}

// TickCount returns the number of completed ticks.
func (l *Loop) TickCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tickNum
}

// RecentCommits returns the retained commit journal, oldest first.
func (l *Loop) RecentCommits() []CommitRecord {
	return l.journal.Recent()
}

// TotalCommits returns the number of commits over the loop's lifetime.
func (l *Loop) TotalCommits() uint64 {
	return l.journal.Total()
}

// Status renders a plain-text table of attached cells: name, phase, commit
// count, last view.
func (l *Loop) Status() string {
	cells := l.registry.All()
	statuses := make([]production.CellStatus, 0, len(cells))
	for _, cell := range cells {
		status := production.CellStatus{
			Name:    cell.Name(),
			Phase:   cell.Phase(),
			Commits: cell.Commits(),
		}
		if lv, ok := cell.(interface{ LastView() View }); ok {
			status.LastView = lv.LastView()
		}
		statuses = append(statuses, status)
	}
	return l.vis.Render(l.TickCount(), statuses)
}

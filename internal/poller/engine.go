package poller

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bosswatch/bosswatch/internal/activation"
	"github.com/bosswatch/bosswatch/internal/logging"
	"github.com/bosswatch/bosswatch/internal/model"
	"github.com/bosswatch/bosswatch/internal/notify"
)

type State string

const (
	StateIdle    State = "idle"
	StatePaused  State = "paused"
	StateActive  State = "active"
	StateStopped State = "stopped"
)

// Notice is one fired notification: at most one per event per tick, at most
// one per (event, occurrence, threshold) ever.
type Notice struct {
	EventID    string
	EventName  string
	Threshold  int
	Occurrence time.Time
	Title      string
	Body       string
}

// Status is the rolling "next upcoming spawn" line. The newest status always
// wins; there is no queue.
type Status struct {
	Upcoming  bool
	EventName string
	NextAt    time.Time
	Remaining time.Duration
	Message   string
}

// Notifier delivers a desktop notification. Emit is called on its own
// goroutine; a slow or failing sink never delays the next tick.
type Notifier interface {
	Emit(title, body string) error
}

// ActivationSource yields one consistent activation snapshot per tick.
type ActivationSource interface {
	Snapshot() activation.Set
}

type Config struct {
	Interval   time.Duration
	Window     time.Duration
	Retention  time.Duration
	DailyReset bool
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Engine drives the poll loop. The event catalog is read-only for the run;
// activation and ledger are the only shared state.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	events   []model.Event
	src      ActivationSource
	gate     notify.Gate
	ledger   *notify.Ledger
	notifier Notifier

	notices chan Notice
	status  chan Status
	state   State
	stopCh  chan struct{}
	doneCh  chan struct{}
	resetd  *cron.Cron
	dropped uint64
	now     func() time.Time
}

func NewEngine(cfg Config, events []model.Event, src ActivationSource, ledger *notify.Ledger, notifier Notifier) *Engine {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		cfg:      cfg,
		events:   events,
		src:      src,
		gate:     notify.NewGate(cfg.Window),
		ledger:   ledger,
		notifier: notifier,
		notices:  make(chan Notice, 16),
		status:   make(chan Status, 1),
		state:    StateIdle,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		now:      now,
	}
}

func (e *Engine) Notices() <-chan Notice { return e.notices }

func (e *Engine) StatusUpdates() <-chan Status { return e.status }

func (e *Engine) Ledger() *notify.Ledger { return e.ledger }

func (e *Engine) Dropped() uint64 { return atomic.LoadUint64(&e.dropped) }

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Start launches the loop, Active or Paused per the caller. No-op unless Idle.
func (e *Engine) Start(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return
	}
	if active {
		e.state = StateActive
	} else {
		e.state = StatePaused
	}
	if e.cfg.DailyReset {
		e.resetd = cron.New()
		if _, err := e.resetd.AddFunc("0 0 * * *", func() {
			e.ledger.Clear()
			logging.Info("daily ledger reset")
		}); err != nil {
			logging.Error("daily reset schedule failed", err)
			e.resetd = nil
		} else {
			e.resetd.Start()
		}
	}
	go e.loop()
}

// Pause keeps the loop ticking but stops gate evaluation; status updates
// continue. Windows that close while paused are permanently missed.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateActive {
		e.state = StatePaused
	}
}

func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePaused {
		e.state = StateActive
	}
}

// Stop is idempotent and safe from any state. It returns after the loop
// goroutine has exited, so an in-flight tick's ledger writes are complete.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state == StateStopped {
		e.mu.Unlock()
		return
	}
	running := e.state == StateActive || e.state == StatePaused
	e.state = StateStopped
	if e.resetd != nil {
		e.resetd.Stop()
		e.resetd = nil
	}
	close(e.stopCh)
	e.mu.Unlock()

	if running {
		<-e.doneCh
	}
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.notices)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.tick(e.now())
	for {
		select {
		case <-ticker.C:
			e.tick(e.now())
		case <-e.stopCh:
			return
		}
	}
}

// tick runs one evaluation pass. One bad event cannot block the others.
func (e *Engine) tick(now time.Time) {
	snap := e.src.Snapshot()
	e.ledger.Prune(now, e.cfg.Retention)

	active := e.State() == StateActive
	thresholds := snap.EnabledThresholds()

	var nextName string
	var nextAt time.Time
	for _, ev := range e.events {
		if !snap.Events[ev.ID] {
			continue
		}
		occurrence, err := ev.NextOccurrence(now)
		if err != nil {
			logging.Error("occurrence resolution failed", err, "event", ev.ID)
			continue
		}
		if nextAt.IsZero() || occurrence.Before(nextAt) {
			nextAt = occurrence
			nextName = ev.Name
		}
		if !active || len(thresholds) == 0 {
			continue
		}
		minutes, ok := e.gate.FirstDue(ev.ID, occurrence, now, thresholds, e.ledger)
		if !ok {
			continue
		}
		e.dispatch(buildNotice(ev, occurrence, minutes, now))
	}

	e.publishStatus(buildStatus(nextName, nextAt, now))
}

// dispatch hands the notice to the sink on its own goroutine and to the UI
// channel without blocking; a full channel drops with a counter, never stalls.
func (e *Engine) dispatch(n Notice) {
	logging.Info("notification fired", "event", n.EventID, "threshold", n.Threshold, "occurrence", n.Occurrence.Format(time.RFC3339))
	if e.notifier != nil {
		go func() {
			if err := e.notifier.Emit(n.Title, n.Body); err != nil {
				logging.Error("notification dispatch failed", err, "event", n.EventID)
			}
		}()
	}
	select {
	case e.notices <- n:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
}

func (e *Engine) publishStatus(s Status) {
	for {
		select {
		case e.status <- s:
			return
		default:
		}
		select {
		case <-e.status: // discard the stale status
		default:
		}
	}
}

func buildNotice(ev model.Event, occurrence time.Time, thresholdMinutes int, now time.Time) Notice {
	remaining := int(occurrence.Sub(now).Minutes())
	var body string
	if remaining > 0 {
		body = fmt.Sprintf("%s spawns in %d minutes (at %s)", ev.Name, remaining, occurrence.Format("15:04"))
	} else {
		body = fmt.Sprintf("%s is spawning now (%s)", ev.Name, occurrence.Format("15:04"))
	}
	return Notice{
		EventID:    ev.ID,
		EventName:  ev.Name,
		Threshold:  thresholdMinutes,
		Occurrence: occurrence,
		Title:      "Boss incoming: " + ev.Name,
		Body:       body,
	}
}

func buildStatus(name string, at, now time.Time) Status {
	if at.IsZero() {
		return Status{Message: "no upcoming events"}
	}
	remaining := at.Sub(now)
	return Status{
		Upcoming:  true,
		EventName: name,
		NextAt:    at,
		Remaining: remaining,
		Message:   fmt.Sprintf("next: %s at %s (%s)", name, at.Format("Mon 15:04"), FormatRemaining(remaining)),
	}
}

// FormatRemaining renders a countdown as "2d 03h 04m" / "03h 04m" / "now!".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "now!"
	}
	total := int(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, hours, minutes)
	}
	return fmt.Sprintf("%02dh %02dm", hours, minutes)
}

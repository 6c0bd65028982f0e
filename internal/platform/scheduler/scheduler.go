// Package scheduler runs registered callbacks at fixed times of day. It is a
// thin cooperative loop: one goroutine checks the wall clock on an interval
// and fires each trigger at most once per calendar day, so the owning process
// stays resident without any ambient global state.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// TriggerTime is a wall-clock time of day.
type TriggerTime struct {
	Hour   int
	Minute int
}

// ParseTriggerTime parses "HH:MM" in 24h format.
func ParseTriggerTime(s string) (TriggerTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TriggerTime{}, fmt.Errorf("invalid trigger time %q, want HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TriggerTime{}, fmt.Errorf("invalid trigger hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TriggerTime{}, fmt.Errorf("invalid trigger minute in %q", s)
	}

	return TriggerTime{Hour: hour, Minute: minute}, nil
}

func (t TriggerTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TriggerTime) minuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// Trigger is a named callback armed at a fixed time of day.
type Trigger struct {
	Name string
	At   TriggerTime
	Run  func(ctx context.Context)
}

// Scheduler owns the registered triggers for the lifetime of the process.
type Scheduler struct {
	logger        *slog.Logger
	checkInterval time.Duration
	now           func() time.Time
	triggers      []Trigger
	lastRunDate   map[string]string // trigger name -> YYYY-MM-DD last fired
}

// Option is a functional option for configuring the scheduler.
type Option func(*Scheduler)

// WithCheckInterval overrides how often the clock is checked.
func WithCheckInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.checkInterval = d
	}
}

// WithClock replaces the wall clock (used by tests).
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a scheduler with no triggers armed.
func New(logger *slog.Logger, options ...Option) *Scheduler {
	s := &Scheduler{
		logger:        logger,
		checkInterval: time.Minute,
		now:           time.Now,
		lastRunDate:   make(map[string]string),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Register arms a trigger. Not safe to call after Run has started.
func (s *Scheduler) Register(name string, at TriggerTime, run func(ctx context.Context)) {
	s.triggers = append(s.triggers, Trigger{Name: name, At: at, Run: run})
}

// Run blocks until ctx is cancelled, firing each trigger at most once per
// day at its configured time. Triggers whose time already passed today are
// not fired retroactively on startup. Each callback runs to completion on
// the scheduler goroutine before the next check.
func (s *Scheduler) Run(ctx context.Context) {
	start := s.now()
	for _, t := range s.triggers {
		if minuteOf(start) >= t.At.minuteOfDay() {
			s.lastRunDate[t.Name] = dayOf(start)
		}
		s.logger.Info("Trigger armed",
			slog.String("trigger", t.Name),
			slog.String("at", t.At.String()),
		)
	}

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopping", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			s.fireDue(ctx)
		}
	}
}

func (s *Scheduler) fireDue(ctx context.Context) {
	now := s.now()
	today := dayOf(now)

	for _, t := range s.triggers {
		if s.lastRunDate[t.Name] == today || minuteOf(now) < t.At.minuteOfDay() {
			continue
		}
		s.lastRunDate[t.Name] = today

		s.logger.Info("Trigger firing", slog.String("trigger", t.Name))
		t.Run(ctx)
	}
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

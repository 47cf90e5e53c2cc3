package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"MarketPulse/internal/notifier"
	"MarketPulse/internal/pipeline"
)

// Runner performs one report run.
type Runner interface {
	Run(ctx context.Context) pipeline.Result
}

// Scheduler triggers report runs from cron and from chat commands. Runs are
// serialized; a trigger that arrives while a run is in progress is dropped.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Ctx    context.Context

	running sync.Mutex
	log     zerolog.Logger
}

// NewScheduler creates a Scheduler whose cron specs include a seconds field
// and are evaluated in loc.
func NewScheduler(ctx context.Context, runner Runner, loc *time.Location, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Runner: runner,
		Ctx:    ctx,
		log:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the daily report job.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	s.log.Info().Str("cron", spec).Msg("report task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes a report run immediately. It returns false when another
// run is already in progress.
func (s *Scheduler) RunNow(ctx context.Context) (pipeline.Result, bool) {
	if !s.running.TryLock() {
		s.log.Warn().Msg("report run already in progress, skipping")
		return pipeline.Result{}, false
	}
	defer s.running.Unlock()
	return s.Runner.Run(ctx), true
}

func (s *Scheduler) reportTask() {
	s.log.Info().Msg("running scheduled report")
	s.RunNow(s.Ctx)
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	switch cmd {
	case "/report", "/update":
		if _, ok := s.RunNow(ctx); !ok {
			return "⏳ A market update is already being prepared."
		}
		return ""
	default:
		return notifier.FormatHelp()
	}
}

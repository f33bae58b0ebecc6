// internal/scheduler/scheduler.go

// Package scheduler runs the posting workflow on a cron expression without
// any external trigger. It is optional; deployments behind a platform cron
// leave the expression empty and use the HTTP endpoint instead.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"

	"linkedin-autoposter/internal/common/logger"
	"linkedin-autoposter/internal/workflow"
)

// WorkflowRunner executes one posting run.
type WorkflowRunner interface {
	Run(ctx context.Context, trigger string) *workflow.Result
}

type Scheduler struct {
	cronExpr string
	runner   WorkflowRunner
	logger   logger.Logger
	cron     *cron.Cron
}

// New validates the cron expression up front so a bad schedule fails at
// startup, not at first fire.
func New(cronExpr string, runner WorkflowRunner, log logger.Logger) (*Scheduler, error) {
	if cronExpr == "" {
		return nil, errors.New("cron expression is required")
	}
	if _, err := cron.ParseStandard(cronExpr); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return &Scheduler{
		cronExpr: cronExpr,
		runner:   runner,
		logger: log.With(map[string]interface{}{
			"component": "scheduler",
			"cron":      cronExpr,
		}),
	}, nil
}

func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", nil)

	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	if _, err := s.cron.AddFunc(s.cronExpr, s.run); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) run() {
	s.logger.Info("scheduled run triggered", nil)

	result := s.runner.Run(context.Background(), workflow.TriggerSchedule)
	if !result.Success {
		s.logger.WithError(result.Err).Error("scheduled run failed", nil)
	}
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler", nil)

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

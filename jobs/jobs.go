package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=jobs.go -destination=mock_jobs_test.go -package=jobs

const jobTimeout = 5 * time.Minute

type ReminderSender interface {
	SendDueReminders(ctx context.Context) (int, error)
}

type OverdueSweeper interface {
	RefreshOverdue(ctx context.Context) (int, error)
}

type Schedule struct {
	FollowUpReminders string
	OverdueSweep      string
}

func RunFollowUpReminders(ctx context.Context, s ReminderSender) {
	log.Info().Msg("Running follow-up reminder job...")
	sent, err := s.SendDueReminders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error from SendDueReminders")
		return
	}
	log.Info().Int("sent", sent).Msg("follow-up reminder job finished")
}

func RunOverdueSweep(ctx context.Context, s OverdueSweeper) {
	log.Info().Msg("Running overdue bill sweep...")
	updated, err := s.RefreshOverdue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error from RefreshOverdue")
		return
	}
	log.Info().Int("updated", updated).Msg("overdue bill sweep finished")
}

func withTimeout(run func(ctx context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		run(ctx)
	}
}

/*
* Register the reminder and overdue jobs on their cron specs
* Start the scheduler; the caller stops it on shutdown
 */
func StartScheduler(sched Schedule, reminders ReminderSender, bills OverdueSweeper) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))

	if _, err := c.AddFunc(sched.FollowUpReminders, withTimeout(func(ctx context.Context) {
		RunFollowUpReminders(ctx, reminders)
	})); err != nil {
		log.Error().Err(err).Str("spec", sched.FollowUpReminders).Msg("Error from scheduling follow-up reminders")
		return nil, err
	}
	if _, err := c.AddFunc(sched.OverdueSweep, withTimeout(func(ctx context.Context) {
		RunOverdueSweep(ctx, bills)
	})); err != nil {
		log.Error().Err(err).Str("spec", sched.OverdueSweep).Msg("Error from scheduling overdue sweep")
		return nil, err
	}

	c.Start()
	log.Info().
		Str("reminders", sched.FollowUpReminders).
		Str("overdue", sched.OverdueSweep).
		Msg("scheduler started")
	return c, nil
}

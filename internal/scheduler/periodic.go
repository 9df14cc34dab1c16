package scheduler

import (
	"fmt"

	"atlascasa_backend/platform/config"
	"atlascasa_backend/platform/logger"

	"github.com/hibiken/asynq"
)

const engagementPruneSchedule = "@every 24h"

// Periodic enqueues recurring maintenance tasks on a fixed cadence.
type Periodic struct {
	scheduler *asynq.Scheduler
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	sched := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error("failed to enqueue periodic task", "error", err)
			}
		},
	})

	if _, err := sched.Register(engagementPruneSchedule, NewEngagementPruneTask(), asynq.Queue(queue)); err != nil {
		return nil, err
	}

	return &Periodic{scheduler: sched}, nil
}

func (p *Periodic) Run() error {
	return p.scheduler.Run()
}

func (p *Periodic) Shutdown() {
	p.scheduler.Shutdown()
}

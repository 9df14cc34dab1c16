package scheduler

import (
	"context"
	"fmt"
	"time"

	automationrepo "atlascasa_backend/internal/automation/repository"
	campaignservice "atlascasa_backend/internal/campaigns/service"
	engagementrepo "atlascasa_backend/internal/engagement/repository"
	"atlascasa_backend/platform/config"
	"atlascasa_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Abandoned visitor logs older than this are pruned wholesale.
const engagementRetention = 90 * 24 * time.Hour

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	engagement *engagementrepo.Repository
	automation *automationrepo.Repository
	campaigns  *campaignservice.Service
	log        *logger.Logger
}

func NewWorker(
	cfg config.SchedulerConfig,
	engagement *engagementrepo.Repository,
	automation *automationrepo.Repository,
	campaigns *campaignservice.Service,
	log *logger.Logger,
) (*Worker, error) {
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

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		engagement: engagement,
		automation: automation,
		campaigns:  campaigns,
		log:        log,
	}

	mux.HandleFunc(TaskEngagementPrune, w.handleEngagementPrune)
	mux.HandleFunc(TaskCampaignSend, w.handleCampaignSend)

	return w, nil
}

func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleEngagementPrune(ctx context.Context, _ *asynq.Task) error {
	pruned, err := w.engagement.Prune(ctx, time.Now().Add(-engagementRetention))
	if err != nil {
		return err
	}
	if err := w.automation.TrimRuns(ctx); err != nil {
		return err
	}

	w.log.Info("engagement prune complete", "eventsPruned", pruned)
	return nil
}

func (w *Worker) handleCampaignSend(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCampaignSendPayload(task)
	if err != nil {
		return err
	}

	campaignID, err := uuid.Parse(payload.CampaignID)
	if err != nil {
		return fmt.Errorf("invalid campaign id %q: %w", payload.CampaignID, err)
	}

	w.log.Info("delivering campaign", "campaignId", campaignID.String())
	return w.campaigns.Deliver(ctx, campaignID)
}

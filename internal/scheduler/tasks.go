package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskEngagementPrune is the event-log retention backstop. The per-write trim
// already bounds each visitor's log; this clears abandoned visitors.
const TaskEngagementPrune = "engagement.prune"

// TaskCampaignSend delivers one email campaign to its audience.
const TaskCampaignSend = "campaigns.send"

type CampaignSendPayload struct {
	CampaignID string `json:"campaignId"`
}

func NewCampaignSendTask(payload CampaignSendPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCampaignSend, data), nil
}

func ParseCampaignSendPayload(task *asynq.Task) (CampaignSendPayload, error) {
	var payload CampaignSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CampaignSendPayload{}, err
	}
	return payload, nil
}

func NewEngagementPruneTask() *asynq.Task {
	return asynq.NewTask(TaskEngagementPrune, nil)
}

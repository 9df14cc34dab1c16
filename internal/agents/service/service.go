package service

import (
	"context"
	"errors"

	"atlascasa_backend/internal/agents/repository"
	"atlascasa_backend/internal/agents/transport"
	"atlascasa_backend/platform/phone"

	"github.com/google/uuid"
)

var ErrAgentNotFound = errors.New("agent not found")

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]transport.AgentResponse, error) {
	agents, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return transport.ToAgentResponses(agents), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.AgentResponse, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.AgentResponse{}, ErrAgentNotFound
		}
		return transport.AgentResponse{}, err
	}
	return transport.ToAgentResponse(agent), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreateAgentRequest) (transport.AgentResponse, error) {
	agent, err := s.repo.Create(ctx, repository.CreateAgentParams{
		Name:           req.Name,
		Role:           req.Role,
		Municipalities: req.Municipalities,
		WhatsAppPhone:  phone.NormalizeE164(req.WhatsAppPhone),
		Email:          req.Email,
	})
	if err != nil {
		return transport.AgentResponse{}, err
	}
	return transport.ToAgentResponse(agent), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateAgentRequest) (transport.AgentResponse, error) {
	params := repository.UpdateAgentParams{
		Name:           req.Name,
		Role:           req.Role,
		Municipalities: req.Municipalities,
		Email:          req.Email,
	}
	if req.WhatsAppPhone != nil {
		normalized := phone.NormalizeE164(*req.WhatsAppPhone)
		params.WhatsAppPhone = &normalized
	}

	agent, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.AgentResponse{}, ErrAgentNotFound
		}
		return transport.AgentResponse{}, err
	}
	return transport.ToAgentResponse(agent), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAgentNotFound
	}
	return err
}

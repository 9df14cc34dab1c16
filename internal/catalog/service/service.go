package service

import (
	"context"
	"errors"

	"atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/catalog/transport"
)

var ErrPropertyNotFound = errors.New("property not found")

const defaultFeaturedLimit = 6

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]transport.PropertyResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return transport.ToPropertyResponses(items), nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (transport.PropertyResponse, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.PropertyResponse{}, ErrPropertyNotFound
		}
		return transport.PropertyResponse{}, err
	}
	return transport.ToPropertyResponse(p), nil
}

func (s *Service) ListFeatured(ctx context.Context, limit int) ([]transport.PropertyResponse, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	items, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return transport.ToPropertyResponses(items), nil
}

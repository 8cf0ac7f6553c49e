package service

import (
	"context"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

type schemeService struct {
	schemes repository.SchemeRepository
}

func NewSchemeService(schemes repository.SchemeRepository) SchemeService {
	return &schemeService{schemes: schemes}
}

func (s *schemeService) CreateScheme(ctx context.Context, actor domain.Actor, scheme *domain.Scheme) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if err := scheme.Validate(); err != nil {
		return err
	}
	scheme.IsActive = true
	return s.schemes.Create(ctx, scheme)
}

// UpdateScheme edits the template only. Issued loans keep the rate they were issued at.
func (s *schemeService) UpdateScheme(ctx context.Context, actor domain.Actor, scheme *domain.Scheme) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if err := scheme.Validate(); err != nil {
		return err
	}
	if _, err := s.schemes.GetByID(ctx, scheme.ID); err != nil {
		return err
	}
	return s.schemes.Update(ctx, scheme)
}

func (s *schemeService) GetScheme(ctx context.Context, id int32) (*domain.Scheme, error) {
	return s.schemes.GetByID(ctx, id)
}

func (s *schemeService) ListSchemes(ctx context.Context, activeOnly bool) ([]domain.Scheme, error) {
	return s.schemes.List(ctx, activeOnly)
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"coworkspace/internal/authz"
	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/pagination"
	"coworkspace/internal/repository"

	"github.com/sirupsen/logrus"
)

type SpaceRepository interface {
	Create(ctx context.Context, ws *domain.WorkingSpace) error
	Update(ctx context.Context, ws *domain.WorkingSpace) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.WorkingSpace, error)
	List(ctx context.Context, q repository.SpaceQuery) ([]domain.WorkingSpace, int64, error)
}

// Service manages the working space catalog. Reads are open to any
// authenticated caller; mutations are admin only.
type Service struct {
	spaces SpaceRepository
	guard  *authz.Guard
	log    logrus.FieldLogger
}

func NewService(spaces SpaceRepository, guard *authz.Guard, log logrus.FieldLogger) *Service {
	if guard == nil {
		guard = authz.NewGuard()
	}
	return &Service{spaces: spaces, guard: guard, log: log}
}

type ListResult struct {
	Spaces     []domain.WorkingSpace
	Total      int64
	Pagination pagination.Links
}

func (s *Service) Create(ctx context.Context, identity domain.Identity, req CreateSpaceRequest) (*domain.WorkingSpace, error) {
	if err := s.guard.RequireAdmin(identity); err != nil {
		return nil, err
	}

	ws := &domain.WorkingSpace{
		Name:      req.Name,
		Address:   req.Address,
		Telephone: req.Telephone,
		Schedule:  domain.DefaultWeeklySchedule(),
	}
	if req.Price != nil {
		ws.Price = *req.Price
	}
	if req.Schedule != nil {
		ws.Schedule = *req.Schedule
	}
	if err := validateSpace(ws); err != nil {
		return nil, err
	}

	if err := s.spaces.Create(ctx, ws); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create working space: %w", err)
	}
	s.log.WithFields(logrus.Fields{"working_space_id": ws.ID, "admin_id": identity.UserID}).Info("working space created")
	return ws, nil
}

func (s *Service) Update(ctx context.Context, identity domain.Identity, id int64, req UpdateSpaceRequest) (*domain.WorkingSpace, error) {
	if err := s.guard.RequireAdmin(identity); err != nil {
		return nil, err
	}

	ws, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.Address != nil {
		ws.Address = *req.Address
	}
	if req.Telephone != nil {
		ws.Telephone = *req.Telephone
	}
	if req.Schedule != nil {
		ws.Schedule = *req.Schedule
	}
	if req.Price != nil {
		ws.Price = *req.Price
	}
	if err := validateSpace(ws); err != nil {
		return nil, err
	}

	if err := s.spaces.Update(ctx, ws); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateName
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update working space: %w", err)
	}
	return ws, nil
}

// Delete removes the space together with its bookings.
func (s *Service) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if err := s.guard.RequireAdmin(identity); err != nil {
		return err
	}
	if err := s.spaces.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete working space: %w", err)
	}
	s.log.WithFields(logrus.Fields{"working_space_id": id, "admin_id": identity.UserID}).Info("working space deleted")
	return nil
}

func (s *Service) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.WorkingSpace, error) {
	if err := s.guard.CanAccess(identity, authz.NoOwner, authz.AnyRole...); err != nil {
		return nil, err
	}
	ws, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ws, nil
}

func (s *Service) List(ctx context.Context, identity domain.Identity, p ListParams) (*ListResult, error) {
	if err := s.guard.CanAccess(identity, authz.NoOwner, authz.AnyRole...); err != nil {
		return nil, err
	}
	spaces, total, err := s.spaces.List(ctx, p.Query)
	if err != nil {
		return nil, fmt.Errorf("list working spaces: %w", err)
	}
	return &ListResult{
		Spaces:     spaces,
		Total:      total,
		Pagination: pagination.Build(p.Page, p.Limit, total),
	}, nil
}

func validateSpace(ws *domain.WorkingSpace) error {
	if ws.Name == "" {
		return ErrValidation.WithMessage("Please add a name")
	}
	if ws.Price < 0 {
		return ErrValidation.WithMessage("Price must be a non-negative number")
	}
	if err := ws.Schedule.Validate(); err != nil {
		return ErrValidation.WithMessage("Invalid schedule: " + err.Error())
	}
	return nil
}

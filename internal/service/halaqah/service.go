package halaqah

import (
	"context"

	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
)

type HalaqahServiceImpl struct {
	halaqahRepo  halaqah.HalaqahRepository
	employeeRepo employee.EmployeeRepository
}

func NewHalaqahService(halaqahRepo halaqah.HalaqahRepository, employeeRepo employee.EmployeeRepository) halaqah.HalaqahService {
	return &HalaqahServiceImpl{halaqahRepo: halaqahRepo, employeeRepo: employeeRepo}
}

func (s *HalaqahServiceImpl) CreateHalaqah(ctx context.Context, req halaqah.CreateHalaqahRequest) (halaqah.HalaqahResponse, error) {
	if err := req.Validate(); err != nil {
		return halaqah.HalaqahResponse{}, err
	}

	musyrif, err := s.employeeRepo.GetByID(ctx, req.MusyrifID)
	if err != nil {
		return halaqah.HalaqahResponse{}, halaqah.ErrMusyrifNotFound
	}
	if musyrif.Role != employee.RoleMusyrif {
		return halaqah.HalaqahResponse{}, halaqah.ErrMusyrifNotFound
	}

	created, err := s.halaqahRepo.Create(ctx, halaqah.Halaqah{
		Name:            req.Name,
		MusyrifID:       req.MusyrifID,
		SessionsPerWeek: req.SessionsPerWeek,
		IsActive:        true,
	})
	if err != nil {
		return halaqah.HalaqahResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *HalaqahServiceImpl) GetHalaqah(ctx context.Context, id string) (halaqah.HalaqahResponse, error) {
	h, err := s.halaqahRepo.GetByID(ctx, id)
	if err != nil {
		return halaqah.HalaqahResponse{}, err
	}

	return mapToResponse(h), nil
}

func (s *HalaqahServiceImpl) ListHalaqah(ctx context.Context, activeOnly bool) ([]halaqah.HalaqahResponse, error) {
	list, err := s.halaqahRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]halaqah.HalaqahResponse, 0, len(list))
	for _, h := range list {
		result = append(result, mapToResponse(h))
	}

	return result, nil
}

func (s *HalaqahServiceImpl) UpdateHalaqah(ctx context.Context, req halaqah.UpdateHalaqahRequest) (halaqah.HalaqahResponse, error) {
	if err := req.Validate(); err != nil {
		return halaqah.HalaqahResponse{}, err
	}

	if req.MusyrifID != nil {
		musyrif, err := s.employeeRepo.GetByID(ctx, *req.MusyrifID)
		if err != nil || musyrif.Role != employee.RoleMusyrif {
			return halaqah.HalaqahResponse{}, halaqah.ErrMusyrifNotFound
		}
	}

	if err := s.halaqahRepo.Update(ctx, req); err != nil {
		return halaqah.HalaqahResponse{}, err
	}

	updated, err := s.halaqahRepo.GetByID(ctx, req.ID)
	if err != nil {
		return halaqah.HalaqahResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *HalaqahServiceImpl) DeleteHalaqah(ctx context.Context, id string) error {
	return s.halaqahRepo.Delete(ctx, id)
}

func mapToResponse(h halaqah.Halaqah) halaqah.HalaqahResponse {
	return halaqah.HalaqahResponse{
		ID:              h.ID,
		Name:            h.Name,
		MusyrifID:       h.MusyrifID,
		MusyrifName:     h.MusyrifName,
		SessionsPerWeek: h.SessionsPerWeek,
		IsActive:        h.IsActive,
	}
}

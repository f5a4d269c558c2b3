package machine

import (
	"context"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/pkg/hopper"
)

type (
	// MachineService covers the read-mostly machine catalog. Status changes
	// and service marks go through the allocation coordinator so they land
	// in the operation log.
	MachineService interface {
		Create(ctx context.Context, req domain.CreateMachineRequest, actor domain.Actor) (domain.MachineResponse, error)
		GetByCode(ctx context.Context, code string) (domain.MachineResponse, error)
		List(ctx context.Context, status string) ([]domain.MachineResponse, error)
	}

	machineService struct {
		machineRepository MachineRepository
		hopperRepository  hopper.HopperRepository
	}
)

func NewMachineService(machineRepository MachineRepository, hopperRepository hopper.HopperRepository) MachineService {
	return &machineService{
		machineRepository: machineRepository,
		hopperRepository:  hopperRepository,
	}
}

func (s *machineService) Create(ctx context.Context, req domain.CreateMachineRequest, actor domain.Actor) (domain.MachineResponse, error) {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.MachineResponse{}, domain.ErrUserNotAllowed
	}

	m := &entities.Machine{
		Code:            req.Code,
		Name:            req.Name,
		LocationAddress: req.LocationAddress,
		LocationDetails: req.LocationDetails,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Status:          entities.MachineStatusActive,
	}
	if err := s.machineRepository.Create(ctx, m); err != nil {
		return domain.MachineResponse{}, err
	}
	return s.toResponse(ctx, m), nil
}

func (s *machineService) GetByCode(ctx context.Context, code string) (domain.MachineResponse, error) {
	m, err := s.machineRepository.GetByCode(ctx, code)
	if err != nil {
		return domain.MachineResponse{}, err
	}
	return s.toResponse(ctx, m), nil
}

func (s *machineService) List(ctx context.Context, status string) ([]domain.MachineResponse, error) {
	machines, err := s.machineRepository.List(ctx, status)
	if err != nil {
		return nil, err
	}
	res := make([]domain.MachineResponse, 0, len(machines))
	for i := range machines {
		res = append(res, s.toResponse(ctx, &machines[i]))
	}
	return res, nil
}

func (s *machineService) toResponse(ctx context.Context, m *entities.Machine) domain.MachineResponse {
	installed, _ := s.hopperRepository.CountInstalled(ctx, m.ID)
	return domain.MachineResponse{
		ID:                 m.ID,
		Code:               m.Code,
		Name:               m.Name,
		Status:             string(m.Status),
		Location:           m.DisplayLocation(),
		Latitude:           m.Latitude,
		Longitude:          m.Longitude,
		AssignedOperatorID: m.AssignedOperatorID,
		InstalledHoppers:   int(installed),
		LastServiceAt:      m.LastServiceAt,
	}
}

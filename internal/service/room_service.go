package service

import (
	"context"
	"fmt"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
)

type RoomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

type RoomRequest struct {
	RoomNumber    string  `json:"room_number" validate:"required"`
	TotalBeds     int     `json:"total_beds" validate:"required,gt=0"`
	AvailableBeds int     `json:"available_beds" validate:"gte=0"`
	Image         *string `json:"image,omitempty"`
}

// Create adds a room; status is always derived from the bed count, never
// taken from the request.
func (s *RoomService) Create(ctx context.Context, req RoomRequest) (*domain.Room, error) {
	if req.AvailableBeds > req.TotalBeds {
		return nil, fmt.Errorf("available_beds exceeds total_beds: %w", domain.ErrValidation)
	}

	room := &domain.Room{
		RoomNumber:    req.RoomNumber,
		TotalBeds:     req.TotalBeds,
		AvailableBeds: req.AvailableBeds,
		Image:         req.Image,
	}
	room.DeriveStatus()

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// Update rewrites a room's bed counts and image, recomputing the status.
func (s *RoomService) Update(ctx context.Context, roomNumber string, req RoomRequest) (*domain.Room, error) {
	if req.AvailableBeds > req.TotalBeds {
		return nil, fmt.Errorf("available_beds exceeds total_beds: %w", domain.ErrValidation)
	}

	room, err := s.roomRepo.GetByNumber(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	room.TotalBeds = req.TotalBeds
	room.AvailableBeds = req.AvailableBeds
	if req.Image != nil {
		room.Image = req.Image
	}
	room.DeriveStatus()

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *RoomService) GetByNumber(ctx context.Context, roomNumber string) (*domain.Room, error) {
	return s.roomRepo.GetByNumber(ctx, roomNumber)
}

func (s *RoomService) List(ctx context.Context) ([]*domain.Room, error) {
	return s.roomRepo.List(ctx)
}

func (s *RoomService) Delete(ctx context.Context, roomNumber string) error {
	return s.roomRepo.Delete(ctx, roomNumber)
}

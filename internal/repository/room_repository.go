package repository

import (
	"context"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type RoomRepository interface {
	// Create surfaces a duplicate room_number as domain.ErrConflict.
	Create(ctx context.Context, room *domain.Room) error
	GetByNumber(ctx context.Context, roomNumber string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, roomNumber string) error
}

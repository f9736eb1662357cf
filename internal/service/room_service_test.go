package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

type fakeRoomRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rows: make(map[string]*domain.Room)}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.rows[room.RoomNumber]; taken {
		return fmt.Errorf("room %s already exists: %w", room.RoomNumber, domain.ErrConflict)
	}
	stored := *room
	r.rows[room.RoomNumber] = &stored
	return nil
}

func (r *fakeRoomRepo) GetByNumber(_ context.Context, roomNumber string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rows[roomNumber]
	if !ok {
		return nil, fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) List(_ context.Context) ([]*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms := make([]*domain.Room, 0, len(r.rows))
	for _, room := range r.rows {
		copied := *room
		rooms = append(rooms, &copied)
	}
	return rooms, nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[room.RoomNumber]; !ok {
		return fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	stored := *room
	r.rows[room.RoomNumber] = &stored
	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, roomNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[roomNumber]; !ok {
		return fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}
	delete(r.rows, roomNumber)
	return nil
}

func TestRoomCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("status is derived, not taken from the request", func(t *testing.T) {
		svc := NewRoomService(newFakeRoomRepo())
		room, err := svc.Create(ctx, RoomRequest{RoomNumber: "101", TotalBeds: 4, AvailableBeds: 2})
		require.NoError(t, err)
		assert.Equal(t, domain.RoomStatusAvailable, room.Status)

		full, err := svc.Create(ctx, RoomRequest{RoomNumber: "102", TotalBeds: 4, AvailableBeds: 0})
		require.NoError(t, err)
		assert.Equal(t, domain.RoomStatusOccupied, full.Status)
	})

	t.Run("rejects more available beds than total", func(t *testing.T) {
		svc := NewRoomService(newFakeRoomRepo())
		_, err := svc.Create(ctx, RoomRequest{RoomNumber: "101", TotalBeds: 2, AvailableBeds: 3})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate room number", func(t *testing.T) {
		svc := NewRoomService(newFakeRoomRepo())
		_, err := svc.Create(ctx, RoomRequest{RoomNumber: "101", TotalBeds: 4, AvailableBeds: 4})
		require.NoError(t, err)
		_, err = svc.Create(ctx, RoomRequest{RoomNumber: "101", TotalBeds: 4, AvailableBeds: 4})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestRoomUpdate(t *testing.T) {
	ctx := context.Background()
	rooms := newFakeRoomRepo()
	svc := NewRoomService(rooms)

	_, err := svc.Create(ctx, RoomRequest{RoomNumber: "101", TotalBeds: 4, AvailableBeds: 2})
	require.NoError(t, err)

	t.Run("recomputes status from the new counts", func(t *testing.T) {
		updated, err := svc.Update(ctx, "101", RoomRequest{RoomNumber: "101", TotalBeds: 4, AvailableBeds: 0})
		require.NoError(t, err)
		assert.Equal(t, domain.RoomStatusOccupied, updated.Status)

		updated, err = svc.Update(ctx, "101", RoomRequest{RoomNumber: "101", TotalBeds: 4, AvailableBeds: 1})
		require.NoError(t, err)
		assert.Equal(t, domain.RoomStatusAvailable, updated.Status)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.Update(ctx, "999", RoomRequest{RoomNumber: "999", TotalBeds: 4, AvailableBeds: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid counts", func(t *testing.T) {
		_, err := svc.Update(ctx, "101", RoomRequest{RoomNumber: "101", TotalBeds: 2, AvailableBeds: 5})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

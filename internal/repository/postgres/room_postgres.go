package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/repository"
)

type roomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new PostgreSQL room repository
func NewRoomRepository(db *sqlx.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

// Create inserts a new room
func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (
			room_number, total_beds, available_beds, status, image,
			created_at, updated_at
		) VALUES (
			:room_number, :total_beds, :available_beds, :status, :image,
			NOW(), NOW()
		)`

	_, err := r.db.NamedExecContext(ctx, query, room)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("room number %s already exists: %w", room.RoomNumber, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// GetByNumber retrieves a room by its number
func (r *roomRepository) GetByNumber(ctx context.Context, roomNumber string) (*domain.Room, error) {
	query := `
		SELECT room_number, total_beds, available_beds, status, image,
			   created_at, updated_at
		FROM rooms
		WHERE room_number = $1`

	var room domain.Room
	err := r.db.GetContext(ctx, &room, query, roomNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get room by number: %w", err)
	}

	return &room, nil
}

// List retrieves all rooms ordered by room number
func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query := `
		SELECT room_number, total_beds, available_beds, status, image,
			   created_at, updated_at
		FROM rooms
		ORDER BY room_number`

	var rooms []*domain.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

// Update rewrites a room's bed counts, derived status and image
func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `
		UPDATE rooms
		SET total_beds = :total_beds,
			available_beds = :available_beds,
			status = :status,
			image = :image,
			updated_at = NOW()
		WHERE room_number = :room_number`

	result, err := r.db.NamedExecContext(ctx, query, room)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}

	return nil
}

// Delete removes a room
func (r *roomRepository) Delete(ctx context.Context, roomNumber string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE room_number = $1`, roomNumber)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("room not found: %w", domain.ErrNotFound)
	}

	return nil
}

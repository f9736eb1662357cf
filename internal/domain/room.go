package domain

import "time"

type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "Available"
	RoomStatusOccupied  RoomStatus = "Occupied"
)

type Room struct {
	RoomNumber    string     `json:"room_number" db:"room_number"`
	TotalBeds     int        `json:"total_beds" db:"total_beds"`
	AvailableBeds int        `json:"available_beds" db:"available_beds"`
	Status        RoomStatus `json:"status" db:"status"`
	Image         *string    `json:"image,omitempty" db:"image"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// DeriveStatus recomputes the status column from the bed count. Every
// mutation path writes the derived value, never a caller-supplied one.
func (r *Room) DeriveStatus() {
	if r.AvailableBeds > 0 {
		r.Status = RoomStatusAvailable
	} else {
		r.Status = RoomStatusOccupied
	}
}

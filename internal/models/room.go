package models

import "time"

// Room types supported by the catalog.
const (
	RoomTypeTheory   = "theory"
	RoomTypePractice = "practice"
)

// Room is a teaching room. Identity is Code, unique.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Building  *string   `db:"building" json:"building,omitempty"`
	Type      string    `db:"room_type" json:"room_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses as stored in the database.
const (
	ResBooked     = "booked"
	ResCheckedIn  = "checked_in"
	ResCheckedOut = "checked_out"
	ResCancelled  = "cancelled"
)

// Booking channels.
const (
	ChannelAirbnb  = "airbnb"
	ChannelBooking = "booking"
	ChannelDirect  = "direct"
)

// Reservation represents a guest stay at a rental property
type Reservation struct {
	ID        int64
	Code      string // stable external identifier, assigned at creation
	GuestName string
	Property  string
	Status    string
	Channel   string
	CheckIn   *string // YYYY-MM-DD
	CheckOut  *string // YYYY-MM-DD; guest-facing agenda views key on this day
	Guests    int
	CreatedAt int64
}

// NewReservation creates a booked Reservation with a fresh code and the current timestamp
func NewReservation(guestName, property, channel string) *Reservation {
	return &Reservation{
		Code:      uuid.NewString(),
		GuestName: guestName,
		Property:  property,
		Status:    ResBooked,
		Channel:   channel,
		Guests:    1,
		CreatedAt: time.Now().Unix(),
	}
}

// SearchText returns the fields free-text search matches against
func (r *Reservation) SearchText() []string {
	return []string{r.GuestName, r.Property, r.Channel}
}

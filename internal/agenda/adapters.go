package agenda

import (
	"time"

	"github.com/mara/innkeep/pkg/models"
)

// TicketAdapter keys maintenance agenda views on the ticket's desired
// work day. Tickets with a scheduled slot sort by it within the day;
// the rest fall back to creation time.
func TicketAdapter() Adapter[*models.Ticket] {
	return Adapter[*models.Ticket]{
		ID: func(t *models.Ticket) int64 { return t.ID },
		Day: func(t *models.Ticket) (DateKey, bool) {
			return parseDay(t.DesiredDate)
		},
		SortTime: func(t *models.Ticket) int64 {
			if t.ScheduledAt != nil {
				return *t.ScheduledAt
			}
			return t.CreatedAt
		},
		Search: func(t *models.Ticket) []string { return t.SearchText() },
		Facets: func(t *models.Ticket) Facets {
			return Facets{
				Status:   t.Status,
				Assignee: t.Assignee,
				Property: t.Property,
				Category: t.Category,
			}
		},
	}
}

// ReservationAdapter keys guest-facing agenda views on the checkout
// day. The booking channel rides the category facet; reservations have
// no assignee, so that facet never constrains them.
func ReservationAdapter() Adapter[*models.Reservation] {
	return Adapter[*models.Reservation]{
		ID: func(r *models.Reservation) int64 { return r.ID },
		Day: func(r *models.Reservation) (DateKey, bool) {
			return parseDay(r.CheckOut)
		},
		SortTime: func(r *models.Reservation) int64 { return r.CreatedAt },
		Search:   func(r *models.Reservation) []string { return r.SearchText() },
		Facets: func(r *models.Reservation) Facets {
			return Facets{
				Status:   r.Status,
				Property: r.Property,
				Category: r.Channel,
			}
		},
	}
}

// parseDay validates a stored YYYY-MM-DD field into a DateKey
func parseDay(s *string) (DateKey, bool) {
	if s == nil {
		return UndatedKey, false
	}
	if _, err := time.Parse(DateLayout, *s); err != nil {
		return UndatedKey, false
	}
	return DateKey(*s), true
}

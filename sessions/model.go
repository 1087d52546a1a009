package sessions

import (
	"context"
	"time"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/google/uuid"
)

type SessionAPIConfig struct {
	Service SessionService
}

type Camp struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	AgeRange         string    `json:"age_range"`
	MaxCapacity      int32     `json:"max_capacity"`
	Price            float64   `json:"price"`
	ImageURL         string    `json:"image_url,omitempty"`
}

// SessionWithAvailability is a session row annotated with the derived
// availability fields; none of them are stored.
type SessionWithAvailability struct {
	ID              uuid.UUID `json:"id"`
	CampID          uuid.UUID `json:"camp_id"`
	WeekNumber      int32     `json:"week_number"`
	TimeSlot        string    `json:"time_slot"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	CurrentBookings int32     `json:"current_bookings"`
	MaxCapacity     int32     `json:"max_capacity"`
	Status          string    `json:"status"`
	AvailableSpots  int32     `json:"available_spots"`
	IsAvailable     bool      `json:"is_available"`
	IsFull          bool      `json:"is_full"`
	Camp            Camp      `json:"camp"`
}

type SessionService interface {
	ListSessions(ctx context.Context, campSlug string) ([]SessionWithAvailability, error)
}

type Service struct {
	DBQueries config.DBQueries
}

func NewService(dbQueries config.DBQueries) SessionService {
	return &Service{
		DBQueries: dbQueries,
	}
}

package sessions

import (
	"context"
	"errors"

	"github.com/BenjaminBruton/skillwrap/internal/convert"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/sqlutil"
	"github.com/sirupsen/logrus"
)

var ErrInternalError = errors.New("an internal error occurred")

func (service *Service) ListSessions(ctx context.Context, campSlug string) ([]SessionWithAvailability, error) {
	rows, getSessionsError := service.DBQueries.GetSessionsWithCamp(ctx, sqlutil.StringToNullString(campSlug))

	if getSessionsError != nil {
		logrus.Errorf("error fetching sessions: %s", getSessionsError)

		return nil, ErrInternalError
	}

	sessions := make([]SessionWithAvailability, 0, len(rows))

	for _, row := range rows {
		sessions = append(sessions, annotateSession(row))
	}

	return sessions, nil
}

func annotateSession(row database.GetSessionsWithCampRow) SessionWithAvailability {
	availableSpots := row.Session.MaxCapacity - row.Session.CurrentBookings

	if availableSpots < 0 {
		availableSpots = 0
	}

	campPrice, priceError := convert.StringToFloat64(row.Camp.Price)

	if priceError != nil {
		logrus.Errorf("error parsing camp price for %s: %s", row.Camp.Slug, priceError)
	}

	return SessionWithAvailability{
		ID:              row.Session.ID,
		CampID:          row.Session.CampID,
		WeekNumber:      row.Session.WeekNumber,
		TimeSlot:        row.Session.TimeSlot,
		StartDate:       row.Session.StartDate,
		EndDate:         row.Session.EndDate,
		StartTime:       row.Session.StartTime,
		EndTime:         row.Session.EndTime,
		CurrentBookings: row.Session.CurrentBookings,
		MaxCapacity:     row.Session.MaxCapacity,
		Status:          row.Session.Status,
		AvailableSpots:  availableSpots,
		IsAvailable:     row.Session.CurrentBookings < row.Session.MaxCapacity && row.Session.Status == "open",
		IsFull:          row.Session.CurrentBookings >= row.Session.MaxCapacity || row.Session.Status == "full",
		Camp: Camp{
			ID:               row.Camp.ID,
			Name:             row.Camp.Name,
			Slug:             row.Camp.Slug,
			Description:      row.Camp.Description,
			ShortDescription: row.Camp.ShortDescription,
			AgeRange:         row.Camp.AgeRange,
			MaxCapacity:      row.Camp.MaxCapacity,
			Price:            campPrice,
			ImageURL:         sqlutil.NullStringToString(row.Camp.ImageURL),
		},
	}
}

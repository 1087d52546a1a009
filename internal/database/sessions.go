package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const getSessionsWithCamp = `
SELECT s.id, s.camp_id, s.week_number, s.time_slot, s.start_date, s.end_date,
       s.start_time, s.end_time, s.current_bookings, s.max_capacity, s.status,
       s.created_at, s.updated_at,
       c.id, c.name, c.slug, c.description, c.short_description, c.age_range,
       c.max_capacity, c.price, c.image_url, c.created_at, c.updated_at
FROM sessions s
JOIN camps c ON c.id = s.camp_id
WHERE ($1::text IS NULL OR c.slug = $1)
ORDER BY s.week_number ASC, s.time_slot ASC
`

type GetSessionsWithCampRow struct {
	Session Session
	Camp    Camp
}

func (q *Queries) GetSessionsWithCamp(ctx context.Context, campSlug sql.NullString) ([]GetSessionsWithCampRow, error) {
	rows, err := q.db.QueryContext(ctx, getSessionsWithCamp, campSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetSessionsWithCampRow
	for rows.Next() {
		var i GetSessionsWithCampRow
		if err := rows.Scan(
			&i.Session.ID, &i.Session.CampID, &i.Session.WeekNumber, &i.Session.TimeSlot,
			&i.Session.StartDate, &i.Session.EndDate, &i.Session.StartTime, &i.Session.EndTime,
			&i.Session.CurrentBookings, &i.Session.MaxCapacity, &i.Session.Status,
			&i.Session.CreatedAt, &i.Session.UpdatedAt,
			&i.Camp.ID, &i.Camp.Name, &i.Camp.Slug, &i.Camp.Description, &i.Camp.ShortDescription,
			&i.Camp.AgeRange, &i.Camp.MaxCapacity, &i.Camp.Price, &i.Camp.ImageURL,
			&i.Camp.CreatedAt, &i.Camp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

const getSessionWithCampById = `
SELECT s.id, s.camp_id, s.week_number, s.time_slot, s.start_date, s.end_date,
       s.start_time, s.end_time, s.current_bookings, s.max_capacity, s.status,
       s.created_at, s.updated_at,
       c.id, c.name, c.slug, c.description, c.short_description, c.age_range,
       c.max_capacity, c.price, c.image_url, c.created_at, c.updated_at
FROM sessions s
JOIN camps c ON c.id = s.camp_id
WHERE s.id = $1
`

func (q *Queries) GetSessionWithCampById(ctx context.Context, id uuid.UUID) (GetSessionsWithCampRow, error) {
	row := q.db.QueryRowContext(ctx, getSessionWithCampById, id)

	var i GetSessionsWithCampRow
	err := row.Scan(
		&i.Session.ID, &i.Session.CampID, &i.Session.WeekNumber, &i.Session.TimeSlot,
		&i.Session.StartDate, &i.Session.EndDate, &i.Session.StartTime, &i.Session.EndTime,
		&i.Session.CurrentBookings, &i.Session.MaxCapacity, &i.Session.Status,
		&i.Session.CreatedAt, &i.Session.UpdatedAt,
		&i.Camp.ID, &i.Camp.Name, &i.Camp.Slug, &i.Camp.Description, &i.Camp.ShortDescription,
		&i.Camp.AgeRange, &i.Camp.MaxCapacity, &i.Camp.Price, &i.Camp.ImageURL,
		&i.Camp.CreatedAt, &i.Camp.UpdatedAt,
	)

	return i, err
}

// The booking counter is mutated only through these two database-side
// functions so concurrent bookings for the same session cannot lose updates.

const incrementSessionBookings = `SELECT increment_session_bookings($1)`

func (q *Queries) IncrementSessionBookings(ctx context.Context, sessionID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, incrementSessionBookings, sessionID)

	return err
}

const decrementSessionBookings = `SELECT decrement_session_bookings($1)`

func (q *Queries) DecrementSessionBookings(ctx context.Context, sessionID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, decrementSessionBookings, sessionID)

	return err
}

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createBooking = `
INSERT INTO bookings (
	id, clerk_user_id, session_id, student_name, student_age, parent_email,
	parent_phone, emergency_contact, emergency_phone, dietary_restrictions,
	special_needs, stripe_payment_intent_id, payment_status, booking_status,
	total_amount
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id, clerk_user_id, session_id, student_name, student_age, parent_email,
          parent_phone, emergency_contact, emergency_phone, dietary_restrictions,
          special_needs, stripe_payment_intent_id, payment_status, booking_status,
          total_amount, created_at, updated_at
`

type CreateBookingParams struct {
	ID                    uuid.UUID
	ClerkUserID           string
	SessionID             uuid.UUID
	StudentName           string
	StudentAge            int32
	ParentEmail           string
	ParentPhone           sql.NullString
	EmergencyContact      string
	EmergencyPhone        string
	DietaryRestrictions   sql.NullString
	SpecialNeeds          sql.NullString
	StripePaymentIntentID string
	PaymentStatus         string
	BookingStatus         string
	TotalAmount           string
}

func (q *Queries) CreateBooking(ctx context.Context, arg CreateBookingParams) (Booking, error) {
	row := q.db.QueryRowContext(ctx, createBooking,
		arg.ID, arg.ClerkUserID, arg.SessionID, arg.StudentName, arg.StudentAge,
		arg.ParentEmail, arg.ParentPhone, arg.EmergencyContact, arg.EmergencyPhone,
		arg.DietaryRestrictions, arg.SpecialNeeds, arg.StripePaymentIntentID,
		arg.PaymentStatus, arg.BookingStatus, arg.TotalAmount,
	)

	return scanBooking(row)
}

const getBookingByPaymentIntentId = `
SELECT id, clerk_user_id, session_id, student_name, student_age, parent_email,
       parent_phone, emergency_contact, emergency_phone, dietary_restrictions,
       special_needs, stripe_payment_intent_id, payment_status, booking_status,
       total_amount, created_at, updated_at
FROM bookings
WHERE stripe_payment_intent_id = $1
`

func (q *Queries) GetBookingByPaymentIntentId(ctx context.Context, paymentIntentID string) (Booking, error) {
	row := q.db.QueryRowContext(ctx, getBookingByPaymentIntentId, paymentIntentID)

	return scanBooking(row)
}

const getUserBookings = `
SELECT b.id, b.clerk_user_id, b.session_id, b.student_name, b.student_age, b.parent_email,
       b.parent_phone, b.emergency_contact, b.emergency_phone, b.dietary_restrictions,
       b.special_needs, b.stripe_payment_intent_id, b.payment_status, b.booking_status,
       b.total_amount, b.created_at, b.updated_at,
       s.week_number, s.time_slot, s.start_date, s.end_date, c.name, c.slug
FROM bookings b
JOIN sessions s ON s.id = b.session_id
JOIN camps c ON c.id = s.camp_id
WHERE b.clerk_user_id = $1
ORDER BY b.created_at DESC
`

type GetUserBookingsRow struct {
	Booking          Booking
	SessionWeek      int32
	SessionTimeSlot  string
	SessionStartDate time.Time
	SessionEndDate   time.Time
	CampName         string
	CampSlug         string
}

func (q *Queries) GetUserBookings(ctx context.Context, clerkUserID string) ([]GetUserBookingsRow, error) {
	rows, err := q.db.QueryContext(ctx, getUserBookings, clerkUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetUserBookingsRow
	for rows.Next() {
		var i GetUserBookingsRow
		if err := rows.Scan(
			&i.Booking.ID, &i.Booking.ClerkUserID, &i.Booking.SessionID, &i.Booking.StudentName,
			&i.Booking.StudentAge, &i.Booking.ParentEmail, &i.Booking.ParentPhone,
			&i.Booking.EmergencyContact, &i.Booking.EmergencyPhone, &i.Booking.DietaryRestrictions,
			&i.Booking.SpecialNeeds, &i.Booking.StripePaymentIntentID, &i.Booking.PaymentStatus,
			&i.Booking.BookingStatus, &i.Booking.TotalAmount, &i.Booking.CreatedAt, &i.Booking.UpdatedAt,
			&i.SessionWeek, &i.SessionTimeSlot, &i.SessionStartDate, &i.SessionEndDate,
			&i.CampName, &i.CampSlug,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

const getUserBookingWithSession = `
SELECT b.id, b.clerk_user_id, b.session_id, b.student_name, b.student_age, b.parent_email,
       b.parent_phone, b.emergency_contact, b.emergency_phone, b.dietary_restrictions,
       b.special_needs, b.stripe_payment_intent_id, b.payment_status, b.booking_status,
       b.total_amount, b.created_at, b.updated_at,
       s.start_date, c.name
FROM bookings b
JOIN sessions s ON s.id = b.session_id
JOIN camps c ON c.id = s.camp_id
WHERE b.id = $1 AND b.clerk_user_id = $2
`

type GetUserBookingWithSessionParams struct {
	ID          uuid.UUID
	ClerkUserID string
}

type GetUserBookingWithSessionRow struct {
	Booking          Booking
	SessionStartDate time.Time
	CampName         string
}

func (q *Queries) GetUserBookingWithSession(ctx context.Context, arg GetUserBookingWithSessionParams) (GetUserBookingWithSessionRow, error) {
	row := q.db.QueryRowContext(ctx, getUserBookingWithSession, arg.ID, arg.ClerkUserID)

	var i GetUserBookingWithSessionRow
	err := row.Scan(
		&i.Booking.ID, &i.Booking.ClerkUserID, &i.Booking.SessionID, &i.Booking.StudentName,
		&i.Booking.StudentAge, &i.Booking.ParentEmail, &i.Booking.ParentPhone,
		&i.Booking.EmergencyContact, &i.Booking.EmergencyPhone, &i.Booking.DietaryRestrictions,
		&i.Booking.SpecialNeeds, &i.Booking.StripePaymentIntentID, &i.Booking.PaymentStatus,
		&i.Booking.BookingStatus, &i.Booking.TotalAmount, &i.Booking.CreatedAt, &i.Booking.UpdatedAt,
		&i.SessionStartDate, &i.CampName,
	)

	return i, err
}

const cancelBooking = `
UPDATE bookings
SET booking_status = 'cancelled', payment_status = $3, updated_at = now()
WHERE id = $1 AND clerk_user_id = $2
RETURNING id, clerk_user_id, session_id, student_name, student_age, parent_email,
          parent_phone, emergency_contact, emergency_phone, dietary_restrictions,
          special_needs, stripe_payment_intent_id, payment_status, booking_status,
          total_amount, created_at, updated_at
`

type CancelBookingParams struct {
	ID            uuid.UUID
	ClerkUserID   string
	PaymentStatus string
}

func (q *Queries) CancelBooking(ctx context.Context, arg CancelBookingParams) (Booking, error) {
	row := q.db.QueryRowContext(ctx, cancelBooking, arg.ID, arg.ClerkUserID, arg.PaymentStatus)

	return scanBooking(row)
}

const getRecentBookings = `
SELECT id, clerk_user_id, session_id, student_name, student_age, parent_email,
       parent_phone, emergency_contact, emergency_phone, dietary_restrictions,
       special_needs, stripe_payment_intent_id, payment_status, booking_status,
       total_amount, created_at, updated_at
FROM bookings
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) GetRecentBookings(ctx context.Context, limit int32) ([]Booking, error) {
	rows, err := q.db.QueryContext(ctx, getRecentBookings, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Booking
	for rows.Next() {
		var booking Booking
		if err := rows.Scan(
			&booking.ID, &booking.ClerkUserID, &booking.SessionID, &booking.StudentName,
			&booking.StudentAge, &booking.ParentEmail, &booking.ParentPhone,
			&booking.EmergencyContact, &booking.EmergencyPhone, &booking.DietaryRestrictions,
			&booking.SpecialNeeds, &booking.StripePaymentIntentID, &booking.PaymentStatus,
			&booking.BookingStatus, &booking.TotalAmount, &booking.CreatedAt, &booking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, booking)
	}

	return items, rows.Err()
}

func scanBooking(row *sql.Row) (Booking, error) {
	var booking Booking
	err := row.Scan(
		&booking.ID, &booking.ClerkUserID, &booking.SessionID, &booking.StudentName,
		&booking.StudentAge, &booking.ParentEmail, &booking.ParentPhone,
		&booking.EmergencyContact, &booking.EmergencyPhone, &booking.DietaryRestrictions,
		&booking.SpecialNeeds, &booking.StripePaymentIntentID, &booking.PaymentStatus,
		&booking.BookingStatus, &booking.TotalAmount, &booking.CreatedAt, &booking.UpdatedAt,
	)

	return booking, err
}

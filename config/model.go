package config

import (
	"context"
	"database/sql"

	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/google/uuid"
)

type DBQueries interface {
	CancelBooking(ctx context.Context, arg database.CancelBookingParams) (database.Booking, error)
	CreateBooking(ctx context.Context, arg database.CreateBookingParams) (database.Booking, error)
	CreateEsportsWaiver(ctx context.Context, arg database.CreateEsportsWaiverParams) (database.EsportsWaiver, error)
	CreateGeneralWaiver(ctx context.Context, arg database.CreateGeneralWaiverParams) (database.CreateGeneralWaiverRow, error)
	CreateMediaRelease(ctx context.Context, arg database.CreateMediaReleaseParams) (database.MediaRelease, error)
	CreatePaymentLog(ctx context.Context, arg database.CreatePaymentLogParams) (database.PaymentLog, error)
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	DecrementSessionBookings(ctx context.Context, sessionID uuid.UUID) error
	DeleteUserByClerkId(ctx context.Context, clerkUserID string) error
	GetBookingByPaymentIntentId(ctx context.Context, paymentIntentID string) (database.Booking, error)
	GetEsportsWaiversByParentEmail(ctx context.Context, parentEmail string) ([]database.EsportsWaiver, error)
	GetGeneralWaiversByParentEmail(ctx context.Context, parentEmail string) ([]database.GetGeneralWaiversByParentEmailRow, error)
	GetMediaReleasesByParentEmail(ctx context.Context, parentEmail string) ([]database.MediaRelease, error)
	GetRecentBookings(ctx context.Context, limit int32) ([]database.Booking, error)
	GetSessionWithCampById(ctx context.Context, id uuid.UUID) (database.GetSessionsWithCampRow, error)
	GetSessionsWithCamp(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error)
	GetUserBookingWithSession(ctx context.Context, arg database.GetUserBookingWithSessionParams) (database.GetUserBookingWithSessionRow, error)
	GetUserBookings(ctx context.Context, clerkUserID string) ([]database.GetUserBookingsRow, error)
	GetUserByClerkId(ctx context.Context, clerkUserID string) (database.User, error)
	IncrementSessionBookings(ctx context.Context, sessionID uuid.UUID) error
	UpdateUserByClerkId(ctx context.Context, arg database.UpdateUserByClerkIdParams) (database.User, error)
	ValidateDiscountCode(ctx context.Context, arg database.ValidateDiscountCodeParams) (database.ValidateDiscountCodeRow, error)
}

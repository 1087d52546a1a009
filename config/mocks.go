package config

import (
	"context"
	"database/sql"

	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/google/uuid"
)

type SessionMock struct{}

func (sessionMock *SessionMock) GetSessionsWithCamp(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error) {
	return []database.GetSessionsWithCampRow{}, nil
}

func (sessionMock *SessionMock) GetSessionWithCampById(ctx context.Context, id uuid.UUID) (database.GetSessionsWithCampRow, error) {
	return database.GetSessionsWithCampRow{}, sql.ErrNoRows
}

func (sessionMock *SessionMock) IncrementSessionBookings(ctx context.Context, sessionID uuid.UUID) error {
	panic("IncrementSessionBookings not implemented for this test (BaseMock)")
}

func (sessionMock *SessionMock) DecrementSessionBookings(ctx context.Context, sessionID uuid.UUID) error {
	panic("DecrementSessionBookings not implemented for this test (BaseMock)")
}

type BookingMock struct{}

func (bookingMock *BookingMock) CreateBooking(ctx context.Context, arg database.CreateBookingParams) (database.Booking, error) {
	panic("CreateBooking not implemented for this test (BaseMock)")
}

func (bookingMock *BookingMock) CancelBooking(ctx context.Context, arg database.CancelBookingParams) (database.Booking, error) {
	panic("CancelBooking not implemented for this test (BaseMock)")
}

func (bookingMock *BookingMock) GetBookingByPaymentIntentId(ctx context.Context, paymentIntentID string) (database.Booking, error) {
	return database.Booking{}, sql.ErrNoRows
}

func (bookingMock *BookingMock) GetRecentBookings(ctx context.Context, limit int32) ([]database.Booking, error) {
	return []database.Booking{}, nil
}

func (bookingMock *BookingMock) GetUserBookings(ctx context.Context, clerkUserID string) ([]database.GetUserBookingsRow, error) {
	return []database.GetUserBookingsRow{}, nil
}

func (bookingMock *BookingMock) GetUserBookingWithSession(ctx context.Context, arg database.GetUserBookingWithSessionParams) (database.GetUserBookingWithSessionRow, error) {
	return database.GetUserBookingWithSessionRow{}, sql.ErrNoRows
}

type UserMock struct{}

func (userMock *UserMock) CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
	panic("CreateUser not implemented for this test (BaseMock)")
}

func (userMock *UserMock) GetUserByClerkId(ctx context.Context, clerkUserID string) (database.User, error) {
	return database.User{}, sql.ErrNoRows
}

func (userMock *UserMock) UpdateUserByClerkId(ctx context.Context, arg database.UpdateUserByClerkIdParams) (database.User, error) {
	panic("UpdateUserByClerkId not implemented for this test (BaseMock)")
}

func (userMock *UserMock) DeleteUserByClerkId(ctx context.Context, clerkUserID string) error {
	panic("DeleteUserByClerkId not implemented for this test (BaseMock)")
}

type WaiverMock struct{}

func (waiverMock *WaiverMock) CreateEsportsWaiver(ctx context.Context, arg database.CreateEsportsWaiverParams) (database.EsportsWaiver, error) {
	panic("CreateEsportsWaiver not implemented for this test (BaseMock)")
}

func (waiverMock *WaiverMock) CreateMediaRelease(ctx context.Context, arg database.CreateMediaReleaseParams) (database.MediaRelease, error) {
	panic("CreateMediaRelease not implemented for this test (BaseMock)")
}

func (waiverMock *WaiverMock) CreateGeneralWaiver(ctx context.Context, arg database.CreateGeneralWaiverParams) (database.CreateGeneralWaiverRow, error) {
	panic("CreateGeneralWaiver not implemented for this test (BaseMock)")
}

func (waiverMock *WaiverMock) GetEsportsWaiversByParentEmail(ctx context.Context, parentEmail string) ([]database.EsportsWaiver, error) {
	return []database.EsportsWaiver{}, nil
}

func (waiverMock *WaiverMock) GetMediaReleasesByParentEmail(ctx context.Context, parentEmail string) ([]database.MediaRelease, error) {
	return []database.MediaRelease{}, nil
}

func (waiverMock *WaiverMock) GetGeneralWaiversByParentEmail(ctx context.Context, parentEmail string) ([]database.GetGeneralWaiversByParentEmailRow, error) {
	return []database.GetGeneralWaiversByParentEmailRow{}, nil
}

type PaymentMock struct{}

func (paymentMock *PaymentMock) CreatePaymentLog(ctx context.Context, arg database.CreatePaymentLogParams) (database.PaymentLog, error) {
	panic("CreatePaymentLog not implemented for this test (BaseMock)")
}

func (paymentMock *PaymentMock) ValidateDiscountCode(ctx context.Context, arg database.ValidateDiscountCodeParams) (database.ValidateDiscountCodeRow, error) {
	panic("ValidateDiscountCode not implemented for this test (BaseMock)")
}

type BaseMock struct {
	*SessionMock
	*BookingMock
	*UserMock
	*WaiverMock
	*PaymentMock
}

func NewBaseMock() *BaseMock {
	return &BaseMock{
		SessionMock: &SessionMock{},
		BookingMock: &BookingMock{},
		UserMock:    &UserMock{},
		WaiverMock:  &WaiverMock{},
		PaymentMock: &PaymentMock{},
	}
}

package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/internal/outbox"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrRefundFailed     = errors.New("refund failed")
	ErrInternalError    = errors.New("an internal error occurred")
)

// CancellationWindowError is returned when the session starts in under a
// week; the handler surfaces the remaining days to the caller.
type CancellationWindowError struct {
	DaysRemaining int
}

func (cancellationWindowError *CancellationWindowError) Error() string {
	return fmt.Sprintf("cancellation window closed: session starts in %d days", cancellationWindowError.DaysRemaining)
}

type BookingAPIConfig struct {
	Service BookingService
}

// BookingView is a dashboard row. Source is "database" for persisted
// bookings and "local" for pending outbox records awaiting reconciliation.
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	SessionID       uuid.UUID `json:"sessionId"`
	StudentName     string    `json:"studentName"`
	StudentAge      int32     `json:"studentAge"`
	ParentEmail     string    `json:"parentEmail"`
	CampName        string    `json:"campName,omitempty"`
	CampSlug        string    `json:"campSlug,omitempty"`
	SessionWeek     int32     `json:"sessionWeek,omitempty"`
	SessionTimeSlot string    `json:"sessionTimeSlot,omitempty"`
	StartDate       string    `json:"startDate,omitempty"`
	EndDate         string    `json:"endDate,omitempty"`
	PaymentStatus   string    `json:"paymentStatus"`
	BookingStatus   string    `json:"bookingStatus"`
	TotalAmount     string    `json:"totalAmount"`
	CreatedAt       time.Time `json:"createdAt"`
	Source          string    `json:"source"`
}

type RefundResult struct {
	RefundID string `json:"refund_id"`
	Amount   string `json:"amount"`
	Status   string `json:"status"`
}

type CancellationResult struct {
	Booking BookingView   `json:"booking"`
	Refund  *RefundResult `json:"refund,omitempty"`
	Message string        `json:"message"`
}

type BookingService interface {
	GetUserBookings(ctx context.Context, clerkUserID string) ([]BookingView, error)
	CancelBooking(ctx context.Context, clerkUserID string, bookingID string) (*CancellationResult, error)
}

type RefundClient interface {
	CreateRefund(params *stripe.RefundParams) (*stripe.Refund, error)
}

type CancellationMailer interface {
	SendCancellationConfirmation(parentEmail string, studentName string, campName string, refundMessage string) error
}

type Service struct {
	DBQueries config.DBQueries
	Stripe    RefundClient
	Mailer    CancellationMailer
	Outbox    *outbox.Store
}

func NewService(dbQueries config.DBQueries, refundClient RefundClient, cancellationMailer CancellationMailer, outboxStore *outbox.Store) BookingService {
	return &Service{
		DBQueries: dbQueries,
		Stripe:    refundClient,
		Mailer:    cancellationMailer,
		Outbox:    outboxStore,
	}
}

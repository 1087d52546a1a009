package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BenjaminBruton/skillwrap/internal/convert"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v83"
)

const cancellationWindowDays = 7

// GetUserBookings lists the caller's bookings merged with any pending outbox
// records, so a booking whose database write is still awaiting reconciliation
// stays visible on the dashboard.
func (service *Service) GetUserBookings(ctx context.Context, clerkUserID string) ([]BookingView, error) {
	rows, getUserBookingsError := service.DBQueries.GetUserBookings(ctx, clerkUserID)

	if getUserBookingsError != nil {
		logrus.Errorf("error getting bookings for user %s: %s", clerkUserID, getUserBookingsError)

		return nil, ErrInternalError
	}

	views := make([]BookingView, 0, len(rows))
	seenPaymentIntents := make(map[string]bool, len(rows))

	for _, row := range rows {
		seenPaymentIntents[row.Booking.StripePaymentIntentID] = true

		views = append(views, BookingView{
			ID:              row.Booking.ID,
			SessionID:       row.Booking.SessionID,
			StudentName:     row.Booking.StudentName,
			StudentAge:      row.Booking.StudentAge,
			ParentEmail:     row.Booking.ParentEmail,
			CampName:        row.CampName,
			CampSlug:        row.CampSlug,
			SessionWeek:     row.SessionWeek,
			SessionTimeSlot: row.SessionTimeSlot,
			StartDate:       row.SessionStartDate.Format("2006-01-02"),
			EndDate:         row.SessionEndDate.Format("2006-01-02"),
			PaymentStatus:   row.Booking.PaymentStatus,
			BookingStatus:   row.Booking.BookingStatus,
			TotalAmount:     row.Booking.TotalAmount,
			CreatedAt:       row.Booking.CreatedAt,
			Source:          "database",
		})
	}

	outboxRecords, outboxError := service.Outbox.UserRecords(clerkUserID)

	if outboxError != nil {
		logrus.Errorf("error reading outbox for user %s: %s", clerkUserID, outboxError)

		return views, nil
	}

	for _, record := range outboxRecords {
		if seenPaymentIntents[record.StripePaymentIntentID] {
			continue
		}

		views = append(views, BookingView{
			ID:            record.BookingID,
			SessionID:     record.SessionID,
			StudentName:   record.StudentName,
			StudentAge:    record.StudentAge,
			ParentEmail:   record.ParentEmail,
			PaymentStatus: "completed",
			BookingStatus: "confirmed",
			TotalAmount:   record.TotalAmount,
			CreatedAt:     record.CreatedAt,
			Source:        "local",
		})
	}

	return views, nil
}

// CancelBooking cancels one of the caller's bookings, refunding the payment
// when the session starts at least a week out. A failed refund aborts the
// cancellation so the booking and the money stay consistent.
func (service *Service) CancelBooking(ctx context.Context, clerkUserID string, bookingID string) (*CancellationResult, error) {
	id, parseBookingIdError := uuid.Parse(bookingID)

	if parseBookingIdError != nil {
		return nil, ErrNotFound
	}

	getUserBookingWithSessionParams := database.GetUserBookingWithSessionParams{
		ID:          id,
		ClerkUserID: clerkUserID,
	}

	bookingWithSession, getBookingError := service.DBQueries.GetUserBookingWithSession(ctx, getUserBookingWithSessionParams)

	if getBookingError != nil {
		if errors.Is(getBookingError, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		logrus.Errorf("error getting booking %s: %s", bookingID, getBookingError)

		return nil, ErrInternalError
	}

	booking := bookingWithSession.Booking

	if booking.BookingStatus == "cancelled" {
		return nil, ErrAlreadyCancelled
	}

	daysUntilStart := int(math.Ceil(time.Until(bookingWithSession.SessionStartDate).Hours() / 24))

	if daysUntilStart < cancellationWindowDays {
		if daysUntilStart < 0 {
			daysUntilStart = 0
		}

		return nil, &CancellationWindowError{DaysRemaining: daysUntilStart}
	}

	var refundResult *RefundResult

	if booking.PaymentStatus == "completed" && booking.StripePaymentIntentID != "" {
		var refundError error
		refundResult, refundError = service.refundPayment(booking, bookingWithSession.CampName)

		if refundError != nil {
			logrus.Errorf("error refunding payment intent %s for booking %s: %s", booking.StripePaymentIntentID, booking.ID, refundError)

			return nil, fmt.Errorf("%w: %s", ErrRefundFailed, refundError)
		}
	}

	paymentStatus := booking.PaymentStatus

	if refundResult != nil {
		paymentStatus = "refunded"
	}

	cancelBookingParams := database.CancelBookingParams{
		ID:            booking.ID,
		ClerkUserID:   clerkUserID,
		PaymentStatus: paymentStatus,
	}

	cancelledBooking, cancelBookingError := service.DBQueries.CancelBooking(ctx, cancelBookingParams)

	if cancelBookingError != nil {
		logrus.Errorf("error cancelling booking %s: %s", booking.ID, cancelBookingError)

		return nil, ErrInternalError
	}

	if decrementError := service.DBQueries.DecrementSessionBookings(ctx, booking.SessionID); decrementError != nil {
		logrus.Errorf("error decrementing bookings for session %s: %s", booking.SessionID, decrementError)
	}

	message := "Booking cancelled."
	refundMessage := "No refund was issued."

	if refundResult != nil {
		message = fmt.Sprintf("Booking cancelled. A refund of $%s has been issued to your original payment method.", refundResult.Amount)
		refundMessage = fmt.Sprintf("A refund of $%s has been issued to your original payment method.", refundResult.Amount)
	}

	if mailError := service.Mailer.SendCancellationConfirmation(booking.ParentEmail, booking.StudentName, bookingWithSession.CampName, refundMessage); mailError != nil {
		logrus.Errorf("error sending cancellation confirmation for booking %s: %s", booking.ID, mailError)
	}

	return &CancellationResult{
		Booking: BookingView{
			ID:            cancelledBooking.ID,
			SessionID:     cancelledBooking.SessionID,
			StudentName:   cancelledBooking.StudentName,
			StudentAge:    cancelledBooking.StudentAge,
			ParentEmail:   cancelledBooking.ParentEmail,
			CampName:      bookingWithSession.CampName,
			StartDate:     bookingWithSession.SessionStartDate.Format("2006-01-02"),
			PaymentStatus: cancelledBooking.PaymentStatus,
			BookingStatus: cancelledBooking.BookingStatus,
			TotalAmount:   cancelledBooking.TotalAmount,
			CreatedAt:     cancelledBooking.CreatedAt,
			Source:        "database",
		},
		Refund:  refundResult,
		Message: message,
	}, nil
}

// refundPayment issues the Stripe refund for a booking. Intent ids with the
// test_ prefix come from the diagnostics surface and get a mocked result so
// dev cancellations never hit the network.
func (service *Service) refundPayment(booking database.Booking, campName string) (*RefundResult, error) {
	if strings.HasPrefix(booking.StripePaymentIntentID, "test_") {
		return &RefundResult{
			RefundID: fmt.Sprintf("test_refund_%d", time.Now().Unix()),
			Amount:   booking.TotalAmount,
			Status:   "succeeded",
		}, nil
	}

	refundParams := &stripe.RefundParams{
		PaymentIntent: stripe.String(booking.StripePaymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}

	refundParams.AddMetadata("booking_id", booking.ID.String())
	refundParams.AddMetadata("user_id", booking.ClerkUserID)
	refundParams.AddMetadata("camp_name", campName)

	refund, refundError := service.Stripe.CreateRefund(refundParams)

	if refundError != nil {
		return nil, refundError
	}

	return &RefundResult{
		RefundID: refund.ID,
		Amount:   convert.CentsToPriceString(refund.Amount),
		Status:   string(refund.Status),
	}, nil
}

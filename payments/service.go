package payments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/BenjaminBruton/skillwrap/internal/clerkapi"
	"github.com/BenjaminBruton/skillwrap/internal/convert"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/mailer"
	"github.com/BenjaminBruton/skillwrap/internal/outbox"
	"github.com/BenjaminBruton/skillwrap/internal/sqlutil"
	"github.com/BenjaminBruton/skillwrap/internal/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v83"
)

// CreatePaymentIntent re-validates the session before any processor call so a
// camper can never pay for a full or closed session, then creates the Stripe
// intent carrying the full booking details as metadata. The webhook is the
// single writer of bookings; this call writes nothing.
func (service *Service) CreatePaymentIntent(ctx context.Context, clerkUserID string, request CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	sessionID, parseSessionIdError := uuid.Parse(request.SessionID)

	if parseSessionIdError != nil {
		return nil, ErrSessionNotFound
	}

	sessionWithCamp, getSessionError := service.DBQueries.GetSessionWithCampById(ctx, sessionID)

	if getSessionError != nil {
		if errors.Is(getSessionError, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		logrus.Errorf("error getting session %s: %s", sessionID, getSessionError)

		return nil, ErrInternalError
	}

	session := sessionWithCamp.Session

	if session.Status != "open" || session.CurrentBookings >= session.MaxCapacity {
		return nil, ErrSessionUnavailable
	}

	amountCents := int64(math.Round(request.Amount * 100))

	paymentIntentParams := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		Description:  stripe.String(fmt.Sprintf("SKILLWRAP %s - %s", sessionWithCamp.Camp.Name, request.StudentName)),
		ReceiptEmail: stripe.String(request.ParentEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	paymentIntentParams.AddMetadata("sessionId", request.SessionID)
	paymentIntentParams.AddMetadata("studentName", request.StudentName)
	paymentIntentParams.AddMetadata("studentAge", strconv.Itoa(int(request.StudentAge)))
	paymentIntentParams.AddMetadata("parentEmail", request.ParentEmail)
	paymentIntentParams.AddMetadata("parentPhone", request.ParentPhone)
	paymentIntentParams.AddMetadata("emergencyContact", request.EmergencyContact)
	paymentIntentParams.AddMetadata("emergencyPhone", request.EmergencyPhone)
	paymentIntentParams.AddMetadata("dietaryRestrictions", request.DietaryRestrictions)
	paymentIntentParams.AddMetadata("specialNeeds", request.SpecialNeeds)
	paymentIntentParams.AddMetadata("userId", clerkUserID)
	paymentIntentParams.AddMetadata("campName", sessionWithCamp.Camp.Name)
	paymentIntentParams.AddMetadata("type", "camp_booking")

	paymentIntent, createPaymentIntentError := service.Stripe.CreatePaymentIntent(paymentIntentParams)

	if createPaymentIntentError != nil {
		logrus.Errorf("error creating payment intent for session %s: %s", sessionID, createPaymentIntentError)

		return nil, ErrInternalError
	}

	return &PaymentIntentResponse{
		ClientSecret:    paymentIntent.ClientSecret,
		PaymentIntentID: paymentIntent.ID,
	}, nil
}

// HandleStripeWebhook verifies the signature and dispatches the event. Any
// failure after verification returns an error so Stripe redelivers; every
// path in the succeeded handler is safe to replay.
func (service *Service) HandleStripeWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, constructEventError := service.Stripe.ConstructWebhookEvent(payload, signatureHeader, service.SigningSecret)

	if constructEventError != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, constructEventError)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		paymentIntent, unmarshalError := unmarshalPaymentIntent(event)

		if unmarshalError != nil {
			return unmarshalError
		}

		if paymentIntent.Metadata["type"] != "camp_booking" {
			logrus.Infof("ignoring payment intent %s: not a camp booking", paymentIntent.ID)

			return nil
		}

		return service.handlePaymentSucceeded(ctx, paymentIntent)

	case "payment_intent.payment_failed":
		paymentIntent, unmarshalError := unmarshalPaymentIntent(event)

		if unmarshalError != nil {
			return unmarshalError
		}

		return service.logFailedPayment(ctx, paymentIntent)

	case "payment_intent.canceled":
		paymentIntent, unmarshalError := unmarshalPaymentIntent(event)

		if unmarshalError != nil {
			return unmarshalError
		}

		logrus.Infof("payment intent %s canceled before completion", paymentIntent.ID)

		return nil

	default:
		logrus.Infof("ignoring webhook event type %s", event.Type)

		return nil
	}
}

func unmarshalPaymentIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	paymentIntent := &stripe.PaymentIntent{}

	if unmarshalError := json.Unmarshal(event.Data.Raw, paymentIntent); unmarshalError != nil {
		return nil, fmt.Errorf("parsing %s event: %w", event.Type, unmarshalError)
	}

	return paymentIntent, nil
}

func (service *Service) handlePaymentSucceeded(ctx context.Context, paymentIntent *stripe.PaymentIntent) error {
	metadata := paymentIntent.Metadata

	sessionID, parseSessionIdError := uuid.Parse(metadata["sessionId"])

	if parseSessionIdError != nil {
		return fmt.Errorf("payment intent %s has invalid session id %q: %w", paymentIntent.ID, metadata["sessionId"], parseSessionIdError)
	}

	studentAge, parseStudentAgeError := strconv.Atoi(metadata["studentAge"])

	if parseStudentAgeError != nil {
		logrus.Warnf("payment intent %s has invalid student age %q", paymentIntent.ID, metadata["studentAge"])
	}

	clerkUserID := metadata["userId"]

	service.ensureUserExists(ctx, clerkUserID, metadata["parentEmail"])

	// Explicit idempotency check before the insert; the unique constraint on
	// stripe_payment_intent_id is the backstop for concurrent deliveries.
	existingBooking, getBookingError := service.DBQueries.GetBookingByPaymentIntentId(ctx, paymentIntent.ID)

	if getBookingError == nil {
		logrus.Infof("payment intent %s already reconciled as booking %s", paymentIntent.ID, existingBooking.ID)

		return nil
	}

	if !errors.Is(getBookingError, sql.ErrNoRows) {
		logrus.Errorf("error checking for existing booking %s: %s", paymentIntent.ID, getBookingError)
	}

	totalAmount := convert.CentsToPriceString(paymentIntent.Amount)

	createBookingParams := database.CreateBookingParams{
		ID:                    uuid.New(),
		ClerkUserID:           clerkUserID,
		SessionID:             sessionID,
		StudentName:           metadata["studentName"],
		StudentAge:            int32(studentAge),
		ParentEmail:           metadata["parentEmail"],
		ParentPhone:           sqlutil.StringToNullString(metadata["parentPhone"]),
		EmergencyContact:      metadata["emergencyContact"],
		EmergencyPhone:        metadata["emergencyPhone"],
		DietaryRestrictions:   sqlutil.StringToNullString(metadata["dietaryRestrictions"]),
		SpecialNeeds:          sqlutil.StringToNullString(metadata["specialNeeds"]),
		StripePaymentIntentID: paymentIntent.ID,
		PaymentStatus:         "completed",
		BookingStatus:         "confirmed",
		TotalAmount:           totalAmount,
	}

	booking, createBookingError := service.DBQueries.CreateBooking(ctx, createBookingParams)

	if createBookingError != nil {
		if sqlutil.IsUniqueViolation(createBookingError) {
			logrus.Infof("payment intent %s already reconciled by a concurrent delivery", paymentIntent.ID)

			return nil
		}

		logrus.Errorf("error creating booking for payment intent %s, writing to outbox: %s", paymentIntent.ID, createBookingError)

		outboxRecord := outbox.Record{
			BookingID:             createBookingParams.ID,
			ClerkUserID:           clerkUserID,
			SessionID:             sessionID,
			StudentName:           createBookingParams.StudentName,
			StudentAge:            createBookingParams.StudentAge,
			ParentEmail:           createBookingParams.ParentEmail,
			ParentPhone:           metadata["parentPhone"],
			EmergencyContact:      createBookingParams.EmergencyContact,
			EmergencyPhone:        createBookingParams.EmergencyPhone,
			DietaryRestrictions:   metadata["dietaryRestrictions"],
			SpecialNeeds:          metadata["specialNeeds"],
			StripePaymentIntentID: paymentIntent.ID,
			TotalAmount:           totalAmount,
			CreatedAt:             time.Now().UTC(),
		}

		if appendError := service.Outbox.Append(outboxRecord); appendError != nil {
			return fmt.Errorf("booking insert and outbox append both failed for payment intent %s: %w", paymentIntent.ID, appendError)
		}

		return nil
	}

	if incrementError := service.DBQueries.IncrementSessionBookings(ctx, sessionID); incrementError != nil {
		logrus.Errorf("error incrementing bookings for session %s: %s", sessionID, incrementError)
	}

	bookingEmail := mailer.BookingEmail{
		StudentName:     booking.StudentName,
		StudentAge:      booking.StudentAge,
		ParentEmail:     booking.ParentEmail,
		CampName:        metadata["campName"],
		TotalAmount:     totalAmount,
		PaymentIntentID: paymentIntent.ID,
	}

	if notificationError := service.Mailer.SendBookingNotification(bookingEmail); notificationError != nil {
		logrus.Errorf("error sending booking notification for %s: %s", booking.ID, notificationError)
	}

	// Metadata emails skip request binding, so validate before sending.
	if !validation.IsEmailValid(booking.ParentEmail) {
		logrus.Warnf("booking %s has invalid parent email, skipping confirmation", booking.ID)

		return nil
	}

	if confirmationError := service.Mailer.SendBookingConfirmation(bookingEmail); confirmationError != nil {
		logrus.Errorf("error sending booking confirmation for %s: %s", booking.ID, confirmationError)
	}

	return nil
}

func (service *Service) logFailedPayment(ctx context.Context, paymentIntent *stripe.PaymentIntent) error {
	metadataJSON, marshalError := json.Marshal(paymentIntent.Metadata)

	if marshalError != nil {
		metadataJSON = []byte("{}")
	}

	createPaymentLogParams := database.CreatePaymentLogParams{
		ID:              uuid.New(),
		PaymentIntentID: paymentIntent.ID,
		Status:          "failed",
		Metadata:        metadataJSON,
		Amount:          convert.CentsToPriceString(paymentIntent.Amount),
	}

	if _, createPaymentLogError := service.DBQueries.CreatePaymentLog(ctx, createPaymentLogParams); createPaymentLogError != nil {
		return fmt.Errorf("logging failed payment %s: %w", paymentIntent.ID, createPaymentLogError)
	}

	logrus.Warnf("payment intent %s failed", paymentIntent.ID)

	return nil
}

// ensureUserExists backfills a local user row for webhook-originated bookings
// whose Clerk webhook has not arrived yet. Best effort: a missing row never
// blocks booking creation.
func (service *Service) ensureUserExists(ctx context.Context, clerkUserID string, fallbackEmail string) {
	if clerkUserID == "" {
		return
	}

	_, getUserError := service.DBQueries.GetUserByClerkId(ctx, clerkUserID)

	if getUserError == nil {
		return
	}

	if !errors.Is(getUserError, sql.ErrNoRows) {
		logrus.Errorf("error looking up user %s: %s", clerkUserID, getUserError)

		return
	}

	profile, getProfileError := service.Clerk.GetProfile(ctx, clerkUserID)

	if getProfileError != nil {
		logrus.Errorf("error fetching clerk profile for %s, inserting minimal user: %s", clerkUserID, getProfileError)

		profile = clerkapi.Profile{
			ClerkUserID: clerkUserID,
			Email:       fallbackEmail,
		}
	}

	createUserParams := database.CreateUserParams{
		ClerkUserID: clerkUserID,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Phone:       sqlutil.StringToNullString(profile.Phone),
		Role:        "parent",
	}

	if _, createUserError := service.DBQueries.CreateUser(ctx, createUserParams); createUserError != nil && !sqlutil.IsUniqueViolation(createUserError) {
		logrus.Errorf("error creating user %s: %s", clerkUserID, createUserError)
	}
}

// ReconcileOutbox replays pending outbox records into the database. Each
// record goes through the same idempotency gate as the webhook path, so
// running it repeatedly (or concurrently with deliveries) is safe.
func (service *Service) ReconcileOutbox(ctx context.Context) (int, error) {
	pendingRecords, pendingError := service.Outbox.Pending()

	if pendingError != nil {
		return 0, fmt.Errorf("reading outbox: %w", pendingError)
	}

	reconciled := 0

	for _, record := range pendingRecords {
		_, getBookingError := service.DBQueries.GetBookingByPaymentIntentId(ctx, record.StripePaymentIntentID)

		if getBookingError == nil {
			if markError := service.Outbox.MarkReconciled(record.ClerkUserID, record.StripePaymentIntentID); markError != nil {
				logrus.Errorf("error marking outbox record %s reconciled: %s", record.StripePaymentIntentID, markError)
			}

			continue
		}

		if !errors.Is(getBookingError, sql.ErrNoRows) {
			logrus.Errorf("error checking outbox record %s, leaving pending: %s", record.StripePaymentIntentID, getBookingError)

			continue
		}

		createBookingParams := database.CreateBookingParams{
			ID:                    record.BookingID,
			ClerkUserID:           record.ClerkUserID,
			SessionID:             record.SessionID,
			StudentName:           record.StudentName,
			StudentAge:            record.StudentAge,
			ParentEmail:           record.ParentEmail,
			ParentPhone:           sqlutil.StringToNullString(record.ParentPhone),
			EmergencyContact:      record.EmergencyContact,
			EmergencyPhone:        record.EmergencyPhone,
			DietaryRestrictions:   sqlutil.StringToNullString(record.DietaryRestrictions),
			SpecialNeeds:          sqlutil.StringToNullString(record.SpecialNeeds),
			StripePaymentIntentID: record.StripePaymentIntentID,
			PaymentStatus:         "completed",
			BookingStatus:         "confirmed",
			TotalAmount:           record.TotalAmount,
		}

		_, createBookingError := service.DBQueries.CreateBooking(ctx, createBookingParams)

		if createBookingError != nil && !sqlutil.IsUniqueViolation(createBookingError) {
			logrus.Errorf("error replaying outbox record %s, leaving pending: %s", record.StripePaymentIntentID, createBookingError)

			continue
		}

		if createBookingError == nil {
			if incrementError := service.DBQueries.IncrementSessionBookings(ctx, record.SessionID); incrementError != nil {
				logrus.Errorf("error incrementing bookings for session %s: %s", record.SessionID, incrementError)
			}
		}

		if markError := service.Outbox.MarkReconciled(record.ClerkUserID, record.StripePaymentIntentID); markError != nil {
			logrus.Errorf("error marking outbox record %s reconciled: %s", record.StripePaymentIntentID, markError)

			continue
		}

		reconciled++
	}

	return reconciled, nil
}

package payments

import (
	"context"
	"errors"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/internal/clerkapi"
	"github.com/BenjaminBruton/skillwrap/internal/mailer"
	"github.com/BenjaminBruton/skillwrap/internal/outbox"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/refund"
	"github.com/stripe/stripe-go/v83/webhook"
)

const webhookBodyLimit = 64 * 1024

var (
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionUnavailable = errors.New("session is full or closed")
	ErrInternalError      = errors.New("an internal error occurred")
)

type PaymentAPIConfig struct {
	Service PaymentService
}

type CreatePaymentIntentRequest struct {
	SessionID           string  `json:"sessionId" binding:"required"`
	StudentName         string  `json:"studentName" binding:"required"`
	StudentAge          int32   `json:"studentAge" binding:"required"`
	ParentEmail         string  `json:"parentEmail" binding:"required,email"`
	ParentPhone         string  `json:"parentPhone"`
	EmergencyContact    string  `json:"emergencyContact" binding:"required"`
	EmergencyPhone      string  `json:"emergencyPhone" binding:"required"`
	DietaryRestrictions string  `json:"dietaryRestrictions"`
	SpecialNeeds        string  `json:"specialNeeds"`
	Amount              float64 `json:"amount" binding:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, clerkUserID string, request CreatePaymentIntentRequest) (*PaymentIntentResponse, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	ReconcileOutbox(ctx context.Context) (int, error)
}

// StripeClient abstracts the Stripe calls the service makes so tests can run
// without network access.
type StripeClient interface {
	CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	ConstructWebhookEvent(payload []byte, signatureHeader string, signingSecret string) (stripe.Event, error)
	CreateRefund(params *stripe.RefundParams) (*stripe.Refund, error)
}

type StripeAPIClient struct{}

func (stripeAPIClient *StripeAPIClient) CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (stripeAPIClient *StripeAPIClient) ConstructWebhookEvent(payload []byte, signatureHeader string, signingSecret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, signingSecret)
}

func (stripeAPIClient *StripeAPIClient) CreateRefund(params *stripe.RefundParams) (*stripe.Refund, error) {
	return refund.New(params)
}

// ProfileFetcher is the slice of the Clerk client used to backfill missing
// local user rows during webhook processing.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, clerkUserID string) (clerkapi.Profile, error)
}

type BookingMailer interface {
	SendBookingConfirmation(booking mailer.BookingEmail) error
	SendBookingNotification(booking mailer.BookingEmail) error
}

type Service struct {
	DBQueries     config.DBQueries
	Stripe        StripeClient
	Clerk         ProfileFetcher
	Mailer        BookingMailer
	Outbox        *outbox.Store
	SigningSecret string
}

func NewService(dbQueries config.DBQueries, stripeClient StripeClient, clerkClient ProfileFetcher, bookingMailer BookingMailer, outboxStore *outbox.Store, signingSecret string) PaymentService {
	return &Service{
		DBQueries:     dbQueries,
		Stripe:        stripeClient,
		Clerk:         clerkClient,
		Mailer:        bookingMailer,
		Outbox:        outboxStore,
		SigningSecret: signingSecret,
	}
}

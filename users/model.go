package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/internal/clerkapi"
	"github.com/google/uuid"
	svix "github.com/svix/svix-webhooks/go"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrEmailNotFound    = errors.New("no email address on file for user")
	ErrInternalError    = errors.New("an internal error occurred")
)

type UserAPIConfig struct {
	Service UserService
}

type UserResponse struct {
	ClerkUserID string    `json:"clerkUserId"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClerkUserData is the slice of Clerk's webhook user payload mirrored locally.
type ClerkUserData struct {
	ID             string              `json:"id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	EmailAddresses []ClerkEmailAddress `json:"email_addresses"`
	PhoneNumbers   []ClerkPhoneNumber  `json:"phone_numbers"`
}

type ClerkEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

type ClerkPhoneNumber struct {
	PhoneNumber string `json:"phone_number"`
}

type UserEventKind string

const (
	UserEventCreated UserEventKind = "created"
	UserEventUpdated UserEventKind = "updated"
	UserEventDeleted UserEventKind = "deleted"
	UserEventIgnored UserEventKind = "ignored"
)

// UserEvent is a parsed Clerk webhook event tagged with the action to take.
type UserEvent struct {
	Kind UserEventKind
	User ClerkUserData
}

// UserForm is one waiver submission on the caller's dashboard, flattened to a
// common shape across the three waiver tables.
type UserForm struct {
	ID          uuid.UUID      `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	StudentName string         `json:"studentName"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details"`
}

type UserService interface {
	HandleClerkWebhook(ctx context.Context, payload []byte, headers http.Header) error
	SyncUser(ctx context.Context, clerkUserID string) (*UserResponse, bool, error)
	GetUserForms(ctx context.Context, clerkUserID string) ([]UserForm, error)
}

// WebhookVerifier checks the svix signature headers Clerk sends with every
// webhook delivery.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

type SvixVerifier struct {
	webhook *svix.Webhook
}

func NewSvixVerifier(signingSecret string) (*SvixVerifier, error) {
	webhook, newWebhookError := svix.NewWebhook(signingSecret)

	if newWebhookError != nil {
		return nil, newWebhookError
	}

	return &SvixVerifier{webhook: webhook}, nil
}

func (svixVerifier *SvixVerifier) Verify(payload []byte, headers http.Header) error {
	return svixVerifier.webhook.Verify(payload, headers)
}

type ProfileFetcher interface {
	GetProfile(ctx context.Context, clerkUserID string) (clerkapi.Profile, error)
}

type Service struct {
	DBQueries config.DBQueries
	Verifier  WebhookVerifier
	Clerk     ProfileFetcher
}

func NewService(dbQueries config.DBQueries, webhookVerifier WebhookVerifier, clerkClient ProfileFetcher) UserService {
	return &Service{
		DBQueries: dbQueries,
		Verifier:  webhookVerifier,
		Clerk:     clerkClient,
	}
}

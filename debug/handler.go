// Package debug exposes development-only diagnostics. The routes are mounted
// only when gin runs in debug mode and make no correctness guarantees.
package debug

import (
	"fmt"
	"io"
	"net/http"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/sqlutil"
	"github.com/BenjaminBruton/skillwrap/payments"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DebugAPIConfig struct {
	AppConfig      *config.AppConfig
	DBQueries      config.DBQueries
	PaymentService payments.PaymentService
}

// Environment reports which secrets are configured without leaking values.
func (debugAPIConfig *DebugAPIConfig) Environment(ginContext *gin.Context) {
	appConfig := debugAPIConfig.AppConfig

	ginContext.JSON(http.StatusOK, gin.H{
		"db_url":                appConfig.DBURL != "",
		"stripe_secret_key":     appConfig.StripeSecretKey != "",
		"stripe_webhook_secret": appConfig.StripeWebhookSecret != "",
		"clerk_secret_key":      appConfig.ClerkSecretKey != "",
		"clerk_webhook_secret":  appConfig.ClerkWebhookSecret != "",
		"mailgun_api_key":       appConfig.MailgunAPIKey != "",
		"gin_mode":              appConfig.GinMode,
	})
}

func (debugAPIConfig *DebugAPIConfig) RecentBookings(ginContext *gin.Context) {
	recentBookings, getRecentBookingsError := debugAPIConfig.DBQueries.GetRecentBookings(ginContext.Request.Context(), 10)

	if getRecentBookingsError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": getRecentBookingsError.Error()})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"count": len(recentBookings), "bookings": recentBookings})
}

type createTestBookingRequest struct {
	SessionID   string `json:"sessionId" binding:"required"`
	StudentName string `json:"studentName"`
	ParentEmail string `json:"parentEmail"`
}

// CreateTestBooking inserts a confirmed booking with a test_ payment intent
// id so the cancellation flow can be exercised without Stripe.
func (debugAPIConfig *DebugAPIConfig) CreateTestBooking(ginContext *gin.Context) {
	testBookingRequest := createTestBookingRequest{}

	if parameterBindError := ginContext.ShouldBindJSON(&testBookingRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})

		return
	}

	sessionID, parseSessionIdError := uuid.Parse(testBookingRequest.SessionID)

	if parseSessionIdError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})

		return
	}

	studentName := testBookingRequest.StudentName

	if studentName == "" {
		studentName = "Test Student"
	}

	parentEmail := testBookingRequest.ParentEmail

	if parentEmail == "" {
		parentEmail = "test@example.com"
	}

	createBookingParams := database.CreateBookingParams{
		ID:                    uuid.New(),
		ClerkUserID:           "debug_user",
		SessionID:             sessionID,
		StudentName:           studentName,
		StudentAge:            10,
		ParentEmail:           parentEmail,
		ParentPhone:           sqlutil.StringToNullString("555-0100"),
		EmergencyContact:      "Test Contact",
		EmergencyPhone:        "555-0101",
		StripePaymentIntentID: fmt.Sprintf("test_%s", uuid.New()),
		PaymentStatus:         "completed",
		BookingStatus:         "confirmed",
		TotalAmount:           "199.00",
	}

	booking, createBookingError := debugAPIConfig.DBQueries.CreateBooking(ginContext.Request.Context(), createBookingParams)

	if createBookingError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": createBookingError.Error()})

		return
	}

	if incrementError := debugAPIConfig.DBQueries.IncrementSessionBookings(ginContext.Request.Context(), sessionID); incrementError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": incrementError.Error()})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// WebhookEcho reflects the request back so webhook payloads can be inspected.
func (debugAPIConfig *DebugAPIConfig) WebhookEcho(ginContext *gin.Context) {
	payload, readError := io.ReadAll(ginContext.Request.Body)

	if readError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error reading request body"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{
		"headers": ginContext.Request.Header,
		"payload": string(payload),
	})
}

func (debugAPIConfig *DebugAPIConfig) ReconcileOutbox(ginContext *gin.Context) {
	reconciled, reconcileError := debugAPIConfig.PaymentService.ReconcileOutbox(ginContext.Request.Context())

	if reconcileError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": reconcileError.Error()})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"success": true, "reconciled": reconciled})
}

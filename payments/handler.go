package payments

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntent starts the checkout flow for an authenticated parent.
func (paymentAPIConfig *PaymentAPIConfig) CreatePaymentIntent(ginContext *gin.Context) {
	clerkUserId := ginContext.MustGet("clerkUserId").(string)

	createPaymentIntentRequest := CreatePaymentIntentRequest{}

	// Bind incoming JSON to struct and check for errors in the process.
	if parameterBindError := ginContext.ShouldBindJSON(&createPaymentIntentRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error parsing JSON, please check all required fields are present"})

		return
	}

	paymentIntentResponse, createPaymentIntentError := paymentAPIConfig.Service.CreatePaymentIntent(ginContext.Request.Context(), clerkUserId, createPaymentIntentRequest)

	if createPaymentIntentError != nil {
		switch {
		case errors.Is(createPaymentIntentError, ErrSessionNotFound):
			ginContext.JSON(http.StatusNotFound, gin.H{"error": "session not found"})

		case errors.Is(createPaymentIntentError, ErrSessionUnavailable):
			ginContext.JSON(http.StatusBadRequest, gin.H{"error": "this session is full or no longer open for booking"})

		default:
			ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start payment, please try again in a few minutes"})
		}

		return
	}

	ginContext.JSON(http.StatusOK, paymentIntentResponse)
}

// StripeWebhook receives payment events from Stripe. The signature gate runs
// before anything else; post-verification failures return 500 so Stripe
// redelivers.
func (paymentAPIConfig *PaymentAPIConfig) StripeWebhook(ginContext *gin.Context) {
	signatureHeader := ginContext.GetHeader("Stripe-Signature")

	if signatureHeader == "" {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "missing Stripe-Signature header"})

		return
	}

	payload, readError := io.ReadAll(http.MaxBytesReader(ginContext.Writer, ginContext.Request.Body, webhookBodyLimit))

	if readError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error reading request body"})

		return
	}

	if webhookError := paymentAPIConfig.Service.HandleStripeWebhook(ginContext.Request.Context(), payload, signatureHeader); webhookError != nil {
		if errors.Is(webhookError, ErrInvalidSignature) {
			ginContext.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})

			return
		}

		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook event"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"received": true})
}

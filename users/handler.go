package users

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const webhookBodyLimit = 64 * 1024

// ClerkWebhook mirrors Clerk user lifecycle events into the local database.
func (userAPIConfig *UserAPIConfig) ClerkWebhook(ginContext *gin.Context) {
	payload, readError := io.ReadAll(http.MaxBytesReader(ginContext.Writer, ginContext.Request.Body, webhookBodyLimit))

	if readError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error reading request body"})

		return
	}

	if webhookError := userAPIConfig.Service.HandleClerkWebhook(ginContext.Request.Context(), payload, ginContext.Request.Header); webhookError != nil {
		if errors.Is(webhookError, ErrInvalidSignature) {
			ginContext.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})

			return
		}

		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook event"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"received": true})
}

// SyncUser lazily mirrors the authenticated caller into the users table.
func (userAPIConfig *UserAPIConfig) SyncUser(ginContext *gin.Context) {
	clerkUserId := ginContext.MustGet("clerkUserId").(string)

	user, created, syncError := userAPIConfig.Service.SyncUser(ginContext.Request.Context(), clerkUserId)

	if syncError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user, please try again in a few minutes"})

		return
	}

	message := "user already synced"

	if created {
		message = "user synced"
	}

	ginContext.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"user":    user,
	})
}

// GetForms lists the waivers the caller's parent email has submitted.
func (userAPIConfig *UserAPIConfig) GetForms(ginContext *gin.Context) {
	clerkUserId := ginContext.MustGet("clerkUserId").(string)

	userForms, getFormsError := userAPIConfig.Service.GetUserForms(ginContext.Request.Context(), clerkUserId)

	if getFormsError != nil {
		if errors.Is(getFormsError, ErrEmailNotFound) {
			ginContext.JSON(http.StatusBadRequest, gin.H{"error": "no email address on file"})

			return
		}

		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch submitted forms"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"forms": userForms})
}

package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBookings returns the authenticated parent's bookings for the dashboard.
func (bookingAPIConfig *BookingAPIConfig) GetBookings(ginContext *gin.Context) {
	clerkUserId := ginContext.MustGet("clerkUserId").(string)

	bookings, getBookingsError := bookingAPIConfig.Service.GetUserBookings(ginContext.Request.Context(), clerkUserId)

	if getBookingsError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get bookings, please try again in a few minutes"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking cancels one of the authenticated parent's bookings.
func (bookingAPIConfig *BookingAPIConfig) CancelBooking(ginContext *gin.Context) {
	clerkUserId := ginContext.MustGet("clerkUserId").(string)

	result, cancelError := bookingAPIConfig.Service.CancelBooking(ginContext.Request.Context(), clerkUserId, ginContext.Param("bookingId"))

	if cancelError != nil {
		cancellationWindowError := &CancellationWindowError{}

		switch {
		case errors.Is(cancelError, ErrNotFound):
			ginContext.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})

		case errors.Is(cancelError, ErrAlreadyCancelled):
			ginContext.JSON(http.StatusBadRequest, gin.H{"error": "this booking is already cancelled"})

		case errors.As(cancelError, &cancellationWindowError):
			ginContext.JSON(http.StatusBadRequest, gin.H{
				"error":          "bookings can only be cancelled at least 7 days before the session starts",
				"days_remaining": cancellationWindowError.DaysRemaining,
			})

		case errors.Is(cancelError, ErrRefundFailed):
			ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "refund failed, your booking has not been changed"})

		default:
			ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking, please try again in a few minutes"})
		}

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": result.Booking,
		"refund":  result.Refund,
		"message": result.Message,
	})
}

package discounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateDiscount checks a discount code against the active camp and order
// amount and returns the calculated discount when the code applies.
func (discountAPIConfig *DiscountAPIConfig) ValidateDiscount(ginContext *gin.Context) {
	validateDiscountRequest := ValidateDiscountRequest{}

	if bindError := ginContext.ShouldBindJSON(&validateDiscountRequest); bindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "Discount code is required"})

		return
	}

	result, validateError := discountAPIConfig.Service.ValidateCode(ginContext.Request.Context(), validateDiscountRequest)

	if validateError != nil {
		invalidCodeError := &InvalidCodeError{}

		if errors.As(validateError, &invalidCodeError) {
			ginContext.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": invalidCodeError.Message})

			return
		}

		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to validate discount code"})

		return
	}

	ginContext.JSON(http.StatusOK, result)
}

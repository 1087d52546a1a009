package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BenjaminBruton/skillwrap/internal/convert"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/sqlutil"
	"github.com/sirupsen/logrus"
)

var ErrInternalError = errors.New("an internal error occurred")

// InvalidCodeError carries the validator's human-readable rejection reason.
type InvalidCodeError struct {
	Message string
}

func (invalidCodeError *InvalidCodeError) Error() string {
	return invalidCodeError.Message
}

// ValidateCode normalizes the code and delegates the validity window, usage
// limits and applicability checks to the database-side validator. Every
// booking attempt revalidates; nothing is cached here.
func (service *Service) ValidateCode(ctx context.Context, request ValidateDiscountRequest) (*ValidationResult, error) {
	validateParams := database.ValidateDiscountCodeParams{
		Code:        strings.ToUpper(strings.TrimSpace(request.Code)),
		CampSlug:    sqlutil.StringToNullString(request.CampSlug),
		OrderAmount: fmt.Sprintf("%.2f", request.OrderAmount),
	}

	row, validateError := service.DBQueries.ValidateDiscountCode(ctx, validateParams)

	if validateError != nil {
		logrus.Errorf("error validating discount code: %s", validateError)

		return nil, ErrInternalError
	}

	if !row.IsValid {
		message := sqlutil.NullStringToString(row.ErrorMessage)

		if message == "" {
			message = "Invalid discount code"
		}

		return nil, &InvalidCodeError{Message: message}
	}

	discountValue, discountValueError := convert.StringToFloat64(sqlutil.NullStringToString(row.DiscountValue))

	if discountValueError != nil {
		logrus.Errorf("error parsing discount value: %s", discountValueError)

		return nil, ErrInternalError
	}

	calculatedDiscount, calculatedDiscountError := convert.StringToFloat64(sqlutil.NullStringToString(row.CalculatedDiscount))

	if calculatedDiscountError != nil {
		logrus.Errorf("error parsing calculated discount: %s", calculatedDiscountError)

		return nil, ErrInternalError
	}

	discountType := sqlutil.NullStringToString(row.DiscountType)

	message := fmt.Sprintf("Discount applied: $%g off", discountValue)

	if discountType == "percentage" {
		message = fmt.Sprintf("Discount applied: %g%% off", discountValue)
	}

	return &ValidationResult{
		Valid:              true,
		DiscountID:         row.DiscountID.UUID,
		DiscountType:       discountType,
		DiscountValue:      discountValue,
		CalculatedDiscount: calculatedDiscount,
		Message:            message,
	}, nil
}

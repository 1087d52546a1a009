package discounts

import (
	"context"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/google/uuid"
)

type DiscountAPIConfig struct {
	Service DiscountService
}

type ValidateDiscountRequest struct {
	Code        string  `json:"code" binding:"required"`
	CampSlug    string  `json:"campSlug"`
	OrderAmount float64 `json:"orderAmount"`
}

type ValidationResult struct {
	Valid              bool      `json:"valid"`
	DiscountID         uuid.UUID `json:"discountId"`
	DiscountType       string    `json:"discountType"`
	DiscountValue      float64   `json:"discountValue"`
	CalculatedDiscount float64   `json:"calculatedDiscount"`
	Message            string    `json:"message"`
}

type DiscountService interface {
	ValidateCode(ctx context.Context, request ValidateDiscountRequest) (*ValidationResult, error)
}

type Service struct {
	DBQueries config.DBQueries
}

func NewService(dbQueries config.DBQueries) DiscountService {
	return &Service{
		DBQueries: dbQueries,
	}
}
